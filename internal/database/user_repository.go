// internal/database/user_repository.go
package database

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stock-board/internal/models"
	"stock-board/internal/utils"
)

// CreateUser inserts a new user. The unique indexes on user_id and email
// enforce uniqueness; a duplicate key comes back as a DUPLICATE error.
func (m *MongoDB) CreateUser(ctx context.Context, user *models.User) error {
	_, err := m.Users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return utils.NewAppError(utils.ErrDuplicate, "User already exists", err)
	}
	if err != nil {
		log.Printf("Error creating user %s: %v", user.UserID, err)
		return utils.NewStoreUnavailableError(err)
	}

	log.Printf("Created user %s", user.UserID)
	return nil
}

// GetUserByID retrieves a user by its user_id.
func (m *MongoDB) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := m.Users.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("User")
	}
	if err != nil {
		return nil, utils.NewStoreUnavailableError(err)
	}
	return &user, nil
}

// EnsureUserIndexes creates the unique indexes backing the user schema.
func (m *MongoDB) EnsureUserIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := m.Users.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return utils.NewStoreUnavailableError(err)
	}
	return nil
}
