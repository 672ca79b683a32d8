// internal/database/post_repository.go
package database

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"stock-board/internal/models"
	"stock-board/internal/utils"
)

// SavePost inserts a new post and returns its store-assigned id.
func (m *MongoDB) SavePost(ctx context.Context, post *models.Post) (primitive.ObjectID, error) {
	result, err := m.Posts.InsertOne(ctx, post)
	if err != nil {
		log.Printf("Error saving post: %v", err)
		return primitive.NilObjectID, utils.NewStoreUnavailableError(err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, utils.NewAppError(utils.ErrStoreUnavailable,
			"Store returned a non-ObjectID post id", nil)
	}

	log.Printf("Saved post %s", id.Hex())
	return id, nil
}

// GetPost retrieves a post by id.
func (m *MongoDB) GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := m.Posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("Post")
	}
	if err != nil {
		return nil, utils.NewStoreUnavailableError(err)
	}
	return &post, nil
}

// AppendPostComment appends a direct reply id to the post's comment_ids.
func (m *MongoDB) AppendPostComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	result, err := m.Posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comment_ids": commentID}},
	)
	if err != nil {
		return utils.NewStoreUnavailableError(err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("Post")
	}
	return nil
}

// SetThreadClosure persists a freshly recomputed all_comment_ids for a post.
func (m *MongoDB) SetThreadClosure(ctx context.Context, postID primitive.ObjectID, allCommentIDs []primitive.ObjectID) error {
	if allCommentIDs == nil {
		allCommentIDs = []primitive.ObjectID{}
	}

	result, err := m.Posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$set": bson.M{"all_comment_ids": allCommentIDs}},
	)
	if err != nil {
		return utils.NewStoreUnavailableError(err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("Post")
	}

	log.Printf("Updated thread closure for post %s (%d comments)", postID.Hex(), len(allCommentIDs))
	return nil
}

// EnsurePostIndexes creates required indexes for the post collection
func (m *MongoDB) EnsurePostIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "post_date", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "poster_user_info.user_id", Value: 1}},
		},
	}

	_, err := m.Posts.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return utils.NewStoreUnavailableError(err)
	}
	return nil
}
