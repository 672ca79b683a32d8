// internal/database/comment_repository.go
package database

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stock-board/internal/models"
	"stock-board/internal/utils"
)

// SaveComment inserts a new comment and returns its store-assigned id.
func (m *MongoDB) SaveComment(ctx context.Context, comment *models.Comment) (primitive.ObjectID, error) {
	result, err := m.Comments.InsertOne(ctx, comment)
	if err != nil {
		log.Printf("Error saving comment: %v", err)
		return primitive.NilObjectID, utils.NewStoreUnavailableError(err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, utils.NewAppError(utils.ErrStoreUnavailable,
			"Store returned a non-ObjectID comment id", nil)
	}

	log.Printf("Saved comment %s on post %s", id.Hex(), comment.PostID.Hex())
	return id, nil
}

// GetComment retrieves a comment by id.
func (m *MongoDB) GetComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var comment models.Comment
	err := m.Comments.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("Comment")
	}
	if err != nil {
		return nil, utils.NewStoreUnavailableError(err)
	}
	return &comment, nil
}

// RepliesOf returns a comment's stored nested-reply ids verbatim, without
// recursing. Only comment_ids is fetched; thread traversal composes the
// recursion explicitly.
func (m *MongoDB) RepliesOf(ctx context.Context, commentID primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.FindOne().SetProjection(bson.M{"comment_ids": 1})

	var doc struct {
		CommentIDs []primitive.ObjectID `bson:"comment_ids"`
	}
	err := m.Comments.FindOne(ctx, bson.M{"_id": commentID}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("Comment")
	}
	if err != nil {
		return nil, utils.NewStoreUnavailableError(err)
	}

	return doc.CommentIDs, nil
}

// AppendCommentReply appends a nested reply id to a parent comment's
// comment_ids.
func (m *MongoDB) AppendCommentReply(ctx context.Context, parentID, replyID primitive.ObjectID) error {
	result, err := m.Comments.UpdateOne(ctx,
		bson.M{"_id": parentID},
		bson.M{"$push": bson.M{"comment_ids": replyID}},
	)
	if err != nil {
		return utils.NewStoreUnavailableError(err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("Comment")
	}
	return nil
}

// EnsureCommentIndexes creates required indexes for the comment collection
func (m *MongoDB) EnsureCommentIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "post_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "commenter_info.user_id", Value: 1}},
		},
	}

	_, err := m.Comments.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return utils.NewStoreUnavailableError(err)
	}
	return nil
}
