// internal/service/service.go
package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stock-board/internal/models"
	"stock-board/internal/query"
)

// Store is the document-store surface the service depends on, implemented by
// database.MongoDB and by fakes in tests.
type Store interface {
	// Read side
	FindOverview(ctx context.Context, symbol string) (bson.M, error)
	FindRecords(ctx context.Context, kind models.RecordKind, desc *query.Descriptor) ([]bson.M, error)
	GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	GetComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	RepliesOf(ctx context.Context, commentID primitive.ObjectID) ([]primitive.ObjectID, error)

	// Write side
	CreateUser(ctx context.Context, user *models.User) error
	SavePost(ctx context.Context, post *models.Post) (primitive.ObjectID, error)
	SaveComment(ctx context.Context, comment *models.Comment) (primitive.ObjectID, error)
	AppendPostComment(ctx context.Context, postID, commentID primitive.ObjectID) error
	AppendCommentReply(ctx context.Context, parentID, replyID primitive.ObjectID) error
	SetThreadClosure(ctx context.Context, postID primitive.ObjectID, allCommentIDs []primitive.ObjectID) error
}

// Service holds the injected store handle and the per-call store deadline.
// It keeps no other state; every call re-queries the store.
type Service struct {
	store   Store
	timeout time.Duration
}

func New(store Store, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{
		store:   store,
		timeout: timeout,
	}
}

func (s *Service) deadline(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}
