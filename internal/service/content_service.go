// internal/service/content_service.go
package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stock-board/internal/models"
	"stock-board/internal/thread"
	"stock-board/internal/utils"
)

// RegisterUser creates a user with a fresh user_id. PasswordHash must already
// be a client-precomputed opaque hash; the schema rejects anything shorter
// than 128 characters, which also keeps plaintext out by construction.
func (s *Service) RegisterUser(ctx context.Context, email, displayName, passwordHash string) (*models.User, error) {
	user := &models.User{
		UserID:      uuid.New().String(),
		Email:       email,
		DisplayName: displayName,
		Password:    passwordHash,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := s.deadline(ctx)
	defer cancel()

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a presented password hash against the stored one.
// The comparison is constant-time; a missing user and a wrong hash are
// indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, userID, passwordHash string) (*models.User, error) {
	ctx, cancel := s.deadline(ctx)
	defer cancel()

	user, err := s.store.GetUserByID(ctx, userID)
	if utils.IsErrorCode(err, utils.ErrNotFound) {
		return nil, utils.NewAppError(utils.ErrInvalidCredentials, "Invalid credentials", nil)
	}
	if err != nil {
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(passwordHash)) != 1 {
		return nil, utils.NewAppError(utils.ErrInvalidCredentials, "Invalid credentials", nil)
	}
	return user, nil
}

// CreatePost validates and stores a new post authored by userID, embedding a
// snapshot of the author into poster_user_info.
func (s *Service) CreatePost(ctx context.Context, userID, title, url, content string) (*models.Post, error) {
	ctx, cancel := s.deadline(ctx)
	defer cancel()

	author, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		PostTitle:      title,
		PostURL:        url,
		PostDate:       time.Now().UTC(),
		Content:        content,
		PosterUserInfo: author.Info(),
		CommentIDs:     []primitive.ObjectID{},
		AllCommentIDs:  []primitive.ObjectID{},
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}

	id, err := s.store.SavePost(ctx, post)
	if err != nil {
		return nil, err
	}
	post.ID = id
	return post, nil
}

// CreateComment attaches a new comment to a post, either as a direct reply or
// nested under parentIDHex. A nested reply must target a parent comment on
// the same post. The post's all_comment_ids closure is recomputed and
// persisted in the same call.
func (s *Service) CreateComment(ctx context.Context, userID, postIDHex, parentIDHex, content string) (*models.Comment, error) {
	postID, err := primitive.ObjectIDFromHex(postIDHex)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrInvalidInput, "Invalid post id: "+postIDHex, err)
	}

	ctx, cancel := s.deadline(ctx)
	defer cancel()

	author, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	var parentID primitive.ObjectID
	if parentIDHex != "" {
		parentID, err = primitive.ObjectIDFromHex(parentIDHex)
		if err != nil {
			return nil, utils.NewAppError(utils.ErrInvalidInput, "Invalid parent comment id: "+parentIDHex, err)
		}
		parent, err := s.store.GetComment(ctx, parentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, utils.NewAppError(utils.ErrInvalidInput,
				"Parent comment belongs to a different post", nil)
		}
	}

	comment := &models.Comment{
		PostID:        postID,
		CommenterInfo: author.Info(),
		Content:       content,
		CommentIDs:    []primitive.ObjectID{},
	}
	if err := comment.Validate(); err != nil {
		return nil, err
	}

	id, err := s.store.SaveComment(ctx, comment)
	if err != nil {
		return nil, err
	}
	comment.ID = id

	if parentIDHex != "" {
		err = s.store.AppendCommentReply(ctx, parentID, id)
	} else {
		err = s.store.AppendPostComment(ctx, postID, id)
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.recomputeThread(ctx, postID); err != nil {
		return nil, err
	}
	return comment, nil
}

// RepairThread recomputes and persists a post's all_comment_ids from its
// direct replies. It exists for operators to fix drift after out-of-band
// writes to the comment graph.
func (s *Service) RepairThread(ctx context.Context, postIDHex string) ([]primitive.ObjectID, error) {
	postID, err := primitive.ObjectIDFromHex(postIDHex)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrInvalidInput, "Invalid post id: "+postIDHex, err)
	}

	ctx, cancel := s.deadline(ctx)
	defer cancel()

	return s.recomputeThread(ctx, postID)
}

func (s *Service) recomputeThread(ctx context.Context, postID primitive.ObjectID) ([]primitive.ObjectID, error) {
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	closure, err := thread.Closure(ctx, s.store, post.CommentIDs)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetThreadClosure(ctx, postID, closure); err != nil {
		return nil, err
	}
	return closure, nil
}
