package service

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stock-board/internal/models"
	"stock-board/internal/query"
	"stock-board/internal/sanitize"
	"stock-board/internal/utils"
)

// fakeStore counts store calls and serves canned read results.
type fakeStore struct {
	memStore

	calls        int
	overview     bson.M
	records      []bson.M
	lastKind     models.RecordKind
	lastDesc     *query.Descriptor
	recordsError error
}

func (f *fakeStore) FindOverview(_ context.Context, symbol string) (bson.M, error) {
	f.calls++
	if f.overview == nil {
		return nil, utils.NewNotFoundError("Company")
	}
	return f.overview, nil
}

func (f *fakeStore) FindRecords(_ context.Context, kind models.RecordKind, desc *query.Descriptor) ([]bson.M, error) {
	f.calls++
	f.lastKind = kind
	f.lastDesc = desc
	if f.recordsError != nil {
		return nil, f.recordsError
	}
	return f.records, nil
}

// memStore keeps users, posts and comments in maps for the write-path tests.
type memStore struct {
	users    map[string]*models.User
	posts    map[primitive.ObjectID]*models.Post
	comments map[primitive.ObjectID]*models.Comment
}

func newMemStore() memStore {
	return memStore{
		users:    make(map[string]*models.User),
		posts:    make(map[primitive.ObjectID]*models.Post),
		comments: make(map[primitive.ObjectID]*models.Comment),
	}
}

func (m *memStore) FindOverview(context.Context, string) (bson.M, error) {
	return nil, utils.NewNotFoundError("Company")
}

func (m *memStore) FindRecords(context.Context, models.RecordKind, *query.Descriptor) ([]bson.M, error) {
	return nil, nil
}

func (m *memStore) GetPost(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, utils.NewNotFoundError("Post")
	}
	return post, nil
}

func (m *memStore) GetComment(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	comment, ok := m.comments[id]
	if !ok {
		return nil, utils.NewNotFoundError("Comment")
	}
	return comment, nil
}

func (m *memStore) GetUserByID(_ context.Context, userID string) (*models.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, utils.NewNotFoundError("User")
	}
	return user, nil
}

func (m *memStore) RepliesOf(_ context.Context, commentID primitive.ObjectID) ([]primitive.ObjectID, error) {
	comment, ok := m.comments[commentID]
	if !ok {
		return nil, utils.NewNotFoundError("Comment")
	}
	return comment.CommentIDs, nil
}

func (m *memStore) CreateUser(_ context.Context, user *models.User) error {
	if _, exists := m.users[user.UserID]; exists {
		return utils.NewAppError(utils.ErrDuplicate, "User already exists", nil)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *memStore) SavePost(_ context.Context, post *models.Post) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *post
	stored.ID = id
	m.posts[id] = &stored
	return id, nil
}

func (m *memStore) SaveComment(_ context.Context, comment *models.Comment) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *comment
	stored.ID = id
	m.comments[id] = &stored
	return id, nil
}

func (m *memStore) AppendPostComment(_ context.Context, postID, commentID primitive.ObjectID) error {
	post, ok := m.posts[postID]
	if !ok {
		return utils.NewNotFoundError("Post")
	}
	post.CommentIDs = append(post.CommentIDs, commentID)
	return nil
}

func (m *memStore) AppendCommentReply(_ context.Context, parentID, replyID primitive.ObjectID) error {
	parent, ok := m.comments[parentID]
	if !ok {
		return utils.NewNotFoundError("Comment")
	}
	parent.CommentIDs = append(parent.CommentIDs, replyID)
	return nil
}

func (m *memStore) SetThreadClosure(_ context.Context, postID primitive.ObjectID, allCommentIDs []primitive.ObjectID) error {
	post, ok := m.posts[postID]
	if !ok {
		return utils.NewNotFoundError("Post")
	}
	post.AllCommentIDs = allCommentIDs
	return nil
}

// testHash is a 128-char stand-in for a client-precomputed digest.
var testHash = strings.Repeat("ab", 64)

func newTestService(store Store) *Service {
	return New(store, 5*time.Second)
}

func addTestUser(store memStore, userID, name string) {
	store.users[userID] = &models.User{
		UserID:      userID,
		Email:       name + "@example.com",
		DisplayName: name,
		Password:    testHash,
	}
}

func TestQueryValidationFailurePerformsNoStoreAccess(t *testing.T) {
	store := &fakeStore{memStore: newMemStore()}
	svc := newTestService(store)

	_, err := svc.Query(context.Background(), models.KindCompanyOverview, query.Params{
		Key:       "AAPL",
		SortField: "SharePrice",
	})
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidSortField))
	assert.Equal(t, 0, store.calls)
}

func TestQueryEmptyResultIsNotFound(t *testing.T) {
	store := &fakeStore{memStore: newMemStore()}
	svc := newTestService(store)

	_, err := svc.Query(context.Background(), models.KindCashFlow, query.Params{Key: "ZZZZ"})
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
	assert.Equal(t, 1, store.calls)
}

func TestQueryOverviewExactMatch(t *testing.T) {
	store := &fakeStore{
		memStore: newMemStore(),
		overview: bson.M{"Symbol": "NEWCO", "Name": "Newly Listed Co", "PEGRatio": math.NaN()},
	}
	svc := newTestService(store)

	records, err := svc.Query(context.Background(), models.KindCompanyOverview, query.Params{Key: "NEWCO"})
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "NEWCO", records[0]["Symbol"])
	assert.Nil(t, records[0]["PEGRatio"], "NaN must sanitize to an explicit null")
	assert.Equal(t, 1, store.calls, "exact match is a single round-trip")
}

func TestQueryPassesDescriptorToStore(t *testing.T) {
	store := &fakeStore{
		memStore: newMemStore(),
		records:  []bson.M{{"symbol": "AAPL"}},
	}
	svc := newTestService(store)

	_, err := svc.Query(context.Background(), models.KindStockWeeklyData, query.Params{
		Key:       "AAPL",
		SortField: "close",
		SortOrder: "desc",
		Limit:     "3",
	})
	require.NoError(t, err)

	assert.Equal(t, models.KindStockWeeklyData, store.lastKind)
	assert.Equal(t, bson.M{"symbol": "AAPL"}, store.lastDesc.Filter)
	assert.Equal(t, "close", store.lastDesc.SortField)
	assert.Equal(t, query.Descending, store.lastDesc.Direction)
	assert.Equal(t, int64(3), store.lastDesc.Limit)
}

func TestQueryNewsSentimentReformatsTimestamps(t *testing.T) {
	id := primitive.NewObjectID()
	store := &fakeStore{
		memStore: newMemStore(),
		records: []bson.M{
			{"_id": id, "time_published": "20240115T093000"},
			{"_id": primitive.NewObjectID(), "time_published": "garbage"},
		},
	}
	svc := newTestService(store)

	records, err := svc.Query(context.Background(), models.KindNewsSentiment, query.Params{Key: "AAPL"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, id.Hex(), records[0]["_id"])
	assert.Equal(t, "2024/01/15 09:30", records[0]["time_published"])
	assert.NotContains(t, records[0], sanitize.WarningField)
	assert.Contains(t, records[1], sanitize.WarningField)
}

func TestQueryStoreFailureSurfacesAsStoreUnavailable(t *testing.T) {
	store := &fakeStore{
		memStore:     newMemStore(),
		recordsError: utils.NewStoreUnavailableError(context.DeadlineExceeded),
	}
	svc := newTestService(store)

	_, err := svc.Query(context.Background(), models.KindQuarterlyEarnings, query.Params{Key: "AAPL"})
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrStoreUnavailable))
}

func TestRegisterUserValidatesSchema(t *testing.T) {
	store := newMemStore()
	svc := newTestService(&store)

	_, err := svc.RegisterUser(context.Background(), "a@b.com", "alice", "too-short-hash")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))
	assert.Empty(t, store.users)

	user, err := svc.RegisterUser(context.Background(), "a@b.com", "alice", testHash)
	require.NoError(t, err)
	assert.NotEmpty(t, user.UserID)
	assert.Len(t, store.users, 1)
}

func TestAuthenticate(t *testing.T) {
	store := newMemStore()
	addTestUser(store, "u1", "alice")
	svc := newTestService(&store)

	user, err := svc.Authenticate(context.Background(), "u1", testHash)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.DisplayName)

	_, err = svc.Authenticate(context.Background(), "u1", strings.Repeat("cd", 64))
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidCredentials))

	// Unknown user looks exactly like a bad hash
	_, err = svc.Authenticate(context.Background(), "nobody", testHash)
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidCredentials))
}

func TestCreateCommentMaintainsThreadClosure(t *testing.T) {
	store := newMemStore()
	addTestUser(store, "u1", "alice")
	addTestUser(store, "u2", "bob")
	svc := newTestService(&store)

	post, err := svc.CreatePost(context.Background(), "u1",
		"AAPL earnings discussion", "", "Results are out.")
	require.NoError(t, err)

	c1, err := svc.CreateComment(context.Background(), "u2", post.ID.Hex(), "", "First!")
	require.NoError(t, err)
	c2, err := svc.CreateComment(context.Background(), "u1", post.ID.Hex(), "", "Strong quarter.")
	require.NoError(t, err)
	c3, err := svc.CreateComment(context.Background(), "u1", post.ID.Hex(), c1.ID.Hex(), "Replying to first.")
	require.NoError(t, err)

	stored := store.posts[post.ID]
	assert.Equal(t, []primitive.ObjectID{c1.ID, c2.ID}, stored.CommentIDs)
	// Breadth-first: both direct comments before the nested reply
	assert.Equal(t, []primitive.ObjectID{c1.ID, c2.ID, c3.ID}, stored.AllCommentIDs)
}

func TestCreateCommentRejectsForeignParent(t *testing.T) {
	store := newMemStore()
	addTestUser(store, "u1", "alice")
	svc := newTestService(&store)

	postA, err := svc.CreatePost(context.Background(), "u1", "Post A", "", "content")
	require.NoError(t, err)
	postB, err := svc.CreatePost(context.Background(), "u1", "Post B", "", "content")
	require.NoError(t, err)

	parentOnB, err := svc.CreateComment(context.Background(), "u1", postB.ID.Hex(), "", "on B")
	require.NoError(t, err)

	_, err = svc.CreateComment(context.Background(), "u1", postA.ID.Hex(), parentOnB.ID.Hex(), "crossing posts")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))
}

func TestRepairThreadDetectsCycle(t *testing.T) {
	store := newMemStore()
	addTestUser(store, "u1", "alice")
	svc := newTestService(&store)

	post, err := svc.CreatePost(context.Background(), "u1", "Cycles", "", "content")
	require.NoError(t, err)

	a, err := svc.CreateComment(context.Background(), "u1", post.ID.Hex(), "", "A")
	require.NoError(t, err)
	b, err := svc.CreateComment(context.Background(), "u1", post.ID.Hex(), a.ID.Hex(), "B")
	require.NoError(t, err)

	// Corrupt the graph behind the service's back: B points back at A.
	store.comments[b.ID].CommentIDs = append(store.comments[b.ID].CommentIDs, a.ID)

	_, err = svc.RepairThread(context.Background(), post.ID.Hex())
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrCycleDetected))
}

func TestRepairThreadRewritesClosure(t *testing.T) {
	store := newMemStore()
	addTestUser(store, "u1", "alice")
	svc := newTestService(&store)

	post, err := svc.CreatePost(context.Background(), "u1", "Repairable", "", "content")
	require.NoError(t, err)
	c1, err := svc.CreateComment(context.Background(), "u1", post.ID.Hex(), "", "hello")
	require.NoError(t, err)

	// Simulate drift from an out-of-band write.
	store.posts[post.ID].AllCommentIDs = nil

	closure, err := svc.RepairThread(context.Background(), post.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{c1.ID}, closure)
	assert.Equal(t, []primitive.ObjectID{c1.ID}, store.posts[post.ID].AllCommentIDs)
}
