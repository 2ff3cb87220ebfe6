package service

import (
	"context"
	"errors"
	"testing"

	"aurasocial/internal/models"
	"aurasocial/internal/notifications"
	"aurasocial/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingFanout captures dispatched events.
type recordingFanout struct {
	events []notifications.Event
}

func (f *recordingFanout) Dispatch(_ context.Context, ev notifications.Event) notifications.Outcome {
	f.events = append(f.events, ev)
	return notifications.OutcomeStored
}

// postRepoStub is a stub for repository.PostRepository. Unset methods panic.
type postRepoStub struct {
	repository.PostRepository
	createFn   func(context.Context, *models.Post) error
	authorOfFn func(context.Context, int64) (string, error)
	timelineFn func(context.Context, int, int) ([]models.PostView, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) AuthorOf(ctx context.Context, postID int64) (string, error) {
	return s.authorOfFn(ctx, postID)
}
func (s *postRepoStub) Timeline(ctx context.Context, limit, offset int) ([]models.PostView, error) {
	return s.timelineFn(ctx, limit, offset)
}

func authorIs(author string) *postRepoStub {
	return &postRepoStub{
		authorOfFn: func(_ context.Context, _ int64) (string, error) { return author, nil },
	}
}

type likeRepoStub struct {
	repository.LikeRepository
	upsertFn func(context.Context, *models.Like) (bool, error)
	deleteFn func(context.Context, int64, string) error
}

func (s *likeRepoStub) Upsert(ctx context.Context, like *models.Like) (bool, error) {
	return s.upsertFn(ctx, like)
}
func (s *likeRepoStub) Delete(ctx context.Context, postID int64, user string) error {
	return s.deleteFn(ctx, postID, user)
}

type commentRepoStub struct {
	repository.CommentRepository
	createFn func(context.Context, *models.Comment) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}

type followRepoStub struct {
	repository.FollowRepository
	upsertFn func(context.Context, *models.Follow) error
}

func (s *followRepoStub) Upsert(ctx context.Context, f *models.Follow) error {
	return s.upsertFn(ctx, f)
}

type tipRepoStub struct {
	repository.TipRepository
	created []*models.Tip
}

func (s *tipRepoStub) Create(_ context.Context, tip *models.Tip) error {
	s.created = append(s.created, tip)
	return nil
}

type shareRepoStub struct {
	repository.ShareRepository
	createErr error
}

func (s *shareRepoStub) Create(_ context.Context, _ *models.Share) error {
	return s.createErr
}

// assertCode asserts that err is an AppError with the given code.
func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func TestPage_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Page
		want Page
	}{
		{"defaults", Page{}, Page{Limit: DefaultLimit}},
		{"clamped", Page{Limit: 500, Offset: 10}, Page{Limit: MaxLimit, Offset: 10}},
		{"negative offset", Page{Limit: 5, Offset: -3}, Page{Limit: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestInternal_PreservesAppErrors(t *testing.T) {
	assert.NoError(t, internal(nil))

	conflict := models.NewConflictError("Post", 1, errors.New("dup"))
	assert.Same(t, conflict, internal(conflict))

	assertCode(t, internal(errors.New("disk full")), models.CodeInternal)
}
