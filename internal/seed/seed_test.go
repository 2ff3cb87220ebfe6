package seed

import (
	"context"
	"testing"

	"aurasocial/internal/models"
	"aurasocial/internal/notifications"
	"aurasocial/internal/repository"
	"aurasocial/internal/service"
	"aurasocial/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSeeder(t *testing.T) (*Seeder, *gorm.DB) {
	t.Helper()
	db := testutil.NewSQLiteDB(t)

	posts := repository.NewPostRepository(db)
	follows := repository.NewFollowRepository(db)
	svc := Services{
		Profiles: service.NewProfileService(repository.NewUserRepository(db), follows),
		Posts:    service.NewPostService(posts),
		Interactions: service.NewInteractionService(service.InteractionRepos{
			Posts:    posts,
			Likes:    repository.NewLikeRepository(db),
			Comments: repository.NewCommentRepository(db),
			Follows:  follows,
			Tips:     repository.NewTipRepository(db),
			Shares:   repository.NewShareRepository(db),
		}, notifications.NewDispatcher(repository.NewNotificationRepository(db), nil)),
	}
	return NewSeeder(svc, 7), db
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestSeeder_Run(t *testing.T) {
	s, db := newSeeder(t)

	res, err := s.Run(context.Background(), Options{NumUsers: 6, NumPosts: 10})
	require.NoError(t, err)

	assert.Equal(t, 6, res.Users)
	assert.Equal(t, 10, res.Posts)
	assert.Equal(t, int64(6), count(t, db, &models.User{}))
	assert.Equal(t, int64(res.Posts+res.Shares), count(t, db, &models.Post{}))
	assert.Equal(t, int64(res.Follows), count(t, db, &models.Follow{}))
	assert.Equal(t, int64(res.Likes), count(t, db, &models.Like{}))
	assert.Equal(t, int64(res.Comments), count(t, db, &models.Comment{}))
	assert.Equal(t, int64(res.Tips), count(t, db, &models.Tip{}))
	assert.Equal(t, int64(res.Shares), count(t, db, &models.Share{}))
}

func TestSeeder_Run_SkipsExistingPostIDs(t *testing.T) {
	s, db := newSeeder(t)

	_, err := s.Run(context.Background(), Options{NumUsers: 2, NumPosts: 3})
	require.NoError(t, err)
	before := count(t, db, &models.Post{})

	res, err := s.Run(context.Background(), Options{NumUsers: 2, NumPosts: 3})
	require.NoError(t, err)
	assert.Zero(t, res.Posts)
	assert.Equal(t, before, count(t, db, &models.Post{}))
}

func TestSeeder_Run_RequiresUsers(t *testing.T) {
	s, _ := newSeeder(t)
	_, err := s.Run(context.Background(), Options{})
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
