package repository

import (
	"context"
	"testing"

	"aurasocial/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository_UpsertIsIdempotent(t *testing.T) {
	db := setupSQLite(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	created, err := repo.Upsert(ctx, &models.Like{PostID: 42, UserAddress: "0xB", TransactionHash: "0xT2"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Upsert(ctx, &models.Like{PostID: 42, UserAddress: "0xB", TransactionHash: "0xT3"})
	require.NoError(t, err)
	assert.False(t, created)

	var likes []models.Like
	require.NoError(t, db.Where("post_id = ?", 42).Find(&likes).Error)
	require.Len(t, likes, 1)
	assert.Equal(t, "0xT3", likes[0].TransactionHash)

	liked, err := repo.Exists(ctx, 42, "0xB")
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestLikeRepository_DeleteMissingIsSilent(t *testing.T) {
	repo := NewLikeRepository(setupSQLite(t))
	ctx := context.Background()

	assert.NoError(t, repo.Delete(ctx, 99, "0xNobody"))

	_, err := repo.Upsert(ctx, &models.Like{PostID: 1, UserAddress: "0xB"})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, 1, "0xB"))

	liked, err := repo.Exists(ctx, 1, "0xB")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestCommentRepository_CreateAndList(t *testing.T) {
	db := setupSQLite(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	seedUser(t, db, "0xB", "bob", 1)
	require.NoError(t, repo.Create(ctx, &models.Comment{CommentID: 2, PostID: 1, UserAddress: "0xB", CommentText: "second", CreatedAt: 200}))
	require.NoError(t, repo.Create(ctx, &models.Comment{CommentID: 1, PostID: 1, UserAddress: "0xGhost", CommentText: "first", CreatedAt: 100}))

	err := repo.Create(ctx, &models.Comment{CommentID: 1, PostID: 1, UserAddress: "0xB"})
	assert.True(t, models.IsCode(err, models.CodeConflict))

	comments, err := repo.ListByPost(ctx, 1)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].CommentText)
	assert.Nil(t, comments[0].Username)
	require.NotNil(t, comments[1].Username)
	assert.Equal(t, "bob", *comments[1].Username)
}

func TestFollowRepository_UpsertDeleteExists(t *testing.T) {
	db := setupSQLite(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.Follow{FollowerAddress: "0xA", FollowingAddress: "0xB", TransactionHash: "0x1"}))
	require.NoError(t, repo.Upsert(ctx, &models.Follow{FollowerAddress: "0xA", FollowingAddress: "0xB", TransactionHash: "0x2"}))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	ok, err := repo.Exists(ctx, "0xA", "0xB")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.Delete(ctx, "0xA", "0xB"))
	require.NoError(t, repo.Delete(ctx, "0xA", "0xB"))

	ok, err = repo.Exists(ctx, "0xA", "0xB")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTipRepository_AmountRoundTripsExactly(t *testing.T) {
	db := setupSQLite(t)
	repo := NewTipRepository(db)
	ctx := context.Background()

	amounts := []string{"0.000000000000000001", "123456789.123456789123456789", "0.1"}
	for i, amount := range amounts {
		require.NoError(t, repo.Create(ctx, &models.Tip{FromAddress: "0xB", ToAddress: "0xA", Amount: amount, CreatedAt: int64(i + 1)}))
	}

	tips, err := repo.ListReceived(ctx, "0xA")
	require.NoError(t, err)
	require.Len(t, tips, 3)
	assert.Equal(t, "0.1", tips[0].Amount)
	assert.Equal(t, "123456789.123456789123456789", tips[1].Amount)
	assert.Equal(t, "0.000000000000000001", tips[2].Amount)
}

func TestShareRepository_Create(t *testing.T) {
	db := setupSQLite(t)
	repo := NewShareRepository(db)

	share := &models.Share{OriginalPostID: 1, NewPostID: 2, UserAddress: "0xB", TransactionHash: "0xS"}
	require.NoError(t, repo.Create(context.Background(), share))
	assert.NotZero(t, share.ID)
	assert.NotZero(t, share.CreatedAt)
}
