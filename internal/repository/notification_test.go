package repository

import (
	"context"
	"regexp"
	"testing"

	"aurasocial/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_Lifecycle(t *testing.T) {
	db := setupSQLite(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	seedUser(t, db, "0xB", "bob", 1)
	postID := int64(42)
	for i, typ := range []models.NotificationType{models.NotificationLike, models.NotificationFollow, models.NotificationTip} {
		require.NoError(t, repo.Create(ctx, &models.Notification{
			UserAddress: "0xA",
			Type:        typ,
			FromAddress: "0xB",
			PostID:      &postID,
			Message:     string(typ),
			CreatedAt:   int64(100 * (i + 1)),
		}))
	}

	items, err := repo.List(ctx, "0xA", false, 20, 0)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, models.NotificationTip, items[0].Type)
	require.NotNil(t, items[0].Username)
	assert.Equal(t, "bob", *items[0].Username)
	assert.False(t, items[0].IsRead)

	require.NoError(t, repo.MarkRead(ctx, items[0].ID))
	require.NoError(t, repo.MarkRead(ctx, items[0].ID))

	unread, err := repo.List(ctx, "0xA", true, 20, 0)
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	count, err := repo.CountUnread(ctx, "0xA")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.MarkAllRead(ctx, "0xA"))
	count, err = repo.CountUnread(ctx, "0xA")
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, repo.Delete(ctx, items[1].ID))
	require.NoError(t, repo.Delete(ctx, items[1].ID))
	require.NoError(t, repo.Delete(ctx, 9999))

	items, err = repo.List(ctx, "0xA", false, 1, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.NotificationLike, items[0].Type)
}

func TestNotificationRepository_MarkReadSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "notifications" SET "is_read"=$1 WHERE id = $2`)).
		WithArgs(true, 7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.NoError(t, repo.MarkRead(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_CountUnreadSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "notifications" WHERE user_address = $1 AND is_read = $2`)).
		WithArgs("0xA", false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountUnread(context.Background(), "0xA")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
