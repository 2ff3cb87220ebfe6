package repository

import (
	"context"
	"testing"

	"aurasocial/internal/models"
	"aurasocial/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.NewSQLiteDB(t)
}

func seedUser(t *testing.T, db *gorm.DB, address, username string, createdAt int64) {
	t.Helper()
	require.NoError(t, NewUserRepository(db).Upsert(context.Background(), &models.User{
		Address:   address,
		Username:  username,
		CreatedAt: createdAt,
	}))
}

func seedPost(t *testing.T, db *gorm.DB, postID int64, author string, createdAt int64) {
	t.Helper()
	require.NoError(t, NewPostRepository(db).Create(context.Background(), &models.Post{
		PostID:          postID,
		AuthorAddress:   author,
		ContentHash:     "h",
		TransactionHash: "0xT",
		CreatedAt:       createdAt,
	}))
}
