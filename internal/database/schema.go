package database

import (
	"context"
	"fmt"
	"log/slog"

	"aurasocial/internal/middleware"
	"aurasocial/internal/models"

	"gorm.io/gorm"
)

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Follow{},
		&models.Tip{},
		&models.Share{},
		&models.Notification{},
	}
}

// Migrate creates missing tables, columns, and indexes. It never drops data.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	middleware.Logger.Info("Database migration completed")
	return nil
}

// TableStatus describes one managed table.
type TableStatus struct {
	Table  string
	Exists bool
	Rows   int64
}

// SchemaStatus reports which managed tables exist and how many rows each holds.
func SchemaStatus(ctx context.Context, db *gorm.DB) ([]TableStatus, error) {
	migrator := db.WithContext(ctx).Migrator()
	statuses := make([]TableStatus, 0, len(PersistentModels()))

	for _, model := range PersistentModels() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model: %w", err)
		}
		status := TableStatus{Table: stmt.Schema.Table, Exists: migrator.HasTable(model)}
		if status.Exists {
			if err := db.WithContext(ctx).Model(model).Count(&status.Rows).Error; err != nil {
				return nil, fmt.Errorf("count %s: %w", status.Table, err)
			}
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// PruneResult counts the rows removed by Prune.
type PruneResult struct {
	Posts    int64
	Likes    int64
	Comments int64
	Shares   int64
}

// Prune removes posts whose post_id exceeds threshold along with the likes,
// comments, and shares that reference them. Each table is a separate statement.
func Prune(ctx context.Context, db *gorm.DB, threshold int64) (PruneResult, error) {
	var result PruneResult
	tx := db.WithContext(ctx)

	res := tx.Where("post_id > ?", threshold).Delete(&models.Like{})
	if res.Error != nil {
		return result, fmt.Errorf("prune likes: %w", res.Error)
	}
	result.Likes = res.RowsAffected

	res = tx.Where("post_id > ?", threshold).Delete(&models.Comment{})
	if res.Error != nil {
		return result, fmt.Errorf("prune comments: %w", res.Error)
	}
	result.Comments = res.RowsAffected

	res = tx.Where("original_post_id > ? OR new_post_id > ?", threshold, threshold).Delete(&models.Share{})
	if res.Error != nil {
		return result, fmt.Errorf("prune shares: %w", res.Error)
	}
	result.Shares = res.RowsAffected

	res = tx.Where("post_id > ?", threshold).Delete(&models.Post{})
	if res.Error != nil {
		return result, fmt.Errorf("prune posts: %w", res.Error)
	}
	result.Posts = res.RowsAffected

	middleware.Logger.InfoContext(ctx, "pruned legacy posts",
		slog.Int64("threshold", threshold),
		slog.Int64("posts", result.Posts),
		slog.Int64("likes", result.Likes),
		slog.Int64("comments", result.Comments),
		slog.Int64("shares", result.Shares),
	)
	return result, nil
}
