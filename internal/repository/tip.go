package repository

import (
	"context"

	"aurasocial/internal/models"

	"gorm.io/gorm"
)

// TipRepository is append-only: tips are never updated or deleted.
type TipRepository interface {
	Create(ctx context.Context, tip *models.Tip) error
	ListReceived(ctx context.Context, address string) ([]models.TipView, error)
}

type tipRepository struct {
	db *gorm.DB
}

// NewTipRepository creates a new tip repository
func NewTipRepository(db *gorm.DB) TipRepository {
	return &tipRepository{db: db}
}

func (r *tipRepository) Create(ctx context.Context, tip *models.Tip) error {
	if tip.CreatedAt == 0 {
		tip.CreatedAt = nowMillis()
	}
	return r.db.WithContext(ctx).Create(tip).Error
}

func (r *tipRepository) ListReceived(ctx context.Context, address string) ([]models.TipView, error) {
	var tips []models.TipView
	err := r.db.WithContext(ctx).
		Table("tips").
		Select("tips.*, users.username AS username, users.avatar_url AS avatar_url").
		Joins("LEFT JOIN users ON users.address = tips.from_address").
		Where("tips.to_address = ?", address).
		Order("tips.created_at DESC, tips.id DESC").
		Scan(&tips).Error
	return tips, err
}
