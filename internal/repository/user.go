package repository

import (
	"context"
	"fmt"
	"math"

	"aurasocial/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TrendingLimit caps the trending ranking.
const TrendingLimit = 10

// SearchLimit caps user search results.
const SearchLimit = 20

// UserRepository defines the interface for profile data operations
type UserRepository interface {
	Exists(ctx context.Context, address string) (bool, error)
	Upsert(ctx context.Context, user *models.User) error
	GetByAddress(ctx context.Context, address string) (*models.User, error)
	Stats(ctx context.Context, address string) (*models.ProfileStats, error)
	Trending(ctx context.Context) ([]models.TrendingUser, error)
	Search(ctx context.Context, query string) ([]models.User, error)
	Followers(ctx context.Context, address string) ([]models.User, error)
	Following(ctx context.Context, address string) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Exists(ctx context.Context, address string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("address = ?", address).Count(&count).Error
	return count > 0, err
}

// Upsert inserts the profile or overwrites its mutable fields. CreatedAt and
// Address are never changed for an existing row.
func (r *userRepository) Upsert(ctx context.Context, user *models.User) error {
	now := nowMillis()
	if user.CreatedAt == 0 {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "address"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"username", "profile_hash", "bio", "avatar_url", "header_url", "updated_at",
		}),
	}).Create(user).Error
	return translateWriteError(err, "Username", user.Username)
}

func (r *userRepository) GetByAddress(ctx context.Context, address string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("address = ?", address).First(&user).Error; err != nil {
		return nil, translateLookupError(err, "User", address)
	}
	return &user, nil
}

type tipTotals struct {
	Count int64
	Total float64
}

// Stats computes profile counters. The tip sum is a floating point aggregate
// and may lose precision beyond the four decimals it is formatted to.
func (r *userRepository) Stats(ctx context.Context, address string) (*models.ProfileStats, error) {
	db := r.db.WithContext(ctx)
	stats := &models.ProfileStats{}

	if err := db.Model(&models.Post{}).Where("author_address = ?", address).Count(&stats.Posts).Error; err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	if err := db.Model(&models.Follow{}).Where("following_address = ?", address).Count(&stats.Followers).Error; err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	if err := db.Model(&models.Follow{}).Where("follower_address = ?", address).Count(&stats.Following).Error; err != nil {
		return nil, fmt.Errorf("count following: %w", err)
	}

	var totals tipTotals
	err := db.Model(&models.Tip{}).
		Select("COUNT(*) AS count, COALESCE(SUM(CAST(amount AS DOUBLE PRECISION)), 0) AS total").
		Where("to_address = ?", address).
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("sum tips: %w", err)
	}

	stats.TipsReceived = totals.Count
	stats.TotalTipsETH = FormatTipTotal(totals.Total)
	return stats, nil
}

// FormatTipTotal renders a tip sum with exactly four decimals. A sum that
// overflowed to +Inf is reported as the largest finite float.
func FormatTipTotal(total float64) string {
	if math.IsNaN(total) || total <= 0 {
		return "0.0000"
	}
	if math.IsInf(total, 1) {
		total = math.MaxFloat64
	}
	return decimal.NewFromFloat(total).StringFixed(4)
}

func (r *userRepository) Trending(ctx context.Context) ([]models.TrendingUser, error) {
	var users []models.TrendingUser
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.*, COUNT(follows.id) AS follower_count").
		Joins("LEFT JOIN follows ON users.address = follows.following_address").
		Group("users.address").
		Order("follower_count DESC, users.created_at DESC").
		Limit(TrendingLimit).
		Scan(&users).Error
	return users, err
}

func (r *userRepository) Search(ctx context.Context, query string) ([]models.User, error) {
	var users []models.User
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("username LIKE ? OR address LIKE ?", pattern, pattern).
		Limit(SearchLimit).
		Find(&users).Error
	return users, err
}

func (r *userRepository) Followers(ctx context.Context, address string) ([]models.User, error) {
	return r.related(ctx, "follows.follower_address", "follows.following_address", address)
}

func (r *userRepository) Following(ctx context.Context, address string) ([]models.User, error) {
	return r.related(ctx, "follows.following_address", "follows.follower_address", address)
}

func (r *userRepository) related(ctx context.Context, joinCol, filterCol, address string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.*").
		Joins("INNER JOIN follows ON users.address = "+joinCol).
		Where(filterCol+" = ?", address).
		Order("follows.created_at DESC").
		Scan(&users).Error
	return users, err
}
