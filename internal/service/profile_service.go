package service

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"aurasocial/internal/middleware"
	"aurasocial/internal/models"
	"aurasocial/internal/observability"
	"aurasocial/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 30
	maxBioLen      = 500
)

// UpsertProfileInput creates or replaces the profile for Address.
type UpsertProfileInput struct {
	Address     string `json:"address"`
	Username    string `json:"username"`
	ProfileHash string `json:"profileHash"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatarUrl"`
	HeaderURL   string `json:"headerUrl"`
}

// Validate checks required fields and length bounds.
func (in UpsertProfileInput) Validate() error {
	if err := firstError(required(in.Address, "address"), required(in.Username, "username")); err != nil {
		return err
	}
	if n := utf8.RuneCountInString(in.Username); n < minUsernameLen || n > maxUsernameLen {
		return models.NewValidationError("username must be between 3 and 30 characters")
	}
	if utf8.RuneCountInString(in.Bio) > maxBioLen {
		return models.NewValidationError("bio must be at most 500 characters")
	}
	return nil
}

type ProfileService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

func NewProfileService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo, followRepo: followRepo}
}

// UpsertProfile writes the profile. Callers cannot tell a create from an update.
func (s *ProfileService) UpsertProfile(ctx context.Context, in UpsertProfileInput) (err error) {
	defer func() { recordMutation("profile", err) }()
	if err := in.Validate(); err != nil {
		return err
	}

	ctx, span := observability.StartSpan(ctx, "profile.upsert", attribute.String("user.address", in.Address))
	defer func() { observability.EndSpan(span, err) }()

	existed, err := s.userRepo.Exists(ctx, in.Address)
	if err != nil {
		return internal(err)
	}

	user := &models.User{
		Address:     in.Address,
		Username:    in.Username,
		ProfileHash: in.ProfileHash,
		Bio:         in.Bio,
		AvatarURL:   in.AvatarURL,
		HeaderURL:   in.HeaderURL,
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return internal(err)
	}

	if existed {
		middleware.Logger.InfoContext(ctx, "user profile updated", slog.String("address", in.Address))
	} else {
		middleware.Logger.InfoContext(ctx, "user profile created", slog.String("address", in.Address))
	}
	return nil
}

// GetProfile returns the user with freshly computed stats.
func (s *ProfileService) GetProfile(ctx context.Context, address string) (*models.Profile, error) {
	user, err := s.userRepo.GetByAddress(ctx, address)
	if err != nil {
		return nil, internal(err)
	}
	stats, err := s.userRepo.Stats(ctx, address)
	if err != nil {
		return nil, internal(err)
	}
	return &models.Profile{User: *user, Stats: *stats}, nil
}

// Stats returns aggregates for address whether or not it has a profile.
func (s *ProfileService) Stats(ctx context.Context, address string) (*models.ProfileStats, error) {
	stats, err := s.userRepo.Stats(ctx, address)
	return stats, internal(err)
}

func (s *ProfileService) Trending(ctx context.Context) ([]models.TrendingUser, error) {
	users, err := s.userRepo.Trending(ctx)
	return users, internal(err)
}

func (s *ProfileService) Search(ctx context.Context, query string) ([]models.User, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	users, err := s.userRepo.Search(ctx, query)
	return users, internal(err)
}

func (s *ProfileService) Followers(ctx context.Context, address string) ([]models.User, error) {
	users, err := s.userRepo.Followers(ctx, address)
	return users, internal(err)
}

func (s *ProfileService) Following(ctx context.Context, address string) ([]models.User, error) {
	users, err := s.userRepo.Following(ctx, address)
	return users, internal(err)
}

func (s *ProfileService) IsFollowing(ctx context.Context, follower, following string) (bool, error) {
	ok, err := s.followRepo.Exists(ctx, follower, following)
	return ok, internal(err)
}
