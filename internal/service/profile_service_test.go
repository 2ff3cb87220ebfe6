package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"aurasocial/internal/models"
	"aurasocial/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	repository.UserRepository
	existsFn func(context.Context, string) (bool, error)
	upsertFn func(context.Context, *models.User) error
	getFn    func(context.Context, string) (*models.User, error)
	statsFn  func(context.Context, string) (*models.ProfileStats, error)
}

func (s *userRepoStub) Exists(ctx context.Context, address string) (bool, error) {
	return s.existsFn(ctx, address)
}
func (s *userRepoStub) Upsert(ctx context.Context, user *models.User) error {
	return s.upsertFn(ctx, user)
}
func (s *userRepoStub) GetByAddress(ctx context.Context, address string) (*models.User, error) {
	return s.getFn(ctx, address)
}
func (s *userRepoStub) Stats(ctx context.Context, address string) (*models.ProfileStats, error) {
	return s.statsFn(ctx, address)
}

func TestUpsertProfileInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      UpsertProfileInput
		wantErr bool
	}{
		{"valid", UpsertProfileInput{Address: "0xA", Username: "alice"}, false},
		{"missing address", UpsertProfileInput{Username: "alice"}, true},
		{"missing username", UpsertProfileInput{Address: "0xA"}, true},
		{"username too short", UpsertProfileInput{Address: "0xA", Username: "al"}, true},
		{"username at max", UpsertProfileInput{Address: "0xA", Username: strings.Repeat("a", 30)}, false},
		{"username too long", UpsertProfileInput{Address: "0xA", Username: strings.Repeat("a", 31)}, true},
		{"multibyte username counts runes", UpsertProfileInput{Address: "0xA", Username: "éèê"}, false},
		{"bio at max", UpsertProfileInput{Address: "0xA", Username: "alice", Bio: strings.Repeat("b", 500)}, false},
		{"bio too long", UpsertProfileInput{Address: "0xA", Username: "alice", Bio: strings.Repeat("b", 501)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr {
				assertCode(t, err, models.CodeValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProfileService_UpsertProfile(t *testing.T) {
	var saved *models.User
	repo := &userRepoStub{
		existsFn: func(_ context.Context, _ string) (bool, error) { return true, nil },
		upsertFn: func(_ context.Context, u *models.User) error { saved = u; return nil },
	}
	svc := NewProfileService(repo, nil)

	err := svc.UpsertProfile(context.Background(), UpsertProfileInput{
		Address:  "0xA",
		Username: "alice",
		Bio:      "hi",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "0xA", saved.Address)
	assert.Equal(t, "alice", saved.Username)
}

func TestProfileService_UpsertProfile_ValidationSkipsStore(t *testing.T) {
	repo := &userRepoStub{}
	svc := NewProfileService(repo, nil)

	err := svc.UpsertProfile(context.Background(), UpsertProfileInput{Address: "0xA", Username: "x"})
	assertCode(t, err, models.CodeValidation)
}

func TestProfileService_UpsertProfile_Errors(t *testing.T) {
	conflict := models.NewConflictError("Username", "alice", errors.New("dup"))
	tests := []struct {
		name     string
		upsert   error
		wantCode string
	}{
		{"username taken", conflict, models.CodeConflict},
		{"store failure", errors.New("connection reset"), models.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &userRepoStub{
				existsFn: func(_ context.Context, _ string) (bool, error) { return false, nil },
				upsertFn: func(_ context.Context, _ *models.User) error { return tt.upsert },
			}
			err := NewProfileService(repo, nil).UpsertProfile(context.Background(), UpsertProfileInput{Address: "0xA", Username: "alice"})
			assertCode(t, err, tt.wantCode)
		})
	}
}

func TestProfileService_GetProfile(t *testing.T) {
	repo := &userRepoStub{
		getFn: func(_ context.Context, address string) (*models.User, error) {
			if address != "0xA" {
				return nil, models.NewNotFoundError("User", address)
			}
			return &models.User{Address: "0xA", Username: "alice"}, nil
		},
		statsFn: func(_ context.Context, _ string) (*models.ProfileStats, error) {
			return &models.ProfileStats{Posts: 2, Followers: 1, TotalTipsETH: "0.0000"}, nil
		},
	}
	svc := NewProfileService(repo, nil)

	profile, err := svc.GetProfile(context.Background(), "0xA")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, int64(2), profile.Stats.Posts)

	_, err = svc.GetProfile(context.Background(), "0xZ")
	assertCode(t, err, models.CodeNotFound)
}

func TestProfileService_Search_RequiresQuery(t *testing.T) {
	_, err := NewProfileService(&userRepoStub{}, nil).Search(context.Background(), "")
	assertCode(t, err, models.CodeValidation)
}
