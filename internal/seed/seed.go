// Package seed populates the index with fake wallets and activity for
// development and load testing. Every record goes through the services so
// notifications fan out the same way they do for real traffic.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"aurasocial/internal/middleware"
	"aurasocial/internal/models"
	"aurasocial/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/ethereum/go-ethereum/common"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	StartPostID int64
}

// Result counts what a run wrote.
type Result struct {
	Users    int
	Posts    int
	Likes    int
	Comments int
	Follows  int
	Tips     int
	Shares   int
}

// Services are the write paths the seeder drives.
type Services struct {
	Profiles     *service.ProfileService
	Posts        *service.PostService
	Interactions *service.InteractionService
}

type Seeder struct {
	svc   Services
	faker *gofakeit.Faker
}

// NewSeeder creates a Seeder. A non-zero seed makes runs reproducible.
func NewSeeder(svc Services, seed int64) *Seeder {
	return &Seeder{svc: svc, faker: gofakeit.New(seed)}
}

// Run creates users, then posts and engagement among them. Post ids that
// already exist are skipped.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.NumUsers < 1 {
		return nil, fmt.Errorf("NumUsers must be at least 1")
	}
	if opts.StartPostID <= 0 {
		opts.StartPostID = 1
	}

	res := &Result{}
	users, err := s.seedUsers(ctx, opts.NumUsers)
	if err != nil {
		return nil, err
	}
	res.Users = len(users)

	if err := s.seedFollows(ctx, users, res); err != nil {
		return nil, err
	}

	nextID := opts.StartPostID
	var posts []int64
	for i := 0; i < opts.NumPosts; i++ {
		author := users[s.faker.Number(0, len(users)-1)]
		id := nextID
		nextID++

		err := s.svc.Posts.CreatePost(ctx, service.CreatePostInput{
			PostID:          id,
			AuthorAddress:   author,
			ContentHash:     "Qm" + s.faker.LetterN(44),
			ContentText:     s.faker.Paragraph(1, 2, 12, " "),
			MediaURLs:       s.mediaURL(),
			TransactionHash: s.txHash(),
		})
		if models.IsCode(err, models.CodeConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("seed post %d: %w", id, err)
		}
		posts = append(posts, id)
		res.Posts++

		if err := s.seedEngagement(ctx, id, users, res); err != nil {
			return nil, err
		}
	}

	if len(posts) > 0 {
		shared, err := s.seedShares(ctx, posts, users, nextID)
		if err != nil {
			return nil, err
		}
		res.Shares = shared
	}

	middleware.Logger.InfoContext(ctx, "seed complete",
		slog.Int("users", res.Users),
		slog.Int("posts", res.Posts),
		slog.Int("likes", res.Likes),
		slog.Int("comments", res.Comments),
		slog.Int("follows", res.Follows),
		slog.Int("tips", res.Tips),
		slog.Int("shares", res.Shares),
	)
	return res, nil
}

func (s *Seeder) seedUsers(ctx context.Context, n int) ([]string, error) {
	users := make([]string, 0, n)
	for i := 0; i < n; i++ {
		address := s.address()
		username := fmt.Sprintf("%s_%d", truncate(s.faker.Username(), 20), i)
		if err := s.svc.Profiles.UpsertProfile(ctx, service.UpsertProfileInput{
			Address:     address,
			Username:    username,
			ProfileHash: "Qm" + s.faker.LetterN(44),
			Bio:         s.faker.Sentence(12),
			AvatarURL:   fmt.Sprintf("https://picsum.photos/seed/%s/200/200", s.faker.UUID()),
			HeaderURL:   fmt.Sprintf("https://picsum.photos/seed/%s/1200/400", s.faker.UUID()),
		}); err != nil {
			return nil, fmt.Errorf("seed user %s: %w", username, err)
		}
		users = append(users, address)
	}
	return users, nil
}

func (s *Seeder) seedFollows(ctx context.Context, users []string, res *Result) error {
	for _, follower := range users {
		for _, following := range users {
			if follower == following || !s.faker.Bool() {
				continue
			}
			if err := s.svc.Interactions.Follow(ctx, service.FollowInput{
				FollowerAddress:  follower,
				FollowingAddress: following,
				TransactionHash:  s.txHash(),
			}); err != nil {
				return fmt.Errorf("seed follow: %w", err)
			}
			res.Follows++
		}
	}
	return nil
}

func (s *Seeder) seedEngagement(ctx context.Context, postID int64, users []string, res *Result) error {
	for _, user := range users {
		switch s.faker.Number(0, 9) {
		case 0, 1, 2:
			if err := s.svc.Interactions.Like(ctx, service.LikeInput{
				PostID:          postID,
				UserAddress:     user,
				TransactionHash: s.txHash(),
			}); err != nil {
				return fmt.Errorf("seed like: %w", err)
			}
			res.Likes++
		case 3:
			commentID := postID*1000 + int64(res.Comments)
			err := s.svc.Interactions.Comment(ctx, service.CommentInput{
				CommentID:       commentID,
				PostID:          postID,
				UserAddress:     user,
				CommentHash:     "Qm" + s.faker.LetterN(44),
				CommentText:     s.faker.Sentence(s.faker.Number(3, 15)),
				TransactionHash: s.txHash(),
			})
			if models.IsCode(err, models.CodeConflict) {
				continue
			}
			if err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
			res.Comments++
		case 4:
			if err := s.svc.Interactions.Tip(ctx, service.TipInput{
				FromAddress:     user,
				ToAddress:       users[s.faker.Number(0, len(users)-1)],
				Amount:          fmt.Sprintf("%.4f", s.faker.Float64Range(0.001, 0.5)),
				TransactionHash: s.txHash(),
			}); err != nil {
				return fmt.Errorf("seed tip: %w", err)
			}
			res.Tips++
		}
	}
	return nil
}

// seedShares re-posts a few originals. Each share is two calls, the link and
// the new post, as a client would issue them.
func (s *Seeder) seedShares(ctx context.Context, posts []int64, users []string, nextID int64) (int, error) {
	shares := len(posts) / 5
	for i := 0; i < shares; i++ {
		original := posts[s.faker.Number(0, len(posts)-1)]
		sharer := users[s.faker.Number(0, len(users)-1)]
		newID := nextID + int64(i)

		if err := s.svc.Interactions.Share(ctx, service.ShareInput{
			OriginalPostID:  original,
			NewPostID:       newID,
			UserAddress:     sharer,
			TransactionHash: s.txHash(),
		}); err != nil {
			return i, fmt.Errorf("seed share: %w", err)
		}
		err := s.svc.Posts.CreatePost(ctx, service.CreatePostInput{
			PostID:          newID,
			AuthorAddress:   sharer,
			ContentHash:     "Qm" + s.faker.LetterN(44),
			ContentText:     s.faker.Sentence(6),
			TransactionHash: s.txHash(),
		})
		if err != nil && !models.IsCode(err, models.CodeConflict) {
			return i, fmt.Errorf("seed shared post %d: %w", newID, err)
		}
	}
	return shares, nil
}

func (s *Seeder) address() string {
	var b [common.AddressLength]byte
	for i := range b {
		b[i] = s.faker.Uint8()
	}
	return common.BytesToAddress(b[:]).Hex()
}

func (s *Seeder) txHash() string {
	var b [common.HashLength]byte
	for i := range b {
		b[i] = s.faker.Uint8()
	}
	return common.BytesToHash(b[:]).Hex()
}

func (s *Seeder) mediaURL() string {
	if s.faker.Number(0, 2) != 0 {
		return ""
	}
	return fmt.Sprintf("https://picsum.photos/seed/%s/800/800", s.faker.UUID())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
