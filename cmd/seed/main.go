// Command seed fills the index with synthetic users, posts and engagement.
package main

import (
	"context"
	"flag"
	"log"

	"aurasocial/internal/config"
	"aurasocial/internal/database"
	"aurasocial/internal/notifications"
	"aurasocial/internal/repository"
	"aurasocial/internal/seed"
	"aurasocial/internal/service"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	startID := flag.Int64("start", 1, "First post id to assign")
	seedValue := flag.Int64("seed", 0, "Random seed; 0 picks one")
	flag.Parse()

	log.Printf("Target: %d users, %d posts from id %d", *numUsers, *numPosts, *startID)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	posts := repository.NewPostRepository(db)
	follows := repository.NewFollowRepository(db)
	interactions := service.NewInteractionService(service.InteractionRepos{
		Posts:    posts,
		Likes:    repository.NewLikeRepository(db),
		Comments: repository.NewCommentRepository(db),
		Follows:  follows,
		Tips:     repository.NewTipRepository(db),
		Shares:   repository.NewShareRepository(db),
	}, notifications.NewDispatcher(repository.NewNotificationRepository(db), nil))

	svc := seed.Services{
		Profiles:     service.NewProfileService(repository.NewUserRepository(db), follows),
		Posts:        service.NewPostService(posts),
		Interactions: interactions,
	}

	res, err := seed.NewSeeder(svc, *seedValue).Run(context.Background(), seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		StartPostID: *startID,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded users=%d posts=%d likes=%d comments=%d follows=%d tips=%d shares=%d",
		res.Users, res.Posts, res.Likes, res.Comments, res.Follows, res.Tips, res.Shares)
}
