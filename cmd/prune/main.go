// Command prune deletes posts with ids above a threshold, together with
// their likes, comments and shares.
package main

import (
	"context"
	"flag"
	"log"

	"aurasocial/internal/config"
	"aurasocial/internal/database"
)

func main() {
	threshold := flag.Int64("threshold", 1000000, "Delete posts whose id is greater than this")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	res, err := database.Prune(context.Background(), db, *threshold)
	if err != nil {
		log.Fatalf("Prune failed: %v", err)
	}
	log.Printf("Pruned posts=%d likes=%d comments=%d shares=%d", res.Posts, res.Likes, res.Comments, res.Shares)
}
