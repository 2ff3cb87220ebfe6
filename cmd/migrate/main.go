// Command migrate applies or inspects the index schema.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"aurasocial/internal/config"
	"aurasocial/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <up|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Connect migrates on open, so "up" is done once this returns.
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	ctx := context.Background()
	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "up":
		log.Println("schema applied")
	case "status":
		tables, err := database.SchemaStatus(ctx, db)
		if err != nil {
			return fmt.Errorf("schema status failed: %w", err)
		}
		for _, t := range tables {
			log.Printf("table=%s exists=%t rows=%d", t.Table, t.Exists, t.Rows)
		}
	default:
		return usage()
	}
	return nil
}
