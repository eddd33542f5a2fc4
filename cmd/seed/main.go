// Command seed populates the QuiteMap database with example data.
package main

import (
	"context"
	"flag"
	"log"

	"quitemap/internal/config"
	"quitemap/internal/database"
	"quitemap/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	numPosts := flag.Int("posts", 30, "Number of posts to create")
	shouldClean := flag.Bool("clean", false, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	result, err := seed.Run(context.Background(), db, seed.Options{
		NumUsers: *numUsers,
		NumPosts: *numPosts,
		Clean:    *shouldClean,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users and %d posts", result.UsersCreated, result.PostsCreated)
	log.Printf("All seeded users have the password: %s", seed.ExamplePassword)
}
