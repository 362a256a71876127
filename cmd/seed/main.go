// Command main runs the demo data seeder.
package main

import (
	"flag"
	"log"
	"os"

	"blogsite/internal/config"
	"blogsite/internal/database"
	"blogsite/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	postsPerUser := flag.Int("posts", 3, "Posts per user")
	commentsPerPost := flag.Int("comments", 3, "Comments per post")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Apply a named preset (small, demo, large)")
	presetFile := flag.String("preset-file", "", "YAML file with extra presets")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	var res *seed.Result
	if *preset != "" {
		presets, err := seed.BuiltinPresets()
		if err != nil {
			log.Fatalf("❌ Loading presets failed: %v", err)
		}
		if *presetFile != "" {
			f, err := os.Open(*presetFile)
			if err != nil {
				log.Fatalf("❌ Opening preset file failed: %v", err)
			}
			extra, err := seed.LoadPresets(f)
			_ = f.Close()
			if err != nil {
				log.Fatalf("❌ Loading preset file failed: %v", err)
			}
			for name, opts := range extra {
				presets[name] = opts
			}
		}

		log.Printf("Applying preset: %s (ignoring size flags)", *preset)
		res, err = s.ApplyPreset(presets, *preset)
		if err != nil {
			log.Fatalf("❌ Preset seeding failed: %v", err)
		}
	} else {
		res, err = s.Seed(seed.Options{
			Users:           *numUsers,
			PostsPerUser:    *postsPerUser,
			CommentsPerPost: *commentsPerPost,
			ApprovedRatio:   0.7,
			LikeRatio:       0.4,
		})
		if err != nil {
			log.Fatalf("❌ Seeding failed: %v", err)
		}
	}

	log.Printf("✨ Done: %d users, %d posts, %d comments, %d likes", res.Users, res.Posts, res.Comments, res.Likes)
	log.Printf("📧 All seeded users have the password: %s", seed.DemoPassword)
}
