// Command migrate applies or inspects the database schema.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"blogsite/internal/config"
	"blogsite/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <auto|status>")
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

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "auto":
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Println("automigrations applied")
	case "status":
		for _, m := range database.Models() {
			state := "missing"
			if db.Migrator().HasTable(m) {
				state = "present"
			}
			log.Printf("%-10T %s", m, state)
		}
	default:
		return usage()
	}
	return nil
}
