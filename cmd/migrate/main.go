package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tabifor/stellachat/internal/config"
	"github.com/tabifor/stellachat/internal/repository/postgres"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	sourceURL := os.Getenv("MIGRATIONS_URL")
	if sourceURL == "" {
		sourceURL = "file://migrations"
	}

	fmt.Printf("Running migrations against %s:%d/%s\n",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)

	if err := postgres.RunMigrations(cfg.Database.DSN(), sourceURL); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}
}
