package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/nairmotors/dealerbook-backend/internal/auth"
	"github.com/nairmotors/dealerbook-backend/pkg/config"
	"github.com/nairmotors/dealerbook-backend/pkg/db"
	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
	"github.com/nairmotors/dealerbook-backend/pkg/logger"
	"github.com/nairmotors/dealerbook-backend/pkg/security"
)

const tempPasswordLength = 20

// seed-admin creates the first staff user so the API can be logged into.
// It refuses to run once any user exists.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed-admin"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	email := strings.ToLower(strings.TrimSpace(os.Getenv(config.EnvSeedAdminEmail)))
	if email == "" {
		fmt.Fprintf(os.Stderr, "%s is required\n", config.EnvSeedAdminEmail)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	repo := auth.NewRepository(dbClient.DB())
	count, err := repo.CountUsers(ctx)
	if err != nil {
		logg.Error(ctx, "failed to count users", err)
		os.Exit(1)
	}
	if count > 0 {
		logg.Info(ctx, "users already exist, nothing to seed")
		return
	}

	password := os.Getenv(config.EnvSeedAdminSecret)
	generated := false
	if password == "" {
		password, err = security.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			logg.Error(ctx, "failed to generate temporary password", err)
			os.Exit(1)
		}
		generated = true
	}

	hash, err := security.HashPassword(password, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash password", err)
		os.Exit(1)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         "admin",
		IsActive:     true,
	}
	if err := repo.Create(ctx, user); err != nil {
		logg.Error(ctx, "failed to create admin user", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{"user_id": user.ID.String(), "email": email})
	logg.Info(ctx, "admin user seeded")
	if generated {
		// Printed once, never logged.
		fmt.Printf("temporary admin password: %s\n", password)
	}
}
