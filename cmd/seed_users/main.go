package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/illineats/backend/config"
	"github.com/illineats/backend/internal/database"
	"github.com/illineats/backend/internal/logging"
	"github.com/illineats/backend/internal/service"
	"github.com/illineats/backend/internal/types"
)

// demoUsers cover each goal and a spread of dietary restrictions
var demoUsers = []struct {
	id          string
	name        string
	email       string
	goal        string
	allergies   string
	preferences string
	locations   string
}{
	{"5f0c8c1e-0b57-4d1e-9a0f-1f6a1d2f9a01", "Test Bulk", "bulk@example.com", "bulk", "", "", ""},
	{"5f0c8c1e-0b57-4d1e-9a0f-1f6a1d2f9a02", "Test Vegan", "vegan@example.com", "eat_healthy", "", "Vegan", "Ikenberry Dining Center (Ike),Lincoln Avenue Dining Hall (Allen)"},
	{"5f0c8c1e-0b57-4d1e-9a0f-1f6a1d2f9a03", "Test Allergies", "allergies@example.com", "lose_weight", "Peanuts, Tree Nuts, Milk", "", ""},
}

func main() {
	adminKey := flag.String("admin-key", "", "Print the bcrypt hash of this admin key and exit")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "Lifetime of the printed tokens")
	flag.Parse()

	if *adminKey != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*adminKey), bcrypt.DefaultCost)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to hash admin key")
		}
		fmt.Printf("ADMIN_KEY_HASH=%s\n", hash)
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if config.IsProduction() {
		logging.Fatal().Msg("Refusing to seed demo users in production")
	}

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		logging.Fatal().Err(err).Msg("Failed to run migrations")
	}

	users := service.NewUserService(db, nil)
	auth := service.NewAuthService(cfg.JWTSecret)
	ctx := context.Background()

	for _, u := range demoUsers {
		id := uuid.MustParse(u.id)
		if _, _, err := users.CreateUser(ctx, id, u.email, &types.CreateUserRequest{Name: u.name}); err != nil {
			logging.Fatal().Err(err).Str("email", u.email).Msg("Failed to create user")
		}
		notNew := false
		if _, err := users.UpdateUser(ctx, id, &types.UpdateUserRequest{
			Goal:        &u.goal,
			Allergies:   &u.allergies,
			Preferences: &u.preferences,
			Locations:   &u.locations,
			IsNew:       &notNew,
		}); err != nil {
			logging.Fatal().Err(err).Str("email", u.email).Msg("Failed to update user")
		}

		now := time.Now()
		token, err := auth.GenerateToken(&types.TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   id.String(),
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(*ttl)),
			},
			Email: u.email,
		})
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to sign token")
		}
		fmt.Printf("%s\t%s\n", u.email, token)
	}
}
