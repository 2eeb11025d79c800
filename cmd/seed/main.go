// seed inserts a development user for local testing.
// Idempotent: skips the insert if dev@example.com already exists.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"session-auth-service/backend/internal/config"
	"session-auth-service/backend/internal/db"
	"session-auth-service/backend/internal/security"
	userdomain "session-auth-service/backend/internal/user/domain"
	userrepo "session-auth-service/backend/internal/user/repository"
)

const (
	devUserEmail = "dev@example.com"
	devPassword  = "password123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env or set DATABASE_URL")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	users := userrepo.NewPostgresRepository(pool)
	existing, err := users.GetByEmail(ctx, devUserEmail)
	if err != nil {
		log.Fatalf("user lookup: %v", err)
	}
	if existing != nil {
		log.Printf("dev user %s already exists, nothing to do", devUserEmail)
		return
	}

	hash, err := security.NewHasher(cfg.BcryptCost).Hash([]byte(devPassword))
	if err != nil {
		log.Fatalf("hash: %v", err)
	}
	now := time.Now().UTC()
	user := &userdomain.User{
		ID:           uuid.New().String(),
		Email:        devUserEmail,
		PasswordHash: hash,
		FirstName:    "Dev",
		LastName:     "User",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("user create: %v", err)
	}
	log.Printf("seeded dev user %s (password %q)", devUserEmail, devPassword)
}
