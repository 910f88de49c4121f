// Command create-admin seeds an administrator account. Intended for initial
// setup; running it against an existing email is a no-op.
package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/skillforge/lms-platform/internal/core/domain"
	lmsmongo "github.com/skillforge/lms-platform/internal/infrastructure/db/mongo"
	"github.com/skillforge/lms-platform/internal/pkg/config"
	"github.com/skillforge/lms-platform/pkg/logger"
)

func main() {
	var (
		name     = flag.String("name", "Admin", "admin display name")
		email    = flag.String("email", "", "admin email (required)")
		password = flag.String("password", "", "admin password (required)")
	)
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	if *email == "" || *password == "" {
		log.Fatal().Msg("both -email and -password are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := lmsmongo.Connect(ctx, lmsmongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer client.Disconnect(context.Background())

	users := lmsmongo.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("password hashing failed")
	}

	now := time.Now().UTC()
	admin := &domain.User{
		Name:         *name,
		Email:        *email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := users.Create(ctx, admin)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			log.Info().Str("email", *email).Msg("admin already exists, nothing to do")
			return
		}
		log.Fatal().Err(err).Msg("admin creation failed")
	}

	log.Info().Str("id", created.ID).Str("email", created.Email).Msg("admin user created")
}
