package bootstrap

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

type SeederHasher interface {
	Hash(password string) (string, error)
}

type SeederRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
}

// SeedAdmin creates the bootstrap admin account unless the email is taken.
// Registration can never grant the admin role, so this is the only way in.
func SeedAdmin(ctx context.Context, repo SeederRepo, hasher SeederHasher, email, password string, lg zerolog.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		lg.Debug().Str("email", email).Msg("seed admin already present")
		return nil
	} else if !domain.Is(err, "user_not_found") {
		return err
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	u, err := repo.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         "Admin",
		Role:         string(domain.RoleAdmin),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		// another replica won the race
		if domain.Is(err, "email_already_exists") {
			return nil
		}
		return err
	}

	lg.Info().Str("user_id", u.ID).Msg("seed admin created")
	return nil
}
