package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/unischedule/internal/app/models"
	appRepos "github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/config"
	"github.com/yigit/unischedule/internal/pkg/auth"
)

// CreateDefaultAdmin creates the configured admin account unless a user with
// that email already exists. Nothing happens when no admin email is set.
func CreateDefaultAdmin(ctx context.Context, cfg *config.Config, userRepo appRepos.UserRepository, lgr zerolog.Logger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Seed.AdminEmail))
	if email == "" {
		lgr.Debug().Msg("No seed admin configured, skipping")
		return nil
	}

	existing, err := userRepo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		lgr.Info().Str("email", email).Str("role", string(existing.Role)).Msg("Seed admin already exists")
		return nil
	case !errors.Is(err, appRepos.ErrNotFound):
		return fmt.Errorf("error looking up seed admin: %w", err)
	}

	hashed, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("error hashing seed admin password: %w", err)
	}

	admin := &appModels.User{
		Name:     cfg.Seed.AdminName,
		Email:    email,
		Password: hashed,
		Role:     appModels.RoleAdmin,
	}
	if err := userRepo.CreateUser(ctx, admin); err != nil {
		// Another instance may have won the race.
		if errors.Is(err, appRepos.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("error creating seed admin: %w", err)
	}

	lgr.Info().Int64("userID", admin.ID).Str("email", email).Msg("Seed admin created")
	return nil
}
