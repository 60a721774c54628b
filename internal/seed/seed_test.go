package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/repositories/memory"
	"github.com/yigit/unischedule/internal/config"
	"github.com/yigit/unischedule/internal/pkg/auth"
)

func seedConfig(email, password string) *config.Config {
	cfg := &config.Config{}
	cfg.Seed.AdminName = "Administrator"
	cfg.Seed.AdminEmail = email
	cfg.Seed.AdminPassword = password
	return cfg
}

func TestCreateDefaultAdmin(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	cfg := seedConfig("Admin@Uni.edu", "change-me-now")

	require.NoError(t, CreateDefaultAdmin(ctx, cfg, repos.Users, zerolog.Nop()))

	admin, err := repos.Users.GetUserByEmail(ctx, "admin@uni.edu")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "Administrator", admin.Name)
	assert.True(t, auth.CheckPassword(admin.Password, "change-me-now"))

	// Second run is a no-op
	require.NoError(t, CreateDefaultAdmin(ctx, cfg, repos.Users, zerolog.Nop()))
	users, err := repos.Users.GetUsersByIDs(ctx, []int64{admin.ID, admin.ID + 1})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCreateDefaultAdminSkipsWithoutEmail(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	require.NoError(t, CreateDefaultAdmin(ctx, seedConfig("", ""), repos.Users, zerolog.Nop()))

	users, err := repos.Users.GetUsersByIDs(ctx, []int64{1})
	require.NoError(t, err)
	assert.Empty(t, users)
}
