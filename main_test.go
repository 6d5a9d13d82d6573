package main

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/catering-boq/config"
	"github.com/yeremiapane/catering-boq/models"
	"github.com/yeremiapane/catering-boq/repository"
)

func openTestStore(t *testing.T) (*config.Config, *repository.Store) {
	t.Helper()
	cfg := &config.Config{
		DBDriver:      config.DriverSQLite,
		DBDSN:         "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		SeedCatalog:   true,
		AdminEmail:    "Admin@Example.com",
		AdminPassword: "change-me",
	}
	store, err := config.OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close(context.Background()) })
	return cfg, store
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	cfg, store := openTestStore(t)

	require.NoError(t, bootstrap(ctx, cfg, store))
	// A restart finds everything in place.
	require.NoError(t, bootstrap(ctx, cfg, store))

	menus, err := store.Menus.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, menus, 6)

	users, err := store.Users.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@example.com", users[0].Email)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
}

func TestBootstrap_WithoutSeedOrAdmin(t *testing.T) {
	ctx := context.Background()
	cfg, store := openTestStore(t)
	cfg.SeedCatalog = false
	cfg.AdminPassword = ""

	require.NoError(t, bootstrap(ctx, cfg, store))

	ingredients, err := store.Ingredients.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, ingredients)
	users, err := store.Users.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
