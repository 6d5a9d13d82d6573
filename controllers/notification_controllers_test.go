package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/catering-boq/models"
	"github.com/yeremiapane/catering-boq/services"
)

func TestCheckInventory(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(http.MethodPost, "/api/inventory/check", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[services.StockReport](t, resp.Data).LowStock)

	for _, name := range []string{"Beef", "Salt"} {
		ing, err := env.store.Ingredients.FindByKey(context.Background(), name)
		require.NoError(t, err)
		ing.Stock = ing.MinStock
		require.NoError(t, env.store.Ingredients.Update(context.Background(), name, ing))
	}

	w, resp = env.do(http.MethodPost, "/api/inventory/check", nil)
	require.Equal(t, http.StatusOK, w.Code)
	report := decode[services.StockReport](t, resp.Data)
	assert.Len(t, report.LowStock, 2)
	assert.ElementsMatch(t, []string{"Beef", "Salt"}, report.Alerted)
	assert.Contains(t, env.hub.events(), "low_stock")

	// A second check does not alert again.
	w, resp = env.do(http.MethodPost, "/api/inventory/check", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[services.StockReport](t, resp.Data).Alerted)

	w, resp = env.do(http.MethodGet, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	notes := decode[[]models.Notification](t, resp.Data)
	require.NotEmpty(t, notes)
	assert.Equal(t, models.NotificationLowStock, notes[0].Kind)
}
