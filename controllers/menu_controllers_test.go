package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/catering-boq/models"
)

func TestListMenus(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(http.MethodGet, "/api/menus", nil)
	require.Equal(t, http.StatusOK, w.Code)
	menus := decode[[]models.Menu](t, resp.Data)
	require.Len(t, menus, 6)
	assert.Equal(t, "Jollof Rice", menus[0].Name)
	assert.Len(t, menus[0].Recipe, 8)
}

type breakdownData struct {
	Menu        string                  `json:"menu"`
	Ingredients []models.IngredientCost `json:"ingredients"`
	Total       string                  `json:"ingredient_total"`
}

func TestGetBreakdown(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(http.MethodGet, "/api/menus/Jollof%20Rice/breakdown", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decode[breakdownData](t, resp.Data)

	assert.Equal(t, "Jollof Rice", data.Menu)
	require.Len(t, data.Ingredients, 8)
	assert.Equal(t, "Rice", data.Ingredients[0].Name)
	assert.Equal(t, "200g", data.Ingredients[0].Quantity)
	assert.True(t, dec(t, "60").Equal(data.Ingredients[0].LineTotal))
	assert.True(t, dec(t, "173.5").Equal(dec(t, data.Total)))

	w, _ = env.do(http.MethodGet, "/api/menus/Suya/breakdown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateMenu(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(http.MethodPost, "/api/menus", map[string]interface{}{
		"name":  "Egg Fried Rice",
		"price": "1600",
		"recipe": []map[string]interface{}{
			{"name": "Rice", "quantity": "180"},
			{"name": "Eggs", "quantity": "2"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, resp.Message)

	w, resp = env.do(http.MethodGet, "/api/menus/Egg%20Fried%20Rice/breakdown", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode[map[string]interface{}](t, resp.Data)
	// 300/1000*180 + 200/1000*2
	assert.True(t, dec(t, "54.4").Equal(dec(t, data["ingredient_total"])))
}

func TestCreateMenu_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		body  map[string]interface{}
		field string
	}{
		{
			name:  "empty recipe",
			body:  map[string]interface{}{"name": "Air", "price": "10", "recipe": []interface{}{}},
			field: "recipe",
		},
		{
			name: "unknown ingredient",
			body: map[string]interface{}{"name": "Suya", "price": "900", "recipe": []map[string]interface{}{
				{"name": "Beef", "quantity": "150"},
				{"name": "Yaji", "quantity": "10"},
			}},
			field: "recipe[1]",
		},
		{
			name: "zero quantity",
			body: map[string]interface{}{"name": "Suya", "price": "900", "recipe": []map[string]interface{}{
				{"name": "Beef", "quantity": "0"},
			}},
			field: "recipe[0]",
		},
		{
			name: "zero price",
			body: map[string]interface{}{"name": "Suya", "price": "0", "recipe": []map[string]interface{}{
				{"name": "Beef", "quantity": "150"},
			}},
			field: "price",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := env.do(http.MethodPost, "/api/menus", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, resp.Errors, tt.field)
		})
	}

	w, _ := env.do(http.MethodGet, "/api/menus/Suya", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateAndDeleteMenu(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(http.MethodPut, "/api/menus/Pounded%20Yam", map[string]interface{}{
		"price":  "1300",
		"recipe": []map[string]interface{}{{"name": "Yam", "quantity": "450"}},
	})
	require.Equal(t, http.StatusOK, w.Code, resp.Message)
	menu := decode[models.Menu](t, resp.Data)
	assert.Equal(t, "Pounded Yam", menu.Name)
	assert.Equal(t, "1300", menu.Price.String())

	w, _ = env.do(http.MethodDelete, "/api/menus/Pounded%20Yam", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = env.do(http.MethodGet, "/api/menus/Pounded%20Yam", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCateringTypes(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(http.MethodGet, "/api/catering-types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.CateringType](t, resp.Data), 5)

	w, resp = env.do(http.MethodPost, "/api/catering-types", map[string]interface{}{"name": "Family Style", "extra_cost": "-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Errors, "extra_cost")

	w, _ = env.do(http.MethodPost, "/api/catering-types", map[string]interface{}{"name": "Family Style", "extra_cost": "25000"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = env.do(http.MethodPut, "/api/catering-types/Drop-off", map[string]interface{}{"extra_cost": "15000"})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = env.do(http.MethodPost, "/api/estimates", map[string]interface{}{
		"catering_service_type": "Drop-off",
		"items":                 []map[string]interface{}{{"menu_name": "Vegetable Salad", "quantity": 1}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	quote := decode[map[string]interface{}](t, resp.Data)
	assert.True(t, dec(t, "15800").Equal(dec(t, quote["grand_total"])))

	w, _ = env.do(http.MethodDelete, "/api/catering-types/Family%20Style", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = env.do(http.MethodDelete, "/api/catering-types/Family%20Style", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
