package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/catering-boq/catalog"
	"github.com/yeremiapane/catering-boq/controllers"
	"github.com/yeremiapane/catering-boq/hub"
	"github.com/yeremiapane/catering-boq/models"
	"github.com/yeremiapane/catering-boq/pricing"
	"github.com/yeremiapane/catering-boq/repository"
	"github.com/yeremiapane/catering-boq/router"
	"github.com/yeremiapane/catering-boq/services"
	"github.com/yeremiapane/catering-boq/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	utils.ConfigureJWT("router-test-secret", time.Hour)
	m.Run()
}

type app struct {
	engine *gin.Engine
	hub    *hub.Hub
	store  *repository.Store
}

func setupApp(t *testing.T) *app {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	store, err := repository.NewGormStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close(context.Background()) })
	_, err = catalog.Seed(context.Background(), store)
	require.NoError(t, err)

	h := hub.New()
	engine := router.SetupRouter(router.Dependencies{
		Store:       store,
		Hub:         h,
		Drafts:      services.NewDraftStore(time.Hour, pricing.DefaultRatePerHour),
		Monitor:     services.NewStockMonitor(store, h, nil),
		RatePerHour: pricing.DefaultRatePerHour,
		CORSOrigins: []string{"http://localhost:3000"},
	})
	return &app{engine: engine, hub: h, store: store}
}

func (a *app) request(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, utils.JSONResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var resp utils.JSONResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

func (a *app) login(t *testing.T, email, password, role string) string {
	t.Helper()
	_, err := controllers.CreateUser(context.Background(), a.store.Users, "User", email, password, role)
	require.NoError(t, err)

	w, resp := a.request(t, http.MethodPost, "/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, resp.Message)
	data := resp.Data.(map[string]interface{})
	return data["token"].(string)
}

func TestPing(t *testing.T) {
	a := setupApp(t)
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestAuthRequired(t *testing.T) {
	a := setupApp(t)

	w, resp := a.request(t, http.MethodGet, "/api/menus", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, resp.Status)

	w, _ = a.request(t, http.MethodGet, "/api/menus", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := a.login(t, "staff@example.com", "secret123", models.RoleStaff)
	w, resp = a.request(t, http.MethodGet, "/api/menus", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Status)
}

func TestAdminRoutes(t *testing.T) {
	a := setupApp(t)
	staff := a.login(t, "staff@example.com", "secret123", models.RoleStaff)
	admin := a.login(t, "admin@example.com", "secret123", models.RoleAdmin)

	body := map[string]interface{}{"name": "Family Style", "extra_cost": "25000"}
	w, _ := a.request(t, http.MethodPost, "/api/catering-types", staff, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp := a.request(t, http.MethodPost, "/api/catering-types", admin, body)
	assert.Equal(t, http.StatusCreated, w.Code, resp.Message)

	w, _ = a.request(t, http.MethodGet, "/api/users", staff, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = a.request(t, http.MethodGet, "/api/users", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Staff can still read the catalog and price events.
	w, _ = a.request(t, http.MethodGet, "/api/catering-types", staff, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = a.request(t, http.MethodPost, "/api/estimates", staff, map[string]interface{}{
		"items": []map[string]interface{}{{"menu_name": "Jollof Rice", "quantity": 2}},
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	a := setupApp(t)
	token := a.login(t, "staff@example.com", "secret123", models.RoleStaff)

	w, _ := a.request(t, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = a.request(t, http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = a.request(t, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	a := setupApp(t)

	w, resp := a.request(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, resp.Status)

	w, resp = a.request(t, http.MethodPut, "/login", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.False(t, resp.Status)
}

func TestWebSocketReceivesCatalogUpdates(t *testing.T) {
	a := setupApp(t)
	admin := a.login(t, "admin@example.com", "secret123", models.RoleAdmin)

	srv := httptest.NewServer(a.engine)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+admin, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return a.hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	w, _ := a.request(t, http.MethodDelete, "/api/ingredients/Lemon", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg hub.Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, hub.EventCatalogUpdate, msg.Event)
}
