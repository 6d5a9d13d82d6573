package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/catering-boq/catalog"
	"github.com/yeremiapane/catering-boq/controllers"
	"github.com/yeremiapane/catering-boq/hub"
	"github.com/yeremiapane/catering-boq/middlewares"
	"github.com/yeremiapane/catering-boq/pricing"
	"github.com/yeremiapane/catering-boq/repository"
	"github.com/yeremiapane/catering-boq/services"
	"github.com/yeremiapane/catering-boq/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	utils.ConfigureJWT("controllers-test-secret", time.Hour)
	utils.UseJSONFieldNames()
	m.Run()
}

type recordingHub struct {
	mu       sync.Mutex
	messages []hub.Message
}

func (r *recordingHub) Broadcast(msg hub.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recordingHub) events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.messages))
	for _, m := range r.messages {
		out = append(out, m.Event)
	}
	return out
}

type testEnv struct {
	t      *testing.T
	store  *repository.Store
	hub    *recordingHub
	drafts *services.DraftStore
	router *gin.Engine
}

const (
	staffEmail = "staff@example.com"
	userHeader = "X-Test-User"
	roleHeader = "X-Test-Role"
)

// fakeAuth stands in for the JWT middleware: the caller picks the user with headers.
func fakeAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetHeader(userHeader)
		if email == "" {
			email = staffEmail
		}
		role := c.GetHeader(roleHeader)
		if role == "" {
			role = "admin"
		}
		c.Set(middlewares.ContextUserEmail, email)
		c.Set(middlewares.ContextRole, role)
	}
}

func newTestEnv(t *testing.T) *testEnv {
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

	env := &testEnv{
		t:      t,
		store:  store,
		hub:    &recordingHub{},
		drafts: services.NewDraftStore(time.Hour, pricing.DefaultRatePerHour),
	}

	rate := pricing.DefaultRatePerHour
	ingredientCtrl := controllers.NewIngredientController(store, env.hub)
	menuCtrl := controllers.NewMenuController(store, env.hub)
	cateringTypeCtrl := controllers.NewCateringTypeController(store, env.hub)
	customerCtrl := controllers.NewCustomerController(store, env.hub)
	eventCtrl := controllers.NewEventController(store, env.hub, rate)
	estimateCtrl := controllers.NewEstimateController(store, rate)
	draftCtrl := controllers.NewDraftController(store, env.drafts, env.hub)
	notificationCtrl := controllers.NewNotificationController(store, services.NewStockMonitor(store, env.hub, nil))
	userCtrl := controllers.NewUserController(store)

	r := gin.New()
	r.POST("/register", userCtrl.Register)
	r.POST("/login", userCtrl.Login)

	api := r.Group("/api", fakeAuth())
	api.GET("/profile", userCtrl.GetProfile)
	api.GET("/users", userCtrl.GetAllUsers)

	api.GET("/ingredients", ingredientCtrl.ListIngredients)
	api.GET("/ingredients/low-stock", ingredientCtrl.LowStock)
	api.GET("/ingredients/:name", ingredientCtrl.GetIngredient)
	api.POST("/ingredients", ingredientCtrl.CreateIngredient)
	api.PUT("/ingredients/:name", ingredientCtrl.UpdateIngredient)
	api.DELETE("/ingredients/:name", ingredientCtrl.DeleteIngredient)

	api.GET("/menus", menuCtrl.ListMenus)
	api.GET("/menus/:name", menuCtrl.GetMenu)
	api.GET("/menus/:name/breakdown", menuCtrl.GetBreakdown)
	api.POST("/menus", menuCtrl.CreateMenu)
	api.PUT("/menus/:name", menuCtrl.UpdateMenu)
	api.DELETE("/menus/:name", menuCtrl.DeleteMenu)

	api.GET("/catering-types", cateringTypeCtrl.ListCateringTypes)
	api.POST("/catering-types", cateringTypeCtrl.CreateCateringType)
	api.PUT("/catering-types/:name", cateringTypeCtrl.UpdateCateringType)
	api.DELETE("/catering-types/:name", cateringTypeCtrl.DeleteCateringType)

	api.GET("/customers", customerCtrl.GetAllCustomers)
	api.POST("/customers", customerCtrl.CreateCustomer)
	api.GET("/customers/:mobile", customerCtrl.GetCustomer)
	api.PUT("/customers/:mobile", customerCtrl.UpdateCustomer)
	api.DELETE("/customers/:mobile", customerCtrl.DeleteCustomer)

	api.POST("/estimates", estimateCtrl.CreateEstimate)

	api.GET("/events", eventCtrl.ListEvents)
	api.POST("/events", eventCtrl.CreateEvent)
	api.GET("/events/:id", eventCtrl.GetEvent)
	api.DELETE("/events/:id", eventCtrl.DeleteEvent)
	api.GET("/events/:id/pdf", eventCtrl.DownloadEstimate)

	api.POST("/drafts", draftCtrl.CreateDraft)
	api.GET("/drafts/:id", draftCtrl.GetDraft)
	api.PATCH("/drafts/:id", draftCtrl.UpdateDraft)
	api.DELETE("/drafts/:id", draftCtrl.DeleteDraft)
	api.POST("/drafts/:id/menus", draftCtrl.AddMenu)
	api.PATCH("/drafts/:id/menus/:index", draftCtrl.UpdateQuantity)
	api.DELETE("/drafts/:id/menus/:index", draftCtrl.RemoveSelection)
	api.POST("/drafts/:id/submit", draftCtrl.SubmitDraft)

	api.GET("/notifications", notificationCtrl.GetNotifications)
	api.POST("/inventory/check", notificationCtrl.CheckInventory)

	env.router = r
	return env
}

type response struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func (e *testEnv) do(method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, response) {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(e.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp response
	if w.Header().Get("Content-Type") != "application/pdf" {
		require.NoErrorf(e.t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	}
	return w, resp
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func dec(t *testing.T, v interface{}) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(fmt.Sprint(v))
	require.NoError(t, err)
	return d
}
