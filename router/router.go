package router

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/catering-boq/controllers"
	"github.com/yeremiapane/catering-boq/hub"
	"github.com/yeremiapane/catering-boq/middlewares"
	"github.com/yeremiapane/catering-boq/models"
	"github.com/yeremiapane/catering-boq/repository"
	"github.com/yeremiapane/catering-boq/services"
	"github.com/yeremiapane/catering-boq/utils"
)

// Dependencies are the long lived services the handlers share.
type Dependencies struct {
	Store       *repository.Store
	Hub         *hub.Hub
	Drafts      *services.DraftStore
	Monitor     *services.StockMonitor
	RatePerHour decimal.Decimal
	CORSOrigins []string

	// Optional, defaults are created when nil.
	AuthLimiter *middlewares.RateLimiter
	APILimiter  *middlewares.RateLimiter
}

func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.AuthLimiter == nil {
		deps.AuthLimiter = middlewares.NewStrictRateLimiter()
	}
	if deps.APILimiter == nil {
		deps.APILimiter = middlewares.NewRateLimiter(600, time.Minute, 100)
	}
	utils.UseJSONFieldNames()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(deps.CORSOrigins))

	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, http.StatusNotFound, errors.New("resource not found"))
	})
	r.NoMethod(func(c *gin.Context) {
		utils.RespondError(c, http.StatusMethodNotAllowed, errors.New("method not allowed"))
	})

	userCtrl := controllers.NewUserController(deps.Store)
	ingredientCtrl := controllers.NewIngredientController(deps.Store, deps.Hub)
	menuCtrl := controllers.NewMenuController(deps.Store, deps.Hub)
	cateringTypeCtrl := controllers.NewCateringTypeController(deps.Store, deps.Hub)
	customerCtrl := controllers.NewCustomerController(deps.Store, deps.Hub)
	eventCtrl := controllers.NewEventController(deps.Store, deps.Hub, deps.RatePerHour)
	estimateCtrl := controllers.NewEstimateController(deps.Store, deps.RatePerHour)
	draftCtrl := controllers.NewDraftController(deps.Store, deps.Drafts, deps.Hub)
	notificationCtrl := controllers.NewNotificationController(deps.Store, deps.Monitor)
	wsCtrl := controllers.NewWSController(deps.Hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(deps.AuthLimiter.RateLimit())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	r.GET("/ws", middlewares.WebSocketAuthMiddleware(), wsCtrl.Serve)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(deps.APILimiter.RateLimit(), middlewares.AuthMiddleware())

	api.POST("/logout", userCtrl.Logout)
	api.GET("/profile", userCtrl.GetProfile)

	api.GET("/ingredients", ingredientCtrl.ListIngredients)
	api.GET("/ingredients/low-stock", ingredientCtrl.LowStock)
	api.GET("/ingredients/:name", ingredientCtrl.GetIngredient)

	api.GET("/menus", menuCtrl.ListMenus)
	api.GET("/menus/:name", menuCtrl.GetMenu)
	api.GET("/menus/:name/breakdown", menuCtrl.GetBreakdown)

	api.GET("/catering-types", cateringTypeCtrl.ListCateringTypes)

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

	// Admin only
	admin := api.Group("")
	admin.Use(middlewares.RequireRole(models.RoleAdmin))
	{
		admin.POST("/ingredients", ingredientCtrl.CreateIngredient)
		admin.PUT("/ingredients/:name", ingredientCtrl.UpdateIngredient)
		admin.DELETE("/ingredients/:name", ingredientCtrl.DeleteIngredient)

		admin.POST("/menus", menuCtrl.CreateMenu)
		admin.PUT("/menus/:name", menuCtrl.UpdateMenu)
		admin.DELETE("/menus/:name", menuCtrl.DeleteMenu)

		admin.POST("/catering-types", cateringTypeCtrl.CreateCateringType)
		admin.PUT("/catering-types/:name", cateringTypeCtrl.UpdateCateringType)
		admin.DELETE("/catering-types/:name", cateringTypeCtrl.DeleteCateringType)

		admin.GET("/users", userCtrl.GetAllUsers)
		admin.GET("/notifications", notificationCtrl.GetNotifications)
		admin.POST("/inventory/check", notificationCtrl.CheckInventory)
	}

	return r
}
