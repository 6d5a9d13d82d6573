package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/catering-boq/catalog"
	"github.com/yeremiapane/catering-boq/config"
	"github.com/yeremiapane/catering-boq/controllers"
	"github.com/yeremiapane/catering-boq/hub"
	"github.com/yeremiapane/catering-boq/middlewares"
	"github.com/yeremiapane/catering-boq/models"
	"github.com/yeremiapane/catering-boq/repository"
	"github.com/yeremiapane/catering-boq/router"
	"github.com/yeremiapane/catering-boq/services"
	"github.com/yeremiapane/catering-boq/utils"
)

func main() {
	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	if err := utils.ConfigureLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
		utils.ErrorLogger.Fatalf("Invalid logger configuration: %v", err)
	}
	utils.ConfigureJWT(cfg.JWTSecret, cfg.JWTExpiry)
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	store, err := config.OpenStore(connectCtx, cfg)
	cancel()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InfoLogger.WithField("driver", cfg.DBDriver).Info("database connected")

	if err := bootstrap(ctx, cfg, store); err != nil {
		utils.ErrorLogger.Fatalf("Bootstrap failed: %v", err)
	}

	liveHub := hub.New()
	var notifier services.Notifier = services.LogNotifier{}
	if cfg.TwilioEnabled() {
		notifier = services.NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom, cfg.AlertPhone)
	}
	monitor := services.NewStockMonitor(store, liveHub, notifier)
	drafts := services.NewDraftStore(cfg.DraftTTL, cfg.DurationRatePerHour)
	authLimiter := middlewares.NewStrictRateLimiter()
	apiLimiter := middlewares.NewRateLimiter(600, time.Minute, 100)

	scheduler := services.NewScheduler()
	jobs := []struct {
		spec, name string
		run        func(context.Context) error
	}{
		{cfg.StockCheckSchedule, "stock-check", func(ctx context.Context) error {
			_, err := monitor.Check(ctx)
			return err
		}},
		{"@every 10m", "draft-purge", func(context.Context) error {
			if n := drafts.Purge(); n > 0 {
				utils.InfoLogger.WithField("drafts", n).Info("expired drafts purged")
			}
			return nil
		}},
		{"@every 1h", "token-purge", func(context.Context) error {
			utils.PurgeBlacklist(time.Now())
			return nil
		}},
		{"@every 30m", "rate-limit-cleanup", func(context.Context) error {
			authLimiter.Cleanup(time.Hour)
			apiLimiter.Cleanup(time.Hour)
			return nil
		}},
	}
	for _, job := range jobs {
		if err := scheduler.Add(job.spec, job.name, job.run); err != nil {
			utils.ErrorLogger.Fatalf("Failed to schedule job: %v", err)
		}
	}
	scheduler.Start()

	r := router.SetupRouter(router.Dependencies{
		Store:       store,
		Hub:         liveHub,
		Drafts:      drafts,
		Monitor:     monitor,
		RatePerHour: cfg.DurationRatePerHour,
		CORSOrigins: cfg.CORSOrigins,
		AuthLimiter: authLimiter,
		APILimiter:  apiLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Errorf("HTTP shutdown: %v", err)
	}
	scheduler.Stop(shutdownCtx)
	if err := store.Close(shutdownCtx); err != nil {
		utils.ErrorLogger.Errorf("Closing database: %v", err)
	}
}

// bootstrap seeds the reference catalog and creates the configured admin account when
// they are missing.
func bootstrap(ctx context.Context, cfg *config.Config, store *repository.Store) error {
	if cfg.SeedCatalog {
		n, err := catalog.Seed(ctx, store)
		if err != nil {
			return err
		}
		if n > 0 {
			utils.InfoLogger.WithField("records", n).Info("reference catalog seeded")
		}
	}

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	_, err := controllers.CreateUser(ctx, store.Users, "Administrator", cfg.AdminEmail, cfg.AdminPassword, models.RoleAdmin)
	switch {
	case err == nil:
		utils.InfoLogger.WithField("email", cfg.AdminEmail).Info("admin account created")
	case errors.Is(err, repository.ErrDuplicate):
	default:
		return err
	}
	return nil
}
