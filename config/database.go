package config

import (
	"context"
	"fmt"
	"time"

	"github.com/yeremiapane/catering-boq/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenStore connects to the configured database and returns the repositories on top of it.
func OpenStore(ctx context.Context, cfg *Config) (*repository.Store, error) {
	if cfg.DBDriver == DriverMongo {
		return OpenMongo(ctx, cfg)
	}
	db, err := OpenGorm(cfg)
	if err != nil {
		return nil, err
	}
	return repository.NewGormStore(db)
}

func OpenGorm(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DriverMySQL:
		dialector = mysql.Open(cfg.DBDSN)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DBDSN)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("driver %q is not a sql driver", cfg.DBDriver)
	}

	logLevel := logger.Warn
	if cfg.GinMode == "release" {
		logLevel = logger.Error
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

func OpenMongo(ctx context.Context, cfg *Config) (*repository.Store, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetRegistry(repository.NewRegistry()).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return repository.NewMongoStore(ctx, client.Database(cfg.MongoDatabase))
}
