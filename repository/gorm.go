package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeremiapane/catering-boq/models"
	"gorm.io/gorm"
)

// GormRepository stores T in a relational table through gorm.
type GormRepository[T any] struct {
	db        *gorm.DB
	keyColumn string
}

func NewGormRepository[T any](db *gorm.DB, keyColumn string) *GormRepository[T] {
	return &GormRepository[T]{db: db, keyColumn: keyColumn}
}

func (r *GormRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	var records []T
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("find all: %w", err)
	}
	return records, nil
}

func (r *GormRepository[T]) FindByKey(ctx context.Context, key string) (*T, error) {
	var record T
	err := r.db.WithContext(ctx).Where(r.keyColumn+" = ?", key).First(&record).Error
	if err != nil {
		return nil, translateGormError(err)
	}
	return &record, nil
}

func (r *GormRepository[T]) Create(ctx context.Context, record *T) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return translateGormError(err)
	}
	return nil
}

// Update overwrites every column of the record stored under key, zero values included,
// and reloads record from the table.
func (r *GormRepository[T]) Update(ctx context.Context, key string, record *T) error {
	db := r.db.WithContext(ctx)

	var ids []uint
	if err := db.Model(new(T)).Where(r.keyColumn+" = ?", key).Pluck("id", &ids).Error; err != nil {
		return translateGormError(err)
	}
	if len(ids) == 0 {
		return ErrNotFound
	}

	err := db.Model(new(T)).Where("id = ?", ids[0]).
		Select("*").Omit("id", "created_at").
		Updates(record).Error
	if err != nil {
		return translateGormError(err)
	}
	return translateGormError(db.First(record, ids[0]).Error)
}

func (r *GormRepository[T]) Delete(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).Where(r.keyColumn+" = ?", key).Delete(new(T))
	if result.Error != nil {
		return translateGormError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func translateGormError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// NewGormStore migrates the schema and wires one repository per table. The connection
// must be opened with TranslateError so unique violations surface as ErrDuplicate.
func NewGormStore(db *gorm.DB) (*Store, error) {
	err := db.AutoMigrate(
		&models.Ingredient{},
		&models.Menu{},
		&models.CateringType{},
		&models.Customer{},
		&models.Event{},
		&models.User{},
		&models.Notification{},
	)
	if err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &Store{
		Ingredients:   NewGormRepository[models.Ingredient](db, keyName),
		Menus:         NewGormRepository[models.Menu](db, keyName),
		CateringTypes: NewGormRepository[models.CateringType](db, keyName),
		Customers:     NewGormRepository[models.Customer](db, keyMobile),
		Events:        NewGormRepository[models.Event](db, keyEventID),
		Users:         NewGormRepository[models.User](db, keyEmail),
		Notifications: NewGormRepository[models.Notification](db, keyNotificationID),
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}, nil
}
