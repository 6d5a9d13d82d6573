package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yeremiapane/catering-boq/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Repository is the persistence contract every collection is served through. Records are
// addressed by their natural key (ingredient name, customer mobile, event id...).
type Repository[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindByKey(ctx context.Context, key string) (*T, error)
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, key string, record *T) error
	Delete(ctx context.Context, key string) error
}

// Store bundles one repository per collection.
type Store struct {
	Ingredients   Repository[models.Ingredient]
	Menus         Repository[models.Menu]
	CateringTypes Repository[models.CateringType]
	Customers     Repository[models.Customer]
	Events        Repository[models.Event]
	Users         Repository[models.User]
	Notifications Repository[models.Notification]

	close func(ctx context.Context) error
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Key columns shared by both backends.
const (
	keyName           = "name"
	keyMobile         = "mobile"
	keyEmail          = "email"
	keyEventID        = "event_id"
	keyNotificationID = "notification_id"
)

type createdMarker interface{ MarkCreated(time.Time) }

type updatedMarker interface{ MarkUpdated(time.Time) }
