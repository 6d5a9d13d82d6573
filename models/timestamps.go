package models

import "time"

// Timestamps is embedded by every persisted record. gorm fills the fields on its own;
// the document store calls MarkCreated and MarkUpdated.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at,omitempty"`
}

func (t *Timestamps) MarkCreated(now time.Time) {
	t.CreatedAt = now
	t.UpdatedAt = now
}

func (t *Timestamps) MarkUpdated(now time.Time) {
	t.UpdatedAt = now
}
