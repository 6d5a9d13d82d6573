package models

const NotificationLowStock = "low_stock"

type Notification struct {
	ID             uint   `gorm:"primaryKey" json:"id" bson:"-"`
	NotificationID string `gorm:"type:varchar(36);uniqueIndex;not null" json:"notification_id" bson:"notification_id"`
	Kind           string `gorm:"type:varchar(30);not null" json:"kind" bson:"kind"`
	Title          string `gorm:"type:varchar(100)" json:"title" bson:"title"`
	Message        string `gorm:"type:text;not null" json:"message" bson:"message"`
	Timestamps     `bson:",inline"`
}
