package models

import "github.com/shopspring/decimal"

type CateringType struct {
	ID         uint            `gorm:"primaryKey" json:"id" bson:"-"`
	Name       string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" bson:"name"`
	ExtraCost  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"extra_cost" bson:"extra_cost"`
	Timestamps `bson:",inline"`
}
