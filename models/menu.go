package models

import "github.com/shopspring/decimal"

type RecipeIngredient struct {
	Name     string          `json:"name" bson:"name"`
	Quantity decimal.Decimal `json:"quantity" bson:"quantity"`
}

// Menu is a dish sold per portion. The recipe is stored inline with the menu, the same
// way the document store keeps it.
type Menu struct {
	ID         uint               `gorm:"primaryKey" json:"id" bson:"-"`
	Name       string             `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" bson:"name"`
	Price      decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"price" bson:"price"`
	Recipe     []RecipeIngredient `gorm:"serializer:json" json:"recipe" bson:"recipe"`
	Timestamps `bson:",inline"`
}
