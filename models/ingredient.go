package models

import "github.com/shopspring/decimal"

// Units an ingredient can be measured in.
const (
	UnitGram       = "g"
	UnitKilogram   = "kg"
	UnitMillilitre = "ml"
	UnitLitre      = "l"
	UnitPieces     = "pieces"
	UnitService    = "service"
)

type Ingredient struct {
	ID        uint            `gorm:"primaryKey" json:"id" bson:"-"`
	Name      string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" bson:"name"`
	Category  string          `gorm:"type:varchar(100);not null;default:'General'" json:"category" bson:"category"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price" bson:"unit_price"`
	Unit      string          `gorm:"type:varchar(20);not null" json:"unit" bson:"unit"`
	Stock     decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"stock" bson:"stock"`
	MinStock  decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"min_stock" bson:"min_stock"`
	Timestamps `bson:",inline"`
}

// IsLowStock reports whether the stock has reached the reorder threshold.
func (i Ingredient) IsLowStock() bool {
	return i.Stock.LessThanOrEqual(i.MinStock)
}
