package models

import "github.com/shopspring/decimal"

// IngredientCost is one line of a menu's per-portion ingredient breakdown.
type IngredientCost struct {
	Name      string          `json:"name" bson:"name"`
	Quantity  string          `json:"quantity" bson:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" bson:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total" bson:"line_total"`
}

type EventSelection struct {
	MenuName    string           `json:"menu_name" bson:"menu_name"`
	Quantity    int              `json:"quantity" bson:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price" bson:"unit_price"`
	TotalPrice  decimal.Decimal  `json:"total_price" bson:"total_price"`
	Ingredients []IngredientCost `json:"ingredients" bson:"ingredients"`
}

// Event is a booked catering event together with the bill of quantities it was priced
// at. Totals are frozen when the event is created.
type Event struct {
	ID                  uint             `gorm:"primaryKey" json:"id" bson:"-"`
	EventID             string           `gorm:"type:varchar(36);uniqueIndex;not null" json:"event_id" bson:"event_id"`
	Name                string           `gorm:"type:varchar(255);not null" json:"name" bson:"name"`
	EventType           string           `gorm:"type:varchar(50)" json:"event_type" bson:"event_type"`
	CustomerMobile      string           `gorm:"type:varchar(20);index" json:"customer_mobile" bson:"customer_mobile"`
	GuestCount          int              `json:"guest_count" bson:"guest_count"`
	CateringServiceType string           `gorm:"type:varchar(100)" json:"catering_service_type" bson:"catering_service_type"`
	EventDate           string           `gorm:"type:varchar(10)" json:"event_date" bson:"event_date"`
	StartTime           string           `gorm:"type:varchar(5)" json:"start_time" bson:"start_time"`
	EndTime             string           `gorm:"type:varchar(5)" json:"end_time" bson:"end_time"`
	Selections          []EventSelection `gorm:"serializer:json" json:"selections" bson:"selections"`
	MenuSubtotal        decimal.Decimal  `gorm:"type:decimal(14,2);not null" json:"menu_subtotal" bson:"menu_subtotal"`
	ServiceSurcharge    decimal.Decimal  `gorm:"type:decimal(14,2);not null" json:"service_surcharge" bson:"service_surcharge"`
	DurationHours       int              `json:"duration_hours" bson:"duration_hours"`
	DurationSurcharge   decimal.Decimal  `gorm:"type:decimal(14,2);not null" json:"duration_surcharge" bson:"duration_surcharge"`
	GrandTotal          decimal.Decimal  `gorm:"type:decimal(14,2);not null" json:"grand_total" bson:"grand_total"`
	Timestamps          `bson:",inline"`
}

type ServingsSummary struct {
	TotalPortions    int             `json:"total_portions"`
	PortionsPerGuest decimal.Decimal `json:"portions_per_guest"`
}

// Servings sums the booked portions and spreads them over the guest count.
func (e Event) Servings() ServingsSummary {
	total := 0
	for _, s := range e.Selections {
		total += s.Quantity
	}
	summary := ServingsSummary{TotalPortions: total, PortionsPerGuest: decimal.Zero}
	if e.GuestCount > 0 {
		summary.PortionsPerGuest = decimal.NewFromInt(int64(total)).
			Div(decimal.NewFromInt(int64(e.GuestCount))).Round(2)
	}
	return summary
}
