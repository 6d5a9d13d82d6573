package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/catering-boq/models"
)

type Options struct {
	CateringServiceType string
	StartTime           TimeOfDay
	EndTime             TimeOfDay
	RatePerHour         decimal.Decimal
}

// Quote is a priced bill of quantities.
type Quote struct {
	State               State                   `json:"state"`
	Selections          []models.EventSelection `json:"selections"`
	MenuSubtotal        decimal.Decimal         `json:"menu_subtotal"`
	CateringServiceType string                  `json:"catering_service_type"`
	ServiceSurcharge    decimal.Decimal         `json:"service_surcharge"`
	StartTime           TimeOfDay               `json:"start_time"`
	EndTime             TimeOfDay               `json:"end_time"`
	DurationHours       int                     `json:"duration_hours"`
	DurationSurcharge   decimal.Decimal         `json:"duration_surcharge"`
	GrandTotal          decimal.Decimal         `json:"grand_total"`
}

// Item is one line of a stateless pricing request.
type Item struct {
	MenuName string `json:"menu_name" binding:"required"`
	Quantity int    `json:"quantity"`
}

func (s *Session) Quote(opts Options) Quote {
	q := Quote{
		State:               s.State(),
		Selections:          s.Selections(),
		MenuSubtotal:        s.MenuSubtotal(),
		CateringServiceType: opts.CateringServiceType,
		ServiceSurcharge:    s.ServiceSurcharge(opts.CateringServiceType),
		StartTime:           opts.StartTime,
		EndTime:             opts.EndTime,
		DurationHours:       DurationHours(opts.StartTime, opts.EndTime),
		DurationSurcharge:   DurationSurcharge(opts.StartTime, opts.EndTime, opts.RatePerHour),
	}
	q.GrandTotal = q.MenuSubtotal.Add(q.ServiceSurcharge).Add(q.DurationSurcharge)
	return q
}

// QuoteFor prices a whole request in one go. The first unknown menu aborts with
// ErrUnknownMenu.
func QuoteFor(c Catalog, items []Item, opts Options) (Quote, error) {
	s := NewSession(c)
	for i, item := range items {
		if _, err := s.AddMenuSelection(item.MenuName); err != nil {
			return Quote{}, err
		}
		if _, err := s.UpdateQuantity(i, item.Quantity); err != nil {
			return Quote{}, err
		}
	}
	return s.Quote(opts), nil
}

// ApplyTo copies the priced totals onto an event.
func (q Quote) ApplyTo(e *models.Event) {
	e.CateringServiceType = q.CateringServiceType
	e.StartTime = q.StartTime.String()
	e.EndTime = q.EndTime.String()
	e.Selections = q.Selections
	e.MenuSubtotal = q.MenuSubtotal
	e.ServiceSurcharge = q.ServiceSurcharge
	e.DurationHours = q.DurationHours
	e.DurationSurcharge = q.DurationSurcharge
	e.GrandTotal = q.GrandTotal
}
