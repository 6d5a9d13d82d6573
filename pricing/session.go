package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/catering-boq/models"
)

var (
	ErrUnknownMenu       = errors.New("menu not found")
	ErrSelectionNotFound = errors.New("selection not found")
)

// DefaultRatePerHour is the duration surcharge charged per started hour.
var DefaultRatePerHour = decimal.NewFromInt(10000)

type State int

const (
	StateEmpty State = iota
	StateHasSelections
)

func (s State) String() string {
	if s == StateHasSelections {
		return "has_selections"
	}
	return "empty"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "empty":
		*s = StateEmpty
	case "has_selections":
		*s = StateHasSelections
	default:
		return fmt.Errorf("unknown session state %q", text)
	}
	return nil
}

// Session is one in-progress event being priced. It is not safe for concurrent use.
type Session struct {
	catalog    Catalog
	selections []models.EventSelection
}

func NewSession(c Catalog) *Session {
	return &Session{catalog: c}
}

// AddMenuSelection appends one portion of the named menu at its current catalog price.
// Unknown menus are rejected and leave the session untouched.
func (s *Session) AddMenuSelection(menuName string) (models.EventSelection, error) {
	menu, ok := s.catalog.MenuByName(menuName)
	if !ok {
		return models.EventSelection{}, fmt.Errorf("%w: %s", ErrUnknownMenu, menuName)
	}
	sel := models.EventSelection{
		MenuName:    menu.Name,
		Quantity:    1,
		UnitPrice:   menu.Price,
		TotalPrice:  menu.Price,
		Ingredients: breakdown(s.catalog, menu),
	}
	s.selections = append(s.selections, sel)
	return sel, nil
}

// UpdateQuantity sets the portion count of the selection at index, raising anything
// below one to one.
func (s *Session) UpdateQuantity(index, quantity int) (models.EventSelection, error) {
	if index < 0 || index >= len(s.selections) {
		return models.EventSelection{}, fmt.Errorf("%w: index %d", ErrSelectionNotFound, index)
	}
	if quantity < 1 {
		quantity = 1
	}
	sel := &s.selections[index]
	sel.Quantity = quantity
	sel.TotalPrice = sel.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return *sel, nil
}

func (s *Session) RemoveSelection(index int) error {
	if index < 0 || index >= len(s.selections) {
		return fmt.Errorf("%w: index %d", ErrSelectionNotFound, index)
	}
	s.selections = append(s.selections[:index], s.selections[index+1:]...)
	return nil
}

// Selections returns a copy of the current selections in the order they were added.
func (s *Session) Selections() []models.EventSelection {
	out := make([]models.EventSelection, len(s.selections))
	copy(out, s.selections)
	return out
}

func (s *Session) State() State {
	if len(s.selections) == 0 {
		return StateEmpty
	}
	return StateHasSelections
}

func (s *Session) MenuSubtotal() decimal.Decimal {
	total := decimal.Zero
	for _, sel := range s.selections {
		total = total.Add(sel.TotalPrice)
	}
	return total
}

func (s *Session) ServiceSurcharge(serviceType string) decimal.Decimal {
	if serviceType == "" {
		return decimal.Zero
	}
	return s.catalog.ServiceSurcharge(serviceType)
}

func (s *Session) DurationSurcharge(start, end TimeOfDay, ratePerHour decimal.Decimal) decimal.Decimal {
	return DurationSurcharge(start, end, ratePerHour)
}

func (s *Session) GrandTotal(serviceType string, start, end TimeOfDay, ratePerHour decimal.Decimal) decimal.Decimal {
	return s.MenuSubtotal().
		Add(s.ServiceSurcharge(serviceType)).
		Add(DurationSurcharge(start, end, ratePerHour))
}

// DurationSurcharge charges ratePerHour for every started hour of the event.
func DurationSurcharge(start, end TimeOfDay, ratePerHour decimal.Decimal) decimal.Decimal {
	return ratePerHour.Mul(decimal.NewFromInt(int64(DurationHours(start, end))))
}
