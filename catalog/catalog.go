// Package catalog holds the reference data the pricing engine reads: ingredient prices
// and stock, menu recipes and catering service surcharges.
package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/catering-boq/models"
)

// Snapshot is an immutable view of the catalog taken at one point in time. Pricing
// sessions hold on to a snapshot so prices cannot move under them mid-session.
type Snapshot struct {
	ingredients  []models.Ingredient
	ingredientAt map[string]int
	menus        []models.Menu
	menuAt       map[string]int
	surcharges   map[string]decimal.Decimal
}

// NewSnapshot copies the given records. Later duplicates of a name replace earlier ones.
func NewSnapshot(ingredients []models.Ingredient, menus []models.Menu, serviceTypes []models.CateringType) *Snapshot {
	s := &Snapshot{
		ingredientAt: make(map[string]int, len(ingredients)),
		menuAt:       make(map[string]int, len(menus)),
		surcharges:   make(map[string]decimal.Decimal, len(serviceTypes)),
	}
	for _, ing := range ingredients {
		if i, ok := s.ingredientAt[ing.Name]; ok {
			s.ingredients[i] = ing
			continue
		}
		s.ingredientAt[ing.Name] = len(s.ingredients)
		s.ingredients = append(s.ingredients, ing)
	}
	for _, menu := range menus {
		menu.Recipe = append([]models.RecipeIngredient(nil), menu.Recipe...)
		if i, ok := s.menuAt[menu.Name]; ok {
			s.menus[i] = menu
			continue
		}
		s.menuAt[menu.Name] = len(s.menus)
		s.menus = append(s.menus, menu)
	}
	for _, st := range serviceTypes {
		s.surcharges[st.Name] = st.ExtraCost
	}
	return s
}

func (s *Snapshot) IngredientByName(name string) (models.Ingredient, bool) {
	i, ok := s.ingredientAt[name]
	if !ok {
		return models.Ingredient{}, false
	}
	return s.ingredients[i], true
}

func (s *Snapshot) MenuByName(name string) (models.Menu, bool) {
	i, ok := s.menuAt[name]
	if !ok {
		return models.Menu{}, false
	}
	menu := s.menus[i]
	menu.Recipe = append([]models.RecipeIngredient(nil), menu.Recipe...)
	return menu, true
}

// ServiceSurcharge returns the flat extra cost of a catering service type, zero when the
// type is unset or unknown.
func (s *Snapshot) ServiceSurcharge(serviceType string) decimal.Decimal {
	if cost, ok := s.surcharges[serviceType]; ok {
		return cost
	}
	return decimal.Zero
}

// Ingredients returns the ingredients in catalog order.
func (s *Snapshot) Ingredients() []models.Ingredient {
	return append([]models.Ingredient(nil), s.ingredients...)
}

// Lister is the read side of a repository.
type Lister[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
}

// Load reads the three reference collections once and freezes them into a Snapshot.
func Load(ctx context.Context, ingredients Lister[models.Ingredient], menus Lister[models.Menu], serviceTypes Lister[models.CateringType]) (*Snapshot, error) {
	ings, err := ingredients.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ingredients: %w", err)
	}
	ms, err := menus.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load menus: %w", err)
	}
	sts, err := serviceTypes.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catering types: %w", err)
	}
	return NewSnapshot(ings, ms, sts), nil
}
