// Package pricing turns menu selections, a catering service type and event times into a
// bill of quantities.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/catering-boq/models"
)

// Catalog is the read-only reference data pricing needs. catalog.Snapshot satisfies it.
type Catalog interface {
	IngredientByName(name string) (models.Ingredient, bool)
	MenuByName(name string) (models.Menu, bool)
	ServiceSurcharge(serviceType string) decimal.Decimal
}

// Ingredient unit prices are quoted per 1000 units of their measure.
var priceScale = decimal.NewFromInt(1000)

// LineTotal is the cost of qty units of an ingredient priced at unitPrice, rounded to
// two decimals.
func LineTotal(unitPrice, qty decimal.Decimal) decimal.Decimal {
	return unitPrice.Div(priceScale).Mul(qty).Round(2)
}

// BreakdownFor lists the per-portion ingredient cost of a menu in recipe order. An
// unknown menu gives an empty list and recipe lines naming unknown ingredients are left
// out.
func BreakdownFor(c Catalog, menuName string) []models.IngredientCost {
	menu, ok := c.MenuByName(menuName)
	if !ok {
		return []models.IngredientCost{}
	}
	return breakdown(c, menu)
}

func breakdown(c Catalog, menu models.Menu) []models.IngredientCost {
	lines := make([]models.IngredientCost, 0, len(menu.Recipe))
	for _, ri := range menu.Recipe {
		ing, ok := c.IngredientByName(ri.Name)
		if !ok {
			continue
		}
		lines = append(lines, models.IngredientCost{
			Name:      ing.Name,
			Quantity:  ri.Quantity.String() + ing.Unit,
			UnitPrice: ing.UnitPrice,
			LineTotal: LineTotal(ing.UnitPrice, ri.Quantity),
		})
	}
	return lines
}

// BreakdownTotal sums the line totals of a breakdown.
func BreakdownTotal(lines []models.IngredientCost) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal)
	}
	return total
}
