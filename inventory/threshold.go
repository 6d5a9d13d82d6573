// Package inventory flags ingredients that need restocking.
package inventory

import "github.com/yeremiapane/catering-boq/models"

// Source lists ingredients in catalog order. catalog.Snapshot satisfies it.
type Source interface {
	Ingredients() []models.Ingredient
}

// LowStockIngredients returns every ingredient whose stock is at or below its minimum,
// keeping catalog order.
func LowStockIngredients(src Source) []models.Ingredient {
	low := make([]models.Ingredient, 0)
	for _, ing := range src.Ingredients() {
		if ing.IsLowStock() {
			low = append(low, ing)
		}
	}
	return low
}
