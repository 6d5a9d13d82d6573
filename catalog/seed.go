package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/catering-boq/models"
	"github.com/yeremiapane/catering-boq/repository"
)

type seedIngredient struct {
	name, category, unit     string
	unitPrice, stock, minQty int64
}

var defaultIngredients = []seedIngredient{
	{"Rice", "Grains", models.UnitGram, 300, 50000, 5000},
	{"Tomatoes", "Vegetables", models.UnitGram, 200, 20000, 2000},
	{"Onions", "Vegetables", models.UnitGram, 100, 15000, 1500},
	{"Pepper", "Vegetables", models.UnitGram, 150, 8000, 800},
	{"Chicken Stock", "Stocks & Sauces", models.UnitMillilitre, 250, 10000, 1000},
	{"Seasoning", "Spices & Seasoning", models.UnitGram, 100, 3000, 300},
	{"Oil", "Oils", models.UnitMillilitre, 150, 5000, 500},
	{"Spices", "Spices & Seasoning", models.UnitGram, 250, 2000, 200},
	{"Mixed Vegetables", "Vegetables", models.UnitGram, 400, 12000, 1200},
	{"Eggs", "Protein", models.UnitPieces, 200, 500, 50},
	{"Soy Sauce", "Stocks & Sauces", models.UnitMillilitre, 100, 2000, 200},
	{"Garlic", "Vegetables", models.UnitGram, 150, 3000, 300},
	{"Green Peas", "Vegetables", models.UnitGram, 250, 4000, 400},
	{"Chicken Breast", "Protein", models.UnitGram, 1500, 8000, 1000},
	{"Marinade Mix", "Stocks & Sauces", models.UnitMillilitre, 200, 3000, 300},
	{"Lemon", "Vegetables", models.UnitPieces, 100, 100, 10},
	{"Herbs", "Spices & Seasoning", models.UnitGram, 300, 1500, 150},
	{"Beef", "Protein", models.UnitGram, 1200, 6000, 800},
	{"Ginger", "Vegetables", models.UnitGram, 100, 2000, 200},
	{"Beef Stock", "Stocks & Sauces", models.UnitMillilitre, 150, 5000, 500},
	{"Lettuce", "Vegetables", models.UnitGram, 200, 3000, 300},
	{"Cucumber", "Vegetables", models.UnitGram, 100, 4000, 400},
	{"Carrots", "Vegetables", models.UnitGram, 100, 3500, 350},
	{"Olive Oil", "Oils", models.UnitMillilitre, 150, 2000, 200},
	{"Vinegar", "Stocks & Sauces", models.UnitMillilitre, 100, 1500, 150},
	{"Yam", "Tubers", models.UnitGram, 800, 25000, 3000},
	{"Water", "Other", models.UnitMillilitre, 50, 100000, 10000},
	{"Salt", "Spices & Seasoning", models.UnitGram, 50, 5000, 500},
	{"Processing", "Other", models.UnitService, 300, 1000, 100},
}

type seedLine struct {
	name string
	qty  int64
}

type seedMenu struct {
	name   string
	price  int64
	recipe []seedLine
}

var defaultMenus = []seedMenu{
	{"Jollof Rice", 1500, []seedLine{
		{"Rice", 200}, {"Tomatoes", 100}, {"Onions", 50}, {"Pepper", 30},
		{"Chicken Stock", 300}, {"Seasoning", 20}, {"Oil", 30}, {"Spices", 10},
	}},
	{"Fried Rice", 1800, []seedLine{
		{"Rice", 200}, {"Mixed Vegetables", 150}, {"Eggs", 2}, {"Soy Sauce", 20}, {"Onions", 50},
		{"Garlic", 20}, {"Oil", 40}, {"Seasoning", 15}, {"Green Peas", 80},
	}},
	{"Grilled Chicken", 2500, []seedLine{
		{"Chicken Breast", 300}, {"Marinade Mix", 50}, {"Lemon", 1}, {"Herbs", 20},
		{"Garlic", 15}, {"Oil", 20}, {"Pepper", 10}, {"Salt", 5},
	}},
	{"Beef Stew", 2200, []seedLine{
		{"Beef", 250}, {"Tomatoes", 150}, {"Onions", 100}, {"Pepper", 50},
		{"Ginger", 20}, {"Garlic", 20}, {"Beef Stock", 200},
	}},
	{"Vegetable Salad", 800, []seedLine{
		{"Lettuce", 100}, {"Tomatoes", 80}, {"Cucumber", 80}, {"Carrots", 60},
		{"Olive Oil", 20}, {"Vinegar", 10},
	}},
	{"Pounded Yam", 1200, []seedLine{
		{"Yam", 400}, {"Water", 500}, {"Processing", 1},
	}},
}

var defaultCateringTypes = []struct {
	name string
	cost int64
}{
	{"Full Service", 50000},
	{"Drop-off", 10000},
	{"Buffet Style", 30000},
	{"Plated Service", 40000},
	{"Cocktail Reception", 20000},
}

// DefaultIngredients is the reference ingredient price list the business started with.
func DefaultIngredients() []models.Ingredient {
	out := make([]models.Ingredient, 0, len(defaultIngredients))
	for _, s := range defaultIngredients {
		out = append(out, models.Ingredient{
			Name:      s.name,
			Category:  s.category,
			UnitPrice: decimal.NewFromInt(s.unitPrice),
			Unit:      s.unit,
			Stock:     decimal.NewFromInt(s.stock),
			MinStock:  decimal.NewFromInt(s.minQty),
		})
	}
	return out
}

func DefaultMenus() []models.Menu {
	out := make([]models.Menu, 0, len(defaultMenus))
	for _, s := range defaultMenus {
		recipe := make([]models.RecipeIngredient, 0, len(s.recipe))
		for _, line := range s.recipe {
			recipe = append(recipe, models.RecipeIngredient{Name: line.name, Quantity: decimal.NewFromInt(line.qty)})
		}
		out = append(out, models.Menu{Name: s.name, Price: decimal.NewFromInt(s.price), Recipe: recipe})
	}
	return out
}

func DefaultCateringTypes() []models.CateringType {
	out := make([]models.CateringType, 0, len(defaultCateringTypes))
	for _, s := range defaultCateringTypes {
		out = append(out, models.CateringType{Name: s.name, ExtraCost: decimal.NewFromInt(s.cost)})
	}
	return out
}

// Default is the whole reference catalog as a snapshot.
func Default() *Snapshot {
	return NewSnapshot(DefaultIngredients(), DefaultMenus(), DefaultCateringTypes())
}

// Seed writes the reference data into empty collections. Collections that already hold
// records are left alone, so it is safe to call on every start.
func Seed(ctx context.Context, store *repository.Store) (int, error) {
	total := 0
	n, err := seedCollection(ctx, store.Ingredients, DefaultIngredients())
	if err != nil {
		return total, fmt.Errorf("seed ingredients: %w", err)
	}
	total += n
	if n, err = seedCollection(ctx, store.Menus, DefaultMenus()); err != nil {
		return total, fmt.Errorf("seed menus: %w", err)
	}
	total += n
	if n, err = seedCollection(ctx, store.CateringTypes, DefaultCateringTypes()); err != nil {
		return total, fmt.Errorf("seed catering types: %w", err)
	}
	total += n
	return total, nil
}

func seedCollection[T any](ctx context.Context, repo repository.Repository[T], records []T) (int, error) {
	existing, err := repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	created := 0
	for i := range records {
		err := repo.Create(ctx, &records[i])
		if errors.Is(err, repository.ErrDuplicate) {
			continue
		}
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
