package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/catering-boq/hub"
	"github.com/yeremiapane/catering-boq/inventory"
	"github.com/yeremiapane/catering-boq/models"
	"github.com/yeremiapane/catering-boq/repository"
	"github.com/yeremiapane/catering-boq/utils"
)

type IngredientController struct {
	Store *repository.Store
	Hub   hub.Broadcaster
}

func NewIngredientController(store *repository.Store, b hub.Broadcaster) *IngredientController {
	return &IngredientController{Store: store, Hub: b}
}

type ingredientRequest struct {
	Name      string           `json:"name" binding:"max=100"`
	Category  string           `json:"category" binding:"max=100"`
	UnitPrice *decimal.Decimal `json:"unit_price" binding:"required"`
	Unit      string           `json:"unit" binding:"required,oneof=g kg ml l pieces service"`
	Stock     *decimal.Decimal `json:"stock"`
	MinStock  *decimal.Decimal `json:"min_stock"`
}

func (r ingredientRequest) problems() map[string]string {
	out := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		out["name"] = "is required"
	}
	if r.UnitPrice != nil && r.UnitPrice.IsNegative() {
		out["unit_price"] = "must not be negative"
	}
	if r.Stock != nil && r.Stock.IsNegative() {
		out["stock"] = "must not be negative"
	}
	if r.MinStock != nil && r.MinStock.IsNegative() {
		out["min_stock"] = "must not be negative"
	}
	return out
}

func (r ingredientRequest) toModel() models.Ingredient {
	ing := models.Ingredient{
		Name:      strings.TrimSpace(r.Name),
		Category:  strings.TrimSpace(r.Category),
		UnitPrice: *r.UnitPrice,
		Unit:      r.Unit,
		Stock:     decimal.Zero,
		MinStock:  decimal.Zero,
	}
	if ing.Category == "" {
		ing.Category = "General"
	}
	if r.Stock != nil {
		ing.Stock = *r.Stock
	}
	if r.MinStock != nil {
		ing.MinStock = *r.MinStock
	}
	return ing
}

// ListIngredients -> ingredients grouped by category
func (ic *IngredientController) ListIngredients(c *gin.Context) {
	ingredients, err := ic.Store.Ingredients.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	grouped := make(map[string][]models.Ingredient)
	for _, ing := range ingredients {
		grouped[ing.Category] = append(grouped[ing.Category], ing)
	}
	utils.RespondJSON(c, http.StatusOK, "List of ingredients", grouped)
}

func (ic *IngredientController) LowStock(c *gin.Context) {
	snap, err := loadCatalog(c.Request.Context(), ic.Store)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ingredients at or below minimum stock", inventory.LowStockIngredients(snap))
}

func (ic *IngredientController) GetIngredient(c *gin.Context) {
	ing, err := ic.Store.Ingredients.FindByKey(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ingredient detail", ing)
}

func (ic *IngredientController) CreateIngredient(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if problems := req.problems(); len(problems) > 0 {
		utils.RespondValidation(c, "invalid ingredient", problems)
		return
	}

	ing := req.toModel()
	if err := ic.Store.Ingredients.Create(c.Request.Context(), &ing); err != nil {
		respondStoreError(c, err)
		return
	}

	ic.Hub.Broadcast(catalogChange("ingredient", "created", ing))
	utils.RespondJSON(c, http.StatusCreated, "Ingredient created", ing)
}

func (ic *IngredientController) UpdateIngredient(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Name == "" {
		req.Name = c.Param("name")
	}
	if problems := req.problems(); len(problems) > 0 {
		utils.RespondValidation(c, "invalid ingredient", problems)
		return
	}

	ctx := c.Request.Context()
	existing, err := ic.Store.Ingredients.FindByKey(ctx, c.Param("name"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	// Omitted stock levels and category keep their stored values.
	ing := req.toModel()
	if req.Stock == nil {
		ing.Stock = existing.Stock
	}
	if req.MinStock == nil {
		ing.MinStock = existing.MinStock
	}
	if strings.TrimSpace(req.Category) == "" {
		ing.Category = existing.Category
	}
	if err := ic.Store.Ingredients.Update(ctx, c.Param("name"), &ing); err != nil {
		respondStoreError(c, err)
		return
	}

	ic.Hub.Broadcast(catalogChange("ingredient", "updated", ing))
	utils.RespondJSON(c, http.StatusOK, "Ingredient updated", ing)
}

func (ic *IngredientController) DeleteIngredient(c *gin.Context) {
	name := c.Param("name")
	if err := ic.Store.Ingredients.Delete(c.Request.Context(), name); err != nil {
		respondStoreError(c, err)
		return
	}

	ic.Hub.Broadcast(catalogChange("ingredient", "deleted", gin.H{"name": name}))
	utils.RespondJSON(c, http.StatusOK, "Ingredient deleted", nil)
}

func catalogChange(kind, action string, record interface{}) hub.Message {
	return hub.Message{
		Event: hub.EventCatalogUpdate,
		Data:  gin.H{"kind": kind, "action": action, "record": record},
	}
}
