package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/catering-boq/hub"
	"github.com/yeremiapane/catering-boq/models"
	"github.com/yeremiapane/catering-boq/pricing"
	"github.com/yeremiapane/catering-boq/repository"
	"github.com/yeremiapane/catering-boq/utils"
)

type MenuController struct {
	Store *repository.Store
	Hub   hub.Broadcaster
}

func NewMenuController(store *repository.Store, b hub.Broadcaster) *MenuController {
	return &MenuController{Store: store, Hub: b}
}

type recipeLine struct {
	Name     string           `json:"name" binding:"required"`
	Quantity *decimal.Decimal `json:"quantity" binding:"required"`
}

type menuRequest struct {
	Name   string           `json:"name" binding:"max=255"`
	Price  *decimal.Decimal `json:"price" binding:"required"`
	Recipe []recipeLine     `json:"recipe" binding:"required,min=1,dive"`
}

// toModel checks the request against the current ingredient list. Every recipe line has
// to name a known ingredient with a positive quantity.
func (mc *MenuController) toModel(c *gin.Context, req menuRequest) (models.Menu, map[string]string, error) {
	problems := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		problems["name"] = "is required"
	}
	if !req.Price.IsPositive() {
		problems["price"] = "must be greater than 0"
	}

	ingredients, err := mc.Store.Ingredients.FindAll(c.Request.Context())
	if err != nil {
		return models.Menu{}, nil, err
	}
	known := make(map[string]bool, len(ingredients))
	for _, ing := range ingredients {
		known[ing.Name] = true
	}

	menu := models.Menu{Name: strings.TrimSpace(req.Name), Price: *req.Price}
	for i, line := range req.Recipe {
		field := fmt.Sprintf("recipe[%d]", i)
		switch {
		case !known[line.Name]:
			problems[field] = fmt.Sprintf("unknown ingredient %q", line.Name)
		case !line.Quantity.IsPositive():
			problems[field] = "quantity must be greater than 0"
		}
		menu.Recipe = append(menu.Recipe, models.RecipeIngredient{Name: line.Name, Quantity: *line.Quantity})
	}
	return menu, problems, nil
}

func (mc *MenuController) ListMenus(c *gin.Context) {
	menus, err := mc.Store.Menus.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

func (mc *MenuController) GetMenu(c *gin.Context) {
	menu, err := mc.Store.Menus.FindByKey(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

// GetBreakdown -> per-portion ingredient cost of one menu
func (mc *MenuController) GetBreakdown(c *gin.Context) {
	snap, err := loadCatalog(c.Request.Context(), mc.Store)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	name := c.Param("name")
	menu, ok := snap.MenuByName(name)
	if !ok {
		respondStoreError(c, fmt.Errorf("%w: %s", pricing.ErrUnknownMenu, name))
		return
	}

	lines := pricing.BreakdownFor(snap, name)
	utils.RespondJSON(c, http.StatusOK, "Menu cost breakdown", gin.H{
		"menu":             menu.Name,
		"price":            menu.Price,
		"ingredients":      lines,
		"ingredient_total": pricing.BreakdownTotal(lines),
	})
}

func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	menu, problems, err := mc.toModel(c, req)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if len(problems) > 0 {
		utils.RespondValidation(c, "invalid menu", problems)
		return
	}

	if err := mc.Store.Menus.Create(c.Request.Context(), &menu); err != nil {
		respondStoreError(c, err)
		return
	}

	mc.Hub.Broadcast(catalogChange("menu", "created", menu))
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

func (mc *MenuController) UpdateMenu(c *gin.Context) {
	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Name == "" {
		req.Name = c.Param("name")
	}
	menu, problems, err := mc.toModel(c, req)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if len(problems) > 0 {
		utils.RespondValidation(c, "invalid menu", problems)
		return
	}

	if err := mc.Store.Menus.Update(c.Request.Context(), c.Param("name"), &menu); err != nil {
		respondStoreError(c, err)
		return
	}

	mc.Hub.Broadcast(catalogChange("menu", "updated", menu))
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

func (mc *MenuController) DeleteMenu(c *gin.Context) {
	name := c.Param("name")
	if err := mc.Store.Menus.Delete(c.Request.Context(), name); err != nil {
		respondStoreError(c, err)
		return
	}

	mc.Hub.Broadcast(catalogChange("menu", "deleted", gin.H{"name": name}))
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", nil)
}
