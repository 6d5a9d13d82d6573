package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/catering-boq/hub"
	"github.com/yeremiapane/catering-boq/models"
	"github.com/yeremiapane/catering-boq/repository"
	"github.com/yeremiapane/catering-boq/utils"
)

// CateringTypeController manages the service types whose extra cost feeds the service
// surcharge.
type CateringTypeController struct {
	Store *repository.Store
	Hub   hub.Broadcaster
}

func NewCateringTypeController(store *repository.Store, b hub.Broadcaster) *CateringTypeController {
	return &CateringTypeController{Store: store, Hub: b}
}

type cateringTypeRequest struct {
	Name      string           `json:"name" binding:"max=100"`
	ExtraCost *decimal.Decimal `json:"extra_cost" binding:"required"`
}

func (r cateringTypeRequest) problems() map[string]string {
	out := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		out["name"] = "is required"
	}
	if r.ExtraCost.IsNegative() {
		out["extra_cost"] = "must not be negative"
	}
	return out
}

func (cc *CateringTypeController) ListCateringTypes(c *gin.Context) {
	types, err := cc.Store.CateringTypes.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of catering types", types)
}

func (cc *CateringTypeController) CreateCateringType(c *gin.Context) {
	var req cateringTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if problems := req.problems(); len(problems) > 0 {
		utils.RespondValidation(c, "invalid catering type", problems)
		return
	}

	ct := models.CateringType{Name: strings.TrimSpace(req.Name), ExtraCost: *req.ExtraCost}
	if err := cc.Store.CateringTypes.Create(c.Request.Context(), &ct); err != nil {
		respondStoreError(c, err)
		return
	}

	cc.Hub.Broadcast(catalogChange("catering_type", "created", ct))
	utils.RespondJSON(c, http.StatusCreated, "Catering type created", ct)
}

func (cc *CateringTypeController) UpdateCateringType(c *gin.Context) {
	var req cateringTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Name == "" {
		req.Name = c.Param("name")
	}
	if problems := req.problems(); len(problems) > 0 {
		utils.RespondValidation(c, "invalid catering type", problems)
		return
	}

	ct := models.CateringType{Name: strings.TrimSpace(req.Name), ExtraCost: *req.ExtraCost}
	if err := cc.Store.CateringTypes.Update(c.Request.Context(), c.Param("name"), &ct); err != nil {
		respondStoreError(c, err)
		return
	}

	cc.Hub.Broadcast(catalogChange("catering_type", "updated", ct))
	utils.RespondJSON(c, http.StatusOK, "Catering type updated", ct)
}

func (cc *CateringTypeController) DeleteCateringType(c *gin.Context) {
	name := c.Param("name")
	if err := cc.Store.CateringTypes.Delete(c.Request.Context(), name); err != nil {
		respondStoreError(c, err)
		return
	}

	cc.Hub.Broadcast(catalogChange("catering_type", "deleted", gin.H{"name": name}))
	utils.RespondJSON(c, http.StatusOK, "Catering type deleted", nil)
}
