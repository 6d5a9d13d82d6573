package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/catering-boq/pricing"
	"github.com/yeremiapane/catering-boq/repository"
	"github.com/yeremiapane/catering-boq/utils"
)

// EstimateController prices a request without storing anything.
type EstimateController struct {
	Store       *repository.Store
	RatePerHour decimal.Decimal
}

func NewEstimateController(store *repository.Store, ratePerHour decimal.Decimal) *EstimateController {
	return &EstimateController{Store: store, RatePerHour: ratePerHour}
}

func (ec *EstimateController) CreateEstimate(c *gin.Context) {
	var req struct {
		CateringServiceType string            `json:"catering_service_type"`
		StartTime           pricing.TimeOfDay `json:"start_time"`
		EndTime             pricing.TimeOfDay `json:"end_time"`
		Items               []pricing.Item    `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	snap, err := loadCatalog(c.Request.Context(), ec.Store)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	quote, err := pricing.QuoteFor(snap, req.Items, pricing.Options{
		CateringServiceType: req.CateringServiceType,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		RatePerHour:         ec.RatePerHour,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Estimate", quote)
}
