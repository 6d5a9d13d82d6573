package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/catering-boq/catalog"
	"github.com/yeremiapane/catering-boq/pricing"
	"github.com/yeremiapane/catering-boq/repository"
	"github.com/yeremiapane/catering-boq/services"
	"github.com/yeremiapane/catering-boq/utils"
)

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var (
	ErrInvalidCredentials = &CustomError{"invalid credentials"}
	ErrNoPermission       = &CustomError{"you do not have permission to do this"}
	ErrInternal           = &CustomError{"internal server error"}
	ErrUnknownCustomer    = &CustomError{"customer not found"}
	ErrEmptySelection     = &CustomError{"at least one menu selection is required"}
)

// respondBindError answers a failed ShouldBindJSON with per-field messages when the
// validator produced them.
func respondBindError(c *gin.Context, err error) {
	if fields := utils.ValidationErrors(err); fields != nil {
		utils.RespondValidation(c, "invalid request", fields)
		return
	}
	utils.RespondError(c, http.StatusBadRequest, err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, pricing.ErrUnknownMenu),
		errors.Is(err, pricing.ErrSelectionNotFound),
		errors.Is(err, services.ErrDraftNotFound),
		errors.Is(err, ErrUnknownCustomer):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondStoreError maps domain and persistence errors to a status. Anything unexpected
// is logged and hidden behind a generic 500.
func respondStoreError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
		utils.ErrorLogger.WithField("path", c.FullPath()).WithError(err).Error("request failed")
		utils.RespondError(c, code, ErrInternal)
		return
	}
	utils.RespondError(c, code, err)
}

func loadCatalog(ctx context.Context, store *repository.Store) (*catalog.Snapshot, error) {
	return catalog.Load(ctx, store.Ingredients, store.Menus, store.CateringTypes)
}
