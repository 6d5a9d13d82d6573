package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/catering-boq/repository"
	"github.com/yeremiapane/catering-boq/services"
	"github.com/yeremiapane/catering-boq/utils"
)

type NotificationController struct {
	Store   *repository.Store
	Monitor *services.StockMonitor
}

func NewNotificationController(store *repository.Store, monitor *services.StockMonitor) *NotificationController {
	return &NotificationController{Store: store, Monitor: monitor}
}

// GetNotifications -> newest first
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	notes, err := nc.Store.Notifications.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	for i, j := 0, len(notes)-1; i < j; i, j = i+1, j-1 {
		notes[i], notes[j] = notes[j], notes[i]
	}
	utils.RespondJSON(c, http.StatusOK, "List of notifications", notes)
}

// CheckInventory runs the low stock check now instead of waiting for the schedule.
func (nc *NotificationController) CheckInventory(c *gin.Context) {
	report, err := nc.Monitor.Check(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory checked", report)
}
