package controllers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/catering-boq/hub"
	"github.com/yeremiapane/catering-boq/models"
	"github.com/yeremiapane/catering-boq/pricing"
	"github.com/yeremiapane/catering-boq/repository"
	"github.com/yeremiapane/catering-boq/services"
	"github.com/yeremiapane/catering-boq/utils"
)

type EventController struct {
	Store       *repository.Store
	Hub         hub.Broadcaster
	RatePerHour decimal.Decimal
}

func NewEventController(store *repository.Store, b hub.Broadcaster, ratePerHour decimal.Decimal) *EventController {
	return &EventController{Store: store, Hub: b, RatePerHour: ratePerHour}
}

type eventRequest struct {
	Name                string            `json:"name" binding:"required,max=255"`
	EventType           string            `json:"event_type" binding:"max=50"`
	CustomerMobile      string            `json:"customer_mobile"`
	GuestCount          int               `json:"guest_count" binding:"gte=0"`
	EventDate           string            `json:"event_date" binding:"omitempty,datetime=2006-01-02"`
	CateringServiceType string            `json:"catering_service_type"`
	StartTime           pricing.TimeOfDay `json:"start_time"`
	EndTime             pricing.TimeOfDay `json:"end_time"`
	Items               []pricing.Item    `json:"items" binding:"required,min=1,dive"`
}

type eventDetail struct {
	models.Event
	Servings models.ServingsSummary `json:"servings"`
}

// persistEvent stores a priced event under a fresh id. A customer mobile, when given,
// has to belong to a known customer.
func persistEvent(ctx context.Context, store *repository.Store, b hub.Broadcaster, ev *models.Event) error {
	if ev.CustomerMobile != "" {
		ev.CustomerMobile = utils.NormalizePhone(ev.CustomerMobile)
		if _, err := store.Customers.FindByKey(ctx, ev.CustomerMobile); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrUnknownCustomer, ev.CustomerMobile)
			}
			return err
		}
	}

	ev.EventID = uuid.NewString()
	if err := store.Events.Create(ctx, ev); err != nil {
		return err
	}
	b.Broadcast(hub.Message{Event: hub.EventCreated, Data: ev})
	utils.InfoLogger.WithField("event_id", ev.EventID).
		WithField("grand_total", ev.GrandTotal.String()).
		Info("event booked")
	return nil
}

func (ec *EventController) ListEvents(c *gin.Context) {
	events, err := ec.Store.Events.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if mobile := c.Query("customer"); mobile != "" {
		mobile = utils.NormalizePhone(mobile)
		filtered := make([]models.Event, 0, len(events))
		for _, ev := range events {
			if ev.CustomerMobile == mobile {
				filtered = append(filtered, ev)
			}
		}
		events = filtered
	}
	utils.RespondJSON(c, http.StatusOK, "List of events", events)
}

// CreateEvent prices the request against the current catalog and books it.
func (ec *EventController) CreateEvent(c *gin.Context) {
	var req eventRequest
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

	ev := models.Event{
		Name:           strings.TrimSpace(req.Name),
		EventType:      req.EventType,
		CustomerMobile: req.CustomerMobile,
		GuestCount:     req.GuestCount,
		EventDate:      req.EventDate,
	}
	quote.ApplyTo(&ev)

	if err := persistEvent(c.Request.Context(), ec.Store, ec.Hub, &ev); err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Event created", eventDetail{Event: ev, Servings: ev.Servings()})
}

func (ec *EventController) GetEvent(c *gin.Context) {
	ev, err := ec.Store.Events.FindByKey(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Event detail", eventDetail{Event: *ev, Servings: ev.Servings()})
}

func (ec *EventController) DeleteEvent(c *gin.Context) {
	id := c.Param("id")
	if err := ec.Store.Events.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err)
		return
	}
	ec.Hub.Broadcast(hub.Message{Event: hub.EventDeleted, Data: gin.H{"event_id": id}})
	utils.RespondJSON(c, http.StatusOK, "Event deleted", nil)
}

// DownloadEstimate -> printable bill of quantities
func (ec *EventController) DownloadEstimate(c *gin.Context) {
	ctx := c.Request.Context()
	ev, err := ec.Store.Events.FindByKey(ctx, c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	var customer *models.Customer
	if ev.CustomerMobile != "" {
		customer, err = ec.Store.Customers.FindByKey(ctx, ev.CustomerMobile)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			respondStoreError(c, err)
			return
		}
	}

	var buf bytes.Buffer
	if err := services.RenderEstimatePDF(&buf, *ev, customer); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="boq-%s.pdf"`, ev.EventID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
