package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/catering-boq/hub"
	"github.com/yeremiapane/catering-boq/middlewares"
	"github.com/yeremiapane/catering-boq/models"
	"github.com/yeremiapane/catering-boq/repository"
	"github.com/yeremiapane/catering-boq/services"
	"github.com/yeremiapane/catering-boq/utils"
)

// DraftController edits an event step by step before it is booked. Each draft prices
// against the catalog as it was when the draft was opened.
type DraftController struct {
	Store  *repository.Store
	Drafts *services.DraftStore
	Hub    hub.Broadcaster
}

func NewDraftController(store *repository.Store, drafts *services.DraftStore, b hub.Broadcaster) *DraftController {
	return &DraftController{Store: store, Drafts: drafts, Hub: b}
}

func selectionIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.RespondValidation(c, "invalid selection index", map[string]string{"index": "must be an integer"})
		return 0, false
	}
	return index, true
}

func (dc *DraftController) CreateDraft(c *gin.Context) {
	var patch services.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	snap, err := loadCatalog(c.Request.Context(), dc.Store)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	owner, _ := middlewares.CurrentUser(c)
	view := dc.Drafts.Create(owner, snap, services.DraftDetails{})
	if patch != (services.DraftPatch{}) {
		if view, err = dc.Drafts.UpdateDetails(owner, view.ID, patch); err != nil {
			respondStoreError(c, err)
			return
		}
	}
	utils.RespondJSON(c, http.StatusCreated, "Draft created", view)
}

func (dc *DraftController) GetDraft(c *gin.Context) {
	owner, _ := middlewares.CurrentUser(c)
	view, err := dc.Drafts.Get(owner, c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Draft detail", view)
}

func (dc *DraftController) UpdateDraft(c *gin.Context) {
	var patch services.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err)
		return
	}
	owner, _ := middlewares.CurrentUser(c)
	view, err := dc.Drafts.UpdateDetails(owner, c.Param("id"), patch)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Draft updated", view)
}

func (dc *DraftController) DeleteDraft(c *gin.Context) {
	owner, _ := middlewares.CurrentUser(c)
	if err := dc.Drafts.Delete(owner, c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Draft deleted", nil)
}

func (dc *DraftController) AddMenu(c *gin.Context) {
	var req struct {
		MenuName string `json:"menu_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	owner, _ := middlewares.CurrentUser(c)
	view, err := dc.Drafts.AddMenu(owner, c.Param("id"), req.MenuName)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu added", view)
}

// UpdateQuantity -> quantities below one are stored as one
func (dc *DraftController) UpdateQuantity(c *gin.Context) {
	index, ok := selectionIndex(c)
	if !ok {
		return
	}
	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	owner, _ := middlewares.CurrentUser(c)
	view, err := dc.Drafts.UpdateQuantity(owner, c.Param("id"), index, *req.Quantity)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Quantity updated", view)
}

func (dc *DraftController) RemoveSelection(c *gin.Context) {
	index, ok := selectionIndex(c)
	if !ok {
		return
	}
	owner, _ := middlewares.CurrentUser(c)
	view, err := dc.Drafts.RemoveSelection(owner, c.Param("id"), index)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Selection removed", view)
}

// SubmitDraft books the draft as an event at the prices it was quoted with. The draft is
// taken out of the store first so a second submit cannot book it again; it is put back
// when the booking fails.
func (dc *DraftController) SubmitDraft(c *gin.Context) {
	owner, _ := middlewares.CurrentUser(c)
	view, restore, err := dc.Drafts.Take(owner, c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if strings.TrimSpace(view.Details.Name) == "" {
		restore()
		utils.RespondValidation(c, "draft is incomplete", map[string]string{"name": "is required"})
		return
	}
	if len(view.Quote.Selections) == 0 {
		restore()
		utils.RespondError(c, http.StatusBadRequest, ErrEmptySelection)
		return
	}

	ev := models.Event{
		Name:           strings.TrimSpace(view.Details.Name),
		EventType:      view.Details.EventType,
		CustomerMobile: view.Details.CustomerMobile,
		GuestCount:     view.Details.GuestCount,
		EventDate:      view.Details.EventDate,
	}
	view.Quote.ApplyTo(&ev)

	if err := persistEvent(c.Request.Context(), dc.Store, dc.Hub, &ev); err != nil {
		restore()
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Event created", eventDetail{Event: ev, Servings: ev.Servings()})
}
