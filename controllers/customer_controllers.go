package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/catering-boq/hub"
	"github.com/yeremiapane/catering-boq/models"
	"github.com/yeremiapane/catering-boq/repository"
	"github.com/yeremiapane/catering-boq/utils"
)

const dateLayout = "2006-01-02"

type CustomerController struct {
	Store *repository.Store
	Hub   hub.Broadcaster
}

func NewCustomerController(store *repository.Store, b hub.Broadcaster) *CustomerController {
	return &CustomerController{Store: store, Hub: b}
}

type customerRequest struct {
	Mobile        string `json:"mobile"`
	CompanyName   string `json:"company_name" binding:"required,max=255"`
	ContactPerson string `json:"contact_person" binding:"required,max=255"`
	Address       string `json:"address"`
	Email         string `json:"email" binding:"omitempty,email"`
	Twitter       string `json:"twitter" binding:"max=100"`
	Instagram     string `json:"instagram" binding:"max=100"`
	Facebook      string `json:"facebook" binding:"max=100"`
	Discord       string `json:"discord" binding:"max=100"`
	LinkedIn      string `json:"linkedin" binding:"max=100"`
	CateringType  string `json:"catering_type" binding:"max=100"`
	DateJoined    string `json:"date_joined" binding:"omitempty,datetime=2006-01-02"`
}

func (r customerRequest) toModel() (models.Customer, map[string]string) {
	problems := map[string]string{}
	if !utils.ValidatePhone(r.Mobile) {
		problems["mobile"] = "must be a valid phone number"
	}
	joined := r.DateJoined
	if joined == "" {
		joined = time.Now().Format(dateLayout)
	}
	return models.Customer{
		Mobile:        utils.NormalizePhone(r.Mobile),
		CompanyName:   strings.TrimSpace(r.CompanyName),
		ContactPerson: strings.TrimSpace(r.ContactPerson),
		Address:       r.Address,
		Email:         r.Email,
		Twitter:       r.Twitter,
		Instagram:     r.Instagram,
		Facebook:      r.Facebook,
		Discord:       r.Discord,
		LinkedIn:      r.LinkedIn,
		CateringType:  r.CateringType,
		DateJoined:    joined,
	}, problems
}

func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	customers, err := cc.Store.Customers.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

func (cc *CustomerController) GetCustomer(c *gin.Context) {
	customer, err := cc.Store.Customers.FindByKey(c.Request.Context(), utils.NormalizePhone(c.Param("mobile")))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}

func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	customer, problems := req.toModel()
	if len(problems) > 0 {
		utils.RespondValidation(c, "invalid customer", problems)
		return
	}

	if err := cc.Store.Customers.Create(c.Request.Context(), &customer); err != nil {
		respondStoreError(c, err)
		return
	}

	cc.Hub.Broadcast(hub.Message{Event: hub.EventCustomer, Data: customer})
	utils.RespondJSON(c, http.StatusCreated, "Customer created", customer)
}

// UpdateCustomer replaces a customer record. The mobile number in the path stays the key
// when the body does not carry one.
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	key := utils.NormalizePhone(c.Param("mobile"))
	if req.Mobile == "" {
		req.Mobile = key
	}

	existing, err := cc.Store.Customers.FindByKey(c.Request.Context(), key)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if req.DateJoined == "" {
		req.DateJoined = existing.DateJoined
	}

	customer, problems := req.toModel()
	if len(problems) > 0 {
		utils.RespondValidation(c, "invalid customer", problems)
		return
	}
	if err := cc.Store.Customers.Update(c.Request.Context(), key, &customer); err != nil {
		respondStoreError(c, err)
		return
	}

	cc.Hub.Broadcast(hub.Message{Event: hub.EventCustomer, Data: customer})
	utils.RespondJSON(c, http.StatusOK, "Customer updated", customer)
}

func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	if err := cc.Store.Customers.Delete(c.Request.Context(), utils.NormalizePhone(c.Param("mobile"))); err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer deleted", nil)
}
