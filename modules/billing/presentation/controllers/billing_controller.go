package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing/domain/aggregates/payment"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing/services"
	coreservices "github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/services"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/application"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/composables"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/configuration"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/constants"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/httpapi"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/middleware"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/serrors"
)

type createOrderDTO struct {
	Plan string `json:"plan" validate:"required,oneof=pro"`
}

func (d *createOrderDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Plan = strings.TrimSpace(d.Plan)
	if err := constants.Validate.Struct(d); err != nil {
		return serrors.Process(err.(validator.ValidationErrors)), false
	}
	return serrors.ValidationErrors{}, true
}

type verifyPaymentDTO struct {
	GatewayOrderID string `json:"gateway_order_id" validate:"required,max=128"`
	PaymentID      string `json:"payment_id" validate:"required,max=128"`
	Signature      string `json:"signature" validate:"required,max=256"`
}

func (d *verifyPaymentDTO) Ok() (serrors.ValidationErrors, bool) {
	d.GatewayOrderID = strings.TrimSpace(d.GatewayOrderID)
	d.PaymentID = strings.TrimSpace(d.PaymentID)
	d.Signature = strings.TrimSpace(d.Signature)
	if err := constants.Validate.Struct(d); err != nil {
		return serrors.Process(err.(validator.ValidationErrors)), false
	}
	return serrors.ValidationErrors{}, true
}

type orderViewModel struct {
	ID             string    `json:"id"`
	GatewayOrderID string    `json:"gateway_order_id"`
	Plan           string    `json:"plan"`
	Amount         int64     `json:"amount"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	PaymentID      string    `json:"payment_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func toOrderViewModel(o *payment.Order) orderViewModel {
	return orderViewModel{
		ID:             o.ID.String(),
		GatewayOrderID: o.GatewayOrderID,
		Plan:           o.Plan,
		Amount:         o.Amount,
		Currency:       o.Currency,
		Status:         string(o.Status),
		PaymentID:      o.PaymentID,
		CreatedAt:      o.CreatedAt,
	}
}

// BillingController is the authenticated checkout API.
type BillingController struct {
	app      application.Application
	billing  *services.BillingService
	auth     *coreservices.AuthService
	basePath string
}

func NewBillingController(app application.Application) application.Controller {
	return &BillingController{
		app:      app,
		billing:  app.Service(services.BillingService{}).(*services.BillingService),
		auth:     app.Service(coreservices.AuthService{}).(*coreservices.AuthService),
		basePath: "/api/billing",
	}
}

func (c *BillingController) Key() string {
	return c.basePath
}

func (c *BillingController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.Authorize(c.auth))
	router.HandleFunc("/orders", c.ListOrders).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(middleware.Authorize(c.auth))
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("/orders", c.CreateOrder).Methods(http.MethodPost)
	writeRouter.HandleFunc("/verify", c.VerifyPayment).Methods(http.MethodPost)
}

func (c *BillingController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := composables.UseUserID(r.Context())
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	var dto createOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, r, http.StatusBadRequest, "BILLING_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeValidationError(w, r, errs)
		return
	}

	order, err := c.billing.CreateOrder(r.Context(), userID, dto.Plan)
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, toOrderViewModel(order))
}

func (c *BillingController) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	userID, err := composables.UseUserID(r.Context())
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	var dto verifyPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, r, http.StatusBadRequest, "BILLING_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeValidationError(w, r, errs)
		return
	}

	order, err := c.billing.VerifyPayment(r.Context(), userID, services.VerifyPaymentDTO{
		GatewayOrderID: dto.GatewayOrderID,
		PaymentID:      dto.PaymentID,
		Signature:      dto.Signature,
	})
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toOrderViewModel(order))
}

func (c *BillingController) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := composables.UseUserID(r.Context())
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	orders, err := c.billing.ListOrders(r.Context(), userID)
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	out := make([]orderViewModel, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderViewModel(o))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (c *BillingController) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, payment.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "PAYMENT_ORDER_NOT_FOUND", "payment order not found")
	case errors.Is(err, payment.ErrUnknownPlan):
		writeError(w, r, http.StatusUnprocessableEntity, "BILLING_UNKNOWN_PLAN", "unknown plan")
	case errors.Is(err, payment.ErrSignatureMismatch):
		writeError(w, r, http.StatusBadRequest, "PAYMENT_SIGNATURE_MISMATCH", "payment signature mismatch")
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("billing api failed")
		writeError(w, r, http.StatusInternalServerError, "BILLING_INTERNAL", "internal error")
	}
}

func writeValidationError(w http.ResponseWriter, r *http.Request, errs serrors.ValidationErrors) {
	message := "validation failed"
	for _, v := range errs {
		message = v
		break
	}
	writeError(w, r, http.StatusUnprocessableEntity, "BILLING_VALIDATION_FAILED", message)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	requestID := strings.TrimSpace(r.Header.Get(configuration.Use().RequestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	_ = httpapi.WriteError(w, status, code, message, map[string]string{"request_id": requestID})
}
