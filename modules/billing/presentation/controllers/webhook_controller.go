package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing/domain/aggregates/payment"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing/services"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/application"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/composables"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/httpapi"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/middleware"
)

const (
	webhookSignatureHeader = "X-Razorpay-Signature"
	maxWebhookBodySize     = 1 << 20
)

// WebhookController receives gateway notifications. It is unauthenticated;
// trust comes from the HMAC signature over the raw body.
type WebhookController struct {
	app      application.Application
	billing  *services.BillingService
	basePath string
}

func NewWebhookController(app application.Application) application.Controller {
	return &WebhookController{
		app:      app,
		billing:  app.Service(services.BillingService{}).(*services.BillingService),
		basePath: "/webhooks/payments",
	}
}

func (c *WebhookController) Key() string {
	return c.basePath
}

func (c *WebhookController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.WithTransaction())
	router.HandleFunc("", c.Receive).Methods(http.MethodPost)
}

func (c *WebhookController) Receive(w http.ResponseWriter, r *http.Request) {
	rawBody, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodySize))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "WEBHOOK_UNREADABLE_BODY", "failed to read body")
		return
	}

	err = c.billing.HandleWebhook(r.Context(), rawBody, r.Header.Get(webhookSignatureHeader))
	switch {
	case err == nil:
		_ = httpapi.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, payment.ErrSignatureMismatch):
		writeError(w, r, http.StatusBadRequest, "WEBHOOK_INVALID_SIGNATURE", "invalid signature")
	case errors.Is(err, payment.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "PAYMENT_ORDER_NOT_FOUND", "payment order not found")
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("payment webhook failed")
		writeError(w, r, http.StatusInternalServerError, "WEBHOOK_INTERNAL", "internal error")
	}
}
