package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/aggregates/contract"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/entities/revisionrequest"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/entities/terminationrequest"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/presentation/controllers/dtos"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/services"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/application"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/composables"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/middleware"
)

// ClientController is the unauthenticated counterparty API. Every handler
// takes the secret key in the body, never in the URL, so keys stay out of
// access logs.
type ClientController struct {
	app      application.Application
	access   *services.ClientAccessService
	basePath string
}

func NewClientController(app application.Application) application.Controller {
	return &ClientController{
		app:      app,
		access:   app.Service(services.ClientAccessService{}).(*services.ClientAccessService),
		basePath: "/api/client/contracts",
	}
}

func (c *ClientController) Key() string {
	return c.basePath
}

func (c *ClientController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/{id}/access", c.Access).Methods(http.MethodPost)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("/{id}/sign", c.Sign).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id}/revision-requests", c.SubmitRevisionRequest).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id}/termination-requests", c.SubmitTerminationRequest).Methods(http.MethodPost)
}

// writeAccessDenied is the single denial shape for the whole public API.
// Malformed ids, unknown contracts and bad keys must be indistinguishable.
func (c *ClientController) writeAccessDenied(w http.ResponseWriter, r *http.Request) {
	writeAPIError(w, r, http.StatusForbidden, "ACCESS_DENIED", "access denied")
}

func (c *ClientController) Access(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		c.writeAccessDenied(w, r)
		return
	}
	var dto dtos.ClientAccessDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		c.writeAccessDenied(w, r)
		return
	}
	if _, ok := dto.Ok(); !ok {
		c.writeAccessDenied(w, r)
		return
	}

	found, err := c.access.Access(r.Context(), id, dto.SecretKey)
	if err != nil {
		c.writeClientError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toContractViewModel(found))
}

func (c *ClientController) Sign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		c.writeAccessDenied(w, r)
		return
	}
	var dto dtos.ClientAccessDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		c.writeAccessDenied(w, r)
		return
	}
	if _, ok := dto.Ok(); !ok {
		c.writeAccessDenied(w, r)
		return
	}

	signed, err := c.access.Sign(r.Context(), id, dto.SecretKey)
	if err != nil {
		c.writeClientError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toContractViewModel(signed))
}

func (c *ClientController) SubmitRevisionRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		c.writeAccessDenied(w, r)
		return
	}
	var dto dtos.SubmitRevisionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTRACT_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		c.writeValidationError(w, r, errs)
		return
	}

	req, err := c.access.SubmitRevisionRequest(r.Context(), id, dto.SecretKey, dto.AuthorName, dto.AuthorEmail, dto.Message)
	if err != nil {
		c.writeClientError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRevisionRequestViewModel(req))
}

func (c *ClientController) SubmitTerminationRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		c.writeAccessDenied(w, r)
		return
	}
	var dto dtos.SubmitTerminationRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTRACT_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		c.writeValidationError(w, r, errs)
		return
	}

	req, err := c.access.SubmitTerminationRequest(
		r.Context(), id, dto.SecretKey,
		terminationrequest.RequestType(dto.Type), dto.AuthorName, dto.AuthorEmail, dto.Reason,
	)
	if err != nil {
		c.writeClientError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTerminationRequestViewModel(req))
}

func (c *ClientController) writeValidationError(w http.ResponseWriter, r *http.Request, errs map[string]string) {
	message := "validation failed"
	for _, v := range errs {
		message = v
		break
	}
	writeAPIError(w, r, http.StatusUnprocessableEntity, "CONTRACT_VALIDATION_FAILED", message)
}

func (c *ClientController) writeClientError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, contract.ErrAccessDenied):
		c.writeAccessDenied(w, r)
	case errors.Is(err, contract.ErrInvalidTransition):
		writeAPIError(w, r, http.StatusConflict, "CONTRACT_INVALID_TRANSITION", err.Error())
	case errors.Is(err, contract.ErrConflict):
		writeAPIError(w, r, http.StatusConflict, "CONTRACT_CONFLICT", "contract was modified concurrently")
	case errors.Is(err, revisionrequest.ErrEmptyMessage),
		errors.Is(err, revisionrequest.ErrEmptyAuthorName),
		errors.Is(err, terminationrequest.ErrEmptyReason),
		errors.Is(err, terminationrequest.ErrEmptyAuthorName),
		errors.Is(err, terminationrequest.ErrInvalidType):
		writeAPIError(w, r, http.StatusUnprocessableEntity, "CONTRACT_VALIDATION_FAILED", err.Error())
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("client contracts api failed")
		writeAPIError(w, r, http.StatusInternalServerError, "CONTRACT_INTERNAL", "internal error")
	}
}
