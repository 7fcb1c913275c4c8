package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/aggregates/contract"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/presentation/controllers/dtos"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/services"
	coreservices "github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/services"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/application"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/composables"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/middleware"
)

// ContractsController is the authenticated owner API.
type ContractsController struct {
	app       application.Application
	contracts *services.ContractService
	requests  *services.RequestService
	auth      *coreservices.AuthService
	basePath  string
}

func NewContractsController(app application.Application) application.Controller {
	return &ContractsController{
		app:       app,
		contracts: app.Service(services.ContractService{}).(*services.ContractService),
		requests:  app.Service(services.RequestService{}).(*services.RequestService),
		auth:      app.Service(coreservices.AuthService{}).(*coreservices.AuthService),
		basePath:  "/api/contracts",
	}
}

func (c *ContractsController) Key() string {
	return c.basePath
}

func (c *ContractsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.Authorize(c.auth))
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}/revision-requests", c.ListRevisionRequests).Methods(http.MethodGet)
	router.HandleFunc("/{id}/termination-requests", c.ListTerminationRequests).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(middleware.Authorize(c.auth))
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("", c.Create).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	writeRouter.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
	writeRouter.HandleFunc("/{id}/share", c.Share).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id}/cancel", c.Cancel).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id}/key/reveal", c.RevealKey).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id}/key/reveal/reset", c.ResetKeyReveals).Methods(http.MethodPost)

	inbox := r.PathPrefix("/api/requests").Subrouter()
	inbox.Use(middleware.Authorize(c.auth))
	inbox.HandleFunc("/revisions", c.InboxRevisions).Methods(http.MethodGet)
	inbox.HandleFunc("/terminations", c.InboxTerminations).Methods(http.MethodGet)

	inboxWrite := r.PathPrefix("/api/requests").Subrouter()
	inboxWrite.Use(middleware.Authorize(c.auth))
	inboxWrite.Use(middleware.WithTransaction())
	inboxWrite.HandleFunc("/revisions/{id}/resolve", c.ResolveRevision).Methods(http.MethodPost)
	inboxWrite.HandleFunc("/terminations/{id}/resolve", c.ResolveTermination).Methods(http.MethodPost)
}

func (c *ContractsController) List(w http.ResponseWriter, r *http.Request) {
	ownerID, err := composables.UseUserID(r.Context())
	if err != nil {
		writeAPIError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	items, err := c.contracts.List(r.Context(), ownerID)
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	out := make([]contractViewModel, 0, len(items))
	for _, item := range items {
		out = append(out, toContractViewModel(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (c *ContractsController) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, err := composables.UseUserID(r.Context())
	if err != nil {
		writeAPIError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	var dto dtos.CreateContractDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTRACT_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		c.writeValidationError(w, r, errs)
		return
	}

	created, err := c.contracts.Create(r.Context(), ownerID, services.CreateContractDTO{
		Title:       dto.Title,
		ClientName:  dto.ClientName,
		ClientEmail: dto.ClientEmail,
		ClientPhone: dto.ClientPhone,
		Payload:     payloadFromRaw(dto.Payload),
	})
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toContractViewModel(created))
}

func (c *ContractsController) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := c.ownedResource(w, r)
	if !ok {
		return
	}
	found, err := c.contracts.GetByID(r.Context(), ownerID, id)
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toContractViewModel(found))
}

func (c *ContractsController) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := c.ownedResource(w, r)
	if !ok {
		return
	}
	var dto dtos.UpdateContractDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTRACT_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		c.writeValidationError(w, r, errs)
		return
	}

	updated, err := c.contracts.UpdateDraft(r.Context(), ownerID, id, services.UpdateContractDTO{
		Title:       dto.Title,
		ClientName:  dto.ClientName,
		ClientEmail: dto.ClientEmail,
		ClientPhone: dto.ClientPhone,
		Payload:     payloadFromRaw(dto.Payload),
	})
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toContractViewModel(updated))
}

func (c *ContractsController) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := c.ownedResource(w, r)
	if !ok {
		return
	}
	if err := c.contracts.Delete(r.Context(), ownerID, id); err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *ContractsController) Share(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := c.ownedResource(w, r)
	if !ok {
		return
	}
	shared, key, err := c.contracts.GenerateShareLink(r.Context(), ownerID, id)
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"contract":   toContractViewModel(shared),
		"secret_key": key,
	})
}

func (c *ContractsController) Cancel(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := c.ownedResource(w, r)
	if !ok {
		return
	}
	cancelled, err := c.contracts.Cancel(r.Context(), ownerID, id)
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toContractViewModel(cancelled))
}

func (c *ContractsController) RevealKey(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := c.ownedResource(w, r)
	if !ok {
		return
	}
	var dto dtos.RevealKeyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTRACT_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		c.writeValidationError(w, r, errs)
		return
	}
	key, err := c.contracts.RevealKey(r.Context(), ownerID, id, dto.ClientInstanceID)
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"secret_key": key})
}

func (c *ContractsController) ResetKeyReveals(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := c.ownedResource(w, r)
	if !ok {
		return
	}
	var dto dtos.RevealKeyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTRACT_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		c.writeValidationError(w, r, errs)
		return
	}
	if err := c.contracts.ResetKeyReveals(r.Context(), ownerID, id, dto.ClientInstanceID); err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *ContractsController) ListRevisionRequests(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := c.ownedResource(w, r)
	if !ok {
		return
	}
	reqs, err := c.requests.ListRevisionsByContract(r.Context(), ownerID, id)
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	out := make([]revisionRequestViewModel, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, toRevisionRequestViewModel(req))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (c *ContractsController) ListTerminationRequests(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := c.ownedResource(w, r)
	if !ok {
		return
	}
	reqs, err := c.requests.ListTerminationsByContract(r.Context(), ownerID, id)
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	out := make([]terminationRequestViewModel, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, toTerminationRequestViewModel(req))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (c *ContractsController) InboxRevisions(w http.ResponseWriter, r *http.Request) {
	ownerID, err := composables.UseUserID(r.Context())
	if err != nil {
		writeAPIError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	reqs, err := c.requests.ListUnresolvedRevisions(r.Context(), ownerID)
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	out := make([]revisionRequestViewModel, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, toRevisionRequestViewModel(req))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (c *ContractsController) InboxTerminations(w http.ResponseWriter, r *http.Request) {
	ownerID, err := composables.UseUserID(r.Context())
	if err != nil {
		writeAPIError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	reqs, err := c.requests.ListUnresolvedTerminations(r.Context(), ownerID)
	if err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	out := make([]terminationRequestViewModel, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, toTerminationRequestViewModel(req))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (c *ContractsController) ResolveRevision(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := c.ownedResource(w, r)
	if !ok {
		return
	}
	if err := c.requests.ResolveRevision(r.Context(), ownerID, id); err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *ContractsController) ResolveTermination(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := c.ownedResource(w, r)
	if !ok {
		return
	}
	if err := c.requests.ResolveTermination(r.Context(), ownerID, id); err != nil {
		c.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *ContractsController) ownedResource(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	uid, err := composables.UseUserID(r.Context())
	if err != nil {
		writeAPIError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	rid, found := pathUUID(r, "id")
	if !found {
		writeAPIError(w, r, http.StatusBadRequest, "CONTRACT_INVALID_ID", "invalid id")
		return uuid.Nil, uuid.Nil, false
	}
	return uid, rid, true
}

func (c *ContractsController) writeValidationError(w http.ResponseWriter, r *http.Request, errs map[string]string) {
	message := "validation failed"
	for _, v := range errs {
		message = v
		break
	}
	writeAPIError(w, r, http.StatusUnprocessableEntity, "CONTRACT_VALIDATION_FAILED", message)
}

func (c *ContractsController) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, contract.ErrNotFound):
		writeAPIError(w, r, http.StatusNotFound, "CONTRACT_NOT_FOUND", "contract not found")
	case errors.Is(err, contract.ErrConflict):
		writeAPIError(w, r, http.StatusConflict, "CONTRACT_CONFLICT", "contract was modified concurrently")
	case errors.Is(err, contract.ErrInvalidTransition):
		writeAPIError(w, r, http.StatusConflict, "CONTRACT_INVALID_TRANSITION", err.Error())
	case errors.Is(err, services.ErrRevealLimitReached):
		writeAPIError(w, r, http.StatusTooManyRequests, "KEY_REVEAL_LIMIT", "key reveal limit reached")
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("contracts api failed")
		writeAPIError(w, r, http.StatusInternalServerError, "CONTRACT_INTERNAL", "internal error")
	}
}

func payloadFromRaw(raw json.RawMessage) contract.Payload {
	if len(raw) == 0 {
		return contract.Payload{}
	}
	return contract.Payload{
		SchemaVersion: contract.PayloadSchemaVersion,
		Data:          raw,
	}
}
