package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/assistant/services"
	coreservices "github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/services"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/application"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/composables"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/configuration"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/constants"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/httpapi"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/middleware"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/serrors"
)

type suggestDTO struct {
	Title       string          `json:"title" validate:"max=255"`
	Payload     json.RawMessage `json:"payload"`
	Instruction string          `json:"instruction" validate:"required,max=2048"`
}

func (d *suggestDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Title = strings.TrimSpace(d.Title)
	d.Instruction = strings.TrimSpace(d.Instruction)
	if err := constants.Validate.Struct(d); err != nil {
		return serrors.Process(err.(validator.ValidationErrors)), false
	}
	return serrors.ValidationErrors{}, true
}

type AssistController struct {
	app      application.Application
	assist   *services.AssistService
	auth     *coreservices.AuthService
	basePath string
}

func NewAssistController(app application.Application) application.Controller {
	return &AssistController{
		app:      app,
		assist:   app.Service(services.AssistService{}).(*services.AssistService),
		auth:     app.Service(coreservices.AuthService{}).(*coreservices.AuthService),
		basePath: "/api/assist",
	}
}

func (c *AssistController) Key() string {
	return c.basePath
}

func (c *AssistController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.Authorize(c.auth))
	router.HandleFunc("/suggest", c.Suggest).Methods(http.MethodPost)
}

func (c *AssistController) Suggest(w http.ResponseWriter, r *http.Request) {
	var dto suggestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		c.writeError(w, r, http.StatusBadRequest, "ASSIST_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		message := "validation failed"
		for _, v := range errs {
			message = v
			break
		}
		c.writeError(w, r, http.StatusUnprocessableEntity, "ASSIST_VALIDATION_FAILED", message)
		return
	}

	suggestions, err := c.assist.Suggest(r.Context(), services.SuggestDTO{
		Title:       dto.Title,
		Payload:     dto.Payload,
		Instruction: dto.Instruction,
	})
	if err != nil {
		if errors.Is(err, services.ErrNoSuggestion) {
			c.writeError(w, r, http.StatusBadGateway, "ASSIST_NO_SUGGESTION", "model returned no usable suggestion")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("assist suggestion failed")
		c.writeError(w, r, http.StatusBadGateway, "ASSIST_UPSTREAM_FAILED", "assistant unavailable")
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

func (c *AssistController) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	requestID := strings.TrimSpace(r.Header.Get(configuration.Use().RequestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	_ = httpapi.WriteError(w, status, code, message, map[string]string{"request_id": requestID})
}
