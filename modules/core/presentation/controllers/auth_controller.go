package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/domain/aggregates/user"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/presentation/controllers/dtos"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/services"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/application"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/composables"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/configuration"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/httpapi"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/middleware"
)

type userViewModel struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserViewModel(u user.User) userViewModel {
	return userViewModel{
		ID:        u.ID().String(),
		Email:     u.Email(),
		Name:      u.Name(),
		Plan:      string(u.Plan()),
		CreatedAt: u.CreatedAt(),
	}
}

type AuthController struct {
	app      application.Application
	auth     *services.AuthService
	basePath string
}

func NewAuthController(app application.Application) application.Controller {
	return &AuthController{
		app:      app,
		auth:     app.Service(services.AuthService{}).(*services.AuthService),
		basePath: "/api/auth",
	}
}

func (c *AuthController) Key() string {
	return c.basePath
}

func (c *AuthController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.WithTransaction())
	router.HandleFunc("/register", c.RegisterUser).Methods(http.MethodPost)
	router.HandleFunc("/login", c.Login).Methods(http.MethodPost)

	authed := r.PathPrefix(c.basePath).Subrouter()
	authed.Use(middleware.Authorize(c.auth))
	authed.HandleFunc("/me", c.Me).Methods(http.MethodGet)

	authedWrite := r.PathPrefix(c.basePath).Subrouter()
	authedWrite.Use(middleware.Authorize(c.auth))
	authedWrite.Use(middleware.WithTransaction())
	authedWrite.HandleFunc("/logout", c.Logout).Methods(http.MethodPost)
}

func (c *AuthController) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var dto dtos.RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		c.writeError(w, r, http.StatusBadRequest, "AUTH_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		c.writeValidationError(w, r, errs)
		return
	}

	created, err := c.auth.Register(r.Context(), services.RegisterDTO{
		Email:    dto.Email,
		Name:     dto.Name,
		Password: dto.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			c.writeError(w, r, http.StatusConflict, "AUTH_EMAIL_TAKEN", "email already registered")
		case errors.Is(err, user.ErrWeakPassword):
			c.writeError(w, r, http.StatusUnprocessableEntity, "AUTH_WEAK_PASSWORD", err.Error())
		default:
			composables.UseLogger(r.Context()).WithError(err).Error("registration failed")
			c.writeError(w, r, http.StatusInternalServerError, "AUTH_INTERNAL", "internal error")
		}
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, toUserViewModel(created))
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var dto dtos.LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		c.writeError(w, r, http.StatusBadRequest, "AUTH_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		c.writeValidationError(w, r, errs)
		return
	}

	u, sess, err := c.auth.Login(r.Context(), services.LoginDTO{
		Email:    dto.Email,
		Password: dto.Password,
	})
	if err != nil {
		if errors.Is(err, user.ErrInvalidLogin) {
			c.writeError(w, r, http.StatusUnauthorized, "AUTH_INVALID_LOGIN", "invalid email or password")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("login failed")
		c.writeError(w, r, http.StatusInternalServerError, "AUTH_INTERNAL", "internal error")
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"token":      sess.Token,
		"expires_at": sess.ExpiresAt,
		"user":       toUserViewModel(u),
	})
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 {
		if err := c.auth.Logout(r.Context(), strings.TrimSpace(parts[1])); err != nil {
			composables.UseLogger(r.Context()).WithError(err).Error("logout failed")
		}
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := composables.UseUserID(r.Context())
	if err != nil {
		c.writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	u, err := c.auth.GetUser(r.Context(), userID)
	if err != nil {
		c.writeError(w, r, http.StatusNotFound, "AUTH_USER_NOT_FOUND", "user not found")
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toUserViewModel(u))
}

func (c *AuthController) writeValidationError(w http.ResponseWriter, r *http.Request, errs map[string]string) {
	message := "validation failed"
	for _, v := range errs {
		message = v
		break
	}
	c.writeError(w, r, http.StatusUnprocessableEntity, "AUTH_VALIDATION_FAILED", message)
}

func (c *AuthController) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	requestID := strings.TrimSpace(r.Header.Get(configuration.Use().RequestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	_ = httpapi.WriteError(w, status, code, message, map[string]string{"request_id": requestID})
}
