package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/arcvista/backend/database"
	"github.com/arcvista/backend/errs"
	"github.com/arcvista/backend/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 365 * 24 * time.Hour

type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	adminRepo *database.AdminRepo
	secret    []byte
}

func newAdminHandler(adminRepo *database.AdminRepo, secret string) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		adminRepo: adminRepo,
		secret:    []byte(secret),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string        `json:"token"`
	Admin *models.Admin `json:"admin"`
}

// login verifies credentials and issues a bearer token. Unknown email and
// wrong password share one message so the endpoint doesn't leak which
// accounts exist.
func (h adminHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body loginRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.responder.WriteError(w, errs.Malformed("request body"))
			return
		}

		if body.Email == "" || body.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Email and password are required"))
			return
		}

		admin, err := h.adminRepo.FindByEmail(body.Email)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "admin", err))
			return
		}
		if admin == nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Invalid credentials"))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(body.Password)); err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Invalid credentials"))
			return
		}

		token, err := h.issueToken(admin)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to sign token")
			h.responder.WriteError(w, errs.NewInternalError("failed to issue token"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, loginResponse{Token: token, Admin: admin})
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// register creates an admin account. The unique email constraint is the
// final arbiter against concurrent registrations.
func (h adminHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body registerRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.responder.WriteError(w, errs.Malformed("request body"))
			return
		}

		if body.Email == "" || body.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Email and password are required"))
			return
		}

		existing, err := h.adminRepo.FindByEmail(body.Email)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "admin", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewAlreadyExists("admin"))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to hash password", err))
			return
		}

		admin := &models.Admin{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
		}
		if err := h.adminRepo.Add(admin); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "admin", err))
			return
		}

		h.responder.WriteCreated(w, "Admin created", admin)
	}
}

func (h adminHandler) issueToken(admin *models.Admin) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   admin.ID.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
}
