package api

import (
	"encoding/json"
	"net/http"

	"github.com/arcvista/backend/database"
	"github.com/arcvista/backend/errs"
	"github.com/arcvista/backend/models"
	"github.com/arcvista/backend/reconcile"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type categoryHandler struct {
	responder Responder
	logger    zerolog.Logger
	guard     *reconcile.CategoryGuard
}

func newCategoryHandler(categoryRepo *database.CategoryRepo, projectRepo *database.ProjectRepo) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder: NewResponder(logger),
		logger:    logger,
		guard:     reconcile.NewCategoryGuard(categoryRepo, projectRepo),
	}
}

type categoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// getCategories lists categories, optionally filtered by ?type=.
// An empty result is a 200 with an empty list, unlike projects.
func (h categoryHandler) getCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.guard.List(r.URL.Query().Get("type"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if categories == nil {
			categories = []*models.Category{}
		}
		h.responder.WriteData(w, http.StatusOK, categories)
	}
}

func (h categoryHandler) getCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Invalid category ID"))
			return
		}

		category, err := h.guard.Get(categoryID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, category)
	}
}

func (h categoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode category request body")
			h.responder.WriteError(w, errs.Malformed("request body"))
			return
		}

		category, err := h.guard.Create(body.Name, body.Type)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteCreated(w, "Category created", category)
	}
}

func (h categoryHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Invalid category ID"))
			return
		}

		var body categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode category request body")
			h.responder.WriteError(w, errs.Malformed("request body"))
			return
		}

		category, err := h.guard.Update(categoryID, body.Name, body.Type)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, category)
	}
}

func (h categoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Invalid category ID"))
			return
		}

		if err := h.guard.Delete(categoryID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteMessage(w, http.StatusOK, "Category deleted")
	}
}
