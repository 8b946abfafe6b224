package api

import (
	"encoding/json"
	"net/http"

	"github.com/arcvista/backend/database"
	"github.com/arcvista/backend/errs"
	"github.com/arcvista/backend/models"
	"github.com/arcvista/backend/reconcile"
	"github.com/arcvista/backend/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type serviceHandler struct {
	responder   Responder
	logger      zerolog.Logger
	serviceRepo *database.ServiceRepo
	engine      *reconcile.ServiceEngine
	acceptor    uploadAcceptor
}

func newServiceHandler(serviceRepo *database.ServiceRepo, blobs storage.BlobStore) serviceHandler {
	logger := log.With().Str("handlerName", "serviceHandler").Logger()

	return serviceHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		serviceRepo: serviceRepo,
		engine:      reconcile.NewServiceEngine(serviceRepo, blobs),
		acceptor:    uploadAcceptor{blobs: blobs, logger: logger},
	}
}

func (h serviceHandler) getAllServices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := h.serviceRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "services", err))
			return
		}

		if services == nil {
			services = []*models.Service{}
		}
		h.responder.WriteData(w, http.StatusOK, services)
	}
}

func (h serviceHandler) getService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID, err := uuid.Parse(chi.URLParam(r, "serviceID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Invalid service ID"))
			return
		}

		service, err := h.serviceRepo.FindByID(serviceID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "service", err))
			return
		}
		if service == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Service not found"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, service)
	}
}

// createService accepts a multipart form with an optional single `image`.
// Note the image is accepted before the required-field check runs, so any
// validation failure deletes the blob again.
func (h serviceHandler) createService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			h.responder.WriteError(w, errs.Malformed("multipart form"))
			return
		}

		uploads, err := h.acceptor.acceptSingleImage(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		service, err := h.engine.Create(r.Context(), serviceInputFromForm(r), uploads)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteCreated(w, "Service created", service)
	}
}

func (h serviceHandler) updateService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID, err := uuid.Parse(chi.URLParam(r, "serviceID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Invalid service ID"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			h.responder.WriteError(w, errs.Malformed("multipart form"))
			return
		}

		uploads, err := h.acceptor.acceptSingleImage(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		service, err := h.engine.Update(r.Context(), serviceID, serviceInputFromForm(r), uploads)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, service)
	}
}

// toggleServiceActive flips visibility through a small JSON body instead of
// the multipart update path.
func (h serviceHandler) toggleServiceActive() http.HandlerFunc {
	type toggleRequest struct {
		Active bool `json:"active"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		serviceID, err := uuid.Parse(chi.URLParam(r, "serviceID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Invalid service ID"))
			return
		}

		var body toggleRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.responder.WriteError(w, errs.Malformed("request body"))
			return
		}

		service, err := h.engine.SetActive(r.Context(), serviceID, body.Active)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, service)
	}
}

func (h serviceHandler) deleteService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID, err := uuid.Parse(chi.URLParam(r, "serviceID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Invalid service ID"))
			return
		}

		if err := h.engine.Delete(r.Context(), serviceID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteMessage(w, http.StatusOK, "Service deleted")
	}
}

func serviceInputFromForm(r *http.Request) reconcile.ServiceInput {
	return reconcile.ServiceInput{
		Title:        r.FormValue("title"),
		Icon:         r.FormValue("icon"),
		Description:  r.FormValue("description"),
		ProcessSteps: r.FormValue("processSteps"),
		IsActive:     r.FormValue("isActive"),
	}
}
