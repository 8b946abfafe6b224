package api

import (
	"net/http"

	"github.com/arcvista/backend/database"
	"github.com/arcvista/backend/errs"
	"github.com/arcvista/backend/reconcile"
	"github.com/arcvista/backend/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	engine      *reconcile.ProjectEngine
	acceptor    uploadAcceptor
}

func newProjectHandler(projectRepo *database.ProjectRepo, categoryRepo *database.CategoryRepo, blobs storage.BlobStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		engine:      reconcile.NewProjectEngine(projectRepo, categoryRepo, blobs),
		acceptor:    uploadAcceptor{blobs: blobs, logger: logger},
	}
}

// getAllProjects retrieves all projects with their category populated.
// An empty result is a 404, not an empty list; the frontend relies on it.
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "projects", err))
			return
		}

		if len(projects) == 0 {
			h.responder.WriteError(w, errs.NewNotFoundError("No projects found"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, projects)
	}
}

// getProject retrieves a specific project by ID with its category populated.
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Invalid project ID"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, project)
	}
}

// getProjectBySlug retrieves a project by its slug.
func (h projectHandler) getProjectBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		project, err := h.projectRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, project)
	}
}

// createProject accepts a multipart form with the project fields, one `main`
// image and up to ten `gallery` images, then hands off to the engine.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			h.responder.WriteError(w, errs.Malformed("multipart form"))
			return
		}

		uploads, err := h.acceptor.acceptProjectFiles(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.engine.Create(r.Context(), projectInputFromForm(r), uploads)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		auditLog(r.Context(), h.logger, "Project created", project.ID.String())
		h.responder.WriteCreated(w, "Project created", project)
	}
}

// updateProject applies a partial update: unspecified fields keep their
// stored values, `deletedGallery` names gallery blobs to drop, and new
// uploads are merged in by the engine.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Invalid project ID"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			h.responder.WriteError(w, errs.Malformed("multipart form"))
			return
		}

		uploads, err := h.acceptor.acceptProjectFiles(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.engine.Update(r.Context(), projectID, projectInputFromForm(r), uploads, r.FormValue("deletedGallery"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		auditLog(r.Context(), h.logger, "Project updated", projectID.String())
		h.responder.WriteData(w, http.StatusOK, project)
	}
}

// deleteProject removes the project record and every blob it owns.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Invalid project ID"))
			return
		}

		if err := h.engine.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		auditLog(r.Context(), h.logger, "Project deleted", projectID.String())
		h.responder.WriteMessage(w, http.StatusOK, "Project deleted")
	}
}

func projectInputFromForm(r *http.Request) reconcile.ProjectInput {
	return reconcile.ProjectInput{
		Title:           r.FormValue("title"),
		Category:        r.FormValue("category"),
		Location:        r.FormValue("location"),
		Year:            r.FormValue("year"),
		Area:            r.FormValue("area"),
		Client:          r.FormValue("client"),
		Description:     r.FormValue("description"),
		Overview:        r.FormValue("overview"),
		LongDescription: r.FormValue("longDescription"),
		Approach:        r.FormValue("approach"),
		Features:        r.FormValue("features"),
	}
}
