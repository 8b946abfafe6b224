package api

import (
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

type teamHandler struct {
	responder Responder
	logger    zerolog.Logger
	teamRepo  *database.TeamRepo
	engine    *reconcile.TeamEngine
	acceptor  uploadAcceptor
}

func newTeamHandler(teamRepo *database.TeamRepo, blobs storage.BlobStore) teamHandler {
	logger := log.With().Str("handlerName", "teamHandler").Logger()

	return teamHandler{
		responder: NewResponder(logger),
		logger:    logger,
		teamRepo:  teamRepo,
		engine:    reconcile.NewTeamEngine(teamRepo, blobs),
		acceptor:  uploadAcceptor{blobs: blobs, logger: logger},
	}
}

func (h teamHandler) getAllTeam() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := h.teamRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "team members", err))
			return
		}

		if members == nil {
			members = []*models.Team{}
		}
		h.responder.WriteData(w, http.StatusOK, members)
	}
}

func (h teamHandler) getTeamMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := uuid.Parse(chi.URLParam(r, "teamID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Invalid team member ID"))
			return
		}

		member, err := h.teamRepo.FindByID(teamID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "team member", err))
			return
		}
		if member == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Team member not found"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, member)
	}
}

func (h teamHandler) createTeamMember() http.HandlerFunc {
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

		member, err := h.engine.Create(r.Context(), teamInputFromForm(r), uploads)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		auditLog(r.Context(), h.logger, "Team member created", member.ID.String())
		h.responder.WriteCreated(w, "Team member created", member)
	}
}

func (h teamHandler) updateTeamMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := uuid.Parse(chi.URLParam(r, "teamID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Invalid team member ID"))
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

		member, err := h.engine.Update(r.Context(), teamID, teamInputFromForm(r), uploads)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		auditLog(r.Context(), h.logger, "Team member updated", teamID.String())
		h.responder.WriteData(w, http.StatusOK, member)
	}
}

func (h teamHandler) deleteTeamMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := uuid.Parse(chi.URLParam(r, "teamID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Invalid team member ID"))
			return
		}

		if err := h.engine.Delete(r.Context(), teamID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		auditLog(r.Context(), h.logger, "Team member deleted", teamID.String())
		h.responder.WriteMessage(w, http.StatusOK, "Team member deleted")
	}
}

func teamInputFromForm(r *http.Request) reconcile.TeamInput {
	return reconcile.TeamInput{
		Name:           r.FormValue("name"),
		Role:           r.FormValue("role"),
		Description:    r.FormValue("description"),
		DeleteOldImage: r.FormValue("deleteOldImage"),
	}
}
