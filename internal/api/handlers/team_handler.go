package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/TWRT/equipeapp/internal/service"
)

type TeamHandler struct {
	taskService *service.TaskService
}

func NewTeamHandler(taskService *service.TaskService) *TeamHandler {
	return &TeamHandler{
		taskService: taskService,
	}
}

func (h *TeamHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.taskService.Dashboard(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to build dashboard")
		writeError(w, statusForError(err), "Error trying to get dashboard: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"summary": summary,
	})
}

func (h *TeamHandler) Members(w http.ResponseWriter, r *http.Request) {
	members, err := h.taskService.TeamStats(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to build team stats")
		writeError(w, statusForError(err), "Error trying to get team: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"members": members,
	})
}
