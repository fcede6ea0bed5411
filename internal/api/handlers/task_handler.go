package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/TWRT/equipeapp/internal/models"
	"github.com/TWRT/equipeapp/internal/service"
	"github.com/TWRT/equipeapp/internal/stats"
)

const maxBodyBytes = 1 << 20

type CreateTaskRequestBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	Priority    string `json:"priority"`
}

type UpdateStatusRequestBody struct {
	Status string `json:"status"`
}

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error trying to read the body: "+err.Error())
		return
	}

	var reqBody CreateTaskRequestBody
	if err := json.Unmarshal(body, &reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), models.NewTask{
		Title:       reqBody.Title,
		Description: reqBody.Description,
		Assignee:    reqBody.Assignee,
		Priority:    models.Priority(reqBody.Priority),
	})
	if err != nil {
		log.Error().
			Err(err).
			Msg("failed to create task")
		writeError(w, statusForError(err), "Error trying to create task: "+err.Error())
		return
	}

	log.Info().
		Int64("id", task.ID).
		Msg("created task")
	writeJSON(w, http.StatusCreated, map[string]any{
		"task": task,
	})
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	var criteria stats.Criteria
	query := r.URL.Query()
	if query.Has("status") {
		status := models.Status(query.Get("status"))
		criteria.Status = &status
	}
	if query.Has("assignee") {
		assignee := query.Get("assignee")
		criteria.Assignee = &assignee
	}

	tasks, err := h.taskService.FilterTasks(r.Context(), criteria)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to list tasks")
		writeError(w, statusForError(err), "Error trying to get tasks: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tasks": tasks,
	})
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Int64("id", id).
			Msg("failed to get task")
		writeError(w, statusForError(err), "Error trying to get task: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"task": task,
	})
}

func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var reqBody UpdateStatusRequestBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}

	task, err := h.taskService.UpdateStatus(r.Context(), id, models.Status(reqBody.Status))
	if err != nil {
		log.Error().
			Err(err).
			Int64("id", id).
			Msg("failed to update task status")
		writeError(w, statusForError(err), "Error trying to update status: "+err.Error())
		return
	}

	log.Info().
		Int64("id", id).
		Str("status", string(task.Status)).
		Msg("updated task status")
	writeJSON(w, http.StatusOK, map[string]any{
		"task": task,
	})
}

func (h *TaskHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.taskService.FilterOptions(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to get filter options")
		writeError(w, statusForError(err), "Error trying to get filters: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id: "+r.PathValue("id"))
		return 0, false
	}
	return id, true
}
