package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/TWRT/equipeapp/internal/api/handlers"
	"github.com/TWRT/equipeapp/internal/service"
)

func SetupRouter(taskService *service.TaskService, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	taskHandler := handlers.NewTaskHandler(taskService)
	teamHandler := handlers.NewTeamHandler(taskService)

	mux.HandleFunc("POST /tasks", taskHandler.CreateTask)
	mux.HandleFunc("GET /tasks", taskHandler.ListTasks)
	mux.HandleFunc("GET /tasks/filters", taskHandler.FilterOptions)
	mux.HandleFunc("GET /tasks/{id}", taskHandler.GetTask)
	mux.HandleFunc("PATCH /tasks/{id}/status", taskHandler.UpdateStatus)

	mux.HandleFunc("GET /dashboard", teamHandler.Dashboard)
	mux.HandleFunc("GET /team", teamHandler.Members)

	return requestLogger(logger)(mux)
}
