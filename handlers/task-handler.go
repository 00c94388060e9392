package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/gorilla/mux"

	"tasknest/tasks-service/logging"
	"tasknest/tasks-service/models"
	"tasknest/tasks-service/services"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// RegisterTaskRoutes wires the task endpoints onto the router. There is
// deliberately no GET on /tasks/{id}; the collection is read whole.
func RegisterTaskRoutes(r *mux.Router, h *TaskHandler) {
	r.HandleFunc("/tasks", h.GetAllTasks).Methods(http.MethodGet)
	r.HandleFunc("/tasks", h.CreateTask).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}", h.UpdateTask).Methods(http.MethodPut)
	r.HandleFunc("/tasks/{id}", h.DeleteTask).Methods(http.MethodDelete)

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteDetail(w, http.StatusNotFound, "Not Found")
	})
}

// WriteDetail writes the single-key error body every rejected request
// carries.
func WriteDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || ct != "application/json" {
		WriteDetail(w, http.StatusUnsupportedMediaType, "Unsupported Media Type")
		return false
	}
	return true
}

func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.GetAllTasks()
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_LIST_FAILED, Description: Failed to list tasks: %v", err)
		WriteDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]models.TaskView{"tasks": tasks})
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}

	payload, err := models.DecodeTaskPayload(r.Body, false)
	if err == nil {
		var created *models.TaskView
		created, err = h.service.CreateTask(payload)
		if err == nil {
			writeJSON(w, http.StatusCreated, created)
			return
		}
	}

	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		WriteDetail(w, http.StatusUnprocessableEntity, ve.Error())
	case errors.Is(err, models.ErrDuplicateTitle):
		WriteDetail(w, http.StatusConflict, models.ErrDuplicateTitle.Error())
	default:
		logging.Logger.Warnf("Event ID: TASK_CREATE_REJECTED, Description: Rejected create request: %v", err)
		WriteDetail(w, http.StatusBadRequest, "Invalid request payload")
	}
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	id := mux.Vars(r)["id"]

	payload, err := models.DecodeTaskPayload(r.Body, true)
	if err == nil {
		var updated *models.TaskView
		updated, err = h.service.UpdateTask(id, payload)
		if err == nil {
			writeJSON(w, http.StatusOK, updated)
			return
		}
	}

	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		// Update-time failures use their own wording and 400, not 422.
		WriteDetail(w, http.StatusBadRequest, updateDetail(ve))
	case errors.Is(err, models.ErrTaskNotFound):
		WriteDetail(w, http.StatusNotFound, "Task not found")
	default:
		logging.Logger.Warnf("Event ID: TASK_UPDATE_REJECTED, Description: Rejected update of task %s: %v", id, err)
		WriteDetail(w, http.StatusBadRequest, "Invalid request payload")
	}
}

func updateDetail(ve *models.ValidationError) string {
	switch ve.Kind {
	case models.KindEmpty:
		return "Title cannot be empty"
	case models.KindLength:
		return "Title exceeds maximum length"
	case models.KindRange, models.KindType:
		return "Invalid priority value"
	case models.KindFormat:
		return "Invalid due_date format"
	case models.KindEnum:
		return "Invalid status value"
	}
	return ve.Error()
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	removed, err := h.service.DeleteTask(id)
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_DELETE_FAILED, Description: Failed to delete task %s: %v", id, err)
		WriteDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if !removed {
		WriteDetail(w, http.StatusNotFound, "Task not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}
