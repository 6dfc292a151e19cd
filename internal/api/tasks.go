package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/db"
	"github.com/taskhive/taskhive/internal/models"
)

type createTaskRequest struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// sortFields maps the query-string names to the document field names.
var sortFields = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"description": "description",
	"completed":   "completed",
}

var allowedTaskUpdates = map[string]bool{
	"description": true,
	"completed":   true,
}

func (h *Handler) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		writeError(c, http.StatusBadRequest, "description is required")
		return
	}

	user, _ := currentSession(c)
	now := time.Now().UTC()
	task := &models.Task{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(req.Description),
		Completed:   req.Completed,
		OwnerID:     user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.InsertTask(c.Request.Context(), task); err != nil {
		writeError(c, http.StatusInternalServerError, "failed to create task")
		return
	}

	c.JSON(http.StatusCreated, task)
}

// handleListTasks supports ?completed=true|false, ?limit, ?skip and
// ?sortBy=field:asc|desc over the caller's own tasks.
func (h *Handler) handleListTasks(c *gin.Context) {
	filter := db.TaskFilter{}

	if raw := c.Query("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid completed filter")
			return
		}
		filter.Completed = &completed
	}

	filter.Limit = parseQueryInt(c.Query("limit"))
	filter.Skip = parseQueryInt(c.Query("skip"))

	if raw := c.Query("sortBy"); raw != "" {
		name, order, _ := strings.Cut(raw, ":")
		field, ok := sortFields[name]
		if !ok {
			writeError(c, http.StatusBadRequest, "invalid sort field")
			return
		}
		filter.SortField = field
		filter.SortAsc = order != "desc"
	}

	user, _ := currentSession(c)
	tasks, err := h.store.ListTasks(c.Request.Context(), user.ID, filter)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) handleGetTask(c *gin.Context) {
	user, _ := currentSession(c)
	task, err := h.store.FindTask(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to load task")
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *Handler) handleUpdateTask(c *gin.Context) {
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	var disallowed []string
	for field := range updates {
		if !allowedTaskUpdates[field] {
			disallowed = append(disallowed, field)
		}
	}
	if len(disallowed) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": disallowed})
		return
	}

	user, _ := currentSession(c)
	task, err := h.store.FindTask(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to load task")
		return
	}

	if raw, ok := updates["description"]; ok {
		description, isString := raw.(string)
		if !isString || strings.TrimSpace(description) == "" {
			writeError(c, http.StatusBadRequest, "description is required")
			return
		}
		task.Description = strings.TrimSpace(description)
	}
	if raw, ok := updates["completed"]; ok {
		completed, isBool := raw.(bool)
		if !isBool {
			writeError(c, http.StatusBadRequest, "completed must be a boolean")
			return
		}
		task.Completed = completed
	}

	if err := h.store.SaveTask(c.Request.Context(), task); err != nil {
		writeError(c, http.StatusInternalServerError, "failed to update task")
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *Handler) handleDeleteTask(c *gin.Context) {
	user, _ := currentSession(c)
	task, err := h.store.FindTask(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to delete task")
		return
	}

	if err := h.store.DeleteTask(c.Request.Context(), user.ID, task.ID); err != nil {
		writeError(c, http.StatusInternalServerError, "failed to delete task")
		return
	}

	c.JSON(http.StatusOK, task)
}

func parseQueryInt(raw string) int64 {
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
