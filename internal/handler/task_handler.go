package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mytodoapp/todo/internal/server"
	"github.com/mytodoapp/todo/internal/task"
)

type taskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// TaskHandler exposes the per-user task CRUD operations.
type TaskHandler struct {
	svc *task.Service
}

// NewTaskHandler creates the task handler.
func NewTaskHandler(svc *task.Service) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create handles POST /api/tasks/:userId.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	var req taskRequest
	if err := bindAndValidate(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	created, err := h.svc.Add(c.Request.Context(), userID, task.Input{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, created)
}

// List handles GET /api/tasks/:userId.
func (h *TaskHandler) List(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	tasks, err := h.svc.FindAllByUserID(c.Request.Context(), userID)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, tasks)
}

// Get handles GET /api/tasks/:userId/:taskId.
func (h *TaskHandler) Get(c *gin.Context) {
	userID, taskID, err := taskPathIDs(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	t, err := h.svc.FindByUserID(c.Request.Context(), userID, taskID)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, t)
}

// Update handles PUT /api/tasks/:userId/:taskId.
func (h *TaskHandler) Update(c *gin.Context) {
	userID, taskID, err := taskPathIDs(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	var req taskRequest
	if err := bindAndValidate(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), userID, taskID, task.Input{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, updated)
}

// Delete handles DELETE /api/tasks/:userId/:taskId.
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, taskID, err := taskPathIDs(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, taskID); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}

func taskPathIDs(c *gin.Context) (userID, taskID uint, err error) {
	userID, err = pathID(c, "userId")
	if err != nil {
		return 0, 0, err
	}
	taskID, err = pathID(c, "taskId")
	if err != nil {
		return 0, 0, err
	}
	return userID, taskID, nil
}
