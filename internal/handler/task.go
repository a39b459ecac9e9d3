package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/voxtask/internal/service"
	"github.com/ncobase/voxtask/internal/task"
	"github.com/ncobase/voxtask/logging/logger"
	"github.com/ncobase/voxtask/net/resp"
)

// TaskHandler handles HTTP requests for tasks and projects.
type TaskHandler struct {
	svc    *service.TaskService
	logger *logger.Logger
}

// List handles task listing.
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Success 200 {array} task.Task
// @Failure 500 {object} resp.Exception
// @Router /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err, "fetch tasks")
		return
	}
	resp.Success(c.Writer, list(tasks))
}

// ListForDate handles listing the tasks due on a date.
// @Summary List tasks due on a date
// @Tags tasks
// @Param date path string true "YYYY-MM-DD"
// @Router /api/tasks/date/{date} [get]
func (h *TaskHandler) ListForDate(c *gin.Context) {
	tasks, err := h.svc.ListForDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		fail(c, h.logger, err, "fetch tasks for date")
		return
	}
	resp.Success(c.Writer, list(tasks))
}

// Get handles task retrieval.
// @Summary Get a task by ID
// @Tags tasks
// @Param id path string true "Task ID"
// @Success 200 {object} task.Task
// @Failure 404 {object} resp.Exception
// @Router /api/tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	t, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err, "fetch task")
		return
	}
	resp.Success(c.Writer, t)
}

// Create handles task creation.
// @Summary Create a new task
// @Tags tasks
// @Accept json
// @Param request body service.CreateTaskRequest true "Create task request"
// @Success 201 {object} task.Task
// @Failure 400 {object} resp.Exception
// @Router /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.logger, err)
		return
	}
	t, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, h.logger, err, "create task")
		return
	}
	resp.WithStatusCode(c.Writer, http.StatusCreated, t)
}

// Update handles partial task updates.
// @Summary Update a task
// @Tags tasks
// @Param id path string true "Task ID"
// @Param request body task.Patch true "Fields to change"
// @Router /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	var p task.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		badBody(c, h.logger, err)
		return
	}
	t, err := h.svc.Update(c.Request.Context(), c.Param("id"), &p)
	if err != nil {
		fail(c, h.logger, err, "update task")
		return
	}
	resp.Success(c.Writer, t)
}

// Complete marks a task completed.
func (h *TaskHandler) Complete(c *gin.Context) {
	t, err := h.svc.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err, "complete task")
		return
	}
	resp.Success(c.Writer, t)
}

// Delete handles task deletion. Notion archives instead of deleting,
// which the response reports through archived.
func (h *TaskHandler) Delete(c *gin.Context) {
	removed, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err, "delete task")
		return
	}
	resp.Success(c.Writer, removed)
}

// Projects lists projects.
func (h *TaskHandler) Projects(c *gin.Context) {
	projects, err := h.svc.Projects(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err, "fetch projects")
		return
	}
	resp.Success(c.Writer, list(projects))
}
