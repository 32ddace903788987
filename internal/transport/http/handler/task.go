package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/ErlanBelekov/task-tracker/internal/usecase"
	"github.com/gin-gonic/gin"
)

type taskUsecaser interface {
	CreateTask(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]*domain.Task, error)
	GetTask(ctx context.Context, userID, taskID string) (*domain.Task, error)
}

type TaskHandler struct {
	taskUsecase taskUsecaser
	logger      *slog.Logger
}

func NewTaskHandler(taskUsecase taskUsecaser, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{taskUsecase: taskUsecase, logger: logger.With("component", "task_handler")}
}

// There is deliberately no owner field: the owner is the authenticated caller.
type createTaskRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
}

type createTaskResponse struct {
	ID string `json:"id"`
}

type taskResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	DueDate       *string   `json:"due_date"`
	CompletedDate *string   `json:"completed_date"`
	CreatedAt     time.Time `json:"created_at"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		DueDate:       formatDate(t.DueDate),
		CompletedDate: formatDate(t.CompletedDate),
		CreatedAt:     t.CreatedAt,
	}
}

func (h *TaskHandler) Create(ctx *gin.Context) {
	var req createTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		d, err := domain.ParseDate(*req.DueDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidDate, "field": "due_date"})
			return
		}
		dueDate = &d
	}

	task, err := h.taskUsecase.CreateTask(ctx.Request.Context(), usecase.CreateTaskInput{
		UserID:      ctx.GetString("userID"),
		Name:        req.Name,
		Description: req.Description,
		DueDate:     dueDate,
	})
	if err != nil {
		respondError(ctx, h.logger, "create task", err)
		return
	}

	ctx.JSON(http.StatusCreated, createTaskResponse{ID: task.ID})
}

// GET /tasks?name=&description=&due_date_from=&due_date_to=
// Empty query values are treated as absent.
func (h *TaskHandler) List(ctx *gin.Context) {
	var filter domain.TaskFilter

	if v := ctx.Query("name"); v != "" {
		filter.Name = &v
	}
	if v := ctx.Query("description"); v != "" {
		filter.Description = &v
	}
	bounds := []struct {
		param string
		dst   **time.Time
	}{
		{"due_date_from", &filter.DueDateFrom},
		{"due_date_to", &filter.DueDateTo},
	}
	for _, b := range bounds {
		v := ctx.Query(b.param)
		if v == "" {
			continue
		}
		d, err := domain.ParseDate(v)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidDate, "field": b.param})
			return
		}
		*b.dst = &d
	}

	tasks, err := h.taskUsecase.ListTasks(ctx.Request.Context(), ctx.GetString("userID"), filter)
	if err != nil {
		respondError(ctx, h.logger, "list tasks", err)
		return
	}

	items := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		items[i] = toTaskResponse(t)
	}
	ctx.JSON(http.StatusOK, items)
}

func (h *TaskHandler) GetByID(ctx *gin.Context) {
	taskID := ctx.Param("id")

	task, err := h.taskUsecase.GetTask(ctx.Request.Context(), ctx.GetString("userID"), taskID)
	if err != nil {
		respondError(ctx, h.logger, "get task", err)
		return
	}

	ctx.JSON(http.StatusOK, toTaskResponse(task))
}
