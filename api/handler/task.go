package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/teamboard/backend/api/transport"
	"github.com/teamboard/backend/domain"
	"github.com/teamboard/backend/pkg/httpcontext"
	"github.com/teamboard/backend/repository"
	taskUC "github.com/teamboard/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks by category or project
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) List(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	filter := repository.TaskFilter{
		CategoryID: string(ctx.QueryArgs().Peek("category_id")),
		ProjectID:  string(ctx.QueryArgs().Peek("project_id")),
		Status:     string(ctx.QueryArgs().Peek("status")),
	}
	if limit := ctx.QueryArgs().Peek("limit"); len(limit) > 0 {
		if n, err := strconv.Atoi(string(limit)); err == nil {
			filter.Limit = n
		}
	}
	if offset := ctx.QueryArgs().Peek("offset"); len(offset) > 0 {
		if n, err := strconv.Atoi(string(offset)); err == nil {
			filter.Offset = n
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary List tasks assigned to or created by me
// @Tags tasks
// @Router /api/v1/tasks/my [get]
func (h *TaskHandler) MyTasks(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	status := string(ctx.QueryArgs().Peek("status"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.MyTasks(stdCtx, userID, status)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Get a task
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) Get(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Create a task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) Create(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	task, ok := h.parseTask(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, userID, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update a task
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) Update(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	task, ok := h.parseTask(ctx)
	if !ok {
		return
	}
	task.ID = pathParam(ctx, "id")
	if task.ID == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, userID, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete a task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, userID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary List comments of a task
// @Tags tasks
// @Router /api/v1/tasks/{id}/comments [get]
func (h *TaskHandler) Comments(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := pathParam(ctx, "id")

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	comments, err := h.uc.Comments(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, comments)
}

// @Summary Add a comment to a task
// @Tags tasks
// @Router /api/v1/tasks/{id}/comments [post]
func (h *TaskHandler) AddComment(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := pathParam(ctx, "id")

	var req transport.CommentRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	comment, err := h.uc.AddComment(stdCtx, userID, id, req.Content)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, comment)
}

// @Summary List the activity feed of a task
// @Tags tasks
// @Router /api/v1/tasks/{id}/activities [get]
func (h *TaskHandler) Activities(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := pathParam(ctx, "id")

	limit := 0
	if raw := ctx.QueryArgs().Peek("limit"); len(raw) > 0 {
		if n, err := strconv.Atoi(string(raw)); err == nil {
			limit = n
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	activities, err := h.uc.Activities(stdCtx, id, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, activities)
}

// @Summary List dependencies of a task
// @Tags tasks
// @Router /api/v1/tasks/{id}/dependencies [get]
func (h *TaskHandler) Dependencies(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := pathParam(ctx, "id")

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	deps, err := h.uc.Dependencies(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, deps)
}

// @Summary Add a dependency between tasks
// @Tags tasks
// @Router /api/v1/tasks/{id}/dependencies [post]
func (h *TaskHandler) AddDependency(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := pathParam(ctx, "id")

	var req transport.DependencyRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.DependsOnID == "" {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	dep, err := h.uc.AddDependency(stdCtx, userID, id, req.DependsOnID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, dep)
}

// @Summary Remove a dependency between tasks
// @Tags tasks
// @Router /api/v1/tasks/{id}/dependencies/{dependsOnId} [delete]
func (h *TaskHandler) RemoveDependency(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := pathParam(ctx, "id")
	dependsOnID := pathParam(ctx, "dependsOnId")
	if dependsOnID == "" {
		h.respondInvalid(ctx, "missing dependency id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.RemoveDependency(stdCtx, userID, id, dependsOnID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *TaskHandler) parseTask(ctx *fasthttp.RequestCtx) (*domain.Task, bool) {
	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}

	task := &domain.Task{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Notes:       req.Notes,
		AssigneeIDs: req.AssigneeIDs,
		Priority:    domain.Priority(req.Priority),
		Status:      req.Status,
		ActualHours: req.ActualHours,
	}
	if req.Deadline != nil && *req.Deadline != "" {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			h.respondInvalid(ctx, "invalid deadline: expected RFC 3339 or YYYY-MM-DD")
			return nil, false
		}
		task.Deadline = &deadline
	}
	return task, true
}

// parseDeadline accepts a full RFC 3339 timestamp or a bare date, which
// maps to midnight UTC.
func parseDeadline(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	date, err := domain.ParseDate(raw)
	if err != nil {
		return time.Time{}, err
	}
	return date.Time(), nil
}
