package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/teamboard/backend/api/transport"
	"github.com/teamboard/backend/domain"
	"github.com/teamboard/backend/pkg/httpcontext"
	dailytaskUC "github.com/teamboard/backend/usecase/dailytask"
)

type DailyTaskHandler struct {
	baseHandler
	uc *dailytaskUC.UseCase
}

func NewDailyTaskHandler(uc *dailytaskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *DailyTaskHandler {
	return &DailyTaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List daily tasks
// @Tags daily-tasks
// @Router /api/v1/daily-tasks [get]
func (h *DailyTaskHandler) List(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	activeOnly := string(ctx.QueryArgs().Peek("active")) == "true"

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.List(stdCtx, userID, activeOnly)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Get a daily task
// @Tags daily-tasks
// @Router /api/v1/daily-tasks/{id} [get]
func (h *DailyTaskHandler) Get(ctx *fasthttp.RequestCtx) {
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

	task, err := h.uc.Get(stdCtx, userID, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Create a daily task
// @Tags daily-tasks
// @Router /api/v1/daily-tasks [post]
func (h *DailyTaskHandler) Create(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	task, ok := h.parseDailyTask(ctx)
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

// @Summary Update a daily task
// @Tags daily-tasks
// @Router /api/v1/daily-tasks/{id} [put]
func (h *DailyTaskHandler) Update(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	task, ok := h.parseDailyTask(ctx)
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

// @Summary Toggle a daily task's active flag
// @Tags daily-tasks
// @Router /api/v1/daily-tasks/{id}/toggle [post]
func (h *DailyTaskHandler) Toggle(ctx *fasthttp.RequestCtx) {
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

	task, err := h.uc.ToggleActive(stdCtx, userID, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Delete a daily task
// @Tags daily-tasks
// @Router /api/v1/daily-tasks/{id} [delete]
func (h *DailyTaskHandler) Delete(ctx *fasthttp.RequestCtx) {
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

// @Summary Tasks due on a date
// @Tags daily-tasks
// @Router /api/v1/daily-tasks/due [get]
func (h *DailyTaskHandler) Due(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	date, err := queryDate(ctx, "date", domain.DateOf(time.Now()))
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	due, err := h.uc.ListDue(stdCtx, userID, date)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, due)
}

// @Summary Record a completion
// @Tags daily-tasks
// @Router /api/v1/daily-tasks/{id}/complete [post]
func (h *DailyTaskHandler) Complete(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	var req transport.CompleteRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	date := domain.DateOf(time.Now())
	if req.Date != "" {
		parsed, err := domain.ParseDate(req.Date)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		date = parsed
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	rec, already, err := h.uc.Complete(stdCtx, userID, id, date, req.Notes, req.ActualMinutes)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	status := http.StatusCreated
	if already {
		status = http.StatusOK
	}
	h.respondSuccess(ctx, status, map[string]interface{}{
		"completion":        rec,
		"already_completed": already,
	})
}

// @Summary Completion history
// @Tags daily-tasks
// @Router /api/v1/daily-tasks/{id}/completions [get]
func (h *DailyTaskHandler) Completions(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	today := domain.DateOf(time.Now())
	from, err := queryDate(ctx, "from", today.AddDays(-30))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	to, err := queryDate(ctx, "to", today)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	completions, err := h.uc.Completions(stdCtx, userID, id, from, to)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, completions)
}

// @Summary Current streak
// @Tags daily-tasks
// @Router /api/v1/daily-tasks/{id}/streak [get]
func (h *DailyTaskHandler) Streak(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}
	asOf, err := queryDate(ctx, "as_of", domain.DateOf(time.Now()))
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	streak, err := h.uc.Streak(stdCtx, userID, id, asOf)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"task_id": id,
		"as_of":   asOf,
		"streak":  streak,
	})
}

// @Summary Completion rate over a window
// @Tags daily-tasks
// @Router /api/v1/daily-tasks/{id}/rate [get]
func (h *DailyTaskHandler) Rate(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	today := domain.DateOf(time.Now())
	from, err := queryDate(ctx, "from", today.AddDays(-30))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	to, err := queryDate(ctx, "to", today)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	rate, err := h.uc.CompletionRate(stdCtx, userID, id, from, to)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"task_id": id,
		"from":    from,
		"to":      to,
		"rate":    rate,
	})
}

func (h *DailyTaskHandler) parseDailyTask(ctx *fasthttp.RequestCtx) (*domain.DailyTask, bool) {
	var req transport.DailyTaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		// weekday validation errors carry a usable message
		if domain.IsDomainError(err, domain.ErrCodeInvalid) {
			h.respondError(ctx, err)
		} else {
			h.respondInvalid(ctx, "invalid payload")
		}
		return nil, false
	}

	priority := domain.Priority(req.Priority)
	if req.Priority == "" {
		priority = domain.PriorityMedium
	}

	return &domain.DailyTask{
		Title:            req.Title,
		Description:      req.Description,
		Notes:            req.Notes,
		AssigneeIDs:      req.AssigneeIDs,
		Priority:         priority,
		ScheduledDays:    req.ScheduledDays,
		EstimatedMinutes: req.EstimatedMinutes,
		ReminderTime:     req.ReminderTime,
	}, true
}
