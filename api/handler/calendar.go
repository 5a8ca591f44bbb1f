package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/teamboard/backend/domain"
	"github.com/teamboard/backend/pkg/httpcontext"
	calendarUC "github.com/teamboard/backend/usecase/calendar"
)

type CalendarHandler struct {
	baseHandler
	uc *calendarUC.UseCase
}

func NewCalendarHandler(uc *calendarUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Merged calendar feed of deadlines and recurring occurrences
// @Tags calendar
// @Router /api/v1/calendar [get]
func (h *CalendarHandler) Feed(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	// Default window: the current month.
	now := time.Now()
	defaultFrom := domain.NewDate(now.Year(), now.Month(), 1)
	defaultTo := defaultFrom.AddDays(31)

	from, err := queryDate(ctx, "from", defaultFrom)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	to, err := queryDate(ctx, "to", defaultTo)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entries, err := h.uc.Feed(stdCtx, userID, from, to)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"from":    from,
		"to":      to,
		"entries": entries,
	})
}
