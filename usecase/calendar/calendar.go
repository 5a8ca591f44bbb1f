package calendar

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/teamboard/backend/domain"
	"github.com/teamboard/backend/repository"
)

// maxWindowDays bounds a single feed request.
const maxWindowDays = 92

// UseCase assembles the calendar feed: deadline-carrying tasks and
// recurring-task occurrences merged into one date-ordered list.
type UseCase struct {
	tasks       repository.TaskRepository
	dailyTasks  repository.DailyTaskRepository
	completions repository.CompletionRepository
	logger      *zap.Logger
}

func New(tasks repository.TaskRepository, dailyTasks repository.DailyTaskRepository, completions repository.CompletionRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:       tasks,
		dailyTasks:  dailyTasks,
		completions: completions,
		logger:      logger,
	}
}

// Feed returns the user's calendar entries inside [from, to], ordered by
// date, task deadlines before recurring occurrences on the same day.
func (uc *UseCase) Feed(ctx context.Context, userID string, from, to domain.Date) ([]domain.CalendarEntry, error) {
	if from.IsZero() || to.IsZero() || from.After(to) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "calendar window requires from <= to")
	}
	if from.DaysUntil(to) > maxWindowDays {
		return nil, domain.NewError(domain.ErrCodeInvalid, "calendar window is limited to 92 days")
	}

	entries := make([]domain.CalendarEntry, 0, 32)

	deadlined, err := uc.tasks.ListWithDeadlines(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for _, task := range deadlined {
		if task.Deadline == nil {
			continue
		}
		entries = append(entries, domain.NewTaskEntry(domain.DateOf(*task.Deadline), domain.CalendarTaskRef{
			TaskID:   task.ID,
			Title:    task.Title,
			Status:   task.Status,
			Priority: task.Priority,
			Overdue:  task.IsOverdue(now),
		}))
	}

	occurrences, err := uc.occurrences(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	entries = append(entries, occurrences...)

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].Kind == domain.CalendarKindTask && entries[j].Kind == domain.CalendarKindRecurring
	})
	return entries, nil
}

// occurrences expands each active schedule over the window, one entry per
// scheduled date, flagged with the user's completion state.
func (uc *UseCase) occurrences(ctx context.Context, userID string, from, to domain.Date) ([]domain.CalendarEntry, error) {
	schedules, err := uc.dailyTasks.List(ctx, repository.DailyTaskFilter{UserID: userID, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return nil, nil
	}

	var entries []domain.CalendarEntry
	for _, schedule := range schedules {
		completed, err := uc.completions.DatesByTask(ctx, schedule.ID, userID, from, to)
		if err != nil {
			return nil, err
		}
		for day := from; !day.After(to); day = day.AddDays(1) {
			if !schedule.IsDueOn(day) {
				continue
			}
			entries = append(entries, domain.NewOccurrenceEntry(day, domain.CalendarOccurrence{
				DailyTaskID:  schedule.ID,
				Title:        schedule.Title,
				Priority:     schedule.Priority,
				ReminderTime: schedule.ReminderTime,
				Completed:    completed[day.String()],
			}))
		}
	}
	return entries, nil
}
