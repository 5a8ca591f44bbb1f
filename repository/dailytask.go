package repository

import (
	"context"

	"github.com/teamboard/backend/domain"
)

// DailyTaskFilter narrows daily task listings. UserID scopes to tasks the
// user created or is assigned to; ActiveOnly drops paused schedules.
type DailyTaskFilter struct {
	UserID     string
	ActiveOnly bool
}

// DailyTaskRepository persists recurring task definitions. Listings come back
// ordered by reminder time ascending with NULLs last, title ascending, which
// is the order the due-today resolver presents.
type DailyTaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.DailyTask, error)
	List(ctx context.Context, filter DailyTaskFilter) ([]domain.DailyTask, error)
	Create(ctx context.Context, task *domain.DailyTask) (*domain.DailyTask, error)
	Update(ctx context.Context, task *domain.DailyTask) error
	Delete(ctx context.Context, id string) error
}

// CompletionRepository is the append-only completion ledger.
type CompletionRepository interface {
	// Record inserts a completion. When a row for the (task, user, date)
	// triple already exists the existing row is returned with created=false;
	// the unique constraint in storage makes this safe under concurrent
	// double submission.
	Record(ctx context.Context, completion *domain.Completion) (rec *domain.Completion, created bool, err error)

	// ListRange returns completions for a task and user inside [from, to],
	// newest first.
	ListRange(ctx context.Context, taskID, userID string, from, to domain.Date) ([]domain.Completion, error)

	// DatesByTask returns the set of dates inside [from, to] on which the
	// user completed the task.
	DatesByTask(ctx context.Context, taskID, userID string, from, to domain.Date) (map[string]bool, error)

	// DatesByUser returns the set of dates inside [from, to] on which the
	// user completed any task.
	DatesByUser(ctx context.Context, userID string, from, to domain.Date) (map[string]bool, error)

	// CompletedTaskIDs returns which of the given tasks the user completed
	// on the given date.
	CompletedTaskIDs(ctx context.Context, taskIDs []string, userID string, date domain.Date) (map[string]bool, error)

	// CountRange returns the number of completions for a task and user
	// inside [from, to].
	CountRange(ctx context.Context, taskID, userID string, from, to domain.Date) (int, error)
}
