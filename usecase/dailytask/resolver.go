package dailytask

import (
	"context"

	"github.com/teamboard/backend/domain"
	"github.com/teamboard/backend/repository"
)

// DueList is the due-today payload: the tasks due on the date, in reminder
// order, plus the subset already completed by the user that day.
type DueList struct {
	Date      domain.Date        `json:"date"`
	Tasks     []domain.DailyTask `json:"tasks"`
	Completed map[string]bool    `json:"completed"`
}

// ListDue resolves which active schedules apply to the user on the given
// date. The repository returns creator-or-assignee tasks ordered by reminder
// time ascending with unset reminders last, then title; the weekday filter is
// applied here so the ordering survives. A user with no schedules gets an
// empty list.
func (uc *UseCase) ListDue(ctx context.Context, userID string, date domain.Date) (*DueList, error) {
	all, err := uc.tasks.List(ctx, repository.DailyTaskFilter{UserID: userID, ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	due := make([]domain.DailyTask, 0, len(all))
	ids := make([]string, 0, len(all))
	for _, task := range all {
		if task.IsDueOn(date) {
			due = append(due, task)
			ids = append(ids, task.ID)
		}
	}

	completed, err := uc.CompletionStatus(ctx, userID, date, ids)
	if err != nil {
		return nil, err
	}

	return &DueList{Date: date, Tasks: due, Completed: completed}, nil
}

// CompletionStatus returns which of the given tasks the user completed on the
// date. Unknown ids simply come back absent.
func (uc *UseCase) CompletionStatus(ctx context.Context, userID string, date domain.Date, taskIDs []string) (map[string]bool, error) {
	if len(taskIDs) == 0 {
		return map[string]bool{}, nil
	}
	return uc.completions.CompletedTaskIDs(ctx, taskIDs, userID, date)
}
