package dailytask

import (
	"context"
	"strconv"
	"time"

	"github.com/teamboard/backend/domain"
	"github.com/teamboard/backend/repository"
)

type fakeTaskRepo struct {
	tasks map[string]*domain.DailyTask
	err   error
}

func newFakeTaskRepo(tasks ...*domain.DailyTask) *fakeTaskRepo {
	repo := &fakeTaskRepo{tasks: make(map[string]*domain.DailyTask)}
	for _, t := range tasks {
		repo.tasks[t.ID] = t
	}
	return repo
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.DailyTask, error) {
	if r.err != nil {
		return nil, r.err
	}
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrDailyTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepo) List(_ context.Context, filter repository.DailyTaskFilter) ([]domain.DailyTask, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.DailyTask
	for _, task := range r.tasks {
		if filter.ActiveOnly && !task.IsActive {
			continue
		}
		if filter.UserID != "" && !task.IsCreator(filter.UserID) && !task.IsAssignee(filter.UserID) {
			continue
		}
		out = append(out, *task)
	}
	sortDueOrder(out)
	return out, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.DailyTask) (*domain.DailyTask, error) {
	if r.err != nil {
		return nil, r.err
	}
	if task.ID == "" {
		task.ID = "task-" + strconv.Itoa(len(r.tasks)+1)
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	copied := *task
	r.tasks[task.ID] = &copied
	return task, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *domain.DailyTask) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrDailyTaskNotFound
	}
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrDailyTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

// sortDueOrder mirrors the storage ordering: reminder time ascending with
// unset reminders last, then title.
func sortDueOrder(tasks []domain.DailyTask) {
	for i := 1; i < len(tasks); i++ {
		for j := i; j > 0 && dueLess(tasks[j], tasks[j-1]); j-- {
			tasks[j], tasks[j-1] = tasks[j-1], tasks[j]
		}
	}
}

func dueLess(a, b domain.DailyTask) bool {
	switch {
	case a.ReminderTime == nil && b.ReminderTime == nil:
		return a.Title < b.Title
	case a.ReminderTime == nil:
		return false
	case b.ReminderTime == nil:
		return true
	case *a.ReminderTime != *b.ReminderTime:
		return *a.ReminderTime < *b.ReminderTime
	default:
		return a.Title < b.Title
	}
}

type fakeCompletionRepo struct {
	records map[string]*domain.Completion
	err     error
}

func newFakeCompletionRepo() *fakeCompletionRepo {
	return &fakeCompletionRepo{records: make(map[string]*domain.Completion)}
}

func tripleKey(taskID, userID string, date domain.Date) string {
	return taskID + "|" + userID + "|" + date.String()
}

func (r *fakeCompletionRepo) add(taskID, userID string, date domain.Date) {
	key := tripleKey(taskID, userID, date)
	r.records[key] = &domain.Completion{
		ID:          key,
		DailyTaskID: taskID,
		UserID:      userID,
		Date:        date,
		CompletedAt: date.Time(),
	}
}

func (r *fakeCompletionRepo) Record(_ context.Context, c *domain.Completion) (*domain.Completion, bool, error) {
	if r.err != nil {
		return nil, false, r.err
	}
	key := tripleKey(c.DailyTaskID, c.UserID, c.Date)
	if existing, ok := r.records[key]; ok {
		copied := *existing
		return &copied, false, nil
	}
	c.ID = key
	c.CompletedAt = time.Now()
	copied := *c
	r.records[key] = &copied
	return c, true, nil
}

func (r *fakeCompletionRepo) ListRange(_ context.Context, taskID, userID string, from, to domain.Date) ([]domain.Completion, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Completion
	for _, rec := range r.records {
		if rec.DailyTaskID == taskID && rec.UserID == userID && inRange(rec.Date, from, to) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeCompletionRepo) DatesByTask(_ context.Context, taskID, userID string, from, to domain.Date) (map[string]bool, error) {
	if r.err != nil {
		return nil, r.err
	}
	dates := make(map[string]bool)
	for _, rec := range r.records {
		if rec.DailyTaskID == taskID && rec.UserID == userID && inRange(rec.Date, from, to) {
			dates[rec.Date.String()] = true
		}
	}
	return dates, nil
}

func (r *fakeCompletionRepo) DatesByUser(_ context.Context, userID string, from, to domain.Date) (map[string]bool, error) {
	if r.err != nil {
		return nil, r.err
	}
	dates := make(map[string]bool)
	for _, rec := range r.records {
		if rec.UserID == userID && inRange(rec.Date, from, to) {
			dates[rec.Date.String()] = true
		}
	}
	return dates, nil
}

func (r *fakeCompletionRepo) CompletedTaskIDs(_ context.Context, taskIDs []string, userID string, date domain.Date) (map[string]bool, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make(map[string]bool)
	for _, id := range taskIDs {
		if _, ok := r.records[tripleKey(id, userID, date)]; ok {
			out[id] = true
		}
	}
	return out, nil
}

func (r *fakeCompletionRepo) CountRange(_ context.Context, taskID, userID string, from, to domain.Date) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	count := 0
	for _, rec := range r.records {
		if rec.DailyTaskID == taskID && rec.UserID == userID && inRange(rec.Date, from, to) {
			count++
		}
	}
	return count, nil
}

func inRange(d, from, to domain.Date) bool {
	return !d.Before(from) && !d.After(to)
}

func mustWeekdaySet(days ...int) domain.WeekdaySet {
	set, err := domain.NewWeekdaySet(days...)
	if err != nil {
		panic(err)
	}
	return set
}
