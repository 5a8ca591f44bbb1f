package services

import (
	"context"
	"testing"
	"time"

	"github.com/teamboard/backend/domain"
	"github.com/teamboard/backend/repository"
)

type stubDailyTaskRepo struct {
	tasks []domain.DailyTask
}

func (r *stubDailyTaskRepo) GetByID(context.Context, string) (*domain.DailyTask, error) {
	return nil, domain.ErrDailyTaskNotFound
}

func (r *stubDailyTaskRepo) List(_ context.Context, filter repository.DailyTaskFilter) ([]domain.DailyTask, error) {
	var out []domain.DailyTask
	for _, task := range r.tasks {
		if filter.ActiveOnly && !task.IsActive {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (r *stubDailyTaskRepo) Create(_ context.Context, task *domain.DailyTask) (*domain.DailyTask, error) {
	return task, nil
}

func (r *stubDailyTaskRepo) Update(context.Context, *domain.DailyTask) error { return nil }
func (r *stubDailyTaskRepo) Delete(context.Context, string) error            { return nil }

type recordingNotifier struct {
	sent []string
}

func (n *recordingNotifier) Notify(_ context.Context, userID string, task *domain.DailyTask) error {
	n.sent = append(n.sent, userID+":"+task.ID)
	return nil
}

func TestReminderDispatch(t *testing.T) {
	days := func(codes ...int) domain.WeekdaySet {
		set, err := domain.NewWeekdaySet(codes...)
		if err != nil {
			t.Fatalf("NewWeekdaySet: %v", err)
		}
		return set
	}
	at := func(s string) *string { return &s }

	// 2026-01-07 08:30 is a Wednesday morning.
	now := time.Date(2026, time.January, 7, 8, 30, 0, 0, time.UTC)

	repo := &stubDailyTaskRepo{tasks: []domain.DailyTask{
		{
			ID: "match", Title: "Standup", CreatorID: "alice", AssigneeIDs: []string{"bob", "alice"},
			Priority: domain.PriorityHigh, ScheduledDays: days(domain.Wednesday),
			ReminderTime: at("08:30"), IsActive: true,
		},
		{
			ID: "wrong-minute", Title: "Review", CreatorID: "alice",
			Priority: domain.PriorityLow, ScheduledDays: days(domain.Wednesday),
			ReminderTime: at("09:00"), IsActive: true,
		},
		{
			ID: "wrong-day", Title: "Retro", CreatorID: "alice",
			Priority: domain.PriorityLow, ScheduledDays: days(domain.Friday),
			ReminderTime: at("08:30"), IsActive: true,
		},
		{
			ID: "no-reminder", Title: "Stretch", CreatorID: "alice",
			Priority: domain.PriorityLow, ScheduledDays: days(domain.Wednesday),
			IsActive: true,
		},
		{
			ID: "paused", Title: "Plan", CreatorID: "alice",
			Priority: domain.PriorityLow, ScheduledDays: days(domain.Wednesday),
			ReminderTime: at("08:30"), IsActive: false,
		},
	}}

	notifier := &recordingNotifier{}
	rs := NewReminderScheduler(repo, notifier, "", nil)
	rs.now = func() time.Time { return now }

	if err := rs.Dispatch(context.Background()); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	want := []string{"alice:match", "bob:match"}
	if len(notifier.sent) != len(want) {
		t.Fatalf("sent = %v, want %v", notifier.sent, want)
	}
	for i := range want {
		if notifier.sent[i] != want[i] {
			t.Errorf("sent[%d] = %s, want %s", i, notifier.sent[i], want[i])
		}
	}
}
