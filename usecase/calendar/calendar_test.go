package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/teamboard/backend/domain"
	"github.com/teamboard/backend/repository"
)

type stubTaskRepo struct {
	repository.TaskRepository
	deadlined []domain.Task
}

func (s *stubTaskRepo) ListWithDeadlines(_ context.Context, _ string, from, to domain.Date) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range s.deadlined {
		if task.Deadline == nil {
			continue
		}
		day := domain.DateOf(*task.Deadline)
		if day.Before(from) || day.After(to) {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

type stubDailyTaskRepo struct {
	repository.DailyTaskRepository
	schedules []domain.DailyTask
}

func (s *stubDailyTaskRepo) List(_ context.Context, filter repository.DailyTaskFilter) ([]domain.DailyTask, error) {
	var out []domain.DailyTask
	for _, schedule := range s.schedules {
		if filter.ActiveOnly && !schedule.IsActive {
			continue
		}
		out = append(out, schedule)
	}
	return out, nil
}

type stubCompletionRepo struct {
	repository.CompletionRepository
	dates map[string]map[string]bool // taskID -> date -> done
}

func (s *stubCompletionRepo) DatesByTask(_ context.Context, taskID, _ string, _, _ domain.Date) (map[string]bool, error) {
	if s.dates == nil {
		return map[string]bool{}, nil
	}
	dates, ok := s.dates[taskID]
	if !ok {
		return map[string]bool{}, nil
	}
	return dates, nil
}

func days(t *testing.T, codes ...int) domain.WeekdaySet {
	t.Helper()
	set, err := domain.NewWeekdaySet(codes...)
	if err != nil {
		t.Fatalf("NewWeekdaySet: %v", err)
	}
	return set
}

func TestFeed(t *testing.T) {
	// 2026-01-05 is a Monday.
	monday := domain.NewDate(2026, time.January, 5)
	deadline := time.Date(2026, time.January, 6, 17, 0, 0, 0, time.UTC)

	tasks := &stubTaskRepo{deadlined: []domain.Task{
		{ID: "t1", Title: "release", Status: domain.TaskInProgress, Priority: domain.PriorityHigh, Deadline: &deadline},
	}}
	dailyTasks := &stubDailyTaskRepo{schedules: []domain.DailyTask{
		{ID: "d1", Title: "standup", IsActive: true, Priority: domain.PriorityMedium, ScheduledDays: days(t, domain.Monday, domain.Tuesday)},
	}}
	completions := &stubCompletionRepo{dates: map[string]map[string]bool{
		"d1": {monday.String(): true},
	}}

	uc := New(tasks, dailyTasks, completions, nil)

	entries, err := uc.Feed(context.Background(), "alice", monday, monday.AddDays(6))
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}

	// Monday occurrence, then Tuesday: deadline entry before occurrence.
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	first := entries[0]
	if first.Kind != domain.CalendarKindRecurring || !first.Date.Equal(monday) {
		t.Errorf("entry 0 = %s on %s, want recurring on %s", first.Kind, first.Date, monday)
	}
	if first.Occurrence == nil || !first.Occurrence.Completed {
		t.Error("Monday occurrence should be flagged completed")
	}

	second := entries[1]
	if second.Kind != domain.CalendarKindTask || second.Task == nil || second.Task.TaskID != "t1" {
		t.Errorf("entry 1 = %+v, want task t1", second)
	}
	if !second.Date.Equal(monday.AddDays(1)) {
		t.Errorf("entry 1 date = %s, want %s", second.Date, monday.AddDays(1))
	}

	third := entries[2]
	if third.Kind != domain.CalendarKindRecurring || third.Occurrence == nil || third.Occurrence.Completed {
		t.Errorf("entry 2 = %+v, want uncompleted occurrence", third)
	}
}

func TestFeedWindowValidation(t *testing.T) {
	uc := New(&stubTaskRepo{}, &stubDailyTaskRepo{}, &stubCompletionRepo{}, nil)
	from := domain.NewDate(2026, time.January, 5)

	t.Run("reversed window", func(t *testing.T) {
		_, err := uc.Feed(context.Background(), "alice", from, from.AddDays(-1))
		if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
			t.Errorf("Feed = %v, want INVALID", err)
		}
	})

	t.Run("window too wide", func(t *testing.T) {
		_, err := uc.Feed(context.Background(), "alice", from, from.AddDays(maxWindowDays+1))
		if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
			t.Errorf("Feed = %v, want INVALID", err)
		}
	})

	t.Run("zero dates", func(t *testing.T) {
		_, err := uc.Feed(context.Background(), "alice", domain.Date{}, from)
		if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
			t.Errorf("Feed = %v, want INVALID", err)
		}
	})
}

func TestFeedSkipsPausedSchedules(t *testing.T) {
	monday := domain.NewDate(2026, time.January, 5)
	dailyTasks := &stubDailyTaskRepo{schedules: []domain.DailyTask{
		{ID: "d1", Title: "paused", IsActive: false, ScheduledDays: days(t, domain.Monday)},
	}}
	uc := New(&stubTaskRepo{}, dailyTasks, &stubCompletionRepo{}, nil)

	entries, err := uc.Feed(context.Background(), "alice", monday, monday)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}
