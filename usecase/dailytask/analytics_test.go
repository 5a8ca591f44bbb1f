package dailytask

import (
	"context"
	"testing"
	"time"

	"github.com/teamboard/backend/domain"
)

func TestStreak(t *testing.T) {
	ctx := context.Background()
	// 2026-01-05 is a Monday.
	monday := domain.NewDate(2026, time.January, 5)

	newEngine := func(schedule domain.WeekdaySet) (*UseCase, *fakeCompletionRepo) {
		task := &domain.DailyTask{
			ID:            "habit",
			Title:         "Morning run",
			CreatorID:     "alice",
			Priority:      domain.PriorityMedium,
			ScheduledDays: schedule,
			IsActive:      true,
		}
		completions := newFakeCompletionRepo()
		return New(newFakeTaskRepo(task), completions, nil, nil), completions
	}

	t.Run("skips unscheduled days", func(t *testing.T) {
		uc, completions := newEngine(mustWeekdaySet(domain.Monday, domain.Wednesday, domain.Friday))
		// Mon, Wed, Fri of one week all completed; asOf the Friday.
		completions.add("habit", "alice", monday)
		completions.add("habit", "alice", monday.AddDays(2))
		completions.add("habit", "alice", monday.AddDays(4))

		got, err := uc.Streak(ctx, "alice", "habit", monday.AddDays(4))
		if err != nil {
			t.Fatalf("Streak: %v", err)
		}
		if got != 3 {
			t.Errorf("streak = %d, want 3", got)
		}
	})

	t.Run("missed scheduled day breaks the run", func(t *testing.T) {
		uc, completions := newEngine(mustWeekdaySet(domain.Monday, domain.Wednesday, domain.Friday))
		// Wednesday missing.
		completions.add("habit", "alice", monday)
		completions.add("habit", "alice", monday.AddDays(4))

		got, err := uc.Streak(ctx, "alice", "habit", monday.AddDays(4))
		if err != nil {
			t.Fatalf("Streak: %v", err)
		}
		if got != 1 {
			t.Errorf("streak = %d, want 1", got)
		}
	})

	t.Run("asOf on unscheduled day looks back", func(t *testing.T) {
		uc, completions := newEngine(mustWeekdaySet(domain.Monday, domain.Wednesday, domain.Friday))
		completions.add("habit", "alice", monday.AddDays(2))
		completions.add("habit", "alice", monday.AddDays(4))

		// Saturday: last scheduled day was Friday, which is completed.
		got, err := uc.Streak(ctx, "alice", "habit", monday.AddDays(5))
		if err != nil {
			t.Fatalf("Streak: %v", err)
		}
		if got != 2 {
			t.Errorf("streak = %d, want 2", got)
		}
	})

	t.Run("empty schedule yields zero", func(t *testing.T) {
		uc, completions := newEngine(0)
		completions.add("habit", "alice", monday)

		got, err := uc.Streak(ctx, "alice", "habit", monday)
		if err != nil {
			t.Fatalf("Streak: %v", err)
		}
		if got != 0 {
			t.Errorf("streak = %d, want 0", got)
		}
	})

	t.Run("no completions yields zero", func(t *testing.T) {
		uc, _ := newEngine(mustWeekdaySet(domain.Monday))
		got, err := uc.Streak(ctx, "alice", "habit", monday)
		if err != nil {
			t.Fatalf("Streak: %v", err)
		}
		if got != 0 {
			t.Errorf("streak = %d, want 0", got)
		}
	})

	t.Run("non-member gets forbidden", func(t *testing.T) {
		uc, _ := newEngine(mustWeekdaySet(domain.Monday))
		if _, err := uc.Streak(ctx, "mallory", "habit", monday); err != domain.ErrForbidden {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})
}

func TestScheduleStreakCap(t *testing.T) {
	// An everyday schedule completed every day for longer than the scan
	// window stops at the cap instead of scanning forever.
	schedule := mustWeekdaySet(0, 1, 2, 3, 4, 5, 6)
	asOf := domain.NewDate(2026, time.June, 1)

	completed := make(map[string]bool)
	for day := asOf; asOf.DaysUntil(day) > -600; day = day.AddDays(-1) {
		completed[day.String()] = true
	}

	if got := scheduleStreak(schedule, completed, asOf); got != streakScanCap+1 {
		t.Errorf("streak = %d, want %d", got, streakScanCap+1)
	}
}

func TestOverallStreak(t *testing.T) {
	ctx := context.Background()
	asOf := domain.NewDate(2026, time.March, 10)

	completions := newFakeCompletionRepo()
	uc := New(newFakeTaskRepo(), completions, nil, nil)

	// Three consecutive days across two different tasks, then a gap.
	completions.add("a", "alice", asOf)
	completions.add("b", "alice", asOf.AddDays(-1))
	completions.add("a", "alice", asOf.AddDays(-2))
	completions.add("a", "alice", asOf.AddDays(-4))

	got, err := uc.OverallStreak(ctx, "alice", asOf)
	if err != nil {
		t.Fatalf("OverallStreak: %v", err)
	}
	if got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
}

func TestCompletionRate(t *testing.T) {
	ctx := context.Background()
	monday := domain.NewDate(2026, time.January, 5)

	task := &domain.DailyTask{
		ID:            "habit",
		Title:         "Stretch",
		CreatorID:     "alice",
		Priority:      domain.PriorityLow,
		ScheduledDays: mustWeekdaySet(domain.Monday, domain.Wednesday, domain.Friday),
		IsActive:      true,
	}
	completions := newFakeCompletionRepo()
	uc := New(newFakeTaskRepo(task), completions, nil, nil)

	t.Run("two of three scheduled days", func(t *testing.T) {
		completions.add("habit", "alice", monday)
		completions.add("habit", "alice", monday.AddDays(2))

		got, err := uc.CompletionRate(ctx, "alice", "habit", monday, monday.AddDays(6))
		if err != nil {
			t.Fatalf("CompletionRate: %v", err)
		}
		if got != 66.7 {
			t.Errorf("rate = %v, want 66.7", got)
		}
	})

	t.Run("window with no scheduled days", func(t *testing.T) {
		// Saturday and Sunday only.
		got, err := uc.CompletionRate(ctx, "alice", "habit", monday.AddDays(5), monday.AddDays(6))
		if err != nil {
			t.Fatalf("CompletionRate: %v", err)
		}
		if got != 0 {
			t.Errorf("rate = %v, want 0", got)
		}
	})

	t.Run("inverted window", func(t *testing.T) {
		got, err := uc.CompletionRate(ctx, "alice", "habit", monday.AddDays(6), monday)
		if err != nil {
			t.Fatalf("CompletionRate: %v", err)
		}
		if got != 0 {
			t.Errorf("rate = %v, want 0", got)
		}
	})
}

func TestScheduledDates(t *testing.T) {
	monday := domain.NewDate(2026, time.January, 5)
	weekdays := mustWeekdaySet(0, 1, 2, 3, 4)

	if got := scheduledDates(weekdays, monday, monday.AddDays(13)); got != 10 {
		t.Errorf("scheduledDates over two weeks = %d, want 10", got)
	}
	if got := scheduledDates(weekdays, monday, monday); got != 1 {
		t.Errorf("scheduledDates single day = %d, want 1", got)
	}
	if got := scheduledDates(0, monday, monday.AddDays(13)); got != 0 {
		t.Errorf("scheduledDates empty set = %d, want 0", got)
	}
}
