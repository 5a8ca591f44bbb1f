package domain

import (
	"testing"
	"time"
)

func mustDays(t *testing.T, days ...int) WeekdaySet {
	t.Helper()
	set, err := NewWeekdaySet(days...)
	if err != nil {
		t.Fatalf("NewWeekdaySet: %v", err)
	}
	return set
}

func TestDailyTaskValidate(t *testing.T) {
	valid := func() *DailyTask {
		return &DailyTask{
			Title:         "morning standup",
			CreatorID:     "alice",
			Priority:      PriorityMedium,
			ScheduledDays: mustDays(t, Monday, Friday),
		}
	}

	t.Run("ok", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Errorf("Validate: %v", err)
		}
	})

	t.Run("title required", func(t *testing.T) {
		task := valid()
		task.Title = "   "
		if err := task.Validate(); !IsDomainError(err, ErrCodeInvalid) {
			t.Errorf("Validate = %v, want INVALID", err)
		}
	})

	t.Run("bad priority", func(t *testing.T) {
		task := valid()
		task.Priority = "extreme"
		if err := task.Validate(); !IsDomainError(err, ErrCodeInvalid) {
			t.Errorf("Validate = %v, want INVALID", err)
		}
	})

	t.Run("bad reminder time", func(t *testing.T) {
		task := valid()
		for _, raw := range []string{"25:00", "08:60", "8am", "08-30"} {
			reminder := raw
			task.ReminderTime = &reminder
			if err := task.Validate(); !IsDomainError(err, ErrCodeInvalid) {
				t.Errorf("Validate with reminder %q = %v, want INVALID", raw, err)
			}
		}
	})

	t.Run("valid reminder time", func(t *testing.T) {
		task := valid()
		reminder := "08:30"
		task.ReminderTime = &reminder
		if err := task.Validate(); err != nil {
			t.Errorf("Validate: %v", err)
		}
	})

	t.Run("empty schedule is allowed", func(t *testing.T) {
		task := valid()
		task.ScheduledDays = 0
		if err := task.Validate(); err != nil {
			t.Errorf("Validate: %v", err)
		}
	})
}

func TestDailyTaskIsDueOn(t *testing.T) {
	monday := NewDate(2026, time.January, 5)
	task := &DailyTask{
		Title:         "weekday chore",
		IsActive:      true,
		ScheduledDays: mustDays(t, Monday, Wednesday),
	}

	if !task.IsDueOn(monday) {
		t.Error("expected due on scheduled Monday")
	}
	if task.IsDueOn(monday.AddDays(1)) {
		t.Error("expected not due on unscheduled Tuesday")
	}

	task.IsActive = false
	if task.IsDueOn(monday) {
		t.Error("paused task must never be due")
	}
}

func TestDailyTaskPermissions(t *testing.T) {
	task := &DailyTask{CreatorID: "alice", AssigneeIDs: []string{"bob"}}

	if !task.CanEdit("alice") || !task.CanEdit("bob") {
		t.Error("creator and assignee must be able to edit")
	}
	if task.CanEdit("mallory") || task.CanEdit("") {
		t.Error("outsiders must not edit")
	}
	if !task.IsCreator("alice") || task.IsCreator("bob") {
		t.Error("IsCreator mismatch")
	}
}

func TestParseClockTime(t *testing.T) {
	hour, minute, err := ParseClockTime("09:45")
	if err != nil {
		t.Fatalf("ParseClockTime: %v", err)
	}
	if hour != 9 || minute != 45 {
		t.Errorf("got %d:%d, want 9:45", hour, minute)
	}

	for _, raw := range []string{"24:00", "12:60", "-1:30", "noon", "12:30:00"} {
		if _, _, err := ParseClockTime(raw); !IsDomainError(err, ErrCodeInvalid) {
			t.Errorf("ParseClockTime(%q) = %v, want INVALID", raw, err)
		}
	}
}

func TestClockTimeOf(t *testing.T) {
	stamp := time.Date(2026, time.January, 5, 8, 5, 59, 0, time.UTC)
	if got := ClockTimeOf(stamp); got != "08:05" {
		t.Errorf("ClockTimeOf = %q, want 08:05", got)
	}
}
