package dailytask

import (
	"context"
	"testing"
	"time"

	"github.com/teamboard/backend/domain"
)

func reminder(s string) *string { return &s }

func TestComplete(t *testing.T) {
	ctx := context.Background()
	date := domain.NewDate(2026, time.February, 2)

	newEngine := func() (*UseCase, *fakeCompletionRepo) {
		task := &domain.DailyTask{
			ID:            "habit",
			Title:         "Read",
			CreatorID:     "alice",
			AssigneeIDs:   []string{"bob"},
			Priority:      domain.PriorityMedium,
			ScheduledDays: mustWeekdaySet(domain.Monday),
			IsActive:      true,
		}
		completions := newFakeCompletionRepo()
		return New(newFakeTaskRepo(task), completions, nil, nil), completions
	}

	t.Run("first completion", func(t *testing.T) {
		uc, _ := newEngine()
		rec, already, err := uc.Complete(ctx, "alice", "habit", date, "done early", nil)
		if err != nil {
			t.Fatalf("Complete: %v", err)
		}
		if already {
			t.Error("already = true on first completion")
		}
		if rec.DailyTaskID != "habit" || !rec.Date.Equal(date) {
			t.Errorf("unexpected record: %+v", rec)
		}
	})

	t.Run("repeat is idempotent", func(t *testing.T) {
		uc, _ := newEngine()
		first, _, err := uc.Complete(ctx, "alice", "habit", date, "", nil)
		if err != nil {
			t.Fatalf("first Complete: %v", err)
		}
		second, already, err := uc.Complete(ctx, "alice", "habit", date, "", nil)
		if err != nil {
			t.Fatalf("second Complete: %v", err)
		}
		if !already {
			t.Error("already = false on repeat completion")
		}
		if second.ID != first.ID {
			t.Errorf("repeat returned a different record: %s vs %s", second.ID, first.ID)
		}
	})

	t.Run("assignee may complete", func(t *testing.T) {
		uc, _ := newEngine()
		if _, _, err := uc.Complete(ctx, "bob", "habit", date, "", nil); err != nil {
			t.Fatalf("Complete as assignee: %v", err)
		}
	})

	t.Run("outsider is forbidden", func(t *testing.T) {
		uc, _ := newEngine()
		if _, _, err := uc.Complete(ctx, "mallory", "habit", date, "", nil); err != domain.ErrForbidden {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("same user distinct dates are distinct records", func(t *testing.T) {
		uc, completions := newEngine()
		if _, _, err := uc.Complete(ctx, "alice", "habit", date, "", nil); err != nil {
			t.Fatal(err)
		}
		if _, _, err := uc.Complete(ctx, "alice", "habit", date.AddDays(7), "", nil); err != nil {
			t.Fatal(err)
		}
		if len(completions.records) != 2 {
			t.Errorf("records = %d, want 2", len(completions.records))
		}
	})

	t.Run("zero date rejected", func(t *testing.T) {
		uc, _ := newEngine()
		if _, _, err := uc.Complete(ctx, "alice", "habit", domain.Date{}, "", nil); err != domain.ErrInvalidPayload {
			t.Errorf("err = %v, want ErrInvalidPayload", err)
		}
	})
}

func TestListDue(t *testing.T) {
	ctx := context.Background()
	// 2026-01-07 is a Wednesday.
	wednesday := domain.NewDate(2026, time.January, 7)

	tasks := []*domain.DailyTask{
		{
			ID: "late", Title: "Journal", CreatorID: "alice",
			Priority: domain.PriorityLow, ScheduledDays: mustWeekdaySet(domain.Wednesday),
			ReminderTime: reminder("21:00"), IsActive: true,
		},
		{
			ID: "early", Title: "Run", CreatorID: "alice",
			Priority: domain.PriorityHigh, ScheduledDays: mustWeekdaySet(domain.Wednesday),
			ReminderTime: reminder("07:30"), IsActive: true,
		},
		{
			ID: "anytime", Title: "Water plants", CreatorID: "alice",
			Priority: domain.PriorityLow, ScheduledDays: mustWeekdaySet(domain.Wednesday),
			IsActive: true,
		},
		{
			ID: "offday", Title: "Laundry", CreatorID: "alice",
			Priority: domain.PriorityLow, ScheduledDays: mustWeekdaySet(domain.Saturday),
			IsActive: true,
		},
		{
			ID: "paused", Title: "Meditate", CreatorID: "alice",
			Priority: domain.PriorityLow, ScheduledDays: mustWeekdaySet(domain.Wednesday),
			IsActive: false,
		},
		{
			ID: "other", Title: "Not mine", CreatorID: "carol",
			Priority: domain.PriorityLow, ScheduledDays: mustWeekdaySet(domain.Wednesday),
			IsActive: true,
		},
	}

	completions := newFakeCompletionRepo()
	completions.add("early", "alice", wednesday)
	uc := New(newFakeTaskRepo(tasks...), completions, nil, nil)

	t.Run("due ordering and filtering", func(t *testing.T) {
		due, err := uc.ListDue(ctx, "alice", wednesday)
		if err != nil {
			t.Fatalf("ListDue: %v", err)
		}

		want := []string{"early", "late", "anytime"}
		if len(due.Tasks) != len(want) {
			t.Fatalf("due = %d tasks, want %d", len(due.Tasks), len(want))
		}
		for i, id := range want {
			if due.Tasks[i].ID != id {
				t.Errorf("due[%d] = %s, want %s", i, due.Tasks[i].ID, id)
			}
		}
		if !due.Completed["early"] {
			t.Error("early not marked completed")
		}
		if due.Completed["late"] {
			t.Error("late marked completed")
		}
	})

	t.Run("no tasks yields empty list", func(t *testing.T) {
		due, err := uc.ListDue(ctx, "nobody", wednesday)
		if err != nil {
			t.Fatalf("ListDue: %v", err)
		}
		if len(due.Tasks) != 0 {
			t.Errorf("due = %d tasks, want 0", len(due.Tasks))
		}
		if len(due.Completed) != 0 {
			t.Errorf("completed = %d entries, want 0", len(due.Completed))
		}
	})
}

func TestScheduleLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("create validates", func(t *testing.T) {
		uc := New(newFakeTaskRepo(), newFakeCompletionRepo(), nil, nil)

		if _, err := uc.Create(ctx, "alice", &domain.DailyTask{Priority: domain.PriorityLow}); err == nil {
			t.Error("missing title accepted")
		}
		if _, err := uc.Create(ctx, "alice", &domain.DailyTask{Title: "x", Priority: "extreme"}); err == nil {
			t.Error("unknown priority accepted")
		}
		if _, err := uc.Create(ctx, "alice", &domain.DailyTask{
			Title: "x", Priority: domain.PriorityLow, ReminderTime: reminder("25:00"),
		}); err == nil {
			t.Error("invalid reminder time accepted")
		}

		created, err := uc.Create(ctx, "alice", &domain.DailyTask{
			Title:         "Stretch",
			Priority:      domain.PriorityLow,
			ScheduledDays: mustWeekdaySet(domain.Tuesday),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if created.CreatorID != "alice" || !created.IsActive {
			t.Errorf("created = %+v, want creator alice and active", created)
		}
	})

	t.Run("toggle by assignee", func(t *testing.T) {
		task := &domain.DailyTask{
			ID: "habit", Title: "Read", CreatorID: "alice", AssigneeIDs: []string{"bob"},
			Priority: domain.PriorityLow, ScheduledDays: mustWeekdaySet(domain.Monday), IsActive: true,
		}
		uc := New(newFakeTaskRepo(task), newFakeCompletionRepo(), nil, nil)

		toggled, err := uc.ToggleActive(ctx, "bob", "habit")
		if err != nil {
			t.Fatalf("ToggleActive: %v", err)
		}
		if toggled.IsActive {
			t.Error("task still active after toggle")
		}
		if _, err := uc.ToggleActive(ctx, "mallory", "habit"); err != domain.ErrForbidden {
			t.Errorf("outsider toggle err = %v, want ErrForbidden", err)
		}
	})

	t.Run("delete is creator only", func(t *testing.T) {
		task := &domain.DailyTask{
			ID: "habit", Title: "Read", CreatorID: "alice", AssigneeIDs: []string{"bob"},
			Priority: domain.PriorityLow, ScheduledDays: mustWeekdaySet(domain.Monday), IsActive: true,
		}
		repo := newFakeTaskRepo(task)
		uc := New(repo, newFakeCompletionRepo(), nil, nil)

		if err := uc.Delete(ctx, "bob", "habit"); err != domain.ErrForbidden {
			t.Errorf("assignee delete err = %v, want ErrForbidden", err)
		}
		if err := uc.Delete(ctx, "alice", "habit"); err != nil {
			t.Fatalf("creator delete: %v", err)
		}
		if _, err := uc.Get(ctx, "alice", "habit"); err != domain.ErrDailyTaskNotFound {
			t.Errorf("get after delete err = %v, want ErrDailyTaskNotFound", err)
		}
	})

	t.Run("update keeps creator", func(t *testing.T) {
		task := &domain.DailyTask{
			ID: "habit", Title: "Read", CreatorID: "alice", AssigneeIDs: []string{"bob"},
			Priority: domain.PriorityLow, ScheduledDays: mustWeekdaySet(domain.Monday), IsActive: true,
		}
		uc := New(newFakeTaskRepo(task), newFakeCompletionRepo(), nil, nil)

		updated, err := uc.Update(ctx, "bob", &domain.DailyTask{
			ID: "habit", Title: "Read more", CreatorID: "bob",
			Priority: domain.PriorityHigh, ScheduledDays: mustWeekdaySet(domain.Monday, domain.Thursday),
		})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if updated.CreatorID != "alice" {
			t.Errorf("creator = %s, want alice", updated.CreatorID)
		}
		if updated.Title != "Read more" {
			t.Errorf("title = %s, want Read more", updated.Title)
		}
	})
}
