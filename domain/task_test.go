package domain

import (
	"testing"
	"time"
)

func TestTaskApplyStatus(t *testing.T) {
	now := time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)

	t.Run("entering completed stamps CompletedAt", func(t *testing.T) {
		task := &Task{Status: TaskInProgress}
		task.ApplyStatus(TaskCompleted, now)
		if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
			t.Errorf("CompletedAt = %v, want %v", task.CompletedAt, now)
		}
	})

	t.Run("already completed keeps the original stamp", func(t *testing.T) {
		earlier := now.Add(-time.Hour)
		task := &Task{Status: TaskCompleted, CompletedAt: &earlier}
		task.ApplyStatus(TaskCompleted, now)
		if task.CompletedAt == nil || !task.CompletedAt.Equal(earlier) {
			t.Errorf("CompletedAt = %v, want %v", task.CompletedAt, earlier)
		}
	})

	t.Run("leaving completed clears CompletedAt", func(t *testing.T) {
		stamp := now
		task := &Task{Status: TaskCompleted, CompletedAt: &stamp}
		task.ApplyStatus(TaskInProgress, now)
		if task.CompletedAt != nil {
			t.Errorf("CompletedAt = %v, want nil", task.CompletedAt)
		}
	})
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		deadline *time.Time
		status   string
		want     bool
	}{
		{"no deadline", nil, TaskTodo, false},
		{"future deadline", &future, TaskTodo, false},
		{"past deadline in flight", &past, TaskInProgress, true},
		{"past deadline completed", &past, TaskCompleted, false},
		{"past deadline cancelled", &past, TaskCancelled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{Deadline: tt.deadline, Status: tt.status}
			if got := task.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskValidate(t *testing.T) {
	task := &Task{Title: "ship it", Priority: PriorityHigh, Status: TaskTodo}
	if err := task.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	task.Status = "done"
	if err := task.Validate(); !IsDomainError(err, ErrCodeInvalid) {
		t.Errorf("Validate with bad status = %v, want INVALID", err)
	}
}

func TestTaskDependencyValidate(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		dep := &TaskDependency{TaskID: "a", DependsOnID: "b"}
		if err := dep.Validate(); err != nil {
			t.Errorf("Validate: %v", err)
		}
	})

	t.Run("self dependency", func(t *testing.T) {
		dep := &TaskDependency{TaskID: "a", DependsOnID: "a"}
		if err := dep.Validate(); !IsDomainError(err, ErrCodeInvalid) {
			t.Errorf("Validate = %v, want INVALID", err)
		}
	})

	t.Run("missing ids", func(t *testing.T) {
		dep := &TaskDependency{TaskID: "a"}
		if err := dep.Validate(); err == nil {
			t.Error("expected error for missing depends_on_id")
		}
	})
}

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		completed, total int
		want             float64
	}{
		{0, 0, 0},
		{0, 10, 0},
		{10, 10, 100},
		{2, 3, 66.7},
		{1, 3, 33.3},
		{1, 8, 12.5},
	}
	for _, tt := range tests {
		if got := ProgressPercentage(tt.completed, tt.total); got != tt.want {
			t.Errorf("ProgressPercentage(%d, %d) = %v, want %v", tt.completed, tt.total, got, tt.want)
		}
	}
}
