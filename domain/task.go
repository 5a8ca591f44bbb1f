package domain

import (
	"strings"
	"time"
)

// Task status values.
const (
	TaskTodo       = "todo"
	TaskInProgress = "in_progress"
	TaskReview     = "review"
	TaskCompleted  = "completed"
	TaskCancelled  = "cancelled"
)

// Task is a one-off work item inside a project category.
type Task struct {
	ID          string     `json:"id"`
	CategoryID  string     `json:"category_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatorID   string     `json:"creator_id"`
	AssigneeIDs []string   `json:"assignee_ids,omitempty"`
	Priority    Priority   `json:"priority"`
	Status      string     `json:"status"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	ActualHours *int       `json:"actual_hours,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (t *Task) Validate() error {
	if t == nil {
		return ErrInvalidPayload
	}
	if strings.TrimSpace(t.Title) == "" {
		return NewError(ErrCodeInvalid, "title is required")
	}
	if !t.Priority.Valid() {
		return NewError(ErrCodeInvalid, "invalid priority: "+string(t.Priority))
	}
	if !ValidTaskStatus(t.Status) {
		return NewError(ErrCodeInvalid, "invalid task status: "+t.Status)
	}
	return nil
}

// ValidTaskStatus reports whether the status is one of the kanban columns.
func ValidTaskStatus(status string) bool {
	switch status {
	case TaskTodo, TaskInProgress, TaskReview, TaskCompleted, TaskCancelled:
		return true
	}
	return false
}

// ApplyStatus transitions the task and maintains CompletedAt: it is stamped
// when the task enters completed and cleared when it leaves.
func (t *Task) ApplyStatus(status string, now time.Time) {
	if t == nil {
		return
	}
	t.Status = status
	if status == TaskCompleted {
		if t.CompletedAt == nil {
			stamp := now
			t.CompletedAt = &stamp
		}
	} else {
		t.CompletedAt = nil
	}
}

// IsOverdue reports whether the deadline has passed for a task still in flight.
func (t *Task) IsOverdue(now time.Time) bool {
	if t == nil || t.Deadline == nil {
		return false
	}
	if t.Status == TaskCompleted || t.Status == TaskCancelled {
		return false
	}
	return now.After(*t.Deadline)
}

// IsAssignee reports whether the user is in the assignee set.
func (t *Task) IsAssignee(userID string) bool {
	if t == nil || userID == "" {
		return false
	}
	for _, id := range t.AssigneeIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// CanEdit reports whether the user may mutate the task.
func (t *Task) CanEdit(userID string) bool {
	return t != nil && userID != "" && (t.CreatorID == userID || t.IsAssignee(userID))
}

// TaskComment is a single comment on a task, ordered oldest first.
type TaskComment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Activity log actions.
const (
	ActivityCreated         = "created"
	ActivityUpdated         = "updated"
	ActivityAssigned        = "assigned"
	ActivityStatusChanged   = "status_changed"
	ActivityPriorityChanged = "priority_changed"
	ActivityCommented       = "commented"
	ActivityCompleted       = "completed"
)

// TaskActivity is an append-only audit entry recorded alongside task
// mutations, ordered newest first.
type TaskActivity struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"task_id"`
	UserID      string    `json:"user_id"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskDependency records that Task must wait on DependsOnID. The pair is
// unique and self-dependencies are rejected at creation.
type TaskDependency struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"task_id"`
	DependsOnID string    `json:"depends_on_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (d *TaskDependency) Validate() error {
	if d == nil || d.TaskID == "" || d.DependsOnID == "" {
		return ErrInvalidPayload
	}
	if d.TaskID == d.DependsOnID {
		return NewError(ErrCodeInvalid, "a task cannot depend on itself")
	}
	return nil
}
