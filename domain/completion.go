package domain

import "time"

// Completion is a single entry in the completion ledger: one user finished
// one daily task on one calendar date. At most one row exists per
// (task, user, date) triple; the storage layer enforces this with a unique
// constraint, which is the only concurrency safeguard the ledger needs.
// Rows are immutable after insert and removed only by cascade.
type Completion struct {
	ID            string    `json:"id"`
	DailyTaskID   string    `json:"daily_task_id"`
	UserID        string    `json:"user_id"`
	Date          Date      `json:"date"`
	CompletedAt   time.Time `json:"completed_at"`
	Notes         string    `json:"notes,omitempty"`
	ActualMinutes *int      `json:"actual_minutes,omitempty"`
}
