package domain

import (
	"strconv"
	"strings"
	"time"
)

// DailyTask is a recurring task definition: what recurs, on which weekdays,
// and who is expected to do it.
type DailyTask struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	CreatorID        string     `json:"creator_id"`
	AssigneeIDs      []string   `json:"assignee_ids,omitempty"`
	Priority         Priority   `json:"priority"`
	ScheduledDays    WeekdaySet `json:"scheduled_days"`
	EstimatedMinutes *int       `json:"estimated_minutes,omitempty"`
	ReminderTime     *string    `json:"reminder_time,omitempty"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Validate checks the invariants enforced at creation time: a title is
// required, the priority must be a known level and the reminder time, when
// set, must be a valid HH:MM clock time. Weekday codes are validated by
// WeekdaySet construction and need no second check here.
func (t *DailyTask) Validate() error {
	if t == nil {
		return ErrInvalidPayload
	}
	if strings.TrimSpace(t.Title) == "" {
		return NewError(ErrCodeInvalid, "title is required")
	}
	if !t.Priority.Valid() {
		return NewError(ErrCodeInvalid, "invalid priority: "+string(t.Priority))
	}
	if t.ReminderTime != nil {
		if _, _, err := ParseClockTime(*t.ReminderTime); err != nil {
			return err
		}
	}
	return nil
}

// IsDueOn reports whether the task applies on the given date: the date's
// weekday must be scheduled and the task must be active.
func (t *DailyTask) IsDueOn(date Date) bool {
	return t != nil && t.IsActive && t.ScheduledDays.ContainsDate(date)
}

// DescribeSchedule renders the scheduled weekdays in canonical Mon..Sun order.
func (t *DailyTask) DescribeSchedule() string {
	return t.ScheduledDays.Describe()
}

// IsCreator reports whether the user owns the task.
func (t *DailyTask) IsCreator(userID string) bool {
	return t != nil && userID != "" && t.CreatorID == userID
}

// IsAssignee reports whether the user is in the assignee set.
func (t *DailyTask) IsAssignee(userID string) bool {
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

// CanEdit reports whether the user may mutate the task. Edits, completions and
// the active toggle are open to the creator and to any assignee; deletion is
// creator-only and checked via IsCreator.
func (t *DailyTask) CanEdit(userID string) bool {
	return t.IsCreator(userID) || t.IsAssignee(userID)
}

// ParseClockTime parses an "HH:MM" time of day and returns hour and minute.
func ParseClockTime(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, NewError(ErrCodeInvalid, "invalid reminder time "+strconv.Quote(value)+", expected HH:MM")
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, NewError(ErrCodeInvalid, "invalid hour in reminder time "+strconv.Quote(value))
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, NewError(ErrCodeInvalid, "invalid minute in reminder time "+strconv.Quote(value))
	}
	return hour, minute, nil
}

// ClockTimeOf formats a timestamp as the "HH:MM" convention used for
// reminder matching.
func ClockTimeOf(t time.Time) string {
	return t.Format("15:04")
}
