package domain

// Calendar entry kinds.
const (
	CalendarKindTask      = "task"
	CalendarKindRecurring = "recurring"
)

// CalendarTaskRef is the slice of a task a calendar needs: when it is due
// and how it is labelled.
type CalendarTaskRef struct {
	TaskID   string   `json:"task_id"`
	Title    string   `json:"title"`
	Status   string   `json:"status"`
	Priority Priority `json:"priority"`
	Overdue  bool     `json:"overdue"`
}

// CalendarOccurrence is one scheduled day of a recurring task, with its
// completion state for the requesting user.
type CalendarOccurrence struct {
	DailyTaskID  string   `json:"daily_task_id"`
	Title        string   `json:"title"`
	Priority     Priority `json:"priority"`
	ReminderTime *string  `json:"reminder_time,omitempty"`
	Completed    bool     `json:"completed"`
}

// CalendarEntry is a tagged union: Kind selects which variant pointer is set,
// and exactly one of Task or Occurrence is non-nil.
type CalendarEntry struct {
	Kind       string              `json:"kind"`
	Date       Date                `json:"date"`
	Task       *CalendarTaskRef    `json:"task,omitempty"`
	Occurrence *CalendarOccurrence `json:"occurrence,omitempty"`
}

// NewTaskEntry builds the task variant.
func NewTaskEntry(date Date, ref CalendarTaskRef) CalendarEntry {
	return CalendarEntry{Kind: CalendarKindTask, Date: date, Task: &ref}
}

// NewOccurrenceEntry builds the recurring-occurrence variant.
func NewOccurrenceEntry(date Date, occ CalendarOccurrence) CalendarEntry {
	return CalendarEntry{Kind: CalendarKindRecurring, Date: date, Occurrence: &occ}
}
