package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Weekday codes follow the scheduling convention 0=Monday .. 6=Sunday.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdaySet is a set of scheduled weekdays stored as a 7-bit mask.
// Construction validates every code, so a populated set never carries a
// value outside 0..6.
type WeekdaySet uint8

// NewWeekdaySet builds a set from weekday codes. Codes outside 0..6 are
// rejected with an INVALID error.
func NewWeekdaySet(days ...int) (WeekdaySet, error) {
	var set WeekdaySet
	for _, day := range days {
		if day < Monday || day > Sunday {
			return 0, NewError(ErrCodeInvalid, fmt.Sprintf("invalid weekday: %d, must be 0-6", day))
		}
		set |= 1 << uint(day)
	}
	return set, nil
}

// Contains reports whether the weekday code is in the set.
func (s WeekdaySet) Contains(day int) bool {
	if day < Monday || day > Sunday {
		return false
	}
	return s&(1<<uint(day)) != 0
}

// ContainsDate reports whether the date's weekday is in the set.
func (s WeekdaySet) ContainsDate(d Date) bool {
	return s.Contains(d.Weekday())
}

// IsEmpty reports whether no weekday is scheduled.
func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// Len returns the number of scheduled weekdays.
func (s WeekdaySet) Len() int {
	count := 0
	for day := Monday; day <= Sunday; day++ {
		if s.Contains(day) {
			count++
		}
	}
	return count
}

// Days returns the scheduled weekday codes in canonical Mon..Sun order.
func (s WeekdaySet) Days() []int {
	days := make([]int, 0, 7)
	for day := Monday; day <= Sunday; day++ {
		if s.Contains(day) {
			days = append(days, day)
		}
	}
	return days
}

// Describe renders the set in canonical order, e.g. "Mon, Wed, Fri".
// An empty set renders as "No days scheduled".
func (s WeekdaySet) Describe() string {
	if s.IsEmpty() {
		return "No days scheduled"
	}
	names := make([]string, 0, 7)
	for day := Monday; day <= Sunday; day++ {
		if s.Contains(day) {
			names = append(names, weekdayNames[day])
		}
	}
	return strings.Join(names, ", ")
}

func (s WeekdaySet) String() string {
	return s.Describe()
}

// MarshalJSON encodes the set as a sorted array of weekday codes.
func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Days())
}

// UnmarshalJSON decodes an array of weekday codes, validating each one.
func (s *WeekdaySet) UnmarshalJSON(data []byte) error {
	var days []int
	if err := json.Unmarshal(data, &days); err != nil {
		return WrapError(ErrCodeInvalid, "scheduled days must be an array of weekday numbers", err)
	}
	set, err := NewWeekdaySet(days...)
	if err != nil {
		return err
	}
	*s = set
	return nil
}

// weekdayCode maps time.Weekday (Sunday=0) to the scheduling convention
// (Monday=0 .. Sunday=6).
func weekdayCode(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
