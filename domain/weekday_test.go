package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewWeekdaySet(t *testing.T) {
	t.Run("valid codes", func(t *testing.T) {
		set, err := NewWeekdaySet(Monday, Wednesday, Friday)
		if err != nil {
			t.Fatalf("NewWeekdaySet: %v", err)
		}
		for _, day := range []int{Monday, Wednesday, Friday} {
			if !set.Contains(day) {
				t.Errorf("expected set to contain %d", day)
			}
		}
		for _, day := range []int{Tuesday, Thursday, Saturday, Sunday} {
			if set.Contains(day) {
				t.Errorf("expected set to not contain %d", day)
			}
		}
		if set.Len() != 3 {
			t.Errorf("Len = %d, want 3", set.Len())
		}
	})

	t.Run("rejects out of range", func(t *testing.T) {
		for _, day := range []int{-1, 7, 100} {
			if _, err := NewWeekdaySet(day); !IsDomainError(err, ErrCodeInvalid) {
				t.Errorf("NewWeekdaySet(%d) = %v, want INVALID", day, err)
			}
		}
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		set, err := NewWeekdaySet(Monday, Monday, Monday)
		if err != nil {
			t.Fatalf("NewWeekdaySet: %v", err)
		}
		if set.Len() != 1 {
			t.Errorf("Len = %d, want 1", set.Len())
		}
	})

	t.Run("empty set", func(t *testing.T) {
		set, err := NewWeekdaySet()
		if err != nil {
			t.Fatalf("NewWeekdaySet: %v", err)
		}
		if !set.IsEmpty() {
			t.Error("expected empty set")
		}
	})
}

func TestWeekdaySetDescribe(t *testing.T) {
	tests := []struct {
		name string
		days []int
		want string
	}{
		{"empty", nil, "No days scheduled"},
		{"single", []int{Sunday}, "Sun"},
		{"canonical order regardless of input order", []int{Friday, Monday, Wednesday}, "Mon, Wed, Fri"},
		{"full week", []int{0, 1, 2, 3, 4, 5, 6}, "Mon, Tue, Wed, Thu, Fri, Sat, Sun"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewWeekdaySet(tt.days...)
			if err != nil {
				t.Fatalf("NewWeekdaySet: %v", err)
			}
			if got := set.Describe(); got != tt.want {
				t.Errorf("Describe = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWeekdaySetJSON(t *testing.T) {
	t.Run("marshals as sorted codes", func(t *testing.T) {
		set, _ := NewWeekdaySet(Friday, Monday)
		data, err := json.Marshal(set)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(data) != "[0,4]" {
			t.Errorf("marshal = %s, want [0,4]", data)
		}
	})

	t.Run("unmarshal validates codes", func(t *testing.T) {
		var set WeekdaySet
		if err := json.Unmarshal([]byte("[0,9]"), &set); !IsDomainError(err, ErrCodeInvalid) {
			t.Errorf("unmarshal [0,9] = %v, want INVALID", err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		original, _ := NewWeekdaySet(Tuesday, Thursday)
		data, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var decoded WeekdaySet
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if decoded != original {
			t.Errorf("round trip = %v, want %v", decoded, original)
		}
	})
}

func TestWeekdayCode(t *testing.T) {
	// 2026-01-05 is a Monday.
	monday := time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		if got := weekdayCode(monday.AddDate(0, 0, i)); got != i {
			t.Errorf("weekdayCode(+%d days) = %d, want %d", i, got, i)
		}
	}
}
