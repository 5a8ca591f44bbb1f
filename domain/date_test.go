package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		d, err := ParseDate("2026-03-15")
		if err != nil {
			t.Fatalf("ParseDate: %v", err)
		}
		if d.String() != "2026-03-15" {
			t.Errorf("String = %q, want 2026-03-15", d.String())
		}
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		for _, raw := range []string{"15/03/2026", "2026-3-15", "garbage", ""} {
			if _, err := ParseDate(raw); !IsDomainError(err, ErrCodeInvalid) {
				t.Errorf("ParseDate(%q) = %v, want INVALID", raw, err)
			}
		}
	})
}

func TestDateWeekday(t *testing.T) {
	// 2026-01-05 is a Monday, 2026-01-11 a Sunday.
	if got := NewDate(2026, time.January, 5).Weekday(); got != Monday {
		t.Errorf("Monday weekday = %d, want %d", got, Monday)
	}
	if got := NewDate(2026, time.January, 11).Weekday(); got != Sunday {
		t.Errorf("Sunday weekday = %d, want %d", got, Sunday)
	}
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2026, time.February, 27)

	t.Run("add days crosses month boundary", func(t *testing.T) {
		if got := d.AddDays(2).String(); got != "2026-03-01" {
			t.Errorf("AddDays(2) = %q, want 2026-03-01", got)
		}
	})

	t.Run("days until", func(t *testing.T) {
		if got := d.DaysUntil(d.AddDays(10)); got != 10 {
			t.Errorf("DaysUntil = %d, want 10", got)
		}
		if got := d.DaysUntil(d.AddDays(-3)); got != -3 {
			t.Errorf("DaysUntil backwards = %d, want -3", got)
		}
	})

	t.Run("comparisons", func(t *testing.T) {
		later := d.AddDays(1)
		if !d.Before(later) || later.Before(d) {
			t.Error("Before mismatch")
		}
		if !later.After(d) || d.After(later) {
			t.Error("After mismatch")
		}
		if !d.Equal(NewDate(2026, time.February, 27)) {
			t.Error("Equal mismatch")
		}
	})
}

func TestDateOfTruncates(t *testing.T) {
	stamp := time.Date(2026, time.July, 4, 23, 59, 59, 0, time.UTC)
	if got := DateOf(stamp).String(); got != "2026-07-04" {
		t.Errorf("DateOf = %q, want 2026-07-04", got)
	}
}

func TestDateJSON(t *testing.T) {
	t.Run("marshals as quoted string", func(t *testing.T) {
		data, err := json.Marshal(NewDate(2026, time.May, 1))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(data) != `"2026-05-01"` {
			t.Errorf("marshal = %s", data)
		}
	})

	t.Run("zero marshals as null", func(t *testing.T) {
		data, err := json.Marshal(Date{})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(data) != "null" {
			t.Errorf("marshal = %s, want null", data)
		}
	})

	t.Run("unmarshal null and empty as zero", func(t *testing.T) {
		for _, raw := range []string{"null", `""`} {
			var d Date
			if err := json.Unmarshal([]byte(raw), &d); err != nil {
				t.Fatalf("unmarshal %s: %v", raw, err)
			}
			if !d.IsZero() {
				t.Errorf("unmarshal %s: expected zero date", raw)
			}
		}
	})

	t.Run("unmarshal rejects malformed", func(t *testing.T) {
		var d Date
		if err := json.Unmarshal([]byte(`"01.05.2026"`), &d); err == nil {
			t.Error("expected error for malformed date")
		}
	})
}
