package dailytask

import (
	"context"

	"github.com/teamboard/backend/domain"
)

// streakScanCap bounds the backward calendar scan.
const streakScanCap = 365

// Streak returns the schedule-aware streak for one task: walking backward
// from asOf, non-scheduled days are skipped without breaking the run, a
// completed scheduled day extends it and the first scheduled day without a
// completion ends it. An empty schedule yields 0.
func (uc *UseCase) Streak(ctx context.Context, userID, taskID string, asOf domain.Date) (int, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return 0, err
	}
	if !task.CanEdit(userID) {
		return 0, domain.ErrForbidden
	}
	if task.ScheduledDays.IsEmpty() {
		return 0, nil
	}

	from := asOf.AddDays(-streakScanCap)
	completed, err := uc.completions.DatesByTask(ctx, taskID, userID, from, asOf)
	if err != nil {
		return 0, err
	}

	return scheduleStreak(task.ScheduledDays, completed, asOf), nil
}

// OverallStreak returns the number of consecutive calendar days ending at
// asOf on which the user completed at least one task of any schedule. Unlike
// the per-task streak it does not skip unscheduled days.
func (uc *UseCase) OverallStreak(ctx context.Context, userID string, asOf domain.Date) (int, error) {
	from := asOf.AddDays(-streakScanCap)
	completed, err := uc.completions.DatesByUser(ctx, userID, from, asOf)
	if err != nil {
		return 0, err
	}

	return calendarStreak(completed, asOf), nil
}

// CompletionRate returns the percentage of scheduled dates in [from, to] the
// user completed, rounded to one decimal. A window with no scheduled dates
// yields 0.
func (uc *UseCase) CompletionRate(ctx context.Context, userID, taskID string, from, to domain.Date) (float64, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return 0, err
	}
	if !task.CanEdit(userID) {
		return 0, domain.ErrForbidden
	}

	scheduled := scheduledDates(task.ScheduledDays, from, to)
	if scheduled == 0 {
		return 0, nil
	}

	count, err := uc.completions.CountRange(ctx, taskID, userID, from, to)
	if err != nil {
		return 0, err
	}

	return domain.Round1(float64(count) / float64(scheduled) * 100), nil
}

// scheduleStreak walks backward from asOf over the completion date set,
// honoring the weekday schedule.
func scheduleStreak(schedule domain.WeekdaySet, completed map[string]bool, asOf domain.Date) int {
	streak := 0
	day := asOf
	for i := 0; i <= streakScanCap; i++ {
		if schedule.ContainsDate(day) {
			if !completed[day.String()] {
				break
			}
			streak++
		}
		day = day.AddDays(-1)
	}
	return streak
}

// calendarStreak counts consecutive completed calendar days ending at asOf.
func calendarStreak(completed map[string]bool, asOf domain.Date) int {
	streak := 0
	day := asOf
	for i := 0; i <= streakScanCap; i++ {
		if !completed[day.String()] {
			break
		}
		streak++
		day = day.AddDays(-1)
	}
	return streak
}

// scheduledDates counts dates in [from, to] whose weekday is scheduled.
func scheduledDates(schedule domain.WeekdaySet, from, to domain.Date) int {
	if schedule.IsEmpty() || from.After(to) {
		return 0
	}
	count := 0
	for day := from; !day.After(to); day = day.AddDays(1) {
		if schedule.ContainsDate(day) {
			count++
		}
	}
	return count
}
