package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/teamboard/backend/domain"
	"github.com/teamboard/backend/repository"
)

// Notifier delivers a reminder to one user. The zap-backed implementation
// below just logs; a push or chat transport plugs in the same way.
type Notifier interface {
	Notify(ctx context.Context, userID string, task *domain.DailyTask) error
}

// LogNotifier writes reminders to the service log.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, userID string, task *domain.DailyTask) error {
	n.logger.Info("reminder",
		zap.String("user_id", userID),
		zap.String("task_id", task.ID),
		zap.String("title", task.Title),
		zap.String("schedule", task.DescribeSchedule()))
	return nil
}

// ReminderScheduler fires once a minute and dispatches reminders for active
// schedules due today whose reminder time matches the current minute.
type ReminderScheduler struct {
	tasks    repository.DailyTaskRepository
	notifier Notifier
	logger   *zap.Logger
	cron     *cron.Cron
	now      func() time.Time
}

func NewReminderScheduler(tasks repository.DailyTaskRepository, notifier Notifier, schedule string, logger *zap.Logger) *ReminderScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if schedule == "" {
		schedule = "* * * * *"
	}

	rs := &ReminderScheduler{
		tasks:    tasks,
		notifier: notifier,
		logger:   logger,
		cron:     cron.New(),
		now:      time.Now,
	}

	_, _ = rs.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := rs.Dispatch(ctx); err != nil {
			rs.logger.Error("reminder dispatch failed", zap.Error(err))
		}
	})

	return rs
}

func (rs *ReminderScheduler) Start() {
	if rs == nil || rs.cron == nil {
		return
	}
	rs.cron.Start()
	rs.logger.Info("reminder scheduler started")
}

func (rs *ReminderScheduler) Stop(ctx context.Context) {
	if rs == nil || rs.cron == nil {
		return
	}
	stopCtx := rs.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	rs.logger.Info("reminder scheduler stopped")
}

// Dispatch sends reminders for the current minute. Each reminder goes to the
// creator and every assignee; a failed delivery is logged and does not stop
// the batch.
func (rs *ReminderScheduler) Dispatch(ctx context.Context) error {
	now := rs.now()
	today := domain.DateOf(now)
	minute := domain.ClockTimeOf(now)

	tasks, err := rs.tasks.List(ctx, repository.DailyTaskFilter{ActiveOnly: true})
	if err != nil {
		return err
	}

	for i := range tasks {
		task := &tasks[i]
		if task.ReminderTime == nil || *task.ReminderTime != minute {
			continue
		}
		if !task.IsDueOn(today) {
			continue
		}
		for _, userID := range recipients(task) {
			if err := rs.notifier.Notify(ctx, userID, task); err != nil {
				rs.logger.Warn("reminder delivery failed",
					zap.String("user_id", userID),
					zap.String("task_id", task.ID),
					zap.Error(err))
			}
		}
	}
	return nil
}

// recipients returns the creator plus assignees, deduplicated.
func recipients(task *domain.DailyTask) []string {
	out := make([]string, 0, 1+len(task.AssigneeIDs))
	seen := map[string]bool{task.CreatorID: true}
	out = append(out, task.CreatorID)
	for _, id := range task.AssigneeIDs {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
