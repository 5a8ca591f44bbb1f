package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamboard/backend/domain"
	"github.com/teamboard/backend/repository"
)

type dailyTaskRepository struct {
	pool *pgxpool.Pool
}

// NewDailyTaskRepository returns a Postgres-backed implementation of
// DailyTaskRepository.
func NewDailyTaskRepository(pool *pgxpool.Pool) repository.DailyTaskRepository {
	return &dailyTaskRepository{pool: pool}
}

const dailyTaskColumns = `
	t.id, t.title, t.description, t.notes, t.creator_id, t.priority,
	t.scheduled_days, t.estimated_minutes, t.reminder_time, t.is_active,
	t.created_at, t.updated_at,
	(SELECT COALESCE(array_agg(a.user_id ORDER BY a.user_id), '{}')
	 FROM daily_task_assignees a WHERE a.daily_task_id = t.id)`

func (r *dailyTaskRepository) GetByID(ctx context.Context, id string) (*domain.DailyTask, error) {
	query := `SELECT ` + dailyTaskColumns + ` FROM daily_tasks t WHERE t.id = $1`
	return scanDailyTask(r.pool.QueryRow(ctx, query, id))
}

func (r *dailyTaskRepository) List(ctx context.Context, filter repository.DailyTaskFilter) ([]domain.DailyTask, error) {
	query := `
	SELECT ` + dailyTaskColumns + `
	FROM daily_tasks t
	WHERE ($1 = '' OR t.creator_id = $1 OR EXISTS (
		SELECT 1 FROM daily_task_assignees a
		WHERE a.daily_task_id = t.id AND a.user_id = $1))
	  AND (NOT $2 OR t.is_active)
	ORDER BY t.reminder_time ASC NULLS LAST, t.title ASC
	`
	rows, err := r.pool.Query(ctx, query, filter.UserID, filter.ActiveOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.DailyTask
	for rows.Next() {
		task, err := scanDailyTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *dailyTaskRepository) Create(ctx context.Context, task *domain.DailyTask) (*domain.DailyTask, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const query = `
	INSERT INTO daily_tasks (id, title, description, notes, creator_id, priority,
		scheduled_days, estimated_minutes, reminder_time, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING created_at, updated_at
	`
	if err := tx.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Notes,
		task.CreatorID,
		string(task.Priority),
		int16(task.ScheduledDays),
		nullInt(task.EstimatedMinutes),
		nullString(task.ReminderTime),
		task.IsActive,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	if err := replaceDailyTaskAssignees(ctx, tx, task.ID, task.AssigneeIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *dailyTaskRepository) Update(ctx context.Context, task *domain.DailyTask) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `
	UPDATE daily_tasks
	SET title = $2,
		description = $3,
		notes = $4,
		priority = $5,
		scheduled_days = $6,
		estimated_minutes = $7,
		reminder_time = $8,
		is_active = $9,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := tx.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Notes,
		string(task.Priority),
		int16(task.ScheduledDays),
		nullInt(task.EstimatedMinutes),
		nullString(task.ReminderTime),
		task.IsActive,
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrDailyTaskNotFound
		}
		return err
	}

	if err := replaceDailyTaskAssignees(ctx, tx, task.ID, task.AssigneeIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *dailyTaskRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM daily_tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDailyTaskNotFound
	}
	return nil
}

func replaceDailyTaskAssignees(ctx context.Context, tx pgx.Tx, taskID string, assigneeIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM daily_task_assignees WHERE daily_task_id = $1`, taskID); err != nil {
		return err
	}
	for _, userID := range assigneeIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO daily_task_assignees (daily_task_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			taskID, userID,
		); err != nil {
			return err
		}
	}
	return nil
}

func scanDailyTask(r row) (*domain.DailyTask, error) {
	var task domain.DailyTask
	var (
		description, notes *string
		scheduled          int16
		estimated          *int
		reminder           *string
		assignees          []string
	)

	if err := r.Scan(
		&task.ID,
		&task.Title,
		&description,
		&notes,
		&task.CreatorID,
		&task.Priority,
		&scheduled,
		&estimated,
		&reminder,
		&task.IsActive,
		&task.CreatedAt,
		&task.UpdatedAt,
		&assignees,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDailyTaskNotFound
		}
		return nil, err
	}

	if description != nil {
		task.Description = *description
	}
	if notes != nil {
		task.Notes = *notes
	}
	task.ScheduledDays = domain.WeekdaySet(scheduled)
	task.EstimatedMinutes = estimated
	task.ReminderTime = reminder
	task.AssigneeIDs = assignees
	return &task, nil
}
