package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamboard/backend/domain"
	"github.com/teamboard/backend/repository"
)

type completionRepository struct {
	pool *pgxpool.Pool
}

// NewCompletionRepository returns the Postgres-backed completion ledger.
func NewCompletionRepository(pool *pgxpool.Pool) repository.CompletionRepository {
	return &completionRepository{pool: pool}
}

const completionColumns = `id, daily_task_id, user_id, date, completed_at, notes, actual_minutes`

// Record inserts under the unique (daily_task_id, user_id, date) constraint.
// ON CONFLICT DO NOTHING plus a follow-up select keeps the call idempotent:
// concurrent double submissions race on the constraint, never on application
// state, and replays from the offline buffer are harmless.
func (r *completionRepository) Record(ctx context.Context, completion *domain.Completion) (*domain.Completion, bool, error) {
	if completion == nil {
		return nil, false, domain.ErrInvalidPayload
	}
	if completion.ID == "" {
		completion.ID = uuid.NewString()
	}

	const insert = `
	INSERT INTO daily_task_completions (id, daily_task_id, user_id, date, notes, actual_minutes)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (daily_task_id, user_id, date) DO NOTHING
	RETURNING completed_at
	`
	err := r.pool.QueryRow(ctx, insert,
		completion.ID,
		completion.DailyTaskID,
		completion.UserID,
		completion.Date.Time(),
		completion.Notes,
		nullInt(completion.ActualMinutes),
	).Scan(&completion.CompletedAt)
	if err == nil {
		return completion, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	// Conflict path: hand back the row that won.
	existing, err := r.getByTriple(ctx, completion.DailyTaskID, completion.UserID, completion.Date)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *completionRepository) getByTriple(ctx context.Context, taskID, userID string, date domain.Date) (*domain.Completion, error) {
	query := `
	SELECT ` + completionColumns + `
	FROM daily_task_completions
	WHERE daily_task_id = $1 AND user_id = $2 AND date = $3
	`
	return scanCompletion(r.pool.QueryRow(ctx, query, taskID, userID, date.Time()))
}

func (r *completionRepository) ListRange(ctx context.Context, taskID, userID string, from, to domain.Date) ([]domain.Completion, error) {
	query := `
	SELECT ` + completionColumns + `
	FROM daily_task_completions
	WHERE daily_task_id = $1 AND user_id = $2 AND date BETWEEN $3 AND $4
	ORDER BY date DESC, completed_at DESC
	`
	rows, err := r.pool.Query(ctx, query, taskID, userID, from.Time(), to.Time())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []domain.Completion
	for rows.Next() {
		completion, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		completions = append(completions, *completion)
	}
	return completions, rows.Err()
}

func (r *completionRepository) DatesByTask(ctx context.Context, taskID, userID string, from, to domain.Date) (map[string]bool, error) {
	const query = `
	SELECT date FROM daily_task_completions
	WHERE daily_task_id = $1 AND user_id = $2 AND date BETWEEN $3 AND $4
	`
	return r.dateSet(ctx, query, taskID, userID, from.Time(), to.Time())
}

func (r *completionRepository) DatesByUser(ctx context.Context, userID string, from, to domain.Date) (map[string]bool, error) {
	const query = `
	SELECT DISTINCT date FROM daily_task_completions
	WHERE user_id = $1 AND date BETWEEN $2 AND $3
	`
	return r.dateSet(ctx, query, userID, from.Time(), to.Time())
}

func (r *completionRepository) CompletedTaskIDs(ctx context.Context, taskIDs []string, userID string, date domain.Date) (map[string]bool, error) {
	completed := make(map[string]bool, len(taskIDs))
	if len(taskIDs) == 0 {
		return completed, nil
	}

	const query = `
	SELECT daily_task_id FROM daily_task_completions
	WHERE daily_task_id = ANY($1) AND user_id = $2 AND date = $3
	`
	rows, err := r.pool.Query(ctx, query, taskIDs, userID, date.Time())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		completed[id] = true
	}
	return completed, rows.Err()
}

func (r *completionRepository) CountRange(ctx context.Context, taskID, userID string, from, to domain.Date) (int, error) {
	const query = `
	SELECT COUNT(*) FROM daily_task_completions
	WHERE daily_task_id = $1 AND user_id = $2 AND date BETWEEN $3 AND $4
	`
	var count int
	if err := r.pool.QueryRow(ctx, query, taskID, userID, from.Time(), to.Time()).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *completionRepository) dateSet(ctx context.Context, query string, args ...interface{}) (map[string]bool, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make(map[string]bool)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates[domain.DateOf(d).String()] = true
	}
	return dates, rows.Err()
}

func scanCompletion(r row) (*domain.Completion, error) {
	var completion domain.Completion
	var (
		date    time.Time
		notes   *string
		minutes *int
	)

	if err := r.Scan(
		&completion.ID,
		&completion.DailyTaskID,
		&completion.UserID,
		&date,
		&completion.CompletedAt,
		&notes,
		&minutes,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCompletionNotFound
		}
		return nil, err
	}

	completion.Date = domain.DateOf(date)
	if notes != nil {
		completion.Notes = *notes
	}
	completion.ActualMinutes = minutes
	return &completion, nil
}
