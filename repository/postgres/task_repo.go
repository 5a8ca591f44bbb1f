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

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `
	t.id, t.category_id, t.title, t.description, t.notes, t.creator_id,
	t.priority, t.status, t.deadline, t.actual_hours,
	t.created_at, t.updated_at, t.completed_at,
	(SELECT COALESCE(array_agg(a.user_id ORDER BY a.user_id), '{}')
	 FROM task_assignees a WHERE a.task_id = t.id)`

// priorityRank orders low < medium < high < urgent inside SQL.
const priorityRank = `array_position(ARRAY['low','medium','high','urgent'], t.priority)`

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t WHERE t.id = $1`
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks t
	JOIN categories c ON c.id = t.category_id
	WHERE ($1 = '' OR t.category_id = $1)
	  AND ($2 = '' OR c.project_id = $2)
	  AND ($3 = '' OR t.creator_id = $3 OR EXISTS (
		SELECT 1 FROM task_assignees a WHERE a.task_id = t.id AND a.user_id = $3))
	  AND ($4 = '' OR t.status = $4)
	ORDER BY ` + priorityRank + ` DESC, t.deadline ASC NULLS LAST, t.created_at DESC
	LIMIT $5 OFFSET $6
	`
	rows, err := r.pool.Query(ctx, query,
		filter.CategoryID, filter.ProjectID, filter.UserID, filter.Status,
		clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTasks(rows)
}

func (r *taskRepository) ListWithDeadlines(ctx context.Context, userID string, from, to domain.Date) ([]domain.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks t
	WHERE t.deadline IS NOT NULL
	  AND t.deadline >= $2 AND t.deadline < $3
	  AND (t.creator_id = $1 OR EXISTS (
		SELECT 1 FROM task_assignees a WHERE a.task_id = t.id AND a.user_id = $1))
	ORDER BY t.deadline ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, from.Time(), to.AddDays(1).Time())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTasks(rows)
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
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
	INSERT INTO tasks (id, category_id, title, description, notes, creator_id,
		priority, status, deadline, actual_hours, completed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING created_at, updated_at
	`
	var deadline interface{}
	if task.Deadline != nil {
		deadline = *task.Deadline
	}
	var completedAt interface{}
	if task.CompletedAt != nil {
		completedAt = *task.CompletedAt
	}

	if err := tx.QueryRow(ctx, query,
		task.ID,
		task.CategoryID,
		task.Title,
		task.Description,
		task.Notes,
		task.CreatorID,
		string(task.Priority),
		task.Status,
		deadline,
		nullInt(task.ActualHours),
		completedAt,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	if err := replaceTaskAssignees(ctx, tx, task.ID, task.AssigneeIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `
	UPDATE tasks
	SET category_id = $2, title = $3, description = $4, notes = $5,
		priority = $6, status = $7, deadline = $8, actual_hours = $9,
		completed_at = $10, updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	var deadline interface{}
	if task.Deadline != nil {
		deadline = *task.Deadline
	}
	var completedAt interface{}
	if task.CompletedAt != nil {
		completedAt = *task.CompletedAt
	}

	if err := tx.QueryRow(ctx, query,
		task.ID,
		task.CategoryID,
		task.Title,
		task.Description,
		task.Notes,
		string(task.Priority),
		task.Status,
		deadline,
		nullInt(task.ActualHours),
		completedAt,
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	if err := replaceTaskAssignees(ctx, tx, task.ID, task.AssigneeIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) AddComment(ctx context.Context, comment *domain.TaskComment) (*domain.TaskComment, error) {
	if comment == nil {
		return nil, domain.ErrInvalidPayload
	}
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	const query = `
	INSERT INTO task_comments (id, task_id, author_id, content)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		comment.ID, comment.TaskID, comment.AuthorID, comment.Content,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt); err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *taskRepository) ListComments(ctx context.Context, taskID string) ([]domain.TaskComment, error) {
	const query = `
	SELECT id, task_id, author_id, content, created_at, updated_at
	FROM task_comments WHERE task_id = $1 ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.TaskComment
	for rows.Next() {
		var comment domain.TaskComment
		if err := rows.Scan(
			&comment.ID, &comment.TaskID, &comment.AuthorID,
			&comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (r *taskRepository) AddActivity(ctx context.Context, activity *domain.TaskActivity) error {
	if activity == nil {
		return domain.ErrInvalidPayload
	}
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	const query = `
	INSERT INTO task_activities (id, task_id, user_id, action, description)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at
	`
	return r.pool.QueryRow(ctx, query,
		activity.ID, activity.TaskID, activity.UserID, activity.Action, activity.Description,
	).Scan(&activity.CreatedAt)
}

func (r *taskRepository) ListActivities(ctx context.Context, taskID string, limit int) ([]domain.TaskActivity, error) {
	const query = `
	SELECT id, task_id, user_id, action, description, created_at
	FROM task_activities WHERE task_id = $1
	ORDER BY created_at DESC LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, taskID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []domain.TaskActivity
	for rows.Next() {
		var activity domain.TaskActivity
		if err := rows.Scan(
			&activity.ID, &activity.TaskID, &activity.UserID,
			&activity.Action, &activity.Description, &activity.CreatedAt,
		); err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

func (r *taskRepository) AddDependency(ctx context.Context, dep *domain.TaskDependency) (*domain.TaskDependency, error) {
	if dep == nil {
		return nil, domain.ErrInvalidPayload
	}
	if dep.ID == "" {
		dep.ID = uuid.NewString()
	}
	const query = `
	INSERT INTO task_dependencies (id, task_id, depends_on_id)
	VALUES ($1, $2, $3)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query, dep.ID, dep.TaskID, dep.DependsOnID).Scan(&dep.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateDependency
		}
		return nil, err
	}
	return dep, nil
}

func (r *taskRepository) RemoveDependency(ctx context.Context, taskID, dependsOnID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM task_dependencies WHERE task_id = $1 AND depends_on_id = $2`,
		taskID, dependsOnID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewError(domain.ErrCodeNotFound, "dependency not found")
	}
	return nil
}

func (r *taskRepository) ListDependencies(ctx context.Context, taskID string) ([]domain.TaskDependency, error) {
	const query = `
	SELECT id, task_id, depends_on_id, created_at
	FROM task_dependencies WHERE task_id = $1 ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deps []domain.TaskDependency
	for rows.Next() {
		var dep domain.TaskDependency
		if err := rows.Scan(&dep.ID, &dep.TaskID, &dep.DependsOnID, &dep.CreatedAt); err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}
	return deps, rows.Err()
}

func replaceTaskAssignees(ctx context.Context, tx pgx.Tx, taskID string, assigneeIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM task_assignees WHERE task_id = $1`, taskID); err != nil {
		return err
	}
	for _, userID := range assigneeIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO task_assignees (task_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			taskID, userID,
		); err != nil {
			return err
		}
	}
	return nil
}

func collectTasks(rows pgx.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func scanTask(r row) (*domain.Task, error) {
	var task domain.Task
	var (
		description, notes    *string
		deadline, completedAt *time.Time
		actualHours           *int
		assignees             []string
	)

	if err := r.Scan(
		&task.ID,
		&task.CategoryID,
		&task.Title,
		&description,
		&notes,
		&task.CreatorID,
		&task.Priority,
		&task.Status,
		&deadline,
		&actualHours,
		&task.CreatedAt,
		&task.UpdatedAt,
		&completedAt,
		&assignees,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	if description != nil {
		task.Description = *description
	}
	if notes != nil {
		task.Notes = *notes
	}
	task.Deadline = deadline
	task.CompletedAt = completedAt
	task.ActualHours = actualHours
	task.AssigneeIDs = assignees
	return &task, nil
}
