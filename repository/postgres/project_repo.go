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

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository returns a Postgres-backed implementation of
// ProjectRepository.
func NewProjectRepository(pool *pgxpool.Pool) repository.ProjectRepository {
	return &projectRepository{pool: pool}
}

const projectColumns = `id, name, description, creator_id, priority, status, start_date, end_date, created_at, updated_at`

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(r.pool.QueryRow(ctx, query, id))
}

func (r *projectRepository) ListByMember(ctx context.Context, userID string) ([]domain.Project, error) {
	query := `
	SELECT ` + projectColumns + `
	FROM projects p
	WHERE p.creator_id = $1 OR EXISTS (
		SELECT 1 FROM project_members m WHERE m.project_id = p.id AND m.user_id = $1)
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if project == nil {
		return nil, domain.ErrInvalidPayload
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const query = `
	INSERT INTO projects (id, name, description, creator_id, priority, status, start_date, end_date)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`
	if err := tx.QueryRow(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		project.CreatorID,
		string(project.Priority),
		project.Status,
		project.StartDate.Time(),
		nullDate(project.EndDate),
	).Scan(&project.CreatedAt, &project.UpdatedAt); err != nil {
		return nil, err
	}

	// The creator is always an owner-role member.
	if _, err := tx.Exec(ctx,
		`INSERT INTO project_members (project_id, user_id, role) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		project.ID, project.CreatorID, domain.RoleOwner,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	if project == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE projects
	SET name = $2, description = $3, priority = $4, status = $5,
		start_date = $6, end_date = $7, updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		string(project.Priority),
		project.Status,
		project.StartDate.Time(),
		nullDate(project.EndDate),
	).Scan(&project.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProjectNotFound
		}
		return err
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *projectRepository) GetMember(ctx context.Context, projectID, userID string) (*domain.ProjectMember, error) {
	const query = `
	SELECT project_id, user_id, role, joined_at
	FROM project_members WHERE project_id = $1 AND user_id = $2
	`
	var member domain.ProjectMember
	if err := r.pool.QueryRow(ctx, query, projectID, userID).Scan(
		&member.ProjectID, &member.UserID, &member.Role, &member.JoinedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}
	return &member, nil
}

func (r *projectRepository) ListMembers(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	const query = `
	SELECT project_id, user_id, role, joined_at
	FROM project_members WHERE project_id = $1 ORDER BY joined_at
	`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.ProjectMember
	for rows.Next() {
		var member domain.ProjectMember
		if err := rows.Scan(&member.ProjectID, &member.UserID, &member.Role, &member.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (r *projectRepository) AddMember(ctx context.Context, member *domain.ProjectMember) error {
	if member == nil {
		return domain.ErrInvalidPayload
	}
	const query = `
	INSERT INTO project_members (project_id, user_id, role)
	VALUES ($1, $2, $3)
	ON CONFLICT (project_id, user_id) DO UPDATE SET role = EXCLUDED.role
	RETURNING joined_at
	`
	return r.pool.QueryRow(ctx, query, member.ProjectID, member.UserID, member.Role).Scan(&member.JoinedAt)
}

func (r *projectRepository) RemoveMember(ctx context.Context, projectID, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM project_members WHERE project_id = $1 AND user_id = $2`, projectID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *projectRepository) Progress(ctx context.Context, projectID string) (int, int, error) {
	const query = `
	SELECT COUNT(*),
		COUNT(*) FILTER (WHERE t.status = 'completed')
	FROM tasks t
	JOIN categories c ON c.id = t.category_id
	WHERE c.project_id = $1
	`
	var total, completed int
	if err := r.pool.QueryRow(ctx, query, projectID).Scan(&total, &completed); err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}

func (r *projectRepository) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return scanCategory(r.pool.QueryRow(ctx, query, id))
}

const categoryColumns = `id, project_id, name, description, color, created_at, updated_at`

func (r *projectRepository) ListCategories(ctx context.Context, projectID string) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE project_id = $1 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}

func (r *projectRepository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil {
		return nil, domain.ErrInvalidPayload
	}
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	const query = `
	INSERT INTO categories (id, project_id, name, description, color)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		category.ID, category.ProjectID, category.Name, category.Description, category.Color,
	).Scan(&category.CreatedAt, &category.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewError(domain.ErrCodeConflict, "category name already used in this project")
		}
		return nil, err
	}
	return category, nil
}

func (r *projectRepository) UpdateCategory(ctx context.Context, category *domain.Category) error {
	if category == nil {
		return domain.ErrInvalidPayload
	}
	const query = `
	UPDATE categories SET name = $2, description = $3, color = $4, updated_at = NOW()
	WHERE id = $1 RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		category.ID, category.Name, category.Description, category.Color,
	).Scan(&category.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrCategoryNotFound
		}
		if isUniqueViolation(err) {
			return domain.NewError(domain.ErrCodeConflict, "category name already used in this project")
		}
		return err
	}
	return nil
}

func (r *projectRepository) DeleteCategory(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func scanProject(r row) (*domain.Project, error) {
	var project domain.Project
	var (
		description *string
		start       time.Time
		end         *time.Time
	)

	if err := r.Scan(
		&project.ID,
		&project.Name,
		&description,
		&project.CreatorID,
		&project.Priority,
		&project.Status,
		&start,
		&end,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}

	if description != nil {
		project.Description = *description
	}
	project.StartDate = domain.DateOf(start)
	if end != nil {
		d := domain.DateOf(*end)
		project.EndDate = &d
	}
	return &project, nil
}

func scanCategory(r row) (*domain.Category, error) {
	var category domain.Category
	var description *string

	if err := r.Scan(
		&category.ID,
		&category.ProjectID,
		&category.Name,
		&description,
		&category.Color,
		&category.CreatedAt,
		&category.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}

	if description != nil {
		category.Description = *description
	}
	return &category, nil
}
