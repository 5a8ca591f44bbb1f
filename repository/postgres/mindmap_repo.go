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

type mindmapRepository struct {
	pool *pgxpool.Pool
}

// NewMindmapRepository returns a Postgres-backed implementation of
// MindmapRepository.
func NewMindmapRepository(pool *pgxpool.Pool) repository.MindmapRepository {
	return &mindmapRepository{pool: pool}
}

const mindmapProjectColumns = `id, name, description, creator_id, background_color, grid_enabled, snap_to_grid, created_at, updated_at`

func (r *mindmapRepository) GetProject(ctx context.Context, id string) (*domain.MindmapProject, error) {
	query := `SELECT ` + mindmapProjectColumns + ` FROM mindmap_projects WHERE id = $1`
	return scanMindmapProject(r.pool.QueryRow(ctx, query, id))
}

func (r *mindmapRepository) ListProjects(ctx context.Context, creatorID string) ([]domain.MindmapProject, error) {
	query := `SELECT ` + mindmapProjectColumns + ` FROM mindmap_projects WHERE creator_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.MindmapProject
	for rows.Next() {
		project, err := scanMindmapProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

func (r *mindmapRepository) CreateProject(ctx context.Context, project *domain.MindmapProject) (*domain.MindmapProject, error) {
	if project == nil {
		return nil, domain.ErrInvalidPayload
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	const query = `
	INSERT INTO mindmap_projects (id, name, description, creator_id, background_color, grid_enabled, snap_to_grid)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		project.CreatorID,
		project.BackgroundColor,
		project.GridEnabled,
		project.SnapToGrid,
	).Scan(&project.CreatedAt, &project.UpdatedAt); err != nil {
		return nil, err
	}
	return project, nil
}

func (r *mindmapRepository) UpdateProject(ctx context.Context, project *domain.MindmapProject) error {
	if project == nil {
		return domain.ErrInvalidPayload
	}
	const query = `
	UPDATE mindmap_projects
	SET name = $2, description = $3, background_color = $4,
		grid_enabled = $5, snap_to_grid = $6, updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		project.ID, project.Name, project.Description,
		project.BackgroundColor, project.GridEnabled, project.SnapToGrid,
	).Scan(&project.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProjectNotFound
		}
		return err
	}
	return nil
}

func (r *mindmapRepository) DeleteProject(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM mindmap_projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

const mindmapNodeColumns = `id, project_id, title, description, status, priority, creator_id, assignee_id, x_position, y_position, width, height, tags, created_at, updated_at`

func (r *mindmapRepository) GetNode(ctx context.Context, id string) (*domain.MindmapNode, error) {
	query := `SELECT ` + mindmapNodeColumns + ` FROM mindmap_nodes WHERE id = $1`
	return scanMindmapNode(r.pool.QueryRow(ctx, query, id))
}

func (r *mindmapRepository) ListNodes(ctx context.Context, projectID string) ([]domain.MindmapNode, error) {
	query := `SELECT ` + mindmapNodeColumns + ` FROM mindmap_nodes WHERE project_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMindmapNodes(rows)
}

func (r *mindmapRepository) CreateNode(ctx context.Context, node *domain.MindmapNode) (*domain.MindmapNode, error) {
	if node == nil {
		return nil, domain.ErrInvalidPayload
	}
	if node.ID == "" {
		node.ID = uuid.NewString()
	}
	const query = `
	INSERT INTO mindmap_nodes (id, project_id, title, description, status, priority,
		creator_id, assignee_id, x_position, y_position, width, height, tags)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		node.ID,
		node.ProjectID,
		node.Title,
		node.Description,
		node.Status,
		string(node.Priority),
		node.CreatorID,
		nullString(node.AssigneeID),
		node.X,
		node.Y,
		node.Width,
		node.Height,
		node.Tags,
	).Scan(&node.CreatedAt, &node.UpdatedAt); err != nil {
		return nil, err
	}
	return node, nil
}

func (r *mindmapRepository) UpdateNode(ctx context.Context, node *domain.MindmapNode) error {
	if node == nil {
		return domain.ErrInvalidPayload
	}
	const query = `
	UPDATE mindmap_nodes
	SET title = $2, description = $3, status = $4, priority = $5, assignee_id = $6,
		x_position = $7, y_position = $8, width = $9, height = $10, tags = $11,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		node.ID, node.Title, node.Description, node.Status, string(node.Priority),
		nullString(node.AssigneeID), node.X, node.Y, node.Width, node.Height, node.Tags,
	).Scan(&node.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNodeNotFound
		}
		return err
	}
	return nil
}

func (r *mindmapRepository) DeleteNode(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM mindmap_nodes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNodeNotFound
	}
	return nil
}

const connectionColumns = `id, from_node_id, to_node_id, connection_type, label, color, thickness, created_at`

func (r *mindmapRepository) CreateConnection(ctx context.Context, conn *domain.MindmapConnection) (*domain.MindmapConnection, error) {
	if conn == nil {
		return nil, domain.ErrInvalidPayload
	}
	if conn.ID == "" {
		conn.ID = uuid.NewString()
	}
	const query = `
	INSERT INTO mindmap_connections (id, from_node_id, to_node_id, connection_type, label, color, thickness)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		conn.ID, conn.FromNodeID, conn.ToNodeID, conn.Type, conn.Label, conn.Color, conn.Thickness,
	).Scan(&conn.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateConnection
		}
		return nil, err
	}
	return conn, nil
}

func (r *mindmapRepository) DeleteConnection(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM mindmap_connections WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConnectionNotFound
	}
	return nil
}

func (r *mindmapRepository) ListConnections(ctx context.Context, projectID string) ([]domain.MindmapConnection, error) {
	query := `
	SELECT ` + connectionColumns + `
	FROM mindmap_connections c
	WHERE EXISTS (SELECT 1 FROM mindmap_nodes n WHERE n.id = c.from_node_id AND n.project_id = $1)
	   OR EXISTS (SELECT 1 FROM mindmap_nodes n WHERE n.id = c.to_node_id AND n.project_id = $1)
	ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conns []domain.MindmapConnection
	for rows.Next() {
		conn, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		conns = append(conns, *conn)
	}
	return conns, rows.Err()
}

func (r *mindmapRepository) Children(ctx context.Context, nodeID string) ([]domain.MindmapNode, error) {
	query := `
	SELECT ` + mindmapNodeColumns + `
	FROM mindmap_nodes
	WHERE id IN (SELECT to_node_id FROM mindmap_connections WHERE from_node_id = $1)
	ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, nodeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMindmapNodes(rows)
}

func (r *mindmapRepository) Parents(ctx context.Context, nodeID string) ([]domain.MindmapNode, error) {
	query := `
	SELECT ` + mindmapNodeColumns + `
	FROM mindmap_nodes
	WHERE id IN (SELECT from_node_id FROM mindmap_connections WHERE to_node_id = $1)
	ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, nodeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMindmapNodes(rows)
}

func collectMindmapNodes(rows pgx.Rows) ([]domain.MindmapNode, error) {
	var nodes []domain.MindmapNode
	for rows.Next() {
		node, err := scanMindmapNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, *node)
	}
	return nodes, rows.Err()
}

func scanMindmapProject(r row) (*domain.MindmapProject, error) {
	var project domain.MindmapProject
	var description *string

	if err := r.Scan(
		&project.ID,
		&project.Name,
		&description,
		&project.CreatorID,
		&project.BackgroundColor,
		&project.GridEnabled,
		&project.SnapToGrid,
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
	return &project, nil
}

func scanMindmapNode(r row) (*domain.MindmapNode, error) {
	var node domain.MindmapNode
	var (
		description *string
		assignee    *string
		tags        []string
	)

	if err := r.Scan(
		&node.ID,
		&node.ProjectID,
		&node.Title,
		&description,
		&node.Status,
		&node.Priority,
		&node.CreatorID,
		&assignee,
		&node.X,
		&node.Y,
		&node.Width,
		&node.Height,
		&tags,
		&node.CreatedAt,
		&node.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNodeNotFound
		}
		return nil, err
	}

	if description != nil {
		node.Description = *description
	}
	node.AssigneeID = assignee
	node.Tags = tags
	return &node, nil
}

func scanConnection(r row) (*domain.MindmapConnection, error) {
	var conn domain.MindmapConnection
	var label *string

	if err := r.Scan(
		&conn.ID,
		&conn.FromNodeID,
		&conn.ToNodeID,
		&conn.Type,
		&label,
		&conn.Color,
		&conn.Thickness,
		&conn.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, err
	}

	if label != nil {
		conn.Label = *label
	}
	return &conn, nil
}
