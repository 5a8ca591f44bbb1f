package mindmap

import (
	"context"

	"go.uber.org/zap"

	"github.com/teamboard/backend/domain"
	"github.com/teamboard/backend/repository"
)

// UseCase drives the mindmap planner. Canvases are creator-owned: every
// operation checks ownership of the surrounding project.
type UseCase struct {
	mindmaps repository.MindmapRepository
	logger   *zap.Logger
}

func New(mindmaps repository.MindmapRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		mindmaps: mindmaps,
		logger:   logger,
	}
}

func (uc *UseCase) ListProjects(ctx context.Context, userID string) ([]domain.MindmapProject, error) {
	return uc.mindmaps.ListProjects(ctx, userID)
}

func (uc *UseCase) CreateProject(ctx context.Context, userID string, project *domain.MindmapProject) (*domain.MindmapProject, error) {
	if project == nil {
		return nil, domain.ErrInvalidPayload
	}
	project.CreatorID = userID
	if project.BackgroundColor == "" {
		project.BackgroundColor = "#ffffff"
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}
	return uc.mindmaps.CreateProject(ctx, project)
}

func (uc *UseCase) UpdateProject(ctx context.Context, userID string, project *domain.MindmapProject) (*domain.MindmapProject, error) {
	if project == nil || project.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if _, err := uc.ownedProject(ctx, userID, project.ID); err != nil {
		return nil, err
	}
	project.CreatorID = userID
	if err := project.Validate(); err != nil {
		return nil, err
	}
	if err := uc.mindmaps.UpdateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (uc *UseCase) DeleteProject(ctx context.Context, userID, id string) error {
	if _, err := uc.ownedProject(ctx, userID, id); err != nil {
		return err
	}
	return uc.mindmaps.DeleteProject(ctx, id)
}

// Graph returns the one-shot canvas payload: the project plus all nodes and
// connections.
func (uc *UseCase) Graph(ctx context.Context, userID, projectID string) (*domain.MindmapGraph, error) {
	project, err := uc.ownedProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	nodes, err := uc.mindmaps.ListNodes(ctx, projectID)
	if err != nil {
		return nil, err
	}
	connections, err := uc.mindmaps.ListConnections(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &domain.MindmapGraph{
		Project:     *project,
		Nodes:       nodes,
		Connections: connections,
	}, nil
}

func (uc *UseCase) CreateNode(ctx context.Context, userID string, node *domain.MindmapNode) (*domain.MindmapNode, error) {
	if node == nil || node.ProjectID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if _, err := uc.ownedProject(ctx, userID, node.ProjectID); err != nil {
		return nil, err
	}

	node.CreatorID = userID
	if node.Status == "" {
		node.Status = domain.MindmapBacklog
	}
	if node.Priority == "" {
		node.Priority = domain.PriorityMedium
	}
	if node.Width == 0 {
		node.Width = 200
	}
	if node.Height == 0 {
		node.Height = 100
	}
	if err := node.Validate(); err != nil {
		return nil, err
	}
	return uc.mindmaps.CreateNode(ctx, node)
}

func (uc *UseCase) UpdateNode(ctx context.Context, userID string, node *domain.MindmapNode) (*domain.MindmapNode, error) {
	if node == nil || node.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	existing, err := uc.mindmaps.GetNode(ctx, node.ID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.ownedProject(ctx, userID, existing.ProjectID); err != nil {
		return nil, err
	}

	node.ProjectID = existing.ProjectID
	node.CreatorID = existing.CreatorID
	if err := node.Validate(); err != nil {
		return nil, err
	}
	if err := uc.mindmaps.UpdateNode(ctx, node); err != nil {
		return nil, err
	}
	return node, nil
}

func (uc *UseCase) DeleteNode(ctx context.Context, userID, id string) error {
	node, err := uc.mindmaps.GetNode(ctx, id)
	if err != nil {
		return err
	}
	if _, err := uc.ownedProject(ctx, userID, node.ProjectID); err != nil {
		return err
	}
	return uc.mindmaps.DeleteNode(ctx, id)
}

// Connect links two nodes of the same canvas. The from→to pair is unique and
// self-loops are rejected.
func (uc *UseCase) Connect(ctx context.Context, userID string, conn *domain.MindmapConnection) (*domain.MindmapConnection, error) {
	if err := conn.Validate(); err != nil {
		return nil, err
	}

	from, err := uc.mindmaps.GetNode(ctx, conn.FromNodeID)
	if err != nil {
		return nil, err
	}
	to, err := uc.mindmaps.GetNode(ctx, conn.ToNodeID)
	if err != nil {
		return nil, err
	}
	if from.ProjectID != to.ProjectID {
		return nil, domain.NewError(domain.ErrCodeInvalid, "nodes belong to different mindmap projects")
	}
	if _, err := uc.ownedProject(ctx, userID, from.ProjectID); err != nil {
		return nil, err
	}

	if conn.Type == "" {
		conn.Type = "default"
	}
	if conn.Color == "" {
		conn.Color = "#64748b"
	}
	if conn.Thickness == 0 {
		conn.Thickness = 2
	}
	return uc.mindmaps.CreateConnection(ctx, conn)
}

func (uc *UseCase) Disconnect(ctx context.Context, userID, connectionID, projectID string) error {
	if _, err := uc.ownedProject(ctx, userID, projectID); err != nil {
		return err
	}
	return uc.mindmaps.DeleteConnection(ctx, connectionID)
}

// Children returns the nodes one hop downstream of the node.
func (uc *UseCase) Children(ctx context.Context, userID, nodeID string) ([]domain.MindmapNode, error) {
	node, err := uc.mindmaps.GetNode(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.ownedProject(ctx, userID, node.ProjectID); err != nil {
		return nil, err
	}
	return uc.mindmaps.Children(ctx, nodeID)
}

// Parents returns the nodes one hop upstream of the node.
func (uc *UseCase) Parents(ctx context.Context, userID, nodeID string) ([]domain.MindmapNode, error) {
	node, err := uc.mindmaps.GetNode(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.ownedProject(ctx, userID, node.ProjectID); err != nil {
		return nil, err
	}
	return uc.mindmaps.Parents(ctx, nodeID)
}

func (uc *UseCase) ownedProject(ctx context.Context, userID, projectID string) (*domain.MindmapProject, error) {
	project, err := uc.mindmaps.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.CreatorID != userID {
		return nil, domain.ErrForbidden
	}
	return project, nil
}
