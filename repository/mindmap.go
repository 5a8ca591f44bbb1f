package repository

import (
	"context"

	"github.com/teamboard/backend/domain"
)

type MindmapRepository interface {
	GetProject(ctx context.Context, id string) (*domain.MindmapProject, error)
	ListProjects(ctx context.Context, creatorID string) ([]domain.MindmapProject, error)
	CreateProject(ctx context.Context, project *domain.MindmapProject) (*domain.MindmapProject, error)
	UpdateProject(ctx context.Context, project *domain.MindmapProject) error
	DeleteProject(ctx context.Context, id string) error

	GetNode(ctx context.Context, id string) (*domain.MindmapNode, error)
	ListNodes(ctx context.Context, projectID string) ([]domain.MindmapNode, error)
	CreateNode(ctx context.Context, node *domain.MindmapNode) (*domain.MindmapNode, error)
	UpdateNode(ctx context.Context, node *domain.MindmapNode) error
	DeleteNode(ctx context.Context, id string) error

	CreateConnection(ctx context.Context, conn *domain.MindmapConnection) (*domain.MindmapConnection, error)
	DeleteConnection(ctx context.Context, id string) error
	ListConnections(ctx context.Context, projectID string) ([]domain.MindmapConnection, error)

	// Children and Parents are the one-hop traversals over connections.
	Children(ctx context.Context, nodeID string) ([]domain.MindmapNode, error)
	Parents(ctx context.Context, nodeID string) ([]domain.MindmapNode, error)
}
