package repository

import (
	"context"

	"github.com/teamboard/backend/domain"
)

type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListByMember(ctx context.Context, userID string) ([]domain.Project, error)
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id string) error

	GetMember(ctx context.Context, projectID, userID string) (*domain.ProjectMember, error)
	ListMembers(ctx context.Context, projectID string) ([]domain.ProjectMember, error)
	AddMember(ctx context.Context, member *domain.ProjectMember) error
	RemoveMember(ctx context.Context, projectID, userID string) error

	// Progress counts the project's tasks and how many are completed.
	Progress(ctx context.Context, projectID string) (total, completed int, err error)

	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	ListCategories(ctx context.Context, projectID string) ([]domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
}
