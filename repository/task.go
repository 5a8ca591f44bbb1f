package repository

import (
	"context"

	"github.com/teamboard/backend/domain"
)

// TaskFilter narrows task listings. UserID restricts to tasks the user
// created or is assigned to.
type TaskFilter struct {
	CategoryID string
	ProjectID  string
	UserID     string
	Status     string
	Limit      int
	Offset     int
}

// TaskRepository persists project tasks. Listings come back ordered by
// priority descending, deadline ascending with NULLs last, creation
// descending.
type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	ListWithDeadlines(ctx context.Context, userID string, from, to domain.Date) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error

	AddComment(ctx context.Context, comment *domain.TaskComment) (*domain.TaskComment, error)
	ListComments(ctx context.Context, taskID string) ([]domain.TaskComment, error)

	AddActivity(ctx context.Context, activity *domain.TaskActivity) error
	ListActivities(ctx context.Context, taskID string, limit int) ([]domain.TaskActivity, error)

	AddDependency(ctx context.Context, dep *domain.TaskDependency) (*domain.TaskDependency, error)
	RemoveDependency(ctx context.Context, taskID, dependsOnID string) error
	ListDependencies(ctx context.Context, taskID string) ([]domain.TaskDependency, error)
}
