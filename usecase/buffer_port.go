package usecase

import (
	"context"

	"github.com/teamboard/backend/domain"
)

// Buffered operation kinds, mirrored by the buffer store.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// OperationBuffer abstracts the offline write buffer so use cases stay
// storage-agnostic. Implementations persist the operation locally and replay
// it once the database is reachable again.
type OperationBuffer interface {
	BufferProfile(ctx context.Context, operation string, user *domain.User) error
	BufferTask(ctx context.Context, operation string, task *domain.Task) error
	BufferCompletion(ctx context.Context, operation string, completion *domain.Completion) error
}
