package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teamboard/backend/domain"
	"github.com/teamboard/backend/repository"
	"github.com/teamboard/backend/usecase"
)

// UseCase drives kanban tasks: CRUD, comments, dependencies and the
// append-only activity log recorded alongside every mutation.
type UseCase struct {
	tasks  repository.TaskRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		buffer: buffer,
		logger: logger,
	}
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

func (uc *UseCase) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

// MyTasks lists tasks the user created or is assigned to, optionally
// narrowed to one status.
func (uc *UseCase) MyTasks(ctx context.Context, userID, status string) ([]domain.Task, error) {
	if status != "" && !domain.ValidTaskStatus(status) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "invalid task status: "+status)
	}
	return uc.tasks.List(ctx, repository.TaskFilter{UserID: userID, Status: status})
}

func (uc *UseCase) Create(ctx context.Context, userID string, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	task.CreatorID = userID
	if task.Status == "" {
		task.Status = domain.TaskTodo
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, task) {
			return task, nil
		}
		return nil, err
	}

	uc.record(ctx, created.ID, userID, domain.ActivityCreated, "created the task")
	return created, nil
}

// Update applies an edit and records the relevant activity entries. Status
// transitions maintain the completion timestamp.
func (uc *UseCase) Update(ctx context.Context, userID string, task *domain.Task) (*domain.Task, error) {
	if task == nil || task.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	existing, err := uc.tasks.GetByID(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	if !existing.CanEdit(userID) {
		return nil, domain.ErrForbidden
	}

	task.CreatorID = existing.CreatorID
	task.CompletedAt = existing.CompletedAt
	if task.Status != existing.Status {
		task.ApplyStatus(task.Status, time.Now())
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, task) {
			return task, nil
		}
		return nil, err
	}

	uc.recordChanges(ctx, userID, existing, task)
	return task, nil
}

func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if task.CreatorID != userID {
		return domain.ErrForbidden
	}

	if err := uc.tasks.Delete(ctx, id); err != nil {
		if err == domain.ErrTaskNotFound {
			return err
		}
		if uc.shouldBuffer(ctx, usecase.OperationDelete, &domain.Task{ID: id}) {
			return nil
		}
		return err
	}
	return nil
}

func (uc *UseCase) AddComment(ctx context.Context, userID, taskID, content string) (*domain.TaskComment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "comment content is required")
	}
	if _, err := uc.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	comment, err := uc.tasks.AddComment(ctx, &domain.TaskComment{
		TaskID:   taskID,
		AuthorID: userID,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, taskID, userID, domain.ActivityCommented, "commented on the task")
	return comment, nil
}

func (uc *UseCase) Comments(ctx context.Context, taskID string) ([]domain.TaskComment, error) {
	if _, err := uc.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	return uc.tasks.ListComments(ctx, taskID)
}

func (uc *UseCase) Activities(ctx context.Context, taskID string, limit int) ([]domain.TaskActivity, error) {
	if _, err := uc.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	return uc.tasks.ListActivities(ctx, taskID, limit)
}

// AddDependency links taskID to wait on dependsOnID. Both tasks must exist;
// the pair is unique and self-dependencies are rejected.
func (uc *UseCase) AddDependency(ctx context.Context, userID, taskID, dependsOnID string) (*domain.TaskDependency, error) {
	dep := &domain.TaskDependency{TaskID: taskID, DependsOnID: dependsOnID}
	if err := dep.Validate(); err != nil {
		return nil, err
	}

	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.CanEdit(userID) {
		return nil, domain.ErrForbidden
	}
	if _, err := uc.tasks.GetByID(ctx, dependsOnID); err != nil {
		return nil, err
	}

	return uc.tasks.AddDependency(ctx, dep)
}

func (uc *UseCase) RemoveDependency(ctx context.Context, userID, taskID, dependsOnID string) error {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if !task.CanEdit(userID) {
		return domain.ErrForbidden
	}
	return uc.tasks.RemoveDependency(ctx, taskID, dependsOnID)
}

func (uc *UseCase) Dependencies(ctx context.Context, taskID string) ([]domain.TaskDependency, error) {
	if _, err := uc.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	return uc.tasks.ListDependencies(ctx, taskID)
}

// recordChanges logs one activity entry per observed change.
func (uc *UseCase) recordChanges(ctx context.Context, userID string, before, after *domain.Task) {
	if after.Status != before.Status {
		action := domain.ActivityStatusChanged
		if after.Status == domain.TaskCompleted {
			action = domain.ActivityCompleted
		}
		uc.record(ctx, after.ID, userID, action,
			fmt.Sprintf("status changed from %s to %s", before.Status, after.Status))
	}
	if after.Priority != before.Priority {
		uc.record(ctx, after.ID, userID, domain.ActivityPriorityChanged,
			fmt.Sprintf("priority changed from %s to %s", before.Priority, after.Priority))
	}
	if assigneesChanged(before.AssigneeIDs, after.AssigneeIDs) {
		uc.record(ctx, after.ID, userID, domain.ActivityAssigned, "assignees changed")
	}
	if after.Title != before.Title || after.Description != before.Description || after.Notes != before.Notes {
		uc.record(ctx, after.ID, userID, domain.ActivityUpdated, "updated the task")
	}
}

// record appends an activity entry. Log failures are not surfaced to the
// caller; the mutation already succeeded.
func (uc *UseCase) record(ctx context.Context, taskID, userID, action, description string) {
	err := uc.tasks.AddActivity(ctx, &domain.TaskActivity{
		TaskID:      taskID,
		UserID:      userID,
		Action:      action,
		Description: description,
	})
	if err != nil {
		uc.logger.Error("failed to record task activity",
			zap.String("task_id", taskID), zap.String("action", action), zap.Error(err))
	}
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, task *domain.Task) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTask(ctx, operation, task); err != nil {
		uc.logger.Error("failed to buffer task operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("task operation buffered", zap.String("operation", operation))
	return true
}

func assigneesChanged(before, after []string) bool {
	if len(before) != len(after) {
		return true
	}
	seen := make(map[string]bool, len(before))
	for _, id := range before {
		seen[id] = true
	}
	for _, id := range after {
		if !seen[id] {
			return true
		}
	}
	return false
}
