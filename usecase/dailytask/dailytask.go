package dailytask

import (
	"context"

	"go.uber.org/zap"

	"github.com/teamboard/backend/domain"
	"github.com/teamboard/backend/repository"
	"github.com/teamboard/backend/usecase"
)

// UseCase drives the recurring task engine: schedule CRUD, the completion
// ledger, the due-today resolver and the streak calculators.
type UseCase struct {
	tasks       repository.DailyTaskRepository
	completions repository.CompletionRepository
	buffer      usecase.OperationBuffer
	logger      *zap.Logger
}

func New(tasks repository.DailyTaskRepository, completions repository.CompletionRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:       tasks,
		completions: completions,
		buffer:      buffer,
		logger:      logger,
	}
}

func (uc *UseCase) Get(ctx context.Context, userID, id string) (*domain.DailyTask, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !task.CanEdit(userID) {
		return nil, domain.ErrForbidden
	}
	return task, nil
}

func (uc *UseCase) List(ctx context.Context, userID string, activeOnly bool) ([]domain.DailyTask, error) {
	return uc.tasks.List(ctx, repository.DailyTaskFilter{UserID: userID, ActiveOnly: activeOnly})
}

// Create validates and stores a new schedule. The creator is always part of
// the visible set even with no assignees.
func (uc *UseCase) Create(ctx context.Context, userID string, task *domain.DailyTask) (*domain.DailyTask, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	task.CreatorID = userID
	task.IsActive = true
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return uc.tasks.Create(ctx, task)
}

// Update applies an edit. Creator and assignees may edit; the creator id
// never changes.
func (uc *UseCase) Update(ctx context.Context, userID string, task *domain.DailyTask) (*domain.DailyTask, error) {
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
	task.IsActive = existing.IsActive
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ToggleActive flips the active flag. A paused schedule is never due and
// dispatches no reminders, but keeps its completion history.
func (uc *UseCase) ToggleActive(ctx context.Context, userID, id string) (*domain.DailyTask, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !task.CanEdit(userID) {
		return nil, domain.ErrForbidden
	}

	task.IsActive = !task.IsActive
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a schedule and, by cascade, its ledger. Creator only.
func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !task.IsCreator(userID) {
		return domain.ErrForbidden
	}
	return uc.tasks.Delete(ctx, id)
}

// Complete records a completion for the given date. The call is idempotent:
// the second completion of the same (task, user, date) triple returns the
// original record with alreadyCompleted=true.
func (uc *UseCase) Complete(ctx context.Context, userID, taskID string, date domain.Date, notes string, actualMinutes *int) (rec *domain.Completion, alreadyCompleted bool, err error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, false, err
	}
	if !task.CanEdit(userID) {
		return nil, false, domain.ErrForbidden
	}
	if date.IsZero() {
		return nil, false, domain.ErrInvalidPayload
	}

	completion := &domain.Completion{
		DailyTaskID:   taskID,
		UserID:        userID,
		Date:          date,
		Notes:         notes,
		ActualMinutes: actualMinutes,
	}

	rec, created, err := uc.completions.Record(ctx, completion)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, completion) {
			return completion, false, nil
		}
		return nil, false, err
	}
	return rec, !created, nil
}

// Completions returns the ledger slice for a task inside [from, to],
// newest first.
func (uc *UseCase) Completions(ctx context.Context, userID, taskID string, from, to domain.Date) ([]domain.Completion, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.CanEdit(userID) {
		return nil, domain.ErrForbidden
	}
	return uc.completions.ListRange(ctx, taskID, userID, from, to)
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, completion *domain.Completion) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferCompletion(ctx, operation, completion); err != nil {
		uc.logger.Error("failed to buffer completion", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("completion buffered", zap.String("operation", operation), zap.String("task_id", completion.DailyTaskID))
	return true
}
