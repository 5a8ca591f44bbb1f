package project

import (
	"context"

	"go.uber.org/zap"

	"github.com/teamboard/backend/domain"
	"github.com/teamboard/backend/repository"
)

// UseCase drives projects, membership and categories. All reads require
// membership; settings and membership changes require owner/admin;
// deleting the project requires the creator.
type UseCase struct {
	projects repository.ProjectRepository
	logger   *zap.Logger
}

func New(projects repository.ProjectRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		projects: projects,
		logger:   logger,
	}
}

// ProjectView is a project with its task roll-up.
type ProjectView struct {
	domain.Project
	Progress domain.ProjectProgress `json:"progress"`
}

func (uc *UseCase) Get(ctx context.Context, userID, id string) (*ProjectView, error) {
	if _, err := uc.projects.GetMember(ctx, id, userID); err != nil {
		return nil, err
	}
	project, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.withProgress(ctx, project)
}

func (uc *UseCase) List(ctx context.Context, userID string) ([]ProjectView, error) {
	projects, err := uc.projects.ListByMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]ProjectView, 0, len(projects))
	for i := range projects {
		view, err := uc.withProgress(ctx, &projects[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// Create stores the project and enrolls the creator as owner.
func (uc *UseCase) Create(ctx context.Context, userID string, project *domain.Project) (*domain.Project, error) {
	if project == nil {
		return nil, domain.ErrInvalidPayload
	}
	project.CreatorID = userID
	if project.Status == "" {
		project.Status = domain.ProjectActive
	}
	if project.Priority == "" {
		project.Priority = domain.PriorityMedium
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}
	return uc.projects.Create(ctx, project)
}

func (uc *UseCase) Update(ctx context.Context, userID string, project *domain.Project) (*domain.Project, error) {
	if project == nil || project.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	member, err := uc.projects.GetMember(ctx, project.ID, userID)
	if err != nil {
		return nil, err
	}
	if !member.CanManage() {
		return nil, domain.ErrForbidden
	}

	existing, err := uc.projects.GetByID(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	project.CreatorID = existing.CreatorID
	if err := project.Validate(); err != nil {
		return nil, err
	}
	if err := uc.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	project, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if project.CreatorID != userID {
		return domain.ErrForbidden
	}
	return uc.projects.Delete(ctx, id)
}

func (uc *UseCase) Members(ctx context.Context, userID, projectID string) ([]domain.ProjectMember, error) {
	if _, err := uc.projects.GetMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return uc.projects.ListMembers(ctx, projectID)
}

// AddMember enrolls a user. The owner role is reserved for the creator and
// cannot be granted.
func (uc *UseCase) AddMember(ctx context.Context, userID, projectID, memberID, role string) error {
	member, err := uc.projects.GetMember(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !member.CanManage() {
		return domain.ErrForbidden
	}
	switch role {
	case domain.RoleAdmin, domain.RoleEditor, domain.RoleViewer:
	default:
		return domain.NewError(domain.ErrCodeInvalid, "invalid member role: "+role)
	}

	return uc.projects.AddMember(ctx, &domain.ProjectMember{
		ProjectID: projectID,
		UserID:    memberID,
		Role:      role,
	})
}

func (uc *UseCase) RemoveMember(ctx context.Context, userID, projectID, memberID string) error {
	member, err := uc.projects.GetMember(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !member.CanManage() {
		return domain.ErrForbidden
	}

	target, err := uc.projects.GetMember(ctx, projectID, memberID)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleOwner {
		return domain.ErrForbidden
	}
	return uc.projects.RemoveMember(ctx, projectID, memberID)
}

func (uc *UseCase) Categories(ctx context.Context, userID, projectID string) ([]domain.Category, error) {
	if _, err := uc.projects.GetMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return uc.projects.ListCategories(ctx, projectID)
}

func (uc *UseCase) CreateCategory(ctx context.Context, userID string, category *domain.Category) (*domain.Category, error) {
	if category == nil || category.ProjectID == "" {
		return nil, domain.ErrInvalidPayload
	}
	member, err := uc.projects.GetMember(ctx, category.ProjectID, userID)
	if err != nil {
		return nil, err
	}
	if !member.CanEdit() {
		return nil, domain.ErrForbidden
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}
	return uc.projects.CreateCategory(ctx, category)
}

func (uc *UseCase) UpdateCategory(ctx context.Context, userID string, category *domain.Category) (*domain.Category, error) {
	if category == nil || category.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	existing, err := uc.projects.GetCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	member, err := uc.projects.GetMember(ctx, existing.ProjectID, userID)
	if err != nil {
		return nil, err
	}
	if !member.CanEdit() {
		return nil, domain.ErrForbidden
	}

	category.ProjectID = existing.ProjectID
	if err := category.Validate(); err != nil {
		return nil, err
	}
	if err := uc.projects.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (uc *UseCase) DeleteCategory(ctx context.Context, userID, id string) error {
	category, err := uc.projects.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	member, err := uc.projects.GetMember(ctx, category.ProjectID, userID)
	if err != nil {
		return err
	}
	if !member.CanEdit() {
		return domain.ErrForbidden
	}
	return uc.projects.DeleteCategory(ctx, id)
}

func (uc *UseCase) withProgress(ctx context.Context, project *domain.Project) (*ProjectView, error) {
	total, completed, err := uc.projects.Progress(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return &ProjectView{
		Project: *project,
		Progress: domain.ProjectProgress{
			TotalTasks:     total,
			CompletedTasks: completed,
			Percentage:     domain.ProgressPercentage(completed, total),
		},
	}, nil
}
