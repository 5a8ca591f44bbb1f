package domain

import (
	"strings"
	"time"
)

// Project status values.
const (
	ProjectActive    = "active"
	ProjectOnHold    = "on_hold"
	ProjectCompleted = "completed"
	ProjectArchived  = "archived"
)

// Project member roles.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// Project groups categories and tasks for a team.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatorID   string    `json:"creator_id"`
	Priority    Priority  `json:"priority"`
	Status      string    `json:"status"`
	StartDate   Date      `json:"start_date"`
	EndDate     *Date     `json:"end_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Project) Validate() error {
	if p == nil {
		return ErrInvalidPayload
	}
	if strings.TrimSpace(p.Name) == "" {
		return NewError(ErrCodeInvalid, "project name is required")
	}
	if !p.Priority.Valid() {
		return NewError(ErrCodeInvalid, "invalid priority: "+string(p.Priority))
	}
	switch p.Status {
	case ProjectActive, ProjectOnHold, ProjectCompleted, ProjectArchived:
	default:
		return NewError(ErrCodeInvalid, "invalid project status: "+p.Status)
	}
	return nil
}

// ProjectMember links a user to a project with a role.
type ProjectMember struct {
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}

// CanManage reports whether the member may change project settings and
// membership.
func (m *ProjectMember) CanManage() bool {
	return m != nil && (m.Role == RoleOwner || m.Role == RoleAdmin)
}

// CanEdit reports whether the member may create and modify tasks.
func (m *ProjectMember) CanEdit() bool {
	return m.CanManage() || (m != nil && m.Role == RoleEditor)
}

// Category partitions a project's tasks. Names are unique within a project.
type Category struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Category) Validate() error {
	if c == nil {
		return ErrInvalidPayload
	}
	if strings.TrimSpace(c.Name) == "" {
		return NewError(ErrCodeInvalid, "category name is required")
	}
	if c.Color != "" && !validHexColor(c.Color) {
		return NewError(ErrCodeInvalid, "color must be a #rrggbb hex code")
	}
	return nil
}

// ProjectProgress is the task roll-up shown on project listings.
type ProjectProgress struct {
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	Percentage     float64 `json:"percentage"`
}

// ProgressPercentage computes completed/total as a percentage rounded to one
// decimal place. Zero tasks yields zero, never a division by zero.
func ProgressPercentage(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round1(float64(completed) / float64(total) * 100)
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	if v < 0 {
		return float64(int(v*10-0.5)) / 10
	}
	return float64(int(v*10+0.5)) / 10
}

func validHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
