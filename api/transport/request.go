package transport

import "github.com/teamboard/backend/domain"

type LoginRequest struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type RefreshRequest struct {
	Token string `json:"token"`
}

type ProfileUpdateRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type DailyTaskRequest struct {
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Notes            string            `json:"notes"`
	AssigneeIDs      []string          `json:"assignee_ids"`
	Priority         string            `json:"priority"`
	ScheduledDays    domain.WeekdaySet `json:"scheduled_days"`
	EstimatedMinutes *int              `json:"estimated_minutes"`
	ReminderTime     *string           `json:"reminder_time"`
}

type CompleteRequest struct {
	Date          string `json:"date"`
	Notes         string `json:"notes"`
	ActualMinutes *int   `json:"actual_minutes"`
}

type ProjectRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

type MemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type CategoryRequest struct {
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type TaskRequest struct {
	CategoryID  string   `json:"category_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Notes       string   `json:"notes"`
	AssigneeIDs []string `json:"assignee_ids"`
	Priority    string   `json:"priority"`
	Status      string   `json:"status"`
	Deadline    *string  `json:"deadline"`
	ActualHours *int     `json:"actual_hours"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

type DependencyRequest struct {
	DependsOnID string `json:"depends_on_id"`
}

type MindmapProjectRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	BackgroundColor string `json:"background_color"`
	GridEnabled     bool   `json:"grid_enabled"`
	SnapToGrid      bool   `json:"snap_to_grid"`
}

type MindmapNodeRequest struct {
	ProjectID   string   `json:"project_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	AssigneeID  *string  `json:"assignee_id"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Tags        []string `json:"tags"`
}

type MindmapConnectionRequest struct {
	FromNodeID string `json:"from_node_id"`
	ToNodeID   string `json:"to_node_id"`
	Type       string `json:"type"`
	Label      string `json:"label"`
	Color      string `json:"color"`
	Thickness  int    `json:"thickness"`
}
