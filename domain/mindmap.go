package domain

import (
	"strings"
	"time"
)

// Mindmap node statuses extend the kanban set with a backlog column.
const MindmapBacklog = "backlog"

// MindmapProject is a creator-owned planning canvas.
type MindmapProject struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	CreatorID       string    `json:"creator_id"`
	BackgroundColor string    `json:"background_color"`
	GridEnabled     bool      `json:"grid_enabled"`
	SnapToGrid      bool      `json:"snap_to_grid"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (p *MindmapProject) Validate() error {
	if p == nil {
		return ErrInvalidPayload
	}
	if strings.TrimSpace(p.Name) == "" {
		return NewError(ErrCodeInvalid, "mindmap project name is required")
	}
	if p.BackgroundColor != "" && !validHexColor(p.BackgroundColor) {
		return NewError(ErrCodeInvalid, "background color must be a #rrggbb hex code")
	}
	return nil
}

// MindmapNode is a positioned node on a mindmap canvas.
type MindmapNode struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Priority    Priority  `json:"priority"`
	CreatorID   string    `json:"creator_id"`
	AssigneeID  *string   `json:"assignee_id,omitempty"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (n *MindmapNode) Validate() error {
	if n == nil {
		return ErrInvalidPayload
	}
	if strings.TrimSpace(n.Title) == "" {
		return NewError(ErrCodeInvalid, "node title is required")
	}
	if !ValidTaskStatus(n.Status) && n.Status != MindmapBacklog {
		return NewError(ErrCodeInvalid, "invalid node status: "+n.Status)
	}
	if !n.Priority.Valid() {
		return NewError(ErrCodeInvalid, "invalid priority: "+string(n.Priority))
	}
	return nil
}

// HasTag reports whether the node carries the tag.
func (n *MindmapNode) HasTag(tag string) bool {
	if n == nil {
		return false
	}
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MindmapConnection is a directed edge between two nodes. The from/to pair
// is unique and self-loops are rejected.
type MindmapConnection struct {
	ID         string    `json:"id"`
	FromNodeID string    `json:"from_node_id"`
	ToNodeID   string    `json:"to_node_id"`
	Type       string    `json:"type"`
	Label      string    `json:"label,omitempty"`
	Color      string    `json:"color"`
	Thickness  int       `json:"thickness"`
	CreatedAt  time.Time `json:"created_at"`
}

func (c *MindmapConnection) Validate() error {
	if c == nil || c.FromNodeID == "" || c.ToNodeID == "" {
		return ErrInvalidPayload
	}
	if c.FromNodeID == c.ToNodeID {
		return NewError(ErrCodeInvalid, "a node cannot connect to itself")
	}
	if c.Color != "" && !validHexColor(c.Color) {
		return NewError(ErrCodeInvalid, "color must be a #rrggbb hex code")
	}
	return nil
}

// MindmapGraph is the one-shot payload the canvas loads: all nodes of a
// project plus the connections between them.
type MindmapGraph struct {
	Project     MindmapProject      `json:"project"`
	Nodes       []MindmapNode       `json:"nodes"`
	Connections []MindmapConnection `json:"connections"`
}
