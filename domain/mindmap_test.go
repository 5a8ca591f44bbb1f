package domain

import "testing"

func TestMindmapConnectionValidate(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		conn := &MindmapConnection{FromNodeID: "a", ToNodeID: "b", Color: "#64748b"}
		if err := conn.Validate(); err != nil {
			t.Errorf("Validate: %v", err)
		}
	})

	t.Run("self loop", func(t *testing.T) {
		conn := &MindmapConnection{FromNodeID: "a", ToNodeID: "a"}
		if err := conn.Validate(); !IsDomainError(err, ErrCodeInvalid) {
			t.Errorf("Validate = %v, want INVALID", err)
		}
	})

	t.Run("bad color", func(t *testing.T) {
		conn := &MindmapConnection{FromNodeID: "a", ToNodeID: "b", Color: "red"}
		if err := conn.Validate(); !IsDomainError(err, ErrCodeInvalid) {
			t.Errorf("Validate = %v, want INVALID", err)
		}
	})
}

func TestMindmapNodeValidate(t *testing.T) {
	node := &MindmapNode{Title: "idea", Status: MindmapBacklog, Priority: PriorityLow}
	if err := node.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	node.Status = TaskInProgress
	if err := node.Validate(); err != nil {
		t.Errorf("Validate with kanban status: %v", err)
	}

	node.Status = "parked"
	if err := node.Validate(); !IsDomainError(err, ErrCodeInvalid) {
		t.Errorf("Validate = %v, want INVALID", err)
	}
}

func TestMindmapNodeHasTag(t *testing.T) {
	node := &MindmapNode{Tags: []string{"infra", "urgent"}}
	if !node.HasTag("infra") {
		t.Error("expected tag infra")
	}
	if node.HasTag("design") {
		t.Error("unexpected tag design")
	}
}

func TestValidHexColor(t *testing.T) {
	for _, ok := range []string{"#ffffff", "#000000", "#AbCdEf"} {
		if !validHexColor(ok) {
			t.Errorf("validHexColor(%q) = false, want true", ok)
		}
	}
	for _, bad := range []string{"ffffff", "#fff", "#gggggg", "#1234567", ""} {
		if validHexColor(bad) {
			t.Errorf("validHexColor(%q) = true, want false", bad)
		}
	}
}
