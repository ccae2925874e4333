package commands

import (
	"context"
	"errors"
	"testing"

	"dripsim/internal/application"
	"dripsim/internal/domain"
)

func TestMarkEngagementCommand_Validate(t *testing.T) {
	tests := []struct {
		name       string
		instanceID string
		kind       string
		wantErr    bool
		errMsg     string
	}{
		{name: "opened", instanceID: "abc", kind: "opened"},
		{name: "clicked", instanceID: "abc", kind: "clicked"},
		{name: "empty instance", instanceID: "", kind: "opened", wantErr: true, errMsg: "instance ID is required"},
		{name: "bad kind", instanceID: "abc", kind: "bounced", wantErr: true, errMsg: "unknown engagement kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &MarkEngagementCommand{InstanceID: tt.instanceID, Kind: tt.kind}
			err := cmd.Validate()
			if tt.wantErr {
				if err == nil || !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestMarkEngagementCommand_Execute(t *testing.T) {
	e := newEngine(t)
	e.Advance()
	id := e.Snapshot().Inbox[0].InstanceID

	result, err := NewMarkEngagementCommand(e, id, "clicked", false).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.View.Status != domain.StatusClicked {
		t.Errorf("Status = %s, want clicked", result.View.Status)
	}
	if result.Branches.Conversion != 1 {
		t.Errorf("Conversion = %d, want 1", result.Branches.Conversion)
	}
	if !contains(result.Message, "Marked clicked on email 1") {
		t.Errorf("unexpected message %q", result.Message)
	}

	_, err = NewMarkEngagementCommand(e, id, "opened", true).Execute(context.Background())
	if !errors.Is(err, application.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}

	result, err = NewMarkEngagementCommand(e, id, "clicked", true).Execute(context.Background())
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if result.View.Status != domain.StatusOpened {
		t.Errorf("Status = %s, want opened", result.View.Status)
	}
}

func TestMarkEngagementCommand_UnknownInstance(t *testing.T) {
	e := newEngine(t)
	_, err := NewMarkEngagementCommand(e, "ghost", "opened", false).Execute(context.Background())
	if !errors.Is(err, application.ErrUnknownMessage) {
		t.Errorf("expected ErrUnknownMessage, got %v", err)
	}
}
