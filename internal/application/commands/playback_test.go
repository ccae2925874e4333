package commands

import (
	"context"
	"errors"
	"testing"

	"dripsim/internal/application"
	"dripsim/internal/domain"
)

func TestSetSpeedCommand(t *testing.T) {
	e := newEngine(t)

	if _, err := NewSetSpeedCommand(e, 12).Execute(context.Background()); !errors.Is(err, application.ErrInvalidSpeed) {
		t.Errorf("expected ErrInvalidSpeed, got %v", err)
	}

	result, err := NewSetSpeedCommand(e, 3).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Speed != 3 || !contains(result.Message, "Speed set to 3 (2.0x)") {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestSetModeCommand(t *testing.T) {
	e := newEngine(t)

	tests := []struct {
		name    string
		mode    string
		want    domain.BehaviorMode
		wantErr bool
	}{
		{name: "never", mode: "never_open", want: domain.ModeNeverOpen},
		{name: "alias", mode: "random", want: domain.ModeRandomMix},
		{name: "empty", mode: "", wantErr: true},
		{name: "unknown", mode: "chaos", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewSetModeCommand(e, tt.mode).Execute(context.Background())
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Mode != tt.want {
				t.Errorf("Mode = %s, want %s", result.Mode, tt.want)
			}
		})
	}
}

func TestAutoplayCommand(t *testing.T) {
	e := newEngine(t)

	result, err := NewAutoplayCommand(e, true).Execute(context.Background())
	if err != nil || !result.Autoplay {
		t.Fatalf("expected autoplay on, got %+v, %v", result, err)
	}
	result, err = NewAutoplayCommand(e, false).Execute(context.Background())
	if err != nil || result.Autoplay {
		t.Fatalf("expected autoplay off, got %+v, %v", result, err)
	}
}
