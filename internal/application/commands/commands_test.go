package commands

import (
	"context"
	"testing"
	"time"

	"dripsim/internal/adapters/systemclock"
	"dripsim/internal/application/journey"
	"dripsim/internal/domain"
)

func newEngine(t *testing.T) *journey.Engine {
	t.Helper()
	pm, err := domain.NewProgram("pm", "Project Management", "", []domain.EmailNode{
		{ID: "1", Kind: domain.KindMain, Subject: "Welcome"},
		{ID: "1a", Kind: domain.KindReminder, Subject: "Reminder - Welcome"},
		{ID: "2", Kind: domain.KindMain, Subject: "Highlights"},
	})
	if err != nil {
		t.Fatalf("NewProgram failed: %v", err)
	}
	other, err := domain.NewProgram("ds", "Data Science", "", []domain.EmailNode{
		{ID: "1", Kind: domain.KindMain, Subject: "Hello"},
	})
	if err != nil {
		t.Fatalf("NewProgram failed: %v", err)
	}
	catalog, err := domain.NewCatalog(pm, other)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	e, err := journey.New(context.Background(), catalog, nil, "pm",
		journey.WithClock(systemclock.NewStepped(time.Time{})))
	if err != nil {
		t.Fatalf("journey.New failed: %v", err)
	}
	return e
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && len(substr) > 0 && findSubstring(s, substr)))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
