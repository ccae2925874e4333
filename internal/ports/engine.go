package ports

import (
	"context"

	"dripsim/internal/domain"
)

// JourneyEngine is the command and query surface presentation adapters use
type JourneyEngine interface {
	// Commands
	Advance() int
	Schedule(id domain.EmailID, day int) error
	Reset()
	SwitchProgram(ctx context.Context, key string) error
	MarkOpened(instanceID string) error
	MarkClicked(instanceID string) error
	ToggleEngagement(instanceID string, kind domain.EngagementKind) error
	StartAutoplay()
	StopAutoplay()
	SetSpeed(n int) error
	SetBehaviorMode(mode domain.BehaviorMode) error

	// Queries
	Snapshot() domain.Snapshot
	Preview(ctx context.Context, instanceID string) (domain.EmailPreview, error)
	Flow() []domain.FlowNode
	Catalog() *domain.Catalog

	// Subscribe registers fn for state-changed notifications
	Subscribe(fn func(domain.Snapshot)) (unsubscribe func())
}
