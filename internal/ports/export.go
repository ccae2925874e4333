package ports

import (
	"context"

	"dripsim/internal/domain"
)

// RunExporter persists the outcome of a simulation run
type RunExporter interface {
	// ExportRun stores snap and returns the id of the stored run
	ExportRun(ctx context.Context, snap domain.Snapshot) (int64, error)
	Close() error
}
