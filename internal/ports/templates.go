package ports

import (
	"context"

	"dripsim/internal/domain"
)

// TemplateSource supplies the HTML body of an email. Implementations may
// fail; callers substitute a placeholder.
type TemplateSource interface {
	FetchTemplate(ctx context.Context, programKey string, id domain.EmailID) (string, error)
}

// CatalogSource loads the programs available to the simulator
type CatalogSource interface {
	LoadCatalog(ctx context.Context) (*domain.Catalog, error)
}
