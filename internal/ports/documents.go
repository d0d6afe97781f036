package ports

import (
	"context"

	"fnoldesk/internal/domain/docs"
)

// DocumentCatalog serves static project documents.
type DocumentCatalog interface {
	BusinessRequirements(ctx context.Context) (docs.BusinessRequirements, error)
	UseCases(ctx context.Context) (docs.UseCaseList, error)
}
