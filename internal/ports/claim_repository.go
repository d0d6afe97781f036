package ports

import (
	"context"

	"fnoldesk/internal/domain/claims"
)

type ClaimReadRepository interface {
	// ListClaims returns claims in insertion order, at most limit rows when limit > 0.
	ListClaims(ctx context.Context, limit int) ([]claims.Claim, error)
	CountClaims(ctx context.Context) (int64, error)
}

type ClaimRepository interface {
	ClaimReadRepository
	CreateClaim(ctx context.Context, claim claims.Claim) error
	CreateClaims(ctx context.Context, items []claims.Claim) error
}
