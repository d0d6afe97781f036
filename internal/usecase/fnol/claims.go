package fnol

import (
	"context"
	"errors"
	"strings"

	"fnoldesk/internal/domain/claims"
	"fnoldesk/internal/errs"
	"fnoldesk/internal/ports"
)

func (s *Service) loadClaims(ctx context.Context) ([]claims.Claim, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if s.claims == nil {
		return nil, errors.New("claim repository is required")
	}
	if err := s.EnsureSeeded(ctx); err != nil {
		return nil, err
	}
	return s.claims.ListClaims(ctx, claims.FetchLimit)
}

// ListClaims returns up to claims.FetchLimit claims in insertion order.
func (s *Service) ListClaims(ctx context.Context) ([]claims.Claim, error) {
	items, err := s.loadClaims(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []claims.Claim{}
	}
	return items, nil
}

// CreateClaim classifies and stores a submitted claim. The claim number is
// derived from the current count and is not unique under concurrent submits.
func (s *Service) CreateClaim(ctx context.Context, input CreateClaimInput) (claims.Claim, error) {
	if err := checkContext(ctx); err != nil {
		return claims.Claim{}, err
	}
	if s.claims == nil {
		return claims.Claim{}, errors.New("claim repository is required")
	}
	if err := validateClaimInput(input); err != nil {
		return claims.Claim{}, err
	}

	count, err := s.claims.CountClaims(ctx)
	if err != nil {
		return claims.Claim{}, err
	}

	now := s.now()
	autoRouted := claims.IsAutoRouted(input.Amount)
	claim := claims.Claim{
		ID:           s.newID(),
		ClaimNumber:  claims.NextClaimNumber(count),
		Policyholder: input.Policyholder,
		PolicyNumber: input.PolicyNumber,
		DateFiled:    claims.FormatDate(now),
		ClaimType:    claims.Type(input.ClaimType),
		Status:       claims.InitialStatus(autoRouted),
		Amount:       input.Amount,
		AutoRouted:   autoRouted,
		ZipCode:      input.ZipCode,
		Region:       claims.RegionForZip(input.ZipCode),
		DayOfWeek:    claims.DayOfWeek(now),
		RiskLevel:    claims.RiskLevelFor(input.Amount),
	}
	if err := s.claims.CreateClaim(ctx, claim); err != nil {
		return claims.Claim{}, err
	}

	s.publishBestEffort(ctx, ports.EventClaimCreated, claim)
	return claim, nil
}

func validateClaimInput(input CreateClaimInput) error {
	switch {
	case strings.TrimSpace(input.Policyholder) == "":
		return errs.Invalid("policyholder is required")
	case strings.TrimSpace(input.PolicyNumber) == "":
		return errs.Invalid("policy_number is required")
	case strings.TrimSpace(input.ClaimType) == "":
		return errs.Invalid("claim_type is required")
	case input.ZipCode == "":
		return errs.Invalid("zip_code is required")
	}
	return nil
}

func (s *Service) KPIMetrics(ctx context.Context) (claims.KPIMetrics, error) {
	items, err := s.loadClaims(ctx)
	if err != nil {
		return claims.KPIMetrics{}, err
	}
	return claims.ComputeKPIs(items), nil
}

func (s *Service) TrendAnalysis(ctx context.Context) (claims.TrendAnalysis, error) {
	items, err := s.loadClaims(ctx)
	if err != nil {
		return claims.TrendAnalysis{}, err
	}
	return claims.AnalyzeTrends(items), nil
}
