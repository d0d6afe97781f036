package fnol

import (
	"context"
	"errors"

	"fnoldesk/internal/domain/docs"
)

func (s *Service) BusinessRequirements(ctx context.Context) (docs.BusinessRequirements, error) {
	if err := checkContext(ctx); err != nil {
		return docs.BusinessRequirements{}, err
	}
	if s.docs == nil {
		return docs.BusinessRequirements{}, errors.New("document catalog is required")
	}
	return s.docs.BusinessRequirements(ctx)
}

func (s *Service) UseCases(ctx context.Context) (docs.UseCaseList, error) {
	if err := checkContext(ctx); err != nil {
		return docs.UseCaseList{}, err
	}
	if s.docs == nil {
		return docs.UseCaseList{}, errors.New("document catalog is required")
	}
	return s.docs.UseCases(ctx)
}
