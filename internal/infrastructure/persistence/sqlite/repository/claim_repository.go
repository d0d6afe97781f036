package repository

import (
	"context"

	"gorm.io/gorm"

	"fnoldesk/internal/domain/claims"
	"fnoldesk/internal/errs"
	"fnoldesk/internal/infrastructure/persistence/sqlite/model"
	"fnoldesk/internal/ports"
)

type ClaimRepository struct {
	db *gorm.DB
}

var _ ports.ClaimRepository = (*ClaimRepository)(nil)

func NewClaimRepository(db *gorm.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

func (r *ClaimRepository) ListClaims(ctx context.Context, limit int) ([]claims.Claim, error) {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Claim
	if err := applyLimit(db.Order("seq asc"), limit).Find(&rows).Error; err != nil {
		return nil, errs.Store(err, "query claims")
	}

	items := make([]claims.Claim, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapClaim(row))
	}
	return items, nil
}

func (r *ClaimRepository) CountClaims(ctx context.Context) (int64, error) {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := db.Model(&model.Claim{}).Count(&count).Error; err != nil {
		return 0, errs.Store(err, "count claims")
	}
	return count, nil
}

func (r *ClaimRepository) CreateClaim(ctx context.Context, claim claims.Claim) error {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return err
	}

	row := claimRow(claim)
	if err := db.Create(&row).Error; err != nil {
		return errs.Store(err, "insert claim")
	}
	return nil
}

func (r *ClaimRepository) CreateClaims(ctx context.Context, items []claims.Claim) error {
	if len(items) == 0 {
		return nil
	}

	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return err
	}

	rows := make([]model.Claim, 0, len(items))
	for _, item := range items {
		rows = append(rows, claimRow(item))
	}
	if err := db.CreateInBatches(&rows, insertBatchSize).Error; err != nil {
		return errs.Store(err, "insert claims")
	}
	return nil
}

func claimRow(c claims.Claim) model.Claim {
	return model.Claim{
		ID:                  c.ID,
		ClaimNumber:         c.ClaimNumber,
		Policyholder:        c.Policyholder,
		PolicyNumber:        c.PolicyNumber,
		DateFiled:           c.DateFiled,
		ClaimType:           string(c.ClaimType),
		Status:              string(c.Status),
		Amount:              c.Amount,
		AutoRouted:          c.AutoRouted,
		ZipCode:             c.ZipCode,
		Region:              string(c.Region),
		AdjusterAssigned:    c.AdjusterAssigned,
		ResolutionTimeHours: c.ResolutionTimeHours,
		DayOfWeek:           c.DayOfWeek,
		RiskLevel:           string(c.RiskLevel),
	}
}

func mapClaim(row model.Claim) claims.Claim {
	return claims.Claim{
		ID:                  row.ID,
		ClaimNumber:         row.ClaimNumber,
		Policyholder:        row.Policyholder,
		PolicyNumber:        row.PolicyNumber,
		DateFiled:           row.DateFiled,
		ClaimType:           claims.Type(row.ClaimType),
		Status:              claims.Status(row.Status),
		Amount:              row.Amount,
		AutoRouted:          row.AutoRouted,
		ZipCode:             row.ZipCode,
		Region:              claims.Region(row.Region),
		AdjusterAssigned:    row.AdjusterAssigned,
		ResolutionTimeHours: row.ResolutionTimeHours,
		DayOfWeek:           row.DayOfWeek,
		RiskLevel:           claims.RiskLevel(row.RiskLevel),
	}
}
