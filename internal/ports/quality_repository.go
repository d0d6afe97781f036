package ports

import (
	"context"

	"fnoldesk/internal/domain/quality"
	"fnoldesk/internal/errs"
)

var (
	ErrTestScriptNotFound = errs.NotFound("Test script not found")
	ErrDefectNotFound     = errs.NotFound("Defect not found")
)

type QualityReadRepository interface {
	ListTestScripts(ctx context.Context, limit int) ([]quality.TestScript, error)
	CountTestScripts(ctx context.Context) (int64, error)
	ListDefects(ctx context.Context, limit int) ([]quality.Defect, error)
	CountDefects(ctx context.Context) (int64, error)
	ListRisks(ctx context.Context, limit int) ([]quality.Risk, error)
	CountRisks(ctx context.Context) (int64, error)
}

type QualityRepository interface {
	QualityReadRepository
	CreateTestScripts(ctx context.Context, items []quality.TestScript) error
	// UpdateTestScript returns ErrTestScriptNotFound when no script has scriptID.
	UpdateTestScript(ctx context.Context, scriptID string, patch quality.TestScriptPatch) error
	CreateDefect(ctx context.Context, defect quality.Defect) error
	CreateDefects(ctx context.Context, items []quality.Defect) error
	// UpdateDefectStatus returns ErrDefectNotFound when no defect has defectID.
	UpdateDefectStatus(ctx context.Context, defectID string, patch quality.DefectStatusPatch) error
	CreateRisks(ctx context.Context, items []quality.Risk) error
}
