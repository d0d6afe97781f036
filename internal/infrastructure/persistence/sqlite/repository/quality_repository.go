package repository

import (
	"context"

	"gorm.io/gorm"

	"fnoldesk/internal/domain/quality"
	"fnoldesk/internal/errs"
	"fnoldesk/internal/infrastructure/persistence/sqlite/model"
	"fnoldesk/internal/ports"
)

type QualityRepository struct {
	db *gorm.DB
}

var _ ports.QualityRepository = (*QualityRepository)(nil)

func NewQualityRepository(db *gorm.DB) *QualityRepository {
	return &QualityRepository{db: db}
}

func (r *QualityRepository) ListTestScripts(ctx context.Context, limit int) ([]quality.TestScript, error) {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.TestScript
	if err := applyLimit(db.Order("seq asc"), limit).Find(&rows).Error; err != nil {
		return nil, errs.Store(err, "query test scripts")
	}

	items := make([]quality.TestScript, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapTestScript(row))
	}
	return items, nil
}

func (r *QualityRepository) CountTestScripts(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.TestScript{}, "count test scripts")
}

func (r *QualityRepository) CreateTestScripts(ctx context.Context, items []quality.TestScript) error {
	if len(items) == 0 {
		return nil
	}

	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return err
	}

	rows := make([]model.TestScript, 0, len(items))
	for _, item := range items {
		rows = append(rows, model.TestScript{
			ID:             item.ID,
			ScriptID:       item.ScriptID,
			Title:          item.Title,
			Description:    item.Description,
			Steps:          nonNilStrings(item.Steps),
			ExpectedResult: item.ExpectedResult,
			Status:         string(item.Status),
			TestedBy:       item.TestedBy,
			TestedDate:     item.TestedDate,
			Notes:          item.Notes,
		})
	}
	if err := db.CreateInBatches(&rows, insertBatchSize).Error; err != nil {
		return errs.Store(err, "insert test scripts")
	}
	return nil
}

func (r *QualityRepository) UpdateTestScript(ctx context.Context, scriptID string, patch quality.TestScriptPatch) error {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return err
	}

	updates := map[string]any{
		"status":      string(patch.Status),
		"tested_date": patch.TestedDate,
	}
	if patch.TestedBy != nil {
		updates["tested_by"] = *patch.TestedBy
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}

	result := db.Model(&model.TestScript{}).Where("script_id = ?", scriptID).Updates(updates)
	if result.Error != nil {
		return errs.Store(result.Error, "update test script")
	}
	if result.RowsAffected == 0 {
		return ports.ErrTestScriptNotFound
	}
	return nil
}

func (r *QualityRepository) ListDefects(ctx context.Context, limit int) ([]quality.Defect, error) {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Defect
	if err := applyLimit(db.Order("seq asc"), limit).Find(&rows).Error; err != nil {
		return nil, errs.Store(err, "query defects")
	}

	items := make([]quality.Defect, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapDefect(row))
	}
	return items, nil
}

func (r *QualityRepository) CountDefects(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.Defect{}, "count defects")
}

func (r *QualityRepository) CreateDefect(ctx context.Context, defect quality.Defect) error {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return err
	}

	row := defectRow(defect)
	if err := db.Create(&row).Error; err != nil {
		return errs.Store(err, "insert defect")
	}
	return nil
}

func (r *QualityRepository) CreateDefects(ctx context.Context, items []quality.Defect) error {
	if len(items) == 0 {
		return nil
	}

	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return err
	}

	rows := make([]model.Defect, 0, len(items))
	for _, item := range items {
		rows = append(rows, defectRow(item))
	}
	if err := db.CreateInBatches(&rows, insertBatchSize).Error; err != nil {
		return errs.Store(err, "insert defects")
	}
	return nil
}

func (r *QualityRepository) UpdateDefectStatus(ctx context.Context, defectID string, patch quality.DefectStatusPatch) error {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return err
	}

	updates := map[string]any{"status": string(patch.Status)}
	if patch.ResolvedDate != nil {
		updates["resolved_date"] = *patch.ResolvedDate
	}

	result := db.Model(&model.Defect{}).Where("defect_id = ?", defectID).Updates(updates)
	if result.Error != nil {
		return errs.Store(result.Error, "update defect status")
	}
	if result.RowsAffected == 0 {
		return ports.ErrDefectNotFound
	}
	return nil
}

func (r *QualityRepository) ListRisks(ctx context.Context, limit int) ([]quality.Risk, error) {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Risk
	if err := applyLimit(db.Order("seq asc"), limit).Find(&rows).Error; err != nil {
		return nil, errs.Store(err, "query risks")
	}

	items := make([]quality.Risk, 0, len(rows))
	for _, row := range rows {
		items = append(items, quality.Risk{
			ID:              row.ID,
			RiskID:          row.RiskID,
			Title:           row.Title,
			Description:     row.Description,
			Probability:     quality.Level(row.Probability),
			Impact:          quality.Level(row.Impact),
			MitigationSteps: nonNilStrings(row.MitigationSteps),
			ContingencyPlan: row.ContingencyPlan,
			Owner:           row.Owner,
			Status:          quality.RiskStatus(row.Status),
		})
	}
	return items, nil
}

func (r *QualityRepository) CountRisks(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.Risk{}, "count risks")
}

func (r *QualityRepository) CreateRisks(ctx context.Context, items []quality.Risk) error {
	if len(items) == 0 {
		return nil
	}

	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return err
	}

	rows := make([]model.Risk, 0, len(items))
	for _, item := range items {
		rows = append(rows, model.Risk{
			ID:              item.ID,
			RiskID:          item.RiskID,
			Title:           item.Title,
			Description:     item.Description,
			Probability:     string(item.Probability),
			Impact:          string(item.Impact),
			MitigationSteps: nonNilStrings(item.MitigationSteps),
			ContingencyPlan: item.ContingencyPlan,
			Owner:           item.Owner,
			Status:          string(item.Status),
		})
	}
	if err := db.CreateInBatches(&rows, insertBatchSize).Error; err != nil {
		return errs.Store(err, "insert risks")
	}
	return nil
}

func (r *QualityRepository) count(ctx context.Context, table any, op string) (int64, error) {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := db.Model(table).Count(&count).Error; err != nil {
		return 0, errs.Store(err, op)
	}
	return count, nil
}

func defectRow(d quality.Defect) model.Defect {
	return model.Defect{
		ID:           d.ID,
		DefectID:     d.DefectID,
		Title:        d.Title,
		Description:  d.Description,
		Severity:     string(d.Severity),
		Status:       string(d.Status),
		ReportedBy:   d.ReportedBy,
		AssignedTo:   d.AssignedTo,
		ReportedDate: d.ReportedDate,
		ResolvedDate: d.ResolvedDate,
		TestScriptID: d.TestScriptID,
	}
}

func mapDefect(row model.Defect) quality.Defect {
	return quality.Defect{
		ID:           row.ID,
		DefectID:     row.DefectID,
		Title:        row.Title,
		Description:  row.Description,
		Severity:     quality.Severity(row.Severity),
		Status:       quality.DefectStatus(row.Status),
		ReportedBy:   row.ReportedBy,
		AssignedTo:   row.AssignedTo,
		ReportedDate: row.ReportedDate,
		ResolvedDate: row.ResolvedDate,
		TestScriptID: row.TestScriptID,
	}
}

func mapTestScript(row model.TestScript) quality.TestScript {
	return quality.TestScript{
		ID:             row.ID,
		ScriptID:       row.ScriptID,
		Title:          row.Title,
		Description:    row.Description,
		Steps:          nonNilStrings(row.Steps),
		ExpectedResult: row.ExpectedResult,
		Status:         quality.ScriptStatus(row.Status),
		TestedBy:       row.TestedBy,
		TestedDate:     row.TestedDate,
		Notes:          row.Notes,
	}
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
