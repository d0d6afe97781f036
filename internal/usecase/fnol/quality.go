package fnol

import (
	"context"
	"errors"
	"strings"

	"fnoldesk/internal/domain/claims"
	"fnoldesk/internal/domain/quality"
	"fnoldesk/internal/errs"
	"fnoldesk/internal/ports"
)

type testScriptUpdated struct {
	ScriptID   string               `json:"script_id"`
	Status     quality.ScriptStatus `json:"status"`
	TestedDate string               `json:"tested_date"`
	TestedBy   *string              `json:"tested_by,omitempty"`
}

type defectStatusChanged struct {
	DefectID     string               `json:"defect_id"`
	Status       quality.DefectStatus `json:"status"`
	ResolvedDate *string              `json:"resolved_date,omitempty"`
}

func (s *Service) readyQuality(ctx context.Context) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if s.quality == nil {
		return errors.New("quality repository is required")
	}
	return nil
}

func (s *Service) ListTestScripts(ctx context.Context) ([]quality.TestScript, error) {
	if err := s.readyQuality(ctx); err != nil {
		return nil, err
	}
	if err := s.EnsureSeeded(ctx); err != nil {
		return nil, err
	}
	items, err := s.quality.ListTestScripts(ctx, quality.FetchLimit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []quality.TestScript{}
	}
	return items, nil
}

// UpdateTestScript stamps status and tested date; empty tester or notes keep
// their stored values.
func (s *Service) UpdateTestScript(ctx context.Context, input UpdateTestScriptInput) error {
	if err := s.readyQuality(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(input.Status) == "" {
		return errs.Invalid("status is required")
	}

	patch := quality.NewTestScriptPatch(quality.ScriptStatus(input.Status), input.TestedBy, input.Notes, claims.FormatDate(s.now()))
	if err := s.quality.UpdateTestScript(ctx, input.ScriptID, patch); err != nil {
		return err
	}

	s.publishBestEffort(ctx, ports.EventTestScriptUpdated, testScriptUpdated{
		ScriptID:   input.ScriptID,
		Status:     patch.Status,
		TestedDate: patch.TestedDate,
		TestedBy:   patch.TestedBy,
	})
	return nil
}

func (s *Service) ListDefects(ctx context.Context) ([]quality.Defect, error) {
	if err := s.readyQuality(ctx); err != nil {
		return nil, err
	}
	if err := s.EnsureSeeded(ctx); err != nil {
		return nil, err
	}
	items, err := s.quality.ListDefects(ctx, quality.FetchLimit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []quality.Defect{}
	}
	return items, nil
}

// CreateDefect stores a new Open defect. Like claim numbers, defect ids come
// from the current count.
func (s *Service) CreateDefect(ctx context.Context, input CreateDefectInput) (quality.Defect, error) {
	if err := s.readyQuality(ctx); err != nil {
		return quality.Defect{}, err
	}
	switch {
	case strings.TrimSpace(input.Title) == "":
		return quality.Defect{}, errs.Invalid("title is required")
	case strings.TrimSpace(input.Description) == "":
		return quality.Defect{}, errs.Invalid("description is required")
	case strings.TrimSpace(input.Severity) == "":
		return quality.Defect{}, errs.Invalid("severity is required")
	case strings.TrimSpace(input.ReportedBy) == "":
		return quality.Defect{}, errs.Invalid("reported_by is required")
	}

	count, err := s.quality.CountDefects(ctx)
	if err != nil {
		return quality.Defect{}, err
	}

	defect := quality.Defect{
		ID:           s.newID(),
		DefectID:     quality.NextDefectID(count),
		Title:        input.Title,
		Description:  input.Description,
		Severity:     quality.Severity(input.Severity),
		Status:       quality.DefectOpen,
		ReportedBy:   input.ReportedBy,
		ReportedDate: claims.FormatDate(s.now()),
	}
	if input.TestScriptID != "" {
		scriptID := input.TestScriptID
		defect.TestScriptID = &scriptID
	}
	if err := s.quality.CreateDefect(ctx, defect); err != nil {
		return quality.Defect{}, err
	}

	s.publishBestEffort(ctx, ports.EventDefectCreated, defect)
	return defect, nil
}

// UpdateDefectStatus sets the status and stamps resolved_date on Resolved or
// Closed. Reopening never clears resolved_date.
func (s *Service) UpdateDefectStatus(ctx context.Context, defectID string, status string) error {
	if err := s.readyQuality(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(status) == "" {
		return errs.Invalid("status is required")
	}

	patch := quality.NewDefectStatusPatch(quality.DefectStatus(status), claims.FormatDate(s.now()))
	if err := s.quality.UpdateDefectStatus(ctx, defectID, patch); err != nil {
		return err
	}

	s.publishBestEffort(ctx, ports.EventDefectStatusChanged, defectStatusChanged{
		DefectID:     defectID,
		Status:       patch.Status,
		ResolvedDate: patch.ResolvedDate,
	})
	return nil
}

func (s *Service) ListRisks(ctx context.Context) ([]quality.Risk, error) {
	if err := s.readyQuality(ctx); err != nil {
		return nil, err
	}
	if err := s.EnsureSeeded(ctx); err != nil {
		return nil, err
	}
	items, err := s.quality.ListRisks(ctx, quality.FetchLimit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []quality.Risk{}
	}
	return items, nil
}
