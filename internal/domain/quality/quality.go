package quality

import "fmt"

type ScriptStatus string

const (
	ScriptNotStarted ScriptStatus = "Not Started"
	ScriptPass       ScriptStatus = "Pass"
	ScriptFail       ScriptStatus = "Fail"
)

type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

type DefectStatus string

const (
	DefectOpen       DefectStatus = "Open"
	DefectInProgress DefectStatus = "In Progress"
	DefectResolved   DefectStatus = "Resolved"
	DefectClosed     DefectStatus = "Closed"
)

// Level grades risk probability and impact.
type Level string

const (
	LevelHigh   Level = "High"
	LevelMedium Level = "Medium"
	LevelLow    Level = "Low"
)

type RiskStatus string

const (
	RiskActive    RiskStatus = "Active"
	RiskMitigated RiskStatus = "Mitigated"
	RiskOccurred  RiskStatus = "Occurred"
)

// FetchLimit caps full reads of test scripts, defects and risks.
const FetchLimit = 100

type TestScript struct {
	ID             string       `json:"id"`
	ScriptID       string       `json:"script_id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Steps          []string     `json:"steps"`
	ExpectedResult string       `json:"expected_result"`
	Status         ScriptStatus `json:"status"`
	TestedBy       *string      `json:"tested_by"`
	TestedDate     *string      `json:"tested_date"`
	Notes          *string      `json:"notes"`
}

type Defect struct {
	ID           string       `json:"id"`
	DefectID     string       `json:"defect_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Severity     Severity     `json:"severity"`
	Status       DefectStatus `json:"status"`
	ReportedBy   string       `json:"reported_by"`
	AssignedTo   *string      `json:"assigned_to"`
	ReportedDate string       `json:"reported_date"`
	ResolvedDate *string      `json:"resolved_date"`
	// TestScriptID refers to TestScript.ScriptID. It is never checked.
	TestScriptID *string `json:"test_script_id"`
}

type Risk struct {
	ID              string     `json:"id"`
	RiskID          string     `json:"risk_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Probability     Level      `json:"probability"`
	Impact          Level      `json:"impact"`
	MitigationSteps []string   `json:"mitigation_steps"`
	ContingencyPlan string     `json:"contingency_plan"`
	Owner           string     `json:"owner"`
	Status          RiskStatus `json:"status"`
}

// NextDefectID derives the next human id from the current defect count.
func NextDefectID(count int64) string {
	return fmt.Sprintf("DEF-%03d", count+1)
}

// TestScriptPatch is a partial update. Nil pointers leave stored values untouched.
type TestScriptPatch struct {
	Status     ScriptStatus
	TestedDate string
	TestedBy   *string
	Notes      *string
}

// NewTestScriptPatch always stamps status and tested date; tester and notes are
// only carried when non-empty.
func NewTestScriptPatch(status ScriptStatus, testedBy string, notes string, today string) TestScriptPatch {
	patch := TestScriptPatch{
		Status:     status,
		TestedDate: today,
	}
	if testedBy != "" {
		patch.TestedBy = &testedBy
	}
	if notes != "" {
		patch.Notes = &notes
	}
	return patch
}

type DefectStatusPatch struct {
	Status       DefectStatus
	ResolvedDate *string
}

// StampsResolution reports whether moving to status records a resolved date.
func StampsResolution(status DefectStatus) bool {
	return status == DefectResolved || status == DefectClosed
}

// NewDefectStatusPatch sets resolved_date only on Resolved/Closed. Reopening
// leaves an existing resolved_date in place.
func NewDefectStatusPatch(status DefectStatus, today string) DefectStatusPatch {
	patch := DefectStatusPatch{Status: status}
	if StampsResolution(status) {
		patch.ResolvedDate = &today
	}
	return patch
}
