package fnol

import (
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"regexp"
	"sort"
	"sync"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"fnoldesk/internal/domain/claims"
	"fnoldesk/internal/domain/quality"
	"fnoldesk/internal/errs"
	infradocs "fnoldesk/internal/infrastructure/docs"
	"fnoldesk/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "fnoldesk/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "fnoldesk/internal/infrastructure/persistence/sqlite/uow"
	"fnoldesk/internal/ports"
)

var fixedNow = time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event ports.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, event := range p.events {
		out = append(out, event.Name)
	}
	return out
}

func setupService(t *testing.T) (*Service, *recordingPublisher) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "fnol.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	events := &recordingPublisher{}
	svc := NewService(
		sqliterepo.NewClaimRepository(db),
		sqliterepo.NewQualityRepository(db),
		sqliteuow.NewUnitOfWork(db),
		events,
		infradocs.NewCatalog(),
		fixedClock,
		rand.New(rand.NewPCG(7, 11)),
	)
	return svc, events
}

func TestEnsureSeededIsIdempotent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := svc.EnsureSeeded(ctx); err != nil {
			t.Fatalf("EnsureSeeded() #%d error = %v", i+1, err)
		}
	}

	counts, err := svc.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	want := CollectionCounts{Claims: 60, TestScripts: 8, Defects: 2, Risks: 3}
	if counts != want {
		t.Fatalf("Counts() = %+v, want %+v", counts, want)
	}
}

func TestSeedReportsWhetherItRan(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	counts, seeded, err := svc.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if !seeded || counts.Claims != 60 {
		t.Fatalf("Seed() = %+v, %v", counts, seeded)
	}

	_, seeded, err = svc.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed() second error = %v", err)
	}
	if seeded {
		t.Fatal("Seed() ran twice")
	}
}

func TestSeedGuardOnlyLooksAtClaims(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.CreateClaim(ctx, CreateClaimInput{
		Policyholder: "Test User",
		PolicyNumber: "TEST-123456",
		ClaimType:    "Collision",
		Amount:       1200,
		ZipCode:      "30301",
	}); err != nil {
		t.Fatalf("CreateClaim() error = %v", err)
	}

	scripts, err := svc.ListTestScripts(ctx)
	if err != nil {
		t.Fatalf("ListTestScripts() error = %v", err)
	}
	if len(scripts) != 0 {
		t.Fatalf("ListTestScripts() = %d items, want 0 once claims exist", len(scripts))
	}
}

func TestGeneratedClaimsShape(t *testing.T) {
	ids := 0
	newID := func() string {
		ids++
		return "id"
	}
	items := generateClaims(rand.New(rand.NewPCG(1, 2)), fixedNow, newID)
	if len(items) != 60 || ids != 60 {
		t.Fatalf("generateClaims() = %d claims, %d ids", len(items), ids)
	}

	earliest := claims.FormatDate(fixedNow.AddDate(0, 0, -30))
	latest := claims.FormatDate(fixedNow)
	zipPattern := regexp.MustCompile(`^[1-9][0-9]{4}$`)
	policyPattern := regexp.MustCompile(`^POL-[1-9][0-9]{5}$`)

	for i, claim := range items {
		if claim.ClaimNumber != claims.SeedClaimNumber(i) {
			t.Fatalf("claim %d number = %q", i, claim.ClaimNumber)
		}
		if claim.DateFiled < earliest || claim.DateFiled > latest {
			t.Fatalf("claim %d date_filed = %q outside [%s, %s]", i, claim.DateFiled, earliest, latest)
		}
		filed, err := time.Parse(claims.DateLayout, claim.DateFiled)
		if err != nil {
			t.Fatalf("parse date_filed: %v", err)
		}
		if claim.DayOfWeek != filed.Weekday().String() {
			t.Fatalf("claim %d day_of_week = %q for %s", i, claim.DayOfWeek, claim.DateFiled)
		}
		if claim.RiskLevel != claims.RiskLevelFor(claim.Amount) {
			t.Fatalf("claim %d risk_level = %q for amount %v", i, claim.RiskLevel, claim.Amount)
		}
		if claim.ClaimType == claims.TypeWindshield && (claim.Amount < 200 || claim.Amount > 800) {
			t.Fatalf("windshield amount = %v", claim.Amount)
		}
		if claim.ClaimType != claims.TypeWindshield && (claim.Amount < 500 || claim.Amount > 25000) {
			t.Fatalf("amount = %v", claim.Amount)
		}
		if claim.Amount != claims.Round(claim.Amount, 2) {
			t.Fatalf("amount %v not rounded to cents", claim.Amount)
		}
		if !zipPattern.MatchString(claim.ZipCode) || !policyPattern.MatchString(claim.PolicyNumber) {
			t.Fatalf("zip/policy = %q/%q", claim.ZipCode, claim.PolicyNumber)
		}
		if claim.Region == claims.RegionUnknown {
			t.Fatalf("claim %d region Unknown", i)
		}
		if (claim.Status == claims.StatusOpen) != (claim.AdjusterAssigned == nil) {
			t.Fatalf("claim %d status %q adjuster %v", i, claim.Status, claim.AdjusterAssigned)
		}
		if (claim.Status == claims.StatusClosed) != (claim.ResolutionTimeHours != nil) {
			t.Fatalf("claim %d status %q resolution %v", i, claim.Status, claim.ResolutionTimeHours)
		}
		if hours := claim.ResolutionTimeHours; hours != nil {
			lo, hi := 24.0, 168.0
			if claim.AutoRouted {
				lo, hi = 2, 72
			}
			if *hours < lo || *hours > hi {
				t.Fatalf("claim %d resolution %v outside [%v, %v]", i, *hours, lo, hi)
			}
		}
	}
}

func TestGeneratedClaimsDistribution(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 99))
	newID := func() string { return "id" }

	statusCounts := map[claims.Status]int{}
	autoRouted := 0
	total := 0
	for batch := 0; batch < 100; batch++ {
		for _, claim := range generateClaims(r, fixedNow, newID) {
			statusCounts[claim.Status]++
			if claim.AutoRouted {
				autoRouted++
			}
			total++
		}
	}

	share := func(n int) float64 { return float64(n) / float64(total) }
	testCases := []struct {
		name string
		got  float64
		want float64
	}{
		{"open", share(statusCounts[claims.StatusOpen]), 0.30},
		{"closed", share(statusCounts[claims.StatusClosed]), 0.45},
		{"escalated", share(statusCounts[claims.StatusEscalated]), 0.15},
		{"in review", share(statusCounts[claims.StatusInReview]), 0.10},
		{"auto routed", share(autoRouted), 0.85},
	}
	for _, testCase := range testCases {
		if diff := testCase.got - testCase.want; diff > 0.04 || diff < -0.04 {
			t.Fatalf("%s share = %.3f, want about %.2f", testCase.name, testCase.got, testCase.want)
		}
	}
}

func TestSeededFixedRecords(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	scripts, err := svc.ListTestScripts(ctx)
	if err != nil {
		t.Fatalf("ListTestScripts() error = %v", err)
	}
	if len(scripts) != 8 || scripts[0].ScriptID != "UAT-001" || scripts[7].ScriptID != "UAT-008" {
		t.Fatalf("scripts = %+v", scripts)
	}
	if scripts[2].TestedBy != nil || scripts[2].Status != quality.ScriptNotStarted {
		t.Fatalf("UAT-003 = %+v", scripts[2])
	}
	if scripts[0].TestedDate == nil || *scripts[0].TestedDate != "2026-03-04" {
		t.Fatalf("UAT-001 tested_date = %v", scripts[0].TestedDate)
	}

	defects, err := svc.ListDefects(ctx)
	if err != nil {
		t.Fatalf("ListDefects() error = %v", err)
	}
	if len(defects) != 2 || defects[0].TestScriptID == nil || *defects[0].TestScriptID != "UAT-004" || defects[1].AssignedTo != nil {
		t.Fatalf("defects = %+v", defects)
	}

	risks, err := svc.ListRisks(ctx)
	if err != nil {
		t.Fatalf("ListRisks() error = %v", err)
	}
	if len(risks) != 3 || risks[2].Status != quality.RiskMitigated || len(risks[1].MitigationSteps) != 4 {
		t.Fatalf("risks = %+v", risks)
	}
}

func TestCreateClaimClassification(t *testing.T) {
	svc, events := setupService(t)
	ctx := context.Background()

	input := CreateClaimInput{
		Policyholder: "Test User",
		PolicyNumber: "TEST-123456",
		ClaimType:    "Collision",
		Amount:       5000,
		ZipCode:      "10001",
	}
	got, err := svc.CreateClaim(ctx, input)
	if err != nil {
		t.Fatalf("CreateClaim() error = %v", err)
	}
	if !got.AutoRouted || got.RiskLevel != claims.RiskMedium || got.Region != claims.RegionNortheast || got.Status != claims.StatusOpen {
		t.Fatalf("CreateClaim(5000) = %+v", got)
	}
	if got.ClaimNumber != "CLM-2024-02000" || got.DateFiled != "2026-03-04" || got.DayOfWeek != "Wednesday" {
		t.Fatalf("CreateClaim(5000) number/date = %q %q %q", got.ClaimNumber, got.DateFiled, got.DayOfWeek)
	}
	if got.ID == "" || got.AdjusterAssigned != nil || got.ResolutionTimeHours != nil {
		t.Fatalf("CreateClaim(5000) = %+v", got)
	}

	input.Amount = 20000
	got, err = svc.CreateClaim(ctx, input)
	if err != nil {
		t.Fatalf("CreateClaim() error = %v", err)
	}
	if got.AutoRouted || got.RiskLevel != claims.RiskHigh || got.Status != claims.StatusInReview {
		t.Fatalf("CreateClaim(20000) = %+v", got)
	}
	if got.ClaimNumber != "CLM-2024-02001" {
		t.Fatalf("claim_number = %q", got.ClaimNumber)
	}

	if names := events.names(); len(names) != 2 || names[0] != ports.EventClaimCreated {
		t.Fatalf("events = %v", names)
	}
}

func TestCreateClaimUnknownRegion(t *testing.T) {
	svc, _ := setupService(t)

	got, err := svc.CreateClaim(context.Background(), CreateClaimInput{
		Policyholder: "Test User",
		PolicyNumber: "TEST-1",
		ClaimType:    "Theft",
		Amount:       100,
		ZipCode:      "x1234",
	})
	if err != nil {
		t.Fatalf("CreateClaim() error = %v", err)
	}
	if got.Region != claims.RegionUnknown || got.RiskLevel != claims.RiskLow {
		t.Fatalf("CreateClaim() = %+v", got)
	}
}

func TestCreateClaimRequiresFields(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.CreateClaim(context.Background(), CreateClaimInput{Policyholder: "A", PolicyNumber: "B", ClaimType: "Theft", Amount: 1})
	if !errs.IsValidation(err) {
		t.Fatalf("CreateClaim() error = %v, want validation error", err)
	}
}

func TestCreateClaimSurvivesPublishFailure(t *testing.T) {
	svc, events := setupService(t)
	events.err = errors.New("broker down")

	if _, err := svc.CreateClaim(context.Background(), CreateClaimInput{
		Policyholder: "Test User",
		PolicyNumber: "TEST-1",
		ClaimType:    "Liability",
		Amount:       300,
		ZipCode:      "90210",
	}); err != nil {
		t.Fatalf("CreateClaim() error = %v, want publish failure ignored", err)
	}
}

func TestKPIMetricsAndTrendsOverSeededData(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	kpis, err := svc.KPIMetrics(ctx)
	if err != nil {
		t.Fatalf("KPIMetrics() error = %v", err)
	}
	if kpis.TotalClaims != 60 {
		t.Fatalf("total_claims = %d", kpis.TotalClaims)
	}
	if kpis.OpenClaims+kpis.ClosedClaims+kpis.EscalatedClaims > kpis.TotalClaims {
		t.Fatalf("status counts exceed total: %+v", kpis)
	}
	for _, rate := range []float64{kpis.AutoRouteSuccessRate, kpis.EscalationRate} {
		if rate < 0 || rate > 100 {
			t.Fatalf("rate %v outside [0,100]", rate)
		}
	}

	trends, err := svc.TrendAnalysis(ctx)
	if err != nil {
		t.Fatalf("TrendAnalysis() error = %v", err)
	}
	total := 0
	for _, entry := range trends.ByStatus {
		total += entry.Count
	}
	if total != 60 {
		t.Fatalf("sum(by_status) = %d, want 60", total)
	}
	if !sort.SliceIsSorted(trends.Timeline, func(i, j int) bool { return trends.Timeline[i].Date < trends.Timeline[j].Date }) {
		t.Fatalf("timeline not sorted: %+v", trends.Timeline)
	}
}

func TestUpdateTestScriptKeepsTesterAndNotes(t *testing.T) {
	svc, events := setupService(t)
	ctx := context.Background()
	if err := svc.EnsureSeeded(ctx); err != nil {
		t.Fatalf("EnsureSeeded() error = %v", err)
	}

	if err := svc.UpdateTestScript(ctx, UpdateTestScriptInput{ScriptID: "UAT-004", Status: "Pass"}); err != nil {
		t.Fatalf("UpdateTestScript() error = %v", err)
	}

	scripts, err := svc.ListTestScripts(ctx)
	if err != nil {
		t.Fatalf("ListTestScripts() error = %v", err)
	}
	got := scripts[3]
	if got.ScriptID != "UAT-004" || got.Status != quality.ScriptPass {
		t.Fatalf("UAT-004 = %+v", got)
	}
	if got.TestedBy == nil || *got.TestedBy != "Operations Team" {
		t.Fatalf("tested_by = %v", got.TestedBy)
	}
	if got.Notes == nil || *got.Notes != "Assignment took 5 minutes - exceeds 2 minute SLA" {
		t.Fatalf("notes = %v", got.Notes)
	}

	err = svc.UpdateTestScript(ctx, UpdateTestScriptInput{ScriptID: "UAT-404", Status: "Pass"})
	if !errs.IsNotFound(err) || errs.ClientMessage(err, "") != "Test script not found" {
		t.Fatalf("UpdateTestScript(unknown) error = %v", err)
	}

	names := events.names()
	if len(names) != 1 || names[0] != ports.EventTestScriptUpdated {
		t.Fatalf("events = %v", names)
	}
}

func TestDefectLifecycle(t *testing.T) {
	svc, events := setupService(t)
	ctx := context.Background()
	if err := svc.EnsureSeeded(ctx); err != nil {
		t.Fatalf("EnsureSeeded() error = %v", err)
	}

	created, err := svc.CreateDefect(ctx, CreateDefectInput{
		Title:       "Dashboard refresh lag",
		Description: "KPI tiles refresh after 30s",
		Severity:    "Medium",
		ReportedBy:  "QA Team",
	})
	if err != nil {
		t.Fatalf("CreateDefect() error = %v", err)
	}
	if created.DefectID != "DEF-003" || created.Status != quality.DefectOpen || created.ReportedDate != "2026-03-04" || created.TestScriptID != nil {
		t.Fatalf("CreateDefect() = %+v", created)
	}

	if err := svc.UpdateDefectStatus(ctx, "DEF-003", "Resolved"); err != nil {
		t.Fatalf("UpdateDefectStatus(Resolved) error = %v", err)
	}
	if err := svc.UpdateDefectStatus(ctx, "DEF-003", "Open"); err != nil {
		t.Fatalf("UpdateDefectStatus(Open) error = %v", err)
	}

	defects, err := svc.ListDefects(ctx)
	if err != nil {
		t.Fatalf("ListDefects() error = %v", err)
	}
	got := defects[2]
	if got.Status != quality.DefectOpen || got.ResolvedDate == nil || *got.ResolvedDate != "2026-03-04" {
		t.Fatalf("DEF-003 = %+v", got)
	}

	if err := svc.UpdateDefectStatus(ctx, "DEF-999", "Closed"); !errors.Is(err, ports.ErrDefectNotFound) {
		t.Fatalf("UpdateDefectStatus(unknown) error = %v", err)
	}

	want := []string{ports.EventDefectCreated, ports.EventDefectStatusChanged, ports.EventDefectStatusChanged}
	names := events.names()
	if len(names) != len(want) {
		t.Fatalf("events = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("events = %v, want %v", names, want)
		}
	}
}

func TestCreateDefectRequiresFields(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.CreateDefect(context.Background(), CreateDefectInput{Title: "t", Description: "d", Severity: "Low"})
	if !errs.IsValidation(err) {
		t.Fatalf("CreateDefect() error = %v, want validation error", err)
	}
}

func TestDocumentsDelegateToCatalog(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	brd, err := svc.BusinessRequirements(ctx)
	if err != nil || len(brd.Sections) != 5 {
		t.Fatalf("BusinessRequirements() = %d sections, %v", len(brd.Sections), err)
	}
	useCases, err := svc.UseCases(ctx)
	if err != nil || len(useCases.UseCases) != 3 {
		t.Fatalf("UseCases() = %+v, %v", useCases, err)
	}
}

func TestCancelledContext(t *testing.T) {
	svc, _ := setupService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.ListClaims(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("ListClaims() error = %v, want context.Canceled", err)
	}
}
