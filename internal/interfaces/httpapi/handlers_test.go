package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"fnoldesk/internal/domain/claims"
	"fnoldesk/internal/domain/docs"
	"fnoldesk/internal/domain/quality"
	"fnoldesk/internal/errs"
	"fnoldesk/internal/ports"
	"fnoldesk/internal/usecase/fnol"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubService answers every call with canned data unless a func field overrides it.
type stubService struct {
	CreateClaimFunc        func(ctx context.Context, input fnol.CreateClaimInput) (claims.Claim, error)
	UpdateTestScriptFunc   func(ctx context.Context, input fnol.UpdateTestScriptInput) error
	CreateDefectFunc       func(ctx context.Context, input fnol.CreateDefectInput) (quality.Defect, error)
	UpdateDefectStatusFunc func(ctx context.Context, defectID string, status string) error
	ListClaimsFunc         func(ctx context.Context) ([]claims.Claim, error)
}

func (s *stubService) ListClaims(ctx context.Context) ([]claims.Claim, error) {
	if s.ListClaimsFunc != nil {
		return s.ListClaimsFunc(ctx)
	}
	return []claims.Claim{{ID: "c-1", ClaimNumber: "CLM-2024-01001"}}, nil
}

func (s *stubService) CreateClaim(ctx context.Context, input fnol.CreateClaimInput) (claims.Claim, error) {
	if s.CreateClaimFunc != nil {
		return s.CreateClaimFunc(ctx, input)
	}
	return claims.Claim{}, nil
}

func (s *stubService) KPIMetrics(context.Context) (claims.KPIMetrics, error) {
	return claims.KPIMetrics{AvgResolutionTime: 36.2, AutoRouteSuccessRate: 85, EscalationRate: 15, TotalClaims: 60}, nil
}

func (s *stubService) TrendAnalysis(context.Context) (claims.TrendAnalysis, error) {
	return claims.AnalyzeTrends(nil), nil
}

func (s *stubService) ListTestScripts(context.Context) ([]quality.TestScript, error) {
	return []quality.TestScript{}, nil
}

func (s *stubService) UpdateTestScript(ctx context.Context, input fnol.UpdateTestScriptInput) error {
	if s.UpdateTestScriptFunc != nil {
		return s.UpdateTestScriptFunc(ctx, input)
	}
	return nil
}

func (s *stubService) ListDefects(context.Context) ([]quality.Defect, error) {
	return []quality.Defect{}, nil
}

func (s *stubService) CreateDefect(ctx context.Context, input fnol.CreateDefectInput) (quality.Defect, error) {
	if s.CreateDefectFunc != nil {
		return s.CreateDefectFunc(ctx, input)
	}
	return quality.Defect{}, nil
}

func (s *stubService) UpdateDefectStatus(ctx context.Context, defectID string, status string) error {
	if s.UpdateDefectStatusFunc != nil {
		return s.UpdateDefectStatusFunc(ctx, defectID, status)
	}
	return nil
}

func (s *stubService) ListRisks(context.Context) ([]quality.Risk, error) {
	return []quality.Risk{}, nil
}

func (s *stubService) BusinessRequirements(context.Context) (docs.BusinessRequirements, error) {
	return docs.BusinessRequirements{Title: "Business Requirements Document"}, nil
}

func (s *stubService) UseCases(context.Context) (docs.UseCaseList, error) {
	return docs.UseCaseList{UseCases: []docs.UseCase{{ID: "UC-001"}}}, nil
}

func newTestServer(svc Service) *Server {
	return NewServer(svc, Options{CORSOrigins: []string{"*"}, Logger: nil})
}

func doRequest(t *testing.T, handler http.Handler, method string, target string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode detail: %v (body %s)", err, rec.Body.String())
	}
	return body.Detail
}

func TestRoot(t *testing.T) {
	rec := doRequest(t, newTestServer(&stubService{}).Handler(), http.MethodGet, "/api/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"message":"FNOL Workflow Optimization API"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
	if rec.Header().Get(headerRequestID) == "" {
		t.Fatal("missing request id header")
	}
}

func TestTraceIDIsPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set(headerTraceID, "trace-123")
	rec := httptest.NewRecorder()
	newTestServer(&stubService{}).Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get(headerTraceID); got != "trace-123" {
		t.Fatalf("trace id header = %q", got)
	}
}

func TestCreateClaimBindsRequest(t *testing.T) {
	var got fnol.CreateClaimInput
	svc := &stubService{
		CreateClaimFunc: func(_ context.Context, input fnol.CreateClaimInput) (claims.Claim, error) {
			got = input
			return claims.Claim{ClaimNumber: "CLM-2024-02000", AutoRouted: true, RiskLevel: claims.RiskMedium, Region: claims.RegionNortheast, Status: claims.StatusOpen}, nil
		},
	}
	body := `{"policyholder":"Test User","policy_number":"TEST-123456","claim_type":"Collision","amount":5000.00,"zip_code":"10001"}`
	rec := doRequest(t, newTestServer(svc).Handler(), http.MethodPost, "/api/claims", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	want := fnol.CreateClaimInput{Policyholder: "Test User", PolicyNumber: "TEST-123456", ClaimType: "Collision", Amount: 5000, ZipCode: "10001"}
	if got != want {
		t.Fatalf("input = %+v, want %+v", got, want)
	}

	var claim map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &claim); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claim["auto_routed"] != true || claim["risk_level"] != "Medium" || claim["region"] != "Northeast" {
		t.Fatalf("claim = %v", claim)
	}
	if _, ok := claim["adjuster_assigned"]; !ok {
		t.Fatalf("adjuster_assigned should be present as null: %v", claim)
	}
}

func TestCreateClaimAcceptsZeroAmount(t *testing.T) {
	called := false
	svc := &stubService{
		CreateClaimFunc: func(_ context.Context, input fnol.CreateClaimInput) (claims.Claim, error) {
			called = true
			return claims.Claim{Amount: input.Amount}, nil
		},
	}
	body := `{"policyholder":"A","policy_number":"B","claim_type":"Theft","amount":0,"zip_code":"1"}`
	rec := doRequest(t, newTestServer(svc).Handler(), http.MethodPost, "/api/claims", body)
	if rec.Code != http.StatusOK || !called {
		t.Fatalf("status = %d called = %v body = %s", rec.Code, called, rec.Body.String())
	}
}

func TestCreateClaimValidation(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"missing amount", `{"policyholder":"A","policy_number":"B","claim_type":"Theft","zip_code":"10001"}`},
		{"missing zip", `{"policyholder":"A","policy_number":"B","claim_type":"Theft","amount":10}`},
		{"amount not a number", `{"policyholder":"A","policy_number":"B","claim_type":"Theft","amount":"ten","zip_code":"10001"}`},
		{"empty body", ``},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			svc := &stubService{
				CreateClaimFunc: func(context.Context, fnol.CreateClaimInput) (claims.Claim, error) {
					t.Fatal("service should not be called")
					return claims.Claim{}, nil
				},
			}
			rec := doRequest(t, newTestServer(svc).Handler(), http.MethodPost, "/api/claims", testCase.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
			}
			if decodeDetail(t, rec) == "" {
				t.Fatal("detail is empty")
			}
		})
	}
}

func TestUpdateTestScript(t *testing.T) {
	var got fnol.UpdateTestScriptInput
	svc := &stubService{
		UpdateTestScriptFunc: func(_ context.Context, input fnol.UpdateTestScriptInput) error {
			got = input
			if input.ScriptID == "UAT-999" {
				return ports.ErrTestScriptNotFound
			}
			return nil
		},
	}
	handler := newTestServer(svc).Handler()

	rec := doRequest(t, handler, http.MethodPut, "/api/test-scripts/UAT-003", `{"status":"Pass","tested_by":"QA Team"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Test script updated successfully") {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if got != (fnol.UpdateTestScriptInput{ScriptID: "UAT-003", Status: "Pass", TestedBy: "QA Team"}) {
		t.Fatalf("input = %+v", got)
	}

	rec = doRequest(t, handler, http.MethodPut, "/api/test-scripts/UAT-999", `{"status":"Pass"}`)
	if rec.Code != http.StatusNotFound || decodeDetail(t, rec) != "Test script not found" {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, handler, http.MethodPut, "/api/test-scripts/UAT-003", `{"tested_by":"QA Team"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing status: code = %d", rec.Code)
	}
}

func TestCreateDefect(t *testing.T) {
	var got fnol.CreateDefectInput
	scriptID := "UAT-004"
	svc := &stubService{
		CreateDefectFunc: func(_ context.Context, input fnol.CreateDefectInput) (quality.Defect, error) {
			got = input
			return quality.Defect{DefectID: "DEF-003", Severity: quality.Severity(input.Severity), Status: quality.DefectOpen, TestScriptID: &scriptID}, nil
		},
	}
	body := `{"title":"Slow routing","description":"takes too long","severity":"High","reported_by":"QA Team","test_script_id":"UAT-004"}`
	rec := doRequest(t, newTestServer(svc).Handler(), http.MethodPost, "/api/defects", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if got.TestScriptID != "UAT-004" || got.Severity != "High" {
		t.Fatalf("input = %+v", got)
	}
	if !strings.Contains(rec.Body.String(), `"defect_id":"DEF-003"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestUpdateDefectStatus(t *testing.T) {
	var gotID, gotStatus string
	svc := &stubService{
		UpdateDefectStatusFunc: func(_ context.Context, defectID string, status string) error {
			gotID, gotStatus = defectID, status
			if defectID == "DEF-999" {
				return ports.ErrDefectNotFound
			}
			return nil
		},
	}
	handler := newTestServer(svc).Handler()

	rec := doRequest(t, handler, http.MethodPut, "/api/defects/DEF-001/status?status=In%20Progress", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Defect status updated successfully") {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if gotID != "DEF-001" || gotStatus != "In Progress" {
		t.Fatalf("got %q %q", gotID, gotStatus)
	}

	rec = doRequest(t, handler, http.MethodPut, "/api/defects/DEF-999/status?status=Closed", "")
	if rec.Code != http.StatusNotFound || decodeDetail(t, rec) != "Defect not found" {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, handler, http.MethodPut, "/api/defects/DEF-001/status", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing status query: code = %d", rec.Code)
	}
}

func TestStoreFailureIsGeneric500(t *testing.T) {
	svc := &stubService{
		ListClaimsFunc: func(context.Context) ([]claims.Claim, error) {
			return nil, errs.Store(errors.New("disk I/O error"), "query claims")
		},
	}
	rec := doRequest(t, newTestServer(svc).Handler(), http.MethodGet, "/api/claims", "")
	if rec.Code != http.StatusInternalServerError || decodeDetail(t, rec) != "Internal Server Error" {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "disk") {
		t.Fatalf("store error leaked: %s", rec.Body.String())
	}
}

func TestPanicIsRecovered(t *testing.T) {
	svc := &stubService{
		ListClaimsFunc: func(context.Context) ([]claims.Claim, error) {
			panic("boom")
		},
	}
	rec := doRequest(t, newTestServer(svc).Handler(), http.MethodGet, "/api/claims", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListAndDocumentRoutes(t *testing.T) {
	handler := newTestServer(&stubService{}).Handler()

	testCases := []struct {
		target string
		want   string
	}{
		{"/api/claims", `"claim_number":"CLM-2024-01001"`},
		{"/api/kpi-metrics", `"auto_route_success_rate":85`},
		{"/api/claims/trend-analysis", `"timeline":[]`},
		{"/api/test-scripts", `[]`},
		{"/api/defects", `[]`},
		{"/api/risks", `[]`},
		{"/api/brd", `"title":"Business Requirements Document"`},
		{"/api/use-cases", `"use_cases":[{"id":"UC-001"`},
	}
	for _, testCase := range testCases {
		t.Run(testCase.target, func(t *testing.T) {
			rec := doRequest(t, handler, http.MethodGet, testCase.target, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), testCase.want) {
				t.Fatalf("body = %s, want substring %s", rec.Body.String(), testCase.want)
			}
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := doRequest(t, newTestServer(&stubService{}).Handler(), http.MethodGet, "/api/nope", "")
	if rec.Code != http.StatusNotFound || decodeDetail(t, rec) != "Not Found" {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestCORSPreflightEchoesOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/claims", nil)
	req.Header.Set("Origin", "http://frontend.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	newTestServer(&stubService{}).Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://frontend.test" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("Access-Control-Allow-Credentials = %q", got)
	}
}

func TestCORSRestrictedOrigins(t *testing.T) {
	server := NewServer(&stubService{}, Options{CORSOrigins: []string{"http://allowed.test"}})

	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set("Origin", "http://other.test")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 for disallowed origin", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	svc := &stubService{
		CreateClaimFunc: func(context.Context, fnol.CreateClaimInput) (claims.Claim, error) {
			return claims.Claim{AutoRouted: true}, nil
		},
	}
	handler := newTestServer(svc).Handler()

	body := `{"policyholder":"A","policy_number":"B","claim_type":"Theft","amount":10,"zip_code":"10001"}`
	if rec := doRequest(t, handler, http.MethodPost, "/api/claims", body); rec.Code != http.StatusOK {
		t.Fatalf("create status = %d", rec.Code)
	}

	rec := doRequest(t, handler, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	out := rec.Body.Bytes()
	for _, want := range []string{
		`fnol_http_requests_total{method="POST",route="/api/claims",status="200"} 1`,
		`fnol_claims_created_total{auto_routed="true"} 1`,
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Fatalf("metrics missing %q", want)
		}
	}
}
