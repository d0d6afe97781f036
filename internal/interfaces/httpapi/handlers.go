package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fnoldesk/internal/bootstrap/logging"
	"fnoldesk/internal/errs"
	"fnoldesk/internal/usecase/fnol"
)

const (
	rootMessage         = "FNOL Workflow Optimization API"
	internalErrorDetail = "Internal Server Error"
)

type createClaimRequest struct {
	Policyholder string   `json:"policyholder" binding:"required"`
	PolicyNumber string   `json:"policy_number" binding:"required"`
	ClaimType    string   `json:"claim_type" binding:"required"`
	Amount       *float64 `json:"amount" binding:"required"`
	ZipCode      string   `json:"zip_code" binding:"required"`
}

type updateTestScriptRequest struct {
	Status   string  `json:"status" binding:"required"`
	TestedBy *string `json:"tested_by"`
	Notes    *string `json:"notes"`
}

type createDefectRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	Severity     string  `json:"severity" binding:"required"`
	ReportedBy   string  `json:"reported_by" binding:"required"`
	TestScriptID *string `json:"test_script_id"`
}

type defectStatusQuery struct {
	Status string `form:"status" binding:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// writeError maps error kinds to status codes. Anything unclassified is logged
// and answered with a generic 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errs.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"detail": errs.ClientMessage(err, "Not Found")})
	case errs.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": errs.ClientMessage(err, err.Error())})
	default:
		logging.Error(c.Request.Context(), "request failed",
			slog.String("route", c.FullPath()),
			slog.Any("err", errs.Loggable(err)),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": internalErrorDetail})
	}
}

func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, messageResponse{Message: rootMessage})
}

func (s *Server) handleListClaims(c *gin.Context) {
	items, err := s.svc.ListClaims(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) handleCreateClaim(c *gin.Context) {
	var req createClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	claim, err := s.svc.CreateClaim(c.Request.Context(), fnol.CreateClaimInput{
		Policyholder: req.Policyholder,
		PolicyNumber: req.PolicyNumber,
		ClaimType:    req.ClaimType,
		Amount:       *req.Amount,
		ZipCode:      req.ZipCode,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	s.metrics.claimCreated(claim.AutoRouted)
	c.JSON(http.StatusOK, claim)
}

func (s *Server) handleKPIMetrics(c *gin.Context) {
	kpis, err := s.svc.KPIMetrics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, kpis)
}

func (s *Server) handleTrendAnalysis(c *gin.Context) {
	trends, err := s.svc.TrendAnalysis(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trends)
}

func (s *Server) handleListTestScripts(c *gin.Context) {
	items, err := s.svc.ListTestScripts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) handleUpdateTestScript(c *gin.Context) {
	var req updateTestScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	err := s.svc.UpdateTestScript(c.Request.Context(), fnol.UpdateTestScriptInput{
		ScriptID: c.Param("script_id"),
		Status:   req.Status,
		TestedBy: deref(req.TestedBy),
		Notes:    deref(req.Notes),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Test script updated successfully"})
}

func (s *Server) handleListDefects(c *gin.Context) {
	items, err := s.svc.ListDefects(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) handleCreateDefect(c *gin.Context) {
	var req createDefectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	defect, err := s.svc.CreateDefect(c.Request.Context(), fnol.CreateDefectInput{
		Title:        req.Title,
		Description:  req.Description,
		Severity:     req.Severity,
		ReportedBy:   req.ReportedBy,
		TestScriptID: deref(req.TestScriptID),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	s.metrics.defectCreated(string(defect.Severity))
	c.JSON(http.StatusOK, defect)
}

func (s *Server) handleUpdateDefectStatus(c *gin.Context) {
	var query defectStatusQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeBindError(c, err)
		return
	}

	if err := s.svc.UpdateDefectStatus(c.Request.Context(), c.Param("defect_id"), query.Status); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Defect status updated successfully"})
}

func (s *Server) handleListRisks(c *gin.Context) {
	items, err := s.svc.ListRisks(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) handleBRD(c *gin.Context) {
	brd, err := s.svc.BusinessRequirements(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, brd)
}

func (s *Server) handleUseCases(c *gin.Context) {
	useCases, err := s.svc.UseCases(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, useCases)
}
