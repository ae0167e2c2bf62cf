package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veryfy/veryfy-backend/internal/app/service"
	apperrors "github.com/veryfy/veryfy-backend/internal/errors"
	"github.com/veryfy/veryfy-backend/internal/middleware"
)

type ReportController struct {
	reportService service.ReportService
}

func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

type SubmitReportRequest struct {
	ReportedEmail string `json:"reported_email" binding:"required,email"`
	Description   string `json:"description" binding:"required"`
	EvidenceURL   string `json:"evidence_url" binding:"omitempty,url"`
}

// SubmitReport files a scam report and alerts verified stores
// POST /api/v1/reports
func (ctrl *ReportController) SubmitReport(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid report details")
		return
	}

	report, dispatch, err := ctrl.reportService.SubmitReport(userID, service.SubmitReportInput{
		ReportedEmail: req.ReportedEmail,
		Description:   req.Description,
		EvidenceURL:   req.EvidenceURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReportedEmail):
			apperrors.BadRequest(c, apperrors.ValidationInvalidEmail, "Reported email is not a valid address")
		case errors.Is(err, service.ErrDescriptionTooShort):
			apperrors.BadRequest(c, apperrors.ValidationTooShort, "Description must be at least 10 characters")
		case errors.Is(err, service.ErrEvidenceRequired):
			apperrors.BadRequest(c, apperrors.ReportEvidenceRequired, "An evidence file is required")
		default:
			log.Error("Report submission failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "submit report")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Report filed. Verified stores have been alerted",
		"report":   report,
		"dispatch": dispatch,
	})
}

// GetMyReports lists the authenticated user's reports
// GET /api/v1/reports/mine
func (ctrl *ReportController) GetMyReports(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	reports, err := ctrl.reportService.GetReportsByReporter(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}
