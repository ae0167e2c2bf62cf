package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/veryfy/veryfy-backend/internal/app/model"
	"github.com/veryfy/veryfy-backend/internal/app/repository"
	"github.com/veryfy/veryfy-backend/internal/app/service"
	apperrors "github.com/veryfy/veryfy-backend/internal/errors"
	"github.com/veryfy/veryfy-backend/internal/middleware"
)

type AdminController struct {
	adminService        service.AdminService
	storeService        service.StoreService
	verificationService service.VerificationService
	reportService       service.ReportService
	badgeService        service.BadgeService
}

func NewAdminController(
	adminService service.AdminService,
	storeService service.StoreService,
	verificationService service.VerificationService,
	reportService service.ReportService,
	badgeService service.BadgeService,
) *AdminController {
	return &AdminController{
		adminService:        adminService,
		storeService:        storeService,
		verificationService: verificationService,
		reportService:       reportService,
		badgeService:        badgeService,
	}
}

type ReviewStoreRequest struct {
	Status          string `json:"status" binding:"required"`
	RejectionReason string `json:"rejection_reason"`
}

type ReviewDocumentRequest struct {
	Status string `json:"status" binding:"required"`
}

type ReviewReportRequest struct {
	Status string `json:"status" binding:"required"`
}

type IssueBadgeRequest struct {
	BadgeType string `json:"badge_type" binding:"required"`
}

// GetDashboard returns the review-queue summary
// GET /api/v1/admin/dashboard
func (ctrl *AdminController) GetDashboard(c *gin.Context) {
	stats, err := ctrl.adminService.GetDashboardStats()
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// ListStores lists stores for review, filterable by status
// GET /api/v1/admin/stores?status=pending&search=&page=&page_size=
func (ctrl *AdminController) ListStores(c *gin.Context) {
	filter := repository.StoreFilter{
		Search: c.Query("search"),
	}

	if status := c.Query("status"); status != "" {
		vs := model.VerificationStatus(status)
		if !vs.Valid() {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown verification status")
			return
		}
		filter.Status = vs
	}

	page, pageSize := parsePagination(c)
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	stores, total, err := ctrl.storeService.ListStores(filter)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list stores")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stores":    stores,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetStore returns one store with its documents and badges for review
// GET /api/v1/admin/stores/:id
func (ctrl *AdminController) GetStore(c *gin.Context) {
	storeID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid store ID")
		return
	}

	store, err := ctrl.storeService.GetStoreByID(storeID)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get store")
		return
	}

	c.JSON(http.StatusOK, gin.H{"store": store})
}

// ReviewStore decides a pending verification
// PUT /api/v1/admin/stores/:id/status
func (ctrl *AdminController) ReviewStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	adminID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	storeID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid store ID")
		return
	}

	var req ReviewStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A decision status is required")
		return
	}

	store, err := ctrl.verificationService.ReviewStore(adminID, storeID, service.ReviewDecision{
		Target:          model.VerificationStatus(req.Status),
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTargetStatus):
			apperrors.BadRequest(c, apperrors.StoreInvalidTargetStatus, "Status must be verified or rejected")
		case errors.Is(err, service.ErrReasonRequired):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "A rejection reason is required")
		case errors.Is(err, service.ErrStoreNotFound):
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
		case errors.Is(err, service.ErrAlreadyReviewed):
			apperrors.Conflict(c, apperrors.StoreVerificationReviewed, "This store has already been decided")
		case errors.Is(err, service.ErrReviewConflict):
			apperrors.Conflict(c, apperrors.StoreVerificationConflict, "Another review decided this store first")
		default:
			log.Error("Store review failed", err, map[string]interface{}{
				"store_id": storeID,
				"admin_id": adminID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "review store")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Verification decision applied",
		"store":   store,
	})
}

// ReviewDocument decides a single document
// PUT /api/v1/admin/documents/:id/status
func (ctrl *AdminController) ReviewDocument(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	documentID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid document ID")
		return
	}

	var req ReviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A decision status is required")
		return
	}

	doc, err := ctrl.verificationService.ReviewDocument(adminID, documentID, model.VerificationStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTargetStatus):
			apperrors.BadRequest(c, apperrors.StoreInvalidTargetStatus, "Status must be verified or rejected")
		case errors.Is(err, service.ErrDocumentNotFound):
			apperrors.NotFound(c, apperrors.DocumentNotFound, "Document not found")
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "review document")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Document decision applied",
		"document": doc,
	})
}

// IssueBadge mints (or re-reads) one badge variant for a verified store
// POST /api/v1/admin/stores/:id/badges
func (ctrl *AdminController) IssueBadge(c *gin.Context) {
	storeID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid store ID")
		return
	}

	var req IssueBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A badge type is required")
		return
	}

	badge, err := ctrl.badgeService.IssueBadge(storeID, model.BadgeType(req.BadgeType))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidBadgeType):
			apperrors.BadRequest(c, apperrors.BadgeInvalidType, "Badge type must be topbar or footer")
		case errors.Is(err, service.ErrStoreNotFound):
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
		case errors.Is(err, service.ErrStoreNotVerified):
			apperrors.Conflict(c, apperrors.StoreNotVerified, "Only verified stores can carry badges")
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "issue badge")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Badge issued",
		"badge":   badge,
	})
}

// ListReports lists scam reports for review
// GET /api/v1/admin/reports?status=pending&page=&page_size=
func (ctrl *AdminController) ListReports(c *gin.Context) {
	filter := repository.ReportFilter{}

	if status := c.Query("status"); status != "" {
		rs := model.ReportStatus(status)
		if !rs.Valid() {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown report status")
			return
		}
		filter.Status = rs
	}

	page, pageSize := parsePagination(c)
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	reports, total, err := ctrl.reportService.ListReports(filter)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports":   reports,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// ReviewReport closes out a scam report
// PUT /api/v1/admin/reports/:id/status
func (ctrl *AdminController) ReviewReport(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	reportID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid report ID")
		return
	}

	var req ReviewReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A decision status is required")
		return
	}

	report, err := ctrl.reportService.ReviewReport(adminID, reportID, model.ReportStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReportStatus):
			apperrors.BadRequest(c, apperrors.ReportInvalidStatus, "Status must be reviewed or dismissed")
		case errors.Is(err, service.ErrReportNotFound):
			apperrors.NotFound(c, apperrors.ReportNotFound, "Report not found")
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "review report")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report decision applied",
		"report":  report,
	})
}

// ExportReports downloads the filtered report list as a spreadsheet
// GET /api/v1/admin/reports/export?status=
func (ctrl *AdminController) ExportReports(c *gin.Context) {
	filter := repository.ReportFilter{}
	if status := c.Query("status"); status != "" {
		rs := model.ReportStatus(status)
		if !rs.Valid() {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown report status")
			return
		}
		filter.Status = rs
	}

	data, err := ctrl.adminService.ExportReportsXLSX(filter)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "export reports")
		return
	}

	filename := fmt.Sprintf("scam-reports-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func parsePagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.Query("page_size")); err == nil && ps > 0 {
		pageSize = ps
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
