package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/veryfy/veryfy-backend/internal/app/model"
	"github.com/veryfy/veryfy-backend/internal/app/repository"
	"github.com/veryfy/veryfy-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	PendingVerifications int64 `json:"pending_verifications"`
	VerifiedStores       int64 `json:"verified_stores"`
	RejectedStores       int64 `json:"rejected_stores"`
	TotalStores          int64 `json:"total_stores"`
	PendingReports       int64 `json:"pending_reports"`
}

type AdminService interface {
	GetDashboardStats() (*DashboardStats, error)
	// ExportReportsXLSX renders the filtered report list as a spreadsheet
	// for offline review.
	ExportReportsXLSX(filter repository.ReportFilter) ([]byte, error)
}

type adminService struct {
	storeRepo  repository.StoreRepository
	reportRepo repository.ReportRepository
}

func NewAdminService(storeRepo repository.StoreRepository, reportRepo repository.ReportRepository) AdminService {
	return &adminService{
		storeRepo:  storeRepo,
		reportRepo: reportRepo,
	}
}

func (s *adminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.PendingVerifications, err = s.storeRepo.CountByStatus(model.StatusPending); err != nil {
		return nil, err
	}
	if stats.VerifiedStores, err = s.storeRepo.CountByStatus(model.StatusVerified); err != nil {
		return nil, err
	}
	if stats.RejectedStores, err = s.storeRepo.CountByStatus(model.StatusRejected); err != nil {
		return nil, err
	}
	if stats.TotalStores, err = s.storeRepo.Count(); err != nil {
		return nil, err
	}
	if stats.PendingReports, err = s.reportRepo.CountByStatus(model.ReportPending); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *adminService) ExportReportsXLSX(filter repository.ReportFilter) ([]byte, error) {
	reports, _, err := s.reportRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	headers := []string{"ID", "Reported Email", "Description", "Status", "Reporter", "Evidence URL", "Filed At"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for rowIdx, report := range reports {
		reporter := ""
		if report.Reporter != nil {
			reporter = report.Reporter.Email
		}
		values := []interface{}{
			report.ID,
			report.ReportedEmail,
			report.Description,
			string(report.Status),
			reporter,
			report.EvidenceURL,
			report.CreatedAt.Format(time.RFC3339),
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}

	logger.Info("Exported scam reports", map[string]interface{}{
		"count": len(reports),
	})

	return buf.Bytes(), nil
}
