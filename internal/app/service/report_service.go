package service

import (
	"errors"
	"net/mail"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/lib/pq"
	"github.com/veryfy/veryfy-backend/config"
	"github.com/veryfy/veryfy-backend/internal/app/model"
	"github.com/veryfy/veryfy-backend/internal/app/repository"
	"github.com/veryfy/veryfy-backend/internal/mailer"
	"github.com/veryfy/veryfy-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound       = errors.New("report not found")
	ErrInvalidReportedEmail = errors.New("reported email is not a valid address")
	ErrDescriptionTooShort  = errors.New("description must be at least 10 characters")
	ErrEvidenceRequired     = errors.New("an evidence file is required")
	ErrInvalidReportStatus  = errors.New("report status must be reviewed or dismissed")
)

// minDescriptionLen keeps one-word accusations out of the fan-out.
const minDescriptionLen = 10

// SubmitReportInput is a user's scam accusation.
type SubmitReportInput struct {
	ReportedEmail string `json:"reported_email"`
	Description   string `json:"description"`
	EvidenceURL   string `json:"evidence_url"`
}

// DispatchSummary reports how the alert fan-out went.
type DispatchSummary struct {
	Attempted int      `json:"attempted"`
	Delivered int      `json:"delivered"`
	Failed    []string `json:"failed,omitempty"`
}

type ReportService interface {
	// SubmitReport validates and persists a report, then alerts every
	// verified store. Delivery failures are recorded, never returned: a
	// filed report stays filed.
	SubmitReport(reporterID uint, input SubmitReportInput) (*model.ScamReport, *DispatchSummary, error)
	GetReportByID(id uint) (*model.ScamReport, error)
	GetReportsByReporter(reporterID uint) ([]model.ScamReport, error)
	ListReports(filter repository.ReportFilter) ([]model.ScamReport, int64, error)
	ReviewReport(adminID, reportID uint, status model.ReportStatus) (*model.ScamReport, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
	storeRepo  repository.StoreRepository
	notifRepo  repository.NotificationRepository
	notifSvc   NotificationService
	mail       mailer.Mailer
	cfg        *config.ReportConfig
}

func NewReportService(
	reportRepo repository.ReportRepository,
	storeRepo repository.StoreRepository,
	notifRepo repository.NotificationRepository,
	notifSvc NotificationService,
	mail mailer.Mailer,
	cfg *config.ReportConfig,
) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		storeRepo:  storeRepo,
		notifRepo:  notifRepo,
		notifSvc:   notifSvc,
		mail:       mail,
		cfg:        cfg,
	}
}

func (s *reportService) SubmitReport(reporterID uint, input SubmitReportInput) (*model.ScamReport, *DispatchSummary, error) {
	input.ReportedEmail = strings.TrimSpace(input.ReportedEmail)
	input.Description = strings.TrimSpace(input.Description)

	if _, err := mail.ParseAddress(input.ReportedEmail); err != nil {
		return nil, nil, ErrInvalidReportedEmail
	}
	if utf8.RuneCountInString(input.Description) < minDescriptionLen {
		return nil, nil, ErrDescriptionTooShort
	}
	if s.cfg.RequireEvidence && input.EvidenceURL == "" {
		return nil, nil, ErrEvidenceRequired
	}

	report := &model.ScamReport{
		ReporterID:    reporterID,
		ReportedEmail: input.ReportedEmail,
		Description:   input.Description,
		EvidenceURL:   input.EvidenceURL,
		Status:        model.ReportPending,
	}

	if err := s.reportRepo.Create(report); err != nil {
		logger.Error("Failed to create scam report", err, map[string]interface{}{
			"reporter_id": reporterID,
		})
		return nil, nil, err
	}

	logger.Info("Scam report filed", map[string]interface{}{
		"report_id":      report.ID,
		"reporter_id":    reporterID,
		"reported_email": report.ReportedEmail,
	})

	summary := s.notifyVerifiedStores(report)

	return report, summary, nil
}

// notifyVerifiedStores fans the alert out to every verified store. Emails go
// out concurrently; each store owner also gets an in-app notification. The
// run is summarized in a dispatch record.
func (s *reportService) notifyVerifiedStores(report *model.ScamReport) *DispatchSummary {
	stores, err := s.storeRepo.FindVerified()
	if err != nil {
		logger.Error("Failed to load verified stores for alert fan-out", err, map[string]interface{}{
			"report_id": report.ID,
		})
		return &DispatchSummary{}
	}

	subject, body := mailer.ScamAlertEmail(report.ReportedEmail, report.Description)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed []string
	)

	attempted := 0
	for _, store := range stores {
		if store.ContactEmail == "" {
			continue
		}
		attempted++

		wg.Add(1)
		go func(recipient string) {
			defer wg.Done()
			if err := s.mail.Send(recipient, subject, body); err != nil {
				mu.Lock()
				failed = append(failed, recipient)
				mu.Unlock()
			}
		}(store.ContactEmail)
	}
	wg.Wait()

	// Owners of several verified stores get one feed entry, not one per
	// store.
	notified := make(map[uint]bool)
	for i := range stores {
		store := &stores[i]
		if notified[store.UserID] {
			continue
		}
		notified[store.UserID] = true

		_, err := s.notifSvc.Notify(
			store.UserID,
			model.NotificationTypeScamAlert,
			"Scam alert: suspicious buyer reported",
			"A scam report was filed against "+report.ReportedEmail+". Check your email for details.",
			&report.ID,
			&store.ID,
		)
		if err != nil {
			logger.Warn("Failed to create scam-alert feed entry", map[string]interface{}{
				"report_id": report.ID,
				"user_id":   store.UserID,
				"error":     err.Error(),
			})
		}
	}

	dispatch := &model.NotificationDispatch{
		ScamReportID:     report.ID,
		AttemptedCount:   attempted,
		DeliveredCount:   attempted - len(failed),
		FailedRecipients: pq.StringArray(failed),
	}
	if err := s.notifRepo.CreateDispatch(dispatch); err != nil {
		logger.Error("Failed to record alert dispatch", err, map[string]interface{}{
			"report_id": report.ID,
		})
	}

	if len(failed) > 0 {
		logger.Warn("Scam-alert delivery partially failed", map[string]interface{}{
			"report_id": report.ID,
			"attempted": attempted,
			"failed":    len(failed),
		})
	}

	return &DispatchSummary{
		Attempted: attempted,
		Delivered: attempted - len(failed),
		Failed:    failed,
	}
}

func (s *reportService) GetReportByID(id uint) (*model.ScamReport, error) {
	report, err := s.reportRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

func (s *reportService) GetReportsByReporter(reporterID uint) ([]model.ScamReport, error) {
	return s.reportRepo.FindByReporterID(reporterID)
}

func (s *reportService) ListReports(filter repository.ReportFilter) ([]model.ScamReport, int64, error) {
	return s.reportRepo.FindAll(filter)
}

// ReviewReport closes out a report. Closing never re-triggers the fan-out.
func (s *reportService) ReviewReport(adminID, reportID uint, status model.ReportStatus) (*model.ScamReport, error) {
	if status != model.ReportReviewed && status != model.ReportDismissed {
		return nil, ErrInvalidReportStatus
	}

	if err := s.reportRepo.UpdateStatus(reportID, status, adminID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	logger.Info("Scam report reviewed", map[string]interface{}{
		"report_id": reportID,
		"admin_id":  adminID,
		"status":    string(status),
	})

	return s.reportRepo.FindByID(reportID)
}
