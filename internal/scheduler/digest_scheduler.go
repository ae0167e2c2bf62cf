package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/veryfy/veryfy-backend/internal/app/model"
	"github.com/veryfy/veryfy-backend/internal/app/repository"
	"github.com/veryfy/veryfy-backend/internal/mailer"
	"github.com/veryfy/veryfy-backend/pkg/logger"
)

// DigestScheduler mails admins a morning summary of the review queue.
type DigestScheduler struct {
	cron       *cron.Cron
	storeRepo  repository.StoreRepository
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
	mailer     mailer.Mailer
}

func NewDigestScheduler(
	storeRepo repository.StoreRepository,
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
	m mailer.Mailer,
) *DigestScheduler {
	return &DigestScheduler{
		cron:       cron.New(),
		storeRepo:  storeRepo,
		reportRepo: reportRepo,
		userRepo:   userRepo,
		mailer:     m,
	}
}

// Start registers the daily job. "0 9 * * *" = every day at 09:00.
func (s *DigestScheduler) Start() error {
	_, err := s.cron.AddFunc("0 9 * * *", s.SendDigest)
	if err != nil {
		logger.Error("Failed to add cron job for review digest", err)
		return err
	}

	s.cron.Start()
	logger.Info("Review digest scheduler started (daily at 9:00 AM)", nil)

	return nil
}

// SendDigest mails the current queue counts to every admin. Exported so it
// can also be triggered outside the schedule.
func (s *DigestScheduler) SendDigest() {
	pendingStores, err := s.storeRepo.CountByStatus(model.StatusPending)
	if err != nil {
		logger.Error("Failed to count pending verifications for digest", err)
		return
	}

	pendingReports, err := s.reportRepo.CountByStatus(model.ReportPending)
	if err != nil {
		logger.Error("Failed to count pending reports for digest", err)
		return
	}

	if pendingStores == 0 && pendingReports == 0 {
		logger.Debug("Review queue empty, skipping digest")
		return
	}

	admins, err := s.userRepo.FindAdmins()
	if err != nil {
		logger.Error("Failed to load admin accounts for digest", err)
		return
	}

	subject, body := mailer.PendingReviewDigestEmail(pendingStores, pendingReports)

	sent := 0
	for _, admin := range admins {
		if err := s.mailer.Send(admin.Email, subject, body); err != nil {
			logger.Error("Failed to send review digest", err, map[string]interface{}{
				"admin_id": admin.ID,
			})
			continue
		}
		sent++
	}

	logger.Info("Review digest sent", map[string]interface{}{
		"pending_stores":  pendingStores,
		"pending_reports": pendingReports,
		"recipients":      sent,
	})
}

func (s *DigestScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Review digest scheduler stopped", nil)
}
