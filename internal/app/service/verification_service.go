package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/veryfy/veryfy-backend/internal/app/model"
	"github.com/veryfy/veryfy-backend/internal/app/repository"
	"github.com/veryfy/veryfy-backend/internal/mailer"
	"github.com/veryfy/veryfy-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInvalidTargetStatus = errors.New("target status must be verified or rejected")
	ErrAlreadyReviewed     = errors.New("store verification has already been decided")
	ErrReviewConflict      = errors.New("another review decided this store first")
	ErrReasonRequired      = errors.New("a rejection reason is required")
	ErrDocumentNotFound    = errors.New("verification document not found")
)

// ReviewDecision is an admin's verdict on a pending store.
type ReviewDecision struct {
	Target          model.VerificationStatus
	RejectionReason string
}

type VerificationService interface {
	// ReviewStore applies an admin decision to a pending store. Re-applying
	// the decision a store already reached succeeds without side effects;
	// any other transition out of a terminal state is rejected.
	ReviewStore(adminID, storeID uint, decision ReviewDecision) (*model.Store, error)
	ReviewDocument(adminID, documentID uint, status model.VerificationStatus) (*model.VerificationDocument, error)
}

type verificationService struct {
	storeRepo    repository.StoreRepository
	docRepo      repository.DocumentRepository
	userRepo     repository.UserRepository
	badgeService BadgeService
	notifService NotificationService
	mail         mailer.Mailer
}

func NewVerificationService(
	storeRepo repository.StoreRepository,
	docRepo repository.DocumentRepository,
	userRepo repository.UserRepository,
	badgeService BadgeService,
	notifService NotificationService,
	mail mailer.Mailer,
) VerificationService {
	return &verificationService{
		storeRepo:    storeRepo,
		docRepo:      docRepo,
		userRepo:     userRepo,
		badgeService: badgeService,
		notifService: notifService,
		mail:         mail,
	}
}

func (s *verificationService) ReviewStore(adminID, storeID uint, decision ReviewDecision) (*model.Store, error) {
	if !decision.Target.Valid() || !decision.Target.Terminal() {
		return nil, ErrInvalidTargetStatus
	}
	if decision.Target == model.StatusRejected && decision.RejectionReason == "" {
		return nil, ErrReasonRequired
	}

	store, err := s.storeRepo.FindByID(storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	if store.VerificationStatus.Terminal() {
		// Re-applying the same verdict is a no-op success. No second badge
		// set, no second notification.
		if store.VerificationStatus == decision.Target {
			return store, nil
		}
		return nil, ErrAlreadyReviewed
	}

	now := time.Now()
	affected, err := s.storeRepo.UpdateStatusFromPending(storeID, decision.Target, adminID, decision.RejectionReason, now)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// The guard lost: someone else decided between our read and write.
		current, readErr := s.storeRepo.FindByID(storeID)
		if readErr == nil && current.VerificationStatus == decision.Target {
			return current, nil
		}
		return nil, ErrReviewConflict
	}

	logger.Info("Store verification decided", map[string]interface{}{
		"store_id": storeID,
		"admin_id": adminID,
		"target":   string(decision.Target),
	})

	if decision.Target == model.StatusVerified {
		if _, err := s.badgeService.IssueDefaultBadges(storeID); err != nil {
			// The decision stands; badge issuance can be repeated by an
			// admin via the explicit issue endpoint.
			logger.Error("Badge issuance failed after approval", err, map[string]interface{}{
				"store_id": storeID,
			})
		}
	}

	s.notifyOwner(store, decision)

	return s.storeRepo.FindByID(storeID)
}

func (s *verificationService) notifyOwner(store *model.Store, decision ReviewDecision) {
	approved := decision.Target == model.StatusVerified

	var notifType model.NotificationType
	var title, content string
	if approved {
		notifType = model.NotificationTypeStoreVerified
		title = "Your store has been verified"
		content = fmt.Sprintf("%s passed verification. Your trust badges are ready to embed.", store.Name)
	} else {
		notifType = model.NotificationTypeStoreRejected
		title = "Your store verification was declined"
		content = fmt.Sprintf("%s was not verified. Reason: %s", store.Name, decision.RejectionReason)
	}

	if _, err := s.notifService.Notify(store.UserID, notifType, title, content, nil, &store.ID); err != nil {
		logger.Warn("Failed to create review notification", map[string]interface{}{
			"store_id": store.ID,
			"user_id":  store.UserID,
			"error":    err.Error(),
		})
	}

	owner, err := s.userRepo.FindByID(store.UserID)
	if err != nil {
		logger.Warn("Failed to load store owner for review email", map[string]interface{}{
			"store_id": store.ID,
			"user_id":  store.UserID,
			"error":    err.Error(),
		})
		return
	}

	subject, body := mailer.VerificationDecisionEmail(store.Name, approved, decision.RejectionReason)
	if err := s.mail.Send(owner.Email, subject, body); err != nil {
		logger.Warn("Failed to send review email", map[string]interface{}{
			"store_id": store.ID,
			"error":    err.Error(),
		})
	}
}

// ReviewDocument sets one document's status independently of its store.
func (s *verificationService) ReviewDocument(adminID, documentID uint, status model.VerificationStatus) (*model.VerificationDocument, error) {
	if !status.Valid() || !status.Terminal() {
		return nil, ErrInvalidTargetStatus
	}

	if err := s.docRepo.UpdateStatus(documentID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	logger.Info("Verification document reviewed", map[string]interface{}{
		"document_id": documentID,
		"admin_id":    adminID,
		"status":      string(status),
	})

	return s.docRepo.FindByID(documentID)
}
