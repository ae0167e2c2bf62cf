package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veryfy/veryfy-backend/config"
	"github.com/veryfy/veryfy-backend/internal/app/model"
	"github.com/veryfy/veryfy-backend/internal/app/repository"
	"github.com/veryfy/veryfy-backend/internal/db"
	"gorm.io/gorm"
)

// fakeMailer records sends and can be told to fail for chosen recipients.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: make(map[string]bool)}
}

func (m *fakeMailer) Send(to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[to] {
		return assert.AnError
	}
	m.sent = append(m.sent, to)
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type verificationFixture struct {
	db       *gorm.DB
	service  VerificationService
	badges   BadgeService
	mail     *fakeMailer
	admin    *model.User
	merchant *model.User
	store    *model.Store
}

func setupVerificationTest(t *testing.T) *verificationFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	storeRepo := repository.NewStoreRepository(testDB)
	docRepo := repository.NewDocumentRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	badgeRepo := repository.NewBadgeRepository(testDB)
	notifRepo := repository.NewNotificationRepository(testDB)

	badgeCfg := &config.BadgeConfig{
		VerifyBaseURL: "https://veryfy.link/verify-store",
		WidgetBaseURL: "https://veryfy.link/widget",
	}
	badgeService := NewBadgeService(badgeRepo, storeRepo, badgeCfg)
	notifService := NewNotificationService(notifRepo, nil)
	mail := newFakeMailer()

	service := NewVerificationService(storeRepo, docRepo, userRepo, badgeService, notifService, mail)

	admin := &model.User{Email: "admin@example.com", PasswordHash: "hash", Name: "Admin", Role: model.RoleAdmin}
	require.NoError(t, testDB.Create(admin).Error)

	merchant := &model.User{Email: "merchant@example.com", PasswordHash: "hash", Name: "Merchant", Role: model.RoleUser}
	require.NoError(t, testDB.Create(merchant).Error)

	store := &model.Store{
		UserID: merchant.ID,
		Name:   "Acme Supplies",
		URL:    "https://acme.example.com",
		Documents: []model.VerificationDocument{
			{DocumentType: model.DocumentBusinessLicense, DocumentURL: "https://cdn.example.com/license.pdf"},
		},
	}
	require.NoError(t, testDB.Create(store).Error)

	return &verificationFixture{
		db:       testDB,
		service:  service,
		badges:   badgeService,
		mail:     mail,
		admin:    admin,
		merchant: merchant,
		store:    store,
	}
}

func TestVerificationService_ReviewStore_Approve(t *testing.T) {
	fx := setupVerificationTest(t)

	store, err := fx.service.ReviewStore(fx.admin.ID, fx.store.ID, ReviewDecision{Target: model.StatusVerified})
	require.NoError(t, err)

	assert.Equal(t, model.StatusVerified, store.VerificationStatus)
	require.NotNil(t, store.VerifiedAt)
	require.NotNil(t, store.ReviewedBy)
	assert.Equal(t, fx.admin.ID, *store.ReviewedBy)

	// Approval mints the default badge set.
	assert.Len(t, store.Badges, 2)
	seen := map[model.BadgeType]bool{}
	for _, badge := range store.Badges {
		assert.NotEmpty(t, badge.RegistrationNumber)
		seen[badge.BadgeType] = true
	}
	assert.True(t, seen[model.BadgeTopbar])
	assert.True(t, seen[model.BadgeFooter])

	// The merchant hears about it in-app and by email.
	var notifications []model.Notification
	require.NoError(t, fx.db.Where("user_id = ?", fx.merchant.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, model.NotificationTypeStoreVerified, notifications[0].Type)
	assert.Equal(t, 1, fx.mail.sentCount())
}

func TestVerificationService_ReviewStore_ApproveIdempotent(t *testing.T) {
	fx := setupVerificationTest(t)

	_, err := fx.service.ReviewStore(fx.admin.ID, fx.store.ID, ReviewDecision{Target: model.StatusVerified})
	require.NoError(t, err)

	// Approving a second time succeeds and changes nothing.
	store, err := fx.service.ReviewStore(fx.admin.ID, fx.store.ID, ReviewDecision{Target: model.StatusVerified})
	require.NoError(t, err)
	assert.Equal(t, model.StatusVerified, store.VerificationStatus)

	var badgeCount int64
	require.NoError(t, fx.db.Model(&model.VerificationBadge{}).Where("store_id = ?", fx.store.ID).Count(&badgeCount).Error)
	assert.Equal(t, int64(2), badgeCount)
	assert.Equal(t, 1, fx.mail.sentCount())
}

func TestVerificationService_ReviewStore_TerminalConflict(t *testing.T) {
	fx := setupVerificationTest(t)

	_, err := fx.service.ReviewStore(fx.admin.ID, fx.store.ID, ReviewDecision{Target: model.StatusVerified})
	require.NoError(t, err)

	_, err = fx.service.ReviewStore(fx.admin.ID, fx.store.ID, ReviewDecision{
		Target:          model.StatusRejected,
		RejectionReason: "changed my mind",
	})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestVerificationService_ReviewStore_Reject(t *testing.T) {
	fx := setupVerificationTest(t)

	store, err := fx.service.ReviewStore(fx.admin.ID, fx.store.ID, ReviewDecision{
		Target:          model.StatusRejected,
		RejectionReason: "documents unreadable",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusRejected, store.VerificationStatus)
	assert.Equal(t, "documents unreadable", store.RejectionReason)
	assert.Nil(t, store.VerifiedAt)
	assert.Empty(t, store.Badges)
}

func TestVerificationService_ReviewStore_Validation(t *testing.T) {
	fx := setupVerificationTest(t)

	tests := []struct {
		name     string
		decision ReviewDecision
		wantErr  error
	}{
		{
			name:     "Pending is not a decision",
			decision: ReviewDecision{Target: model.StatusPending},
			wantErr:  ErrInvalidTargetStatus,
		},
		{
			name:     "Unknown status",
			decision: ReviewDecision{Target: model.VerificationStatus("approved")},
			wantErr:  ErrInvalidTargetStatus,
		},
		{
			name:     "Reject needs a reason",
			decision: ReviewDecision{Target: model.StatusRejected},
			wantErr:  ErrReasonRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.service.ReviewStore(fx.admin.ID, fx.store.ID, tt.decision)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerificationService_ReviewStore_NotFound(t *testing.T) {
	fx := setupVerificationTest(t)

	_, err := fx.service.ReviewStore(fx.admin.ID, 9999, ReviewDecision{Target: model.StatusVerified})
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestVerificationService_ReviewDocument(t *testing.T) {
	fx := setupVerificationTest(t)

	docID := fx.store.Documents[0].ID

	doc, err := fx.service.ReviewDocument(fx.admin.ID, docID, model.StatusVerified)
	require.NoError(t, err)
	assert.Equal(t, model.StatusVerified, doc.Status)

	// The store itself stays pending; documents are reviewed independently.
	var store model.Store
	require.NoError(t, fx.db.First(&store, fx.store.ID).Error)
	assert.Equal(t, model.StatusPending, store.VerificationStatus)

	_, err = fx.service.ReviewDocument(fx.admin.ID, 9999, model.StatusRejected)
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	_, err = fx.service.ReviewDocument(fx.admin.ID, docID, model.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTargetStatus)
}
