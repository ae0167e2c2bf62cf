package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veryfy/veryfy-backend/config"
	"github.com/veryfy/veryfy-backend/internal/app/model"
	"github.com/veryfy/veryfy-backend/internal/app/repository"
	"github.com/veryfy/veryfy-backend/internal/db"
	"github.com/veryfy/veryfy-backend/pkg/util"
	"gorm.io/gorm"
)

func setupBadgeServiceTest(t *testing.T) (BadgeService, *gorm.DB, *model.Store, *model.Store) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	badgeRepo := repository.NewBadgeRepository(testDB)
	storeRepo := repository.NewStoreRepository(testDB)
	cfg := &config.BadgeConfig{
		VerifyBaseURL: "https://veryfy.link/verify-store",
		WidgetBaseURL: "https://veryfy.link/widget",
	}
	service := NewBadgeService(badgeRepo, storeRepo, cfg)

	owner := &model.User{Email: "merchant@example.com", PasswordHash: "hash", Name: "Merchant", Role: model.RoleUser}
	require.NoError(t, testDB.Create(owner).Error)

	verified := &model.Store{
		UserID:             owner.ID,
		Name:               "Acme Supplies",
		URL:                "https://acme.example.com",
		VerificationStatus: model.StatusVerified,
	}
	require.NoError(t, testDB.Create(verified).Error)

	pending := &model.Store{
		UserID: owner.ID,
		Name:   "Unproven Shop",
		URL:    "https://unproven.example.com",
	}
	require.NoError(t, testDB.Create(pending).Error)

	return service, testDB, verified, pending
}

func TestBadgeService_IssueBadge(t *testing.T) {
	service, _, verified, pending := setupBadgeServiceTest(t)

	badge, err := service.IssueBadge(verified.ID, model.BadgeTopbar)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(badge.RegistrationNumber, "VF-"))

	// Issuing again returns the same badge, not a new registration.
	again, err := service.IssueBadge(verified.ID, model.BadgeTopbar)
	require.NoError(t, err)
	assert.Equal(t, badge.ID, again.ID)
	assert.Equal(t, badge.RegistrationNumber, again.RegistrationNumber)

	// Only verified stores can carry a badge.
	_, err = service.IssueBadge(pending.ID, model.BadgeTopbar)
	assert.ErrorIs(t, err, ErrStoreNotVerified)

	_, err = service.IssueBadge(9999, model.BadgeTopbar)
	assert.ErrorIs(t, err, ErrStoreNotFound)

	_, err = service.IssueBadge(verified.ID, model.BadgeType("sidebar"))
	assert.ErrorIs(t, err, ErrInvalidBadgeType)
}

func TestBadgeService_IssueDefaultBadges(t *testing.T) {
	service, _, verified, _ := setupBadgeServiceTest(t)

	badges, err := service.IssueDefaultBadges(verified.ID)
	require.NoError(t, err)
	require.Len(t, badges, 2)
	assert.NotEqual(t, badges[0].RegistrationNumber, badges[1].RegistrationNumber)

	// Second run is a no-op returning the same set.
	again, err := service.IssueDefaultBadges(verified.ID)
	require.NoError(t, err)
	require.Len(t, again, 2)
	assert.Equal(t, badges[0].RegistrationNumber, again[0].RegistrationNumber)
	assert.Equal(t, badges[1].RegistrationNumber, again[1].RegistrationNumber)
}

func TestBadgeService_Resolve(t *testing.T) {
	service, testDB, verified, _ := setupBadgeServiceTest(t)
	ctx := context.Background()

	badge, err := service.IssueBadge(verified.ID, model.BadgeFooter)
	require.NoError(t, err)

	resolution, err := service.Resolve(ctx, badge.RegistrationNumber)
	require.NoError(t, err)
	assert.True(t, resolution.Verified)
	assert.Equal(t, verified.Name, resolution.StoreName)
	assert.Equal(t, verified.URL, resolution.StoreURL)
	assert.Equal(t, badge.RegistrationNumber, resolution.RegistrationNumber)

	// Unknown registration numbers never resolve.
	_, err = service.Resolve(ctx, "VF-2026-NOTISSUED")
	assert.ErrorIs(t, err, ErrBadgeNotFound)

	_, err = service.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrBadgeNotFound)

	// A store that loses its verified state stops resolving, badge or not.
	require.NoError(t, testDB.Model(&model.Store{}).
		Where("id = ?", verified.ID).
		Update("verification_status", model.StatusRejected).Error)

	resolution, err = service.Resolve(ctx, badge.RegistrationNumber)
	require.NoError(t, err)
	assert.False(t, resolution.Verified)
	assert.Empty(t, resolution.StoreName)
}

func TestBadgeService_RenderSnippet(t *testing.T) {
	service, _, verified, _ := setupBadgeServiceTest(t)

	badge, err := service.IssueBadge(verified.ID, model.BadgeTopbar)
	require.NoError(t, err)

	store := &model.Store{Name: "Acme <Supplies>", URL: "https://acme.example.com"}

	first, err := service.RenderSnippet(badge, store)
	require.NoError(t, err)
	second, err := service.RenderSnippet(badge, store)
	require.NoError(t, err)

	// Same inputs, same markup.
	assert.Equal(t, first, second)
	assert.Contains(t, first, badge.RegistrationNumber)
	assert.Contains(t, first, "https://veryfy.link/verify-store")
	// Store names are escaped before hitting the markup.
	assert.Contains(t, first, "Acme &lt;Supplies&gt;")
	assert.NotContains(t, first, "Acme <Supplies>")

	footer := &model.VerificationBadge{
		StoreID:            verified.ID,
		BadgeType:          model.BadgeFooter,
		RegistrationNumber: "VF-2026-P3WX8YZQ",
	}
	markup, err := service.RenderSnippet(footer, store)
	require.NoError(t, err)
	assert.Contains(t, markup, "footer-seal.svg")

	// Type validation comes first, so a malformed badge reports its type
	// even when the registration number is also missing.
	_, err = service.RenderSnippet(&model.VerificationBadge{BadgeType: "sidebar"}, store)
	assert.ErrorIs(t, err, ErrInvalidBadgeType)

	_, err = service.RenderSnippet(&model.VerificationBadge{BadgeType: model.BadgeTopbar}, store)
	assert.ErrorIs(t, err, util.ErrEmptyRegistrationNumber)
}
