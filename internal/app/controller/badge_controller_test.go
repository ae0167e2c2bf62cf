package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veryfy/veryfy-backend/config"
	"github.com/veryfy/veryfy-backend/internal/app/model"
	"github.com/veryfy/veryfy-backend/internal/app/repository"
	"github.com/veryfy/veryfy-backend/internal/app/service"
	"github.com/veryfy/veryfy-backend/internal/db"
	"gorm.io/gorm"
)

func setupBadgeControllerTest(t *testing.T) (*gin.Engine, service.BadgeService, *model.Store, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	owner := &model.User{Email: "owner@example.com", PasswordHash: "hash", Name: "Owner", Role: "user"}
	require.NoError(t, testDB.Create(owner).Error)

	now := time.Now()
	store := &model.Store{
		UserID:             owner.ID,
		Name:               "Acme Supplies",
		URL:                "https://acme.example.com",
		VerificationStatus: model.StatusVerified,
		VerifiedAt:         &now,
	}
	require.NoError(t, testDB.Create(store).Error)

	badgeService := service.NewBadgeService(
		repository.NewBadgeRepository(testDB),
		repository.NewStoreRepository(testDB),
		&config.BadgeConfig{
			VerifyBaseURL: "https://veryfy.link/verify-store",
			WidgetBaseURL: "https://veryfy.link/widget",
		},
	)

	ctrl := NewBadgeController(badgeService)

	router := gin.New()
	router.GET("/badges/resolve/:registration_number", ctrl.Resolve)

	return router, badgeService, store, testDB
}

func TestBadgeController_Resolve_Verified(t *testing.T) {
	router, badgeService, store, _ := setupBadgeControllerTest(t)

	badge, err := badgeService.IssueBadge(store.ID, model.BadgeTopbar)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/badges/resolve/"+badge.RegistrationNumber, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resolution map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &resolution)
	require.NoError(t, err)

	assert.Equal(t, true, resolution["verified"])
	assert.Equal(t, badge.RegistrationNumber, resolution["registration_number"])
	assert.Equal(t, "Acme Supplies", resolution["store_name"])
}

func TestBadgeController_Resolve_Unknown(t *testing.T) {
	router, _, _, _ := setupBadgeControllerTest(t)

	req := httptest.NewRequest("GET", "/badges/resolve/VF-2026-XXXXXXXX", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "BADGE_NOT_FOUND")
}

func TestBadgeController_Resolve_RevokedStore(t *testing.T) {
	router, badgeService, store, testDB := setupBadgeControllerTest(t)

	badge, err := badgeService.IssueBadge(store.ID, model.BadgeFooter)
	require.NoError(t, err)

	// Revoke verification after issuance; the badge must resolve unverified.
	err = testDB.Model(&model.Store{}).
		Where("id = ?", store.ID).
		Update("verification_status", model.StatusRejected).Error
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/badges/resolve/"+badge.RegistrationNumber, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resolution map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &resolution)
	require.NoError(t, err)

	assert.Equal(t, false, resolution["verified"])
}
