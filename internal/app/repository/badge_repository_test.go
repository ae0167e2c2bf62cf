package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veryfy/veryfy-backend/internal/app/model"
	"github.com/veryfy/veryfy-backend/internal/db"
	"gorm.io/gorm"
)

func setupBadgeTest(t *testing.T) (*gorm.DB, BadgeRepository, *model.Store) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	owner := &model.User{
		Email:        "merchant@example.com",
		PasswordHash: "hashedpassword",
		Name:         "Merchant",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(owner).Error)

	store := &model.Store{
		UserID:             owner.ID,
		Name:               "Acme Supplies",
		URL:                "https://acme.example.com",
		VerificationStatus: model.StatusVerified,
	}
	require.NoError(t, testDB.Create(store).Error)

	repo := NewBadgeRepository(testDB)
	return testDB, repo, store
}

func TestBadgeRepository_Create(t *testing.T) {
	testDB, repo, store := setupBadgeTest(t)
	defer db.CleanupTestDB(testDB)

	badge := &model.VerificationBadge{
		StoreID:            store.ID,
		BadgeType:          model.BadgeTopbar,
		RegistrationNumber: "VF-2026-K7Q2M4XR",
	}
	err := repo.Create(badge)
	require.NoError(t, err)
	assert.NotZero(t, badge.ID)

	// Same store and variant again violates the unique index.
	dup := &model.VerificationBadge{
		StoreID:            store.ID,
		BadgeType:          model.BadgeTopbar,
		RegistrationNumber: "VF-2026-AAAAAAAA",
	}
	assert.Error(t, repo.Create(dup))

	// Reusing a registration number on a different variant also fails.
	clash := &model.VerificationBadge{
		StoreID:            store.ID,
		BadgeType:          model.BadgeFooter,
		RegistrationNumber: "VF-2026-K7Q2M4XR",
	}
	assert.Error(t, repo.Create(clash))
}

func TestBadgeRepository_FindByStoreAndType(t *testing.T) {
	testDB, repo, store := setupBadgeTest(t)
	defer db.CleanupTestDB(testDB)

	badge := &model.VerificationBadge{
		StoreID:            store.ID,
		BadgeType:          model.BadgeTopbar,
		RegistrationNumber: "VF-2026-K7Q2M4XR",
	}
	require.NoError(t, repo.Create(badge))

	found, err := repo.FindByStoreAndType(store.ID, model.BadgeTopbar)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, badge.RegistrationNumber, found.RegistrationNumber)

	// Absent variant is not an error.
	missing, err := repo.FindByStoreAndType(store.ID, model.BadgeFooter)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBadgeRepository_FindByRegistrationNumber(t *testing.T) {
	testDB, repo, store := setupBadgeTest(t)
	defer db.CleanupTestDB(testDB)

	badge := &model.VerificationBadge{
		StoreID:            store.ID,
		BadgeType:          model.BadgeFooter,
		RegistrationNumber: "VF-2026-P3WX8YZQ",
	}
	require.NoError(t, repo.Create(badge))

	found, err := repo.FindByRegistrationNumber("VF-2026-P3WX8YZQ")
	require.NoError(t, err)
	assert.Equal(t, store.ID, found.StoreID)
	assert.Equal(t, store.Name, found.Store.Name)

	_, err = repo.FindByRegistrationNumber("VF-2026-NOTISSUED")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
