package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veryfy/veryfy-backend/internal/app/model"
	"github.com/veryfy/veryfy-backend/internal/app/repository"
	"github.com/veryfy/veryfy-backend/internal/db"
	"gorm.io/gorm"
)

func setupStoreServiceTest(t *testing.T) (StoreService, *model.User, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	storeRepo := repository.NewStoreRepository(testDB)
	docRepo := repository.NewDocumentRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	service := NewStoreService(storeRepo, docRepo, userRepo)

	merchant := &model.User{Email: "merchant@example.com", PasswordHash: "hash", Name: "Merchant", Role: model.RoleUser}
	require.NoError(t, testDB.Create(merchant).Error)

	return service, merchant, testDB
}

func validSubmission() SubmitStoreInput {
	return SubmitStoreInput{
		Name:         "Acme Supplies",
		URL:          "https://acme.example.com",
		ContactEmail: "owner@acme.example.com",
		BusinessName: "Acme LLC",
		BusinessType: "LLC",
		Documents: []DocumentInput{
			{DocumentType: model.DocumentBusinessLicense, DocumentURL: "https://cdn.example.com/license.pdf"},
			{DocumentType: model.DocumentIDDocument, DocumentURL: "https://cdn.example.com/id.png"},
		},
	}
}

func TestStoreService_SubmitStore(t *testing.T) {
	service, merchant, testDB := setupStoreServiceTest(t)

	store, err := service.SubmitStore(merchant.ID, validSubmission())
	require.NoError(t, err)
	assert.NotZero(t, store.ID)
	assert.Len(t, store.Documents, 2)

	// A fresh submission always starts pending.
	stored, err := service.GetStoreByID(store.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, stored.VerificationStatus)
	for _, doc := range stored.Documents {
		assert.Equal(t, model.StatusPending, doc.Status)
	}

	// Business details land on the merchant's profile.
	var user model.User
	require.NoError(t, testDB.First(&user, merchant.ID).Error)
	assert.Equal(t, "Acme LLC", user.BusinessName)
	assert.Equal(t, "LLC", user.BusinessType)
}

func TestStoreService_SubmitStore_Validation(t *testing.T) {
	service, merchant, _ := setupStoreServiceTest(t)

	tests := []struct {
		name    string
		mutate  func(*SubmitStoreInput)
		wantErr error
	}{
		{
			name:    "Missing name",
			mutate:  func(in *SubmitStoreInput) { in.Name = "  " },
			wantErr: ErrInvalidStoreInput,
		},
		{
			name:    "Missing URL",
			mutate:  func(in *SubmitStoreInput) { in.URL = "" },
			wantErr: ErrInvalidStoreInput,
		},
		{
			name:    "Bad contact email",
			mutate:  func(in *SubmitStoreInput) { in.ContactEmail = "not-an-email" },
			wantErr: ErrInvalidContactMail,
		},
		{
			name: "Unknown document type",
			mutate: func(in *SubmitStoreInput) {
				in.Documents[0].DocumentType = model.DocumentType("passport")
			},
			wantErr: ErrInvalidDocument,
		},
		{
			name: "Document without URL",
			mutate: func(in *SubmitStoreInput) {
				in.Documents[0].DocumentURL = ""
			},
			wantErr: ErrInvalidDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validSubmission()
			tt.mutate(&input)
			_, err := service.SubmitStore(merchant.ID, input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStoreService_GetOwnedStore(t *testing.T) {
	service, merchant, testDB := setupStoreServiceTest(t)

	other := &model.User{Email: "other@example.com", PasswordHash: "hash", Name: "Other", Role: model.RoleUser}
	require.NoError(t, testDB.Create(other).Error)

	store, err := service.SubmitStore(merchant.ID, validSubmission())
	require.NoError(t, err)

	owned, err := service.GetOwnedStore(merchant.ID, store.ID)
	require.NoError(t, err)
	assert.Equal(t, store.ID, owned.ID)

	_, err = service.GetOwnedStore(other.ID, store.ID)
	assert.ErrorIs(t, err, ErrStoreAccessDenied)

	_, err = service.GetOwnedStore(merchant.ID, 9999)
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestStoreService_AttachDocuments(t *testing.T) {
	service, merchant, _ := setupStoreServiceTest(t)

	store, err := service.SubmitStore(merchant.ID, validSubmission())
	require.NoError(t, err)

	docs, err := service.AttachDocuments(merchant.ID, store.ID, []DocumentInput{
		{DocumentType: model.DocumentUtilityBill, DocumentURL: "https://cdn.example.com/bill.pdf"},
	})
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	stored, err := service.GetStoreByID(store.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Documents, 3)

	_, err = service.AttachDocuments(merchant.ID, store.ID, []DocumentInput{
		{DocumentType: model.DocumentUtilityBill, DocumentURL: ""},
	})
	assert.ErrorIs(t, err, ErrInvalidDocument)
}
