package service

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/veryfy/veryfy-backend/internal/app/model"
	"github.com/veryfy/veryfy-backend/internal/app/repository"
	"github.com/veryfy/veryfy-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrStoreNotFound      = errors.New("store not found")
	ErrStoreAccessDenied  = errors.New("store access denied")
	ErrInvalidStoreInput  = errors.New("store name and URL are required")
	ErrInvalidContactMail = errors.New("contact email is not a valid address")
	ErrInvalidDocument    = errors.New("document type or URL is invalid")
)

// DocumentInput is one uploaded evidence file attached at submission time.
type DocumentInput struct {
	DocumentType model.DocumentType `json:"document_type"`
	DocumentURL  string             `json:"document_url"`
}

// SubmitStoreInput is everything a merchant provides when requesting
// verification.
type SubmitStoreInput struct {
	Name         string          `json:"name"`
	URL          string          `json:"url"`
	LogoURL      string          `json:"logo_url"`
	ContactEmail string          `json:"contact_email"`
	BusinessName string          `json:"business_name"`
	BusinessType string          `json:"business_type"`
	Documents    []DocumentInput `json:"documents"`
}

type StoreService interface {
	SubmitStore(userID uint, input SubmitStoreInput) (*model.Store, error)
	GetStoreByID(id uint) (*model.Store, error)
	GetOwnedStore(userID, storeID uint) (*model.Store, error)
	GetStoresByUserID(userID uint) ([]model.Store, error)
	ListStores(filter repository.StoreFilter) ([]model.Store, int64, error)
	AttachDocuments(userID, storeID uint, docs []DocumentInput) ([]model.VerificationDocument, error)
}

type storeService struct {
	storeRepo repository.StoreRepository
	docRepo   repository.DocumentRepository
	userRepo  repository.UserRepository
}

func NewStoreService(
	storeRepo repository.StoreRepository,
	docRepo repository.DocumentRepository,
	userRepo repository.UserRepository,
) StoreService {
	return &storeService{
		storeRepo: storeRepo,
		docRepo:   docRepo,
		userRepo:  userRepo,
	}
}

// SubmitStore creates a store in the pending state together with its
// verification documents. Business details ride along onto the merchant's
// profile.
func (s *storeService) SubmitStore(userID uint, input SubmitStoreInput) (*model.Store, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.URL = strings.TrimSpace(input.URL)
	input.ContactEmail = strings.TrimSpace(input.ContactEmail)

	if input.Name == "" || input.URL == "" {
		return nil, ErrInvalidStoreInput
	}
	if input.ContactEmail != "" {
		if _, err := mail.ParseAddress(input.ContactEmail); err != nil {
			return nil, ErrInvalidContactMail
		}
	}
	for _, doc := range input.Documents {
		if !doc.DocumentType.Valid() || strings.TrimSpace(doc.DocumentURL) == "" {
			return nil, ErrInvalidDocument
		}
	}

	store := &model.Store{
		UserID:             userID,
		Name:               input.Name,
		URL:                input.URL,
		LogoURL:            input.LogoURL,
		ContactEmail:       input.ContactEmail,
		VerificationStatus: model.StatusPending,
	}
	for _, doc := range input.Documents {
		store.Documents = append(store.Documents, model.VerificationDocument{
			DocumentType: doc.DocumentType,
			DocumentURL:  doc.DocumentURL,
			Status:       model.StatusPending,
		})
	}

	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}

	if input.BusinessName != "" || input.BusinessType != "" {
		if err := s.updateBusinessProfile(userID, input.BusinessName, input.BusinessType); err != nil {
			// The store submission already succeeded; the profile detail is
			// secondary.
			logger.Warn("Failed to update business profile after submission", map[string]interface{}{
				"user_id":  userID,
				"store_id": store.ID,
				"error":    err.Error(),
			})
		}
	}

	logger.Info("Store submitted for verification", map[string]interface{}{
		"store_id":  store.ID,
		"user_id":   userID,
		"documents": len(store.Documents),
	})

	return store, nil
}

func (s *storeService) updateBusinessProfile(userID uint, businessName, businessType string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if businessName != "" {
		user.BusinessName = businessName
	}
	if businessType != "" {
		user.BusinessType = businessType
	}
	return s.userRepo.Update(user)
}

func (s *storeService) GetStoreByID(id uint) (*model.Store, error) {
	store, err := s.storeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return store, nil
}

// GetOwnedStore fetches a store and enforces ownership.
func (s *storeService) GetOwnedStore(userID, storeID uint) (*model.Store, error) {
	store, err := s.GetStoreByID(storeID)
	if err != nil {
		return nil, err
	}
	if store.UserID != userID {
		return nil, ErrStoreAccessDenied
	}
	return store, nil
}

func (s *storeService) GetStoresByUserID(userID uint) ([]model.Store, error) {
	return s.storeRepo.FindByUserID(userID)
}

func (s *storeService) ListStores(filter repository.StoreFilter) ([]model.Store, int64, error) {
	return s.storeRepo.FindAll(filter)
}

// AttachDocuments adds extra evidence to an existing submission, e.g. after
// an admin asks for more paperwork.
func (s *storeService) AttachDocuments(userID, storeID uint, docs []DocumentInput) ([]model.VerificationDocument, error) {
	store, err := s.GetOwnedStore(userID, storeID)
	if err != nil {
		return nil, err
	}

	records := make([]model.VerificationDocument, 0, len(docs))
	for _, doc := range docs {
		if !doc.DocumentType.Valid() || strings.TrimSpace(doc.DocumentURL) == "" {
			return nil, ErrInvalidDocument
		}
		records = append(records, model.VerificationDocument{
			StoreID:      store.ID,
			DocumentType: doc.DocumentType,
			DocumentURL:  doc.DocumentURL,
			Status:       model.StatusPending,
		})
	}

	if err := s.docRepo.CreateBatch(records); err != nil {
		return nil, err
	}

	logger.Info("Documents attached to store", map[string]interface{}{
		"store_id": store.ID,
		"count":    len(records),
	})

	return records, nil
}
