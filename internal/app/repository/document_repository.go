package repository

import (
	"github.com/veryfy/veryfy-backend/internal/app/model"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	CreateBatch(docs []model.VerificationDocument) error
	FindByID(id uint) (*model.VerificationDocument, error)
	FindByStoreID(storeID uint) ([]model.VerificationDocument, error)
	UpdateStatus(id uint, status model.VerificationStatus) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) CreateBatch(docs []model.VerificationDocument) error {
	if len(docs) == 0 {
		return nil
	}
	return r.db.Create(&docs).Error
}

func (r *documentRepository) FindByID(id uint) (*model.VerificationDocument, error) {
	var doc model.VerificationDocument
	if err := r.db.First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) FindByStoreID(storeID uint) ([]model.VerificationDocument, error) {
	var docs []model.VerificationDocument
	err := r.db.
		Where("store_id = ?", storeID).
		Order("created_at ASC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) UpdateStatus(id uint, status model.VerificationStatus) error {
	result := r.db.Model(&model.VerificationDocument{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
