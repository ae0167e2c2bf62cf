package repository

import (
	"time"

	"github.com/veryfy/veryfy-backend/internal/app/model"
	"github.com/veryfy/veryfy-backend/pkg/logger"
	"gorm.io/gorm"
)

// StoreFilter narrows admin and public store listings.
type StoreFilter struct {
	Status model.VerificationStatus // zero value means all states
	Search string                   // matches name or URL
	Limit  int
	Offset int
}

type StoreRepository interface {
	Create(store *model.Store) error
	Update(store *model.Store) error
	FindByID(id uint) (*model.Store, error)
	FindByUserID(userID uint) ([]model.Store, error)
	FindAll(filter StoreFilter) ([]model.Store, int64, error)
	FindVerified() ([]model.Store, error)
	CountByStatus(status model.VerificationStatus) (int64, error)
	Count() (int64, error)
	// UpdateStatusFromPending applies a review decision only while the store
	// is still pending. The returned count is 0 when another reviewer got
	// there first (or the store does not exist).
	UpdateStatusFromPending(storeID uint, target model.VerificationStatus, reviewedBy uint, rejectionReason string, decidedAt time.Time) (int64, error)
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(store *model.Store) error {
	logger.Debug("Creating store", map[string]interface{}{
		"user_id": store.UserID,
		"name":    store.Name,
	})

	if err := r.db.Create(store).Error; err != nil {
		logger.Error("Failed to create store", err, map[string]interface{}{
			"user_id": store.UserID,
		})
		return err
	}
	return nil
}

func (r *storeRepository) Update(store *model.Store) error {
	return r.db.Save(store).Error
}

func (r *storeRepository) FindByID(id uint) (*model.Store, error) {
	var store model.Store
	err := r.db.
		Preload("Documents").
		Preload("Badges").
		First(&store, id).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindByUserID(userID uint) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.
		Preload("Documents").
		Preload("Badges").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&stores).Error
	if err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *storeRepository) FindAll(filter StoreFilter) ([]model.Store, int64, error) {
	query := r.db.Model(&model.Store{})

	if filter.Status != "" {
		query = query.Where("verification_status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR url LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var stores []model.Store
	err := query.
		Preload("Documents").
		Preload("Badges").
		Order("created_at DESC").
		Find(&stores).Error
	if err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

// FindVerified returns every verified store, used to build the scam-alert
// recipient list.
func (r *storeRepository) FindVerified() ([]model.Store, error) {
	var stores []model.Store
	err := r.db.
		Where("verification_status = ?", model.StatusVerified).
		Order("created_at DESC").
		Find(&stores).Error
	if err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *storeRepository) CountByStatus(status model.VerificationStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Store{}).
		Where("verification_status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *storeRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Store{}).Count(&count).Error
	return count, err
}

func (r *storeRepository) UpdateStatusFromPending(storeID uint, target model.VerificationStatus, reviewedBy uint, rejectionReason string, decidedAt time.Time) (int64, error) {
	updates := map[string]interface{}{
		"verification_status": target,
		"reviewed_by":         reviewedBy,
		"updated_at":          decidedAt,
	}
	if target == model.StatusVerified {
		updates["verified_at"] = decidedAt
		updates["rejection_reason"] = ""
	} else {
		updates["verified_at"] = nil
		updates["rejection_reason"] = rejectionReason
	}

	result := r.db.Model(&model.Store{}).
		Where("id = ? AND verification_status = ?", storeID, model.StatusPending).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Failed to update store verification status", result.Error, map[string]interface{}{
			"store_id": storeID,
			"target":   string(target),
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
