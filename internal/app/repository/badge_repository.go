package repository

import (
	"errors"

	"github.com/veryfy/veryfy-backend/internal/app/model"
	"gorm.io/gorm"
)

type BadgeRepository interface {
	Create(badge *model.VerificationBadge) error
	FindByID(id uint) (*model.VerificationBadge, error)
	FindByStoreID(storeID uint) ([]model.VerificationBadge, error)
	FindByStoreAndType(storeID uint, badgeType model.BadgeType) (*model.VerificationBadge, error)
	FindByRegistrationNumber(registrationNumber string) (*model.VerificationBadge, error)
}

type badgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) Create(badge *model.VerificationBadge) error {
	return r.db.Create(badge).Error
}

func (r *badgeRepository) FindByID(id uint) (*model.VerificationBadge, error) {
	var badge model.VerificationBadge
	if err := r.db.First(&badge, id).Error; err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *badgeRepository) FindByStoreID(storeID uint) ([]model.VerificationBadge, error) {
	var badges []model.VerificationBadge
	err := r.db.
		Where("store_id = ?", storeID).
		Order("badge_type ASC").
		Find(&badges).Error
	if err != nil {
		return nil, err
	}
	return badges, nil
}

// FindByStoreAndType returns (nil, nil) when no badge of that variant exists,
// so issuance can distinguish "mint one" from a lookup failure.
func (r *badgeRepository) FindByStoreAndType(storeID uint, badgeType model.BadgeType) (*model.VerificationBadge, error) {
	var badge model.VerificationBadge
	err := r.db.
		Where("store_id = ? AND badge_type = ?", storeID, badgeType).
		First(&badge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *badgeRepository) FindByRegistrationNumber(registrationNumber string) (*model.VerificationBadge, error) {
	var badge model.VerificationBadge
	err := r.db.
		Preload("Store").
		Where("registration_number = ?", registrationNumber).
		First(&badge).Error
	if err != nil {
		return nil, err
	}
	return &badge, nil
}
