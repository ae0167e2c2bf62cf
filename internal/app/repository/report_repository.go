package repository

import (
	"github.com/veryfy/veryfy-backend/internal/app/model"
	"gorm.io/gorm"
)

// ReportFilter narrows admin report listings.
type ReportFilter struct {
	Status model.ReportStatus // zero value means all states
	Limit  int
	Offset int
}

type ReportRepository interface {
	Create(report *model.ScamReport) error
	FindByID(id uint) (*model.ScamReport, error)
	FindByReporterID(reporterID uint) ([]model.ScamReport, error)
	FindAll(filter ReportFilter) ([]model.ScamReport, int64, error)
	UpdateStatus(id uint, status model.ReportStatus, reviewedBy uint) error
	CountByStatus(status model.ReportStatus) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *model.ScamReport) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) FindByID(id uint) (*model.ScamReport, error) {
	var report model.ScamReport
	err := r.db.Preload("Reporter").First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindByReporterID(reporterID uint) ([]model.ScamReport, error) {
	var reports []model.ScamReport
	err := r.db.
		Where("reporter_id = ?", reporterID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) FindAll(filter ReportFilter) ([]model.ScamReport, int64, error) {
	query := r.db.Model(&model.ScamReport{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var reports []model.ScamReport
	err := query.
		Preload("Reporter").
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *reportRepository) UpdateStatus(id uint, status model.ReportStatus, reviewedBy uint) error {
	result := r.db.Model(&model.ScamReport{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reportRepository) CountByStatus(status model.ReportStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.ScamReport{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
