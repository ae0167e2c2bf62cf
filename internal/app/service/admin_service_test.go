package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veryfy/veryfy-backend/internal/app/model"
	"github.com/veryfy/veryfy-backend/internal/app/repository"
	"github.com/veryfy/veryfy-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

func TestAdminService_GetDashboardStats(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	storeRepo := repository.NewStoreRepository(testDB)
	reportRepo := repository.NewReportRepository(testDB)
	service := NewAdminService(storeRepo, reportRepo)

	owner := &model.User{Email: "merchant@example.com", PasswordHash: "hash", Name: "Merchant", Role: model.RoleUser}
	require.NoError(t, testDB.Create(owner).Error)

	for _, status := range []model.VerificationStatus{
		model.StatusPending, model.StatusPending, model.StatusVerified, model.StatusRejected,
	} {
		require.NoError(t, testDB.Create(&model.Store{
			UserID:             owner.ID,
			Name:               "Store",
			URL:                "https://example.com",
			VerificationStatus: status,
		}).Error)
	}

	require.NoError(t, testDB.Create(&model.ScamReport{
		ReporterID:    owner.ID,
		ReportedEmail: "scammer@example.com",
		Description:   "Chargeback fraud on a bulk order.",
		Status:        model.ReportPending,
	}).Error)

	stats, err := service.GetDashboardStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.PendingVerifications)
	assert.Equal(t, int64(1), stats.VerifiedStores)
	assert.Equal(t, int64(1), stats.RejectedStores)
	assert.Equal(t, int64(4), stats.TotalStores)
	assert.Equal(t, int64(1), stats.PendingReports)
}

func TestAdminService_ExportReportsXLSX(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	storeRepo := repository.NewStoreRepository(testDB)
	reportRepo := repository.NewReportRepository(testDB)
	service := NewAdminService(storeRepo, reportRepo)

	reporter := &model.User{Email: "reporter@example.com", PasswordHash: "hash", Name: "Reporter", Role: model.RoleUser}
	require.NoError(t, testDB.Create(reporter).Error)

	require.NoError(t, testDB.Create(&model.ScamReport{
		ReporterID:    reporter.ID,
		ReportedEmail: "scammer@example.com",
		Description:   "Chargeback fraud on a bulk order.",
		Status:        model.ReportPending,
	}).Error)

	data, err := service.ExportReportsXLSX(repository.ReportFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// The export opens as a spreadsheet with a header and one data row.
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Reported Email", rows[0][1])
	assert.Equal(t, "scammer@example.com", rows[1][1])
	assert.Equal(t, "reporter@example.com", rows[1][4])
}
