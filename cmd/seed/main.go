package main

import (
	"errors"
	"fmt"
	"log"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/veryfy/veryfy-backend/config"
	"github.com/veryfy/veryfy-backend/internal/app/model"
	"github.com/veryfy/veryfy-backend/internal/app/repository"
	"github.com/veryfy/veryfy-backend/internal/app/service"
	"github.com/veryfy/veryfy-backend/internal/db"
	"github.com/veryfy/veryfy-backend/pkg/util"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Imports pre-verified merchants from an XLSX export, one row per store:
// owner email | owner name | store name | store URL | contact email
// Missing owner accounts are created with a random password; owners reset
// it through the normal flow before first login.

type seedRow struct {
	OwnerEmail   string
	OwnerName    string
	StoreName    string
	StoreURL     string
	ContactEmail string
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, err := readSeedRows(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total stores to import: %d\n", len(rows))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	userRepo := repository.NewUserRepository(db.GetDB())
	storeRepo := repository.NewStoreRepository(db.GetDB())
	badgeRepo := repository.NewBadgeRepository(db.GetDB())
	badgeService := service.NewBadgeService(badgeRepo, storeRepo, &cfg.Badge)

	imported := 0
	for _, row := range rows {
		if err := importStore(userRepo, storeRepo, badgeService, row); err != nil {
			fmt.Printf("  skipped %s: %v\n", row.StoreName, err)
			continue
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total stores imported: %d\n", imported)
}

func readSeedRows(filePath string) ([]seedRow, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var result []seedRow
	seen := make(map[string]bool)
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 4 {
			skipped++
			continue
		}

		r := seedRow{
			OwnerEmail: strings.TrimSpace(row[0]),
			OwnerName:  strings.TrimSpace(row[1]),
			StoreName:  strings.TrimSpace(row[2]),
			StoreURL:   strings.TrimSpace(row[3]),
		}
		if len(row) > 4 {
			r.ContactEmail = strings.TrimSpace(row[4])
		}

		if r.OwnerEmail == "" || r.StoreName == "" || r.StoreURL == "" {
			skipped++
			continue
		}
		if _, err := mail.ParseAddress(r.OwnerEmail); err != nil {
			skipped++
			continue
		}
		if r.ContactEmail != "" {
			if _, err := mail.ParseAddress(r.ContactEmail); err != nil {
				skipped++
				continue
			}
		}

		// Dedupe on owner + store URL
		key := fmt.Sprintf("%s|%s", r.OwnerEmail, r.StoreURL)
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true

		result = append(result, r)
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid stores: %d\n", len(result))
	fmt.Printf("  Skipped rows: %d\n", skipped)

	return result, nil
}

func importStore(
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	badgeService service.BadgeService,
	row seedRow,
) error {
	owner, err := userRepo.FindByEmail(row.OwnerEmail)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up owner: %w", err)
	}

	if owner == nil {
		placeholder, err := util.GenerateRegistrationNumber()
		if err != nil {
			return fmt.Errorf("failed to generate placeholder password: %w", err)
		}
		hashed, err := util.HashPassword(placeholder)
		if err != nil {
			return fmt.Errorf("failed to hash placeholder password: %w", err)
		}

		name := row.OwnerName
		if name == "" {
			name = row.StoreName
		}

		owner = &model.User{
			Email:        row.OwnerEmail,
			PasswordHash: hashed,
			Name:         name,
			Role:         model.RoleUser,
		}
		if err := userRepo.Create(owner); err != nil {
			return fmt.Errorf("failed to create owner account: %w", err)
		}
	}

	now := time.Now()
	store := &model.Store{
		UserID:             owner.ID,
		Name:               row.StoreName,
		URL:                row.StoreURL,
		ContactEmail:       row.ContactEmail,
		VerificationStatus: model.StatusVerified,
		VerifiedAt:         &now,
	}
	if err := storeRepo.Create(store); err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	if _, err := badgeService.IssueDefaultBadges(store.ID); err != nil {
		return fmt.Errorf("failed to issue badges: %w", err)
	}

	return nil
}
