package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"time"

	"github.com/veryfy/veryfy-backend/config"
	"github.com/veryfy/veryfy-backend/internal/app/model"
	"github.com/veryfy/veryfy-backend/internal/app/repository"
	"github.com/veryfy/veryfy-backend/pkg/logger"
	"github.com/veryfy/veryfy-backend/pkg/redis"
	"github.com/veryfy/veryfy-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrBadgeNotFound     = errors.New("badge not found")
	ErrInvalidBadgeType  = errors.New("invalid badge type")
	ErrStoreNotVerified  = errors.New("store is not verified")
	ErrRegistrationClash = errors.New("could not allocate a unique registration number")
)

// registrationRetries bounds how often issuance regenerates after a
// registration number collision.
const registrationRetries = 3

// BadgeResolution is the public payload behind an embedded badge. Verified
// reflects the store's state at resolve time, not at issuance.
type BadgeResolution struct {
	Verified           bool            `json:"verified"`
	RegistrationNumber string          `json:"registration_number"`
	BadgeType          model.BadgeType `json:"badge_type,omitempty"`
	StoreName          string          `json:"store_name,omitempty"`
	StoreURL           string          `json:"store_url,omitempty"`
	VerifiedAt         *time.Time      `json:"verified_at,omitempty"`
}

type BadgeService interface {
	// IssueDefaultBadges mints the standard badge set for a freshly verified
	// store. Variants that already exist are returned untouched.
	IssueDefaultBadges(storeID uint) ([]model.VerificationBadge, error)
	IssueBadge(storeID uint, badgeType model.BadgeType) (*model.VerificationBadge, error)
	GetStoreBadges(storeID uint) ([]model.VerificationBadge, error)
	Resolve(ctx context.Context, registrationNumber string) (*BadgeResolution, error)
	RenderSnippet(badge *model.VerificationBadge, store *model.Store) (string, error)
}

type badgeService struct {
	badgeRepo repository.BadgeRepository
	storeRepo repository.StoreRepository
	cfg       *config.BadgeConfig
}

func NewBadgeService(
	badgeRepo repository.BadgeRepository,
	storeRepo repository.StoreRepository,
	cfg *config.BadgeConfig,
) BadgeService {
	return &badgeService{
		badgeRepo: badgeRepo,
		storeRepo: storeRepo,
		cfg:       cfg,
	}
}

func (s *badgeService) IssueDefaultBadges(storeID uint) ([]model.VerificationBadge, error) {
	badges := make([]model.VerificationBadge, 0, len(model.DefaultBadgeTypes))
	for _, badgeType := range model.DefaultBadgeTypes {
		badge, err := s.IssueBadge(storeID, badgeType)
		if err != nil {
			return nil, err
		}
		badges = append(badges, *badge)
	}
	return badges, nil
}

// IssueBadge mints one badge variant for a verified store. Calling it again
// for the same store and variant returns the existing badge instead of
// minting a second one.
func (s *badgeService) IssueBadge(storeID uint, badgeType model.BadgeType) (*model.VerificationBadge, error) {
	if !badgeType.Valid() {
		return nil, ErrInvalidBadgeType
	}

	store, err := s.storeRepo.FindByID(storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	if store.VerificationStatus != model.StatusVerified {
		return nil, ErrStoreNotVerified
	}

	existing, err := s.badgeRepo.FindByStoreAndType(storeID, badgeType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	for attempt := 0; attempt < registrationRetries; attempt++ {
		registrationNumber, err := util.GenerateRegistrationNumber()
		if err != nil {
			return nil, err
		}

		badge := &model.VerificationBadge{
			StoreID:            storeID,
			BadgeType:          badgeType,
			RegistrationNumber: registrationNumber,
		}
		if err := s.badgeRepo.Create(badge); err != nil {
			// A concurrent issuance may have won the (store, variant) slot.
			existing, findErr := s.badgeRepo.FindByStoreAndType(storeID, badgeType)
			if findErr == nil && existing != nil {
				return existing, nil
			}
			// Otherwise assume a registration number collision and retry.
			logger.Warn("Badge creation failed, retrying with new registration number", map[string]interface{}{
				"store_id":   storeID,
				"badge_type": string(badgeType),
				"attempt":    attempt + 1,
				"error":      err.Error(),
			})
			continue
		}

		logger.Info("Badge issued", map[string]interface{}{
			"store_id":            storeID,
			"badge_type":          string(badgeType),
			"registration_number": badge.RegistrationNumber,
		})
		return badge, nil
	}

	return nil, ErrRegistrationClash
}

func (s *badgeService) GetStoreBadges(storeID uint) ([]model.VerificationBadge, error) {
	return s.badgeRepo.FindByStoreID(storeID)
}

// Resolve answers "is this registration number backed by a currently
// verified store". Every failure mode resolves to not-verified or an error,
// never to a false positive.
func (s *badgeService) Resolve(ctx context.Context, registrationNumber string) (*BadgeResolution, error) {
	if registrationNumber == "" {
		return nil, ErrBadgeNotFound
	}

	if cached, err := redis.GetCachedBadgeResolution(ctx, registrationNumber); err == nil && cached != nil {
		var resolution BadgeResolution
		if err := json.Unmarshal(cached, &resolution); err == nil {
			return &resolution, nil
		}
	}

	badge, err := s.badgeRepo.FindByRegistrationNumber(registrationNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadgeNotFound
		}
		return nil, err
	}

	resolution := &BadgeResolution{
		RegistrationNumber: badge.RegistrationNumber,
		BadgeType:          badge.BadgeType,
	}

	// The badge row carries its store, but re-read the current state: a
	// store that lost verification keeps its badge rows and must still
	// resolve to not-verified.
	store, err := s.storeRepo.FindByID(badge.StoreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resolution, nil
		}
		return nil, err
	}

	if store.VerificationStatus == model.StatusVerified {
		resolution.Verified = true
		resolution.StoreName = store.Name
		resolution.StoreURL = store.URL
		resolution.VerifiedAt = store.VerifiedAt
	}

	if payload, err := json.Marshal(resolution); err == nil {
		if err := redis.CacheBadgeResolution(ctx, registrationNumber, payload, s.cfg.ResolveCacheTTL); err != nil {
			logger.Debug("Badge resolution cache write failed", map[string]interface{}{
				"registration_number": registrationNumber,
				"error":               err.Error(),
			})
		}
	}

	return resolution, nil
}

// RenderSnippet produces the copy-paste embed markup for a badge. The output
// is deterministic for a given badge and store.
func (s *badgeService) RenderSnippet(badge *model.VerificationBadge, store *model.Store) (string, error) {
	if !badge.BadgeType.Valid() {
		return "", ErrInvalidBadgeType
	}

	verifyURL, err := util.BuildVerifyURL(s.cfg.VerifyBaseURL, badge.RegistrationNumber)
	if err != nil {
		return "", err
	}

	storeName := html.EscapeString(store.Name)

	switch badge.BadgeType {
	case model.BadgeTopbar:
		return fmt.Sprintf(
			`<div class="veryfy-topbar" data-registration="%s">`+
				`<a href="%s" target="_blank" rel="noopener">✓ %s is a Veryfy verified store — Registration %s</a>`+
				`</div>`+
				`<script async src="%s/topbar.js"></script>`,
			badge.RegistrationNumber, verifyURL, storeName, badge.RegistrationNumber, s.cfg.WidgetBaseURL,
		), nil
	case model.BadgeFooter:
		return fmt.Sprintf(
			`<div class="veryfy-footer" data-registration="%s">`+
				`<a href="%s" target="_blank" rel="noopener">`+
				`<img src="%s/footer-seal.svg" alt="Veryfy verified store" width="120" height="120" />`+
				`</a>`+
				`<span>Registration %s</span>`+
				`</div>`,
			badge.RegistrationNumber, verifyURL, s.cfg.WidgetBaseURL, badge.RegistrationNumber,
		), nil
	default:
		return "", ErrInvalidBadgeType
	}
}
