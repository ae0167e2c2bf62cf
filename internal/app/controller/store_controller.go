package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/veryfy/veryfy-backend/internal/app/model"
	"github.com/veryfy/veryfy-backend/internal/app/service"
	apperrors "github.com/veryfy/veryfy-backend/internal/errors"
	"github.com/veryfy/veryfy-backend/internal/middleware"
)

type StoreController struct {
	storeService service.StoreService
	badgeService service.BadgeService
}

func NewStoreController(storeService service.StoreService, badgeService service.BadgeService) *StoreController {
	return &StoreController{
		storeService: storeService,
		badgeService: badgeService,
	}
}

type SubmitStoreRequest struct {
	Name         string `json:"name" binding:"required"`
	URL          string `json:"url" binding:"required,url"`
	LogoURL      string `json:"logo_url"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	BusinessName string `json:"business_name"`
	BusinessType string `json:"business_type"`
	Documents    []struct {
		DocumentType string `json:"document_type" binding:"required"`
		DocumentURL  string `json:"document_url" binding:"required,url"`
	} `json:"documents"`
}

type AttachDocumentsRequest struct {
	Documents []struct {
		DocumentType string `json:"document_type" binding:"required"`
		DocumentURL  string `json:"document_url" binding:"required,url"`
	} `json:"documents" binding:"required,min=1"`
}

// SubmitStore files a verification request for a new store
// POST /api/v1/stores
func (ctrl *StoreController) SubmitStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req SubmitStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid store submission", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid store details")
		return
	}

	input := service.SubmitStoreInput{
		Name:         req.Name,
		URL:          req.URL,
		LogoURL:      req.LogoURL,
		ContactEmail: req.ContactEmail,
		BusinessName: req.BusinessName,
		BusinessType: req.BusinessType,
	}
	for _, doc := range req.Documents {
		input.Documents = append(input.Documents, service.DocumentInput{
			DocumentType: model.DocumentType(doc.DocumentType),
			DocumentURL:  doc.DocumentURL,
		})
	}

	store, err := ctrl.storeService.SubmitStore(userID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStoreInput):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Store name and URL are required")
		case errors.Is(err, service.ErrInvalidContactMail):
			apperrors.BadRequest(c, apperrors.ValidationInvalidEmail, "Contact email is not a valid address")
		case errors.Is(err, service.ErrInvalidDocument):
			apperrors.BadRequest(c, apperrors.DocumentInvalidType, "A document has an unknown type or missing URL")
		default:
			log.Error("Store submission failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "submit store")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Store submitted for verification",
		"store":   store,
	})
}

// GetMyStores lists the authenticated merchant's stores
// GET /api/v1/stores/mine
func (ctrl *StoreController) GetMyStores(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	stores, err := ctrl.storeService.GetStoresByUserID(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list stores")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

// GetStore returns one of the merchant's stores with documents and badges
// GET /api/v1/stores/:id
func (ctrl *StoreController) GetStore(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	storeID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid store ID")
		return
	}

	store, err := ctrl.storeService.GetOwnedStore(userID, storeID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"store": store})
}

// AttachDocuments adds more evidence to a pending submission
// POST /api/v1/stores/:id/documents
func (ctrl *StoreController) AttachDocuments(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	storeID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid store ID")
		return
	}

	var req AttachDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "At least one document is required")
		return
	}

	docs := make([]service.DocumentInput, 0, len(req.Documents))
	for _, doc := range req.Documents {
		docs = append(docs, service.DocumentInput{
			DocumentType: model.DocumentType(doc.DocumentType),
			DocumentURL:  doc.DocumentURL,
		})
	}

	created, err := ctrl.storeService.AttachDocuments(userID, storeID, docs)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDocument) {
			apperrors.BadRequest(c, apperrors.DocumentInvalidType, "A document has an unknown type or missing URL")
			return
		}
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Documents attached",
		"documents": created,
	})
}

// GetBadges returns the store's badges with ready-to-embed markup
// GET /api/v1/stores/:id/badges
func (ctrl *StoreController) GetBadges(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	storeID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid store ID")
		return
	}

	store, err := ctrl.storeService.GetOwnedStore(userID, storeID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	badges, err := ctrl.badgeService.GetStoreBadges(store.ID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list badges")
		return
	}

	out := make([]gin.H, 0, len(badges))
	for i := range badges {
		snippet, err := ctrl.badgeService.RenderSnippet(&badges[i], store)
		if err != nil {
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "render badge")
			return
		}
		out = append(out, gin.H{
			"badge":   badges[i],
			"snippet": snippet,
		})
	}

	c.JSON(http.StatusOK, gin.H{"badges": out})
}

func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStoreNotFound):
		apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
	case errors.Is(err, service.ErrStoreAccessDenied):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "You do not own this store")
	default:
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "store")
	}
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
