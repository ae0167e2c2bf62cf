package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/veryfy/veryfy-backend/internal/errors"
	"github.com/veryfy/veryfy-backend/internal/middleware"
	"github.com/veryfy/veryfy-backend/internal/storage"
)

// uploadFolders maps the purpose query parameter to a bucket prefix.
var uploadFolders = map[string]string{
	"document": "documents",
	"evidence": "evidence",
	"logo":     "logos",
}

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(storage *storage.S3Storage) *UploadController {
	return &UploadController{storage: storage}
}

type PresignRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	FileSize    int64  `json:"file_size" binding:"required"`
	Purpose     string `json:"purpose" binding:"required"`
}

// Presign issues a short-lived PUT URL for a direct-to-bucket upload
// POST /api/v1/uploads/presigned-url
func (ctrl *UploadController) Presign(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "File name, content type, size, and purpose are required")
		return
	}

	folder, ok := uploadFolders[req.Purpose]
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Purpose must be document, evidence, or logo")
		return
	}

	if err := ctrl.storage.ValidateContentType(req.ContentType); err != nil {
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only PDF and image files can be uploaded")
		return
	}

	if err := ctrl.storage.ValidateFileSize(req.FileSize); err != nil {
		apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "Files must be 5MB or smaller")
		return
	}

	presigned, err := ctrl.storage.GeneratePresignedURL(req.FileName, req.ContentType, folder)
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"file_name": req.FileName,
			"purpose":   req.Purpose,
		})
		apperrors.InternalError(c, "Failed to prepare upload")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload": presigned,
	})
}
