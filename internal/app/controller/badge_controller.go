package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veryfy/veryfy-backend/internal/app/service"
	apperrors "github.com/veryfy/veryfy-backend/internal/errors"
)

type BadgeController struct {
	badgeService service.BadgeService
}

func NewBadgeController(badgeService service.BadgeService) *BadgeController {
	return &BadgeController{
		badgeService: badgeService,
	}
}

// Resolve is the public endpoint behind every embedded badge. It answers
// whether a registration number belongs to a currently verified store.
// GET /api/v1/badges/resolve/:registration_number
func (ctrl *BadgeController) Resolve(c *gin.Context) {
	registrationNumber := c.Param("registration_number")

	resolution, err := ctrl.badgeService.Resolve(c.Request.Context(), registrationNumber)
	if err != nil {
		if errors.Is(err, service.ErrBadgeNotFound) {
			// Unknown numbers resolve to nothing rather than leaking whether
			// they were ever issued.
			apperrors.NotFound(c, apperrors.BadgeNotFound, "No badge found for this registration number")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "resolve badge")
		return
	}

	c.JSON(http.StatusOK, resolution)
}
