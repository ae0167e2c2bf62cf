package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/veryfy/veryfy-backend/internal/app/model"
)

// userResponse shapes a user for API responses; the password hash never
// leaves the model layer anyway, this trims associations too.
func userResponse(user *model.User) gin.H {
	return gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"name":          user.Name,
		"business_name": user.BusinessName,
		"business_type": user.BusinessType,
		"role":          user.Role,
		"created_at":    user.CreatedAt,
	}
}
