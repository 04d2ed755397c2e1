package handlers

import (
	"uneaty-api/config"
	"uneaty-api/errs"
	"uneaty-api/models"

	"github.com/gin-gonic/gin"
)

// ListUsers returns all users, optionally filtered by role — admin only
func ListUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Find(&users).Error; err != nil {
		respondErr(c, errs.Unexpected(err))
		return
	}
	respondList(c, users, len(users))
}
