package handlers

import (
	"net/http"

	"uneaty-api/config"
	"uneaty-api/errs"
	"uneaty-api/middleware"
	"uneaty-api/models"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Name     string          `json:"name" binding:"required,max=50"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Phone    string          `json:"phone" binding:"required,len=10,numeric"`
	Role     models.UserRole `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account. Role defaults to customer and
// is immutable afterwards.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindErr(c, err)
		return
	}

	if req.Role == "" {
		req.Role = models.RoleCustomer
	}
	if !models.ValidRole(req.Role) {
		respondErr(c, errs.Validation("invalid role; must be customer, deliverer or admin"))
		return
	}

	var existing models.User
	if result := config.DB.Where("email = ?", req.Email).First(&existing); result.Error == nil {
		respondErr(c, errs.Validation("email already registered"))
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		respondErr(c, errs.Unexpected(err))
		return
	}

	if err := config.DB.Create(&user).Error; err != nil {
		respondErr(c, errs.Unexpected(err))
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		respondErr(c, errs.Unexpected(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   token,
		"data": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Login authenticates a user and returns a JWT
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindErr(c, err)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		respondErr(c, errs.Unauthorized("invalid credentials"))
		return
	}
	if !user.MatchPassword(req.Password) {
		respondErr(c, errs.Unauthorized("invalid credentials"))
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		respondErr(c, errs.Unexpected(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"data": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// GetMe returns the authenticated user's profile
func GetMe(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		respondErr(c, errs.NotFound("user not found"))
		return
	}
	respondOK(c, http.StatusOK, user)
}
