package handler

import (
	"errors"
	"net/http"

	"gogett/internal/auth"
	"gogett/internal/middleware"
	"gogett/internal/repository"
	"gogett/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
	couriers    *repository.CourierRepository
}

func NewAuthHandler(authService *service.AuthService, couriers *repository.CourierRepository) *AuthHandler {
	return &AuthHandler{authService: authService, couriers: couriers}
}

// Register issues a confirmation code for the phone number, creating the
// courier account on first contact.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		ContactNo string `json:"contact_no" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "contact_no required"})
		return
	}
	result, err := h.authService.Register(req.ContactNo)
	if errors.Is(err, service.ErrInvalidCode) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "invalid contact number"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "registration failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   result.Message,
		"conf_code": result.ConfCode,
	})
}

// Login verifies the confirmation code and returns an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		ContactNo string `json:"contact_no" binding:"required"`
		ConfCode  string `json:"conf_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "contact_no and conf_code required"})
		return
	}
	result, err := h.authService.Login(req.ContactNo, req.ConfCode)
	if errors.Is(err, service.ErrInvalidCode) {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "invalid or expired code"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"access_token": result.AccessToken,
		"token_type":   result.TokenType,
		"expires_in":   result.ExpiresIn,
	})
}

// Logout revokes the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	token := middleware.GetToken(c)
	v, _ := c.Get("claims")
	claims, ok := v.(*auth.Claims)
	if !ok || claims.ExpiresAt == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "invalid token"})
		return
	}
	if err := h.authService.Logout(courierID, token, claims.ExpiresAt.Time); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "logged_out"})
}

// Me returns the authenticated courier.
func (h *AuthHandler) Me(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	courier, err := h.couriers.GetByID(courierID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "courier not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"public_id":  courier.PublicID,
		"contact_no": courier.ContactNo,
		"is_confirm": courier.IsConfirm,
	})
}
