package handler

import (
	"errors"
	"net/http"

	"gogett/internal/middleware"
	"gogett/internal/models"
	"gogett/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MeHandler serves the courier's own profile, vehicle and bank records.
type MeHandler struct {
	couriers *repository.CourierRepository
}

func NewMeHandler(couriers *repository.CourierRepository) *MeHandler {
	return &MeHandler{couriers: couriers}
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	p, err := h.couriers.GetProfile(courierID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "profile error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "profile": p})
}

func (h *MeHandler) SaveProfile(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	var req struct {
		NIC           string  `json:"nic" binding:"required"`
		FirstName     string  `json:"first_name" binding:"required"`
		LastName      string  `json:"last_name" binding:"required"`
		Email         string  `json:"email" binding:"required,email"`
		StreetAddress string  `json:"street_address"`
		CityAddress   string  `json:"city_address"`
		Postcode      int     `json:"postcode"`
		Latitude      float64 `json:"latitude"`
		Longitude     float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}
	p := models.CourierProfile{
		NIC:           req.NIC,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		StreetAddress: req.StreetAddress,
		CityAddress:   req.CityAddress,
		Postcode:      req.Postcode,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
	}
	if err := h.couriers.SaveProfile(courierID, &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "profile save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "profile_saved", "ref_no": p.RefNo})
}

func (h *MeHandler) GetVehicle(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	v, err := h.couriers.GetVehicle(courierID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "vehicle not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "vehicle error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "vehicle": v})
}

func (h *MeHandler) SaveVehicle(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	var req struct {
		Type  string `json:"type" binding:"required"`
		RegNo string `json:"reg_no" binding:"required"`
		Note  string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}
	v := models.CourierVehicle{Type: req.Type, RegNo: req.RegNo, Note: req.Note}
	created, err := h.couriers.SaveVehicle(courierID, &v)
	if errors.Is(err, repository.ErrVehicleRegTaken) {
		c.JSON(http.StatusConflict, gin.H{"status": "fail", "message": "reg_no_taken"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "vehicle save failed"})
		return
	}
	message := "vehicle_updated"
	if created {
		message = "vehicle_added"
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": message})
}

func (h *MeHandler) GetBank(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	b, err := h.couriers.GetBank(courierID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "bank account not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "bank error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "bank": b})
}

func (h *MeHandler) CreateBank(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	var req struct {
		BankName  string `json:"bank_name" binding:"required"`
		Branch    string `json:"branch" binding:"required"`
		AccNo     string `json:"acc_no" binding:"required"`
		AccHolder string `json:"acc_holder" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}
	b := models.CourierBank{
		BankName:  req.BankName,
		Branch:    req.Branch,
		AccNo:     req.AccNo,
		AccHolder: req.AccHolder,
		CourierID: courierID,
	}
	if err := h.couriers.CreateBank(&b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "bank save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "bank_added"})
}

func (h *MeHandler) UpdateBank(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	var req struct {
		BankName  string `json:"bank_name" binding:"required"`
		Branch    string `json:"branch" binding:"required"`
		AccNo     string `json:"acc_no" binding:"required"`
		AccHolder string `json:"acc_holder" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}
	b := models.CourierBank{
		BankName:  req.BankName,
		Branch:    req.Branch,
		AccNo:     req.AccNo,
		AccHolder: req.AccHolder,
	}
	if err := h.couriers.UpdateBank(courierID, &b); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "bank account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "bank save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "bank_updated"})
}

func (h *MeHandler) DeleteBank(c *gin.Context) {
	courierID := middleware.GetCourierID(c)
	if err := h.couriers.DeleteBank(courierID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": "bank delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "bank_removed"})
}
