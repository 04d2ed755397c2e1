package handlers

import (
	"errors"
	"net/http"
	"time"

	"uneaty-api/config"
	"uneaty-api/errs"
	"uneaty-api/middleware"
	"uneaty-api/models"
	"uneaty-api/policy"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type menuItemRequest struct {
	ItemName    string  `json:"item_name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Description string  `json:"description"`
}

type foodTruckRequest struct {
	Name     string            `json:"name" binding:"required"`
	Location string            `json:"location" binding:"required"`
	Menu     []menuItemRequest `json:"menu" binding:"dive"`
}

type CreateServiceRequest struct {
	StartTime   time.Time          `json:"start_time" binding:"required"`
	EndTime     time.Time          `json:"end_time" binding:"required"`
	MaxOrders   int                `json:"max_orders" binding:"required,min=1,max=20"`
	DeliveryFee *float64           `json:"delivery_fee" binding:"required,gte=0"`
	FoodTrucks  []foodTruckRequest `json:"food_trucks" binding:"dive"`
}

// CreateService publishes a new delivery run (deliverer or admin).
func CreateService(c *gin.Context) {
	actor := middleware.GetActor(c)
	if err := policy.CanCreateService(actor); err != nil {
		respondErr(c, err)
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindErr(c, err)
		return
	}
	if !req.StartTime.Before(req.EndTime) {
		respondErr(c, errs.Validation("end time must be after start time"))
		return
	}

	service := models.DeliveryService{
		DelivererID: actor.ID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MaxOrders:   req.MaxOrders,
		DeliveryFee: *req.DeliveryFee,
		IsActive:    true,
	}
	for _, truck := range req.FoodTrucks {
		ft := models.FoodTruck{Name: truck.Name, Location: truck.Location}
		for _, item := range truck.Menu {
			ft.Menu = append(ft.Menu, models.MenuItem{
				ItemName:    item.ItemName,
				Price:       item.Price,
				Description: item.Description,
			})
		}
		service.FoodTrucks = append(service.FoodTrucks, ft)
	}

	if err := config.DB.Create(&service).Error; err != nil {
		respondErr(c, errs.Unexpected(err))
		return
	}
	respondOK(c, http.StatusCreated, service)
}

// ListServices returns all active delivery services (public)
func ListServices(c *gin.Context) {
	var services []models.DeliveryService
	err := config.DB.Preload("FoodTrucks.Menu").
		Where("is_active = ?", true).
		Find(&services).Error
	if err != nil {
		respondErr(c, errs.Unexpected(err))
		return
	}
	respondList(c, services, len(services))
}

// GetService returns a single delivery service (public)
func GetService(c *gin.Context) {
	service, err := findService(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, service)
}

// UpdateService updates a delivery service owned by the caller.
// Capacity counters are not writable through this endpoint; they
// belong to the ledger.
func UpdateService(c *gin.Context) {
	service, err := findService(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	if err := policy.CanModifyService(middleware.GetActor(c), service); err != nil {
		respondErr(c, err)
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindErr(c, err)
		return
	}
	allowed := map[string]bool{
		"start_time": true, "end_time": true,
		"max_orders": true, "delivery_fee": true, "is_active": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if maxOrders, ok := update["max_orders"].(float64); ok {
		if maxOrders < 1 || maxOrders > 20 {
			respondErr(c, errs.Validation("max orders must be between 1 and 20"))
			return
		}
	}
	if fee, ok := update["delivery_fee"].(float64); ok && fee < 0 {
		respondErr(c, errs.Validation("delivery fee cannot be negative"))
		return
	}

	if err := config.DB.Model(service).Updates(update).Error; err != nil {
		respondErr(c, errs.Unexpected(err))
		return
	}
	config.DB.Preload("FoodTrucks.Menu").First(service, service.ID)
	respondOK(c, http.StatusOK, service)
}

// DeleteService removes a delivery service owned by the caller.
func DeleteService(c *gin.Context) {
	service, err := findService(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	if err := policy.CanModifyService(middleware.GetActor(c), service); err != nil {
		respondErr(c, err)
		return
	}
	if err := config.DB.Delete(service).Error; err != nil {
		respondErr(c, errs.Unexpected(err))
		return
	}
	respondOK(c, http.StatusOK, gin.H{})
}

func findService(id string) (*models.DeliveryService, error) {
	var service models.DeliveryService
	if err := config.DB.Preload("FoodTrucks.Menu").First(&service, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("delivery service not found")
		}
		return nil, errs.Unexpected(err)
	}
	return &service, nil
}
