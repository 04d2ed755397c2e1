package handlers

import (
	"net/http"
	"strconv"

	"uneaty-api/config"
	"uneaty-api/errs"
	"uneaty-api/middleware"
	"uneaty-api/orders"
	"uneaty-api/statemachine"

	"github.com/gin-gonic/gin"
)

// CreateOrder places a new order (customer only)
func CreateOrder(c *gin.Context) {
	var req orders.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindErr(c, err)
		return
	}

	order, err := orders.Create(config.DB, middleware.GetActor(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, order)
}

// ListOrders returns orders scoped to the caller's role
func ListOrders(c *gin.Context) {
	list, err := orders.List(config.DB, middleware.GetActor(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondList(c, list, len(list))
}

// GetOrder returns a single order's full detail
func GetOrder(c *gin.Context) {
	orderID, err := parseOrderID(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	order, err := orders.Get(config.DB, middleware.GetActor(c), orderID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, order)
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves the order along the lifecycle (deliverer/admin)
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := parseOrderID(c)
	if err != nil {
		respondErr(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindErr(c, err)
		return
	}
	newStatus, err := statemachine.Parse(req.Status)
	if err != nil {
		respondErr(c, err)
		return
	}

	order, err := orders.UpdateStatus(config.DB, middleware.GetActor(c), orderID, newStatus)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, order)
}

// CancelOrder cancels a pending order (customer/admin)
func CancelOrder(c *gin.Context) {
	orderID, err := parseOrderID(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	order, err := orders.Cancel(config.DB, middleware.GetActor(c), orderID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, order)
}

// GetLifecycleInfo documents the order state machine (public)
func GetLifecycleInfo(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{
		"sequence":        statemachine.Sequence(),
		"terminal":        []string{"delivered", "cancelled"},
		"cancellable":     "pending only",
		"description":     "UnEaty order lifecycle",
		"cancel_endpoint": "PUT /api/orders/:id/cancel",
	})
}

func parseOrderID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errs.NotFound("order not found")
	}
	return uint(id), nil
}
