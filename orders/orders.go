// Package orders implements the order lifecycle: admission through the
// capacity ledger, status progression through the state machine, and
// role-scoped reads. Every mutation runs inside a transaction so the
// order write and the ledger change commit together or not at all.
package orders

import (
	"errors"

	"uneaty-api/errs"
	"uneaty-api/ledger"
	"uneaty-api/models"
	"uneaty-api/policy"
	"uneaty-api/statemachine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemInput is one requested line item.
type ItemInput struct {
	FoodTruck string  `json:"food_truck" binding:"required"`
	ItemName  string  `json:"item_name" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Price     float64 `json:"price" binding:"required,gte=0"`
	Notes     string  `json:"notes"`
}

// CreateInput carries everything a customer supplies when ordering.
type CreateInput struct {
	DeliveryServiceID uint                    `json:"delivery_service_id" binding:"required"`
	Items             []ItemInput             `json:"items" binding:"required,min=1,dive"`
	DeliveryLocation  models.DeliveryLocation `json:"delivery_location"`
	CustomerPhone     string                  `json:"customer_phone" binding:"required"`
}

func validateCreate(in CreateInput) error {
	if len(in.Items) == 0 {
		return errs.Validation("order must contain at least one item")
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return errs.Validation("quantity must be at least 1 for item '%s'", item.ItemName)
		}
	}
	loc := in.DeliveryLocation
	if loc.Dorm == "" || loc.Floor == "" || loc.RoomNumber == "" {
		return errs.Validation("delivery location requires dorm, floor and room number")
	}
	if in.CustomerPhone == "" {
		return errs.Validation("customer phone is required")
	}
	return nil
}

// Create places a new order against an available delivery service.
// The slot reservation and the order insert share one transaction: a
// rejected create leaves current_orders untouched.
func Create(db *gorm.DB, actor policy.Actor, in CreateInput) (*models.Order, error) {
	if err := policy.CanCreateOrder(actor); err != nil {
		return nil, err
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	var order *models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		service, err := ledger.Reserve(tx, in.DeliveryServiceID)
		if err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(in.Items))
		for _, item := range in.Items {
			items = append(items, models.OrderItem{
				FoodTruck: item.FoodTruck,
				ItemName:  item.ItemName,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Notes:     item.Notes,
			})
		}

		order = &models.Order{
			Reference:         uuid.NewString(),
			CustomerID:        actor.ID,
			DelivererID:       service.DelivererID,
			DeliveryServiceID: service.ID,
			Items:             items,
			DeliveryLocation:  in.DeliveryLocation,
			CustomerPhone:     in.CustomerPhone,
			Status:            models.StatusPending,
			DeliveryFee:       service.DeliveryFee,
		}
		order.ComputeTotal()

		if err := tx.Create(order).Error; err != nil {
			return errs.Unexpected(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// List returns orders scoped to the caller: admins see everything,
// customers their own orders, deliverers their assigned ones.
func List(db *gorm.DB, actor policy.Actor) ([]models.Order, error) {
	query := db.Preload("Items").Order("created_at desc")
	switch actor.Role {
	case models.RoleCustomer:
		query = query.Where("customer_id = ?", actor.ID)
	case models.RoleDeliverer:
		query = query.Where("deliverer_id = ?", actor.ID)
	}

	var list []models.Order
	if err := query.Find(&list).Error; err != nil {
		return nil, errs.Unexpected(err)
	}
	return list, nil
}

// Get fetches a single order if the caller is its customer, its
// deliverer, or an admin.
func Get(db *gorm.DB, actor policy.Actor, orderID uint) (*models.Order, error) {
	order, err := fetch(db, orderID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanViewOrder(actor, order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus moves the order one step along the lifecycle. Only the
// assigned deliverer or an admin may transition; the state machine
// rejects anything outside the adjacency table. A transition into
// cancelled releases the capacity slot, same as Cancel.
func UpdateStatus(db *gorm.DB, actor policy.Actor, orderID uint, newStatus models.OrderStatus) (*models.Order, error) {
	var order *models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = fetch(tx, orderID)
		if err != nil {
			return err
		}
		if err := policy.CanUpdateOrderStatus(actor, order); err != nil {
			return err
		}
		if err := statemachine.CanTransition(order.Status, newStatus); err != nil {
			return err
		}
		if err := applyStatus(tx, order, newStatus); err != nil {
			return err
		}
		if newStatus == models.StatusCancelled {
			return ledger.Release(tx, order.DeliveryServiceID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel sets a pending order to cancelled and returns its slot to the
// delivery service. Only the order's customer or an admin may cancel,
// and only while the order is still pending.
func Cancel(db *gorm.DB, actor policy.Actor, orderID uint) (*models.Order, error) {
	var order *models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = fetch(tx, orderID)
		if err != nil {
			return err
		}
		if err := policy.CanCancelOrder(actor, order); err != nil {
			return err
		}
		if order.Status != models.StatusPending {
			return errs.InvalidState("order cannot be cancelled while %s", order.Status)
		}
		if err := applyStatus(tx, order, models.StatusCancelled); err != nil {
			return err
		}
		// A vanished service is a no-op inside Release; the order's own
		// status change is the source of truth for cancellation.
		return ledger.Release(tx, order.DeliveryServiceID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func fetch(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("order %d not found", orderID)
		}
		return nil, errs.Unexpected(err)
	}
	return &order, nil
}

// applyStatus writes the new status guarded by the status the caller
// saw, so two concurrent transitions cannot both win.
func applyStatus(tx *gorm.DB, order *models.Order, newStatus models.OrderStatus) error {
	res := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Update("status", newStatus)
	if res.Error != nil {
		return errs.Unexpected(res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.InvalidState("order status changed concurrently")
	}
	order.Status = newStatus
	return nil
}
