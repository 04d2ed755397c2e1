// Package ledger gates order admission against delivery-service
// capacity. Reserve and Release are single conditional UPDATEs so that
// two concurrent requests can never over-subscribe a service: the
// guard and the increment happen in one storage operation.
package ledger

import (
	"errors"
	"time"

	"uneaty-api/errs"
	"uneaty-api/models"

	"gorm.io/gorm"
)

// Reserve claims one order slot on the service. It increments
// current_orders only while the service is active, inside its time
// window, and below max_orders. On success it returns the service so
// the caller can copy the deliverer and delivery fee onto the order.
func Reserve(db *gorm.DB, serviceID uint) (*models.DeliveryService, error) {
	now := time.Now()
	res := db.Model(&models.DeliveryService{}).
		Where("id = ? AND is_active = ? AND start_time <= ? AND end_time >= ? AND current_orders < max_orders",
			serviceID, true, now, now).
		UpdateColumn("current_orders", gorm.Expr("current_orders + 1"))
	if res.Error != nil {
		return nil, errs.Unexpected(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, classifyRejection(db, serviceID, now)
	}

	var service models.DeliveryService
	if err := db.First(&service, serviceID).Error; err != nil {
		return nil, errs.Unexpected(err)
	}
	return &service, nil
}

// classifyRejection distinguishes why the guarded increment matched no
// row: missing service, full service, or inactive/outside the window.
func classifyRejection(db *gorm.DB, serviceID uint, now time.Time) error {
	var service models.DeliveryService
	if err := db.First(&service, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("delivery service %d not found", serviceID)
		}
		return errs.Unexpected(err)
	}
	if service.IsActive && !now.Before(service.StartTime) && !now.After(service.EndTime) {
		return errs.ErrCapacityExceeded
	}
	return errs.ErrServiceUnavailable
}

// Release returns one order slot to the service. The decrement is
// guarded by current_orders > 0 so the counter can never go negative;
// a missing service or an already-zero counter is a no-op. The caller
// decides whether to log it — cancellation must not fail on it.
func Release(db *gorm.DB, serviceID uint) error {
	res := db.Model(&models.DeliveryService{}).
		Where("id = ? AND current_orders > 0", serviceID).
		UpdateColumn("current_orders", gorm.Expr("current_orders - 1"))
	if res.Error != nil {
		return errs.Unexpected(res.Error)
	}
	return nil
}
