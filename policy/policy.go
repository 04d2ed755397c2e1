// Package policy centralizes role and ownership checks for every
// mutating operation. Callers must establish that the target entity
// exists before consulting the policy, so a missing resource always
// reports not-found rather than leaking existence through an
// authorization error.
package policy

import (
	"uneaty-api/errs"
	"uneaty-api/models"
)

// Actor is the authenticated caller as seen by the core.
type Actor struct {
	ID   uint
	Role models.UserRole
}

// CanCreateService allows deliverers and admins to publish services.
func CanCreateService(actor Actor) error {
	if actor.Role == models.RoleDeliverer || actor.Role == models.RoleAdmin {
		return nil
	}
	return errs.Unauthorized("only deliverers can create delivery services")
}

// CanModifyService allows the owning deliverer or an admin.
func CanModifyService(actor Actor, service *models.DeliveryService) error {
	if actor.Role == models.RoleAdmin || service.DelivererID == actor.ID {
		return nil
	}
	return errs.Unauthorized("not authorized to modify this delivery service")
}

// CanCreateOrder allows customers only.
func CanCreateOrder(actor Actor) error {
	if actor.Role == models.RoleCustomer {
		return nil
	}
	return errs.Unauthorized("only customers can place orders")
}

// CanUpdateOrderStatus allows the assigned deliverer or an admin.
func CanUpdateOrderStatus(actor Actor, order *models.Order) error {
	if actor.Role == models.RoleAdmin || order.DelivererID == actor.ID {
		return nil
	}
	return errs.Unauthorized("not authorized to update this order")
}

// CanCancelOrder allows the order's customer or an admin.
func CanCancelOrder(actor Actor, order *models.Order) error {
	if actor.Role == models.RoleAdmin || order.CustomerID == actor.ID {
		return nil
	}
	return errs.Unauthorized("not authorized to cancel this order")
}

// CanViewOrder allows admins, the order's customer, and its deliverer.
func CanViewOrder(actor Actor, order *models.Order) error {
	if actor.Role == models.RoleAdmin || order.CustomerID == actor.ID || order.DelivererID == actor.ID {
		return nil
	}
	return errs.Unauthorized("not authorized to view this order")
}
