package policy_test

import (
	"testing"

	"uneaty-api/errs"
	"uneaty-api/models"
	"uneaty-api/policy"

	"github.com/stretchr/testify/assert"
)

var (
	customer  = policy.Actor{ID: 1, Role: models.RoleCustomer}
	deliverer = policy.Actor{ID: 2, Role: models.RoleDeliverer}
	admin     = policy.Actor{ID: 3, Role: models.RoleAdmin}
	stranger  = policy.Actor{ID: 9, Role: models.RoleDeliverer}
)

func testOrder() *models.Order {
	return &models.Order{CustomerID: customer.ID, DelivererID: deliverer.ID}
}

func testService() *models.DeliveryService {
	return &models.DeliveryService{DelivererID: deliverer.ID}
}

func TestCanCreateService(t *testing.T) {
	assert.NoError(t, policy.CanCreateService(deliverer))
	assert.NoError(t, policy.CanCreateService(admin))
	assert.ErrorIs(t, policy.CanCreateService(customer), errs.ErrUnauthorized)
}

func TestCanModifyService(t *testing.T) {
	assert.NoError(t, policy.CanModifyService(deliverer, testService()))
	assert.NoError(t, policy.CanModifyService(admin, testService()))
	assert.ErrorIs(t, policy.CanModifyService(stranger, testService()), errs.ErrUnauthorized)
	assert.ErrorIs(t, policy.CanModifyService(customer, testService()), errs.ErrUnauthorized)
}

func TestCanCreateOrder(t *testing.T) {
	assert.NoError(t, policy.CanCreateOrder(customer))
	assert.ErrorIs(t, policy.CanCreateOrder(deliverer), errs.ErrUnauthorized)
	assert.ErrorIs(t, policy.CanCreateOrder(admin), errs.ErrUnauthorized)
}

func TestCanUpdateOrderStatus(t *testing.T) {
	assert.NoError(t, policy.CanUpdateOrderStatus(deliverer, testOrder()))
	assert.NoError(t, policy.CanUpdateOrderStatus(admin, testOrder()))
	assert.ErrorIs(t, policy.CanUpdateOrderStatus(customer, testOrder()), errs.ErrUnauthorized)
	assert.ErrorIs(t, policy.CanUpdateOrderStatus(stranger, testOrder()), errs.ErrUnauthorized)
}

func TestCanCancelOrder(t *testing.T) {
	assert.NoError(t, policy.CanCancelOrder(customer, testOrder()))
	assert.NoError(t, policy.CanCancelOrder(admin, testOrder()))
	assert.ErrorIs(t, policy.CanCancelOrder(deliverer, testOrder()), errs.ErrUnauthorized)
}

func TestCanViewOrder(t *testing.T) {
	assert.NoError(t, policy.CanViewOrder(customer, testOrder()))
	assert.NoError(t, policy.CanViewOrder(deliverer, testOrder()))
	assert.NoError(t, policy.CanViewOrder(admin, testOrder()))
	assert.ErrorIs(t, policy.CanViewOrder(stranger, testOrder()), errs.ErrUnauthorized)
}
