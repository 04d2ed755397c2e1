package orders_test

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"uneaty-api/config"
	"uneaty-api/errs"
	"uneaty-api/models"
	"uneaty-api/orders"
	"uneaty-api/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	customer  policy.Actor
	deliverer policy.Actor
	admin     policy.Actor
	service   *models.DeliveryService
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := config.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	newUser := func(name, email string, role models.UserRole) policy.Actor {
		u := models.User{Name: name, Email: email, Role: role, Phone: "5550001111"}
		require.NoError(t, u.SetPassword("secret123"))
		require.NoError(t, db.Create(&u).Error)
		return policy.Actor{ID: u.ID, Role: role}
	}

	f := &fixture{
		db:        db,
		customer:  newUser("Casey", "casey@campus.edu", models.RoleCustomer),
		deliverer: newUser("Dana", "dana@campus.edu", models.RoleDeliverer),
		admin:     newUser("Avery", "avery@campus.edu", models.RoleAdmin),
	}

	f.service = &models.DeliveryService{
		DelivererID: f.deliverer.ID,
		StartTime:   time.Now().Add(-time.Hour),
		EndTime:     time.Now().Add(time.Hour),
		MaxOrders:   5,
		DeliveryFee: 3.99,
		IsActive:    true,
	}
	require.NoError(t, db.Create(f.service).Error)
	return f
}

func (f *fixture) createInput() orders.CreateInput {
	return orders.CreateInput{
		DeliveryServiceID: f.service.ID,
		Items: []orders.ItemInput{
			{FoodTruck: "Taco Cart", ItemName: "Carnitas Tacos", Quantity: 2, Price: 9.99},
		},
		DeliveryLocation: models.DeliveryLocation{Dorm: "West Hall", Floor: "3", RoomNumber: "312"},
		CustomerPhone:    "5559876543",
	}
}

func (f *fixture) serviceOrders(t *testing.T) int {
	t.Helper()
	var service models.DeliveryService
	require.NoError(t, f.db.First(&service, f.service.ID).Error)
	return service.CurrentOrders
}

func TestCreate(t *testing.T) {
	t.Run("computes total and reserves a slot", func(t *testing.T) {
		f := setup(t)

		order, err := orders.Create(f.db, f.customer, f.createInput())
		require.NoError(t, err)

		assert.Equal(t, models.StatusPending, order.Status)
		assert.Equal(t, f.customer.ID, order.CustomerID)
		assert.Equal(t, f.deliverer.ID, order.DelivererID, "deliverer copied from the service")
		assert.Equal(t, 3.99, order.DeliveryFee, "fee copied from the service")
		assert.InDelta(t, 23.97, order.TotalAmount, 1e-9, "2 x 9.99 + 3.99")
		assert.NotEmpty(t, order.Reference)
		assert.Equal(t, 1, f.serviceOrders(t))
	})

	t.Run("rejects non-customers", func(t *testing.T) {
		f := setup(t)

		for _, actor := range []policy.Actor{f.deliverer, f.admin} {
			_, err := orders.Create(f.db, actor, f.createInput())
			assert.ErrorIs(t, err, errs.ErrUnauthorized)
		}
		assert.Equal(t, 0, f.serviceOrders(t))
	})

	t.Run("rejects bad quantity", func(t *testing.T) {
		f := setup(t)
		in := f.createInput()
		in.Items[0].Quantity = 0

		_, err := orders.Create(f.db, f.customer, in)
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, 0, f.serviceOrders(t), "rejected create must not reserve")
	})

	t.Run("rejects incomplete location", func(t *testing.T) {
		f := setup(t)
		in := f.createInput()
		in.DeliveryLocation.RoomNumber = ""

		_, err := orders.Create(f.db, f.customer, in)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("rejects unknown service", func(t *testing.T) {
		f := setup(t)
		in := f.createInput()
		in.DeliveryServiceID = 999

		_, err := orders.Create(f.db, f.customer, in)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("capacity gate leaves no partial state", func(t *testing.T) {
		f := setup(t)
		require.NoError(t, f.db.Model(f.service).Update("max_orders", 1).Error)

		_, err := orders.Create(f.db, f.customer, f.createInput())
		require.NoError(t, err)

		_, err = orders.Create(f.db, f.customer, f.createInput())
		assert.ErrorIs(t, err, errs.ErrCapacityExceeded)
		assert.Equal(t, 1, f.serviceOrders(t))

		var count int64
		require.NoError(t, f.db.Model(&models.Order{}).Count(&count).Error)
		assert.EqualValues(t, 1, count, "no order row for the rejected create")
	})

	t.Run("inactive service is unavailable", func(t *testing.T) {
		f := setup(t)
		require.NoError(t, f.db.Model(f.service).Update("is_active", false).Error)

		_, err := orders.Create(f.db, f.customer, f.createInput())
		assert.ErrorIs(t, err, errs.ErrServiceUnavailable)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("deliverer advances the full pipeline", func(t *testing.T) {
		f := setup(t)
		order, err := orders.Create(f.db, f.customer, f.createInput())
		require.NoError(t, err)

		for _, next := range []models.OrderStatus{
			models.StatusAccepted,
			models.StatusPickedUpCard,
			models.StatusOrderingFood,
			models.StatusPickedUpFood,
			models.StatusDelivering,
			models.StatusDelivered,
		} {
			order, err = orders.UpdateStatus(f.db, f.deliverer, order.ID, next)
			require.NoError(t, err, "advancing to %s", next)
			assert.Equal(t, next, order.Status)
		}
		// Delivered keeps its slot; only cancellation releases.
		assert.Equal(t, 1, f.serviceOrders(t))
	})

	t.Run("customer may not update status", func(t *testing.T) {
		f := setup(t)
		order, err := orders.Create(f.db, f.customer, f.createInput())
		require.NoError(t, err)

		_, err = orders.UpdateStatus(f.db, f.customer, order.ID, models.StatusAccepted)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("other deliverers may not update status", func(t *testing.T) {
		f := setup(t)
		order, err := orders.Create(f.db, f.customer, f.createInput())
		require.NoError(t, err)

		stranger := models.User{Name: "Riley", Email: "riley@campus.edu", Role: models.RoleDeliverer, Phone: "5550002222"}
		require.NoError(t, stranger.SetPassword("secret123"))
		require.NoError(t, f.db.Create(&stranger).Error)

		_, err = orders.UpdateStatus(f.db, policy.Actor{ID: stranger.ID, Role: models.RoleDeliverer}, order.ID, models.StatusAccepted)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("admin may update any order", func(t *testing.T) {
		f := setup(t)
		order, err := orders.Create(f.db, f.customer, f.createInput())
		require.NoError(t, err)

		updated, err := orders.UpdateStatus(f.db, f.admin, order.ID, models.StatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, models.StatusAccepted, updated.Status)
	})

	t.Run("rejects skipped steps", func(t *testing.T) {
		f := setup(t)
		order, err := orders.Create(f.db, f.customer, f.createInput())
		require.NoError(t, err)

		_, err = orders.UpdateStatus(f.db, f.deliverer, order.ID, models.StatusDelivering)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("cancelling through status update releases the slot", func(t *testing.T) {
		f := setup(t)
		order, err := orders.Create(f.db, f.customer, f.createInput())
		require.NoError(t, err)
		require.Equal(t, 1, f.serviceOrders(t))

		updated, err := orders.UpdateStatus(f.db, f.admin, order.ID, models.StatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, updated.Status)
		assert.Equal(t, 0, f.serviceOrders(t))
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		f := setup(t)
		_, err := orders.UpdateStatus(f.db, f.admin, 999, models.StatusAccepted)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("pending order returns its slot", func(t *testing.T) {
		f := setup(t)
		order, err := orders.Create(f.db, f.customer, f.createInput())
		require.NoError(t, err)
		require.Equal(t, 1, f.serviceOrders(t))

		cancelled, err := orders.Cancel(f.db, f.customer, order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, cancelled.Status)
		assert.Equal(t, 0, f.serviceOrders(t))
	})

	t.Run("accepted order cannot be cancelled", func(t *testing.T) {
		f := setup(t)
		order, err := orders.Create(f.db, f.customer, f.createInput())
		require.NoError(t, err)
		_, err = orders.UpdateStatus(f.db, f.deliverer, order.ID, models.StatusAccepted)
		require.NoError(t, err)

		_, err = orders.Cancel(f.db, f.customer, order.ID)
		assert.ErrorIs(t, err, errs.ErrInvalidState)

		got, err := orders.Get(f.db, f.customer, order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusAccepted, got.Status, "status unchanged")
		assert.Equal(t, 1, f.serviceOrders(t), "capacity unchanged")
	})

	t.Run("cancelling twice fails and leaves state alone", func(t *testing.T) {
		f := setup(t)
		order, err := orders.Create(f.db, f.customer, f.createInput())
		require.NoError(t, err)

		_, err = orders.Cancel(f.db, f.customer, order.ID)
		require.NoError(t, err)

		_, err = orders.Cancel(f.db, f.customer, order.ID)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, 0, f.serviceOrders(t), "no double release")
	})

	t.Run("deliverer may not cancel", func(t *testing.T) {
		f := setup(t)
		order, err := orders.Create(f.db, f.customer, f.createInput())
		require.NoError(t, err)

		_, err = orders.Cancel(f.db, f.deliverer, order.ID)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("cancellation survives a deleted service", func(t *testing.T) {
		f := setup(t)
		order, err := orders.Create(f.db, f.customer, f.createInput())
		require.NoError(t, err)

		require.NoError(t, f.db.Delete(&models.DeliveryService{}, f.service.ID).Error)

		cancelled, err := orders.Cancel(f.db, f.customer, order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, cancelled.Status)
	})
}

func TestReadScoping(t *testing.T) {
	f := setup(t)
	order, err := orders.Create(f.db, f.customer, f.createInput())
	require.NoError(t, err)

	otherCustomer := models.User{Name: "Morgan", Email: "morgan@campus.edu", Role: models.RoleCustomer, Phone: "5550003333"}
	require.NoError(t, otherCustomer.SetPassword("secret123"))
	require.NoError(t, f.db.Create(&otherCustomer).Error)
	other := policy.Actor{ID: otherCustomer.ID, Role: models.RoleCustomer}

	t.Run("get enforces participation", func(t *testing.T) {
		for _, actor := range []policy.Actor{f.customer, f.deliverer, f.admin} {
			got, err := orders.Get(f.db, actor, order.ID)
			require.NoError(t, err)
			assert.Equal(t, order.ID, got.ID)
		}
		_, err := orders.Get(f.db, other, order.ID)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("list is role-scoped", func(t *testing.T) {
		mine, err := orders.List(f.db, f.customer)
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		assigned, err := orders.List(f.db, f.deliverer)
		require.NoError(t, err)
		assert.Len(t, assigned, 1)

		none, err := orders.List(f.db, other)
		require.NoError(t, err)
		assert.Empty(t, none)

		all, err := orders.List(f.db, f.admin)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestConcurrentCreateLastSlot(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.db.Model(f.service).Update("max_orders", 1).Error)

	const attempts = 4
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = orders.Create(f.db, f.customer, f.createInput())
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, errs.ErrCapacityExceeded)
		}
	}
	assert.Equal(t, 1, successes, "one create wins the last slot")
	assert.Equal(t, 1, f.serviceOrders(t))
}
