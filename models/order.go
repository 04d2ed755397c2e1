package models

import "time"

// OrderStatus represents all possible states of a delivery order
type OrderStatus string

const (
	StatusPending      OrderStatus = "pending"
	StatusAccepted     OrderStatus = "accepted"
	StatusPickedUpCard OrderStatus = "pickedUpCard"
	StatusOrderingFood OrderStatus = "orderingFood"
	StatusPickedUpFood OrderStatus = "pickedUpFood"
	StatusDelivering   OrderStatus = "delivering"
	StatusDelivered    OrderStatus = "delivered"
	StatusCancelled    OrderStatus = "cancelled"
)

// DeliveryLocation pins an order to a campus dorm room.
type DeliveryLocation struct {
	Dorm       string `json:"dorm" gorm:"not null"`
	Floor      string `json:"floor" gorm:"not null"`
	RoomNumber string `json:"room_number" gorm:"not null"`
}

type Order struct {
	ID                uint             `json:"id" gorm:"primaryKey"`
	Reference         string           `json:"reference" gorm:"uniqueIndex;not null"`
	CustomerID        uint             `json:"customer_id" gorm:"not null"`
	Customer          User             `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	DelivererID       uint             `json:"deliverer_id" gorm:"not null"`
	Deliverer         User             `json:"deliverer,omitempty" gorm:"foreignKey:DelivererID"`
	DeliveryServiceID uint             `json:"delivery_service_id" gorm:"not null"`
	DeliveryService   DeliveryService  `json:"delivery_service,omitempty" gorm:"foreignKey:DeliveryServiceID"`
	Items             []OrderItem      `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	DeliveryLocation  DeliveryLocation `json:"delivery_location" gorm:"embedded;embeddedPrefix:delivery_"`
	CustomerPhone     string           `json:"customer_phone" gorm:"not null"`
	Status            OrderStatus      `json:"status" gorm:"not null;default:'pending'"`
	TotalAmount       float64          `json:"total_amount" gorm:"not null"`
	DeliveryFee       float64          `json:"delivery_fee" gorm:"not null"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id" gorm:"not null"`
	FoodTruck string  `json:"food_truck" gorm:"not null"`
	ItemName  string  `json:"item_name" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Price     float64 `json:"price" gorm:"not null"` // snapshot price at time of order
	Notes     string  `json:"notes"`
}

// ComputeTotal recalculates TotalAmount from the items and the delivery
// fee. Must be called whenever the items change.
func (o *Order) ComputeTotal() {
	var itemTotal float64
	for _, item := range o.Items {
		itemTotal += item.Price * float64(item.Quantity)
	}
	o.TotalAmount = itemTotal + o.DeliveryFee
}
