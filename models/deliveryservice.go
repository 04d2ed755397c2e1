package models

import (
	"encoding/json"
	"time"
)

type DeliveryService struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	DelivererID   uint        `json:"deliverer_id" gorm:"not null"`
	Deliverer     User        `json:"deliverer,omitempty" gorm:"foreignKey:DelivererID"`
	StartTime     time.Time   `json:"start_time" gorm:"not null"`
	EndTime       time.Time   `json:"end_time" gorm:"not null"`
	MaxOrders     int         `json:"max_orders" gorm:"not null"`
	CurrentOrders int         `json:"current_orders" gorm:"not null;default:0"`
	DeliveryFee   float64     `json:"delivery_fee" gorm:"not null"`
	IsActive      bool        `json:"is_active" gorm:"default:true"`
	FoodTrucks    []FoodTruck `json:"food_trucks,omitempty" gorm:"foreignKey:DeliveryServiceID"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// FoodTruck is a named vendor embedded within a delivery service,
// not an independent entity.
type FoodTruck struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	DeliveryServiceID uint       `json:"delivery_service_id" gorm:"not null"`
	Name              string     `json:"name" gorm:"not null"`
	Location          string     `json:"location" gorm:"not null"`
	Menu              []MenuItem `json:"menu,omitempty" gorm:"foreignKey:FoodTruckID"`
}

type MenuItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	FoodTruckID uint    `json:"food_truck_id" gorm:"not null"`
	ItemName    string  `json:"item_name" gorm:"not null"`
	Price       float64 `json:"price" gorm:"not null"`
	Description string  `json:"description"`
}

// IsAvailable reports whether the service can accept a new order at
// the given instant: active, inside its time window, with a free slot.
func (s *DeliveryService) IsAvailable(now time.Time) bool {
	return s.IsActive &&
		!now.Before(s.StartTime) &&
		!now.After(s.EndTime) &&
		s.CurrentOrders < s.MaxOrders
}

// RemainingCapacity returns the number of free order slots.
func (s *DeliveryService) RemainingCapacity() int {
	return s.MaxOrders - s.CurrentOrders
}

// MarshalJSON includes the computed availability fields alongside the
// stored columns, matching what API clients expect.
func (s DeliveryService) MarshalJSON() ([]byte, error) {
	type alias DeliveryService
	return json.Marshal(struct {
		alias
		IsAvailable       bool `json:"is_available"`
		RemainingCapacity int  `json:"remaining_capacity"`
	}{
		alias:             alias(s),
		IsAvailable:       s.IsAvailable(time.Now()),
		RemainingCapacity: s.RemainingCapacity(),
	})
}
