package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CollectionPoint struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	CityID       uint      `json:"city_id"`
	City         *City     `json:"city,omitempty"`
	Address      string    `json:"address"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	OpeningHours string    `json:"opening_hours,omitempty"`
	ManagerName  string    `json:"manager_name,omitempty"`
	ManagerPhone string    `json:"manager_phone,omitempty"`
	Active       bool      `json:"active"`
	CreatorID    uint      `json:"creator_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Need is the quantity of one item type a collection point is asking for.
type Need struct {
	ID                uint             `json:"id"`
	CollectionPointID uint             `json:"collection_point_id"`
	CollectionPoint   *CollectionPoint `json:"collection_point,omitempty"`
	ItemTypeID        uint             `json:"item_type_id"`
	ItemType          *ItemType        `json:"item_type,omitempty"`
	QuantityNeeded    decimal.Decimal  `json:"quantity_needed"`
	QuantityReceived  decimal.Decimal  `json:"quantity_received"`
	Priority          Priority         `json:"priority"`
	Active            bool             `json:"active"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

func (n Need) Validate() error {
	if !n.QuantityNeeded.IsPositive() {
		return InvalidArgument("quantity needed must be greater than zero")
	}
	if n.QuantityReceived.IsNegative() {
		return InvalidArgument("quantity received cannot be negative")
	}
	if n.QuantityReceived.GreaterThan(n.QuantityNeeded) {
		return InvalidArgument("quantity received (%s) cannot exceed quantity needed (%s)",
			n.QuantityReceived.StringFixed(2), n.QuantityNeeded.StringFixed(2))
	}
	if !n.Priority.Valid() {
		return InvalidArgument("invalid priority %q", n.Priority)
	}
	return nil
}

// Receive adds a delivered quantity, never going past QuantityNeeded. Surplus is discarded.
func (n *Need) Receive(qty decimal.Decimal) {
	n.QuantityReceived = decimal.Min(n.QuantityReceived.Add(qty), n.QuantityNeeded)
}

func (n Need) Outstanding() decimal.Decimal {
	return n.QuantityNeeded.Sub(n.QuantityReceived)
}
