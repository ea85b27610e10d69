package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationDelivered DonationStatus = "delivered"
	DonationCancelled DonationStatus = "cancelled"
)

func (s DonationStatus) Valid() bool {
	switch s {
	case DonationPending, DonationDelivered, DonationCancelled:
		return true
	}
	return false
}

type Donation struct {
	ID                uint             `json:"id"`
	PersonID          uint             `json:"person_id"`
	Person            *Person          `json:"person,omitempty"`
	CollectionPointID uint             `json:"collection_point_id"`
	CollectionPoint   *CollectionPoint `json:"collection_point,omitempty"`
	Status            DonationStatus   `json:"status"`
	DonatedAt         time.Time        `json:"donated_at"`
	DeliveredAt       *time.Time       `json:"delivered_at,omitempty"`
	Note              string           `json:"note,omitempty"`
	Items             []DonationItem   `json:"items,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// Deliver marks the donation delivered. Needs are credited by the caller.
func (d *Donation) Deliver(now time.Time) error {
	switch d.Status {
	case DonationDelivered:
		return Conflict("donation %d was already delivered", d.ID)
	case DonationCancelled:
		return Conflict("donation %d is cancelled and cannot be delivered", d.ID)
	}
	d.Status = DonationDelivered
	d.DeliveredAt = &now
	return nil
}

func (d *Donation) Cancel() error {
	if d.Status == DonationDelivered {
		return Conflict("donation %d was already delivered and cannot be cancelled", d.ID)
	}
	d.Status = DonationCancelled
	return nil
}

// EnsureMutable rejects changes to a delivered donation or its items.
func (d Donation) EnsureMutable() error {
	if d.Status == DonationDelivered {
		return Conflict("donation %d was already delivered", d.ID)
	}
	return nil
}

type DonationItem struct {
	ID         uint            `json:"id"`
	DonationID uint            `json:"donation_id"`
	ItemTypeID uint            `json:"item_type_id"`
	ItemType   *ItemType       `json:"item_type,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	Note       string          `json:"note,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (i DonationItem) Validate() error {
	if !i.Quantity.IsPositive() {
		return InvalidArgument("item quantity must be greater than zero")
	}
	return nil
}
