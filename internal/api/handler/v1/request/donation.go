package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/service"
)

type DonationItemInput struct {
	ItemTypeID uint            `json:"item_type_id" example:"1"`
	Quantity   decimal.Decimal `json:"quantity" swaggertype:"number" example:"12.5"`
	Note       string          `json:"note"`
}

// Validate has a value receiver so ozzo picks it up for every element of CreateDonationRequest.Items.
func (in DonationItemInput) Validate() error {
	return validation.ValidateStruct(
		&in,
		validation.Field(&in.ItemTypeID, validation.Required),
		validation.Field(&in.Quantity, positiveDecimal),
		validation.Field(&in.Note, validation.Length(0, 500)),
	)
}

func (in DonationItemInput) ToDomain() domain.DonationItem {
	return domain.DonationItem{
		ItemTypeID: in.ItemTypeID,
		Quantity:   in.Quantity,
		Note:       in.Note,
	}
}

type CreateDonationRequest struct {
	PersonID          uint                `json:"person_id" example:"1"`
	CollectionPointID uint                `json:"collection_point_id" example:"1"`
	Note              string              `json:"note"`
	Items             []DonationItemInput `json:"items"`
}

func (req *CreateDonationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PersonID, validation.Required),
		validation.Field(&req.CollectionPointID, validation.Required),
		validation.Field(&req.Note, validation.Length(0, 1000)),
		validation.Field(&req.Items, validation.Required),
	)
}

func (req *CreateDonationRequest) ToDomain() (domain.Donation, []domain.DonationItem) {
	items := make([]domain.DonationItem, 0, len(req.Items))
	for _, in := range req.Items {
		items = append(items, in.ToDomain())
	}

	return domain.Donation{
		PersonID:          req.PersonID,
		CollectionPointID: req.CollectionPointID,
		Note:              req.Note,
	}, items
}

type UpdateDonationRequest struct {
	PersonID          *uint   `json:"person_id"`
	CollectionPointID *uint   `json:"collection_point_id"`
	Note              *string `json:"note"`
}

func (req *UpdateDonationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PersonID, validation.NilOrNotEmpty),
		validation.Field(&req.CollectionPointID, validation.NilOrNotEmpty),
		validation.Field(&req.Note, validation.Length(0, 1000)),
	)
}

func (req *UpdateDonationRequest) ToUpdate() service.DonationUpdate {
	return service.DonationUpdate{
		PersonID:          req.PersonID,
		CollectionPointID: req.CollectionPointID,
		Note:              req.Note,
	}
}

type CreateDonationItemRequest struct {
	DonationID uint `json:"donation_id" example:"1"`
	DonationItemInput
}

func (req *CreateDonationItemRequest) Validate() error {
	if err := validation.ValidateStruct(req, validation.Field(&req.DonationID, validation.Required)); err != nil {
		return err
	}

	return req.DonationItemInput.Validate()
}

func (req *CreateDonationItemRequest) ToDomain() domain.DonationItem {
	item := req.DonationItemInput.ToDomain()
	item.DonationID = req.DonationID

	return item
}

type UpdateDonationItemRequest struct {
	ItemTypeID *uint            `json:"item_type_id"`
	Quantity   *decimal.Decimal `json:"quantity" swaggertype:"number"`
	Note       *string          `json:"note"`
}

func (req *UpdateDonationItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ItemTypeID, validation.NilOrNotEmpty),
		validation.Field(&req.Quantity, positiveDecimal),
		validation.Field(&req.Note, validation.Length(0, 500)),
	)
}

func (req *UpdateDonationItemRequest) ToUpdate() service.DonationItemUpdate {
	return service.DonationItemUpdate{
		ItemTypeID: req.ItemTypeID,
		Quantity:   req.Quantity,
		Note:       req.Note,
	}
}
