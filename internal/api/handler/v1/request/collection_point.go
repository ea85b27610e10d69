package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/service"
)

var priorities = []interface{}{
	string(domain.PriorityLow),
	string(domain.PriorityMedium),
	string(domain.PriorityHigh),
}

type CreateCollectionPointRequest struct {
	Name         string   `json:"name" example:"Municipal gym"`
	Description  string   `json:"description"`
	CityID       uint     `json:"city_id" example:"1"`
	Address      string   `json:"address" example:"Rua Bento Gonçalves, 400"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Phone        string   `json:"phone"`
	OpeningHours string   `json:"opening_hours" example:"08:00-18:00"`
	ManagerName  string   `json:"manager_name"`
	ManagerPhone string   `json:"manager_phone"`
	AdminID      uint     `json:"admin_id" example:"1"`
}

func (req *CreateCollectionPointRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 255)),
		validation.Field(&req.Address, validation.Required, validation.Length(3, 255)),
		validation.Field(&req.Latitude, latitudeRule),
		validation.Field(&req.Longitude, longitudeRule),
		validation.Field(&req.Phone, validation.Match(phonePattern)),
		validation.Field(&req.OpeningHours, validation.Length(0, 255)),
		validation.Field(&req.ManagerName, validation.Length(0, 255)),
		validation.Field(&req.ManagerPhone, validation.Match(phonePattern)),
		validation.Field(&req.AdminID, validation.Required),
	)
}

func (req *CreateCollectionPointRequest) ToDomain() domain.CollectionPoint {
	return domain.CollectionPoint{
		Name:         req.Name,
		Description:  req.Description,
		CityID:       req.CityID,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Phone:        req.Phone,
		OpeningHours: req.OpeningHours,
		ManagerName:  req.ManagerName,
		ManagerPhone: req.ManagerPhone,
	}
}

type UpdateCollectionPointRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	CityID       *uint    `json:"city_id"`
	Address      *string  `json:"address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Phone        *string  `json:"phone"`
	OpeningHours *string  `json:"opening_hours"`
	ManagerName  *string  `json:"manager_name"`
	ManagerPhone *string  `json:"manager_phone"`
}

func (req *UpdateCollectionPointRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(2, 255)),
		validation.Field(&req.CityID, validation.NilOrNotEmpty),
		validation.Field(&req.Address, validation.NilOrNotEmpty, validation.Length(3, 255)),
		validation.Field(&req.Latitude, latitudeRule),
		validation.Field(&req.Longitude, longitudeRule),
		validation.Field(&req.Phone, validation.Match(phonePattern)),
		validation.Field(&req.ManagerPhone, validation.Match(phonePattern)),
	)
}

func (req *UpdateCollectionPointRequest) ToUpdate() service.CollectionPointUpdate {
	return service.CollectionPointUpdate{
		Name:         req.Name,
		Description:  req.Description,
		CityID:       req.CityID,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Phone:        req.Phone,
		OpeningHours: req.OpeningHours,
		ManagerName:  req.ManagerName,
		ManagerPhone: req.ManagerPhone,
	}
}

type CreateNeedRequest struct {
	CollectionPointID uint             `json:"collection_point_id" example:"1"`
	ItemTypeID        uint             `json:"item_type_id" example:"1"`
	QuantityNeeded    decimal.Decimal  `json:"quantity_needed" swaggertype:"number" example:"100"`
	QuantityReceived  *decimal.Decimal `json:"quantity_received" swaggertype:"number" example:"0"`
	Priority          string           `json:"priority" example:"high"`
}

func (req *CreateNeedRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CollectionPointID, validation.Required),
		validation.Field(&req.ItemTypeID, validation.Required),
		validation.Field(&req.QuantityNeeded, positiveDecimal),
		validation.Field(&req.QuantityReceived, nonNegativeDecimal),
		validation.Field(&req.Priority, validation.In(priorities...)),
	)
}

func (req *CreateNeedRequest) ToDomain() domain.Need {
	need := domain.Need{
		CollectionPointID: req.CollectionPointID,
		ItemTypeID:        req.ItemTypeID,
		QuantityNeeded:    req.QuantityNeeded,
		Priority:          domain.Priority(req.Priority),
	}
	if req.QuantityReceived != nil {
		need.QuantityReceived = *req.QuantityReceived
	}

	return need
}

type UpdateNeedRequest struct {
	CollectionPointID *uint            `json:"collection_point_id"`
	ItemTypeID        *uint            `json:"item_type_id"`
	QuantityNeeded    *decimal.Decimal `json:"quantity_needed" swaggertype:"number"`
	QuantityReceived  *decimal.Decimal `json:"quantity_received" swaggertype:"number"`
	Priority          *string          `json:"priority"`
}

func (req *UpdateNeedRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CollectionPointID, validation.NilOrNotEmpty),
		validation.Field(&req.ItemTypeID, validation.NilOrNotEmpty),
		validation.Field(&req.QuantityNeeded, positiveDecimal),
		validation.Field(&req.QuantityReceived, nonNegativeDecimal),
		validation.Field(&req.Priority, validation.In(priorities...)),
	)
}

func (req *UpdateNeedRequest) ToUpdate() service.NeedUpdate {
	upd := service.NeedUpdate{
		CollectionPointID: req.CollectionPointID,
		ItemTypeID:        req.ItemTypeID,
		QuantityNeeded:    req.QuantityNeeded,
		QuantityReceived:  req.QuantityReceived,
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		upd.Priority = &priority
	}

	return upd
}

type UpdateReceivedRequest struct {
	QuantityReceived *decimal.Decimal `json:"quantity_received" swaggertype:"number" example:"40"`
}

func (req *UpdateReceivedRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.QuantityReceived, validation.NotNil, nonNegativeDecimal),
	)
}
