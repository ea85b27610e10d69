package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/service"
)

type CreateProfileRequest struct {
	Name        string `json:"name" example:"COORDINATOR"`
	Description string `json:"description"`
}

func (req *CreateProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Description, validation.Length(0, 255)),
	)
}

func (req *CreateProfileRequest) ToDomain() domain.Profile {
	return domain.Profile{
		Name:        req.Name,
		Description: req.Description,
	}
}

type UpdateProfileRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (req *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(2, 50)),
		validation.Field(&req.Description, validation.Length(0, 255)),
	)
}

type CreatePersonRequest struct {
	FullName  string  `json:"full_name" example:"Maria Souza"`
	CPF       *string `json:"cpf" example:"123.456.789-09"`
	Email     *string `json:"email" example:"maria@example.org"`
	Phone     string  `json:"phone" example:"(51) 99999-0000"`
	BirthDate *string `json:"birth_date" example:"1990-04-21"`
	Gender    string  `json:"gender"`
	ProfileID uint    `json:"profile_id" example:"1"`
}

func (req *CreatePersonRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FullName, validation.Required, validation.Length(2, 255)),
		validation.Field(&req.CPF, cpfRule),
		validation.Field(&req.Email, is.Email, validation.Length(0, 255)),
		validation.Field(&req.Phone, validation.Match(phonePattern)),
		validation.Field(&req.BirthDate, validation.Date(dateLayout)),
		validation.Field(&req.Gender, validation.Length(0, 20)),
		validation.Field(&req.ProfileID, validation.Required),
	)
}

func (req *CreatePersonRequest) ToDomain() domain.Person {
	return domain.Person{
		FullName:  req.FullName,
		CPF:       emptyToNil(req.CPF),
		Email:     emptyToNil(req.Email),
		Phone:     req.Phone,
		BirthDate: parseDate(req.BirthDate),
		Gender:    req.Gender,
		ProfileID: req.ProfileID,
	}
}

type UpdatePersonRequest struct {
	FullName  *string `json:"full_name"`
	CPF       *string `json:"cpf"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	BirthDate *string `json:"birth_date"`
	Gender    *string `json:"gender"`
	ProfileID *uint   `json:"profile_id"`
}

func (req *UpdatePersonRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FullName, validation.NilOrNotEmpty, validation.Length(2, 255)),
		validation.Field(&req.CPF, cpfRule),
		validation.Field(&req.Email, is.Email, validation.Length(0, 255)),
		validation.Field(&req.Phone, validation.Match(phonePattern)),
		validation.Field(&req.BirthDate, validation.Date(dateLayout)),
		validation.Field(&req.Gender, validation.Length(0, 20)),
		validation.Field(&req.ProfileID, validation.NilOrNotEmpty),
	)
}

func (req *UpdatePersonRequest) ToUpdate() service.PersonUpdate {
	return service.PersonUpdate{
		FullName:  req.FullName,
		CPF:       req.CPF,
		Email:     req.Email,
		Phone:     req.Phone,
		BirthDate: parseDate(req.BirthDate),
		Gender:    req.Gender,
		ProfileID: req.ProfileID,
	}
}

type CreateAddressRequest struct {
	PersonID   uint   `json:"person_id" example:"1"`
	CityID     uint   `json:"city_id" example:"1"`
	ZipCode    string `json:"zip_code" example:"95900-000"`
	Street     string `json:"street" example:"Rua Júlio de Castilhos"`
	Number     string `json:"number" example:"120"`
	Complement string `json:"complement"`
	District   string `json:"district" example:"Centro"`
	IsPrimary  bool   `json:"is_primary"`
}

func (req *CreateAddressRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PersonID, validation.Required),
		validation.Field(&req.CityID, validation.Required),
		validation.Field(&req.ZipCode, validation.Required, validation.Match(zipCodePattern)),
		validation.Field(&req.Street, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Number, validation.Required, validation.Length(1, 20)),
		validation.Field(&req.Complement, validation.Length(0, 100)),
		validation.Field(&req.District, validation.Required, validation.Length(1, 100)),
	)
}

func (req *CreateAddressRequest) ToDomain() domain.Address {
	return domain.Address{
		PersonID:   req.PersonID,
		CityID:     req.CityID,
		ZipCode:    req.ZipCode,
		Street:     req.Street,
		Number:     req.Number,
		Complement: req.Complement,
		District:   req.District,
		IsPrimary:  req.IsPrimary,
	}
}

type UpdateAddressRequest struct {
	CityID     *uint   `json:"city_id"`
	ZipCode    *string `json:"zip_code"`
	Street     *string `json:"street"`
	Number     *string `json:"number"`
	Complement *string `json:"complement"`
	District   *string `json:"district"`
	IsPrimary  *bool   `json:"is_primary"`
}

func (req *UpdateAddressRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CityID, validation.NilOrNotEmpty),
		validation.Field(&req.ZipCode, validation.NilOrNotEmpty, validation.Match(zipCodePattern)),
		validation.Field(&req.Street, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&req.Number, validation.NilOrNotEmpty, validation.Length(1, 20)),
		validation.Field(&req.Complement, validation.Length(0, 100)),
		validation.Field(&req.District, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

func (req *UpdateAddressRequest) ToUpdate() service.AddressUpdate {
	return service.AddressUpdate{
		CityID:     req.CityID,
		ZipCode:    req.ZipCode,
		Street:     req.Street,
		Number:     req.Number,
		Complement: req.Complement,
		District:   req.District,
		IsPrimary:  req.IsPrimary,
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}

	return s
}
