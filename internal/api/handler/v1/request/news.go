package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/service"
)

var newsStatuses = []interface{}{string(domain.NewsDraft), string(domain.NewsPublished)}

type CreateNewsRequest struct {
	Title       string `json:"title" example:"Shelter opened at the municipal gym"`
	Subtitle    string `json:"subtitle"`
	Content     string `json:"content"`
	CategoryID  uint   `json:"category_id" example:"2"`
	Highlighted bool   `json:"highlighted"`
	Status      string `json:"status" example:"draft"`
	AdminID     uint   `json:"admin_id" example:"1"`
}

func (req *CreateNewsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(3, 255)),
		validation.Field(&req.Subtitle, validation.Length(0, 255)),
		validation.Field(&req.Content, validation.Required),
		validation.Field(&req.CategoryID, validation.Required),
		validation.Field(&req.Status, validation.In(newsStatuses...)),
		validation.Field(&req.AdminID, validation.Required),
	)
}

func (req *CreateNewsRequest) ToDomain() domain.News {
	return domain.News{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Content:     req.Content,
		CategoryID:  req.CategoryID,
		Highlighted: req.Highlighted,
		Status:      domain.NewsStatus(req.Status),
	}
}

type UpdateNewsRequest struct {
	Title       *string `json:"title"`
	Subtitle    *string `json:"subtitle"`
	Content     *string `json:"content"`
	CategoryID  *uint   `json:"category_id"`
	Highlighted *bool   `json:"highlighted"`
	Status      *string `json:"status"`
}

func (req *UpdateNewsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.Length(3, 255)),
		validation.Field(&req.Subtitle, validation.Length(0, 255)),
		validation.Field(&req.Content, validation.NilOrNotEmpty),
		validation.Field(&req.CategoryID, validation.NilOrNotEmpty),
		validation.Field(&req.Status, validation.In(newsStatuses...)),
	)
}

func (req *UpdateNewsRequest) ToUpdate() service.NewsUpdate {
	upd := service.NewsUpdate{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Content:     req.Content,
		CategoryID:  req.CategoryID,
		Highlighted: req.Highlighted,
	}
	if req.Status != nil {
		status := domain.NewsStatus(*req.Status)
		upd.Status = &status
	}

	return upd
}

type HighlightRequest struct {
	Highlighted *bool `json:"highlighted" example:"true"`
}

func (req *HighlightRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Highlighted, validation.NotNil),
	)
}

type CreateNewsImageRequest struct {
	NewsID    uint   `json:"news_id" example:"1"`
	URL       string `json:"url" example:"https://cdn.example.org/news/1.jpg"`
	Caption   string `json:"caption"`
	Position  *int   `json:"position"`
	IsPrimary bool   `json:"is_primary"`
}

func (req *CreateNewsImageRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.NewsID, validation.Required),
		validation.Field(&req.URL, validation.Required, is.URL, validation.Length(0, 500)),
		validation.Field(&req.Caption, validation.Length(0, 255)),
		validation.Field(&req.Position, validation.Min(0)),
	)
}

func (req *CreateNewsImageRequest) ToDomain() domain.NewsImage {
	return domain.NewsImage{
		NewsID:    req.NewsID,
		URL:       req.URL,
		Caption:   req.Caption,
		IsPrimary: req.IsPrimary,
	}
}

type UpdateNewsImageRequest struct {
	URL       *string `json:"url"`
	Caption   *string `json:"caption"`
	Position  *int    `json:"position"`
	IsPrimary *bool   `json:"is_primary"`
}

func (req *UpdateNewsImageRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.URL, validation.NilOrNotEmpty, is.URL, validation.Length(0, 500)),
		validation.Field(&req.Caption, validation.Length(0, 255)),
		validation.Field(&req.Position, validation.Min(0)),
	)
}

func (req *UpdateNewsImageRequest) ToUpdate() service.NewsImageUpdate {
	return service.NewsImageUpdate{
		URL:       req.URL,
		Caption:   req.Caption,
		Position:  req.Position,
		IsPrimary: req.IsPrimary,
	}
}

// ReorderImagesRequest maps image IDs to their new positions, e.g. {"positions": {"12": 0, "15": 1}}.
type ReorderImagesRequest struct {
	Positions map[uint]int `json:"positions"`
}

func (req *ReorderImagesRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Positions, validation.Required),
	)
}
