package domain

import "time"

type NewsStatus string

const (
	NewsDraft     NewsStatus = "draft"
	NewsPublished NewsStatus = "published"
)

func (s NewsStatus) Valid() bool {
	return s == NewsDraft || s == NewsPublished
}

type News struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Subtitle    string        `json:"subtitle,omitempty"`
	Content     string        `json:"content"`
	CategoryID  uint          `json:"category_id"`
	Category    *NewsCategory `json:"category,omitempty"`
	AuthorID    uint          `json:"author_id"`
	Highlighted bool          `json:"highlighted"`
	Status      NewsStatus    `json:"status"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
	ViewCount   int           `json:"view_count"`
	Images      []NewsImage   `json:"images,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type NewsImage struct {
	ID         uint      `json:"id"`
	NewsID     uint      `json:"news_id"`
	URL        string    `json:"url"`
	Caption    string    `json:"caption,omitempty"`
	Position   int       `json:"position"`
	IsPrimary  bool      `json:"is_primary"`
	UploadedAt time.Time `json:"uploaded_at"`
}
