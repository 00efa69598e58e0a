package domain

import (
	"time"
)

// Blog is a published blog entry. Image holds the media path of the
// uploaded cover image, empty when none was uploaded.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject"`
	Category  string    `json:"category"`
	Image     *string   `json:"image"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Project is a portfolio project entry.
type Project struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Image     *string   `json:"image"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
