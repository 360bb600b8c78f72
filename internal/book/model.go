package book

import "time"

type Status string

const (
	StatusDraft       Status = "draft"
	StatusPublished   Status = "published"
	StatusUnpublished Status = "unpublished"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusUnpublished:
		return true
	}
	return false
}

// Book mirrors the server's catalog record.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	ISBN        string    `json:"isbn"`
	Publisher   string    `json:"publisher"`
	Pages       int       `json:"pages"`
	Language    string    `json:"language"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Status      Status    `json:"status"`
	LibrarianID string    `json:"librarianId"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"reviewCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Categories is the fixed catalog taxonomy; the server rejects anything
// outside it.
var Categories = []string{
	"Fiction", "Non-Fiction", "Science Fiction", "Fantasy", "Mystery",
	"Thriller", "Romance", "Horror", "Biography", "History", "Science",
	"Technology", "Business", "Self-Help", "Children", "Young Adult",
	"Poetry", "Drama", "Religion", "Philosophy", "Art", "Travel",
	"Cookbook", "Health", "Education",
}

func ValidCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

type SortField string

const (
	SortTitle  SortField = "title"
	SortPrice  SortField = "price"
	SortDate   SortField = "date"
	SortRating SortField = "rating"
)

// ListQuery narrows and orders a catalog listing. The zero value lists
// everything in server order.
type ListQuery struct {
	Category   string
	Search     string
	SortBy     SortField
	Descending bool
}

// CreateRequest is the librarian's new-book payload. Books start as drafts;
// publishing is a separate status change.
type CreateRequest struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	ISBN        string  `json:"isbn"`
	Publisher   string  `json:"publisher"`
	Pages       int     `json:"pages"`
	Language    string  `json:"language"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// UpdateRequest carries only the fields being changed; nil pointers are
// omitted from the PATCH body.
type UpdateRequest struct {
	Title       *string  `json:"title,omitempty"`
	Author      *string  `json:"author,omitempty"`
	Description *string  `json:"description,omitempty"`
	Publisher   *string  `json:"publisher,omitempty"`
	Pages       *int     `json:"pages,omitempty"`
	Language    *string  `json:"language,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Image       *string  `json:"image,omitempty"`
}
