package models

// Book represents a book in the library catalog
type Book struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Title           string `json:"title" gorm:"size:200;index"`
	PublicationYear int    `json:"publication_year" gorm:"index"`
	AuthorID        uint   `json:"author" gorm:"index"`
}

// CreateBookRequest defines the request body for creating a new book.
// PublicationYear is additionally checked against the current calendar year
// in the handler; that rule needs the clock, not just a tag.
type CreateBookRequest struct {
	Title           string `json:"title" validate:"required,min=1,max=200"`
	PublicationYear int    `json:"publication_year" validate:"required"`
	AuthorID        uint   `json:"author" validate:"required"`
}

// UpdateBookRequest defines the request body for updating a book. Pointer
// fields make the partial update exact: nil means untouched, while a
// provided value is applied and validated even when it is a zero.
type UpdateBookRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitnil,min=1,max=200"`
	PublicationYear *int    `json:"publication_year,omitempty"`
	AuthorID        *uint   `json:"author,omitempty"`
}
