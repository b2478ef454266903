package models

// Author represents a book author in the library catalog
type Author struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:200;index"`

	// Books are deleted with their author
	Books []Book `json:"books,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

type CreateAuthorRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

type UpdateAuthorRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}
