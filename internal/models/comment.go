package models

import "time"

// Comment represents a comment on a post. ParentCommentID threads replies;
// nil means a top-level comment.
type Comment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	PostID          uint      `json:"post_id" gorm:"index:idx_comments_post_created"`
	AuthorID        uint      `json:"author_id" gorm:"index"`
	ParentCommentID *uint     `json:"parent_comment_id,omitempty" gorm:"index"`
	Content         string    `json:"content" gorm:"size:1000"`
	CreatedAt       time.Time `json:"created_at" gorm:"index:idx_comments_post_created"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Replies go with their parent
	Replies []Comment `json:"-" gorm:"foreignKey:ParentCommentID;constraint:OnDelete:CASCADE"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content         string `json:"content" validate:"required,min=1,max=1000"`
	ParentCommentID *uint  `json:"parent_comment_id,omitempty"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}
