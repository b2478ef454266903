package models

import "time"

// Post represents a blog/feed post
type Post struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	AuthorID      uint      `json:"author_id" gorm:"index:idx_posts_author_created"`
	Title         string    `json:"title" gorm:"size:200"`
	Content       string    `json:"content" gorm:"size:5000"`
	PublishedDate time.Time `json:"published_date"`
	CreatedAt     time.Time `json:"created_at" gorm:"index:idx_posts_author_created"`
	UpdatedAt     time.Time `json:"updated_at"`

	Tags []Tag `json:"tags,omitempty" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE"`

	// Comments and likes are deleted with their post
	Comments []Comment `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Likes    []Like    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// Tag is a label attached to posts
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;uniqueIndex"`
}

type CreatePostRequest struct {
	Title   string   `json:"title" validate:"required,min=1,max=200"`
	Content string   `json:"content" validate:"required,min=1,max=5000"`
	Tags    []string `json:"tags" validate:"omitempty,dive,min=1,max=50"`
}

type UpdatePostRequest struct {
	Title   string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content string   `json:"content,omitempty" validate:"omitempty,min=1,max=5000"`
	Tags    []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
}

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}
