package model

import (
	"time"

	"github.com/google/uuid"
)

// Author is the minimal owner projection embedded in content responses.
// Role is only populated on single-article fetches.
type Author struct {
	ID    int    `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`
	Role  string `db:"role" json:"role,omitempty"`
}

type Article struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	Excerpt     *string    `db:"excerpt" json:"excerpt"`
	Content     string     `db:"content" json:"content"`
	Published   bool       `db:"published" json:"published"`
	PublishedAt *time.Time `db:"published_at" json:"publishedAt"`
	AuthorID    int        `db:"author_id" json:"authorId"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
	Author      *Author    `db:"-" json:"author,omitempty"`
}
