package model

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Slug        string    `db:"slug" json:"slug"`
	Description string    `db:"description" json:"description"`
	Content     string    `db:"content" json:"content"`
	LiveURL     *string   `db:"live_url" json:"liveUrl"`
	RepoURL     *string   `db:"repo_url" json:"repoUrl"`
	ImageURL    *string   `db:"image_url" json:"imageUrl"`
	Featured    bool      `db:"featured" json:"featured"`
	AuthorID    int       `db:"author_id" json:"authorId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
	Author      *Author   `db:"-" json:"author,omitempty"`
}
