package store

import (
	"context"
	"fmt"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"

	"github.com/google/uuid"
)

func CreateArticle(ctx context.Context, db database.DB, a *model.Article) (*model.Article, error) {
	a.ID = uuid.New()
	row := db.QueryRow(ctx,
		`INSERT INTO articles (id, title, slug, excerpt, content, published, published_at, author_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at`,
		a.ID,
		a.Title,
		a.Slug,
		a.Excerpt,
		a.Content,
		a.Published,
		a.PublishedAt,
		a.AuthorID,
	)
	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateArticle: %w", err)
	}
	return a, nil
}

func GetArticleByID(ctx context.Context, db database.DB, articleID uuid.UUID) (*model.Article, error) {
	row := db.QueryRow(ctx,
		`SELECT id, title, slug, excerpt, content, published, published_at, author_id, created_at, updated_at
		 FROM articles WHERE id = $1`,
		articleID,
	)
	a := &model.Article{}
	if err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Slug,
		&a.Excerpt,
		&a.Content,
		&a.Published,
		&a.PublishedAt,
		&a.AuthorID,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetArticleByID: %w", err)
	}
	return a, nil
}

// GetArticleBySlug loads one article with its author projection, role
// included.
func GetArticleBySlug(ctx context.Context, db database.DB, slug string) (*model.Article, error) {
	row := db.QueryRow(ctx,
		`SELECT a.id, a.title, a.slug, a.excerpt, a.content, a.published, a.published_at,
		        a.author_id, a.created_at, a.updated_at,
		        u.id, u.email, u.name, u.role
		 FROM articles a
		 JOIN users u ON u.id = a.author_id
		 WHERE a.slug = $1`,
		slug,
	)
	a := &model.Article{Author: &model.Author{}}
	if err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Slug,
		&a.Excerpt,
		&a.Content,
		&a.Published,
		&a.PublishedAt,
		&a.AuthorID,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.Author.ID,
		&a.Author.Email,
		&a.Author.Name,
		&a.Author.Role,
	); err != nil {
		return nil, fmt.Errorf("GetArticleBySlug: %w", err)
	}
	return a, nil
}

// ListArticles returns all articles newest-created-first, optionally
// filtered on published, each with the id/email/name author projection.
func ListArticles(ctx context.Context, db database.DB, published *bool) ([]model.Article, error) {
	query := `SELECT a.id, a.title, a.slug, a.excerpt, a.content, a.published, a.published_at,
	                 a.author_id, a.created_at, a.updated_at,
	                 u.id, u.email, u.name
	          FROM articles a
	          JOIN users u ON u.id = a.author_id`
	args := []any{}
	if published != nil {
		query += ` WHERE a.published = $1`
		args = append(args, *published)
	}
	query += ` ORDER BY a.created_at DESC`

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListArticles: %w", err)
	}
	defer rows.Close()

	articles := []model.Article{}
	for rows.Next() {
		a := model.Article{Author: &model.Author{}}
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Slug,
			&a.Excerpt,
			&a.Content,
			&a.Published,
			&a.PublishedAt,
			&a.AuthorID,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.Author.ID,
			&a.Author.Email,
			&a.Author.Name,
		); err != nil {
			return nil, fmt.Errorf("ListArticles: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListArticles: %w", err)
	}
	return articles, nil
}

func UpdateArticle(ctx context.Context, db database.DB, a *model.Article) error {
	row := db.QueryRow(ctx,
		`UPDATE articles
		 SET title = $1, slug = $2, excerpt = $3, content = $4, published = $5,
		     published_at = $6, updated_at = now()
		 WHERE id = $7
		 RETURNING updated_at`,
		a.Title,
		a.Slug,
		a.Excerpt,
		a.Content,
		a.Published,
		a.PublishedAt,
		a.ID,
	)
	if err := row.Scan(&a.UpdatedAt); err != nil {
		return fmt.Errorf("UpdateArticle: %w", err)
	}
	return nil
}

func DeleteArticle(ctx context.Context, db database.DB, articleID uuid.UUID) error {
	_, err := db.Exec(ctx,
		`DELETE FROM articles WHERE id = $1`,
		articleID,
	)
	if err != nil {
		return fmt.Errorf("DeleteArticle: %w", err)
	}
	return nil
}
