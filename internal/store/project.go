package store

import (
	"context"
	"fmt"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"

	"github.com/google/uuid"
)

func CreateProject(ctx context.Context, db database.DB, p *model.Project) (*model.Project, error) {
	p.ID = uuid.New()
	row := db.QueryRow(ctx,
		`INSERT INTO projects (id, title, slug, description, content, live_url, repo_url, image_url, featured, author_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at`,
		p.ID,
		p.Title,
		p.Slug,
		p.Description,
		p.Content,
		p.LiveURL,
		p.RepoURL,
		p.ImageURL,
		p.Featured,
		p.AuthorID,
	)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateProject: %w", err)
	}
	return p, nil
}

func GetProjectByID(ctx context.Context, db database.DB, projectID uuid.UUID) (*model.Project, error) {
	row := db.QueryRow(ctx,
		`SELECT id, title, slug, description, content, live_url, repo_url, image_url, featured, author_id, created_at, updated_at
		 FROM projects WHERE id = $1`,
		projectID,
	)
	p := &model.Project{}
	if err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Description,
		&p.Content,
		&p.LiveURL,
		&p.RepoURL,
		&p.ImageURL,
		&p.Featured,
		&p.AuthorID,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetProjectByID: %w", err)
	}
	return p, nil
}

func GetProjectBySlug(ctx context.Context, db database.DB, slug string) (*model.Project, error) {
	row := db.QueryRow(ctx,
		`SELECT p.id, p.title, p.slug, p.description, p.content, p.live_url, p.repo_url, p.image_url,
		        p.featured, p.author_id, p.created_at, p.updated_at,
		        u.id, u.email, u.name
		 FROM projects p
		 JOIN users u ON u.id = p.author_id
		 WHERE p.slug = $1`,
		slug,
	)
	p := &model.Project{Author: &model.Author{}}
	if err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Description,
		&p.Content,
		&p.LiveURL,
		&p.RepoURL,
		&p.ImageURL,
		&p.Featured,
		&p.AuthorID,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.Author.ID,
		&p.Author.Email,
		&p.Author.Name,
	); err != nil {
		return nil, fmt.Errorf("GetProjectBySlug: %w", err)
	}
	return p, nil
}

// ListProjects returns all projects newest-created-first, optionally
// filtered on featured, each with the id/email/name author projection.
func ListProjects(ctx context.Context, db database.DB, featured *bool) ([]model.Project, error) {
	query := `SELECT p.id, p.title, p.slug, p.description, p.content, p.live_url, p.repo_url, p.image_url,
	                 p.featured, p.author_id, p.created_at, p.updated_at,
	                 u.id, u.email, u.name
	          FROM projects p
	          JOIN users u ON u.id = p.author_id`
	args := []any{}
	if featured != nil {
		query += ` WHERE p.featured = $1`
		args = append(args, *featured)
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListProjects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p := model.Project{Author: &model.Author{}}
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Slug,
			&p.Description,
			&p.Content,
			&p.LiveURL,
			&p.RepoURL,
			&p.ImageURL,
			&p.Featured,
			&p.AuthorID,
			&p.CreatedAt,
			&p.UpdatedAt,
			&p.Author.ID,
			&p.Author.Email,
			&p.Author.Name,
		); err != nil {
			return nil, fmt.Errorf("ListProjects: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListProjects: %w", err)
	}
	return projects, nil
}

func UpdateProject(ctx context.Context, db database.DB, p *model.Project) error {
	row := db.QueryRow(ctx,
		`UPDATE projects
		 SET title = $1, slug = $2, description = $3, content = $4, live_url = $5,
		     repo_url = $6, image_url = $7, featured = $8, updated_at = now()
		 WHERE id = $9
		 RETURNING updated_at`,
		p.Title,
		p.Slug,
		p.Description,
		p.Content,
		p.LiveURL,
		p.RepoURL,
		p.ImageURL,
		p.Featured,
		p.ID,
	)
	if err := row.Scan(&p.UpdatedAt); err != nil {
		return fmt.Errorf("UpdateProject: %w", err)
	}
	return nil
}

func DeleteProject(ctx context.Context, db database.DB, projectID uuid.UUID) error {
	_, err := db.Exec(ctx,
		`DELETE FROM projects WHERE id = $1`,
		projectID,
	)
	if err != nil {
		return fmt.Errorf("DeleteProject: %w", err)
	}
	return nil
}
