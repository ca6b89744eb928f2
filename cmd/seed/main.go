// Command seed populates the database with an admin user and sample
// content. Safe to run repeatedly: existing records are left alone.
package main

import (
	"context"
	"os"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	"portfolio-api/internal/logger"
	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
	"portfolio-api/internal/store"
)

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	runMigrationsFn = database.RunMigrations
	exitFunc        = os.Exit
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin1234"
)

func strPtr(s string) *string { return &s }

func run() error {
	log := logger.New()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return err
	}

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	admin, err := store.GetUserByEmail(ctx, db, adminEmail)
	if err != nil {
		hash, err := service.HashPassword(adminPassword)
		if err != nil {
			return err
		}
		admin, err = store.CreateUser(ctx, db, &model.User{
			Email:        adminEmail,
			Name:         "Administrator",
			Role:         model.RoleAdmin,
			PasswordHash: hash,
		})
		if err != nil {
			return err
		}
		log.Info().Str("email", adminEmail).Msg("admin user seeded")
	} else {
		log.Info().Str("email", adminEmail).Msg("admin already exists, using existing user")
	}

	now := time.Now()
	articles := []model.Article{
		{
			Title:       "Welcome to Our Company",
			Slug:        "welcome-to-our-company",
			Excerpt:     strPtr("An introduction to our company and mission."),
			Content:     "Welcome! This is the company blog. We do great things and serve our customers with pride.",
			Published:   true,
			PublishedAt: &now,
		},
		{
			Title:   "Latest Updates",
			Slug:    "latest-updates",
			Excerpt: strPtr("Updates on our recent activities."),
			Content: "Here are the latest updates from our team. Stay tuned for more news.",
		},
	}
	for i := range articles {
		a := &articles[i]
		if _, err := store.GetArticleBySlug(ctx, db, a.Slug); err == nil {
			log.Info().Str("slug", a.Slug).Msg("article already exists, skipping")
			continue
		}
		a.AuthorID = admin.ID
		if _, err := store.CreateArticle(ctx, db, a); err != nil {
			return err
		}
		log.Info().Str("slug", a.Slug).Msg("article seeded")
	}

	projects := []model.Project{
		{
			Title:       "Project Alpha",
			Slug:        "project-alpha",
			Description: "A flagship project demonstrating our capabilities.",
			Content:     "Project Alpha is a demonstration of our core platform and integrations.",
			LiveURL:     strPtr("https://example.com/alpha"),
			RepoURL:     strPtr("https://github.com/example/alpha"),
			ImageURL:    strPtr("https://picsum.photos/800/600"),
			Featured:    true,
		},
		{
			Title:       "Project Beta",
			Slug:        "project-beta",
			Description: "An experimental side project.",
			Content:     "Project Beta explores new ideas that may graduate into the main platform.",
			RepoURL:     strPtr("https://github.com/example/beta"),
		},
	}
	for i := range projects {
		p := &projects[i]
		if _, err := store.GetProjectBySlug(ctx, db, p.Slug); err == nil {
			log.Info().Str("slug", p.Slug).Msg("project already exists, skipping")
			continue
		}
		p.AuthorID = admin.ID
		if _, err := store.CreateProject(ctx, db, p); err != nil {
			return err
		}
		log.Info().Str("slug", p.Slug).Msg("project seeded")
	}

	return nil
}

func main() {
	log := logger.New()
	if err := run(); err != nil {
		log.Error().Err(err).Msg("seed failed")
		exitFunc(1)
	}
}
