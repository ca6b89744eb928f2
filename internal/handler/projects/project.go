package projects

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"portfolio-api/internal/api"
	"portfolio-api/internal/cache"
	"portfolio-api/internal/database"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
	"portfolio-api/internal/store"
	"portfolio-api/internal/worker"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var (
	createProject    = store.CreateProject
	getProjectByID   = store.GetProjectByID
	getProjectBySlug = store.GetProjectBySlug
	listProjects     = store.ListProjects
	updateProject    = store.UpdateProject
	deleteProject    = store.DeleteProject
)

func cacheKey(slug string) string {
	return "project:slug:" + slug
}

// @Summary     Create a project
// @Description Persists a new project owned by the authenticated user
// @Tags        projects
// @Accept      json
// @Produce     json
// @Param       body body api.CreateProjectRequest true "project fields"
// @Success     201 {object} api.ProjectResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /projects [post]
func CreateProjectHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateProjectRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "title, slug, description and content are required"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "title, slug, description and content are required"})
		}

		claims := c.Get(middleware.ContextUserKey).(*service.CustomClaims)

		if _, err := getProjectBySlug(c.Request().Context(), db, req.Slug); err == nil {
			return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "Slug already in use"})
		}

		project := &model.Project{
			Title:       req.Title,
			Slug:        req.Slug,
			Description: req.Description,
			Content:     req.Content,
			LiveURL:     req.LiveURL,
			RepoURL:     req.RepoURL,
			ImageURL:    req.ImageURL,
			Featured:    req.Featured,
			AuthorID:    claims.UserID,
		}

		created, err := createProject(c.Request().Context(), db, project)
		if err != nil {
			if database.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "Slug already in use"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Internal server error", Error: err.Error()})
		}

		return c.JSON(http.StatusCreated, api.ProjectResponse{Success: true, Project: *created})
	}
}

// @Summary     List projects
// @Description Returns all projects newest-first, optionally filtered on featured
// @Tags        projects
// @Produce     json
// @Param       featured query string false "filter on featured (true/false)"
// @Success     200 {object} api.ProjectListResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /projects [get]
func ListProjectsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var featured *bool
		if c.QueryParams().Has("featured") {
			v := strings.EqualFold(c.QueryParam("featured"), "true")
			featured = &v
		}

		projects, err := listProjects(c.Request().Context(), db, featured)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Internal server error", Error: err.Error()})
		}

		return c.JSON(http.StatusOK, api.ProjectListResponse{Success: true, Projects: projects})
	}
}

// @Summary     Get a project by slug
// @Description Returns one project with its author, read through the cache
// @Tags        projects
// @Produce     json
// @Param       slug path string true "project slug"
// @Success     200 {object} api.ProjectResponse
// @Failure     404 {object} api.ErrorResponse
// @Router      /projects/{slug} [get]
func GetProjectHandler(db database.DB, rdb cache.Cache, ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("slug")

		if data, err := rdb.Get(c.Request().Context(), cacheKey(slug)).Bytes(); err == nil {
			var cached model.Project
			if err := json.Unmarshal(data, &cached); err == nil {
				return c.JSON(http.StatusOK, api.ProjectResponse{Success: true, Project: cached})
			}
		}

		project, err := getProjectBySlug(c.Request().Context(), db, slug)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Project not found"})
		}

		if data, err := json.Marshal(project); err == nil {
			rdb.Set(c.Request().Context(), cacheKey(slug), data, ttl)
		}

		return c.JSON(http.StatusOK, api.ProjectResponse{Success: true, Project: *project})
	}
}

// @Summary     Update a project
// @Description Applies a partial update; only the author or an admin may update
// @Tags        projects
// @Accept      json
// @Produce     json
// @Param       id   path string                   true "project id"
// @Param       body body api.UpdateProjectRequest true "fields to change"
// @Success     200 {object} api.ProjectResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /projects/{id} [put]
func UpdateProjectHandler(db database.DB, rdb cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid project ID"})
		}

		var req api.UpdateProjectRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}

		project, err := getProjectByID(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Project not found"})
		}

		claims := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		if !service.CanMutate(claims, project.AuthorID) {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "Forbidden: not allowed to update this project"})
		}

		if req.Empty() {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "No fields provided to update"})
		}

		oldSlug := project.Slug
		if req.Slug != nil && *req.Slug != project.Slug {
			if _, err := getProjectBySlug(c.Request().Context(), db, *req.Slug); err == nil {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "Slug already in use"})
			}
			project.Slug = *req.Slug
		}
		if req.Title != nil {
			project.Title = *req.Title
		}
		if req.Description != nil {
			project.Description = *req.Description
		}
		if req.Content != nil {
			project.Content = *req.Content
		}
		if req.LiveURL != nil {
			project.LiveURL = req.LiveURL
		}
		if req.RepoURL != nil {
			project.RepoURL = req.RepoURL
		}
		if req.ImageURL != nil {
			project.ImageURL = req.ImageURL
		}
		if req.Featured != nil {
			project.Featured = *req.Featured
		}

		if err := updateProject(c.Request().Context(), db, project); err != nil {
			if database.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "Slug already in use"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Internal server error", Error: err.Error()})
		}

		wp.Submit(func() {
			rdb.Del(context.Background(), cacheKey(oldSlug), cacheKey(project.Slug))
		})

		return c.JSON(http.StatusOK, api.ProjectResponse{Success: true, Project: *project})
	}
}

// @Summary     Delete a project
// @Description Deletes a project; only the author or an admin may delete
// @Tags        projects
// @Produce     json
// @Param       id path string true "project id"
// @Success     200 {object} api.ProjectDeletedResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /projects/{id} [delete]
func DeleteProjectHandler(db database.DB, rdb cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid project ID"})
		}

		project, err := getProjectByID(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Project not found"})
		}

		claims := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		if !service.CanMutate(claims, project.AuthorID) {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "Forbidden: not allowed to delete this project"})
		}

		if err := deleteProject(c.Request().Context(), db, id); err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Internal server error", Error: err.Error()})
		}

		wp.Submit(func() {
			rdb.Del(context.Background(), cacheKey(project.Slug))
		})

		return c.JSON(http.StatusOK, api.ProjectDeletedResponse{Success: true, Deleted: *project})
	}
}
