package articles

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
	createArticle    = store.CreateArticle
	getArticleByID   = store.GetArticleByID
	getArticleBySlug = store.GetArticleBySlug
	listArticles     = store.ListArticles
	updateArticle    = store.UpdateArticle
	deleteArticle    = store.DeleteArticle
	timeNow          = time.Now
)

func cacheKey(slug string) string {
	return "article:slug:" + slug
}

// @Summary     Create an article
// @Description Persists a new article owned by the authenticated user
// @Tags        articles
// @Accept      json
// @Produce     json
// @Param       body body api.CreateArticleRequest true "article fields"
// @Success     201 {object} api.ArticleResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /articles [post]
func CreateArticleHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateArticleRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "title, slug and content are required"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "title, slug and content are required"})
		}

		claims := c.Get(middleware.ContextUserKey).(*service.CustomClaims)

		if _, err := getArticleBySlug(c.Request().Context(), db, req.Slug); err == nil {
			return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "Slug already in use"})
		}

		article := &model.Article{
			Title:     req.Title,
			Slug:      req.Slug,
			Excerpt:   req.Excerpt,
			Content:   req.Content,
			Published: req.Published,
			AuthorID:  claims.UserID,
		}
		if req.Published {
			now := timeNow()
			article.PublishedAt = &now
		}

		created, err := createArticle(c.Request().Context(), db, article)
		if err != nil {
			// A racing create can pass the pre-check and still hit the
			// unique index.
			if database.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "Slug already in use"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Internal server error", Error: err.Error()})
		}

		return c.JSON(http.StatusCreated, api.ArticleResponse{Success: true, Article: *created})
	}
}

// @Summary     List articles
// @Description Returns all articles newest-first, optionally filtered on published
// @Tags        articles
// @Produce     json
// @Param       published query string false "filter on published (true/false)"
// @Success     200 {object} api.ArticleListResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /articles [get]
func ListArticlesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var published *bool
		if c.QueryParams().Has("published") {
			v := strings.EqualFold(c.QueryParam("published"), "true")
			published = &v
		}

		articles, err := listArticles(c.Request().Context(), db, published)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Internal server error", Error: err.Error()})
		}

		return c.JSON(http.StatusOK, api.ArticleListResponse{Success: true, Articles: articles})
	}
}

// @Summary     Get an article by slug
// @Description Returns one article with its author, read through the cache
// @Tags        articles
// @Produce     json
// @Param       slug path string true "article slug"
// @Success     200 {object} api.ArticleResponse
// @Failure     404 {object} api.ErrorResponse
// @Router      /articles/{slug} [get]
func GetArticleHandler(db database.DB, rdb cache.Cache, ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("slug")

		if data, err := rdb.Get(c.Request().Context(), cacheKey(slug)).Bytes(); err == nil {
			var cached model.Article
			if err := json.Unmarshal(data, &cached); err == nil {
				return c.JSON(http.StatusOK, api.ArticleResponse{Success: true, Article: cached})
			}
		}

		article, err := getArticleBySlug(c.Request().Context(), db, slug)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Article not found"})
		}

		if data, err := json.Marshal(article); err == nil {
			rdb.Set(c.Request().Context(), cacheKey(slug), data, ttl)
		}

		return c.JSON(http.StatusOK, api.ArticleResponse{Success: true, Article: *article})
	}
}

// @Summary     Update an article
// @Description Applies a partial update; only the author or an admin may update
// @Tags        articles
// @Accept      json
// @Produce     json
// @Param       id   path string                   true "article id"
// @Param       body body api.UpdateArticleRequest true "fields to change"
// @Success     200 {object} api.ArticleResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /articles/{id} [put]
func UpdateArticleHandler(db database.DB, rdb cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid article ID"})
		}

		var req api.UpdateArticleRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}

		article, err := getArticleByID(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Article not found"})
		}

		claims := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		if !service.CanMutate(claims, article.AuthorID) {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "Forbidden: not allowed to update this article"})
		}

		if req.Empty() {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "No fields provided to update"})
		}

		oldSlug := article.Slug
		if req.Slug != nil && *req.Slug != article.Slug {
			if _, err := getArticleBySlug(c.Request().Context(), db, *req.Slug); err == nil {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "Slug already in use"})
			}
			article.Slug = *req.Slug
		}
		if req.Title != nil {
			article.Title = *req.Title
		}
		if req.Excerpt != nil {
			article.Excerpt = req.Excerpt
		}
		if req.Content != nil {
			article.Content = *req.Content
		}
		if req.Published != nil {
			if *req.Published {
				// Re-saving an already-published article keeps its
				// original publish time.
				if article.PublishedAt == nil {
					now := timeNow()
					article.PublishedAt = &now
				}
			} else {
				article.PublishedAt = nil
			}
			article.Published = *req.Published
		}

		if err := updateArticle(c.Request().Context(), db, article); err != nil {
			if database.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "Slug already in use"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Internal server error", Error: err.Error()})
		}

		wp.Submit(func() {
			rdb.Del(context.Background(), cacheKey(oldSlug), cacheKey(article.Slug))
		})

		return c.JSON(http.StatusOK, api.ArticleResponse{Success: true, Article: *article})
	}
}

// @Summary     Delete an article
// @Description Deletes an article; only the author or an admin may delete
// @Tags        articles
// @Produce     json
// @Param       id path string true "article id"
// @Success     200 {object} api.ArticleDeletedResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /articles/{id} [delete]
func DeleteArticleHandler(db database.DB, rdb cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid article ID"})
		}

		article, err := getArticleByID(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Article not found"})
		}

		claims := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		if !service.CanMutate(claims, article.AuthorID) {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "Forbidden: not allowed to delete this article"})
		}

		if err := deleteArticle(c.Request().Context(), db, id); err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Internal server error", Error: err.Error()})
		}

		wp.Submit(func() {
			rdb.Del(context.Background(), cacheKey(article.Slug))
		})

		return c.JSON(http.StatusOK, api.ArticleDeletedResponse{Success: true, Deleted: *article})
	}
}
