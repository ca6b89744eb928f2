package projects

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-api/internal/api"
	"portfolio-api/internal/cache"
	"portfolio-api/internal/database"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
	"portfolio-api/internal/store"
	"portfolio-api/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func restore() {
	createProject = store.CreateProject
	getProjectByID = store.GetProjectByID
	getProjectBySlug = store.GetProjectBySlug
	listProjects = store.ListProjects
	updateProject = store.UpdateProject
	deleteProject = store.DeleteProject
}

type testValidator struct{ v *validator.Validate }

func (t *testValidator) Validate(i any) error { return t.v.Struct(i) }

type syncPool struct{}

func (syncPool) Submit(t worker.Task) { t() }
func (syncPool) Stop()                {}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateProjectHandler(t *testing.T) {
	db := &database.FakeDB{}
	claims := &service.CustomClaims{UserID: 3, Role: model.RoleUser}

	t.Run("missing required fields", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newJSONContext(http.MethodPost, "/api/projects", `{"title":"Alpha","slug":"alpha"}`)
		ctx.Set(middleware.ContextUserKey, claims)
		require.NoError(t, CreateProjectHandler(db)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "title, slug, description and content are required", resp.Message)
	})

	t.Run("slug already taken", func(t *testing.T) {
		t.Cleanup(restore)
		getProjectBySlug = func(context.Context, database.DB, string) (*model.Project, error) {
			return &model.Project{Slug: "alpha"}, nil
		}
		ctx, rec := newJSONContext(http.MethodPost, "/api/projects",
			`{"title":"Alpha","slug":"alpha","description":"d","content":"c"}`)
		ctx.Set(middleware.ContextUserKey, claims)
		require.NoError(t, CreateProjectHandler(db)(ctx))
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("success carries optional urls", func(t *testing.T) {
		t.Cleanup(restore)
		getProjectBySlug = func(context.Context, database.DB, string) (*model.Project, error) {
			return nil, errors.New("no rows")
		}
		createProject = func(_ context.Context, _ database.DB, p *model.Project) (*model.Project, error) {
			require.Equal(t, 3, p.AuthorID)
			require.NotNil(t, p.LiveURL)
			require.Equal(t, "https://alpha.example.com", *p.LiveURL)
			require.Nil(t, p.RepoURL)
			require.True(t, p.Featured)
			p.ID = uuid.New()
			return p, nil
		}
		ctx, rec := newJSONContext(http.MethodPost, "/api/projects",
			`{"title":"Alpha","slug":"alpha","description":"d","content":"c","liveUrl":"https://alpha.example.com","featured":true}`)
		ctx.Set(middleware.ContextUserKey, claims)
		require.NoError(t, CreateProjectHandler(db)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		var resp api.ProjectResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.True(t, resp.Success)
		require.Equal(t, "alpha", resp.Project.Slug)
	})

	t.Run("racing create hits unique index", func(t *testing.T) {
		t.Cleanup(restore)
		getProjectBySlug = func(context.Context, database.DB, string) (*model.Project, error) {
			return nil, errors.New("no rows")
		}
		createProject = func(context.Context, database.DB, *model.Project) (*model.Project, error) {
			return nil, &pgconn.PgError{Code: "23505", ConstraintName: "projects_slug_key"}
		}
		ctx, rec := newJSONContext(http.MethodPost, "/api/projects",
			`{"title":"Alpha","slug":"alpha","description":"d","content":"c"}`)
		ctx.Set(middleware.ContextUserKey, claims)
		require.NoError(t, CreateProjectHandler(db)(ctx))
		require.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestListProjectsHandler(t *testing.T) {
	db := &database.FakeDB{}

	t.Run("featured filter", func(t *testing.T) {
		t.Cleanup(restore)
		listProjects = func(_ context.Context, _ database.DB, featured *bool) ([]model.Project, error) {
			require.NotNil(t, featured)
			require.True(t, *featured)
			return []model.Project{{Slug: "alpha"}}, nil
		}
		ctx, rec := newJSONContext(http.MethodGet, "/api/projects?featured=true", "")
		require.NoError(t, ListProjectsHandler(db)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		var resp api.ProjectListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Projects, 1)
	})

	t.Run("no filter", func(t *testing.T) {
		t.Cleanup(restore)
		listProjects = func(_ context.Context, _ database.DB, featured *bool) ([]model.Project, error) {
			require.Nil(t, featured)
			return []model.Project{}, nil
		}
		ctx, rec := newJSONContext(http.MethodGet, "/api/projects", "")
		require.NoError(t, ListProjectsHandler(db)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Cleanup(restore)
		listProjects = func(context.Context, database.DB, *bool) ([]model.Project, error) {
			return nil, errors.New("db down")
		}
		ctx, rec := newJSONContext(http.MethodGet, "/api/projects", "")
		require.NoError(t, ListProjectsHandler(db)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetProjectHandler(t *testing.T) {
	db := &database.FakeDB{}
	const ttl = time.Minute

	t.Run("cache miss fills cache", func(t *testing.T) {
		t.Cleanup(restore)
		var setKey string
		rdb := &cache.FakeCache{
			GetFn: func(context.Context, string) *redis.StringCmd {
				return redis.NewStringResult("", redis.Nil)
			},
			SetFn: func(_ context.Context, key string, _ any, expiration time.Duration) *redis.StatusCmd {
				setKey = key
				require.Equal(t, ttl, expiration)
				return redis.NewStatusResult("OK", nil)
			},
		}
		getProjectBySlug = func(_ context.Context, _ database.DB, slug string) (*model.Project, error) {
			return &model.Project{Slug: slug, Title: "Alpha"}, nil
		}
		ctx, rec := newJSONContext(http.MethodGet, "/", "")
		ctx.SetParamNames("slug")
		ctx.SetParamValues("alpha")
		require.NoError(t, GetProjectHandler(db, rdb, ttl)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "project:slug:alpha", setKey)
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		rdb := &cache.FakeCache{
			GetFn: func(context.Context, string) *redis.StringCmd {
				return redis.NewStringResult("", redis.Nil)
			},
		}
		getProjectBySlug = func(context.Context, database.DB, string) (*model.Project, error) {
			return nil, errors.New("no rows")
		}
		ctx, rec := newJSONContext(http.MethodGet, "/", "")
		ctx.SetParamNames("slug")
		ctx.SetParamValues("missing")
		require.NoError(t, GetProjectHandler(db, rdb, ttl)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "Project not found", resp.Message)
	})
}

func TestUpdateProjectHandler(t *testing.T) {
	db := &database.FakeDB{}
	owner := &service.CustomClaims{UserID: 3, Role: model.RoleUser}
	projectID := uuid.New()
	rdbNoop := &cache.FakeCache{
		DelFn: func(context.Context, ...string) *redis.IntCmd {
			return redis.NewIntResult(1, nil)
		},
	}

	t.Run("not the author", func(t *testing.T) {
		t.Cleanup(restore)
		getProjectByID = func(context.Context, database.DB, uuid.UUID) (*model.Project, error) {
			return &model.Project{ID: projectID, AuthorID: 3}, nil
		}
		ctx, rec := newJSONContext(http.MethodPut, "/", `{"title":"New"}`)
		ctx.SetParamNames("id")
		ctx.SetParamValues(projectID.String())
		ctx.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: 99, Role: model.RoleUser})
		require.NoError(t, UpdateProjectHandler(db, rdbNoop, syncPool{})(ctx))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no fields supplied", func(t *testing.T) {
		t.Cleanup(restore)
		getProjectByID = func(context.Context, database.DB, uuid.UUID) (*model.Project, error) {
			return &model.Project{ID: projectID, AuthorID: 3}, nil
		}
		ctx, rec := newJSONContext(http.MethodPut, "/", `{}`)
		ctx.SetParamNames("id")
		ctx.SetParamValues(projectID.String())
		ctx.Set(middleware.ContextUserKey, owner)
		require.NoError(t, UpdateProjectHandler(db, rdbNoop, syncPool{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		t.Cleanup(restore)
		repo := "https://git.example.com/alpha"
		getProjectByID = func(context.Context, database.DB, uuid.UUID) (*model.Project, error) {
			return &model.Project{ID: projectID, Title: "Alpha", Slug: "alpha", Description: "d", Content: "c", RepoURL: &repo, AuthorID: 3}, nil
		}
		updateProject = func(_ context.Context, _ database.DB, p *model.Project) error {
			require.Equal(t, "Alpha v2", p.Title)
			require.Equal(t, "alpha", p.Slug)
			require.Equal(t, &repo, p.RepoURL)
			require.True(t, p.Featured)
			return nil
		}
		var deleted []string
		rdb := &cache.FakeCache{
			DelFn: func(_ context.Context, keys ...string) *redis.IntCmd {
				deleted = keys
				return redis.NewIntResult(1, nil)
			},
		}
		ctx, rec := newJSONContext(http.MethodPut, "/", `{"title":"Alpha v2","featured":true}`)
		ctx.SetParamNames("id")
		ctx.SetParamValues(projectID.String())
		ctx.Set(middleware.ContextUserKey, owner)
		require.NoError(t, UpdateProjectHandler(db, rdb, syncPool{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, []string{"project:slug:alpha", "project:slug:alpha"}, deleted)
	})

	t.Run("slug conflict on change", func(t *testing.T) {
		t.Cleanup(restore)
		getProjectByID = func(context.Context, database.DB, uuid.UUID) (*model.Project, error) {
			return &model.Project{ID: projectID, Slug: "alpha", AuthorID: 3}, nil
		}
		getProjectBySlug = func(context.Context, database.DB, string) (*model.Project, error) {
			return &model.Project{Slug: "taken"}, nil
		}
		ctx, rec := newJSONContext(http.MethodPut, "/", `{"slug":"taken"}`)
		ctx.SetParamNames("id")
		ctx.SetParamValues(projectID.String())
		ctx.Set(middleware.ContextUserKey, owner)
		require.NoError(t, UpdateProjectHandler(db, rdbNoop, syncPool{})(ctx))
		require.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestDeleteProjectHandler(t *testing.T) {
	db := &database.FakeDB{}
	projectID := uuid.New()

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		getProjectByID = func(context.Context, database.DB, uuid.UUID) (*model.Project, error) {
			return nil, errors.New("no rows")
		}
		ctx, rec := newJSONContext(http.MethodDelete, "/", "")
		ctx.SetParamNames("id")
		ctx.SetParamValues(projectID.String())
		require.NoError(t, DeleteProjectHandler(db, &cache.FakeCache{}, syncPool{})(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("owner deletes and invalidates cache", func(t *testing.T) {
		t.Cleanup(restore)
		getProjectByID = func(context.Context, database.DB, uuid.UUID) (*model.Project, error) {
			return &model.Project{ID: projectID, Slug: "alpha", AuthorID: 3}, nil
		}
		deleted := false
		deleteProject = func(_ context.Context, _ database.DB, id uuid.UUID) error {
			deleted = true
			require.Equal(t, projectID, id)
			return nil
		}
		var delKeys []string
		rdb := &cache.FakeCache{
			DelFn: func(_ context.Context, keys ...string) *redis.IntCmd {
				delKeys = keys
				return redis.NewIntResult(1, nil)
			},
		}
		ctx, rec := newJSONContext(http.MethodDelete, "/", "")
		ctx.SetParamNames("id")
		ctx.SetParamValues(projectID.String())
		ctx.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: 3, Role: model.RoleUser})
		require.NoError(t, DeleteProjectHandler(db, rdb, syncPool{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, deleted)
		require.Equal(t, []string{"project:slug:alpha"}, delKeys)
		var resp api.ProjectDeletedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "alpha", resp.Deleted.Slug)
	})
}
