package api

import "portfolio-api/internal/model"

// swagger:model api.CreateProjectRequest
type CreateProjectRequest struct {
	Title       string  `json:"title" validate:"required" example:"Project Alpha"`
	Slug        string  `json:"slug" validate:"required" example:"project-alpha"`
	Description string  `json:"description" validate:"required" example:"A flagship project"`
	Content     string  `json:"content" validate:"required" example:"Full project writeup"`
	LiveURL     *string `json:"liveUrl" example:"https://example.com/alpha"`
	RepoURL     *string `json:"repoUrl" example:"https://github.com/example/alpha"`
	ImageURL    *string `json:"imageUrl" example:"https://example.com/alpha.png"`
	Featured    bool    `json:"featured" example:"false"`
}

// UpdateProjectRequest carries a partial update: nil means the field was
// not supplied.
// swagger:model api.UpdateProjectRequest
type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	LiveURL     *string `json:"liveUrl"`
	RepoURL     *string `json:"repoUrl"`
	ImageURL    *string `json:"imageUrl"`
	Featured    *bool   `json:"featured"`
}

// Empty reports whether no recognized field was supplied at all.
func (r *UpdateProjectRequest) Empty() bool {
	return r.Title == nil && r.Slug == nil && r.Description == nil &&
		r.Content == nil && r.LiveURL == nil && r.RepoURL == nil &&
		r.ImageURL == nil && r.Featured == nil
}

// swagger:model api.ProjectResponse
type ProjectResponse struct {
	Success bool          `json:"success" example:"true"`
	Project model.Project `json:"project"`
}

// swagger:model api.ProjectListResponse
type ProjectListResponse struct {
	Success  bool            `json:"success" example:"true"`
	Projects []model.Project `json:"projects"`
}

// swagger:model api.ProjectDeletedResponse
type ProjectDeletedResponse struct {
	Success bool          `json:"success" example:"true"`
	Deleted model.Project `json:"deleted"`
}
