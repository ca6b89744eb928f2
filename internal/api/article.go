package api

import "portfolio-api/internal/model"

// swagger:model api.CreateArticleRequest
type CreateArticleRequest struct {
	Title     string  `json:"title" validate:"required" example:"Welcome"`
	Slug      string  `json:"slug" validate:"required" example:"welcome"`
	Excerpt   *string `json:"excerpt" example:"A short teaser"`
	Content   string  `json:"content" validate:"required" example:"Full article body"`
	Published bool    `json:"published" example:"false"`
}

// UpdateArticleRequest carries a partial update: nil means the field was
// not supplied, which is distinct from an intentionally empty value.
// swagger:model api.UpdateArticleRequest
type UpdateArticleRequest struct {
	Title     *string `json:"title"`
	Slug      *string `json:"slug"`
	Excerpt   *string `json:"excerpt"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

// Empty reports whether no recognized field was supplied at all.
func (r *UpdateArticleRequest) Empty() bool {
	return r.Title == nil && r.Slug == nil && r.Excerpt == nil &&
		r.Content == nil && r.Published == nil
}

// swagger:model api.ArticleResponse
type ArticleResponse struct {
	Success bool          `json:"success" example:"true"`
	Article model.Article `json:"article"`
}

// swagger:model api.ArticleListResponse
type ArticleListResponse struct {
	Success  bool            `json:"success" example:"true"`
	Articles []model.Article `json:"articles"`
}

// swagger:model api.ArticleDeletedResponse
type ArticleDeletedResponse struct {
	Success bool          `json:"success" example:"true"`
	Deleted model.Article `json:"deleted"`
}
