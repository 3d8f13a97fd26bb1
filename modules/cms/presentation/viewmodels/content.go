package viewmodels

import "encoding/json"

type Author struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Bio            string `json:"bio"`
	AvatarUploadID string `json:"avatarUploadId,omitempty"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Industry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Post carries the stored rich-text document verbatim; ContentHTML is only
// filled on public single-item reads.
type Post struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Slug          string          `json:"slug"`
	Excerpt       string          `json:"excerpt"`
	Content       json.RawMessage `json:"content,omitempty"`
	ContentHTML   string          `json:"contentHtml,omitempty"`
	AuthorID      string          `json:"authorId"`
	CategoryID    string          `json:"categoryId,omitempty"`
	CoverUploadID string          `json:"coverUploadId,omitempty"`
	Published     bool            `json:"published"`
	PublishedAt   string          `json:"publishedAt,omitempty"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

type CaseStudy struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Summary     string          `json:"summary"`
	Content     json.RawMessage `json:"content,omitempty"`
	ContentHTML string          `json:"contentHtml,omitempty"`
	IndustryID  string          `json:"industryId,omitempty"`
	ClientName  string          `json:"clientName"`
	Published   bool            `json:"published"`
	PublishedAt string          `json:"publishedAt,omitempty"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

type List[T any] struct {
	Items       []T   `json:"items"`
	TotalCount  int64 `json:"totalCount"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
}
