package mappers

import (
	"time"

	"github.com/google/uuid"

	"github.com/solstice-web/sitekit/modules/cms/domain/entities/author"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/casestudy"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/category"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/industry"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/post"
	"github.com/solstice-web/sitekit/modules/cms/presentation/viewmodels"
)

func optionalID(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func optionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func AuthorToViewModel(a author.Author) *viewmodels.Author {
	return &viewmodels.Author{
		ID:             a.ID().String(),
		Name:           a.Name(),
		Slug:           a.Slug(),
		Bio:            a.Bio(),
		AvatarUploadID: optionalID(a.AvatarUploadID()),
		CreatedAt:      a.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt().UTC().Format(time.RFC3339),
	}
}

func CategoryToViewModel(c category.Category) *viewmodels.Category {
	return &viewmodels.Category{
		ID:        c.ID().String(),
		Name:      c.Name(),
		Slug:      c.Slug(),
		CreatedAt: c.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt().UTC().Format(time.RFC3339),
	}
}

func IndustryToViewModel(i industry.Industry) *viewmodels.Industry {
	return &viewmodels.Industry{
		ID:          i.ID().String(),
		Name:        i.Name(),
		Slug:        i.Slug(),
		Description: i.Description(),
		CreatedAt:   i.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:   i.UpdatedAt().UTC().Format(time.RFC3339),
	}
}

// PostToViewModel includes the stored content document. List mappers strip it
// to keep list payloads small.
func PostToViewModel(p post.Post) *viewmodels.Post {
	return &viewmodels.Post{
		ID:            p.ID().String(),
		Title:         p.Title(),
		Slug:          p.Slug(),
		Excerpt:       p.Excerpt(),
		Content:       p.Content(),
		AuthorID:      p.AuthorID().String(),
		CategoryID:    optionalID(p.CategoryID()),
		CoverUploadID: optionalID(p.CoverUploadID()),
		Published:     p.Published(),
		PublishedAt:   optionalTime(p.PublishedAt()),
		CreatedAt:     p.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt().UTC().Format(time.RFC3339),
	}
}

func PostToListItem(p post.Post) *viewmodels.Post {
	vm := PostToViewModel(p)
	vm.Content = nil
	return vm
}

func CaseStudyToViewModel(c casestudy.CaseStudy) *viewmodels.CaseStudy {
	return &viewmodels.CaseStudy{
		ID:          c.ID().String(),
		Title:       c.Title(),
		Slug:        c.Slug(),
		Summary:     c.Summary(),
		Content:     c.Content(),
		IndustryID:  optionalID(c.IndustryID()),
		ClientName:  c.ClientName(),
		Published:   c.Published(),
		PublishedAt: optionalTime(c.PublishedAt()),
		CreatedAt:   c.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt().UTC().Format(time.RFC3339),
	}
}

func CaseStudyToListItem(c casestudy.CaseStudy) *viewmodels.CaseStudy {
	vm := CaseStudyToViewModel(c)
	vm.Content = nil
	return vm
}
