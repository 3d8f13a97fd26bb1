package persistence

import (
	"github.com/google/uuid"

	"github.com/solstice-web/sitekit/modules/cms/domain/entities/author"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/casestudy"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/category"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/industry"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/post"
	"github.com/solstice-web/sitekit/modules/cms/infrastructure/persistence/models"
)

func parseUUID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func parseOptionalUUID(raw *string) uuid.UUID {
	if raw == nil {
		return uuid.Nil
	}
	return parseUUID(*raw)
}

// nullableID renders uuid.Nil as SQL NULL for optional foreign keys.
func nullableID(id uuid.UUID) interface{} {
	if id == uuid.Nil {
		return nil
	}
	return id
}

func toDomainAuthor(row *models.Author) author.Author {
	return author.Hydrate(
		parseUUID(row.ID),
		row.Name,
		row.Slug,
		row.Bio,
		parseOptionalUUID(row.AvatarUploadID),
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func toDomainCategory(row *models.Category) category.Category {
	return category.Hydrate(parseUUID(row.ID), row.Name, row.Slug, row.CreatedAt, row.UpdatedAt)
}

func toDomainIndustry(row *models.Industry) industry.Industry {
	return industry.Hydrate(
		parseUUID(row.ID),
		row.Name,
		row.Slug,
		row.Description,
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func toDomainPost(row *models.Post) post.Post {
	return post.Hydrate(
		parseUUID(row.ID),
		row.Title,
		row.Slug,
		row.Excerpt,
		row.Content,
		parseUUID(row.AuthorID),
		parseOptionalUUID(row.CategoryID),
		parseOptionalUUID(row.CoverUploadID),
		row.Published,
		row.PublishedAt,
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func toDomainCaseStudy(row *models.CaseStudy) casestudy.CaseStudy {
	return casestudy.Hydrate(
		parseUUID(row.ID),
		row.Title,
		row.Slug,
		row.Summary,
		row.Content,
		parseOptionalUUID(row.IndustryID),
		row.ClientName,
		row.Published,
		row.PublishedAt,
		row.CreatedAt,
		row.UpdatedAt,
	)
}
