package persistence

import (
	"github.com/google/uuid"

	"github.com/solstice-web/sitekit/modules/crm/domain/aggregates/lead"
	"github.com/solstice-web/sitekit/modules/crm/infrastructure/persistence/models"
)

func toDomainLead(row *models.Lead) lead.Lead {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		id = uuid.Nil
	}
	return lead.Hydrate(
		id,
		row.FullName,
		row.Email,
		row.Phone,
		row.Company,
		row.Message,
		row.SourceFormName,
		row.SubmissionURL,
		lead.Status(row.Status),
		row.IPAddress,
		row.SubmittedAt,
		row.CreatedAt,
		row.UpdatedAt,
	)
}
