package mappers

import (
	"time"

	"github.com/solstice-web/sitekit/modules/crm/domain/aggregates/lead"
	"github.com/solstice-web/sitekit/modules/crm/presentation/viewmodels"
)

func LeadToViewModel(l lead.Lead) *viewmodels.Lead {
	return &viewmodels.Lead{
		ID:             l.ID().String(),
		FullName:       l.FullName(),
		Email:          l.Email(),
		Phone:          l.Phone(),
		Company:        l.Company(),
		Message:        l.Message(),
		SourceFormName: l.SourceFormName(),
		SubmissionURL:  l.SubmissionURL(),
		Status:         string(l.Status()),
		IPAddress:      l.IPAddress(),
		SubmittedAt:    l.SubmittedAt().UTC().Format(time.RFC3339),
		CreatedAt:      l.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:      l.UpdatedAt().UTC().Format(time.RFC3339),
	}
}

func LeadsToViewModels(leads []lead.Lead) []*viewmodels.Lead {
	out := make([]*viewmodels.Lead, 0, len(leads))
	for _, l := range leads {
		out = append(out, LeadToViewModel(l))
	}
	return out
}
