package lead

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is stored as plain text; the set below is what the admin UI offers,
// but transitions are unconstrained and historical rows may carry other
// values.
type Status string

const (
	StatusNew       Status = "New"
	StatusContacted Status = "Contacted"
	StatusQualified Status = "Qualified"
	StatusLost      Status = "Lost"
	StatusClosed    Status = "Closed"
)

func KnownStatuses() []Status {
	return []Status{StatusNew, StatusContacted, StatusQualified, StatusLost, StatusClosed}
}

func IsKnownStatus(s Status) bool {
	for _, known := range KnownStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// Lead is an inbound contact-form submission. The identifier and submission
// timestamp are assigned at creation and never change; status is the only
// field mutated afterwards.
type Lead struct {
	id             uuid.UUID
	fullName       string
	email          string
	phone          string
	company        string
	message        string
	sourceFormName string
	submissionURL  string
	status         Status
	ipAddress      string
	submittedAt    time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func New(
	fullName string,
	email string,
	phone string,
	company string,
	message string,
	sourceFormName string,
	submissionURL string,
	ipAddress string,
) Lead {
	return Lead{
		fullName:       strings.TrimSpace(fullName),
		email:          strings.ToLower(strings.TrimSpace(email)),
		phone:          strings.TrimSpace(phone),
		company:        strings.TrimSpace(company),
		message:        strings.TrimSpace(message),
		sourceFormName: strings.TrimSpace(sourceFormName),
		submissionURL:  strings.TrimSpace(submissionURL),
		status:         StatusNew,
		ipAddress:      ipAddress,
	}
}

func Hydrate(
	id uuid.UUID,
	fullName string,
	email string,
	phone string,
	company string,
	message string,
	sourceFormName string,
	submissionURL string,
	status Status,
	ipAddress string,
	submittedAt time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) Lead {
	return Lead{
		id:             id,
		fullName:       fullName,
		email:          email,
		phone:          phone,
		company:        company,
		message:        message,
		sourceFormName: sourceFormName,
		submissionURL:  submissionURL,
		status:         status,
		ipAddress:      ipAddress,
		submittedAt:    submittedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (l Lead) ID() uuid.UUID          { return l.id }
func (l Lead) FullName() string       { return l.fullName }
func (l Lead) Email() string          { return l.email }
func (l Lead) Phone() string          { return l.phone }
func (l Lead) Company() string        { return l.company }
func (l Lead) Message() string        { return l.message }
func (l Lead) SourceFormName() string { return l.sourceFormName }
func (l Lead) SubmissionURL() string  { return l.submissionURL }
func (l Lead) Status() Status         { return l.status }
func (l Lead) IPAddress() string      { return l.ipAddress }
func (l Lead) SubmittedAt() time.Time { return l.submittedAt }
func (l Lead) CreatedAt() time.Time   { return l.createdAt }
func (l Lead) UpdatedAt() time.Time   { return l.updatedAt }
func (l Lead) IsZero() bool           { return l.id == uuid.Nil && l.email == "" }
