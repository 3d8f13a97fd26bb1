package lead

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("lead not found")
	ErrEmailTaken = errors.New("lead email already exists")
)

// SortField names the sortable attributes as they appear on the API.
// Persistence maps them to columns; anything outside the map is rejected
// before a query is built.
type SortField string

const (
	SortID             SortField = "id"
	SortFullName       SortField = "fullName"
	SortEmail          SortField = "email"
	SortPhone          SortField = "phone"
	SortCompany        SortField = "company"
	SortMessage        SortField = "message"
	SortSourceFormName SortField = "sourceFormName"
	SortSubmissionURL  SortField = "submissionUrl"
	SortStatus         SortField = "status"
	SortIPAddress      SortField = "ipAddress"
	SortSubmittedAt    SortField = "submittedAt"
	SortCreatedAt      SortField = "createdAt"
	SortUpdatedAt      SortField = "updatedAt"
)

// FindParams is the normalized filter/sort specification shared by the
// paginated listing and the unpaged export paths, so the two can never
// diverge in filtering semantics.
type FindParams struct {
	Limit  int
	Offset int

	SortBy  SortField
	SortAsc bool

	FormName string
	Status   string
	// Free-text search over full name, email and company.
	Search string

	// Submission timestamp range: From is inclusive; ToExclusive is the
	// first instant NOT matched (an inclusive calendar end date is expressed
	// as the following midnight).
	From        *time.Time
	ToExclusive *time.Time
}

type Repository interface {
	// GetPaginated returns one page of matching leads plus the total match
	// count, both computed against the same snapshot.
	GetPaginated(ctx context.Context, params *FindParams) ([]Lead, int64, error)
	// GetAll returns every matching lead, ignoring Limit/Offset.
	GetAll(ctx context.Context, params *FindParams) ([]Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	Create(ctx context.Context, l Lead) (Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Lead, error)
}
