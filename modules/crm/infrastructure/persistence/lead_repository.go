package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/solstice-web/sitekit/modules/crm/domain/aggregates/lead"
	"github.com/solstice-web/sitekit/modules/crm/infrastructure/persistence/models"
	"github.com/solstice-web/sitekit/pkg/composables"
	"github.com/solstice-web/sitekit/pkg/repo"
)

const leadColumns = `id, full_name, email, phone, company, message, source_form_name, submission_url, status, ip_address, submitted_at, created_at, updated_at`

var leadSortColumns = map[lead.SortField]string{
	lead.SortID:             "id",
	lead.SortFullName:       "full_name",
	lead.SortEmail:          "email",
	lead.SortPhone:          "phone",
	lead.SortCompany:        "company",
	lead.SortMessage:        "message",
	lead.SortSourceFormName: "source_form_name",
	lead.SortSubmissionURL:  "submission_url",
	lead.SortStatus:         "status",
	lead.SortIPAddress:      "ip_address",
	lead.SortSubmittedAt:    "submitted_at",
	lead.SortCreatedAt:      "created_at",
	lead.SortUpdatedAt:      "updated_at",
}

type LeadRepository struct{}

func NewLeadRepository() lead.Repository {
	return &LeadRepository{}
}

func (r *LeadRepository) GetPaginated(ctx context.Context, params *lead.FindParams) ([]lead.Lead, int64, error) {
	if params == nil {
		params = &lead.FindParams{}
	}

	order, err := leadOrderClause(params)
	if err != nil {
		return nil, 0, err
	}

	type page struct {
		leads []lead.Lead
		total int64
	}

	// Fetch and count run in one transaction so totalPages stays consistent
	// with the returned page under concurrent inserts.
	result, err := composables.InTxResult(ctx, func(txCtx context.Context) (page, error) {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return page{}, err
		}

		where, args := buildLeadFilters(params)
		query := `SELECT ` + leadColumns + ` FROM leads WHERE ` + strings.Join(where, " AND ") +
			` ` + order + ` ` + repo.FormatLimitOffset(params.Limit, params.Offset)

		rows, err := tx.Query(txCtx, query, args...)
		if err != nil {
			return page{}, err
		}
		leads, err := scanLeads(rows)
		if err != nil {
			return page{}, err
		}

		var total int64
		if err := tx.QueryRow(
			txCtx,
			`SELECT COUNT(*) FROM leads WHERE `+strings.Join(where, " AND "),
			args...,
		).Scan(&total); err != nil {
			return page{}, err
		}

		return page{leads: leads, total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return result.leads, result.total, nil
}

func (r *LeadRepository) GetAll(ctx context.Context, params *lead.FindParams) ([]lead.Lead, error) {
	if params == nil {
		params = &lead.FindParams{}
	}

	order, err := leadOrderClause(params)
	if err != nil {
		return nil, err
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where, args := buildLeadFilters(params)
	rows, err := tx.Query(
		ctx,
		`SELECT `+leadColumns+` FROM leads WHERE `+strings.Join(where, " AND ")+` `+order,
		args...,
	)
	if err != nil {
		return nil, err
	}
	return scanLeads(rows)
}

func (r *LeadRepository) GetByID(ctx context.Context, id uuid.UUID) (lead.Lead, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return lead.Lead{}, err
	}

	row := tx.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	entity, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return lead.Lead{}, lead.ErrNotFound
		}
		return lead.Lead{}, err
	}
	return entity, nil
}

func (r *LeadRepository) Create(ctx context.Context, l lead.Lead) (lead.Lead, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return lead.Lead{}, err
	}

	row := tx.QueryRow(
		ctx,
		`INSERT INTO leads (full_name, email, phone, company, message, source_form_name, submission_url, status, ip_address)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+leadColumns,
		l.FullName(),
		l.Email(),
		l.Phone(),
		l.Company(),
		l.Message(),
		l.SourceFormName(),
		l.SubmissionURL(),
		string(l.Status()),
		l.IPAddress(),
	)
	created, err := scanLead(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return lead.Lead{}, lead.ErrEmailTaken
		}
		return lead.Lead{}, gerrors.Wrap(err, "create lead")
	}
	return created, nil
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status lead.Status) (lead.Lead, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return lead.Lead{}, err
	}

	row := tx.QueryRow(
		ctx,
		`UPDATE leads SET status = $2, updated_at = now() WHERE id = $1 RETURNING `+leadColumns,
		id,
		string(status),
	)
	updated, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return lead.Lead{}, lead.ErrNotFound
		}
		return lead.Lead{}, err
	}
	return updated, nil
}

func leadOrderClause(params *lead.FindParams) (string, error) {
	field := params.SortBy
	if field == "" {
		field = lead.SortSubmittedAt
	}
	column, ok := leadSortColumns[field]
	if !ok {
		return "", gerrors.Errorf("unsortable field: %s", field)
	}
	dir := "DESC"
	if params.SortAsc {
		dir = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s", column, dir), nil
}

func buildLeadFilters(params *lead.FindParams) ([]string, []interface{}) {
	where := []string{"1 = 1"}
	args := []interface{}{}
	argPos := 1

	if form := strings.TrimSpace(params.FormName); form != "" {
		where = append(where, fmt.Sprintf("source_form_name = $%d", argPos))
		args = append(args, form)
		argPos++
	}
	if status := strings.TrimSpace(params.Status); status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argPos))
		args = append(args, status)
		argPos++
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		where = append(where, fmt.Sprintf(
			"(full_name ILIKE $%d OR email ILIKE $%d OR company ILIKE $%d)",
			argPos, argPos, argPos,
		))
		args = append(args, "%"+repo.EscapeLike(search)+"%")
		argPos++
	}
	if params.From != nil && !params.From.IsZero() {
		where = append(where, fmt.Sprintf("submitted_at >= $%d", argPos))
		args = append(args, *params.From)
		argPos++
	}
	if params.ToExclusive != nil && !params.ToExclusive.IsZero() {
		where = append(where, fmt.Sprintf("submitted_at < $%d", argPos))
		args = append(args, *params.ToExclusive)
	}
	return where, args
}

func scanLeads(rows pgx.Rows) ([]lead.Lead, error) {
	defer rows.Close()

	var results []lead.Lead
	for rows.Next() {
		var row models.Lead
		if err := rows.Scan(
			&row.ID,
			&row.FullName,
			&row.Email,
			&row.Phone,
			&row.Company,
			&row.Message,
			&row.SourceFormName,
			&row.SubmissionURL,
			&row.Status,
			&row.IPAddress,
			&row.SubmittedAt,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainLead(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanLead(row pgx.Row) (lead.Lead, error) {
	var m models.Lead
	if err := row.Scan(
		&m.ID,
		&m.FullName,
		&m.Email,
		&m.Phone,
		&m.Company,
		&m.Message,
		&m.SourceFormName,
		&m.SubmissionURL,
		&m.Status,
		&m.IPAddress,
		&m.SubmittedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return lead.Lead{}, err
	}
	return toDomainLead(&m), nil
}
