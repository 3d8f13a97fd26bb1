package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/solstice-web/sitekit/modules/cms/domain/entities/casestudy"
	"github.com/solstice-web/sitekit/modules/cms/infrastructure/persistence/models"
	"github.com/solstice-web/sitekit/pkg/composables"
	"github.com/solstice-web/sitekit/pkg/repo"
)

const caseStudyColumns = `id, title, slug, summary, content, industry_id, client_name, published, published_at, created_at, updated_at`

type CaseStudyRepository struct{}

func NewCaseStudyRepository() casestudy.Repository {
	return &CaseStudyRepository{}
}

func (r *CaseStudyRepository) GetPaginated(ctx context.Context, params *casestudy.FindParams) ([]casestudy.CaseStudy, int64, error) {
	if params == nil {
		params = &casestudy.FindParams{}
	}

	type page struct {
		items []casestudy.CaseStudy
		total int64
	}
	result, err := composables.InTxResult(ctx, func(txCtx context.Context) (page, error) {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return page{}, err
		}

		where, args := buildCaseStudyFilters(params)
		rows, err := tx.Query(
			txCtx,
			`SELECT `+caseStudyColumns+` FROM cms_case_studies WHERE `+strings.Join(where, " AND ")+
				` ORDER BY created_at DESC `+repo.FormatLimitOffset(params.Limit, params.Offset),
			args...,
		)
		if err != nil {
			return page{}, err
		}
		items, err := scanCaseStudies(rows)
		if err != nil {
			return page{}, err
		}

		var total int64
		if err := tx.QueryRow(
			txCtx,
			`SELECT COUNT(*) FROM cms_case_studies WHERE `+strings.Join(where, " AND "),
			args...,
		).Scan(&total); err != nil {
			return page{}, err
		}
		return page{items: items, total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return result.items, result.total, nil
}

func buildCaseStudyFilters(params *casestudy.FindParams) ([]string, []interface{}) {
	where := []string{"1 = 1"}
	args := []interface{}{}
	argPos := 1

	if params.PublishedOnly {
		where = append(where, "published = true")
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		where = append(where, fmt.Sprintf("title ILIKE $%d", argPos))
		args = append(args, "%"+repo.EscapeLike(search)+"%")
		argPos++
	}
	if params.IndustryID != uuid.Nil {
		where = append(where, fmt.Sprintf("industry_id = $%d", argPos))
		args = append(args, params.IndustryID)
	}
	return where, args
}

func (r *CaseStudyRepository) GetByID(ctx context.Context, id uuid.UUID) (casestudy.CaseStudy, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return casestudy.CaseStudy{}, err
	}
	entity, err := scanCaseStudy(tx.QueryRow(
		ctx, `SELECT `+caseStudyColumns+` FROM cms_case_studies WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return casestudy.CaseStudy{}, casestudy.ErrNotFound
		}
		return casestudy.CaseStudy{}, err
	}
	return entity, nil
}

func (r *CaseStudyRepository) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (casestudy.CaseStudy, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return casestudy.CaseStudy{}, err
	}
	query := `SELECT ` + caseStudyColumns + ` FROM cms_case_studies WHERE slug = $1`
	if publishedOnly {
		query += ` AND published = true`
	}
	entity, err := scanCaseStudy(tx.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return casestudy.CaseStudy{}, casestudy.ErrNotFound
		}
		return casestudy.CaseStudy{}, err
	}
	return entity, nil
}

func (r *CaseStudyRepository) Create(ctx context.Context, c casestudy.CaseStudy) (casestudy.CaseStudy, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return casestudy.CaseStudy{}, err
	}
	row := tx.QueryRow(
		ctx,
		`INSERT INTO cms_case_studies (title, slug, summary, content, industry_id, client_name)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING `+caseStudyColumns,
		c.Title(), c.Slug(), c.Summary(), contentOrEmpty(c.Content()),
		nullableID(c.IndustryID()), c.ClientName(),
	)
	created, err := scanCaseStudy(row)
	if err != nil {
		return casestudy.CaseStudy{}, mapCaseStudyError(err)
	}
	return created, nil
}

func (r *CaseStudyRepository) Update(ctx context.Context, id uuid.UUID, c casestudy.CaseStudy) (casestudy.CaseStudy, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return casestudy.CaseStudy{}, err
	}
	row := tx.QueryRow(
		ctx,
		`UPDATE cms_case_studies
		 SET title = $2, slug = $3, summary = $4, content = $5, industry_id = $6,
		     client_name = $7, updated_at = now()
		 WHERE id = $1 RETURNING `+caseStudyColumns,
		id, c.Title(), c.Slug(), c.Summary(), contentOrEmpty(c.Content()),
		nullableID(c.IndustryID()), c.ClientName(),
	)
	updated, err := scanCaseStudy(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return casestudy.CaseStudy{}, casestudy.ErrNotFound
		}
		return casestudy.CaseStudy{}, mapCaseStudyError(err)
	}
	return updated, nil
}

func (r *CaseStudyRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool, publishedAt *time.Time) (casestudy.CaseStudy, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return casestudy.CaseStudy{}, err
	}
	row := tx.QueryRow(
		ctx,
		`UPDATE cms_case_studies SET published = $2, published_at = $3, updated_at = now()
		 WHERE id = $1 RETURNING `+caseStudyColumns,
		id, published, publishedAt,
	)
	updated, err := scanCaseStudy(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return casestudy.CaseStudy{}, casestudy.ErrNotFound
		}
		return casestudy.CaseStudy{}, err
	}
	return updated, nil
}

func (r *CaseStudyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM cms_case_studies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return casestudy.ErrNotFound
	}
	return nil
}

func mapCaseStudyError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return casestudy.ErrSlugTaken
	}
	return gerrors.Wrap(err, "case study repository")
}

func scanCaseStudies(rows pgx.Rows) ([]casestudy.CaseStudy, error) {
	defer rows.Close()

	var results []casestudy.CaseStudy
	for rows.Next() {
		var row models.CaseStudy
		if err := rows.Scan(
			&row.ID, &row.Title, &row.Slug, &row.Summary, &row.Content,
			&row.IndustryID, &row.ClientName, &row.Published, &row.PublishedAt,
			&row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainCaseStudy(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanCaseStudy(row pgx.Row) (casestudy.CaseStudy, error) {
	var m models.CaseStudy
	if err := row.Scan(
		&m.ID, &m.Title, &m.Slug, &m.Summary, &m.Content,
		&m.IndustryID, &m.ClientName, &m.Published, &m.PublishedAt,
		&m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return casestudy.CaseStudy{}, err
	}
	return toDomainCaseStudy(&m), nil
}
