package persistence

import (
	"context"
	"errors"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/solstice-web/sitekit/modules/cms/domain/entities/industry"
	"github.com/solstice-web/sitekit/modules/cms/infrastructure/persistence/models"
	"github.com/solstice-web/sitekit/pkg/composables"
	"github.com/solstice-web/sitekit/pkg/repo"
)

const industryColumns = `id, name, slug, description, created_at, updated_at`

type IndustryRepository struct{}

func NewIndustryRepository() industry.Repository {
	return &IndustryRepository{}
}

func (r *IndustryRepository) GetPaginated(ctx context.Context, params *industry.FindParams) ([]industry.Industry, int64, error) {
	if params == nil {
		params = &industry.FindParams{}
	}

	type page struct {
		items []industry.Industry
		total int64
	}
	result, err := composables.InTxResult(ctx, func(txCtx context.Context) (page, error) {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return page{}, err
		}

		where := []string{"1 = 1"}
		args := []interface{}{}
		if search := strings.TrimSpace(params.Search); search != "" {
			where = append(where, "name ILIKE $1")
			args = append(args, "%"+repo.EscapeLike(search)+"%")
		}

		rows, err := tx.Query(
			txCtx,
			`SELECT `+industryColumns+` FROM cms_industries WHERE `+strings.Join(where, " AND ")+
				` ORDER BY name ASC `+repo.FormatLimitOffset(params.Limit, params.Offset),
			args...,
		)
		if err != nil {
			return page{}, err
		}
		items, err := scanIndustries(rows)
		if err != nil {
			return page{}, err
		}

		var total int64
		if err := tx.QueryRow(
			txCtx,
			`SELECT COUNT(*) FROM cms_industries WHERE `+strings.Join(where, " AND "),
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

func (r *IndustryRepository) GetByID(ctx context.Context, id uuid.UUID) (industry.Industry, error) {
	return r.getOne(ctx, `SELECT `+industryColumns+` FROM cms_industries WHERE id = $1`, id)
}

func (r *IndustryRepository) GetBySlug(ctx context.Context, slug string) (industry.Industry, error) {
	return r.getOne(ctx, `SELECT `+industryColumns+` FROM cms_industries WHERE slug = $1`, slug)
}

func (r *IndustryRepository) getOne(ctx context.Context, query string, arg interface{}) (industry.Industry, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return industry.Industry{}, err
	}
	entity, err := scanIndustry(tx.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return industry.Industry{}, industry.ErrNotFound
		}
		return industry.Industry{}, err
	}
	return entity, nil
}

func (r *IndustryRepository) Create(ctx context.Context, i industry.Industry) (industry.Industry, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return industry.Industry{}, err
	}
	row := tx.QueryRow(
		ctx,
		`INSERT INTO cms_industries (name, slug, description)
		 VALUES ($1, $2, $3) RETURNING `+industryColumns,
		i.Name(), i.Slug(), i.Description(),
	)
	created, err := scanIndustry(row)
	if err != nil {
		return industry.Industry{}, mapIndustryError(err)
	}
	return created, nil
}

func (r *IndustryRepository) Update(ctx context.Context, id uuid.UUID, i industry.Industry) (industry.Industry, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return industry.Industry{}, err
	}
	row := tx.QueryRow(
		ctx,
		`UPDATE cms_industries SET name = $2, slug = $3, description = $4, updated_at = now()
		 WHERE id = $1 RETURNING `+industryColumns,
		id, i.Name(), i.Slug(), i.Description(),
	)
	updated, err := scanIndustry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return industry.Industry{}, industry.ErrNotFound
		}
		return industry.Industry{}, mapIndustryError(err)
	}
	return updated, nil
}

func (r *IndustryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM cms_industries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return industry.ErrNotFound
	}
	return nil
}

func mapIndustryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return industry.ErrSlugTaken
	}
	return gerrors.Wrap(err, "industry repository")
}

func scanIndustries(rows pgx.Rows) ([]industry.Industry, error) {
	defer rows.Close()

	var results []industry.Industry
	for rows.Next() {
		var row models.Industry
		if err := rows.Scan(
			&row.ID, &row.Name, &row.Slug, &row.Description, &row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainIndustry(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanIndustry(row pgx.Row) (industry.Industry, error) {
	var m models.Industry
	if err := row.Scan(&m.ID, &m.Name, &m.Slug, &m.Description, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return industry.Industry{}, err
	}
	return toDomainIndustry(&m), nil
}
