package persistence

import (
	"context"
	"errors"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/solstice-web/sitekit/modules/cms/domain/entities/category"
	"github.com/solstice-web/sitekit/modules/cms/infrastructure/persistence/models"
	"github.com/solstice-web/sitekit/pkg/composables"
	"github.com/solstice-web/sitekit/pkg/repo"
)

const categoryColumns = `id, name, slug, created_at, updated_at`

type CategoryRepository struct{}

func NewCategoryRepository() category.Repository {
	return &CategoryRepository{}
}

func (r *CategoryRepository) GetPaginated(ctx context.Context, params *category.FindParams) ([]category.Category, int64, error) {
	if params == nil {
		params = &category.FindParams{}
	}

	type page struct {
		items []category.Category
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
			`SELECT `+categoryColumns+` FROM cms_categories WHERE `+strings.Join(where, " AND ")+
				` ORDER BY name ASC `+repo.FormatLimitOffset(params.Limit, params.Offset),
			args...,
		)
		if err != nil {
			return page{}, err
		}
		items, err := scanCategories(rows)
		if err != nil {
			return page{}, err
		}

		var total int64
		if err := tx.QueryRow(
			txCtx,
			`SELECT COUNT(*) FROM cms_categories WHERE `+strings.Join(where, " AND "),
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

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (category.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM cms_categories WHERE id = $1`, id)
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (category.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM cms_categories WHERE slug = $1`, slug)
}

func (r *CategoryRepository) getOne(ctx context.Context, query string, arg interface{}) (category.Category, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return category.Category{}, err
	}
	entity, err := scanCategory(tx.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.Category{}, category.ErrNotFound
		}
		return category.Category{}, err
	}
	return entity, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c category.Category) (category.Category, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return category.Category{}, err
	}
	row := tx.QueryRow(
		ctx,
		`INSERT INTO cms_categories (name, slug) VALUES ($1, $2) RETURNING `+categoryColumns,
		c.Name(), c.Slug(),
	)
	created, err := scanCategory(row)
	if err != nil {
		return category.Category{}, mapCategoryError(err)
	}
	return created, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id uuid.UUID, c category.Category) (category.Category, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return category.Category{}, err
	}
	row := tx.QueryRow(
		ctx,
		`UPDATE cms_categories SET name = $2, slug = $3, updated_at = now()
		 WHERE id = $1 RETURNING `+categoryColumns,
		id, c.Name(), c.Slug(),
	)
	updated, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.Category{}, category.ErrNotFound
		}
		return category.Category{}, mapCategoryError(err)
	}
	return updated, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM cms_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return category.ErrNotFound
	}
	return nil
}

func mapCategoryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return category.ErrSlugTaken
	}
	return gerrors.Wrap(err, "category repository")
}

func scanCategories(rows pgx.Rows) ([]category.Category, error) {
	defer rows.Close()

	var results []category.Category
	for rows.Next() {
		var row models.Category
		if err := rows.Scan(&row.ID, &row.Name, &row.Slug, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, err
		}
		results = append(results, toDomainCategory(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanCategory(row pgx.Row) (category.Category, error) {
	var m models.Category
	if err := row.Scan(&m.ID, &m.Name, &m.Slug, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return category.Category{}, err
	}
	return toDomainCategory(&m), nil
}
