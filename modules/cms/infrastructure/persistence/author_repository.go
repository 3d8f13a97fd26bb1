package persistence

import (
	"context"
	"errors"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/solstice-web/sitekit/modules/cms/domain/entities/author"
	"github.com/solstice-web/sitekit/modules/cms/infrastructure/persistence/models"
	"github.com/solstice-web/sitekit/pkg/composables"
	"github.com/solstice-web/sitekit/pkg/repo"
)

const authorColumns = `id, name, slug, bio, avatar_upload_id, created_at, updated_at`

type AuthorRepository struct{}

func NewAuthorRepository() author.Repository {
	return &AuthorRepository{}
}

func (r *AuthorRepository) GetPaginated(ctx context.Context, params *author.FindParams) ([]author.Author, int64, error) {
	if params == nil {
		params = &author.FindParams{}
	}

	type page struct {
		items []author.Author
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
			`SELECT `+authorColumns+` FROM cms_authors WHERE `+strings.Join(where, " AND ")+
				` ORDER BY name ASC `+repo.FormatLimitOffset(params.Limit, params.Offset),
			args...,
		)
		if err != nil {
			return page{}, err
		}
		items, err := scanAuthors(rows)
		if err != nil {
			return page{}, err
		}

		var total int64
		if err := tx.QueryRow(
			txCtx,
			`SELECT COUNT(*) FROM cms_authors WHERE `+strings.Join(where, " AND "),
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

func (r *AuthorRepository) GetByID(ctx context.Context, id uuid.UUID) (author.Author, error) {
	return r.getOne(ctx, `SELECT `+authorColumns+` FROM cms_authors WHERE id = $1`, id)
}

func (r *AuthorRepository) GetBySlug(ctx context.Context, slug string) (author.Author, error) {
	return r.getOne(ctx, `SELECT `+authorColumns+` FROM cms_authors WHERE slug = $1`, slug)
}

func (r *AuthorRepository) getOne(ctx context.Context, query string, arg interface{}) (author.Author, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return author.Author{}, err
	}
	entity, err := scanAuthor(tx.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return author.Author{}, author.ErrNotFound
		}
		return author.Author{}, err
	}
	return entity, nil
}

func (r *AuthorRepository) Create(ctx context.Context, a author.Author) (author.Author, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return author.Author{}, err
	}
	row := tx.QueryRow(
		ctx,
		`INSERT INTO cms_authors (name, slug, bio, avatar_upload_id)
		 VALUES ($1, $2, $3, $4) RETURNING `+authorColumns,
		a.Name(), a.Slug(), a.Bio(), nullableID(a.AvatarUploadID()),
	)
	created, err := scanAuthor(row)
	if err != nil {
		return author.Author{}, mapAuthorError(err)
	}
	return created, nil
}

func (r *AuthorRepository) Update(ctx context.Context, id uuid.UUID, a author.Author) (author.Author, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return author.Author{}, err
	}
	row := tx.QueryRow(
		ctx,
		`UPDATE cms_authors
		 SET name = $2, slug = $3, bio = $4, avatar_upload_id = $5, updated_at = now()
		 WHERE id = $1 RETURNING `+authorColumns,
		id, a.Name(), a.Slug(), a.Bio(), nullableID(a.AvatarUploadID()),
	)
	updated, err := scanAuthor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return author.Author{}, author.ErrNotFound
		}
		return author.Author{}, mapAuthorError(err)
	}
	return updated, nil
}

func (r *AuthorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM cms_authors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return author.ErrNotFound
	}
	return nil
}

func mapAuthorError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return author.ErrSlugTaken
	}
	return gerrors.Wrap(err, "author repository")
}

func scanAuthors(rows pgx.Rows) ([]author.Author, error) {
	defer rows.Close()

	var results []author.Author
	for rows.Next() {
		var row models.Author
		if err := rows.Scan(
			&row.ID, &row.Name, &row.Slug, &row.Bio, &row.AvatarUploadID,
			&row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainAuthor(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanAuthor(row pgx.Row) (author.Author, error) {
	var m models.Author
	if err := row.Scan(
		&m.ID, &m.Name, &m.Slug, &m.Bio, &m.AvatarUploadID,
		&m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return author.Author{}, err
	}
	return toDomainAuthor(&m), nil
}
