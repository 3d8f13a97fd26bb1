package persistence

import (
	"context"
	"errors"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/solstice-web/sitekit/modules/core/domain/entities/upload"
	"github.com/solstice-web/sitekit/modules/core/infrastructure/persistence/models"
	"github.com/solstice-web/sitekit/pkg/composables"
	"github.com/solstice-web/sitekit/pkg/repo"
)

const uploadColumns = `id, name, path, hash, size, mimetype, created_at`

type UploadRepository struct{}

func NewUploadRepository() upload.Repository {
	return &UploadRepository{}
}

func (r *UploadRepository) GetPaginated(ctx context.Context, params *upload.FindParams) ([]upload.Upload, int64, error) {
	if params == nil {
		params = &upload.FindParams{}
	}

	type page struct {
		items []upload.Upload
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
			`SELECT `+uploadColumns+` FROM core_uploads WHERE `+strings.Join(where, " AND ")+
				` ORDER BY created_at DESC `+repo.FormatLimitOffset(params.Limit, params.Offset),
			args...,
		)
		if err != nil {
			return page{}, err
		}
		items, err := scanUploads(rows)
		if err != nil {
			return page{}, err
		}

		var total int64
		if err := tx.QueryRow(
			txCtx,
			`SELECT COUNT(*) FROM core_uploads WHERE `+strings.Join(where, " AND "),
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

func (r *UploadRepository) GetByID(ctx context.Context, id uuid.UUID) (upload.Upload, error) {
	return r.getOne(ctx, `SELECT `+uploadColumns+` FROM core_uploads WHERE id = $1`, id)
}

func (r *UploadRepository) GetByHash(ctx context.Context, hash string) (upload.Upload, error) {
	return r.getOne(ctx, `SELECT `+uploadColumns+` FROM core_uploads WHERE hash = $1`, hash)
}

func (r *UploadRepository) getOne(ctx context.Context, query string, arg interface{}) (upload.Upload, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return upload.Upload{}, err
	}
	entity, err := scanUpload(tx.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return upload.Upload{}, upload.ErrNotFound
		}
		return upload.Upload{}, err
	}
	return entity, nil
}

func (r *UploadRepository) Create(ctx context.Context, u upload.Upload) (upload.Upload, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return upload.Upload{}, err
	}
	row := tx.QueryRow(
		ctx,
		`INSERT INTO core_uploads (name, path, hash, size, mimetype)
		 VALUES ($1, $2, $3, $4, $5) RETURNING `+uploadColumns,
		u.Name(), u.Path(), u.Hash(), u.Size(), u.Mimetype(),
	)
	created, err := scanUpload(row)
	if err != nil {
		return upload.Upload{}, gerrors.Wrap(err, "upload repository")
	}
	return created, nil
}

func (r *UploadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM core_uploads WHERE id = $1`, id)
	if err != nil {
		return gerrors.Wrap(err, "upload repository")
	}
	if tag.RowsAffected() == 0 {
		return upload.ErrNotFound
	}
	return nil
}

func scanUploads(rows pgx.Rows) ([]upload.Upload, error) {
	defer rows.Close()

	var results []upload.Upload
	for rows.Next() {
		var row models.Upload
		if err := rows.Scan(
			&row.ID, &row.Name, &row.Path, &row.Hash, &row.Size, &row.Mimetype, &row.CreatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainUpload(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanUpload(row pgx.Row) (upload.Upload, error) {
	var m models.Upload
	if err := row.Scan(
		&m.ID, &m.Name, &m.Path, &m.Hash, &m.Size, &m.Mimetype, &m.CreatedAt,
	); err != nil {
		return upload.Upload{}, err
	}
	return toDomainUpload(&m), nil
}
