package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/solstice-web/sitekit/modules/cms/domain/entities/post"
	"github.com/solstice-web/sitekit/modules/cms/infrastructure/persistence/models"
	"github.com/solstice-web/sitekit/pkg/composables"
	"github.com/solstice-web/sitekit/pkg/repo"
)

const postColumns = `id, title, slug, excerpt, content, author_id, category_id, cover_upload_id, published, published_at, created_at, updated_at`

type PostRepository struct{}

func NewPostRepository() post.Repository {
	return &PostRepository{}
}

func (r *PostRepository) GetPaginated(ctx context.Context, params *post.FindParams) ([]post.Post, int64, error) {
	if params == nil {
		params = &post.FindParams{}
	}

	type page struct {
		items []post.Post
		total int64
	}
	result, err := composables.InTxResult(ctx, func(txCtx context.Context) (page, error) {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return page{}, err
		}

		where, args := buildPostFilters(params)
		rows, err := tx.Query(
			txCtx,
			`SELECT `+postColumns+` FROM cms_posts WHERE `+strings.Join(where, " AND ")+
				` ORDER BY created_at DESC `+repo.FormatLimitOffset(params.Limit, params.Offset),
			args...,
		)
		if err != nil {
			return page{}, err
		}
		items, err := scanPosts(rows)
		if err != nil {
			return page{}, err
		}

		var total int64
		if err := tx.QueryRow(
			txCtx,
			`SELECT COUNT(*) FROM cms_posts WHERE `+strings.Join(where, " AND "),
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

func buildPostFilters(params *post.FindParams) ([]string, []interface{}) {
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
	if params.CategoryID != uuid.Nil {
		where = append(where, fmt.Sprintf("category_id = $%d", argPos))
		args = append(args, params.CategoryID)
		argPos++
	}
	if params.AuthorID != uuid.Nil {
		where = append(where, fmt.Sprintf("author_id = $%d", argPos))
		args = append(args, params.AuthorID)
	}
	return where, args
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (post.Post, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return post.Post{}, err
	}
	entity, err := scanPost(tx.QueryRow(ctx, `SELECT `+postColumns+` FROM cms_posts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post.Post{}, post.ErrNotFound
		}
		return post.Post{}, err
	}
	return entity, nil
}

func (r *PostRepository) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (post.Post, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return post.Post{}, err
	}
	query := `SELECT ` + postColumns + ` FROM cms_posts WHERE slug = $1`
	if publishedOnly {
		query += ` AND published = true`
	}
	entity, err := scanPost(tx.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post.Post{}, post.ErrNotFound
		}
		return post.Post{}, err
	}
	return entity, nil
}

func (r *PostRepository) Create(ctx context.Context, p post.Post) (post.Post, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return post.Post{}, err
	}
	row := tx.QueryRow(
		ctx,
		`INSERT INTO cms_posts (title, slug, excerpt, content, author_id, category_id, cover_upload_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING `+postColumns,
		p.Title(), p.Slug(), p.Excerpt(), contentOrEmpty(p.Content()),
		p.AuthorID(), nullableID(p.CategoryID()), nullableID(p.CoverUploadID()),
	)
	created, err := scanPost(row)
	if err != nil {
		return post.Post{}, mapPostError(err)
	}
	return created, nil
}

func (r *PostRepository) Update(ctx context.Context, id uuid.UUID, p post.Post) (post.Post, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return post.Post{}, err
	}
	row := tx.QueryRow(
		ctx,
		`UPDATE cms_posts
		 SET title = $2, slug = $3, excerpt = $4, content = $5, author_id = $6,
		     category_id = $7, cover_upload_id = $8, updated_at = now()
		 WHERE id = $1 RETURNING `+postColumns,
		id, p.Title(), p.Slug(), p.Excerpt(), contentOrEmpty(p.Content()),
		p.AuthorID(), nullableID(p.CategoryID()), nullableID(p.CoverUploadID()),
	)
	updated, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post.Post{}, post.ErrNotFound
		}
		return post.Post{}, mapPostError(err)
	}
	return updated, nil
}

func (r *PostRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool, publishedAt *time.Time) (post.Post, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return post.Post{}, err
	}
	row := tx.QueryRow(
		ctx,
		`UPDATE cms_posts SET published = $2, published_at = $3, updated_at = now()
		 WHERE id = $1 RETURNING `+postColumns,
		id, published, publishedAt,
	)
	updated, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post.Post{}, post.ErrNotFound
		}
		return post.Post{}, err
	}
	return updated, nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM cms_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return post.ErrNotFound
	}
	return nil
}

func contentOrEmpty(content json.RawMessage) []byte {
	if len(content) == 0 {
		return []byte(`{}`)
	}
	return content
}

func mapPostError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return post.ErrSlugTaken
	}
	return gerrors.Wrap(err, "post repository")
}

func scanPosts(rows pgx.Rows) ([]post.Post, error) {
	defer rows.Close()

	var results []post.Post
	for rows.Next() {
		var row models.Post
		if err := rows.Scan(
			&row.ID, &row.Title, &row.Slug, &row.Excerpt, &row.Content,
			&row.AuthorID, &row.CategoryID, &row.CoverUploadID,
			&row.Published, &row.PublishedAt, &row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainPost(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanPost(row pgx.Row) (post.Post, error) {
	var m models.Post
	if err := row.Scan(
		&m.ID, &m.Title, &m.Slug, &m.Excerpt, &m.Content,
		&m.AuthorID, &m.CategoryID, &m.CoverUploadID,
		&m.Published, &m.PublishedAt, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return post.Post{}, err
	}
	return toDomainPost(&m), nil
}
