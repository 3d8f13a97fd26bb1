package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/solstice-web/sitekit/modules/core/domain/entities/setting"
	"github.com/solstice-web/sitekit/modules/core/infrastructure/persistence/models"
	"github.com/solstice-web/sitekit/pkg/composables"
)

const settingColumns = `key, value, updated_at`

type SettingRepository struct{}

func NewSettingRepository() setting.Repository {
	return &SettingRepository{}
}

func (r *SettingRepository) Keys(ctx context.Context) ([]string, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `SELECT key FROM core_settings ORDER BY key ASC`)
	if err != nil {
		return nil, gerrors.Wrap(err, "setting repository")
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (r *SettingRepository) GetByKey(ctx context.Context, key string) (setting.Setting, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return setting.Setting{}, err
	}
	var row models.Setting
	err = tx.QueryRow(
		ctx,
		`SELECT `+settingColumns+` FROM core_settings WHERE key = $1`,
		key,
	).Scan(&row.Key, &row.Value, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return setting.Setting{}, setting.ErrNotFound
		}
		return setting.Setting{}, gerrors.Wrap(err, "setting repository")
	}
	return toDomainSetting(&row), nil
}

func (r *SettingRepository) Upsert(ctx context.Context, s setting.Setting) (setting.Setting, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return setting.Setting{}, err
	}
	var row models.Setting
	err = tx.QueryRow(
		ctx,
		`INSERT INTO core_settings (key, value)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
		 RETURNING `+settingColumns,
		s.Key(), s.Value(),
	).Scan(&row.Key, &row.Value, &row.UpdatedAt)
	if err != nil {
		return setting.Setting{}, gerrors.Wrap(err, "setting repository")
	}
	return toDomainSetting(&row), nil
}

func (r *SettingRepository) Delete(ctx context.Context, key string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM core_settings WHERE key = $1`, key)
	if err != nil {
		return gerrors.Wrap(err, "setting repository")
	}
	if tag.RowsAffected() == 0 {
		return setting.ErrNotFound
	}
	return nil
}
