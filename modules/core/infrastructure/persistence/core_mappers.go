package persistence

import (
	"github.com/google/uuid"

	"github.com/solstice-web/sitekit/modules/core/domain/entities/setting"
	"github.com/solstice-web/sitekit/modules/core/domain/entities/upload"
	"github.com/solstice-web/sitekit/modules/core/infrastructure/persistence/models"
)

func parseUUID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func toDomainSetting(row *models.Setting) setting.Setting {
	return setting.Hydrate(row.Key, row.Value, row.UpdatedAt)
}

func toDomainUpload(row *models.Upload) upload.Upload {
	return upload.Hydrate(
		parseUUID(row.ID),
		row.Name,
		row.Path,
		row.Hash,
		row.Size,
		row.Mimetype,
		row.CreatedAt,
	)
}
