package mappers

import (
	"path"
	"time"

	"github.com/solstice-web/sitekit/modules/core/domain/entities/setting"
	"github.com/solstice-web/sitekit/modules/core/domain/entities/upload"
	"github.com/solstice-web/sitekit/modules/core/presentation/viewmodels"
)

func SettingToViewModel(s setting.Setting) *viewmodels.Setting {
	return &viewmodels.Setting{
		Key:       s.Key(),
		Value:     s.Value(),
		UpdatedAt: s.UpdatedAt().UTC().Format(time.RFC3339),
	}
}

func UploadToViewModel(u upload.Upload) *viewmodels.Upload {
	return &viewmodels.Upload{
		ID:        u.ID().String(),
		Name:      u.Name(),
		URL:       path.Join("/files", u.Path()),
		Hash:      u.Hash(),
		Size:      u.Size(),
		Mimetype:  u.Mimetype(),
		CreatedAt: u.CreatedAt().UTC().Format(time.RFC3339),
	}
}
