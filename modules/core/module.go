package core

import (
	"embed"

	"github.com/go-faster/errors"

	"github.com/solstice-web/sitekit/modules/core/infrastructure/persistence"
	"github.com/solstice-web/sitekit/modules/core/infrastructure/storage"
	"github.com/solstice-web/sitekit/modules/core/presentation/controllers"
	"github.com/solstice-web/sitekit/modules/core/services"
	"github.com/solstice-web/sitekit/pkg/application"
	"github.com/solstice-web/sitekit/pkg/configuration"
	"github.com/solstice-web/sitekit/pkg/secrets"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

// devSettingsSecret keeps local development working without env setup.
// Production refuses to start without an explicit SETTINGS_SECRET.
const devSettingsSecret = "dev-only-settings-secret"

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	secret := conf.Secrets.SettingsSecret
	if secret == "" {
		if conf.GoAppEnvironment == configuration.Production {
			return errors.New("SETTINGS_SECRET is required in production")
		}
		secret = devSettingsSecret
	}
	codec, err := secrets.NewCodec(secret)
	if err != nil {
		return errors.Wrap(err, "core module")
	}

	app.Migrations().RegisterSchema(&migrationFiles, "infrastructure/persistence/schema")

	app.RegisterServices(
		services.NewSettingService(persistence.NewSettingRepository(), codec),
		services.NewUploadService(
			persistence.NewUploadRepository(),
			storage.NewDiskStorage(conf.UploadsPath),
		),
	)

	app.RegisterControllers(
		controllers.NewSettingsAPIController(app),
		controllers.NewUploadsController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "core"
}
