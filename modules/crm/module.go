package crm

import (
	"embed"

	"github.com/solstice-web/sitekit/modules/crm/infrastructure/persistence"
	"github.com/solstice-web/sitekit/modules/crm/presentation/controllers"
	"github.com/solstice-web/sitekit/modules/crm/services"
	"github.com/solstice-web/sitekit/pkg/application"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles, "infrastructure/persistence/schema")

	leadService := services.NewLeadService(persistence.NewLeadRepository(), app.EventPublisher())
	app.RegisterServices(
		leadService,
		services.NewLeadExportService(leadService),
	)

	app.RegisterControllers(
		controllers.NewLeadAPIController(app),
		controllers.NewLeadIntakeController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "crm"
}
