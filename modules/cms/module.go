package cms

import (
	"embed"

	"github.com/solstice-web/sitekit/modules/cms/infrastructure/persistence"
	"github.com/solstice-web/sitekit/modules/cms/presentation/controllers"
	"github.com/solstice-web/sitekit/modules/cms/services"
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

	app.RegisterServices(
		services.NewPostService(persistence.NewPostRepository()),
		services.NewCaseStudyService(persistence.NewCaseStudyRepository()),
		services.NewAuthorService(persistence.NewAuthorRepository()),
		services.NewCategoryService(persistence.NewCategoryRepository()),
		services.NewIndustryService(persistence.NewIndustryRepository()),
	)

	app.RegisterControllers(
		controllers.NewPostsAPIController(app),
		controllers.NewCaseStudiesAPIController(app),
		controllers.NewTaxonomyAPIController(app),
		controllers.NewPublicContentController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "cms"
}
