package modules

import (
	"github.com/solstice-web/sitekit/modules/cms"
	"github.com/solstice-web/sitekit/modules/core"
	"github.com/solstice-web/sitekit/modules/crm"
	"github.com/solstice-web/sitekit/pkg/application"
)

var BuiltInModules = []application.Module{
	core.NewModule(),
	cms.NewModule(),
	crm.NewModule(),
}

func Load(app application.Application, mods ...application.Module) error {
	for _, module := range mods {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
