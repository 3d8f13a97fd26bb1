package main

import (
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/solstice-web/sitekit/modules"
	"github.com/solstice-web/sitekit/pkg/application"
	"github.com/solstice-web/sitekit/pkg/configuration"
	"github.com/solstice-web/sitekit/pkg/eventbus"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply all pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := configuration.Use()
			logger := conf.Logger()

			app := application.New(&application.ApplicationOptions{
				EventBus: eventbus.NewEventPublisher(logger),
				Logger:   logger,
			})
			if err := modules.Load(app, modules.BuiltInModules...); err != nil {
				return err
			}

			db, err := sql.Open("postgres", conf.Database.Opts)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := app.Migrations().Run(cmd.Context(), db); err != nil {
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	}
}
