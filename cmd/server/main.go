package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"

	"github.com/solstice-web/sitekit/internal/server"
	"github.com/solstice-web/sitekit/modules"
	"github.com/solstice-web/sitekit/pkg/application"
	"github.com/solstice-web/sitekit/pkg/configuration"
	"github.com/solstice-web/sitekit/pkg/eventbus"
	"github.com/solstice-web/sitekit/pkg/logging"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	if conf.OpenTelemetry.Enabled {
		cleanup := logging.SetupTracing(
			context.Background(),
			conf.OpenTelemetry.ServiceName,
			conf.OpenTelemetry.Endpoint,
		)
		defer cleanup()
		logger.Info("tracing enabled, exporting to " + conf.OpenTelemetry.Endpoint)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	if err := runMigrations(ctx, app, conf); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Pool:          pool,
	})
	if err != nil {
		log.Fatalf("failed to assemble server: %v", err)
	}

	logger.Infof("listening on %s", conf.SocketAddress)
	if err := serverInstance.Start(conf.SocketAddress); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func runMigrations(ctx context.Context, app application.Application, conf *configuration.Configuration) error {
	db, err := sql.Open("postgres", conf.Database.Opts)
	if err != nil {
		return err
	}
	defer db.Close()
	return app.Migrations().Run(ctx, db)
}
