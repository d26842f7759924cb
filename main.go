package main

import (
	"flag"

	"github.com/ghaggin/hbnb/internal/api"
	"github.com/ghaggin/hbnb/internal/config"
	"github.com/ghaggin/hbnb/internal/middleware"
	"github.com/ghaggin/hbnb/internal/repository"
	"github.com/ghaggin/hbnb/internal/site"
	"github.com/ghaggin/hbnb/internal/template"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	var configPath = flag.String("config", "", "path to yaml config file")
	flag.Parse()

	newConfigPath := func() config.Path {
		return config.Path(*configPath)
	}

	app := fx.New(
		fx.Provide(
			newConfigPath,
			config.New,
			newLogger,
			repository.NewStore,
			middleware.NewSessionManager,
			api.New,
			template.New,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		site.Module,
		fx.Invoke(site.RegisterHooks),
	)

	app.Run()
}

func newLogger(c *config.Config) (*zap.Logger, error) {
	if c.Log.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
