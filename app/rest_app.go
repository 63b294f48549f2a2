package app

import (
	"context"
	"net/http"
	"os"

	"github.com/Gthulhu/schedsim/config"
	"github.com/Gthulhu/schedsim/pkg/logger"
	"github.com/Gthulhu/schedsim/pkg/tracing"
	"github.com/Gthulhu/schedsim/rest"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

func NewRestApp(configName string, configDirPath string) (*fx.App, error) {
	cfg, err := config.InitSimConfig(configName, configDirPath)
	if err != nil {
		return nil, err
	}
	_, closeLog, err := logger.InitLoggerWithConfig(cfg.Logging, os.Stdout)
	if err != nil {
		return nil, err
	}
	shutdownTracing, err := tracing.InitWithConfig(cfg.Tracing, rest.BuildVersion)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	handlerModule, err := HandlerModule(configName, configDirPath)
	if err != nil {
		_ = shutdownTracing(context.Background())
		_ = closeLog()
		return nil, err
	}

	app := fx.New(
		handlerModule,
		fx.Invoke(func(lc fx.Lifecycle) {
			// appended first so it stops last, after the server has drained
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					err := shutdownTracing(ctx)
					if closeErr := closeLog(); closeErr != nil && err == nil {
						err = errors.Wrap(closeErr, "close log file")
					}
					return err
				},
			})
		}),
		fx.Invoke(StartRestApp),
	)
	return app, nil
}

func StartRestApp(lc fx.Lifecycle, cfg config.ServerConfig, handler *rest.Handler) error {
	engine := echo.New()
	engine.HideBanner = true
	handler.SetupRoutes(engine)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			serverHost := cfg.Host
			if serverHost == "" {
				serverHost = ":8080"
			}
			go func() {
				logger.Logger(ctx).Info().Msgf("starting rest server on port %s", serverHost)
				if err := runServer(engine, serverHost); err != nil {
					logger.Logger(ctx).Fatal().Err(err).Msgf("start rest server fail on port %s", serverHost)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Logger(ctx).Info().Msg("shutting down rest server")
			return engine.Shutdown(ctx)
		},
	})

	return nil
}

// runServer blocks serving on host. A graceful shutdown is not an error.
func runServer(engine *echo.Echo, host string) error {
	err := engine.Start(host)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
