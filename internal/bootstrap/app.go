package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"fnoldesk/internal/bootstrap/config"
	"fnoldesk/internal/bootstrap/logging"
	"fnoldesk/internal/errs"
	"fnoldesk/internal/infrastructure/persistence/sqlite/model"
	"fnoldesk/internal/interfaces/httpapi"
)

type App struct {
	Config config.Config
	DB     *gorm.DB
	Logger *slog.Logger
	Server *httpapi.Server
}

// WithLogger swaps the bootstrap logger on ctx for the configured one while
// keeping attrs already attached.
func (a *App) WithLogger(ctx context.Context) context.Context {
	if a == nil || a.Logger == nil {
		return ctx
	}
	return logging.WithLogger(ctx, a.Logger)
}

func (a *App) InitSchema(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.app"))
	logging.Info(logCtx, "start schema migration")

	if err := a.DB.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errs.Wrap(err, "auto migrate schema")
	}

	logging.Info(logCtx, "schema migration completed")
	return nil
}
