package bootstrap

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"fnoldesk/internal/bootstrap/config"
	"fnoldesk/internal/bootstrap/database"
	"fnoldesk/internal/bootstrap/logging"
	docsinfra "fnoldesk/internal/infrastructure/docs"
	"fnoldesk/internal/infrastructure/messaging"
	sqliterepo "fnoldesk/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "fnoldesk/internal/infrastructure/persistence/sqlite/uow"
	"fnoldesk/internal/interfaces/httpapi"
	"fnoldesk/internal/ports"
	"fnoldesk/internal/usecase/fnol"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideLogger),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewClaimRepository,
			fx.As(new(ports.ClaimRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewQualityRepository,
			fx.As(new(ports.QualityRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(
		fx.Annotate(
			docsinfra.NewCatalog,
			fx.As(new(ports.DocumentCatalog)),
		),
	),
	fx.Provide(provideEventPublisher),
	fx.Provide(provideClock),
	fx.Provide(provideRand),
	fx.Provide(fnol.NewService),
	fx.Provide(httpapi.NewMetrics),
	fx.Provide(provideHTTPServer),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideLogger(cfg config.Config) (*slog.Logger, error) {
	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	return logger.With(slog.String("app", cfg.App.Name), slog.String("env", cfg.App.Env)), nil
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config, logger *slog.Logger) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(logging.WithLogger(ctx, logger), slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB, logger *slog.Logger, server *httpapi.Server) *App {
	return &App{
		Config: cfg,
		DB:     db,
		Logger: logger,
		Server: server,
	}
}

// provideEventPublisher connects to NATS when events.nats_url is set and falls
// back to a no-op publisher otherwise.
func provideEventPublisher(lc fx.Lifecycle, ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.EventPublisher, error) {
	logCtx := logging.WithAttrs(logging.WithLogger(ctx, logger), slog.String("component", "bootstrap.fx"))

	if cfg.Events.NATSURL == "" {
		logging.Info(logCtx, "event publishing disabled")
		return messaging.NoopPublisher{}, nil
	}

	publisher, err := messaging.Connect(logCtx, cfg.Events.NATSURL, cfg.Events.SubjectPrefix)
	if err != nil {
		return nil, err
	}
	logging.Info(logCtx, "event publisher connected",
		slog.String("nats_url", cfg.Events.NATSURL),
		slog.String("subject_prefix", cfg.Events.SubjectPrefix),
	)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}

func provideClock() fnol.Clock {
	return fnol.SystemClock
}

func provideRand() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>1))
}

func provideHTTPServer(cfg config.Config, svc *fnol.Service, logger *slog.Logger, metrics *httpapi.Metrics) *httpapi.Server {
	return httpapi.NewServer(svc, httpapi.Options{
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Logger:      logger,
		Metrics:     metrics,
	})
}
