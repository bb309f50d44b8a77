package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/relayhq/relay/internal/config"
	"github.com/relayhq/relay/internal/db"
	"github.com/relayhq/relay/internal/handlers"
	"github.com/relayhq/relay/internal/logger"
	"github.com/relayhq/relay/internal/message"
	"github.com/relayhq/relay/internal/message/event"
	"github.com/relayhq/relay/internal/notify"
	"github.com/relayhq/relay/internal/pipeline"
	"github.com/relayhq/relay/internal/providers"
	"github.com/relayhq/relay/internal/server"
	"github.com/relayhq/relay/internal/translate"
	"github.com/relayhq/relay/internal/users"
)

func runServe() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideDBPool,
			event.NewHub,
			fx.Annotate(providers.NewStore, fx.As(new(providers.Store))),
			fx.Annotate(users.NewStore, fx.As(new(users.Store))),
			fx.Annotate(message.NewStore, fx.As(new(message.Store))),
			providers.NewService,
			users.NewService,
			provideMessageService,
			provideTranslateService,
			provideNotifier,
			provideProcessor,
			pipeline.NewWorker,
			provideServerHandler(handlers.NewPingHandler),
			provideServerHandler(handlers.NewProvidersHandler),
			provideServerHandler(provideMessagesHandler),
			provideServerHandler(handlers.NewUsersHandler),
			provideServer,
		),
		fx.Invoke(
			runMigrations,
			startPipelineWorker,
			startServer,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

func provideConfig() (config.Config, error) {
	cfgPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideDBPool(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, err := db.Open(context.Background(), cfg.Postgres)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: func(ctx context.Context) error { pool.Close(); return nil }})
	return pool, nil
}

func provideMessageService(log *slog.Logger, store message.Store, hub *event.Hub) *message.Service {
	return message.NewService(log, store, hub)
}

func provideTranslateService(log *slog.Logger, cfg config.Config) *translate.Service {
	var backend translate.Backend
	if cfg.Translate.Enabled() {
		backend = translate.NewGoogleBackend(
			log,
			cfg.Translate.ProjectID,
			cfg.Translate.APIKey,
			time.Duration(cfg.Translate.TimeoutSeconds)*time.Second,
		)
	}
	return translate.NewService(log, backend)
}

func provideNotifier(log *slog.Logger, cfg config.Config, userService *users.Service) *notify.Dispatcher {
	var pusher notify.Pusher
	if cfg.Push.Endpoint != "" && cfg.Push.ServerKey != "" {
		pusher = notify.NewHTTPPusher(
			cfg.Push.Endpoint,
			cfg.Push.ServerKey,
			time.Duration(cfg.Push.TimeoutSeconds)*time.Second,
		)
	}
	return notify.NewDispatcher(log, userService, pusher)
}

func provideProcessor(
	log *slog.Logger,
	cfg config.Config,
	userService *users.Service,
	translateService *translate.Service,
	dispatcher *notify.Dispatcher,
	messageService *message.Service,
	providerService *providers.Service,
) *pipeline.Processor {
	return pipeline.NewProcessor(
		log,
		userService,
		translateService,
		dispatcher,
		messageService,
		providerService,
		cfg.Assistant.FallbackReply,
		time.Duration(cfg.Assistant.TimeoutSeconds)*time.Second,
	)
}

func provideMessagesHandler(log *slog.Logger, svc *message.Service) *handlers.MessagesHandler {
	return handlers.NewMessagesHandler(log, svc)
}

type serverParams struct {
	fx.In
	Logger   *slog.Logger
	Config   config.Config
	Handlers []server.Handler `group:"server_handlers"`
}

func provideServer(params serverParams) *server.Server {
	return server.NewServer(params.Logger, params.Config.Server.Addr, params.Handlers...)
}

func runMigrations(logger *slog.Logger, cfg config.Config) error {
	if err := db.Migrate(cfg.Postgres); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database schema up to date")
	return nil
}

func startPipelineWorker(lc fx.Lifecycle, worker *pipeline.Worker) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error { worker.Start(ctx); return nil },
		OnStop:  func(_ context.Context) error { worker.Stop(); cancel(); return nil },
	})
}

func startServer(lc fx.Lifecycle, logger *slog.Logger, srv *server.Server, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Stop(ctx)
		},
	})
}
