package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/niksmo/qkart/config"
	"github.com/niksmo/qkart/internal/adapter"
	"github.com/niksmo/qkart/internal/adapter/backend"
	"github.com/niksmo/qkart/internal/adapter/httphandler"
	"github.com/niksmo/qkart/internal/adapter/kafka"
	"github.com/niksmo/qkart/internal/adapter/storage"
	"github.com/niksmo/qkart/internal/core/port"
	"github.com/niksmo/qkart/internal/core/service"
	"github.com/niksmo/qkart/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	kv         port.KeyValueStorage
	sqldb      *storage.SQLDB
	backend    *backend.Client
	emitter    *kafka.ClientEventsEmitter
	service    *service.Service
	httpServer *httphandler.HTTPServer
}

// New wires the storefront. It panics when a required dependency can not
// be set up.
func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initBackend()
	app.initEvents()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	if app.cfg.Session.Storage != config.StorageSQL {
		app.kv = storage.NewMemoryKV()
		return
	}

	db, err := storage.NewSQLDB(app.ctx, app.cfg.Session.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = &db
	app.kv = storage.NewSessionEntries(db)
}

func (app *App) initBackend() {
	const op = "App.initBackend"
	apiCfg := app.cfg.API

	tlsConfig, err := adapter.MakeTLSConfig(apiCfg.TLS.CA, apiCfg.TLS.Cert, apiCfg.TLS.Key)
	if err != nil {
		app.fallDown(op, err)
	}

	cl, err := backend.New(
		apiCfg.Endpoint,
		backend.TimeoutOpt(apiCfg.Timeout),
		backend.TLSConfigOpt(tlsConfig),
		backend.BalancePathOpt(apiCfg.BalancePath),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.backend = cl
}

func (app *App) initEvents() {
	const op = "App.initEvents"
	log := slog.With("op", op)

	if !app.cfg.EventsEnabled() {
		log.Info("client events are disabled")
		return
	}
	brokerCfg := app.cfg.Broker

	srClient, err := sr.NewClient(sr.URLs(brokerCfg.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	clientEventSerde, err := schema.NewSerdeClientEventV1(
		app.ctx,
		schema.TopicSubjectOpt(brokerCfg.Topics.ClientEvents),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	tlsConfig, err := adapter.MakeTLSConfig(
		brokerCfg.TLS.CA, brokerCfg.TLS.Cert, brokerCfg.TLS.Key,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	emitter, err := kafka.NewClientEventsEmitter(kafka.ClientEventsEmitterConfig{
		SeedBrokers: brokerCfg.SeedBrokers,
		Topic:       brokerCfg.Topics.ClientEvents,
		ClientID:    brokerCfg.ClientID,
		Encoder:     clientEventSerde,
		TLSConfig:   tlsConfig,
	})
	if err != nil {
		app.fallDown(op, err)
	}
	app.emitter = emitter
}

func (app *App) initCoreService() {
	opts := []service.Opt{
		service.SearchDelayOpt(app.cfg.Search.Debounce),
		service.SearchTimeoutOpt(app.cfg.Search.Timeout),
		service.ViewTTLOpt(app.cfg.Session.ViewTTL),
	}
	if app.emitter != nil {
		opts = append(opts, service.EventsOpt(app.emitter))
	}
	app.service = service.New(app.ctx, app.backend, app.kv, opts...)
}

func (app *App) initInboundAdapters() {
	handler := httphandler.NewRouter(
		app.service, app.cfg.Session.CookieName, app.cfg.CORSOrigins,
	)
	app.httpServer = httphandler.NewHTTPServer(
		app.cfg.HTTPServerAddr, handler, app.cfg.API.Timeout+app.cfg.Search.Timeout,
	)
	if err := app.httpServer.Listen(); err != nil {
		app.fallDown("App.initInboundAdapters", err)
	}
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.service.Run(app.ctx)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.service.Close()
	if app.emitter != nil {
		app.emitter.Close()
	}
	if app.sqldb != nil {
		app.sqldb.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
