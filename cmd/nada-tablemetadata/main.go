package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/navikt/nada-tablemetadata/pkg/bq"
	"github.com/navikt/nada-tablemetadata/pkg/cache"
	"github.com/navikt/nada-tablemetadata/pkg/config/v2"
	"github.com/navikt/nada-tablemetadata/pkg/database"
	"github.com/navikt/nada-tablemetadata/pkg/errs"
	"github.com/navikt/nada-tablemetadata/pkg/requestlogger"
	"github.com/navikt/nada-tablemetadata/pkg/service/core"
	apiclients "github.com/navikt/nada-tablemetadata/pkg/service/core/api"
	"github.com/navikt/nada-tablemetadata/pkg/service/core/handlers"
	"github.com/navikt/nada-tablemetadata/pkg/service/core/routes"
	"github.com/navikt/nada-tablemetadata/pkg/service/core/storage"
	"github.com/navikt/nada-tablemetadata/pkg/tablemetadata"
)

const (
	envPrefix       = "NADA_TABLEMETADATA"
	metricsPath     = "/internal/metrics"
	alivePath       = "/internal/isalive"
	readyPath       = "/internal/isready"
	shutdownTimeout = 5 * time.Second
)

var (
	configFilePath = flag.String("config", "config.yaml", "path to config file")
	printRoutes    = flag.Bool("print-routes", false, "print the registered routes and exit")
)

func main() {
	flag.Parse()

	zlog := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// A missing .env file is fine, it is only used for local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		zlog.Fatal().Err(err).Msg("loading .env file")
	}

	fileParts, err := config.ProcessConfigPath(*configFilePath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("processing config path")
	}

	cfg, err := config.NewFileSystemLoader().Load(fileParts.FileName, fileParts.Path, envPrefix, config.NewDefaultEnvBinder())
	if err != nil {
		zlog.Fatal().Err(err).Msg("loading config")
	}

	err = cfg.Validate()
	if err != nil {
		zlog.Fatal().Err(err).Msg("validating config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		zlog.Fatal().Err(err).Msg("parsing log level")
	}
	zlog = zlog.Level(level)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	repo, err := database.New(
		cfg.Postgres.ConnectionString(),
		cfg.Postgres.Configuration.MaxIdleConnections,
		cfg.Postgres.Configuration.MaxOpenConnections,
		zlog.With().Str("subsystem", "repo").Logger(),
	)
	if err != nil {
		zlog.Fatal().Err(err).Msg("setting up database")
	}

	httpClient := &http.Client{
		Timeout: cfg.MetadataService.Timeout(),
	}

	cacher := cache.New(cfg.Cache.Size, cfg.Cache.TTL(), zlog.With().Str("subsystem", "cache").Logger())
	bqClient := bq.NewClient(cfg.BigQuery.Endpoint, cfg.BigQuery.EnableAuth, zlog.With().Str("subsystem", "bigquery").Logger())

	stores := storage.NewStores(repo)
	apiClients := apiclients.NewClients(cfg, cacher, bqClient, httpClient, zlog.With().Str("subsystem", "api_clients").Logger())

	opts := tablemetadata.Options{
		NestedColumnsEnabled: cfg.NestedColumns.Enabled,
		DeriveTypeMetadata:   cfg.NestedColumns.DeriveTypeMetadata,
	}

	notificationService := core.NewNotificationService(
		apiClients.UserAPI,
		apiClients.NotificationAPI,
		stores.NotificationStorage,
		zlog.With().Str("subsystem", "notification_service").Logger(),
	)

	services := core.NewServices(
		core.NewTableMetadataService(
			apiClients.TableMetadataAPI,
			apiClients.BigQueryAPI,
			notificationService,
			opts,
			zlog.With().Str("subsystem", "table_metadata_service").Logger(),
		),
		notificationService,
		core.NewSlackService(apiClients.SlackAPI),
	)

	h := handlers.NewHandlers(services)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestlogger.Middleware(
		zlog.With().Str("subsystem", "requestlogger").Logger(),
		metricsPath, alivePath, readyPath,
	))

	routes.Add(router,
		routes.NewTableMetadataRoutes(routes.NewTableMetadataEndpoints(zlog, h.TableMetadataHandler)),
		routes.NewNotificationRoutes(routes.NewNotificationEndpoints(zlog, h.NotificationHandler)),
		routes.NewSlackRoutes(routes.NewSlackEndpoints(zlog, h.SlackHandler)),
		routes.NewInternalRoutes(routes.NewInternalEndpoints(
			zlog,
			prom(append(append(errs.Metrics(), cacher.Metrics()...), database.Metrics()...)...),
			repo.GetDB().PingContext,
		)),
	)

	if *printRoutes {
		if err := routes.Print(router, os.Stdout); err != nil {
			zlog.Fatal().Err(err).Msg("printing routes")
		}

		return
	}

	server := http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Address, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info().Msgf("listening on %s", server.Addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("serving http")
		}
	}()
	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Warn().Err(err).Msg("shutdown error")
	}

	stats := cacher.Stats()
	zlog.Info().
		Int("requests", stats.TotalRequests).
		Int("hits", stats.TotalHits).
		Int("misses", stats.TotalMisses).
		Int("entries", stats.Entries).
		Msg("cache statistics at shutdown")

	if err := repo.Close(); err != nil {
		zlog.Warn().Err(err).Msg("closing database")
	}
}

func prom(cols ...prometheus.Collector) *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewGoCollector())
	r.MustRegister(cols...)

	return r
}
