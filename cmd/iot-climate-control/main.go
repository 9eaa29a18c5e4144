package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/diwise/iot-climate-control/internal/pkg/application"
	"github.com/diwise/iot-climate-control/internal/pkg/application/dispatcher"
	"github.com/diwise/iot-climate-control/internal/pkg/application/events"
	"github.com/diwise/iot-climate-control/internal/pkg/application/registry"
	"github.com/diwise/iot-climate-control/internal/pkg/application/rooms"
	"github.com/diwise/iot-climate-control/internal/pkg/application/thresholds"
	"github.com/diwise/iot-climate-control/internal/pkg/application/webevents"
	"github.com/diwise/iot-climate-control/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/iot-climate-control/internal/pkg/infrastructure/repositories/database/devices"
	thresholdsdb "github.com/diwise/iot-climate-control/internal/pkg/infrastructure/repositories/database/thresholds"
	"github.com/diwise/iot-climate-control/internal/pkg/infrastructure/router"
	"github.com/diwise/iot-climate-control/internal/pkg/infrastructure/transport/mqtt"
	"github.com/diwise/iot-climate-control/internal/pkg/presentation/api"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const serviceName string = "iot-climate-control"

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",
		logLevel:      "info",

		policiesFile:      "/opt/diwise/config/authz.rego",
		configurationFile: "/opt/diwise/config/config.yaml",
		devicesFile:       "/opt/diwise/config/devices.csv",

		dbHost:     "",
		dbUser:     "",
		dbPassword: "",
		dbPort:     "5432",
		dbName:     "diwise",
		dbSSLMode:  "disable",

		redisAddr:     "",
		redisPassword: "",
		redisDB:       "0",
	}
}

func main() {
	// a missing .env file is fine, the environment is used as is
	_ = godotenv.Load()

	ctx, flags := parseExternalConfig(context.Background(), defaultFlags())

	setLogLevel(flags[logLevel])

	serviceVersion := buildinfo.SourceVersion()
	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion)
	defer cleanup()

	cfg, err := loadConfiguration(ctx, flags[configurationFile])
	exitIf(err, logger, "could not load configuration")

	devicesCSV, err := openOptional(ctx, flags[devicesFile])
	exitIf(err, logger, "could not open devices file")

	we := webevents.New()

	app, link, err := initialize(ctx, flags, cfg, we, devicesCSV)
	exitIf(err, logger, "failed to initialize service")

	policies, err := openOptional(ctx, flags[policiesFile])
	exitIf(err, logger, "unable to open opa policy file")

	r, err := setupRouter(ctx, policies, app, we, cfg)
	exitIf(err, logger, "failed to register api handlers")

	err = link.Connect(app)
	exitIf(err, logger, "failed to connect to mqtt broker")
	defer link.Close()

	server := &http.Server{
		Addr:              flags[listenAddress] + ":" + flags[servicePort],
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("starting to listen for connections")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			exitIf(err, logger, "failed to start request router")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down ...")

	// open event streams would otherwise hold the http server until the timeout
	we.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down http server")
	}

	app.Stop()
}

// initialize wires the application. Inbound mqtt messages are not received until the
// returned link is connected. Everything published to the realtime rooms is mirrored to we.
func initialize(ctx context.Context, flags flagMap, cfg *application.Config, we webevents.WebEvents, devicesCSV io.ReadCloser) (application.App, *mqtt.Link, error) {
	log := logging.GetFromContext(ctx)

	connect := database.Shared(newConnector(ctx, flags))

	deviceRepo, err := devices.NewDeviceRepository(connect)
	if err != nil {
		return nil, nil, fmt.Errorf("could not create device repository: %w", err)
	}

	if devicesCSV != nil {
		defer devicesCSV.Close()

		if err = devices.Seed(ctx, deviceRepo, devicesCSV); err != nil {
			return nil, nil, fmt.Errorf("could not seed devices: %w", err)
		}
	}

	thresholdRepo, err := thresholdsdb.NewThresholdRepository(connect)
	if err != nil {
		return nil, nil, fmt.Errorf("could not create threshold repository: %w", err)
	}

	reg := registry.New(deviceRepo)

	if flags[redisAddr] != "" {
		db, err := strconv.Atoi(flags[redisDB])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis database %q: %w", flags[redisDB], err)
		}

		client, err := registry.NewRedisClient(ctx, registry.RedisConfig{Addr: flags[redisAddr], Password: flags[redisPassword], DB: db})
		if err != nil {
			return nil, nil, err
		}

		if err = registry.ListenForInvalidations(ctx, client, reg); err != nil {
			return nil, nil, err
		}
	} else {
		log.Info().Msg("no redis configured, registry invalidations are disabled")
	}

	sender, err := events.New(cfg.Events())
	if err != nil {
		return nil, nil, fmt.Errorf("could not create alert sender: %w", err)
	}

	messenger, err := messaging.Initialize(messaging.LoadConfiguration(serviceName, log))
	if err != nil {
		return nil, nil, fmt.Errorf("could not initialize messaging: %w", err)
	}

	link := mqtt.New(ctx, mqtt.LoadConfiguration(ctx, serviceName))
	d := dispatcher.New(ctx, cfg.Dispatcher, reg, link)

	hub := webevents.Mirror(rooms.NewHub(cfg.Realtime.RoomBuffer), we)

	app := application.New(ctx, *cfg, reg, thresholds.NewStore(thresholdRepo), d, hub, sender, messenger)

	return app, link, nil
}

func setupRouter(ctx context.Context, policies io.ReadCloser, app application.App, we webevents.WebEvents, cfg *application.Config) (*chi.Mux, error) {
	r := router.New(serviceName)

	if policies == nil {
		return api.RegisterHandlers(ctx, r, nil, app, we, cfg.Realtime.WriteTimeout)
	}

	defer policies.Close()
	return api.RegisterHandlers(ctx, r, policies, app, we, cfg.Realtime.WriteTimeout)
}

func newConnector(ctx context.Context, flags flagMap) database.ConnectorFunc {
	if flags[dbHost] == "" {
		log := logging.GetFromContext(ctx)
		log.Warn().Msg("no database host configured, using an in-memory database")
		return database.NewSQLiteConnector(ctx)
	}

	return database.NewPostgreSQLConnector(ctx, database.ConnectorConfig{
		Host:     flags[dbHost],
		Port:     flags[dbPort],
		Username: flags[dbUser],
		Password: flags[dbPassword],
		DbName:   flags[dbName],
		SslMode:  flags[dbSSLMode],
	})
}

// loadConfiguration reads the yaml configuration. Defaults are used when the file does not exist.
func loadConfiguration(ctx context.Context, path string) (*application.Config, error) {
	f, err := openOptional(ctx, path)
	if err != nil {
		return nil, err
	}

	if f == nil {
		cfg := application.DefaultConfig()
		return &cfg, nil
	}
	defer f.Close()

	return application.LoadConfiguration(f)
}

func openOptional(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log := logging.GetFromContext(ctx)
		log.Info().Str("path", path).Msg("file not found, skipping")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func parseExternalConfig(ctx context.Context, flags flagMap) (context.Context, flagMap) {
	log := logging.GetFromContext(ctx)

	// Allow environment variables to override certain defaults
	envOrDef := func(key, def string) string {
		return env.GetVariableOrDefault(log, key, def)
	}

	flags[listenAddress] = envOrDef("LISTEN_ADDRESS", flags[listenAddress])
	flags[servicePort] = envOrDef("SERVICE_PORT", flags[servicePort])
	flags[logLevel] = envOrDef("LOG_LEVEL", flags[logLevel])

	flags[policiesFile] = envOrDef("POLICIES_FILE", flags[policiesFile])
	flags[configurationFile] = envOrDef("CONFIG_FILE", flags[configurationFile])
	flags[devicesFile] = envOrDef("DEVICES_FILE", flags[devicesFile])

	flags[dbHost] = envOrDef("POSTGRES_HOST", flags[dbHost])
	flags[dbPort] = envOrDef("POSTGRES_PORT", flags[dbPort])
	flags[dbName] = envOrDef("POSTGRES_DBNAME", flags[dbName])
	flags[dbUser] = envOrDef("POSTGRES_USER", flags[dbUser])
	flags[dbPassword] = envOrDef("POSTGRES_PASSWORD", flags[dbPassword])
	flags[dbSSLMode] = envOrDef("POSTGRES_SSLMODE", flags[dbSSLMode])

	flags[redisAddr] = envOrDef("REDIS_ADDR", flags[redisAddr])
	flags[redisPassword] = envOrDef("REDIS_PASSWORD", flags[redisPassword])
	flags[redisDB] = envOrDef("REDIS_DB", flags[redisDB])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("policies", "an authorization policy file", apply(policiesFile))
	flag.Func("devices", "list of known devices and their actuators", apply(devicesFile))
	flag.Func("config", "climate control configuration file", apply(configurationFile))
	flag.Func("loglevel", "log level (debug, info, warn, error)", apply(logLevel))
	flag.Parse()

	return ctx, flags
}

// setLogLevel applies the level to every logger. Unknown levels fall back to info.
func setLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func exitIf(err error, logger zerolog.Logger, msg string) {
	if err != nil {
		logger.Error().Err(err).Msg(msg)
		time.Sleep(2 * time.Second)
		os.Exit(1)
	}
}
