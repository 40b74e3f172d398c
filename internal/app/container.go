package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"ducktodo/pkg/api"
	"ducktodo/pkg/client"
	"ducktodo/pkg/config"
	"ducktodo/pkg/kafka"
	"ducktodo/pkg/logger"
	"ducktodo/pkg/middleware"
	"ducktodo/pkg/navigation"
	"ducktodo/pkg/notify"
	"ducktodo/pkg/session"

	"go.uber.org/dig"
)

const ServiceName = "ducktodo"

// App is everything a command needs to talk to the gateway.
type App struct {
	Config *config.Config
	Log    *logger.Logger
	API    *api.API
	Client *client.Client
	Tokens *session.Tokens
	Router *navigation.Router

	store *session.Store
	sink  *kafkaSink
}

// kafkaSink holds the optional Kafka side of notifications. Both fields are
// nil when no brokers are configured.
type kafkaSink struct {
	producer *kafka.Producer
	notifier *notify.KafkaNotifier
}

type appParams struct {
	dig.In

	Config *config.Config
	Log    *logger.Logger
	API    *api.API
	Client *client.Client
	Tokens *session.Tokens
	Router *navigation.Router
	Store  *session.Store
	Sink   *kafkaSink
}

// NewContainer registers every provider. Nothing is constructed until Invoke.
func NewContainer(ctx context.Context, configPath string) (*dig.Container, error) {
	c := dig.New()

	providers := []any{
		func() (*config.Config, error) {
			return config.Load(configPath)
		},
		newLogger,
		func(cfg *config.Config, log *logger.Logger) (*session.Store, error) {
			return session.Open(ctx, sessionConfig(cfg), log)
		},
		func(store *session.Store) *session.Tokens {
			return session.NewTokens(store)
		},
		newKafkaSink,
		newNotifier,
		func() *navigation.Router {
			return navigation.NewRouter(navigation.PathHome)
		},
		newClient,
		func(c *client.Client, cfg *config.Config, log *logger.Logger) *api.API {
			return api.New(c, api.NewValidator(log), log, api.WithLongTimeout(cfg.LongRequestTimeout))
		},
	}
	for _, p := range providers {
		if err := c.Provide(p); err != nil {
			return nil, fmt.Errorf("failed to register provider: %w", err)
		}
	}
	return c, nil
}

// Build wires the application. Callers must Close the result.
func Build(ctx context.Context, configPath string) (*App, error) {
	c, err := NewContainer(ctx, configPath)
	if err != nil {
		return nil, err
	}

	var a *App
	err = c.Invoke(func(p appParams) {
		a = &App{
			Config: p.Config,
			Log:    p.Log,
			API:    p.API,
			Client: p.Client,
			Tokens: p.Tokens,
			Router: p.Router,
			store:  p.Store,
			sink:   p.Sink,
		}
	})
	if err != nil {
		return nil, dig.RootCause(err)
	}

	a.Config.LogConfiguration(a.Log)
	return a, nil
}

// Close flushes pending notifications and releases the session backend.
func (a *App) Close() error {
	var errs []error
	if a.sink != nil && a.sink.notifier != nil {
		a.sink.notifier.Wait()
	}
	if a.sink != nil && a.sink.producer != nil {
		if err := a.sink.producer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close kafka producer: %w", err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close session store: %w", err))
		}
	}
	return errors.Join(errs...)
}

func newLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: ServiceName,
	})
}

func sessionConfig(cfg *config.Config) session.Config {
	return session.Config{
		Backend:    cfg.SessionBackend,
		SQLitePath: cfg.SessionPath,
		SealKey:    cfg.SessionSealKey,
		Redis: session.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   session.DefaultRedisPrefix,
			TTL:      cfg.RedisTTL,
		},
		Mongo: session.MongoConfig{
			URI:         cfg.MongoURI,
			Database:    cfg.MongoDatabaseName,
			Collection:  cfg.MongoCollection,
			ConnTimeout: cfg.MongoConnTimeout,
		},
	}
}

func newKafkaSink(cfg *config.Config, log *logger.Logger) (*kafkaSink, error) {
	if !cfg.NotificationsEnabled() {
		return &kafkaSink{}, nil
	}
	producer, err := kafka.NewProducer(kafka.DefaultConfig(cfg.KafkaBrokers, cfg.KafkaNotifyTopic), log)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification producer: %w", err)
	}
	producer.Use(kafka.LoggingMiddleware(log, cfg.KafkaNotifyTopic))
	return &kafkaSink{
		producer: producer,
		notifier: notify.NewKafkaNotifier(producer, ServiceName, log),
	}, nil
}

func newNotifier(log *logger.Logger, sink *kafkaSink) client.Notifier {
	notifiers := notify.Multi{notify.NewLogNotifier(log)}
	if sink.notifier != nil {
		notifiers = append(notifiers, sink.notifier)
	}
	return notifiers
}

func newClient(cfg *config.Config, tokens *session.Tokens, notifier client.Notifier, router *navigation.Router, log *logger.Logger) (*client.Client, error) {
	return client.New(client.Config{
		BaseURL:   cfg.BaseURL(),
		Timeout:   cfg.RequestTimeout,
		UserAgent: cfg.UserAgent,
	}, tokens, notifier, router, log,
		client.WithSaver(client.FileSaver{Dir: cfg.DownloadDir}),
		client.WithTransport(middleware.Chain(http.DefaultTransport,
			middleware.RequestID(),
			middleware.RequestLogging(log),
		)),
	)
}
