package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"ducktodo/pkg/logger"
	"ducktodo/pkg/sealer"

	"gopkg.in/yaml.v3"
)

// BuildAPIBase is set at build time:
//
//	go build -ldflags "-X ducktodo/pkg/config.BuildAPIBase=/gateway/api"
var BuildAPIBase string

var (
	overrideMu      sync.RWMutex
	apiBaseOverride string
)

// SetAPIBaseOverride sets the process-wide API base, which wins over every
// other source. An empty value removes the override.
func SetAPIBaseOverride(base string) {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	apiBaseOverride = strings.TrimSpace(base)
}

// ResolveAPIBase picks the API base from the process override, then the
// environment, then fileValue, then BuildAPIBase, then "/api".
func ResolveAPIBase(fileValue string) string {
	overrideMu.RLock()
	override := apiBaseOverride
	overrideMu.RUnlock()

	for _, candidate := range []string{override, os.Getenv(EnvAPIBase), fileValue, BuildAPIBase} {
		if v := strings.TrimSpace(candidate); v != "" {
			return v
		}
	}
	return DefaultAPIBase
}

type Config struct {
	GatewayURL         string
	APIBase            string
	RequestTimeout     time.Duration
	LongRequestTimeout time.Duration
	UserAgent          string
	DownloadDir        string

	SessionBackend string
	SessionPath    string
	SessionSealKey string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration

	MongoURI          string
	MongoDatabaseName string
	MongoCollection   string
	MongoConnTimeout  time.Duration

	KafkaBrokers     []string
	KafkaNotifyTopic string

	LogLevel  string
	LogFormat string
}

// fileConfig mirrors the optional YAML config file.
type fileConfig struct {
	Gateway struct {
		URL                string `yaml:"url"`
		APIBase            string `yaml:"api_base"`
		RequestTimeout     string `yaml:"request_timeout"`
		LongRequestTimeout string `yaml:"long_request_timeout"`
		UserAgent          string `yaml:"user_agent"`
		DownloadDir        string `yaml:"download_dir"`
	} `yaml:"gateway"`
	Session struct {
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
		SealKey string `yaml:"seal_key"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       *int   `yaml:"db"`
			TTL      string `yaml:"ttl"`
		} `yaml:"redis"`
		Mongo struct {
			URI         string `yaml:"uri"`
			Database    string `yaml:"database"`
			Collection  string `yaml:"collection"`
			ConnTimeout string `yaml:"conn_timeout"`
		} `yaml:"mongo"`
	} `yaml:"session"`
	Notify struct {
		KafkaBrokers []string `yaml:"kafka_brokers"`
		KafkaTopic   string   `yaml:"kafka_topic"`
	} `yaml:"notify"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load builds the configuration from defaults, the optional YAML file at
// path (or $DUCKTODO_CONFIG), then environment variables, and validates it.
// A missing file is only an error when path was given explicitly.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfigFile)
		explicit = path != ""
	}

	var fileAPIBase string
	if path != "" {
		fc, err := readFile(path)
		switch {
		case err == nil:
			if err := cfg.applyFile(fc); err != nil {
				return nil, fmt.Errorf("config file %s: %w", path, err)
			}
			fileAPIBase = fc.Gateway.APIBase
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.APIBase = ResolveAPIBase(fileAPIBase)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		GatewayURL:         DefaultGatewayURL,
		APIBase:            DefaultAPIBase,
		RequestTimeout:     DefaultRequestTimeout,
		LongRequestTimeout: DefaultLongRequestTimeout,
		UserAgent:          DefaultUserAgent,
		DownloadDir:        DefaultDownloadDir,

		SessionBackend: DefaultSessionBackend,
		SessionPath:    defaultSessionPath(),

		RedisAddr: DefaultRedisAddr,
		RedisDB:   DefaultRedisDB,

		MongoURI:          DefaultMongoURI,
		MongoDatabaseName: DefaultMongoDatabaseName,
		MongoCollection:   DefaultMongoCollection,
		MongoConnTimeout:  DefaultMongoConnTimeout,

		KafkaNotifyTopic: DefaultKafkaNotifyTopic,

		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

func defaultSessionPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "ducktodo", DefaultSessionFile)
	}
	return filepath.Join(".ducktodo", DefaultSessionFile)
}

func readFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &fc, nil
}

func (cfg *Config) applyFile(fc *fileConfig) error {
	var errs []error
	setStr(&cfg.GatewayURL, fc.Gateway.URL)
	setStr(&cfg.UserAgent, fc.Gateway.UserAgent)
	setStr(&cfg.DownloadDir, fc.Gateway.DownloadDir)
	errs = append(errs,
		setDuration(&cfg.RequestTimeout, "gateway.request_timeout", fc.Gateway.RequestTimeout),
		setDuration(&cfg.LongRequestTimeout, "gateway.long_request_timeout", fc.Gateway.LongRequestTimeout),
	)

	setStr(&cfg.SessionBackend, fc.Session.Backend)
	setStr(&cfg.SessionPath, fc.Session.Path)
	setStr(&cfg.SessionSealKey, fc.Session.SealKey)
	setStr(&cfg.RedisAddr, fc.Session.Redis.Addr)
	setStr(&cfg.RedisPassword, fc.Session.Redis.Password)
	if fc.Session.Redis.DB != nil {
		cfg.RedisDB = *fc.Session.Redis.DB
	}
	errs = append(errs, setDuration(&cfg.RedisTTL, "session.redis.ttl", fc.Session.Redis.TTL))
	setStr(&cfg.MongoURI, fc.Session.Mongo.URI)
	setStr(&cfg.MongoDatabaseName, fc.Session.Mongo.Database)
	setStr(&cfg.MongoCollection, fc.Session.Mongo.Collection)
	errs = append(errs, setDuration(&cfg.MongoConnTimeout, "session.mongo.conn_timeout", fc.Session.Mongo.ConnTimeout))

	if len(fc.Notify.KafkaBrokers) > 0 {
		cfg.KafkaBrokers = fc.Notify.KafkaBrokers
	}
	setStr(&cfg.KafkaNotifyTopic, fc.Notify.KafkaTopic)

	setStr(&cfg.LogLevel, fc.Log.Level)
	setStr(&cfg.LogFormat, fc.Log.Format)
	return errors.Join(errs...)
}

func (cfg *Config) applyEnv() {
	cfg.GatewayURL = getEnvStr(EnvGatewayURL, cfg.GatewayURL)
	cfg.RequestTimeout = getEnvDuration(EnvRequestTimeout, cfg.RequestTimeout)
	cfg.LongRequestTimeout = getEnvDuration(EnvLongRequestTimeout, cfg.LongRequestTimeout)
	cfg.UserAgent = getEnvStr(EnvUserAgent, cfg.UserAgent)
	cfg.DownloadDir = getEnvStr(EnvDownloadDir, cfg.DownloadDir)

	cfg.SessionBackend = getEnvStr(EnvSessionBackend, cfg.SessionBackend)
	cfg.SessionPath = getEnvStr(EnvSessionPath, cfg.SessionPath)
	cfg.SessionSealKey = getEnvStr(EnvSessionSealKey, cfg.SessionSealKey)

	cfg.RedisAddr = getEnvStr(EnvRedisAddr, cfg.RedisAddr)
	cfg.RedisPassword = getEnvStr(EnvRedisPassword, cfg.RedisPassword)
	cfg.RedisDB = getEnvNum(EnvRedisDB, cfg.RedisDB)
	cfg.RedisTTL = getEnvDuration(EnvSessionRedisTTL, cfg.RedisTTL)

	cfg.MongoURI = getEnvStr(EnvMongoURI, cfg.MongoURI)
	cfg.MongoDatabaseName = getEnvStr(EnvMongoDatabaseName, cfg.MongoDatabaseName)
	cfg.MongoCollection = getEnvStr(EnvMongoCollection, cfg.MongoCollection)
	cfg.MongoConnTimeout = getEnvDuration(EnvMongoConnTimeout, cfg.MongoConnTimeout)

	if brokers := getEnvStr(EnvKafkaBrokers, ""); brokers != "" {
		cfg.KafkaBrokers = splitList(brokers)
	}
	cfg.KafkaNotifyTopic = getEnvStr(EnvKafkaNotifyTopic, cfg.KafkaNotifyTopic)

	cfg.LogLevel = getEnvStr(EnvLogLevel, cfg.LogLevel)
	cfg.LogFormat = getEnvStr(EnvLogFormat, cfg.LogFormat)
}

var absoluteURL = regexp.MustCompile(`(?i)^https?://[^/]+`)

// BaseURL joins the gateway origin and the API base. An absolute API base is
// used as it is.
func (cfg *Config) BaseURL() string {
	if absoluteURL.MatchString(cfg.APIBase) {
		return strings.TrimRight(cfg.APIBase, "/")
	}
	return strings.TrimRight(cfg.GatewayURL, "/") + "/" + strings.Trim(cfg.APIBase, "/")
}

// NotificationsEnabled reports whether errors are also published to Kafka.
func (cfg *Config) NotificationsEnabled() bool {
	return len(cfg.KafkaBrokers) > 0
}

func (cfg *Config) Validate() error {
	var errors []string

	if !absoluteURL.MatchString(cfg.GatewayURL) {
		errors = append(errors, fmt.Sprintf("GatewayURL must start with 'http://' or 'https://', got: %s", cfg.GatewayURL))
	}
	if cfg.APIBase == "" {
		errors = append(errors, "APIBase cannot be empty")
	}

	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.LongRequestTimeout < cfg.RequestTimeout {
		errors = append(errors, fmt.Sprintf("LongRequestTimeout (%s) must be >= RequestTimeout (%s)", cfg.LongRequestTimeout, cfg.RequestTimeout))
	}

	switch strings.ToLower(cfg.SessionBackend) {
	case "memory":
	case "sqlite":
		if cfg.SessionPath == "" {
			errors = append(errors, "SessionPath cannot be empty for the sqlite backend")
		}
	case "redis":
		if cfg.RedisAddr == "" {
			errors = append(errors, "RedisAddr cannot be empty for the redis backend")
		}
		if cfg.RedisDB < 0 {
			errors = append(errors, fmt.Sprintf("RedisDB cannot be negative, got: %d", cfg.RedisDB))
		}
	case "mongo":
		if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
		if cfg.MongoConnTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
		}
	default:
		errors = append(errors, fmt.Sprintf("SessionBackend must be one of [memory, sqlite, redis, mongo], got: %s", cfg.SessionBackend))
	}

	if cfg.SessionSealKey != "" {
		if _, err := sealer.NewFromBase64(cfg.SessionSealKey); err != nil {
			errors = append(errors, fmt.Sprintf("SessionSealKey must be a base64 AES key of 16, 24 or 32 bytes: %v", err))
		}
	}

	if cfg.NotificationsEnabled() && cfg.KafkaNotifyTopic == "" {
		errors = append(errors, "KafkaNotifyTopic cannot be empty when KafkaBrokers are set")
	}

	switch strings.ToLower(cfg.LogFormat) {
	case logger.JSON, logger.TEXT:
	default:
		errors = append(errors, fmt.Sprintf("LogFormat must be json or text, got: %s", cfg.LogFormat))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration(log *logger.Logger) {
	log.Debug("Configuration loaded successfully",
		"gateway_url", cfg.GatewayURL,
		"api_base", cfg.APIBase,
		"base_url", cfg.BaseURL(),
		"request_timeout", cfg.RequestTimeout,
		"long_request_timeout", cfg.LongRequestTimeout,
		"download_dir", cfg.DownloadDir,
		"session_backend", cfg.SessionBackend,
		"session_path", cfg.SessionPath,
		"session_sealed", cfg.SessionSealKey != "",
		"redis_addr", cfg.RedisAddr,
		"redis_password_set", cfg.RedisPassword != "",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"kafka_brokers", strings.Join(cfg.KafkaBrokers, ","),
		"kafka_notify_topic", cfg.KafkaNotifyTopic,
		"log_level", cfg.LogLevel,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func setStr(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, field, v string) error {
	if v = strings.TrimSpace(v); v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	*dst = d
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
