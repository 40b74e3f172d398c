package config

import "time"

const (
	DefaultGatewayURL         = "http://localhost:8080"
	DefaultAPIBase            = "/api"
	DefaultRequestTimeout     = 15 * time.Second
	DefaultLongRequestTimeout = 60 * time.Second
	DefaultUserAgent          = "ducktodo-cli"
	DefaultDownloadDir        = "."

	DefaultSessionBackend = "sqlite"
	DefaultSessionFile    = "session.db"

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "ducktodo"
	DefaultMongoCollection   = "client_sessions"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultKafkaNotifyTopic = "ducktodo.notifications"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)
