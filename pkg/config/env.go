package config

const (
	EnvConfigFile = "DUCKTODO_CONFIG"

	EnvGatewayURL         = "DUCKTODO_GATEWAY_URL"
	EnvAPIBase            = "DUCKTODO_API_BASE"
	EnvRequestTimeout     = "DUCKTODO_REQUEST_TIMEOUT"
	EnvLongRequestTimeout = "DUCKTODO_LONG_REQUEST_TIMEOUT"
	EnvUserAgent          = "DUCKTODO_USER_AGENT"
	EnvDownloadDir        = "DUCKTODO_DOWNLOAD_DIR"

	EnvSessionBackend = "SESSION_BACKEND"
	EnvSessionPath    = "SESSION_SQLITE_PATH"
	EnvSessionSealKey = "SESSION_SEAL_KEY"

	EnvRedisAddr       = "REDIS_ADDR"
	EnvRedisPassword   = "REDIS_PASSWORD"
	EnvRedisDB         = "REDIS_DB"
	EnvSessionRedisTTL = "SESSION_REDIS_TTL"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoCollection   = "MONGO_COLLECTION"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvKafkaBrokers     = "KAFKA_BROKERS"
	EnvKafkaNotifyTopic = "KAFKA_NOTIFY_TOPIC"

	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"
)
