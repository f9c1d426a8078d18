package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "KINGCAP"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv    = "KINGCAP_APP_ENV"
	EnvPort      = "KINGCAP_APP_PORT"
	EnvDBDSN     = "KINGCAP_DB_DSN"
	EnvDBHost    = "KINGCAP_DB_HOST"
	EnvDBUser    = "KINGCAP_DB_USER"
	EnvDBName    = "KINGCAP_DB_NAME"
	EnvRedisURL  = "KINGCAP_REDIS_URL"
	EnvJWTSecret = "KINGCAP_JWT_SECRET"
	EnvJWTIssuer = "KINGCAP_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
