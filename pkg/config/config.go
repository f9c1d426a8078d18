package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App             AppConfig
	DB              DBConfig
	Redis           RedisConfig
	JWT             JWTConfig
	ExportRateLimit ExportRateLimitConfig
	FeatureFlags    FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"KINGCAP_APP_ENV" required:"true"`
	Port         string `envconfig:"KINGCAP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"KINGCAP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KINGCAP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"KINGCAP_DB_DSN"`
	Driver string `envconfig:"KINGCAP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"KINGCAP_DB_HOST"`
	LegacyPort     int    `envconfig:"KINGCAP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"KINGCAP_DB_USER"`
	LegacyPassword string `envconfig:"KINGCAP_DB_PASSWORD"`
	LegacyName     string `envconfig:"KINGCAP_DB_NAME"`
	LegacySSLMode  string `envconfig:"KINGCAP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"KINGCAP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"KINGCAP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"KINGCAP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"KINGCAP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"KINGCAP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"KINGCAP_REDIS_ADDR"`
	Password     string        `envconfig:"KINGCAP_REDIS_PASSWORD"`
	DB           int           `envconfig:"KINGCAP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KINGCAP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KINGCAP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KINGCAP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KINGCAP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KINGCAP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig verifies tokens minted by the external identity provider.
type JWTConfig struct {
	Secret string `envconfig:"KINGCAP_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"KINGCAP_JWT_ISSUER" required:"true"`
}

type ExportRateLimitConfig struct {
	Window    time.Duration `envconfig:"KINGCAP_EXPORT_RATE_LIMIT_WINDOW" default:"1m"`
	UserLimit int           `envconfig:"KINGCAP_EXPORT_RATE_LIMIT_USER_LIMIT" default:"10"`
	IPLimit   int           `envconfig:"KINGCAP_EXPORT_RATE_LIMIT_IP_LIMIT" default:"30"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"KINGCAP_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = "file::memory:?cache=shared"
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
