package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "MESAFINA"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "MESAFINA_APP_ENV"
	EnvPort   = "MESAFINA_APP_PORT"
	EnvDBDSN  = "MESAFINA_DB_DSN"
	EnvDBHost = "MESAFINA_DB_HOST"
	EnvDBUser = "MESAFINA_DB_USER"
	EnvDBName = "MESAFINA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App         AppConfig
	DB          DBConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Idempotency IdempotencyConfig
	StockReset  StockResetConfig
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
	Env          string `envconfig:"MESAFINA_APP_ENV" required:"true"`
	Port         string `envconfig:"MESAFINA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MESAFINA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MESAFINA_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"MESAFINA_APP_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MESAFINA_DB_DSN"`
	Driver string `envconfig:"MESAFINA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MESAFINA_DB_HOST"`
	LegacyPort     int    `envconfig:"MESAFINA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MESAFINA_DB_USER"`
	LegacyPassword string `envconfig:"MESAFINA_DB_PASSWORD"`
	LegacyName     string `envconfig:"MESAFINA_DB_NAME"`
	LegacySSLMode  string `envconfig:"MESAFINA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MESAFINA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MESAFINA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MESAFINA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MESAFINA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MESAFINA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MESAFINA_REDIS_ADDR"`
	Password     string        `envconfig:"MESAFINA_REDIS_PASSWORD"`
	DB           int           `envconfig:"MESAFINA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MESAFINA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MESAFINA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MESAFINA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MESAFINA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MESAFINA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MESAFINA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MESAFINA_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"MESAFINA_JWT_EXPIRATION_MINUTES" default:"60"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"MESAFINA_IDEMPOTENCY_TTL" default:"24h"`
}

// StockResetConfig drives the scheduled daily stock reset worker.
type StockResetConfig struct {
	Enabled  bool          `envconfig:"MESAFINA_STOCK_RESET_ENABLED" default:"true"`
	Interval time.Duration `envconfig:"MESAFINA_STOCK_RESET_INTERVAL" default:"24h"`
	LockTTL  time.Duration `envconfig:"MESAFINA_STOCK_RESET_LOCK_TTL" default:"25h"`
	Reason   string        `envconfig:"MESAFINA_STOCK_RESET_REASON" default:"Begin of the day"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
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
