package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "SEAMOSS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SEAMOSS_DB_DSN"
	EnvDBHost = "SEAMOSS_DB_HOST"
	EnvDBUser = "SEAMOSS_DB_USER"
	EnvDBName = "SEAMOSS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Stripe       StripeConfig
	Cart         CartConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"SEAMOSS_APP_ENV" required:"true"`
	Port         string `envconfig:"SEAMOSS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SEAMOSS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SEAMOSS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"SEAMOSS_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"SEAMOSS_DB_DSN"`
	Driver string `envconfig:"SEAMOSS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SEAMOSS_DB_HOST"`
	LegacyPort     int    `envconfig:"SEAMOSS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SEAMOSS_DB_USER"`
	LegacyPassword string `envconfig:"SEAMOSS_DB_PASSWORD"`
	LegacyName     string `envconfig:"SEAMOSS_DB_NAME"`
	LegacySSLMode  string `envconfig:"SEAMOSS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SEAMOSS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SEAMOSS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SEAMOSS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SEAMOSS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SEAMOSS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SEAMOSS_REDIS_ADDR"`
	Password     string        `envconfig:"SEAMOSS_REDIS_PASSWORD"`
	DB           int           `envconfig:"SEAMOSS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SEAMOSS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SEAMOSS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SEAMOSS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SEAMOSS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SEAMOSS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret string `envconfig:"SEAMOSS_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"SEAMOSS_JWT_ISSUER" required:"true"`
}

type StripeConfig struct {
	APIKey string `envconfig:"SEAMOSS_STRIPE_API_KEY"`
	Secret string `envconfig:"SEAMOSS_STRIPE_SECRET"`
	Env    string `envconfig:"SEAMOSS_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type CartConfig struct {
	SnapshotTTL time.Duration `envconfig:"SEAMOSS_CART_SNAPSHOT_TTL" default:"720h"`
}

type CheckoutConfig struct {
	IntentCacheTTL time.Duration `envconfig:"SEAMOSS_CHECKOUT_INTENT_CACHE_TTL" default:"1h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SEAMOSS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SEAMOSS_AUTO_MIGRATE" default:"false"`
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
