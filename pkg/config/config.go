package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "PROMOSOPHIA_DB_DSN"
	EnvDBHost = "PROMOSOPHIA_DB_HOST"
	EnvDBUser = "PROMOSOPHIA_DB_USER"
	EnvDBName = "PROMOSOPHIA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Tenant    TenantDefaultsConfig
	Optimizer OptimizerConfig
	Features  FeatureFlagsConfig
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
	Env          string `envconfig:"PROMOSOPHIA_APP_ENV" required:"true"`
	Port         string `envconfig:"PROMOSOPHIA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PROMOSOPHIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PROMOSOPHIA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PROMOSOPHIA_DB_DSN"`
	Driver string `envconfig:"PROMOSOPHIA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PROMOSOPHIA_DB_HOST"`
	LegacyPort     int    `envconfig:"PROMOSOPHIA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PROMOSOPHIA_DB_USER"`
	LegacyPassword string `envconfig:"PROMOSOPHIA_DB_PASSWORD"`
	LegacyName     string `envconfig:"PROMOSOPHIA_DB_NAME"`
	LegacySSLMode  string `envconfig:"PROMOSOPHIA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PROMOSOPHIA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PROMOSOPHIA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PROMOSOPHIA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PROMOSOPHIA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PROMOSOPHIA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PROMOSOPHIA_REDIS_ADDR"`
	Password     string        `envconfig:"PROMOSOPHIA_REDIS_PASSWORD"`
	DB           int           `envconfig:"PROMOSOPHIA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PROMOSOPHIA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PROMOSOPHIA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PROMOSOPHIA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PROMOSOPHIA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PROMOSOPHIA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"PROMOSOPHIA_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"PROMOSOPHIA_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"PROMOSOPHIA_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"PROMOSOPHIA_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

// TenantDefaultsConfig seeds settings for tenants created without their own.
type TenantDefaultsConfig struct {
	Currency        string  `envconfig:"PROMOSOPHIA_TENANT_DEFAULT_CURRENCY" default:"USD"`
	FiscalYearStart int     `envconfig:"PROMOSOPHIA_TENANT_FISCAL_YEAR_START" default:"0"`
	DefaultMargin   float64 `envconfig:"PROMOSOPHIA_TENANT_DEFAULT_MARGIN" default:"0.35"`
	Timezone        string  `envconfig:"PROMOSOPHIA_TENANT_TIMEZONE" default:"America/New_York"`
}

type OptimizerConfig struct {
	MaxAllocations int           `envconfig:"PROMOSOPHIA_OPTIMIZER_MAX_ALLOCATIONS" default:"24"`
	RunTimeout     time.Duration `envconfig:"PROMOSOPHIA_OPTIMIZER_RUN_TIMEOUT" default:"30s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PROMOSOPHIA_AUTO_MIGRATE" default:"false"`
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
