package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Stripe   StripeConfig
	Media    MediaConfig
	CORS     CORSConfig
	Catalog  CatalogConfig
	Features FeatureFlagsConfig
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
	Env          string `envconfig:"NAMAS_APP_ENV" required:"true"`
	Port         string `envconfig:"NAMAS_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"NAMAS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NAMAS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"NAMAS_DB_DSN"`
	Driver string `envconfig:"NAMAS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"NAMAS_DB_HOST"`
	Port     int    `envconfig:"NAMAS_DB_PORT" default:"5432"`
	User     string `envconfig:"NAMAS_DB_USER"`
	Password string `envconfig:"NAMAS_DB_PASSWORD"`
	Name     string `envconfig:"NAMAS_DB_NAME"`
	SSLMode  string `envconfig:"NAMAS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"NAMAS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"NAMAS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"NAMAS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"NAMAS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"NAMAS_REDIS_URL" required:"true"`
	Password     string        `envconfig:"NAMAS_REDIS_PASSWORD"`
	DB           int           `envconfig:"NAMAS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NAMAS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NAMAS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NAMAS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NAMAS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NAMAS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"NAMAS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"NAMAS_JWT_ISSUER" default:"namas-api"`
	ExpirationMinutes int    `envconfig:"NAMAS_JWT_EXPIRATION_MINUTES" default:"1440"`
	CookieName        string `envconfig:"NAMAS_SESSION_COOKIE_NAME" default:"namas_session"`
	CookieSecure      bool   `envconfig:"NAMAS_SESSION_COOKIE_SECURE" default:"false"`
}

// SessionTTL is the lifetime of both the JWT and its Redis session entry.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"NAMAS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"NAMAS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"NAMAS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"NAMAS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"NAMAS_ARGON_KEY_LEN" default:"32"`
}

type StripeConfig struct {
	APIKey   string `envconfig:"NAMAS_STRIPE_SECRET_KEY"`
	Env      string `envconfig:"NAMAS_STRIPE_ENV" default:"test"`
	Currency string `envconfig:"NAMAS_STRIPE_CURRENCY" default:"usd"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

// MediaConfig points at the external image store. Only URLs are exposed to
// clients; the API never touches image bytes.
type MediaConfig struct {
	BaseURL string `envconfig:"NAMAS_MEDIA_BASE_URL" default:"/media/"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"NAMAS_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

type CatalogConfig struct {
	BeadUnitPrice string `envconfig:"NAMAS_CATALOG_BEAD_UNIT_PRICE" default:"10.00"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"NAMAS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" || strings.EqualFold(db.Driver, DriverSQLite) {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range componentDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
