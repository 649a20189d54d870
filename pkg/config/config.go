package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "TEASTORE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv                 = "TEASTORE_APP_ENV"
	EnvPort                   = "TEASTORE_APP_PORT"
	EnvDBDSN                  = "TEASTORE_DB_DSN"
	EnvDBDriver               = "TEASTORE_DB_DRIVER"
	EnvDBHost                 = "TEASTORE_DB_HOST"
	EnvDBUser                 = "TEASTORE_DB_USER"
	EnvDBName                 = "TEASTORE_DB_NAME"
	EnvRedisURL               = "TEASTORE_REDIS_URL"
	EnvJWTSecret              = "TEASTORE_JWT_SECRET"
	EnvJWTIssuer              = "TEASTORE_JWT_ISSUER"
	EnvJWTExpMins             = "TEASTORE_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "TEASTORE_REFRESH_TOKEN_TTL_MINUTES"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Session       SessionConfig
	Permissions   PermissionsConfig
	HTTP          HTTPConfig
	CORS          CORSConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env             string `envconfig:"TEASTORE_APP_ENV" required:"true"`
	Port            string `envconfig:"TEASTORE_APP_PORT" required:"true"`
	LogLevel        string `envconfig:"TEASTORE_LOG_LEVEL" default:"info"`
	LogWarnStack    bool   `envconfig:"TEASTORE_LOG_WARN_STACK" default:"false"`
	DefaultLanguage string `envconfig:"TEASTORE_DEFAULT_LANGUAGE" default:"pl"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "production")
}

type DBConfig struct {
	DSN    string `envconfig:"TEASTORE_DB_DSN"`
	Driver string `envconfig:"TEASTORE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TEASTORE_DB_HOST"`
	LegacyPort     int    `envconfig:"TEASTORE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TEASTORE_DB_USER"`
	LegacyPassword string `envconfig:"TEASTORE_DB_PASSWORD"`
	LegacyName     string `envconfig:"TEASTORE_DB_NAME"`
	LegacySSLMode  string `envconfig:"TEASTORE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TEASTORE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TEASTORE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TEASTORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TEASTORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// UsesSQLite reports whether the configured driver is sqlite.
func (db DBConfig) UsesSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"TEASTORE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TEASTORE_REDIS_ADDR"`
	Password     string        `envconfig:"TEASTORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"TEASTORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TEASTORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TEASTORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TEASTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TEASTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TEASTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"TEASTORE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"TEASTORE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"TEASTORE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"TEASTORE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TEASTORE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TEASTORE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TEASTORE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TEASTORE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TEASTORE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow           time.Duration `envconfig:"TEASTORE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit    int           `envconfig:"TEASTORE_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit          int           `envconfig:"TEASTORE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow        time.Duration `envconfig:"TEASTORE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterUsernameLimit int           `envconfig:"TEASTORE_AUTH_RATE_LIMIT_REGISTER_USERNAME_LIMIT" default:"3"`
	RegisterIPLimit       int           `envconfig:"TEASTORE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type SessionConfig struct {
	CookieName   string `envconfig:"TEASTORE_SESSION_COOKIE_NAME" default:"teastore_session"`
	CookieSecure bool   `envconfig:"TEASTORE_SESSION_COOKIE_SECURE" default:"false"`
}

type PermissionsConfig struct {
	CacheTTL time.Duration `envconfig:"TEASTORE_PERMISSIONS_CACHE_TTL" default:"5m"`
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `envconfig:"TEASTORE_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"TEASTORE_HTTP_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"TEASTORE_HTTP_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"TEASTORE_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	IdempotencyTTL  time.Duration `envconfig:"TEASTORE_HTTP_IDEMPOTENCY_TTL" default:"24h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"TEASTORE_CORS_ALLOWED_ORIGINS" default:"*"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TEASTORE_AUTO_MIGRATE" default:"false"`
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
