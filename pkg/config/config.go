package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "DEALERBOOK"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv          = "DEALERBOOK_APP_ENV"
	EnvPort            = "DEALERBOOK_APP_PORT"
	EnvDBDSN           = "DEALERBOOK_DB_DSN"
	EnvDBHost          = "DEALERBOOK_DB_HOST"
	EnvDBUser          = "DEALERBOOK_DB_USER"
	EnvDBName          = "DEALERBOOK_DB_NAME"
	EnvRedisURL        = "DEALERBOOK_REDIS_URL"
	EnvJWTSecret       = "DEALERBOOK_JWT_SECRET"
	EnvJWTIssuer       = "DEALERBOOK_JWT_ISSUER"
	EnvJWTExpMins      = "DEALERBOOK_JWT_EXPIRATION_MINUTES"
	EnvGCPProjectID    = "DEALERBOOK_GCP_PROJECT_ID"
	EnvPubSubTopic     = "DEALERBOOK_PUBSUB_DOMAIN_TOPIC"
	EnvSeedAdminEmail  = "DEALERBOOK_SEED_ADMIN_EMAIL"
	EnvSeedAdminSecret = "DEALERBOOK_SEED_ADMIN_PASSWORD"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
	Sequence      SequenceConfig
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
	Env          string `envconfig:"DEALERBOOK_APP_ENV" required:"true"`
	Port         string `envconfig:"DEALERBOOK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DEALERBOOK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DEALERBOOK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DEALERBOOK_DB_DSN"`
	Driver string `envconfig:"DEALERBOOK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DEALERBOOK_DB_HOST"`
	LegacyPort     int    `envconfig:"DEALERBOOK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DEALERBOOK_DB_USER"`
	LegacyPassword string `envconfig:"DEALERBOOK_DB_PASSWORD"`
	LegacyName     string `envconfig:"DEALERBOOK_DB_NAME"`
	LegacySSLMode  string `envconfig:"DEALERBOOK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DEALERBOOK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DEALERBOOK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DEALERBOOK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DEALERBOOK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DEALERBOOK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DEALERBOOK_REDIS_ADDR"`
	Password     string        `envconfig:"DEALERBOOK_REDIS_PASSWORD"`
	DB           int           `envconfig:"DEALERBOOK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DEALERBOOK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DEALERBOOK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DEALERBOOK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DEALERBOOK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DEALERBOOK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"DEALERBOOK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"DEALERBOOK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"DEALERBOOK_JWT_EXPIRATION_MINUTES" default:"720"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"DEALERBOOK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"DEALERBOOK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"DEALERBOOK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"DEALERBOOK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"DEALERBOOK_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"DEALERBOOK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"DEALERBOOK_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"DEALERBOOK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"DEALERBOOK_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"DEALERBOOK_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	DomainTopic string `envconfig:"DEALERBOOK_PUBSUB_DOMAIN_TOPIC" default:"dealerbook-domain-events"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"DEALERBOOK_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"DEALERBOOK_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"DEALERBOOK_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

// SequenceConfig tunes the advisory (display-only) counter cache.
type SequenceConfig struct {
	AdvisoryTTL time.Duration `envconfig:"DEALERBOOK_SEQUENCE_ADVISORY_TTL" default:"5m"`
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
