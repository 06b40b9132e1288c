package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "MIS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "MIS_DB_DSN"
	EnvDBHost = "MIS_DB_HOST"
	EnvDBUser = "MIS_DB_USER"
	EnvDBName = "MIS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Budget        BudgetConfig
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
	Env          string `envconfig:"MIS_APP_ENV" required:"true"`
	Port         string `envconfig:"MIS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MIS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MIS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MIS_DB_DSN"`
	Driver string `envconfig:"MIS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MIS_DB_HOST"`
	LegacyPort     int    `envconfig:"MIS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MIS_DB_USER"`
	LegacyPassword string `envconfig:"MIS_DB_PASSWORD"`
	LegacyName     string `envconfig:"MIS_DB_NAME"`
	LegacySSLMode  string `envconfig:"MIS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MIS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MIS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MIS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MIS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MIS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MIS_REDIS_ADDR"`
	Password     string        `envconfig:"MIS_REDIS_PASSWORD"`
	DB           int           `envconfig:"MIS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MIS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MIS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MIS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MIS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MIS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"MIS_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"MIS_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"MIS_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"MIS_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MIS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MIS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MIS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MIS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MIS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"MIS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"MIS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"MIS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

// BudgetConfig points the reporting layer at the budget spreadsheet.
type BudgetConfig struct {
	SpreadsheetID   string `envconfig:"MIS_BUDGET_SPREADSHEET_ID"`
	Worksheet       string `envconfig:"MIS_BUDGET_WORKSHEET" default:"Sheet1"`
	CredentialsJSON string `envconfig:"MIS_BUDGET_CREDENTIALS_JSON"`
	OverallCell     string `envconfig:"MIS_BUDGET_OVERALL_CELL" default:"B2"`
	CategoryRange   string `envconfig:"MIS_BUDGET_CATEGORY_RANGE" default:"A6:M"`

	// Categories lists the recognized budget category tags. Category tracking
	// is disabled when empty.
	Categories []string `envconfig:"MIS_BUDGET_CATEGORIES"`
}

// CategoryTrackingEnabled reports whether purchases must carry a known category.
func (b BudgetConfig) CategoryTrackingEnabled() bool {
	return len(b.Categories) > 0
}

// IsKnownCategory reports whether the tag is in the recognized category set.
func (b BudgetConfig) IsKnownCategory(tag string) bool {
	for _, c := range b.Categories {
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(tag)) {
			return true
		}
	}
	return false
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MIS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MIS_AUTO_MIGRATE" default:"false"`
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
