package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Automation    AutomationConfig
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
	Env          string `envconfig:"OUTREACH_APP_ENV" required:"true"`
	Port         string `envconfig:"OUTREACH_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"OUTREACH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"OUTREACH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"OUTREACH_DB_DSN"`
	Driver string `envconfig:"OUTREACH_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"OUTREACH_DB_HOST"`
	LegacyPort     int    `envconfig:"OUTREACH_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"OUTREACH_DB_USER"`
	LegacyPassword string `envconfig:"OUTREACH_DB_PASSWORD"`
	LegacyName     string `envconfig:"OUTREACH_DB_NAME"`
	LegacySSLMode  string `envconfig:"OUTREACH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"OUTREACH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"OUTREACH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"OUTREACH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"OUTREACH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"OUTREACH_REDIS_URL" required:"true"`
	Address      string        `envconfig:"OUTREACH_REDIS_ADDR"`
	Password     string        `envconfig:"OUTREACH_REDIS_PASSWORD"`
	DB           int           `envconfig:"OUTREACH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"OUTREACH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"OUTREACH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"OUTREACH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"OUTREACH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"OUTREACH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"OUTREACH_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"OUTREACH_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"OUTREACH_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"OUTREACH_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"OUTREACH_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"OUTREACH_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"OUTREACH_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"OUTREACH_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"OUTREACH_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"OUTREACH_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"OUTREACH_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"OUTREACH_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"OUTREACH_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"OUTREACH_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"OUTREACH_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// AutomationConfig points at the external workflow-automation webhooks that
// carry on lead processing after data is persisted locally.
type AutomationConfig struct {
	BaseURL        string        `envconfig:"OUTREACH_AUTOMATION_BASE_URL"`
	CampaignPath   string        `envconfig:"OUTREACH_AUTOMATION_CAMPAIGN_PATH" default:"/webhook/campaign-created"`
	LeadUploadPath string        `envconfig:"OUTREACH_AUTOMATION_LEAD_UPLOAD_PATH" default:"/webhook/start-campaign-upload"`
	Timeout        time.Duration `envconfig:"OUTREACH_AUTOMATION_TIMEOUT" default:"10s"`
}

// Enabled reports whether an automation endpoint is configured at all.
func (a AutomationConfig) Enabled() bool {
	return strings.TrimSpace(a.BaseURL) != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"OUTREACH_AUTO_MIGRATE" default:"false"`
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
