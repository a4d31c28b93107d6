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
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Orders       OrdersConfig
	Telegram     TelegramConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"YENVANG_APP_ENV" required:"true"`
	Port         string `envconfig:"YENVANG_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"YENVANG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"YENVANG_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"YENVANG_DB_DSN"`
	Driver string `envconfig:"YENVANG_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"YENVANG_DB_HOST"`
	Port     int    `envconfig:"YENVANG_DB_PORT" default:"5432"`
	User     string `envconfig:"YENVANG_DB_USER"`
	Password string `envconfig:"YENVANG_DB_PASSWORD"`
	Name     string `envconfig:"YENVANG_DB_NAME"`
	SSLMode  string `envconfig:"YENVANG_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"YENVANG_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"YENVANG_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"YENVANG_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"YENVANG_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"YENVANG_REDIS_URL" required:"true"`
	Address      string        `envconfig:"YENVANG_REDIS_ADDR"`
	Password     string        `envconfig:"YENVANG_REDIS_PASSWORD"`
	DB           int           `envconfig:"YENVANG_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"YENVANG_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"YENVANG_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"YENVANG_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"YENVANG_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"YENVANG_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig controls the client cart session store.
type SessionConfig struct {
	CartTTL time.Duration `envconfig:"YENVANG_SESSION_CART_TTL" default:"24h"`
}

type OrdersConfig struct {
	SubmitTimeout time.Duration `envconfig:"YENVANG_ORDER_SUBMIT_TIMEOUT" default:"10s"`
}

type TelegramConfig struct {
	BotToken           string        `envconfig:"YENVANG_TELEGRAM_BOT_TOKEN"`
	OrderChatID        string        `envconfig:"YENVANG_TELEGRAM_CHAT_ID"`
	ConsultationChatID string        `envconfig:"YENVANG_TELEGRAM_CONSULTATION_CHAT_ID"`
	RequestTimeout     time.Duration `envconfig:"YENVANG_TELEGRAM_REQUEST_TIMEOUT" default:"5s"`
}

// Configured reports whether the bot can actually deliver messages.
func (t TelegramConfig) Configured() bool {
	return t.BotToken != "" && t.OrderChatID != ""
}

// ConsultationTarget falls back to the order chat when no dedicated
// consultation chat is configured.
func (t TelegramConfig) ConsultationTarget() string {
	if t.ConsultationChatID != "" {
		return t.ConsultationChatID
	}
	return t.OrderChatID
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"YENVANG_CORS_ALLOWED_ORIGINS" default:"*"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"YENVANG_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"YENVANG_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if strings.EqualFold(db.Driver, "sqlite") {
		db.DSN = "file:yenvang.db?cache=shared"
		return nil
	}

	missing := []string{}
	required := map[string]string{
		"YENVANG_DB_HOST": db.Host,
		"YENVANG_DB_USER": db.User,
		"YENVANG_DB_NAME": db.Name,
	}
	for _, key := range []string{"YENVANG_DB_HOST", "YENVANG_DB_USER", "YENVANG_DB_NAME"} {
		if required[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either YENVANG_DB_DSN or %s are required", strings.Join(missing, ", "))
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
