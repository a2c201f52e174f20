package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort               int           `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel               string        `env:"LOG_LEVEL" envDefault:"info"`
	PostgresDSN            string        `env:"POSTGRES_DSN,required"`
	PostgresMaxConns       int32         `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	ReadinessCheckInterval time.Duration `env:"JOB_READINESS_CHECK_INTERVAL" envDefault:"1m"`
	CORSAllowedOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	Identity               Identity
	Redis                  Redis
	Kafka                  Kafka
	Gemini                 Gemini
	Mailer                 Mailer
}

type Identity struct {
	JWTSecret     string `env:"IDENTITY_JWT_SECRET"`
	PublicKeyPath string `env:"IDENTITY_JWT_PUBLIC_KEY_PATH"`
	Issuer        string `env:"IDENTITY_JWT_ISSUER"`
	Audience      string `env:"IDENTITY_JWT_AUDIENCE"`
}

type Redis struct {
	Addr         string        `env:"REDIS_ADDR"`
	Password     string        `env:"REDIS_PASSWORD"`
	DB           int           `env:"REDIS_DB"`
	RoleCacheTTL time.Duration `env:"REDIS_ROLE_CACHE_TTL" envDefault:"5m"`
}

type Kafka struct {
	Brokers           []string `env:"KAFKA_BROKERS"`
	ConsumerID        string   `env:"KAFKA_CONSUMER_ID" envDefault:"helpdesk"`
	IdentityTopic     string   `env:"KAFKA_IDENTITY_TOPIC" envDefault:"identity.events"`
	TicketEventsTopic string   `env:"KAFKA_TICKET_EVENTS_TOPIC" envDefault:"helpdesk.ticket.events"`
}

type Gemini struct {
	APIKey   string        `env:"GEMINI_API_KEY"`
	BaseURL  string        `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	Model    string        `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	Timeout  time.Duration `env:"GEMINI_TIMEOUT" envDefault:"30s"`
	RetryMax int           `env:"GEMINI_RETRY_MAX" envDefault:"2"`
}

type Mailer struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

func (r Redis) Enabled() bool  { return r.Addr != "" }
func (k Kafka) Enabled() bool  { return len(k.Brokers) > 0 }
func (m Mailer) Enabled() bool { return m.Host != "" && m.From != "" }

func New(envPath string) (Config, error) {
	var c Config

	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	err = env.Parse(&c)
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
