package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongoDB  = "mongodb"

	NotifierSES  = "ses"
	NotifierSMTP = "smtp"
	NotifierLog  = "log"
)

type Config struct {
	Port           int      `env:"PORT" envDefault:"3000"`
	Secret         string   `env:"SECRET,required,notEmpty"`
	BaseURL        url.URL  `env:"BASE_URL" envDefault:"http://localhost:3000"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	LogDevelopment bool     `env:"LOG_DEVELOPMENT" envDefault:"false"`
	SentryDsn      *url.URL `env:"SENTRY_DSN"`

	HTTPReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`

	StoreDriver     string `env:"STORE_DRIVER" envDefault:"postgres"`
	PostgresqlURL   string `env:"POSTGRESQL_URL"`
	MongodbURL      string `env:"MONGODB_URL"`
	MongodbDatabase string `env:"MONGODB_DATABASE" envDefault:"authsvc"`
	MigrateOnStart  bool   `env:"MIGRATE_ON_START" envDefault:"true"`

	BcryptHasherCost           int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	AccessTokenValidDuration   time.Duration `env:"ACCESS_TOKEN_VALID_DURATION" envDefault:"1h"`
	PasswordResetValidDuration time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"30m"`

	Notifier                      string `env:"NOTIFIER" envDefault:"log"`
	AwsRegion                     string `env:"AWS_REGION"`
	AwsAccessKey                  string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey                  string `env:"AWS_SECRET_KEY"`
	AwsEmailSender                string `env:"AWS_EMAIL_SENDER"`
	AwsEmailPasswordResetTemplate string `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE"`
	SmtpHost                      string `env:"SMTP_HOST"`
	SmtpPort                      int    `env:"SMTP_PORT" envDefault:"587"`
	SmtpUsername                  string `env:"SMTP_USERNAME"`
	SmtpPassword                  string `env:"SMTP_PASSWORD"`
	SmtpFrom                      string `env:"SMTP_FROM"`

	KeepaliveURL      *url.URL      `env:"KEEPALIVE_URL"`
	KeepaliveInterval time.Duration `env:"KEEPALIVE_INTERVAL" envDefault:"10m"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT value: %d", c.Port)
	}
	if c.BaseURL.Scheme == "" || c.BaseURL.Host == "" {
		return fmt.Errorf("BASE_URL must be an absolute URL")
	}

	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.PostgresqlURL == "" {
			return fmt.Errorf("POSTGRESQL_URL must be set")
		}
	case StoreDriverMongoDB:
		if c.MongodbURL == "" {
			return fmt.Errorf("MONGODB_URL must be set")
		}
	default:
		return fmt.Errorf("invalid STORE_DRIVER value: %q", c.StoreDriver)
	}

	switch c.Notifier {
	case NotifierSES:
		if c.AwsRegion == "" || c.AwsEmailSender == "" || c.AwsEmailPasswordResetTemplate == "" {
			return fmt.Errorf("AWS_REGION, AWS_EMAIL_SENDER and AWS_EMAIL_PASSWORD_RESET_TEMPLATE must be set")
		}
	case NotifierSMTP:
		if c.SmtpHost == "" || c.SmtpFrom == "" {
			return fmt.Errorf("SMTP_HOST and SMTP_FROM must be set")
		}
	case NotifierLog:
	default:
		return fmt.Errorf("invalid NOTIFIER value: %q", c.Notifier)
	}

	if c.BcryptHasherCost < 4 || c.BcryptHasherCost > 31 {
		return fmt.Errorf("invalid BCRYPT_HASHER_COST value: %d", c.BcryptHasherCost)
	}
	if c.AccessTokenValidDuration <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_VALID_DURATION must be positive")
	}
	if c.PasswordResetValidDuration <= 0 {
		return fmt.Errorf("PASSWORD_RESET_VALID_DURATION must be positive")
	}
	if c.KeepaliveURL != nil && c.KeepaliveInterval <= 0 {
		return fmt.Errorf("KEEPALIVE_INTERVAL must be positive")
	}
	return nil
}
