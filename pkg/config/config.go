package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           string `envconfig:"PORT" default:"3001"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	SMTPHost       string `envconfig:"SMTP_HOST" default:"localhost"`
	SMTPPort       string `envconfig:"SMTP_PORT" default:"587"`
	EmailUser      string `envconfig:"EMAIL_USER" default:""`
	EmailPass      string `envconfig:"EMAIL_PASS" default:""`
	BusinessEmail  string `envconfig:"BUSINESS_EMAIL" default:""`
	KafkaBrokers   string `envconfig:"KAFKA_BROKERS" default:""`
	KafkaTopic     string `envconfig:"KAFKA_TOPIC" default:"appointment-events"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
