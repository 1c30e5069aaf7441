package config

import (
	"fmt"
	"os"
)

type Config struct {
	HTTP_PORT          string `env:"HTTP_PORT"`
	DB_STRING          string `env:"DB_STRING"`
	WEBHOOK_SECRET     string `env:"WEBHOOK_SECRET"`
	SIGNATURE_ENCODING string `env:"SIGNATURE_ENCODING"`
	KAFKA_BROKERS      string `env:"KAFKA_BROKERS"`
	KAFKA_TOPIC        string `env:"KAFKA_TOPIC"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		HTTP_PORT:          os.Getenv("HTTP_PORT"),
		DB_STRING:          os.Getenv("DB_STRING"),
		WEBHOOK_SECRET:     os.Getenv("WEBHOOK_SECRET"),
		SIGNATURE_ENCODING: os.Getenv("SIGNATURE_ENCODING"),
		KAFKA_BROKERS:      os.Getenv("KAFKA_BROKERS"),
		KAFKA_TOPIC:        os.Getenv("KAFKA_TOPIC"),
	}

	if cfg.HTTP_PORT == "" {
		cfg.HTTP_PORT = "8080"
	}
	if cfg.SIGNATURE_ENCODING == "" {
		cfg.SIGNATURE_ENCODING = "base64"
	}

	if cfg.DB_STRING == "" {
		return nil, fmt.Errorf("DB_STRING is required")
	}
	if cfg.WEBHOOK_SECRET == "" {
		return nil, fmt.Errorf("WEBHOOK_SECRET is required")
	}
	if cfg.SIGNATURE_ENCODING != "base64" && cfg.SIGNATURE_ENCODING != "hex" {
		return nil, fmt.Errorf("SIGNATURE_ENCODING must be base64 or hex, got %q", cfg.SIGNATURE_ENCODING)
	}

	return cfg, nil
}
