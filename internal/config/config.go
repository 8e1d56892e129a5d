// Package config предоставляет конфигурацию сервиса из переменных окружения.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config настройки HTTP-сервера и внешних сервисов
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":9091"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	GatewayURL     string        `env:"GATEWAY_URL" envDefault:"http://localhost/api.php"`
	GatewayTimeout time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"15s"`

	AssistURL     string        `env:"ASSIST_URL" envDefault:"https://api.openai.com/v1/chat/completions"`
	AssistAPIKey  string        `env:"ASSIST_API_KEY"`
	AssistModel   string        `env:"ASSIST_MODEL" envDefault:"gpt-4o-mini"`
	AssistTimeout time.Duration `env:"ASSIST_TIMEOUT" envDefault:"20s"`
}

// Load читает конфигурацию из окружения
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
