package config

import (
	"strings"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"America/Sao_Paulo"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8081"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Registry struct {
		URL            string `env:"REGISTRY_URL" envDefault:"http://localhost:8080/api/v1"`
		Token          string `env:"REGISTRY_TOKEN"`
		TimeoutSeconds int    `env:"REGISTRY_TIMEOUT_SECONDS" envDefault:"10"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"queue_dashboard:queue_dashboard"`
		BasicClients       []ConfigBasicClient
	}

	RabbitMQ struct {
		Enabled   bool   `env:"RABBITMQ_ENABLED"`
		URL       string `env:"RABBITMQ_URL"`
		Queue     string `env:"RABBITMQ_QUEUE" envDefault:"sai.queue-coordinator.appointment"`
		DedupSize int    `env:"RABBITMQ_DEDUP_SIZE" envDefault:"1000"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	// Basic-auth clients of the dashboard API, "user:pass" pairs separated
	// by commas.
	cfg.Auth.BasicClients = []ConfigBasicClient{}
	for _, pair := range strings.Split(cfg.Auth.BasicClientsString, ",") {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
