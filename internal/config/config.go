package config

import (
	"fmt"
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

type BackendProvider string

const (
	BackendProviderSupabase BackendProvider = "supabase"
	BackendProviderFirebase BackendProvider = "firebase"
)

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Africa/Mogadishu"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	// Провайдер аутентификации и данных, выбирается при старте
	Backend struct {
		Provider BackendProvider `env:"BACKEND_PROVIDER" envDefault:"supabase"`
	}

	Supabase struct {
		URL       string `env:"SUPABASE_URL"`
		AnonKey   string `env:"SUPABASE_ANON_KEY"`
		JWTSecret string `env:"SUPABASE_JWT_SECRET"`
	}

	Firebase struct {
		ProjectID       string `env:"FIREBASE_PROJECT_ID"`
		CredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE"`
		WebAPIKey       string `env:"FIREBASE_WEB_API_KEY"`
	}

	OpenRouter struct {
		URL       string `env:"OPENROUTER_URL" envDefault:"https://openrouter.ai/api/v1"`
		APIKey    string `env:"OPENROUTER_API_KEY"`
		Model     string `env:"OPENROUTER_MODEL" envDefault:"deepseek/deepseek-chat-v3-0324:free"`
		SiteURL   string `env:"OPENROUTER_SITE_URL"`
		SiteTitle string `env:"OPENROUTER_SITE_TITLE" envDefault:"HealthChat"`
	}

	Redis struct {
		Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD"`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	RabbitMq struct {
		Enabled     bool   `env:"RABBITMQ_ENABLED"`
		AmqpUri     string `env:"RABBITMQ_URI"`
		QueueConfig struct {
			AvailabilityQueueName     string `env:"RABBITMQ_AVAILABILITY_QUEUE" envDefault:"healthchat.availability.cache"`
			AvailabilityQueueBind     string `env:"RABBITMQ_AVAILABILITY_QUEUE_BIND" envDefault:"gateway.healthchat-backend.availability.#"`
			AvailabilityQueueExchange string `env:"RABBITMQ_AVAILABILITY_QUEUE_EXCHANGE" envDefault:"amq.topic"`
			DoctorQueueName           string `env:"RABBITMQ_DOCTOR_QUEUE" envDefault:"healthchat.doctor.cache"`
			DoctorQueueBind           string `env:"RABBITMQ_DOCTOR_QUEUE_BIND" envDefault:"gateway.healthchat-backend.doctor.#"`
			DoctorQueueExchange       string `env:"RABBITMQ_DOCTOR_QUEUE_EXCHANGE" envDefault:"amq.topic"`
		}
	}

	Cache struct {
		Enabled          bool `env:"CACHE_ENABLED"`
		AvailabilitySize int  `env:"CACHE_AVAILABILITY_SIZE" envDefault:"1000"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))
	cfg.Backend.Provider = BackendProvider(strings.ToLower(string(cfg.Backend.Provider)))

	if cfg.Backend.Provider != BackendProviderSupabase && cfg.Backend.Provider != BackendProviderFirebase {
		return nil, fmt.Errorf("unknown backend provider: %s", cfg.Backend.Provider)
	}

	// Если RabbitMQ не включен, то кэш тоже не включаем:
	// без инвалидации извне он быстро протухнет
	if !cfg.RabbitMq.Enabled {
		cfg.Cache.Enabled = false
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
