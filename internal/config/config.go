// Package config предоставляет структуры и функции для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQConnection      `yaml:"rabbitmq_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Entitlement             `yaml:"entitlement"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	RateLimit   float64       `yaml:"rate_limit" env-default:"20"`
	RateBurst   int           `yaml:"rate_burst" env-default:"40"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"1s"`
}

// RabbitMQConnection структура для подключения к очереди событий о платежах.
// Пустой URL отключает потребителя.
type RabbitMQConnection struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Queue      string        `yaml:"queue" env-default:"payments.updated"`
	RoutingKey string        `yaml:"routing_key" env-default:"payment.updated"`
	Exchange   string        `yaml:"exchange" env-default:"payments"`
	Retries    int           `yaml:"retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Entitlement настройки вычисления прав доступа.
type Entitlement struct {
	Tiers        []string      `yaml:"tiers" env-default:"free,trial,paid-monthly,paid-yearly,enterprise"`
	DefaultTier  string        `yaml:"default_tier" env-default:"free"`
	PaymentLimit int           `yaml:"payment_limit" env-default:"5"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env-default:"0s"`
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла и переменных окружения.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if cfg.PaymentLimit <= 0 {
		return nil, fmt.Errorf("%s: payment_limit must be positive", op)
	}
	return &cfg, nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: ***\n"+
			"MigrationsPath: %s\n"+
			"Redis: %s (db %d)\n"+
			"RabbitMQ queue: %s\n"+
			"HTTPServer: %s timeout=%s idle=%s\n"+
			"Entitlement: tiers=%v default=%s limit=%d cache_ttl=%s\n",
		c.Env,
		c.MigrationsPath,
		c.AddressRedis, c.DB,
		c.Queue,
		c.AddressHTTP, c.TimeoutHTTP, c.IdleTimeout,
		c.Tiers, c.DefaultTier, c.PaymentLimit, c.CacheTTL,
	)
}
