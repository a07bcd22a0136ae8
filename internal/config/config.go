// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
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
	Env                     string `yaml:"env" env:"APP_ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	RabbitMQ                `yaml:"rabbitmq"`
	Notifier                `yaml:"notifier"`
	Relay                   `yaml:"relay"`
	Scheduler               `yaml:"scheduler"`
	Economy                 `yaml:"economy"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	RateLimit   float64       `yaml:"rate_limit" env-default:"5"` // Запросов в секунду на пользователя
	RateBurst   int           `yaml:"rate_burst" env-default:"10"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
	CatalogTTL   time.Duration `yaml:"catalog_ttl" env-default:"5m"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// RabbitMQ настройки брокера уведомлений
type RabbitMQ struct {
	RabbitURL     string        `yaml:"url" env:"RABBITMQ_URL"`
	ConnRetries   int           `yaml:"retries" env-default:"5"`
	ConnDelay     time.Duration `yaml:"retry_delay" env-default:"2s"`
	Exchange      string        `yaml:"exchange" env-default:"notifications"`
	WebhookQueue  string        `yaml:"webhook_queue" env-default:"notifications.webhook"`
	WebhookRoute  string        `yaml:"webhook_routing_key" env-default:"webhook"`
	ConsumerLimit int           `yaml:"consumer_limit" env-default:"10"`
}

// Notifier настройки доставки уведомлений до ретранслятора
type Notifier struct {
	RelayURL       string        `yaml:"relay_url" env:"NOTIFIER_RELAY_URL"`
	NotifyTimeout  time.Duration `yaml:"timeout" env-default:"5s"`
	NotifyDisabled bool          `yaml:"disabled" env:"NOTIFIER_DISABLED"`
}

// Relay настройки ретранслятора во внешний вебхук
type Relay struct {
	AddressRelay    string        `yaml:"address" env:"RELAY_ADDRESS" env-default:":8090"`
	SlackWebhookURL string        `yaml:"slack_webhook_url" env:"SLACK_WEBHOOK_URL"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout" env-default:"5s"`
}

// Scheduler периоды фоновых задач
type Scheduler struct {
	LoanInterval       time.Duration `yaml:"loan_interval" env-default:"1h"`
	MembershipInterval time.Duration `yaml:"membership_interval" env-default:"1h"`
	RetirementInterval time.Duration `yaml:"retirement_interval" env-default:"6h"`
}

// Economy параметры экономики
type Economy struct {
	AdminUsername      string `yaml:"admin_username" env:"ADMIN_USERNAME" env-default:"tennismaster29"`
	RetirementDailyCap int64  `yaml:"retirement_daily_cap" env-default:"1000000"`
	HistoryLimit       int    `yaml:"history_limit" env-default:"30"`
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH, переменные окружения переопределяют файл
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "***"
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"MigrationsPath: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  Password: %s\n"+
			"  DB: %d\n"+
			"  Timeout: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  JWTSecretKey: %s\n"+
			"  TokenTTL: %s\n"+
			"RabbitMQ:\n"+
			"  Exchange: %s\n"+
			"  Queue: %s\n"+
			"Notifier:\n"+
			"  RelayURL: %s\n"+
			"Relay:\n"+
			"  Address: %s\n"+
			"  SlackWebhookURL: %s\n"+
			"Economy:\n"+
			"  AdminUsername: %s\n"+
			"  RetirementDailyCap: %d\n",
		c.Env,
		mask(c.StorageConnectionString),
		c.MigrationsPath,
		c.AddressRedis,
		mask(c.Password),
		c.DB,
		c.TimeoutRedis,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		mask(c.JWTSecretKey),
		c.TokenTTL,
		c.Exchange,
		c.WebhookQueue,
		c.RelayURL,
		c.AddressRelay,
		mask(c.SlackWebhookURL),
		c.AdminUsername,
		c.RetirementDailyCap,
	)
}
