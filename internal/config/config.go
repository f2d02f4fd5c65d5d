// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageBackend          string `yaml:"storage_backend" env:"STORAGE_BACKEND" env-default:"postgres"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	PayPal                  `yaml:"paypal"`
	RabbitMQ                `yaml:"rabbitmq"`
	SMTP                    `yaml:"smtp"`
	Subscription            `yaml:"subscription"`
	Migrator                `yaml:"migrator"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// PayPal структура для настройки платёжного провайдера
type PayPal struct {
	PayPalClientID  string `yaml:"client_id" env:"PAYPAL_CLIENT_ID"`
	PayPalSecretKey string `yaml:"secret_key" env:"PAYPAL_SECRET_KEY"`
	PayPalAPIURL    string `yaml:"api_url" env-default:"https://api-m.paypal.com"`
	PayPalPlanID    string `yaml:"plan_id" env:"PAYPAL_PLAN_ID"`
	PayPalButtonID  string `yaml:"button_id" env:"PAYPAL_BUTTON_ID"`
}

// RabbitMQ структура для настройки подключения к брокеру сообщений
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries int           `yaml:"max_retries" env-default:"10"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay" env-default:"3s"`
}

// SMTP структура для настройки почтового транспорта
type SMTP struct {
	SMTPHost string `yaml:"host" env:"SMTP_HOST"`
	SMTPPort string `yaml:"port" env-default:"587"`
	SMTPUser string `yaml:"user" env:"SMTP_USER"`
	SMTPPass string `yaml:"pass" env:"SMTP_PASS"`
}

// Subscription структура с бизнес-настройками подписки
type Subscription struct {
	RenewalWindowDays int  `yaml:"renewal_window_days" env-default:"5"`
	RegistrationOpen  bool `yaml:"registration_open" env-default:"true"`
}

// Migrator структура с настройками перегона данных между бэкендами
type Migrator struct {
	MigrateFrom string `yaml:"migrate_from" env:"MIGRATE_FROM" env-default:"postgres"`
	MigrateTo   string `yaml:"migrate_to" env:"MIGRATE_TO" env-default:"redis"`
}

// MustLoad загружает конфиг по пути из переменной CONFIG_PATH,
// при любой ошибке процесс завершается
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
