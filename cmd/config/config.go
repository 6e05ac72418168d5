package config

import (
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Environment     string
	LogLevel        string
	LogPreviewLimit int
	Server          ServerConfig
	Database        DatabaseConfig
	Redis           RedisConfig
	RabbitMQ        RabbitMQConfig
	Auth            AuthConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Enabled    bool
	Host       string
	Port       int
	Password   string
	DB         int
	ProductTTL time.Duration
}

type RabbitMQConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	Exchange string
	Queue    string
}

type AuthConfig struct {
	Realm string
}

var defaults = map[string]interface{}{
	"APP_ENV":           "development",
	"LOG_LEVEL":         "info",
	"LOG_PREVIEW_LIMIT": 5,

	"SERVER_PORT":   "8080",
	"READ_TIMEOUT":  "10s",
	"WRITE_TIMEOUT": "10s",
	"IDLE_TIMEOUT":  "60s",

	"DB_HOST":              "localhost",
	"DB_PORT":              3306,
	"DB_USER":              "root",
	"DB_PASSWORD":          "",
	"DB_NAME":              "store",
	"DB_MAX_OPEN_CONNS":    25,
	"DB_MAX_IDLE_CONNS":    5,
	"DB_CONN_MAX_LIFETIME": "5m",

	"REDIS_ENABLED":     false,
	"REDIS_HOST":        "localhost",
	"REDIS_PORT":        6379,
	"REDIS_PASSWORD":    "",
	"REDIS_DB":          0,
	"REDIS_PRODUCT_TTL": "5m",

	"RABBITMQ_ENABLED":  false,
	"RABBITMQ_HOST":     "localhost",
	"RABBITMQ_PORT":     5672,
	"RABBITMQ_USER":     "guest",
	"RABBITMQ_PASSWORD": "guest",
	"RABBITMQ_EXCHANGE": "product_events_exchange",
	"RABBITMQ_QUEUE":    "product_audit_queue",

	"AUTH_REALM": "store",
}

// Load reads an optional .env file, then the environment. Unset keys take their defaults.
func Load() *Config {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	return &Config{
		Environment:     v.GetString("APP_ENV"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogPreviewLimit: v.GetInt("LOG_PREVIEW_LIMIT"),
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			ReadTimeout:  v.GetDuration("READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("WRITE_TIMEOUT"),
			IdleTimeout:  v.GetDuration("IDLE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Redis: RedisConfig{
			Enabled:    v.GetBool("REDIS_ENABLED"),
			Host:       v.GetString("REDIS_HOST"),
			Port:       v.GetInt("REDIS_PORT"),
			Password:   v.GetString("REDIS_PASSWORD"),
			DB:         v.GetInt("REDIS_DB"),
			ProductTTL: v.GetDuration("REDIS_PRODUCT_TTL"),
		},
		RabbitMQ: RabbitMQConfig{
			Enabled:  v.GetBool("RABBITMQ_ENABLED"),
			Host:     v.GetString("RABBITMQ_HOST"),
			Port:     v.GetInt("RABBITMQ_PORT"),
			User:     v.GetString("RABBITMQ_USER"),
			Password: v.GetString("RABBITMQ_PASSWORD"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
			Queue:    v.GetString("RABBITMQ_QUEUE"),
		},
		Auth: AuthConfig{
			Realm: v.GetString("AUTH_REALM"),
		},
	}
}

// GetDSN builds the MySQL data source name for sqlx.Connect.
func (c *Config) GetDSN() string {
	dsn := mysql.NewConfig()
	dsn.User = c.Database.User
	dsn.Passwd = c.Database.Password
	dsn.Net = "tcp"
	dsn.Addr = fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port)
	dsn.DBName = c.Database.Name
	dsn.ParseTime = true
	// affected rows count matched rows, so an UPDATE to the current value still reports the row
	dsn.ClientFoundRows = true
	return dsn.FormatDSN()
}
