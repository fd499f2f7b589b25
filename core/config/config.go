package config

import (
	"fmt"
	"sync"

	"spendenlauf-api/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Mail     MailConfig
	Auth     AuthConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Enabled  bool
}

type AuthConfig struct {
	JWTSecret         string
	TokenTTLMinutes   int
	AdminEmail        string
	AdminPasswordHash string
}

type LoggingConfig struct {
	Level string
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads .env (if present) and environment variables into the global
// config instance.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("Config:Load:NoDotEnv", "error", err)
	}

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 7070)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_NAME", "spendenlauf")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("MAIL_PORT", 587)
	viper.SetDefault("MAIL_ENABLED", false)
	viper.SetDefault("TOKEN_TTL_MINUTES", 60)
	viper.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("SERVER_HOST"),
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			Enabled:  viper.GetBool("REDIS_ENABLED"),
		},
		Mail: MailConfig{
			Host:     viper.GetString("MAIL_HOST"),
			Port:     viper.GetInt("MAIL_PORT"),
			Username: viper.GetString("MAIL_USERNAME"),
			Password: viper.GetString("MAIL_PASSWORD"),
			From:     viper.GetString("MAIL_FROM"),
			Enabled:  viper.GetBool("MAIL_ENABLED"),
		},
		Auth: AuthConfig{
			JWTSecret:         viper.GetString("JWT_SECRET"),
			TokenTTLMinutes:   viper.GetInt("TOKEN_TTL_MINUTES"),
			AdminEmail:        viper.GetString("ADMIN_EMAIL"),
			AdminPasswordHash: viper.GetString("ADMIN_PASSWORD_HASH"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: DB_NAME is required")
	}
	return nil
}

// Get returns the global config. Panics when Load was never called.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config: not initialized")
	}
	return cfg
}

// GetSafe returns the global config and whether it has been initialized.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
