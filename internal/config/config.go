package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string
	DBDSN    string
	LogLevel string
	LogFile  string
}

func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DSN", "stockyard.db") // sqlite file in project root
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")

	cfg := Config{
		Port:     v.GetString("PORT"),
		DBDSN:    v.GetString("DB_DSN"),
		LogLevel: v.GetString("LOG_LEVEL"),
		LogFile:  v.GetString("LOG_FILE"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_LEVEL=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.LogLevel, cfg.LogFile)
	return cfg
}
