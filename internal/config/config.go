package config

import "github.com/spf13/viper"

type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT"`
	APIBaseURL    string `mapstructure:"API_BASE_URL"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	SessionTTLh   int    `mapstructure:"SESSION_TTL_HOURS"`
	CatalogTTLs   int    `mapstructure:"CATALOG_CACHE_TTL_SECONDS"`
	MaxPhotoMB    int    `mapstructure:"MAX_PHOTO_MB"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("API_BASE_URL", "http://localhost:3001/api")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("SESSION_TTL_HOURS", 72)
	viper.SetDefault("CATALOG_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("MAX_PHOTO_MB", 5)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
