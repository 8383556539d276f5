package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string // Postgres DSN; when empty the embedded sqlite store is used
	SQLitePath          string
	RedisURL            string
	SessionSecret       string
	GeminiAPIKey        string // GEMINI_API_KEY; AI audit/suggestion disabled when absent
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "3000"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	sqlitePath := viper.GetString("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "database.db"
	}

	redisURL := viper.GetString("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		SQLitePath:          sqlitePath,
		RedisURL:            redisURL,
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		GeminiAPIKey:        viper.GetString("GEMINI_API_KEY"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
	}, nil
}
