package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const devJWTSecret = "dev-only-change-me"

type Config struct {
	Port    string
	GinMode string

	DBDriver       string
	DBDSN          string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBLogSQL       bool

	JWTSecret string
	JWTTTL    time.Duration

	LogLevel        string
	LogFormat       string
	LogLogstashURL  string
	LogElasticURL   string
	LogElasticIndex string

	CORSOrigins        []string
	LoginRatePerMinute int

	// EnvLoaded is false when no .env file was found.
	EnvLoaded bool
}

// Load reads .env (if present), an optional config.yml in the working directory,
// then environment variables, which win.
func Load() (*Config, error) {
	envErr := godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return fromViper(v, envErr == nil), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", "restaurant.db")
	v.SetDefault("db_max_open_conns", 10)
	v.SetDefault("db_max_idle_conns", 5)
	v.SetDefault("db_log_sql", false)
	v.SetDefault("jwt_secret", devJWTSecret)
	v.SetDefault("jwt_ttl", "24h")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_logstash_url", "")
	v.SetDefault("log_elastic_url", "")
	v.SetDefault("log_elastic_index", "restaurant-kitchen")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("login_rate_per_minute", 10)
}

func fromViper(v *viper.Viper, envLoaded bool) *Config {
	ttl := v.GetDuration("jwt_ttl")
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Config{
		Port:               v.GetString("port"),
		GinMode:            v.GetString("gin_mode"),
		DBDriver:           strings.ToLower(v.GetString("db_driver")),
		DBDSN:              v.GetString("db_dsn"),
		DBMaxOpenConns:     v.GetInt("db_max_open_conns"),
		DBMaxIdleConns:     v.GetInt("db_max_idle_conns"),
		DBLogSQL:           v.GetBool("db_log_sql"),
		JWTSecret:          v.GetString("jwt_secret"),
		JWTTTL:             ttl,
		LogLevel:           v.GetString("log_level"),
		LogFormat:          v.GetString("log_format"),
		LogLogstashURL:     v.GetString("log_logstash_url"),
		LogElasticURL:      v.GetString("log_elastic_url"),
		LogElasticIndex:    v.GetString("log_elastic_index"),
		CORSOrigins:        splitList(v.GetString("cors_origins")),
		LoginRatePerMinute: v.GetInt("login_rate_per_minute"),
		EnvLoaded:          envLoaded,
	}
}

// UsesDevSecret reports whether tokens are signed with the built-in development secret.
func (c *Config) UsesDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
