package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		SSLMode  string `mapstructure:"sslmode"`
	} `mapstructure:"database"`
	Server struct {
		Port           string `mapstructure:"port"`
		AllowedOrigins string `mapstructure:"allowed_origins"`
	} `mapstructure:"server"`
	JWT struct {
		SecretKey string `mapstructure:"secret_key"`
	} `mapstructure:"jwt"`
	Redis struct {
		Enabled  bool          `mapstructure:"enabled"`
		Host     string        `mapstructure:"host"`
		Port     string        `mapstructure:"port"`
		Password string        `mapstructure:"password"`
		TTL      time.Duration `mapstructure:"ttl"`
	} `mapstructure:"redis"`
	Kafka struct {
		Enabled bool   `mapstructure:"enabled"`
		Brokers string `mapstructure:"brokers"`
		Topic   string `mapstructure:"topic"`
	} `mapstructure:"kafka"`
	Ledger LedgerConfig `mapstructure:"ledger"`
}

// LedgerConfig tunes the mutation engine and its store.
type LedgerConfig struct {
	Store        string        `mapstructure:"store"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	LockTimeout  time.Duration `mapstructure:"lock_timeout"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "bank_ledger")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origins", "*")
	v.SetDefault("jwt.secret_key", "")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.ttl", 10*time.Minute)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.topic", "ledger.transactions")
	v.SetDefault("ledger.store", "postgres")
	v.SetDefault("ledger.max_retries", 3)
	v.SetDefault("ledger.retry_backoff", 20*time.Millisecond)
	v.SetDefault("ledger.lock_timeout", 2*time.Second)
}

// Load reads config.yml from path (if present) and the environment into a Config.
// Environment keys use underscores for nesting, e.g. LEDGER_MAX_RETRIES.
func Load(path string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func LoadConfig(path string) {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Unable to load configuration, %v", err)
	}
	AppConfig = *cfg
}

// Brokers splits the comma separated Kafka broker list.
func (c *Config) Brokers() []string {
	return splitList(c.Kafka.Brokers)
}

// AllowedOrigins splits the comma separated CORS origin list.
func (c *Config) AllowedOrigins() []string {
	return splitList(c.Server.AllowedOrigins)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
