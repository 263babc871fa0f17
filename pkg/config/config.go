package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Catalog  CatalogConfig
	Session  SessionConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Phrasing PhrasingConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

// CatalogConfig selects where card records come from. "file" reads the
// static JSON catalog, "postgres" reads the credit_cards table.
type CatalogConfig struct {
	Source   string
	DataPath string
}

// SessionConfig selects the session store backend and its retention.
type SessionConfig struct {
	Backend       string
	TTL           time.Duration
	SweepInterval time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// PhrasingConfig configures the ordered phrasing-provider chain. Providers
// lists names in preference order; the static provider is always appended
// as the terminal fallback even if omitted here.
type PhrasingConfig struct {
	Providers    []string
	GeminiAPIKey string
	GeminiModel  string
	OllamaURL    string
	OllamaModel  string
	Timeout      time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Credit Card Advisor API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Catalog: CatalogConfig{
			Source:   getEnv("CATALOG_SOURCE", "file"),
			DataPath: getEnv("CARD_DATA_PATH", "data/cards.json"),
		},
		Session: SessionConfig{
			Backend:       getEnv("SESSION_BACKEND", "memory"),
			TTL:           time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
			SweepInterval: time.Duration(getEnvInt("SWEEP_INTERVAL_MINUTES", 60)) * time.Minute,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "card_advisor"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
		},
		Phrasing: PhrasingConfig{
			Providers:    splitList(getEnv("PHRASING_PROVIDERS", "gemini,ollama,static")),
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			OllamaURL:    getEnv("OLLAMA_URL", "http://localhost:11434"),
			OllamaModel:  getEnv("OLLAMA_MODEL", "llama3.2"),
			Timeout:      time.Duration(getEnvInt("PHRASING_TIMEOUT_SECONDS", 10)) * time.Second,
		},
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return n
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}
