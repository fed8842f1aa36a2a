package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds process-level configuration loaded from environment variables.
type ServerConfig struct {
	Addr         string
	StaticDir    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins []string
}

// LoadServerConfig reads a .env file if present and builds the ServerConfig.
func LoadServerConfig() ServerConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}
	cfg := ServerConfig{
		Addr:         getEnv("ADDR", ":8080"),
		StaticDir:    getEnv("STATIC_DIR", "./public"),
		ReadTimeout:  parseDuration(getEnv("READ_TIMEOUT", "15s"), 15*time.Second),
		WriteTimeout: parseDuration(getEnv("WRITE_TIMEOUT", "15s"), 15*time.Second),
		AllowOrigins: []string{getEnv("ALLOW_ORIGIN", "*")},
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
