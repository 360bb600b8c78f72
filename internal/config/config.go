package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Fixed keys for persisted client state, shared with the state store.
const (
	TokenKey = "booknest_token"
	UserKey  = "booknest_user"
)

const defaultAPITimeout = 30 * time.Second

type Config struct {
	APIBaseURL     string
	APITimeout     time.Duration
	IdentityURL    string
	IdentityAPIKey string
	ImageHostURL   string
	ImageHostKey   string
	StateDBPath    string
	CallbackAddr   string
	AppEnv         string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:     getEnv("BOOKNEST_API_URL", "http://localhost:5000/api"),
		APITimeout:     defaultAPITimeout,
		IdentityURL:    getEnv("IDENTITY_API_URL", "https://identitytoolkit.googleapis.com/v1"),
		IdentityAPIKey: os.Getenv("IDENTITY_API_KEY"),
		ImageHostURL:   getEnv("IMGBB_API_URL", "https://api.imgbb.com/1/upload"),
		ImageHostKey:   os.Getenv("IMGBB_API_KEY"),
		StateDBPath:    os.Getenv("BOOKNEST_STATE_DB"),
		CallbackAddr:   getEnv("PAYMENT_CALLBACK_ADDR", "127.0.0.1:8472"),
		AppEnv:         os.Getenv("APP_ENV"),
	}

	if cfg.StateDBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal("cannot resolve home directory for state db; set BOOKNEST_STATE_DB")
		}
		cfg.StateDBPath = filepath.Join(home, ".booknest", "state.db")
	}

	if cfg.IdentityAPIKey == "" {
		log.Fatal("IDENTITY_API_KEY is not set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
