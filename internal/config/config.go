package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr    string
	APIRoot string
	APIKey  string

	// Authentification: jeton fixe, ou échange d'un refresh token OAuth.
	AccessToken       string
	OAuthClientID     string
	OAuthClientSecret string
	OAuthRefreshToken string
	OAuthTokenURL     string

	CallTimeout    time.Duration
	Cardinality    int
	Region         string
	Locale         string
	MaxConcurrency int
	RetryAttempts  int
}

// Load charge un éventuel .env (sans écraser l'environnement) puis lit la configuration.
func Load(files ...string) Config {
	_ = godotenv.Load(files...)
	return Default()
}

func Default() Config {
	return Config{
		Addr:              envOr("TB_ADDR", "127.0.0.1:8080"),
		APIRoot:           envOr("TB_API_ROOT", "https://www.googleapis.com"),
		APIKey:            strings.TrimSpace(os.Getenv("TB_API_KEY")),
		AccessToken:       strings.TrimSpace(os.Getenv("TB_ACCESS_TOKEN")),
		OAuthClientID:     strings.TrimSpace(os.Getenv("TB_OAUTH_CLIENT_ID")),
		OAuthClientSecret: strings.TrimSpace(os.Getenv("TB_OAUTH_CLIENT_SECRET")),
		OAuthRefreshToken: strings.TrimSpace(os.Getenv("TB_OAUTH_REFRESH_TOKEN")),
		OAuthTokenURL:     strings.TrimSpace(os.Getenv("TB_OAUTH_TOKEN_URL")),
		CallTimeout:       durationOr("TB_CALL_TIMEOUT", 10*time.Second),
		Cardinality:       intOr("TB_CARDINALITY", 10),
		Region:            envOr("TB_REGION", "US"),
		Locale:            envOr("TB_LOCALE", "en_US"),
		MaxConcurrency:    intOr("TB_MAX_CONCURRENCY", 8),
		RetryAttempts:     intOr("TB_RETRY_ATTEMPTS", 2),
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intOr(key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// durationOr accepte "10s", "500ms"... ou un nombre de secondes.
func durationOr(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}
