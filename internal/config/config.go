package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppPort        string
	DBDSN          string
	RedisAddr      string
	RedisPassword  string
	SessionSecret  string
	SessionTTLMin  int
	BcryptCost     int
	GoogleClientID string
	GoogleSecret   string
	GoogleRedirect string
	FrontendBase   string
}

func Load() Config {
	ttl, _ := strconv.Atoi(get("SESSION_TTL_MIN", "10080"))
	cost, _ := strconv.Atoi(get("BCRYPT_COST", "10"))
	return Config{
		AppPort:        get("APP_PORT", "8080"),
		DBDSN:          must("DB_DSN"),
		RedisAddr:      get("REDIS_ADDR", ""),
		RedisPassword:  get("REDIS_PASSWORD", ""),
		SessionSecret:  must("SESSION_SECRET"),
		SessionTTLMin:  ttl,
		BcryptCost:     cost,
		GoogleClientID: get("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:   get("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect: get("GOOGLE_REDIRECT_URL", ""),
		FrontendBase:   get("FRONTEND_BASE_URL", "http://localhost:3000"),
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
