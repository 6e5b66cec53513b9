package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr     string
	SheetAPIURL  string
	RedisAddr    string
	KafkaBrokers []string
	JWTSecret    string
	TokenTTL     time.Duration
	ServiceName  string

	// Pemetaan email -> user_id lama (UUID) untuk data sebelum migrasi.
	// Format env: "a@x.com=uuid-1,b@x.com=uuid-2". Kosong = tanpa alias.
	LegacyOwnerAliases map[string]string
}

func Load() Config {
	return Config{
		HTTPAddr:           getenv("HTTP_ADDR", ":8082"),
		SheetAPIURL:        getenv("SHEET_API_URL", ""),
		RedisAddr:          getenv("REDIS_ADDR", "redis:6379"),
		KafkaBrokers:       splitCSV(getenv("KAFKA_BROKERS", "")),
		JWTSecret:          getenv("JWT_SECRET", "dev-secret"),
		TokenTTL:           time.Duration(atoi(getenv("TOKEN_TTL_MIN", "60"), 60)) * time.Minute,
		ServiceName:        getenv("SERVICE_NAME", "market-gateway"),
		LegacyOwnerAliases: splitPairs(getenv("LEGACY_OWNER_ALIASES", "")),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func splitPairs(s string) map[string]string {
	out := map[string]string{}
	for _, p := range splitCSV(s) {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}
