package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	Port               string
	AppBaseURL         string
	APIBaseURL         string
	AllowedDomain      string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	JWTSecret          string
	InternalAPISecret  string
	AppTimezone        string
	CORSOrigins        string
	CacheTTL           time.Duration
	CacheJanitorCron   string
	APITimeout         time.Duration
)

// Settings is a snapshot of the loaded configuration for injection.
type Settings struct {
	Port               string
	AppBaseURL         string
	APIBaseURL         string
	AllowedDomain      string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	JWTSecret          string
	InternalAPISecret  string
	AppTimezone        string
	CORSOrigins        string
	CacheTTL           time.Duration
	CacheJanitorCron   string
	APITimeout         time.Duration
}

// SecureCookies is on whenever the portal is served over https.
func (s Settings) SecureCookies() bool {
	return strings.HasPrefix(strings.ToLower(s.AppBaseURL), "https://")
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}

	Port = GetEnv("PORT", "3000")
	AppBaseURL = strings.TrimRight(GetEnv("APP_BASE_URL", "http://localhost:"+Port), "/")
	APIBaseURL = strings.TrimRight(GetEnv("API_BASE_URL", "http://localhost:8000/api/v1"), "/")
	AllowedDomain = strings.ToLower(strings.TrimSpace(GetEnv("ALLOWED_DOMAIN", "example.com")))
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")
	GoogleClientSecret = GetEnv("GOOGLE_CLIENT_SECRET")
	GoogleRedirectURI = GetEnv("GOOGLE_REDIRECT_URI", AppBaseURL+"/auth/google/callback")
	JWTSecret = GetEnv("JWT_SECRET")
	InternalAPISecret = GetEnv("INTERNAL_API_SECRET")
	AppTimezone = GetEnv("APP_TIMEZONE", "Asia/Bangkok")
	CORSOrigins = GetEnv("CORS_ORIGINS", AppBaseURL)
	CacheTTL = time.Duration(GetEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second
	CacheJanitorCron = GetEnv("CACHE_JANITOR_CRON", "@every 5m")
	APITimeout = time.Duration(GetEnvInt("API_TIMEOUT_SECONDS", 10)) * time.Second

	required := map[string]string{
		"JWT_SECRET":           JWTSecret,
		"GOOGLE_CLIENT_ID":     GoogleClientID,
		"GOOGLE_CLIENT_SECRET": GoogleClientSecret,
		"INTERNAL_API_SECRET":  InternalAPISecret,
	}
	for _, key := range []string{"JWT_SECRET", "GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "INTERNAL_API_SECRET"} {
		if required[key] == "" {
			log.Printf("❌ %s is not set!", key)
		} else {
			log.Printf("✅ %s loaded.", key)
		}
	}
}

// Current snapshots the package-level settings.
func Current() Settings {
	return Settings{
		Port:               Port,
		AppBaseURL:         AppBaseURL,
		APIBaseURL:         APIBaseURL,
		AllowedDomain:      AllowedDomain,
		GoogleClientID:     GoogleClientID,
		GoogleClientSecret: GoogleClientSecret,
		GoogleRedirectURI:  GoogleRedirectURI,
		JWTSecret:          JWTSecret,
		InternalAPISecret:  InternalAPISecret,
		AppTimezone:        AppTimezone,
		CORSOrigins:        CORSOrigins,
		CacheTTL:           CacheTTL,
		CacheJanitorCron:   CacheJanitorCron,
		APITimeout:         APITimeout,
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// GetEnvInt falls back to def when the variable is unset or not a number.
func GetEnvInt(key string, def int) int {
	raw := strings.TrimSpace(GetEnv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️ %s=%q is not a number, using %d", key, raw, def)
		return def
	}
	return n
}
