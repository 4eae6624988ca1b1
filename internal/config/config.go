package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPHost          = "127.0.0.1"
	defaultHTTPPort          = 3000
	defaultDBPath            = "./profile.db"
	defaultUploadDir         = "./public/img"
	defaultSessionCookie     = "profile_session"
	defaultSessionSecret     = "default_secret_key"
	defaultSessionTTLHours   = 24 * 30
	defaultAuthRatePerMinute = 20
	defaultMaxUploadMB       = 2
	defaultShutdownSeconds   = 5
)

type Config struct {
	HTTPAddr string
	DBPath   string

	// 업로드된 아바타 파일 저장 위치, /img 로 서빙됨
	UploadDir    string
	MaxUploadMB  int64
	CORSOrigins  []string
	CookieSecure bool

	SessionCookie string
	SessionSecret string
	SessionTTL    time.Duration

	AuthRatePerMinute int

	// 비어 있으면 초대 코드 없이 가입 가능
	InviteCode     string
	SwaggerEnabled bool

	LogLevel  string
	LogFormat string

	ShutdownGrace time.Duration
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config.Load(): failed to read .env: %v", err)
	}

	secret := lookupEnv("SESSION_SECRET", defaultSessionSecret)
	if secret == defaultSessionSecret {
		log.Println("Warning: SESSION_SECRET environment variable is not set. Using default key.")
	}

	return Config{
		HTTPAddr:          joinHostPort(lookupEnv("HTTP_HOST", defaultHTTPHost), lookupEnvInt("HTTP_PORT", defaultHTTPPort)),
		DBPath:            lookupEnv("DB_PATH", defaultDBPath),
		UploadDir:         lookupEnv("UPLOAD_DIR", defaultUploadDir),
		MaxUploadMB:       int64(lookupEnvInt("MAX_UPLOAD_MB", defaultMaxUploadMB)),
		CORSOrigins:       lookupEnvList("CORS_ORIGINS"),
		CookieSecure:      lookupEnvBool("COOKIE_SECURE", false),
		SessionCookie:     lookupEnv("SESSION_COOKIE", defaultSessionCookie),
		SessionSecret:     secret,
		SessionTTL:        time.Duration(lookupEnvInt("SESSION_TTL_HOURS", defaultSessionTTLHours)) * time.Hour,
		AuthRatePerMinute: lookupEnvInt("AUTH_RATE_PER_MINUTE", defaultAuthRatePerMinute),
		InviteCode:        lookupEnv("SIGNUP_INVITE_CODE", ""),
		SwaggerEnabled:    lookupEnvBool("SWAGGER_ENABLED", true),
		LogLevel:          lookupEnv("LOG_LEVEL", "info"),
		LogFormat:         lookupEnv("LOG_FORMAT", "console"),
		ShutdownGrace:     time.Duration(lookupEnvInt("SHUTDOWN_GRACE_SECONDS", defaultShutdownSeconds)) * time.Second,
	}
}

func lookupEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func lookupEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func lookupEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

// 쉼표로 구분된 목록, 비어 있으면 nil
func lookupEnvList(key string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func joinHostPort(host string, port int) string {
	return host + ":" + strconv.Itoa(port)
}
