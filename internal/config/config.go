package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	DBUrl      string
	ServerPort string
	Timezone   string

	// Empty means no proxy is trusted and the client IP is the socket peer.
	TrustedProxies []string
	CORSOrigins    []string

	SessionSecret     string
	SessionCookieName string
	SessionTTL        time.Duration
	SessionTouchAfter time.Duration

	RedisURL string
	CacheTTL time.Duration

	AdminUsername string
	AdminPassword string

	LoginRateLimit  int
	LoginRateWindow time.Duration

	ReminderLead time.Duration

	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string
}

// Load reads the environment. Outside production a .env file in the working
// directory is loaded first; variables already set win over the file.
func Load() *Config {
	env := getEnv("APP_ENV", "development")
	if env != "production" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("config: failed to read .env: %v", err)
		}
	}

	return &Config{
		Env:        env,
		DBUrl:      getEnv("DATABASE_URL", "file:nailapp.db?_pragma=busy_timeout(5000)"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		Timezone:   getEnv("TIMEZONE", "Europe/Kyiv"),

		TrustedProxies: getList("TRUSTED_PROXIES"),
		CORSOrigins:    getList("CORS_ORIGINS"),

		SessionSecret:     getEnv("SESSION_SECRET", "savika-nail-app-secret-key-change-in-production"),
		SessionCookieName: getEnv("SESSION_COOKIE", "savika.sid"),
		SessionTTL:        getDuration("SESSION_TTL", 24*time.Hour),
		SessionTouchAfter: getDuration("SESSION_TOUCH_AFTER", time.Hour),

		RedisURL: getEnv("REDIS_URL", ""),
		CacheTTL: getDuration("CACHE_TTL", 5*time.Minute),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "savika2024"),

		LoginRateLimit:  getInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: getDuration("LOGIN_RATE_WINDOW", 15*time.Minute),

		ReminderLead: getDuration("REMINDER_LEAD", 30*time.Minute),

		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Region:        getEnv("S3_REGION", "eu-central-1"),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3AccessKey:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:     getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getList splits a comma separated variable, dropping blanks.
func getList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
