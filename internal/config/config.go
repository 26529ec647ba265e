package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	HTTPPort  string

	Auth     AuthConfig
	Log      LogConfig
	Analysis *AnalysisConfig
}

// AuthConfig holds the single host account and token settings
type AuthConfig struct {
	HostUsername string
	HostPassword string
	JWTSecret    string
	TokenTTL     time.Duration // zero means tokens never expire
}

// LogConfig controls the process logger
type LogConfig struct {
	Level          string
	IncludeSource  bool
	File           string // empty logs to stdout only
	FileMaxSize    int    // megabytes
	FileMaxAge     int    // days
	FileMaxBackups int
	Compress       bool
}

// Load reads the configuration from the environment. Variables from a .env
// file in the working directory are loaded first; they never override the
// real environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "surveytoolkit"),
		RedisAddr: trimRedisScheme(getEnv("REDIS_ADDR", "localhost:6379")),
		HTTPPort:  getEnv("PORT", "8080"),
		Auth: AuthConfig{
			HostUsername: getEnv("HOST_USERNAME", "admin"),
			HostPassword: getEnv("HOST_PASSWORD", "password123"),
			JWTSecret:    getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
			TokenTTL:     getDuration("TOKEN_TTL", 0),
		},
		Log: LogConfig{
			Level:          getEnv("LOG_LEVEL", "info"),
			IncludeSource:  getBool("LOG_INCLUDE_SOURCE", false),
			File:           getEnv("LOG_FILE", ""),
			FileMaxSize:    getInt("LOG_FILE_MAX_SIZE", 100),
			FileMaxAge:     getInt("LOG_FILE_MAX_AGE", 28),
			FileMaxBackups: getInt("LOG_FILE_MAX_BACKUPS", 3),
			Compress:       getBool("LOG_FILE_COMPRESS", false),
		},
		Analysis: DefaultAnalysisConfig(),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultVal
}

// trimRedisScheme accepts both host:port and redis://host:port
func trimRedisScheme(addr string) string {
	if len(addr) > 8 && addr[:8] == "redis://" {
		return addr[8:]
	}
	return addr
}
