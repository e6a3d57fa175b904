package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all environment driven settings. The JWT secret is
// required and has no default; sensitive values must come from the
// environment or a .env file.
type Config struct {
	Port        string
	MongoURI    string
	MongoDBName string
	JWTSecret   string
	TokenTTLH   int

	// PublicBaseURL is the externally reachable base used when
	// building image URLs, e.g. "http://localhost:4000".
	PublicBaseURL string

	// UploadDir is the root for uploaded files; post images live in
	// UploadDir/images, avatars in UploadDir/profileImages.
	UploadDir string

	RateLimitPerMinute int

	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool

	GinMode string
}

// Load reads the configuration from environment variables and fails
// the process if the JWT secret is missing.
func Load() Config {
	cfg := Config{
		Port:               getEnv("PORT", "4000"),
		MongoURI:           getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDBName:        getEnv("MONGODB_DB", "inkwell"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenTTLH:          getEnvInt("TOKEN_TTL_HOURS", 24),
		UploadDir:          getEnv("UPLOAD_DIR", "upload"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogPath:            getEnv("LOG_PATH", ""),
		LogMaxSizeMB:       getEnvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups:      getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:      getEnvInt("LOG_MAX_AGE_DAYS", 7),
		LogCompress:        getEnvBool("LOG_COMPRESS", false),
		GinMode:            getEnv("GIN_MODE", "debug"),
	}

	cfg.PublicBaseURL = getEnv("PUBLIC_BASE_URL", "http://localhost:"+cfg.Port)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}
