package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultMetadataURL is the published track metadata sheet (CSV export).
const DefaultMetadataURL = "https://res.cloudinary.com/dsixore5e/raw/upload/meta/tracks.csv"

// Metadata source kinds.
const (
	SourceHTTP  = "http"
	SourceMinio = "minio"
)

// CloudinaryConfig holds the CDN account used to build playable media URLs.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Secure    bool // https delivery
	SignURLs  bool // add an s--signature-- component to delivery URLs
}

// Config stores the application configuration.
type Config struct {
	ServerPort string

	Cloudinary CloudinaryConfig

	MetadataSource       string // "http" or "minio"
	MetadataURL          string
	MetadataFetchTimeout time.Duration

	// The shared snapshot cache is disabled when RedisHost is empty.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CatalogTTL    time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioObject    string
	MinioUseSSL    bool
	MinioRegion    string

	LogLevel string
	LogFile  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvSeconds reads a whole number of seconds.
func getEnvSeconds(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	source := strings.ToLower(getEnv("METADATA_SOURCE", SourceHTTP))
	if source != SourceMinio {
		source = SourceHTTP
	}

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
			Secure:    getEnvBool("CLOUDINARY_SECURE", true),
			SignURLs:  getEnvBool("CLOUDINARY_SIGN_URLS", false),
		},
		MetadataSource:       source,
		MetadataURL:          getEnv("METADATA_URL", DefaultMetadataURL),
		MetadataFetchTimeout: getEnvSeconds("METADATA_FETCH_TIMEOUT", 30*time.Second),
		RedisHost:            getEnv("REDIS_HOST", ""),
		RedisPort:            getEnv("REDIS_PORT", "6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvInt("REDIS_DB", 0),
		CatalogTTL:           getEnvSeconds("CATALOG_CACHE_TTL", time.Hour),
		MinioEndpoint:        getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey:       os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:       os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:          getEnv("MINIO_BUCKET", "hzfm"),
		MinioObject:          getEnv("MINIO_OBJECT", "meta/tracks.csv"),
		MinioUseSSL:          getEnvBool("MINIO_USE_SSL", false),
		MinioRegion:          getEnv("MINIO_REGION", ""),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFile:              getEnv("LOG_FILE", ""),
	}
}

// RedisEnabled reports whether the shared snapshot cache is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}
