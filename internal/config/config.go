package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Mongo struct {
	URI      string
	Database string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	// PublicURL is the base under which uploaded objects are reachable,
	// e.g. http://localhost:9000/propertypulse.
	PublicURL string
	// Folder is the namespace prefix for uploaded listing images.
	Folder string
}

type Google struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type Cache struct {
	MemcachedHost string
	TTL           time.Duration
}

type Config struct {
	ServerPort      int
	Mongo           Mongo
	MinIO           MinIO
	Google          Google
	Cache           Cache
	JWTSecretKey    string
	SessionDuration time.Duration
	MaxUploadSize   int64
	// SiteURL is the canonical site origin, used for post-submit redirects.
	SiteURL string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadMongo() Mongo {
	return Mongo{
		URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		Database: getEnv("MONGODB_DATABASE", "propertypulse"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "propertypulse"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", "http://localhost:9000/propertypulse"),
		Folder:     getEnv("MINIO_FOLDER", "properties"),
	}
}

func LoadGoogle() Google {
	return Google{
		ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		RedirectURL:  getEnv("OAUTH_REDIRECT_URL", "http://localhost:8080/auth/google/callback"),
	}
}

func LoadCache() Cache {
	return Cache{
		MemcachedHost: getEnv("MEMCACHED_HOST", "localhost:11211"),
		TTL:           parseDuration(getEnv("CACHE_TTL", "5m"), 5*time.Minute),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:      getEnvAsInt("SERVER_PORT", 8080),
		Mongo:           LoadMongo(),
		MinIO:           LoadMinIO(),
		Google:          LoadGoogle(),
		Cache:           LoadCache(),
		JWTSecretKey:    getEnv("JWT_SECRET_KEY", ""),
		SessionDuration: parseDuration(getEnv("SESSION_DURATION", "720h"), 720*time.Hour),
		MaxUploadSize:   getEnvAsInt64("MAX_UPLOAD_SIZE", 10*1024*1024),
		SiteURL:         getEnv("SITE_URL", "http://localhost:3000"),
	}
}
