package config

import "os"

type Config struct {
	// Server
	Port           string
	AllowedOrigins string

	// Gateway auth
	ServiceToken string

	// Database
	DatabaseURL string

	// Cache
	RedisURL string

	// Collaborators
	AuthServiceURL   string
	AuthServiceToken string
	TrailServiceURL  string

	// Profile pictures
	UploadDir string

	// Optional R2/S3 backend for profile pictures
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2Bucket          string
	CDNBaseURL        string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8300"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		ServiceToken: os.Getenv("PROFILE_SERVICE_TOKEN"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		RedisURL: os.Getenv("REDIS_URL"),

		AuthServiceURL:   getEnv("AUTH_SERVICE_URL", "http://localhost:8080"),
		AuthServiceToken: os.Getenv("AUTH_SERVICE_TOKEN"),
		TrailServiceURL:  os.Getenv("TRAIL_SERVICE_URL"),

		UploadDir: getEnv("UPLOAD_DIR", "uploads/profile-pictures"),

		R2AccountID:       os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2AccessKeySecret: os.Getenv("R2_ACCESS_KEY_SECRET"),
		R2Bucket:          os.Getenv("R2_BUCKET_NAME"),
		CDNBaseURL:        os.Getenv("CDN_BASE_URL"),
	}
}

// R2Enabled reports whether the object-storage backend is fully configured.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2AccessKeySecret != "" && c.R2Bucket != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
