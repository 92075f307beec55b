package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Init loads the .env file and fails fast when a required variable is absent.
func Init() {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	for _, key := range []string{"DB_DSN", "JWT_SECRET", "S3_BUCKET", "AWS_REGION"} {
		if os.Getenv(key) == "" {
			Logger.Fatal(key + " is not set")
		}
	}
}

// AppPort returns the HTTP listen port, defaulting to 5000.
func AppPort() string {
	if port := os.Getenv("APP_PORT"); port != "" {
		return port
	}
	return "5000"
}

// AllowedOrigin returns the frontend origin CORS is restricted to.
func AllowedOrigin() string {
	if origin := os.Getenv("FRONTEND_URL"); origin != "" {
		return origin
	}
	return "http://localhost:5173"
}

// UploadTimeout returns the bound on a single media upload call.
func UploadTimeout() time.Duration {
	if raw := os.Getenv("MEDIA_UPLOAD_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			return d
		}
		Logger.Warn("invalid MEDIA_UPLOAD_TIMEOUT, using default")
	}
	return 10 * time.Second
}
