package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	MongoURI         string
	MongoDatabase    string
	JWTSecret        string
	JWTRefreshSecret string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration
	FrontendURL      string
	AllowedOrigins   []string
	LLMServiceURL    string

	// Mail delivery. When PostmarkServerToken is empty the server falls
	// back to the dev sender, which writes mail to MailOutputDir.
	PostmarkServerToken  string
	PostmarkAccountToken string
	SenderEmail          string
	MailOutputDir        string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	accessExpiry := 15 * time.Minute
	if exp := os.Getenv("JWT_ACCESS_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			accessExpiry = parsed
		}
	}

	refreshExpiry := 168 * time.Hour // 7 days
	if exp := os.Getenv("JWT_REFRESH_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			refreshExpiry = parsed
		}
	}

	frontendURL := getEnv("FRONTEND_URL", "http://localhost:5173")

	origins := []string{frontendURL}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		MongoURI:             getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:        getEnv("MONGODB_DATABASE", "sathee"),
		JWTSecret:            getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTRefreshSecret:     getEnv("JWT_REFRESH_SECRET", "your-refresh-secret-change-in-production"),
		JWTAccessExpiry:      accessExpiry,
		JWTRefreshExpiry:     refreshExpiry,
		FrontendURL:          frontendURL,
		AllowedOrigins:       origins,
		LLMServiceURL:        getEnv("LLM_SERVICE_URL", "http://127.0.0.1:5000"),
		PostmarkServerToken:  getEnv("POSTMARK_SERVER_TOKEN", ""),
		PostmarkAccountToken: getEnv("POSTMARK_ACCOUNT_TOKEN", ""),
		SenderEmail:          getEnv("SENDER_EMAIL", "no-reply@sathee.local"),
		MailOutputDir:        getEnv("MAIL_OUTPUT_DIR", "./tmp/mail"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
