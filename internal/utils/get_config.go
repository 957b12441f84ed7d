package utils

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server
	AppEnv      string `yaml:"APP_ENV"`
	AppPort     string `yaml:"APP_PORT"`
	AppURL      string `yaml:"APP_URL"`
	FrontendURL string `yaml:"FRONTEND_URL"`
	CORSOrigins string `yaml:"CORS_ORIGINS"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`
	DBTimeZone string `yaml:"DB_TIMEZONE"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Bootstrap admin, created or promoted at startup
	AdminEmail    string `yaml:"ADMIN_EMAIL"`
	AdminPassword string `yaml:"ADMIN_PASSWORD"`
	AdminName     string `yaml:"ADMIN_NAME"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Web push
	VapidPublicKey  string `yaml:"VAPID_PUBLIC_KEY"`
	VapidPrivateKey string `yaml:"VAPID_PRIVATE_KEY"`
	VapidEmail      string `yaml:"VAPID_EMAIL"`

	// OAuth providers
	GoogleClientID      string `yaml:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret  string `yaml:"GOOGLE_CLIENT_SECRET"`
	GoogleCallbackURL   string `yaml:"GOOGLE_CALLBACK_URL"`
	FacebookAppID       string `yaml:"FACEBOOK_APP_ID"`
	FacebookAppSecret   string `yaml:"FACEBOOK_APP_SECRET"`
	FacebookCallbackURL string `yaml:"FACEBOOK_CALLBACK_URL"`
}

var (
	config   Config
	loadOnce sync.Once
	mu       sync.RWMutex
)

var defaults = map[string]string{
	"APP_ENV":      "development",
	"APP_PORT":     "5000",
	"FRONTEND_URL": "http://localhost:5173",
	"CORS_ORIGINS": "http://localhost:5173",
	"DB_SSLMODE":   "disable",
	"DB_TIMEZONE":  "Asia/Jakarta",
	"VAPID_EMAIL":  "mailto:admin@volunteerhub.com",
}

// LoadConfig reads config.yaml, then .env, then the process environment; later sources win.
// It runs once per process.
func LoadConfig() {
	loadOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()

		file, err := os.ReadFile("config.yaml")
		if err != nil {
			log.Printf("Error reading YAML file: %s\n", err)
		} else if err := yaml.Unmarshal(file, &config); err != nil {
			log.Printf("Error parsing YAML file: %s\n", err)
		}

		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("Error loading .env file: %s\n", err)
		}

		for key, field := range config.fields() {
			if v, ok := os.LookupEnv(key); ok && v != "" {
				*field = v
			}
			if *field == "" {
				*field = defaults[key]
			}
		}
	})
}

func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"APP_ENV":               &c.AppEnv,
		"APP_PORT":              &c.AppPort,
		"APP_URL":               &c.AppURL,
		"FRONTEND_URL":          &c.FrontendURL,
		"CORS_ORIGINS":          &c.CORSOrigins,
		"DB_USER":               &c.DBUser,
		"DB_NAME":               &c.DBName,
		"DB_PASSWORD":           &c.DBPassword,
		"DB_PORT":               &c.DBPort,
		"DB_HOST":               &c.DBHost,
		"DB_SSLMODE":            &c.DBSSLMode,
		"DB_TIMEZONE":           &c.DBTimeZone,
		"JWT_SECRET":            &c.JWTSecret,
		"ADMIN_EMAIL":           &c.AdminEmail,
		"ADMIN_PASSWORD":        &c.AdminPassword,
		"ADMIN_NAME":            &c.AdminName,
		"SMTP_HOST":             &c.SMTPHost,
		"SMTP_PORT":             &c.SMTPPort,
		"SMTP_SENDER_NAME":      &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":       &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD":    &c.SMTPAuthPassword,
		"AWS_S3_BUCKET":         &c.AWSS3Bucket,
		"AWS_S3_REGION":         &c.AWSS3Region,
		"AWS_ACCESS_KEY":        &c.AWSAccessKey,
		"AWS_SECRET_KEY":        &c.AWSSecretKey,
		"VAPID_PUBLIC_KEY":      &c.VapidPublicKey,
		"VAPID_PRIVATE_KEY":     &c.VapidPrivateKey,
		"VAPID_EMAIL":           &c.VapidEmail,
		"GOOGLE_CLIENT_ID":      &c.GoogleClientID,
		"GOOGLE_CLIENT_SECRET":  &c.GoogleClientSecret,
		"GOOGLE_CALLBACK_URL":   &c.GoogleCallbackURL,
		"FACEBOOK_APP_ID":       &c.FacebookAppID,
		"FACEBOOK_APP_SECRET":   &c.FacebookAppSecret,
		"FACEBOOK_CALLBACK_URL": &c.FacebookCallbackURL,
	}
}

func GetConfig(key string) string {
	mu.RLock()
	defer mu.RUnlock()
	if field, ok := config.fields()[key]; ok {
		return *field
	}
	return ""
}

// SetConfig overrides a single key after loading.
func SetConfig(key, value string) {
	mu.Lock()
	defer mu.Unlock()
	if field, ok := config.fields()[key]; ok {
		*field = value
	}
}
