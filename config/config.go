package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config aggregates everything the portal reads from the environment.
type Config struct {
	Port      string
	MongoURI  string
	DBName    string
	JWTSecret string
	TokenTTL  time.Duration

	// Fee schedule in whole naira.
	RegistrationFee int
	AnnualDuesFee   int
	RenewalFee      int

	// Optional document auto-fill provider.
	OCRAPIURL string
	OCRAPIKey string
	OCRModel  string
}

// Load reads configuration from environment variables, applying defaults.
func Load() *Config {
	cfg := &Config{
		Port:            getenv("PORT", "8080"),
		MongoURI:        os.Getenv("MONGO_URI"),
		DBName:          getenv("DB_NAME", "nampd"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenTTL:        24 * time.Hour,
		RegistrationFee: getenvInt("REGISTRATION_FEE", 5000),
		AnnualDuesFee:   getenvInt("ANNUAL_DUES_FEE", 10000),
		RenewalFee:      getenvInt("RENEWAL_FEE", 10000),
		OCRAPIURL:       os.Getenv("OCR_API_URL"),
		OCRAPIKey:       os.Getenv("OCR_API_KEY"),
		OCRModel:        getenv("OCR_MODEL", "gpt-4o-mini"),
	}

	if cfg.JWTSecret == "" {
		log.Println("JWT_SECRET not set, using insecure development secret")
		cfg.JWTSecret = "dev_secret_change_me"
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
