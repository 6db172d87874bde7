package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret                  string
	JWTExpiryDuration          time.Duration
	JWTIssuer                  string
	RefreshTokenExpiryDuration time.Duration

	UploadDir      string
	UploadMaxBytes int64
	BulkBatchSize  int

	UploadSweepInterval time.Duration
	UploadSweepMaxAge   time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "invoice-backend")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("UPLOAD_MAX_BYTES", int64(10*1024*1024))
	viper.SetDefault("BULK_BATCH_SIZE", 100)
	viper.SetDefault("UPLOAD_SWEEP_INTERVAL", "1h")
	viper.SetDefault("UPLOAD_SWEEP_MAX_AGE", "24h")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	refreshExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshExpiryDuration, err := time.ParseDuration(refreshExpiryStr)
	if err != nil {
		refreshExpiryDuration = time.Hour * 24 * 7
		log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", refreshExpiryStr, refreshExpiryDuration)
	}
	cfg.RefreshTokenExpiryDuration = refreshExpiryDuration

	cfg.UploadDir = viper.GetString("UPLOAD_DIR")
	cfg.UploadMaxBytes = viper.GetInt64("UPLOAD_MAX_BYTES")

	cfg.BulkBatchSize = viper.GetInt("BULK_BATCH_SIZE")
	if cfg.BulkBatchSize <= 0 {
		cfg.BulkBatchSize = 100
		log.Println("Warning: BULK_BATCH_SIZE must be positive. Defaulting to 100.")
	}

	sweepIntervalStr := viper.GetString("UPLOAD_SWEEP_INTERVAL")
	sweepInterval, err := time.ParseDuration(sweepIntervalStr)
	if err != nil {
		sweepInterval = time.Hour
		log.Printf("Warning: Invalid value for UPLOAD_SWEEP_INTERVAL ('%s'). Defaulting to %s.\n", sweepIntervalStr, sweepInterval)
	}
	cfg.UploadSweepInterval = sweepInterval

	sweepMaxAgeStr := viper.GetString("UPLOAD_SWEEP_MAX_AGE")
	sweepMaxAge, err := time.ParseDuration(sweepMaxAgeStr)
	if err != nil {
		sweepMaxAge = 24 * time.Hour
		log.Printf("Warning: Invalid value for UPLOAD_SWEEP_MAX_AGE ('%s'). Defaulting to %s.\n", sweepMaxAgeStr, sweepMaxAge)
	}
	cfg.UploadSweepMaxAge = sweepMaxAge

	return cfg, nil
}
