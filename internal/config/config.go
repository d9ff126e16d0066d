package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const prodString = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	DBDSN        string
	StoragePath  string

	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// Default charter business rules; blackout periods come from the database.
	MinCharterDuration    time.Duration
	MaxCharterDuration    time.Duration
	MinAdvanceNotice      time.Duration
	MinTurnaround         time.Duration
	RecommendedTurnaround time.Duration
	HighOverlapRatio      float64
	TreatPendingAsSoft    bool
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == prodString

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.StoragePath = getEnv("STORAGE_PATH", "./uploads")

	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	ttl, err := time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// Charter rule defaults. Durations are expressed in hours since that is
	// the unit the charter office thinks in.
	minHours, err := getEnvAsInt("MIN_CHARTER_HOURS", 4)
	if err != nil {
		return nil, fmt.Errorf("invalid MIN_CHARTER_HOURS: %w", err)
	}
	cfg.MinCharterDuration = time.Duration(minHours) * time.Hour

	maxHours, err := getEnvAsInt("MAX_CHARTER_HOURS", 24*30)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_CHARTER_HOURS: %w", err)
	}
	cfg.MaxCharterDuration = time.Duration(maxHours) * time.Hour

	noticeHours, err := getEnvAsInt("MIN_ADVANCE_NOTICE_HOURS", 48)
	if err != nil {
		return nil, fmt.Errorf("invalid MIN_ADVANCE_NOTICE_HOURS: %w", err)
	}
	cfg.MinAdvanceNotice = time.Duration(noticeHours) * time.Hour

	turnaroundHours, err := getEnvAsInt("MIN_TURNAROUND_HOURS", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid MIN_TURNAROUND_HOURS: %w", err)
	}
	cfg.MinTurnaround = time.Duration(turnaroundHours) * time.Hour

	recommendedHours, err := getEnvAsInt("RECOMMENDED_TURNAROUND_HOURS", 4)
	if err != nil {
		return nil, fmt.Errorf("invalid RECOMMENDED_TURNAROUND_HOURS: %w", err)
	}
	cfg.RecommendedTurnaround = time.Duration(recommendedHours) * time.Hour

	cfg.HighOverlapRatio, err = getEnvAsFloat("HIGH_OVERLAP_RATIO", 0.5)
	if err != nil {
		return nil, fmt.Errorf("invalid HIGH_OVERLAP_RATIO: %w", err)
	}
	if cfg.HighOverlapRatio <= 0 || cfg.HighOverlapRatio > 1 {
		return nil, fmt.Errorf("HIGH_OVERLAP_RATIO must be in (0, 1], got %v", cfg.HighOverlapRatio)
	}

	cfg.TreatPendingAsSoft, err = getEnvAsBool("TREAT_PENDING_AS_SOFT", false)
	if err != nil {
		return nil, fmt.Errorf("invalid TREAT_PENDING_AS_SOFT: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer, falling back
// to the default when unset. A set but non-numeric value is an error.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsBool retrieves an environment variable as a bool, falling back
// to the default when unset.
func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("env %s value %q is not a valid bool: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsFloat retrieves an environment variable as a float64, falling back
// to the default when unset.
func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid number: %w", key, valStr, err)
	}

	return val, nil
}
