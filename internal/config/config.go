package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every tunable the watcher reads at boot. Alpaca credentials
// (APCA_API_KEY_ID etc.) stay in the process environment because the SDK
// clients read them directly.
type Config struct {
	SpreadsheetID   string
	WorksheetName   string
	GoogleCredsJSON string

	PollSeconds  int
	StopLossPct  float64 // hard stop: sell when change <= -StopLossPct
	ProfitArmPct float64 // arm the trailing stop at this gain
	TrailPct     float64 // retreat from the high-water mark that fires a sell

	MaxLogSizeMB  int64
	MaxLogBackups int
}

// Load initializes the configuration.
// It tries to read a .env file and checks for necessary environment variables.
func Load() *Config {
	// Load .env variables into the process environment
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using system environment variables")
	}

	// Define which variables are critical and confidential.
	requiredSecretVars := map[string]bool{
		"APCA_API_KEY_ID":     true,
		"APCA_API_SECRET_KEY": true,
		"GOOGLE_CREDS_JSON":   true,
		"SPREADSHEET_ID":      false, // required but not secret
	}

	var missing []string
	for key := range requiredSecretVars {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		log.Fatalf("CRITICAL: Missing required environment variables: %v", missing)
	}

	// Print variables defined in .env, masking the confidential ones.
	envMap, err := godotenv.Read()
	if err == nil {
		log.Println("--- .env File Variables ---")
		for key, val := range envMap {
			if secret, ok := requiredSecretVars[key]; ok && secret {
				masked := "***"
				if len(val) > 4 {
					masked = "***" + val[len(val)-4:]
				}
				log.Printf("%s=%s", key, masked)
			} else {
				log.Printf("%s=%s", key, val)
			}
		}
		log.Println("---------------------------")
	}

	return &Config{
		SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
		WorksheetName:   getEnvAsString("WORKSHEET_NAME", "Alpaca Integration"),
		GoogleCredsJSON: os.Getenv("GOOGLE_CREDS_JSON"),

		PollSeconds:  getEnvAsInt("POLL_SECONDS", 60),
		StopLossPct:  getEnvAsFloat64("STOP_LOSS_PCT", 3.0),
		ProfitArmPct: getEnvAsFloat64("PROFIT_ARM_PCT", 5.0),
		TrailPct:     getEnvAsFloat64("TRAIL_PCT", 2.0),

		MaxLogSizeMB:  getEnvAsInt64("MAX_LOG_SIZE_MB", 10),
		MaxLogBackups: getEnvAsInt("MAX_LOG_BACKUPS", 3),
	}
}
