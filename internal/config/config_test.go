package config

import (
	"os"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// 1. Setup Required Envs (to bypass validation)
	required := map[string]string{
		"APCA_API_KEY_ID":     "test_key",
		"APCA_API_SECRET_KEY": "test_secret",
		"GOOGLE_CREDS_JSON":   `{"type":"service_account"}`,
		"SPREADSHEET_ID":      "test_sheet_id",
	}

	for k, v := range required {
		os.Setenv(k, v)
		defer os.Unsetenv(k) // Clean up
	}

	// 2. Ensure Optional Envs are Unset
	optionals := []string{
		"WORKSHEET_NAME",
		"POLL_SECONDS",
		"STOP_LOSS_PCT",
		"PROFIT_ARM_PCT",
		"TRAIL_PCT",
		"MAX_LOG_SIZE_MB",
		"MAX_LOG_BACKUPS",
	}

	for _, k := range optionals {
		os.Unsetenv(k)
	}

	// 3. Load Config
	cfg := Load()

	// 4. Verify Defaults
	if cfg.WorksheetName != "Alpaca Integration" {
		t.Errorf("Expected WorksheetName 'Alpaca Integration', got '%s'", cfg.WorksheetName)
	}

	if cfg.PollSeconds != 60 {
		t.Errorf("Expected PollSeconds 60, got %d", cfg.PollSeconds)
	}

	if cfg.StopLossPct != 3.0 {
		t.Errorf("Expected StopLossPct 3.0, got %f", cfg.StopLossPct)
	}

	if cfg.ProfitArmPct != 5.0 {
		t.Errorf("Expected ProfitArmPct 5.0, got %f", cfg.ProfitArmPct)
	}

	if cfg.TrailPct != 2.0 {
		t.Errorf("Expected TrailPct 2.0, got %f", cfg.TrailPct)
	}

	if cfg.MaxLogSizeMB != 10 {
		t.Errorf("Expected MaxLogSizeMB 10, got %d", cfg.MaxLogSizeMB)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	envs := map[string]string{
		"APCA_API_KEY_ID":     "test_key",
		"APCA_API_SECRET_KEY": "test_secret",
		"GOOGLE_CREDS_JSON":   `{"type":"service_account"}`,
		"SPREADSHEET_ID":      "test_sheet_id",
		"POLL_SECONDS":        "15",
		"STOP_LOSS_PCT":       "4.5",
		"TRAIL_PCT":           "1.25",
	}

	for k, v := range envs {
		os.Setenv(k, v)
		defer os.Unsetenv(k)
	}

	cfg := Load()

	if cfg.PollSeconds != 15 {
		t.Errorf("Expected PollSeconds 15, got %d", cfg.PollSeconds)
	}
	if cfg.StopLossPct != 4.5 {
		t.Errorf("Expected StopLossPct 4.5, got %f", cfg.StopLossPct)
	}
	if cfg.TrailPct != 1.25 {
		t.Errorf("Expected TrailPct 1.25, got %f", cfg.TrailPct)
	}
}
