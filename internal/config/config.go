package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "TABLEBOOK"

type Config struct {
	Env      string
	LogLevel string
	// Location decides which calendar day "today" is.
	Location *time.Location

	// simulated booking API
	SubmitDelay       time.Duration
	SubmitSuccessRate float64

	// receipts are disabled when ReceiptSecret is empty
	ReceiptSecret []byte
	ReceiptMaxAge time.Duration
}

func (c Config) ReceiptsEnabled() bool { return len(c.ReceiptSecret) > 0 }

// FromEnv reads TABLEBOOK_* variables, an optional .env file and an optional
// tablebook.yaml in the working directory, in increasing order of precedence: file, .env, environment.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetConfigName("tablebook")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("timezone", "Local")
	v.SetDefault("submit_delay_ms", "1500")
	v.SetDefault("submit_success_rate", "0.9")
	v.SetDefault("receipt_secret", "")
	v.SetDefault("receipt_secret_file", "")
	v.SetDefault("receipt_max_age_hours", "720")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}
	return load(v)
}

func load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Env:      strings.TrimSpace(v.GetString("env")),
		LogLevel: strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
	}

	tz := strings.TrimSpace(v.GetString("timezone"))
	if tz == "" || strings.EqualFold(tz, "local") {
		cfg.Location = time.Local
	} else {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s_TIMEZONE: %w", envPrefix, err)
		}
		cfg.Location = loc
	}

	delayMS, err := strconv.Atoi(strings.TrimSpace(v.GetString("submit_delay_ms")))
	if err != nil || delayMS < 0 {
		return Config{}, fmt.Errorf("invalid %s_SUBMIT_DELAY_MS", envPrefix)
	}
	cfg.SubmitDelay = time.Duration(delayMS) * time.Millisecond

	rate, err := strconv.ParseFloat(strings.TrimSpace(v.GetString("submit_success_rate")), 64)
	if err != nil || rate < 0 || rate > 1 {
		return Config{}, fmt.Errorf("invalid %s_SUBMIT_SUCCESS_RATE (want 0..1)", envPrefix)
	}
	cfg.SubmitSuccessRate = rate

	maxAgeHours, err := strconv.Atoi(strings.TrimSpace(v.GetString("receipt_max_age_hours")))
	if err != nil || maxAgeHours < 1 {
		return Config{}, fmt.Errorf("invalid %s_RECEIPT_MAX_AGE_HOURS", envPrefix)
	}
	cfg.ReceiptMaxAge = time.Duration(maxAgeHours) * time.Hour

	raw := strings.TrimSpace(v.GetString("receipt_secret"))
	if path := strings.TrimSpace(v.GetString("receipt_secret_file")); path != "" {
		if raw != "" {
			return Config{}, fmt.Errorf("set only one of %[1]s_RECEIPT_SECRET and %[1]s_RECEIPT_SECRET_FILE", envPrefix)
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("%s_RECEIPT_SECRET_FILE: %w", envPrefix, err)
		}
		raw = strings.TrimSpace(string(b))
	}
	if raw != "" {
		secret, err := decodeB64(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s_RECEIPT_SECRET: %w", envPrefix, err)
		}
		if len(secret) < 16 {
			return Config{}, fmt.Errorf("%s_RECEIPT_SECRET must decode to at least 16 bytes (got %d)", envPrefix, len(secret))
		}
		cfg.ReceiptSecret = secret
	}

	return cfg, nil
}

func decodeB64(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
