package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/desk-scheduler/internal/domain/booking"
	"github.com/example/desk-scheduler/internal/infrastructure/crypto"
	"github.com/example/desk-scheduler/internal/scheduler"
)

// ErrConfiguration wraps every validation failure so callers can treat
// configuration problems as fatal at start, per policy: there is no
// sensible day to retry an invalid configuration against.
var ErrConfiguration = errors.New("invalid configuration")

// Config is the immutable value the core runs against. Loading and
// validating it happens here, once, before any run starts.
type Config struct {
	Credentials booking.Credentials
	Location    string

	Days       booking.WeekdaySet
	WeeksAhead int

	TriggerTime string
	Headless    bool

	PortalBaseURL string
	LedgerPath    string

	RetryAttempts int
	RetryDelay    time.Duration
}

// Window builds the booking window for a run. Start stays zero so the
// resolver anchors on the date current at run start, not at config load.
func (c Config) Window() booking.Window {
	return booking.Window{Days: c.Days, WeeksAhead: c.WeeksAhead}
}

func (c Config) Retry() booking.RetryPolicy {
	return booking.RetryPolicy{MaxAttempts: c.RetryAttempts, Delay: c.RetryDelay}
}

// FromEnv loads configuration from DESKSCHED_* environment variables.
// The password may be supplied in clear (DESKSCHED_PASSWORD) or AES-GCM
// encrypted (DESKSCHED_PASSWORD_ENC, decrypted with DESKSCHED_CRED_KEY;
// generate a key with `desksched keys`).
func FromEnv() (Config, error) {
	cfg := Config{
		Location:      envDefault("DESKSCHED_LOCATION", "10 York Road"),
		TriggerTime:   envDefault("DESKSCHED_TRIGGER_TIME", "09:00"),
		PortalBaseURL: envDefault("DESKSCHED_PORTAL_URL", "https://members.wework.com"),
		LedgerPath:    envDefault("DESKSCHED_LEDGER", "desksched.db"),
	}

	cfg.Credentials.Email = strings.TrimSpace(os.Getenv("DESKSCHED_EMAIL"))
	if cfg.Credentials.Email == "" {
		return Config{}, fmt.Errorf("%w: DESKSCHED_EMAIL is required", ErrConfiguration)
	}
	pw, err := loadPassword()
	if err != nil {
		return Config{}, err
	}
	cfg.Credentials.Password = pw

	days, err := booking.ParseWeekdays(envDefault("DESKSCHED_DAYS", "wednesday,thursday"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: DESKSCHED_DAYS: %v", ErrConfiguration, err)
	}
	cfg.Days = days

	weeks, err := strconv.Atoi(envDefault("DESKSCHED_WEEKS_AHEAD", "2"))
	if err != nil || weeks < 1 {
		return Config{}, fmt.Errorf("%w: DESKSCHED_WEEKS_AHEAD must be an integer >= 1", ErrConfiguration)
	}
	cfg.WeeksAhead = weeks

	if _, err := scheduler.ParseTrigger(cfg.TriggerTime); err != nil {
		return Config{}, fmt.Errorf("%w: DESKSCHED_TRIGGER_TIME: %v", ErrConfiguration, err)
	}

	cfg.Headless = envDefault("DESKSCHED_HEADLESS", "true") == "true"

	attempts, err := strconv.Atoi(envDefault("DESKSCHED_RETRY_ATTEMPTS", "3"))
	if err != nil || attempts < 1 {
		return Config{}, fmt.Errorf("%w: DESKSCHED_RETRY_ATTEMPTS must be an integer >= 1", ErrConfiguration)
	}
	cfg.RetryAttempts = attempts

	delay, err := time.ParseDuration(envDefault("DESKSCHED_RETRY_DELAY", "5s"))
	if err != nil || delay < 0 {
		return Config{}, fmt.Errorf("%w: DESKSCHED_RETRY_DELAY must be a non-negative duration", ErrConfiguration)
	}
	cfg.RetryDelay = delay

	return cfg, nil
}

func loadPassword() (string, error) {
	if pw := os.Getenv("DESKSCHED_PASSWORD"); pw != "" {
		return pw, nil
	}
	enc := strings.TrimSpace(os.Getenv("DESKSCHED_PASSWORD_ENC"))
	if enc == "" {
		return "", fmt.Errorf("%w: DESKSCHED_PASSWORD or DESKSCHED_PASSWORD_ENC is required", ErrConfiguration)
	}
	keyB64 := strings.TrimSpace(os.Getenv("DESKSCHED_CRED_KEY"))
	if keyB64 == "" {
		return "", fmt.Errorf("%w: DESKSCHED_CRED_KEY is required to decrypt DESKSCHED_PASSWORD_ENC", ErrConfiguration)
	}
	key, err := decodeB64(keyB64)
	if err != nil {
		return "", fmt.Errorf("%w: DESKSCHED_CRED_KEY: %v", ErrConfiguration, err)
	}
	aead, err := crypto.New(key)
	if err != nil {
		return "", fmt.Errorf("%w: DESKSCHED_CRED_KEY: %v", ErrConfiguration, err)
	}
	pw, err := aead.Decrypt(enc)
	if err != nil {
		return "", fmt.Errorf("%w: DESKSCHED_PASSWORD_ENC: %v", ErrConfiguration, err)
	}
	return pw, nil
}

func envDefault(k, d string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	return v
}

func decodeB64(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
