package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/desk-scheduler/internal/domain/booking"
	"github.com/example/desk-scheduler/internal/infrastructure/crypto"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DESKSCHED_EMAIL", "user@example.com")
	t.Setenv("DESKSCHED_PASSWORD", "hunter2")
	// Clear anything the host environment might carry.
	for _, k := range []string{
		"DESKSCHED_LOCATION", "DESKSCHED_DAYS", "DESKSCHED_WEEKS_AHEAD",
		"DESKSCHED_TRIGGER_TIME", "DESKSCHED_HEADLESS", "DESKSCHED_PORTAL_URL",
		"DESKSCHED_LEDGER", "DESKSCHED_RETRY_ATTEMPTS", "DESKSCHED_RETRY_DELAY",
		"DESKSCHED_PASSWORD_ENC", "DESKSCHED_CRED_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", cfg.Credentials.Email)
	assert.Equal(t, "hunter2", cfg.Credentials.Password)
	assert.Equal(t, "10 York Road", cfg.Location)
	assert.Equal(t, booking.NewWeekdaySet(time.Wednesday, time.Thursday), cfg.Days)
	assert.Equal(t, 2, cfg.WeeksAhead)
	assert.Equal(t, "09:00", cfg.TriggerTime)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, 5*time.Second, cfg.RetryDelay)
}

func TestFromEnvMissingCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("DESKSCHED_EMAIL", "")

	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrConfiguration)

	setRequired(t)
	t.Setenv("DESKSCHED_PASSWORD", "")

	_, err = FromEnv()
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestFromEnvValidation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "zero weeks", key: "DESKSCHED_WEEKS_AHEAD", val: "0"},
		{name: "negative weeks", key: "DESKSCHED_WEEKS_AHEAD", val: "-1"},
		{name: "weeks not a number", key: "DESKSCHED_WEEKS_AHEAD", val: "two"},
		{name: "unknown weekday", key: "DESKSCHED_DAYS", val: "wednesday,blursday"},
		{name: "malformed trigger", key: "DESKSCHED_TRIGGER_TIME", val: "25:00"},
		{name: "trigger missing minutes", key: "DESKSCHED_TRIGGER_TIME", val: "9"},
		{name: "zero retry attempts", key: "DESKSCHED_RETRY_ATTEMPTS", val: "0"},
		{name: "bad retry delay", key: "DESKSCHED_RETRY_DELAY", val: "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.val)

			_, err := FromEnv()
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestFromEnvEncryptedPassword(t *testing.T) {
	setRequired(t)
	t.Setenv("DESKSCHED_PASSWORD", "")

	keyB64, err := crypto.NewKey()
	require.NoError(t, err)
	key, err := decodeB64(keyB64)
	require.NoError(t, err)
	aead, err := crypto.New(key)
	require.NoError(t, err)
	enc, err := aead.Encrypt("s3cret")
	require.NoError(t, err)

	t.Setenv("DESKSCHED_CRED_KEY", keyB64)
	t.Setenv("DESKSCHED_PASSWORD_ENC", enc)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Credentials.Password)
}

func TestFromEnvEncryptedPasswordNeedsKey(t *testing.T) {
	setRequired(t)
	t.Setenv("DESKSCHED_PASSWORD", "")
	t.Setenv("DESKSCHED_PASSWORD_ENC", "AAAA")

	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestWindowAnchorsAtRunStart(t *testing.T) {
	setRequired(t)
	cfg, err := FromEnv()
	require.NoError(t, err)

	w := cfg.Window()
	assert.True(t, w.Start.IsZero(), "window start stays open so each run resolves against its own today")
	assert.Equal(t, cfg.Days, w.Days)
	assert.Equal(t, cfg.WeeksAhead, w.WeeksAhead)
}
