package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token-123")
	t.Setenv("BOT_PERSONALITIES", "FordBot,AprilBot")
	t.Setenv("TICK_INTERVAL", "10s")
	t.Setenv("HOURLY_REPLY_QUOTA", "6")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "token-123", cfg.DiscordToken)
	assert.Equal(t, []string{"FordBot", "AprilBot"}, cfg.BotPersonalities)
	assert.Equal(t, 10*time.Second, cfg.TickInterval)
	assert.Equal(t, 6, cfg.HourlyReplyQuota)
}

func TestNewDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token-123")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, []string{"FordBot"}, cfg.BotPersonalities)
	assert.Equal(t, "datastore.json", cfg.StoragePath)
	assert.Equal(t, 5*time.Second, cfg.TickInterval)
	assert.Equal(t, 45*time.Second, cfg.ReplyCooldown)
	assert.Equal(t, 12, cfg.HourlyReplyQuota)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Zero(t, cfg.RandomSeed)
}

func TestNewRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	os.Unsetenv("DISCORD_TOKEN")

	_, err := New()
	assert.Error(t, err)
}

func TestLoadRosterBuiltinsOnly(t *testing.T) {
	roster, err := LoadRoster("")
	require.NoError(t, err)
	assert.Equal(t, []string{"AprilBot", "AdamBot", "FordBot"}, roster.Names())
}

func TestLoadRosterFileOverridesBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personalities.yaml")
	yaml := `
personalities:
  - name: FordBot
    punctuation: "!"
    base_probability: 0.2
    escalation_chance: 0.9
  - name: NewBot
    punctuation: "."
    base_probability: 0.01
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	roster, err := LoadRoster(path)
	require.NoError(t, err)

	// Order keeps the built-ins first, new identities appended.
	assert.Equal(t, []string{"AprilBot", "AdamBot", "FordBot", "NewBot"}, roster.Names())

	ford := roster.Get("FordBot")
	assert.Equal(t, 0.2, ford.BaseProbability)
	assert.Equal(t, "!", ford.Punctuation)

	assert.Equal(t, 0.01, roster.Get("NewBot").BaseProbability)
}

func TestLoadRosterMissingFile(t *testing.T) {
	_, err := LoadRoster(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
