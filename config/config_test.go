package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marcelsud/twitch-relay/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "PUSHER_APP_ID", "PUSHER_KEY", "PUSHER_SECRET", "PUSHER_CLUSTER",
		"TWITCH_CLIENT_ID", "TWITCH_CLIENT_SECRET", "TWITCH_API_URL", "TWITCH_TOKEN_URL",
		"MY_TWITCH_SECRET", "TARGET_CHANNEL", "CALLBACK_URL", "DEBUG_CALLBACK",
		"BROADCAST_DRIVER", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "NATS_URL", "EVENTS_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a config file", func(t *testing.T) {
		clearEnv(t)

		cfg, err := config.Load(viper.New(), t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, config.DriverPusher, cfg.BroadcastDriver)
		assert.Equal(t, "https://api.twitch.tv/helix", cfg.TwitchAPIURL)
		assert.Equal(t, "https://id.twitch.tv/oauth2/token", cfg.TwitchTokenURL)
		assert.False(t, cfg.DebugCallback)
		assert.Empty(t, cfg.CallbackURL)
	})

	t.Run("environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "3000")
		t.Setenv("MY_TWITCH_SECRET", "s3cret")
		t.Setenv("TARGET_CHANNEL", "12826")
		t.Setenv("DEBUG_CALLBACK", "true")
		t.Setenv("BROADCAST_DRIVER", " Redis ")
		t.Setenv("REDIS_DB", "2")

		cfg, err := config.Load(viper.New(), t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, "s3cret", cfg.WebhookSecret)
		assert.Equal(t, "12826", cfg.TargetChannel)
		assert.True(t, cfg.DebugCallback)
		assert.Equal(t, config.DriverRedis, cfg.BroadcastDriver)
		assert.Equal(t, 2, cfg.RedisDB)
	})

	t.Run("env file, environment wins", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		content := `PORT = "9090"
TARGET_CHANNEL = "from-file"
PUSHER_CLUSTER = "eu"
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
		t.Setenv("TARGET_CHANNEL", "from-env")

		cfg, err := config.Load(viper.New(), dir)
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, "eu", cfg.PusherCluster)
		assert.Equal(t, "from-env", cfg.TargetChannel)
	})

	t.Run("error - unreadable env file", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT = = ="), 0o600))

		_, err := config.Load(viper.New(), dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config file")
	})
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			TwitchClientID:     "id",
			TwitchClientSecret: "secret",
			WebhookSecret:      "s3cret",
			TargetChannel:      "12826",
			BroadcastDriver:    config.DriverPusher,
			PusherAppID:        "1",
			PusherKey:          "key",
			PusherSecret:       "secret",
			PusherCluster:      "us2",
		}
	}

	t.Run("valid", func(t *testing.T) {
		cfg := valid()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing twitch settings are listed sorted", func(t *testing.T) {
		cfg := valid()
		cfg.WebhookSecret = ""
		cfg.TwitchClientID = " "

		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, "missing configuration: MY_TWITCH_SECRET, TWITCH_CLIENT_ID", err.Error())
	})

	t.Run("missing pusher settings", func(t *testing.T) {
		cfg := valid()
		cfg.PusherKey = ""

		err := cfg.ValidateBroadcast()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PUSHER_KEY")
	})

	t.Run("redis and nats drivers", func(t *testing.T) {
		cfg := valid()
		cfg.PusherKey = ""
		cfg.BroadcastDriver = config.DriverRedis
		cfg.RedisAddr = "localhost:6379"
		assert.NoError(t, cfg.ValidateBroadcast())

		cfg.BroadcastDriver = config.DriverNATS
		assert.Error(t, cfg.ValidateBroadcast())
		cfg.NATSURL = "nats://localhost:4222"
		assert.NoError(t, cfg.ValidateBroadcast())
	})

	t.Run("error - unknown driver", func(t *testing.T) {
		cfg := valid()
		cfg.BroadcastDriver = "kafka"

		err := cfg.ValidateBroadcast()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid BROADCAST_DRIVER "kafka"`)
	})
}
