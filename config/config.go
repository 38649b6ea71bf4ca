package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

/* Config is a helper package, read once at process start
 * Values come from the environment, optionally from a .env TOML file in the
 * working directory. The environment wins.
 */

// Broadcast drivers
const (
	DriverPusher = "pusher"
	DriverRedis  = "redis"
	DriverNATS   = "nats"
)

type Config struct {
	Port string `mapstructure:"PORT"`

	PusherAppID   string `mapstructure:"PUSHER_APP_ID"`
	PusherKey     string `mapstructure:"PUSHER_KEY"`
	PusherSecret  string `mapstructure:"PUSHER_SECRET"`
	PusherCluster string `mapstructure:"PUSHER_CLUSTER"`

	TwitchClientID     string `mapstructure:"TWITCH_CLIENT_ID"`
	TwitchClientSecret string `mapstructure:"TWITCH_CLIENT_SECRET"`
	TwitchAPIURL       string `mapstructure:"TWITCH_API_URL"`
	TwitchTokenURL     string `mapstructure:"TWITCH_TOKEN_URL"`

	// WebhookSecret signs every delivery, shared with the upstream on subscribe
	WebhookSecret string `mapstructure:"MY_TWITCH_SECRET"`
	TargetChannel string `mapstructure:"TARGET_CHANNEL"`
	CallbackURL   string `mapstructure:"CALLBACK_URL"`
	DebugCallback bool   `mapstructure:"DEBUG_CALLBACK"`

	BroadcastDriver string `mapstructure:"BROADCAST_DRIVER"`
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int    `mapstructure:"REDIS_DB"`
	NATSURL         string `mapstructure:"NATS_URL"`

	EventsFile string `mapstructure:"EVENTS_FILE"`
}

var defaults = map[string]any{
	"PORT":             "8080",
	"TWITCH_API_URL":   "https://api.twitch.tv/helix",
	"TWITCH_TOKEN_URL": "https://id.twitch.tv/oauth2/token",
	"DEBUG_CALLBACK":   false,
	"BROADCAST_DRIVER": DriverPusher,
	"REDIS_ADDR":       "localhost:6379",
	"REDIS_DB":         0,
	"NATS_URL":         "nats://localhost:4222",
}

var keys = []string{
	"PUSHER_APP_ID", "PUSHER_KEY", "PUSHER_SECRET", "PUSHER_CLUSTER",
	"TWITCH_CLIENT_ID", "TWITCH_CLIENT_SECRET",
	"MY_TWITCH_SECRET", "TARGET_CHANNEL", "CALLBACK_URL",
	"REDIS_PASSWORD", "EVENTS_FILE",
}

func GetConfig() (*Config, error) {
	return Load(viper.New(), ".")
}

// Load reads configuration into v, looking for .env in path
func Load(v *viper.Viper, path string) (*Config, error) {
	v.SetConfigName(".env")
	v.SetConfigType("toml")
	v.AddConfigPath(path)
	v.AutomaticEnv()

	// Unmarshal only sees keys viper knows about
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	err = v.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	config.BroadcastDriver = strings.ToLower(strings.TrimSpace(config.BroadcastDriver))
	return &config, nil
}

// ValidateTwitch checks what is needed to talk to the Helix API
func (c *Config) ValidateTwitch() error {
	return required(map[string]string{
		"TWITCH_CLIENT_ID":     c.TwitchClientID,
		"TWITCH_CLIENT_SECRET": c.TwitchClientSecret,
		"MY_TWITCH_SECRET":     c.WebhookSecret,
		"TARGET_CHANNEL":       c.TargetChannel,
	})
}

// ValidateBroadcast checks the settings of the selected broadcast driver
func (c *Config) ValidateBroadcast() error {
	switch c.BroadcastDriver {
	case DriverPusher:
		return required(map[string]string{
			"PUSHER_APP_ID":  c.PusherAppID,
			"PUSHER_KEY":     c.PusherKey,
			"PUSHER_SECRET":  c.PusherSecret,
			"PUSHER_CLUSTER": c.PusherCluster,
		})
	case DriverRedis:
		return required(map[string]string{"REDIS_ADDR": c.RedisAddr})
	case DriverNATS:
		return required(map[string]string{"NATS_URL": c.NATSURL})
	default:
		return fmt.Errorf("invalid BROADCAST_DRIVER %q: valid drivers: %s, %s, %s",
			c.BroadcastDriver, DriverPusher, DriverRedis, DriverNATS)
	}
}

// Validate checks everything the API server needs
func (c *Config) Validate() error {
	if err := c.ValidateTwitch(); err != nil {
		return err
	}
	return c.ValidateBroadcast()
}

func required(values map[string]string) error {
	var missing []string
	for key, value := range values {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
}
