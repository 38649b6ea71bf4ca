// Package broadcast builds the configured eventsub.Broadcaster.
package broadcast

import (
	"fmt"

	"github.com/marcelsud/twitch-relay/broadcast/nats"
	"github.com/marcelsud/twitch-relay/broadcast/pusher"
	"github.com/marcelsud/twitch-relay/broadcast/redis"
	"github.com/marcelsud/twitch-relay/config"
	"github.com/marcelsud/twitch-relay/eventsub"
)

// New connects the broadcaster selected by cfg.BroadcastDriver
func New(cfg *config.Config) (eventsub.Broadcaster, error) {
	if err := cfg.ValidateBroadcast(); err != nil {
		return nil, err
	}

	var (
		b   eventsub.Broadcaster
		err error
	)
	switch cfg.BroadcastDriver {
	case config.DriverRedis:
		b, err = redis.NewBroadcaster(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case config.DriverNATS:
		b, err = nats.NewBroadcaster(nats.DefaultConfig(cfg.NATSURL))
	case config.DriverPusher:
		b, err = pusher.NewBroadcaster(pusher.Config{
			AppID:   cfg.PusherAppID,
			Key:     cfg.PusherKey,
			Secret:  cfg.PusherSecret,
			Cluster: cfg.PusherCluster,
			Secure:  true,
		})
	default:
		return nil, fmt.Errorf("unsupported broadcast driver %q", cfg.BroadcastDriver)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}
