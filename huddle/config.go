package huddle

import (
	"time"

	"github.com/spf13/viper"

	"github.com/bitmark-inc/huddle-api/consts"
	"github.com/bitmark-inc/huddle-api/schema"
)

// Config is everything the lifecycle needs that is not a collaborator
type Config struct {
	// CloseAfter is the lifetime of a session channel
	CloseAfter time.Duration

	// StaleGrace is how long after CloseAfter the sweep waits before closing
	// a request whose expiry job never ran
	StaleGrace time.Duration

	ChannelPrefixes map[schema.Kind]string
	PrivateChannels bool

	Language string
	Timezone string

	SweepCron         string
	DirectorySyncCron string
}

func DefaultConfig() Config {
	return Config{
		CloseAfter: consts.DefaultCloseAfter,
		StaleGrace: consts.DefaultStaleGrace,
		ChannelPrefixes: map[schema.Kind]string{
			schema.KindCommunication: consts.DefaultCommunicationPrefix,
			schema.KindHelp:          consts.DefaultHelpPrefix,
		},
		Language:          consts.DefaultLanguage,
		Timezone:          consts.DefaultTimezone,
		SweepCron:         consts.DefaultSweepCron,
		DirectorySyncCron: consts.DefaultDirectorySyncCron,
	}
}

// NewConfigFromViper reads the `huddle.*` keys on top of DefaultConfig
func NewConfigFromViper() Config {
	c := DefaultConfig()

	if d := viper.GetDuration("huddle.close_after"); d > 0 {
		c.CloseAfter = d
	}
	if d := viper.GetDuration("huddle.stale_grace"); d > 0 {
		c.StaleGrace = d
	}
	if p := viper.GetString("huddle.prefix.communication"); p != "" {
		c.ChannelPrefixes[schema.KindCommunication] = p
	}
	if p := viper.GetString("huddle.prefix.help"); p != "" {
		c.ChannelPrefixes[schema.KindHelp] = p
	}
	c.PrivateChannels = viper.GetBool("huddle.private_channels")
	if l := viper.GetString("huddle.language"); l != "" {
		c.Language = l
	}
	if tz := viper.GetString("huddle.timezone"); tz != "" {
		c.Timezone = tz
	}
	if s := viper.GetString("huddle.sweep_cron"); s != "" {
		c.SweepCron = s
	}
	if s := viper.GetString("huddle.directory_sync_cron"); s != "" {
		c.DirectorySyncCron = s
	}

	return c
}

func (c Config) prefix(kind schema.Kind) string {
	if p, ok := c.ChannelPrefixes[kind]; ok && p != "" {
		return p
	}
	return string(kind)
}
