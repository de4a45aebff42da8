package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Feed sources understood by the simulator.
const (
	FeedSourceScripted  = "scripted"
	FeedSourceKurrentDB = "kurrentdb"
)

type Config struct {
	Server     ServerConfig
	Simulation SimulationConfig
	KurrentDB  KurrentDBConfig
	RateLimit  RateLimitConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

// SimulationConfig controls how the workspace feed is driven.
type SimulationConfig struct {
	// FeedSource: "scripted" (fixture timers) or "kurrentdb" (subscription)
	FeedSource string
	// Speed divides every scripted delay; 2.0 plays the script twice as fast
	Speed float64
	// ConnectDelay is the decorative connecting -> connected transition
	ConnectDelay time.Duration
	// AutoStart starts the feed when the server boots
	AutoStart bool
}

// KurrentDBConfig holds configuration for KurrentDB (EventStoreDB).
type KurrentDBConfig struct {
	// Enabled mirrors applied alerts to KurrentDB and allows the kurrentdb feed
	Enabled bool
	// Host is the KurrentDB server hostname
	Host string
	// Port is the gRPC/HTTP port (default 2113)
	Port int
	// Insecure disables TLS (for development)
	Insecure bool
	// Username for authentication (optional)
	Username string
	// Password for authentication (optional)
	Password string
	// StreamPrefix is prepended to every stream name
	StreamPrefix string
}

type RateLimitConfig struct {
	RPS   int
	Burst int
}

type LogConfig struct {
	Level string
}

// IsDev reports whether the server runs in development mode.
func (c *Config) IsDev() bool {
	return c.Server.Env == "development"
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FEED_SOURCE", FeedSourceScripted)
	v.SetDefault("SIM_SPEED", 1.0)
	v.SetDefault("SIM_CONNECT_DELAY_MS", 600)
	v.SetDefault("SIM_AUTOSTART", true)
	v.SetDefault("KURRENTDB_ENABLED", false)
	v.SetDefault("KURRENTDB_HOST", "localhost")
	v.SetDefault("KURRENTDB_PORT", 2113)
	v.SetDefault("KURRENTDB_INSECURE", true)
	v.SetDefault("KURRENTDB_USERNAME", "")
	v.SetDefault("KURRENTDB_PASSWORD", "")
	v.SetDefault("KURRENTDB_STREAM_PREFIX", "caseroom")
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)

	// Missing .env is fine; the environment still applies.
	_ = v.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Env:  v.GetString("ENV"),
		},
		Simulation: SimulationConfig{
			FeedSource:   v.GetString("FEED_SOURCE"),
			Speed:        v.GetFloat64("SIM_SPEED"),
			ConnectDelay: time.Duration(v.GetInt("SIM_CONNECT_DELAY_MS")) * time.Millisecond,
			AutoStart:    v.GetBool("SIM_AUTOSTART"),
		},
		KurrentDB: KurrentDBConfig{
			Enabled:      v.GetBool("KURRENTDB_ENABLED"),
			Host:         v.GetString("KURRENTDB_HOST"),
			Port:         v.GetInt("KURRENTDB_PORT"),
			Insecure:     v.GetBool("KURRENTDB_INSECURE"),
			Username:     v.GetString("KURRENTDB_USERNAME"),
			Password:     v.GetString("KURRENTDB_PASSWORD"),
			StreamPrefix: v.GetString("KURRENTDB_STREAM_PREFIX"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetInt("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a workspace.
func (c *Config) Validate() error {
	switch c.Simulation.FeedSource {
	case FeedSourceScripted:
	case FeedSourceKurrentDB:
		if !c.KurrentDB.Enabled {
			return fmt.Errorf("FEED_SOURCE=%s requires KURRENTDB_ENABLED=true", FeedSourceKurrentDB)
		}
	default:
		return fmt.Errorf("FEED_SOURCE must be %q or %q, got %q",
			FeedSourceScripted, FeedSourceKurrentDB, c.Simulation.FeedSource)
	}

	if c.Simulation.Speed <= 0 {
		return fmt.Errorf("SIM_SPEED must be positive, got %v", c.Simulation.Speed)
	}
	if c.Simulation.ConnectDelay < 0 {
		return fmt.Errorf("SIM_CONNECT_DELAY_MS must not be negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT out of range: %d", c.Server.Port)
	}
	return nil
}
