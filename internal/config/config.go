// Package config loads process configuration from the environment, in
// the style of the rest of this lineage: plain os.Getenv reads with
// defaults, no configuration framework.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration heromancerctl needs to stand up a
// Core and, optionally, a Discord-backed View.
type Config struct {
	Discord DiscordConfig
	Redis   RedisConfig
	Core    CoreConfig
}

// DiscordConfig holds optional bot credentials. The discordview adapter
// the CLI demo renders through does not read them.
type DiscordConfig struct {
	Token   string
	AppID   string
	GuildID string
}

// RedisConfig points at the optional LookupIndex cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CoreConfig holds the equipment-resolution tuning knobs exposed in
// §6's configuration surface.
type CoreConfig struct {
	RefResolveTimeout      time.Duration
	Favorites              bool
	AllowOptOutOfMandatory bool
}

// Load reads configuration from the environment. Discord credentials
// are optional; DISCORD_TOKEN set without DISCORD_APP_ID is an error.
func Load() (*Config, error) {
	cfg := &Config{
		Discord: DiscordConfig{
			Token:   os.Getenv("DISCORD_TOKEN"),
			AppID:   os.Getenv("DISCORD_APP_ID"),
			GuildID: os.Getenv("DISCORD_GUILD_ID"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Core: CoreConfig{
			RefResolveTimeout:      time.Duration(getEnvAsIntOrDefault("REF_RESOLVE_TIMEOUT_MS", 3000)) * time.Millisecond,
			Favorites:              getEnvAsIntOrDefault("FAVORITES_ENABLED", 1) != 0,
			AllowOptOutOfMandatory: getEnvAsIntOrDefault("ALLOW_OPT_OUT_OF_MANDATORY", 0) != 0,
		},
	}

	if cfg.Discord.Token != "" && cfg.Discord.AppID == "" {
		return nil, fmt.Errorf("DISCORD_APP_ID is required when DISCORD_TOKEN is set")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
