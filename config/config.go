package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds all process configuration. Every field has a default so the
// binary runs with an empty environment, the same way the desktop original
// launched with no setup.
type Config struct {
	Port          string `envconfig:"PORT" default:"8080"`
	GinMode       string `envconfig:"GIN_MODE" default:"debug"`
	DBPath        string `envconfig:"DB_PATH" default:"taxi_booking.db"`
	JWTSecret     string `envconfig:"JWT_SECRET" default:"taxi_booking_super_secret_2024"`
	TokenTTLHours int    `envconfig:"TOKEN_TTL_HOURS" default:"24"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
