// Package config populates configuration structs from environment
// variables. A .env file in the working directory is loaded once, then
// struct fields are parsed from their `env` tags.
//
//	type AppConfig struct {
//	    Locale string `env:"APP_LOCALE" envDefault:"en"`
//	}
//
//	var cfg AppConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
package config

import (
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrNilPointer is returned when Load receives a nil target.
	ErrNilPointer = errors.New("config: target must be a non-nil pointer")

	// ErrFailedToParse wraps env tag parsing failures.
	ErrFailedToParse = errors.New("config: failed to parse environment")

	dotenvOnce sync.Once
)

// Load fills v from the environment. Missing .env files are fine; a missing
// required variable is not.
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// The .env file is a development convenience and may not exist.
		_ = godotenv.Load()
	})

	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrFailedToParse, err)
	}
	return nil
}
