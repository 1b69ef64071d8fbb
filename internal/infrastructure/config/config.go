// Package config loads and validates startup configuration. The
// backend identifiers have no usable defaults: a silently defaulted
// endpoint or project id would point every screen at the wrong
// backend, so any missing required value is a fatal startup error that
// names the offending variable.
package config

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Endpoint          string        `env:"CLUBDIR_ENDPOINT" validate:"required,url"`
	ProjectID         string        `env:"CLUBDIR_PROJECT_ID" validate:"required"`
	Platform          string        `env:"CLUBDIR_PLATFORM" validate:"required"`
	DatabaseID        string        `env:"CLUBDIR_DATABASE_ID" validate:"required"`
	MembersCollection string        `env:"CLUBDIR_MEMBERS_COLLECTION" validate:"required"`
	EventsCollection  string        `env:"CLUBDIR_EVENTS_COLLECTION, default=events"`
	HTTPTimeout       time.Duration `env:"CLUBDIR_HTTP_TIMEOUT, default=10s"`
	LogLevel          string        `env:"LOG_LEVEL, default=info"`
}

// Load reads configuration from environment variables and fails fast
// with an error naming every missing or invalid required value.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		bad := make([]string, 0, len(ve))
		for _, fe := range ve {
			bad = append(bad, envName(fe.StructField()))
		}
		return fmt.Errorf("config: missing or invalid required values: %s", strings.Join(bad, ", "))
	}
	return fmt.Errorf("config: %w", err)
}

// envName maps a struct field back to its environment variable name
// so the startup error tells the operator exactly what to set.
func envName(field string) string {
	f, ok := reflect.TypeOf(Config{}).FieldByName(field)
	if !ok {
		return field
	}
	name, _, _ := strings.Cut(f.Tag.Get("env"), ",")
	return strings.TrimSpace(name)
}
