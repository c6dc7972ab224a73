// Package settings stores application preferences as a single JSON blob
// in Redis. Reads merge the stored sections over the built-in defaults, so
// a blob written by an older build never loses newly added preferences.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"carebook/internal/model"
	"carebook/internal/validator"

	"github.com/redis/go-redis/v9"
)

const settingsKey = "appSettings"

type Store struct {
	redis     *redis.Client
	validator *validator.Validator
}

func NewStore(client *redis.Client, v *validator.Validator) *Store {
	return &Store{redis: client, validator: v}
}

// Get decodes the stored blob over a fresh copy of the defaults. Fields
// absent from the blob keep their default value, which is what keeps old
// blobs forward compatible.
func (s *Store) Get(ctx context.Context) (model.AppSettings, error) {
	settings := model.DefaultSettings()

	raw, err := s.redis.Get(ctx, settingsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return settings, nil
	}
	if err != nil {
		return model.AppSettings{}, fmt.Errorf("settings: read: %w", err)
	}

	if err := json.Unmarshal(raw, &settings); err != nil {
		return model.AppSettings{}, fmt.Errorf("settings: decode: %w", err)
	}
	return settings, nil
}

func (s *Store) Put(ctx context.Context, settings model.AppSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := s.redis.Set(ctx, settingsKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("settings: write: %w", err)
	}
	return nil
}

// UpdateSection overwrites one named section and leaves the rest as
// stored. An unknown section name is rejected.
func (s *Store) UpdateSection(ctx context.Context, section string, payload json.RawMessage) (model.AppSettings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return model.AppSettings{}, err
	}

	switch section {
	case "wellness":
		if err := json.Unmarshal(payload, &current.Wellness); err != nil {
			return model.AppSettings{}, fmt.Errorf("settings: decode wellness section: %w", err)
		}
	case "billing":
		if err := json.Unmarshal(payload, &current.Billing); err != nil {
			return model.AppSettings{}, fmt.Errorf("settings: decode billing section: %w", err)
		}
	case "dashboard":
		if err := json.Unmarshal(payload, &current.Dashboard); err != nil {
			return model.AppSettings{}, fmt.Errorf("settings: decode dashboard section: %w", err)
		}
	default:
		return model.AppSettings{}, fmt.Errorf("settings: %w: %s", ErrUnknownSection, section)
	}

	if err := s.validator.Validate(current); err != nil {
		return model.AppSettings{}, fmt.Errorf("settings: validate %s section: %w", section, err)
	}
	if err := s.Put(ctx, current); err != nil {
		return model.AppSettings{}, err
	}
	return current, nil
}

func (s *Store) Reset(ctx context.Context) error {
	if err := s.redis.Del(ctx, settingsKey).Err(); err != nil {
		return fmt.Errorf("settings: reset: %w", err)
	}
	return nil
}

var ErrUnknownSection = errors.New("unknown settings section")
