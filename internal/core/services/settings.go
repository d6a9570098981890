package services

import (
	"fmt"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driven"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyBackendEndpoint = "backend.endpoint"
	keyBackendMode     = "backend.mode"
	keyMethod          = "processing.method"
	keyWatchDir        = "watch.dir"
)

// DefaultEndpoint is used when no backend endpoint has been configured.
const DefaultEndpoint = "http://localhost:5000/api"

// SettingsService manages application settings over a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings with defaults applied.
func (s *SettingsService) Get() (*driving.AppSettings, error) {
	settings := &driving.AppSettings{
		Endpoint: DefaultEndpoint,
		Mode:     driving.ModeAuto,
		Method:   domain.DefaultMethod,
	}

	if v := s.configStore.GetString(keyBackendEndpoint); v != "" {
		settings.Endpoint = v
	}
	if m := driving.BackendMode(s.configStore.GetString(keyBackendMode)); m.IsValid() {
		settings.Mode = m
	}
	if m := domain.ProcessingMethod(s.configStore.GetString(keyMethod)); m.IsValid() {
		settings.Method = m
	}
	settings.WatchDir = s.configStore.GetString(keyWatchDir)

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *driving.AppSettings) error {
	if !settings.Mode.IsValid() {
		return fmt.Errorf("%w: backend mode %q", domain.ErrInvalidInput, settings.Mode)
	}
	if !settings.Method.IsValid() {
		return fmt.Errorf("%w: processing method %q", domain.ErrInvalidInput, settings.Method)
	}

	if err := s.configStore.Set(keyBackendEndpoint, settings.Endpoint); err != nil {
		return fmt.Errorf("save backend endpoint: %w", err)
	}
	if err := s.configStore.Set(keyBackendMode, settings.Mode.String()); err != nil {
		return fmt.Errorf("save backend mode: %w", err)
	}
	if err := s.configStore.Set(keyMethod, settings.Method.String()); err != nil {
		return fmt.Errorf("save processing method: %w", err)
	}
	if err := s.configStore.Set(keyWatchDir, settings.WatchDir); err != nil {
		return fmt.Errorf("save watch dir: %w", err)
	}
	return nil
}
