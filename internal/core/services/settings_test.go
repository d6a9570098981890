package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driven"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driving"
)

// memConfigStore is an in-memory driven.ConfigStore.
type memConfigStore struct {
	data map[string]any
}

var _ driven.ConfigStore = (*memConfigStore)(nil)

func newMemConfigStore() *memConfigStore {
	return &memConfigStore{data: make(map[string]any)}
}

func (m *memConfigStore) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *memConfigStore) GetString(key string) string {
	if v, ok := m.data[key].(string); ok {
		return v
	}
	return ""
}

func (m *memConfigStore) GetBool(key string) bool {
	if v, ok := m.data[key].(bool); ok {
		return v
	}
	return false
}

func (m *memConfigStore) Set(key string, value any) error {
	m.data[key] = value
	return nil
}

func (m *memConfigStore) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func TestSettingsService_Get_Defaults(t *testing.T) {
	service := NewSettingsService(newMemConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoint, settings.Endpoint)
	assert.Equal(t, driving.ModeAuto, settings.Mode)
	assert.Equal(t, domain.DefaultMethod, settings.Method)
	assert.Empty(t, settings.WatchDir)
}

func TestSettingsService_Get_IgnoresInvalidStoredValues(t *testing.T) {
	store := newMemConfigStore()
	require.NoError(t, store.Set("backend.mode", "carrier-pigeon"))
	require.NoError(t, store.Set("processing.method", "turbo"))
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, driving.ModeAuto, settings.Mode, "an unknown stored mode falls back to the default")
	assert.Equal(t, domain.DefaultMethod, settings.Method, "an unknown stored method falls back to the default")
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := newMemConfigStore()
	service := NewSettingsService(store)

	err := service.Save(&driving.AppSettings{
		Endpoint: "http://localhost:9000/api",
		Mode:     driving.ModeHTTP,
		Method:   domain.MethodLayout,
		WatchDir: "/tmp/inbox",
	})
	require.NoError(t, err)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/api", settings.Endpoint)
	assert.Equal(t, driving.ModeHTTP, settings.Mode)
	assert.Equal(t, domain.MethodLayout, settings.Method)
	assert.Equal(t, "/tmp/inbox", settings.WatchDir)
}

func TestSettingsService_Save_InvalidMode(t *testing.T) {
	service := NewSettingsService(newMemConfigStore())

	err := service.Save(&driving.AppSettings{Mode: "carrier-pigeon", Method: domain.DefaultMethod})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Save_InvalidMethod(t *testing.T) {
	service := NewSettingsService(newMemConfigStore())

	err := service.Save(&driving.AppSettings{Mode: driving.ModeAuto, Method: "turbo"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
