package driving

import "github.com/inkwell-labs/paperchat/internal/core/domain"

// BackendMode selects how the transport is provided.
type BackendMode string

// Backend modes.
const (
	// ModeAuto picks the simulator unless the endpoint is a local address.
	ModeAuto BackendMode = "auto"

	// ModeHTTP always talks to the configured endpoint.
	ModeHTTP BackendMode = "http"

	// ModeSimulator always serves calls from the built-in simulator.
	ModeSimulator BackendMode = "simulator"
)

// IsValid returns true if the mode is recognised.
func (m BackendMode) IsValid() bool {
	switch m {
	case ModeAuto, ModeHTTP, ModeSimulator:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m BackendMode) String() string {
	return string(m)
}

// AppSettings is the persisted application configuration.
type AppSettings struct {
	// Endpoint is the backend base URL, e.g. "http://localhost:5000/api".
	Endpoint string

	// Mode selects the transport.
	Mode BackendMode

	// Method is the processing method applied to the next upload.
	Method domain.ProcessingMethod

	// WatchDir is the folder watched for PDFs to auto-upload. Empty
	// disables watching.
	WatchDir string
}

// SettingsService manages persisted application settings.
type SettingsService interface {
	// Get retrieves current settings with defaults applied.
	Get() (*AppSettings, error)

	// Save persists settings.
	Save(settings *AppSettings) error
}
