package driven

// ConfigStore persists application configuration as key-value pairs.
// Keys are dot-separated, e.g. "backend.endpoint".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, empty when absent or mistyped.
	GetString(key string) string

	// GetBool retrieves a boolean value, false when absent or mistyped.
	GetBool(key string) bool

	// Set stores a configuration value and persists it.
	Set(key string, value any) error

	// Delete removes a configuration value and persists the change.
	Delete(key string) error
}
