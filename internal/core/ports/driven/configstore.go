package driven

// ConfigStore provides access to bootstrap configuration values that must
// exist before the database is opened (data directory, verbosity).
// Runtime settings live in SettingsStore instead.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	GetString(key string) string

	// GetBool retrieves a boolean configuration value.
	GetBool(key string) bool

	// Set stores a configuration value.
	Set(key string, value any)

	// Save persists the configuration to disk.
	Save() error
}
