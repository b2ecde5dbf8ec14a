package config

// Default paths
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./sawtlib.db"

	// DefaultMediaDir is the default directory for locally stored audio and cover files
	DefaultMediaDir = "./media"
)
