// Package config provides centralized configuration constants for GapHound.
// All default values should be defined here to ensure a single source of truth.
package config

// Store backend names.
const (
	// BackendFile stores results as one file per story.
	BackendFile = "file"

	// BackendSQLite stores every run in a single SQLite database.
	BackendSQLite = "sqlite"
)

// Result file formats for the file backend.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Defaults for the caller-side tooling.
const (
	// DefaultStoreDir is the directory holding stored results and the
	// configuration file, relative to the working directory.
	DefaultStoreDir = ".gaphound"

	// DefaultBackend is the default result store backend.
	DefaultBackend = BackendFile

	// DefaultFormat is the default result file format for the file backend.
	DefaultFormat = FormatJSON

	// SQLiteFileName is the database file name used by the sqlite backend.
	SQLiteFileName = "results.db"
)

// Viper keys for the hygiene engine configuration.
const (
	KeyMaxGaps             = "hygiene.max_gaps"
	KeyMinScore            = "hygiene.min_score"
	KeySimilarityThreshold = "hygiene.similarity_threshold"
	KeyDisableDedupe       = "hygiene.disable_dedupe"
	KeyIncludeResolved     = "hygiene.include_resolved"
	KeyBlockingThreshold   = "hygiene.blocking_threshold"
	KeyImportantThreshold  = "hygiene.important_threshold"
	KeyFutureThreshold     = "hygiene.future_threshold"
	KeyStoreDir            = "store.dir"
	KeyStoreBackend        = "store.backend"
	KeyStoreFormat         = "store.format"
)
