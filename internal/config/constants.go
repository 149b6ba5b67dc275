package config

// Default paths for inputs and artifacts
const (
	// DefaultDatabasePath is the default location of the device database,
	// relative to the working directory
	DefaultDatabasePath = "KoboReader.sqlite"

	// DefaultMarkdownDir is the default root directory for per-book Markdown files
	DefaultMarkdownDir = "notes"

	// DefaultCSVName is the file name used for the transient CSV artifact
	// when no explicit output path is requested
	DefaultCSVName = "highlights_enriched.csv"
)
