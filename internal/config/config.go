package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		Kobo
		Export
	}

	Kobo struct {
		DatabasePath string
	}
	Export struct {
		CSVPath              string // Empty means a transient CSV in a private temp dir
		MarkdownDir          string // Empty skips the Markdown stage
		KeepFilenameChapters bool
		Verbose              bool
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("kobo_database_path", DefaultDatabasePath)
	v.SetDefault("csv_output_path", "")
	v.SetDefault("markdown_output_dir", DefaultMarkdownDir)
	v.SetDefault("keep_filename_chapters", false)
	v.SetDefault("verbose", false)

	return &Config{
		Kobo: Kobo{
			DatabasePath: v.GetString("KOBO_DATABASE_PATH"),
		},
		Export: Export{
			CSVPath:              v.GetString("CSV_OUTPUT_PATH"),
			MarkdownDir:          v.GetString("MARKDOWN_OUTPUT_DIR"),
			KeepFilenameChapters: v.GetBool("KEEP_FILENAME_CHAPTERS"),
			Verbose:              v.GetBool("VERBOSE"),
		},
	}
}
