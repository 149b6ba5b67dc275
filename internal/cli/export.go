package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/kobo-highlights/internal/config"
	"github.com/mrlokans/kobo-highlights/internal/entities"
	"github.com/mrlokans/kobo-highlights/internal/exporters"
	"github.com/mrlokans/kobo-highlights/internal/kobo"
)

// ExportCommand handles exporting highlights from a Kobo device database to
// CSV and markdown
type ExportCommand struct {
	DatabasePath         string
	CSVPath              string
	MarkdownDir          string
	KeepFilenameChapters bool
	Verbose              bool
}

// NewExportCommand creates a new ExportCommand seeded with config defaults
func NewExportCommand(cfg *config.Config) *ExportCommand {
	return &ExportCommand{
		DatabasePath:         cfg.Kobo.DatabasePath,
		CSVPath:              cfg.Export.CSVPath,
		MarkdownDir:          cfg.Export.MarkdownDir,
		KeepFilenameChapters: cfg.Export.KeepFilenameChapters,
		Verbose:              cfg.Export.Verbose,
	}
}

// ParseFlags parses command line flags
func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the KoboReader.sqlite database (mounted device or a local copy)")
	fs.StringVar(&cmd.CSVPath, "out", cmd.CSVPath, "Path for the CSV artifact; kept after the run (default: temporary file, removed afterwards)")
	fs.StringVar(&cmd.MarkdownDir, "md-dir", cmd.MarkdownDir, "Root directory for per-book markdown files; empty skips the markdown stage")
	fs.BoolVar(&cmd.KeepFilenameChapters, "keep-filename-chapters", cmd.KeepFilenameChapters, "Keep chapter titles that look like internal file names instead of suppressing them")
	fs.BoolVar(&cmd.Verbose, "verbose", cmd.Verbose, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export highlights and notes from a Kobo device database.\n\n")
		fmt.Fprintf(os.Stderr, "The database is read-only; records are written to a CSV artifact and then\n")
		fmt.Fprintf(os.Stderr, "rendered as one markdown file per book under <md-dir>/<Author>/<Title>.md.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Export from a mounted device to ./notes:\n")
		fmt.Fprintf(os.Stderr, "  %s export -db /run/media/$USER/KOBOeReader/.kobo/KoboReader.sqlite\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Keep the CSV next to the markdown output:\n")
		fmt.Fprintf(os.Stderr, "  %s export -out highlights.csv -md-dir notes\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # CSV only, no markdown:\n")
		fmt.Fprintf(os.Stderr, "  %s export -out highlights.csv -md-dir \"\"\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Use the auto-detected device database:\n")
		fmt.Fprintf(os.Stderr, "  %s export -db \"$(%s detect -quiet)\"\n", os.Args[0], os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the export command
func (cmd *ExportCommand) Run() error {
	fmt.Println("📚 Kobo Highlights Export")
	fmt.Println("=========================")

	reader, err := kobo.NewReader(cmd.DatabasePath)
	if err != nil {
		return err
	}

	fmt.Printf("📁 Database: %s\n", reader.DBPath())

	fmt.Println("\n📖 Reading highlights from the device database...")
	rows, catalog, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read highlights: %w", err)
	}

	if cmd.Verbose {
		fmt.Printf("🔍 %d bookmark rows, %d content rows\n", len(rows), catalog.Size())
	}

	records := kobo.Normalize(rows, catalog, kobo.Options{KeepFilenameChapters: cmd.KeepFilenameChapters})
	if len(records) == 0 {
		// The CSV stage still runs: an explicit -out path yields a
		// header-only artifact.
		fmt.Println("ℹ️  No visible highlights or notes found")
	} else {
		summaries := bookSummaries(records)
		fmt.Printf("📚 Found %d highlights across %d books\n", len(records), len(summaries))

		if cmd.Verbose {
			fmt.Println("\n=== Books Found ===")
			for i, summary := range summaries {
				fmt.Printf("%d. %s\n", i+1, summary)
			}
		}
	}

	csvPath := cmd.CSVPath
	transient := csvPath == ""
	if transient {
		tempDir, err := os.MkdirTemp("", "kobo-highlights-*")
		if err != nil {
			return fmt.Errorf("failed to create temporary directory: %w", err)
		}
		defer os.RemoveAll(tempDir)
		csvPath = filepath.Join(tempDir, config.DefaultCSVName)
		if cmd.Verbose {
			fmt.Printf("\n🔍 Transient CSV: %s\n", csvPath)
		}
	} else {
		absCSVPath, err := filepath.Abs(csvPath)
		if err != nil {
			return fmt.Errorf("failed to get absolute path for CSV: %w", err)
		}
		csvPath = absCSVPath
		fmt.Printf("\n💾 Writing CSV: %s\n", csvPath)
	}

	csvExporter := exporters.NewCSVExporter(csvPath)
	csvResult, err := csvExporter.Export(records)
	if err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	fmt.Printf("📝 Wrote %d rows for %d books\n", csvResult.HighlightsProcessed, csvResult.BooksProcessed)

	if len(records) == 0 || cmd.MarkdownDir == "" {
		fmt.Println("\n✅ Export complete!")
		return nil
	}

	absMarkdownDir, err := filepath.Abs(cmd.MarkdownDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for markdown output: %w", err)
	}

	fmt.Printf("\n📄 Writing markdown: %s\n", absMarkdownDir)

	loaded, err := exporters.ReadRecords(csvPath)
	if err != nil {
		return fmt.Errorf("failed to read CSV artifact: %w", err)
	}

	mdExporter := exporters.NewMarkdownExporter(absMarkdownDir)
	mdResult, err := mdExporter.Export(loaded)
	if err != nil {
		return fmt.Errorf("failed to export markdown: %w", err)
	}

	fmt.Printf("📄 Exported %d books to markdown\n", mdResult.BooksProcessed)
	if mdResult.BooksFailed > 0 {
		fmt.Printf("⚠️  %d books failed to export:\n", mdResult.BooksFailed)
		for _, errMsg := range mdResult.Errors {
			fmt.Printf("  ❌ %s\n", errMsg)
		}
	}

	fmt.Println("\n✅ Export complete!")
	return nil
}

// bookSummaries returns one line per distinct book, first-seen order
func bookSummaries(records []entities.HighlightRecord) []string {
	type key struct {
		author, title string
	}
	counts := make(map[key]int)
	var order []key
	for _, rec := range records {
		k := key{author: rec.Author, title: rec.BookTitle}
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}

	summaries := make([]string, 0, len(order))
	for _, k := range order {
		summaries = append(summaries, fmt.Sprintf("\"%s\" by %s (%d highlights)", k.title, k.author, counts[k]))
	}
	return summaries
}
