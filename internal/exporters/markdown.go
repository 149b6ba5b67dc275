package exporters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrlokans/kobo-highlights/internal/entities"
	"github.com/mrlokans/kobo-highlights/internal/utils"
)

// markTags maps record color names to the CSS colors used in rendered
// highlight spans. Blue and green use the light variants so black text on
// top of them stays readable.
var markTags = map[string]string{
	"yellow": "yellow",
	"pink":   "pink",
	"blue":   "lightblue",
	"green":  "lightgreen",
}

func wrapWithColor(s string, color string) string {
	tag, ok := markTags[strings.ToLower(strings.TrimSpace(color))]
	if !ok {
		return s
	}
	return fmt.Sprintf(`<mark style="background-color: %s">%s</mark>`, tag, s)
}

// MarkdownExporter writes one Markdown file per book, grouped as
// OutputDir/Author/Title.md. A failure to write one book does not abort the
// rest; failed books are reported in the result.
type MarkdownExporter struct {
	OutputDir string
}

func NewMarkdownExporter(outputDir string) *MarkdownExporter {
	return &MarkdownExporter{OutputDir: outputDir}
}

// Export groups records by (author, title) in first-seen order and writes a
// Markdown file per book.
func (e *MarkdownExporter) Export(records []entities.HighlightRecord) (ExportResult, error) {
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return ExportResult{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	byBook := make(map[bookKey][]entities.HighlightRecord)
	var order []bookKey
	for _, rec := range records {
		key := bookKey{Author: rec.Author, Title: rec.BookTitle}
		if _, ok := byBook[key]; !ok {
			order = append(order, key)
		}
		byBook[key] = append(byBook[key], rec)
	}

	var result ExportResult
	for _, key := range order {
		bookRecords := byBook[key]

		authorDir := filepath.Join(e.OutputDir, utils.SanitizeFilename(key.Author))
		if err := os.MkdirAll(authorDir, 0755); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s by %s: %v", key.Title, key.Author, err))
			result.BooksFailed++
			continue
		}

		outputPath := filepath.Join(authorDir, utils.SanitizeFilename(key.Title)+".md")
		content := RenderBook(key.Title, key.Author, bookRecords)
		if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s by %s: %v", key.Title, key.Author, err))
			result.BooksFailed++
			continue
		}

		result.BooksProcessed++
		result.HighlightsProcessed += len(bookRecords)
	}

	return result, nil
}

// RenderBook produces the Markdown document for a single book. Chapters keep
// the first-seen order of the record sequence; records keep input order
// within their chapter.
func RenderBook(title string, author string, records []entities.HighlightRecord) string {
	byChapter := make(map[string][]entities.HighlightRecord)
	var chapterOrder []string
	for _, rec := range records {
		chapter := rec.ChapterTitle
		if chapter == "" {
			chapter = "Untitled"
		}
		if _, ok := byChapter[chapter]; !ok {
			chapterOrder = append(chapterOrder, chapter)
		}
		byChapter[chapter] = append(byChapter[chapter], rec)
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("# %s", title))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("by %s", author))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Total highlights: %d", len(records)))
	lines = append(lines, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")))
	lines = append(lines, "")
	lines = append(lines, "---")
	lines = append(lines, "")

	for _, chapter := range chapterOrder {
		lines = append(lines, fmt.Sprintf("## %s", chapter))
		lines = append(lines, "")
		for _, rec := range byChapter[chapter] {
			var metaBits []string
			if created := strings.TrimSpace(rec.DateCreated); created != "" {
				metaBits = append(metaBits, created)
			}
			color := strings.TrimSpace(rec.Color)
			if color != "" {
				metaBits = append(metaBits, color)
			}
			if typ := strings.TrimSpace(rec.Type); typ != "" {
				metaBits = append(metaBits, "type "+typ)
			}
			if len(metaBits) > 0 {
				lines = append(lines, "- "+strings.Join(metaBits, " • "))
			} else {
				lines = append(lines, "-")
			}

			text := strings.TrimSpace(rec.Text)
			if text != "" {
				lines = append(lines, "")
				for _, textLine := range splitLines(text) {
					lines = append(lines, "> "+wrapWithColor(textLine, color))
				}
			}
			if note := strings.TrimSpace(rec.Annotation); note != "" {
				if text == "" {
					lines = append(lines, "")
				}
				lines = append(lines, "")
				lines = append(lines, "  Note: "+note)
			}
			lines = append(lines, "")
		}
		lines = append(lines, "")
	}

	return strings.TrimRight(strings.Join(lines, "\n"), " \t\r\n") + "\n"
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// Compile-time interface check
var _ HighlightExporter = (*MarkdownExporter)(nil)
