package exporters

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrlokans/kobo-highlights/internal/entities"
)

// Columns is the fixed CSV schema, one row per exported highlight.
var Columns = []string{
	"BookmarkID",
	"BookTitle",
	"Author",
	"ChapterTitle",
	"DateCreated",
	"DateModified",
	"Color",
	"Text",
	"Annotation",
	"Type",
}

// CSVExporter writes highlight records to a single CSV file. Any write error
// aborts the export; a partial file is worth less than a loud failure.
type CSVExporter struct {
	OutputPath string
}

// NewCSVExporter creates an exporter writing to the given path.
func NewCSVExporter(outputPath string) *CSVExporter {
	return &CSVExporter{OutputPath: outputPath}
}

// Export writes the header and one row per record, overwriting any existing
// file at the output path.
func (e *CSVExporter) Export(records []entities.HighlightRecord) (ExportResult, error) {
	f, err := os.Create(e.OutputPath)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to create CSV file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		f.Close()
		return ExportResult{}, fmt.Errorf("failed to write CSV header: %w", err)
	}

	var result ExportResult
	seen := make(map[bookKey]struct{})
	for _, rec := range records {
		row := []string{
			rec.BookmarkID,
			rec.BookTitle,
			rec.Author,
			rec.ChapterTitle,
			rec.DateCreated,
			rec.DateModified,
			rec.Color,
			rec.Text,
			rec.Annotation,
			rec.Type,
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return ExportResult{}, fmt.Errorf("failed to write CSV row: %w", err)
		}
		result.HighlightsProcessed++

		key := bookKey{Author: rec.Author, Title: rec.BookTitle}
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			result.BooksProcessed++
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return ExportResult{}, fmt.Errorf("failed to flush CSV: %w", err)
	}
	if err := f.Close(); err != nil {
		return ExportResult{}, fmt.Errorf("failed to close CSV file: %w", err)
	}
	return result, nil
}

// ReadRecords loads highlight records back from a CSV artifact produced by
// CSVExporter. Column order does not matter; the header decides. Records with
// a blank book title or author get the usual placeholders so grouping stays
// well defined.
func ReadRecords(path string) ([]entities.HighlightRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}

	requiredColumns := []string{"booktitle", "author"}
	for _, col := range requiredColumns {
		if _, ok := headerIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var records []entities.HighlightRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		title := getColumn(record, headerIndex, "booktitle")
		if title == "" {
			title = "Unknown Title"
		}
		author := getColumn(record, headerIndex, "author")
		if author == "" {
			author = "Unknown Author"
		}

		records = append(records, entities.HighlightRecord{
			BookmarkID:   getColumn(record, headerIndex, "bookmarkid"),
			BookTitle:    title,
			Author:       author,
			ChapterTitle: getColumn(record, headerIndex, "chaptertitle"),
			DateCreated:  getColumn(record, headerIndex, "datecreated"),
			DateModified: getColumn(record, headerIndex, "datemodified"),
			Color:        getColumn(record, headerIndex, "color"),
			Text:         getColumn(record, headerIndex, "text"),
			Annotation:   getColumn(record, headerIndex, "annotation"),
			Type:         getColumn(record, headerIndex, "type"),
		})
	}

	return records, nil
}

func getColumn(record []string, headerIndex map[string]int, name string) string {
	if idx, ok := headerIndex[name]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}

// Compile-time interface check
var _ HighlightExporter = (*CSVExporter)(nil)
