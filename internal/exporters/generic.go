package exporters

import "github.com/mrlokans/kobo-highlights/internal/entities"

// HighlightExporter renders normalized highlight records into some artifact.
type HighlightExporter interface {
	Export(records []entities.HighlightRecord) (ExportResult, error)
}

// ExportResult summarizes a finished export stage.
type ExportResult struct {
	BooksProcessed      int
	HighlightsProcessed int
	BooksFailed         int
	Errors              []string
}

// bookKey groups records belonging to the same book.
type bookKey struct {
	Author string
	Title  string
}
