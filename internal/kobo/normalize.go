package kobo

import (
	"strconv"
	"strings"

	"github.com/mrlokans/kobo-highlights/internal/entities"
	"github.com/mrlokans/kobo-highlights/internal/utils"
)

// Kobo stores highlight colors as small integer codes.
var colorNames = map[int]string{
	0: "yellow",
	1: "pink",
	2: "blue",
	3: "green",
}

// Placeholders used when neither the content table nor the volume path yields
// book metadata.
const (
	UnknownTitle  = "Unknown Title"
	UnknownAuthor = "Unknown Author"
)

// Options control how raw bookmark rows are turned into records.
type Options struct {
	// KeepFilenameChapters disables the suppression of chapter titles that
	// look like file names ("chapter006", "index_split_000").
	KeepFilenameChapters bool
}

// Normalize filters and enriches raw bookmark rows into export-ready records.
// Hidden rows and rows with neither text nor annotation are dropped; everything
// else gets book metadata, a chapter title and a color name attached. Input
// order is preserved.
func Normalize(rows []BookmarkRow, cat *Catalog, opts Options) []entities.HighlightRecord {
	suppress := !opts.KeepFilenameChapters
	records := make([]entities.HighlightRecord, 0, len(rows))

	for _, row := range rows {
		if isHidden(row.Hidden) {
			continue
		}
		if strings.TrimSpace(row.Text) == "" && strings.TrimSpace(row.Annotation) == "" {
			continue
		}

		chRow := cat.chapterRow(row.ContentID)
		chapterTitle := determineChapterTitle(row, chRow, cat, suppress)
		bookTitle, author := resolveBook(row, chRow, cat)

		records = append(records, entities.HighlightRecord{
			BookmarkID:   row.BookmarkID,
			BookTitle:    bookTitle,
			Author:       author,
			ChapterTitle: chapterTitle,
			DateCreated:  row.DateCreated,
			DateModified: row.DateModified,
			Color:        colorName(row.Color),
			Text:         row.Text,
			Annotation:   row.Annotation,
			Type:         typeString(row.Type),
		})
	}

	return records
}

// isHidden interprets the Bookmark.Hidden column across the storage types seen
// in the wild: integers and reals compare against zero, text compares against
// the usual false spellings, and absent values mean visible.
func isHidden(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case int64:
		return val != 0
	case float64:
		return val != 0
	case []byte:
		return hiddenText(string(val))
	case string:
		return hiddenText(val)
	default:
		return false
	}
}

func hiddenText(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "0", "no", "n":
		return false
	default:
		return true
	}
}

// colorName maps a raw Color value onto its name. Unknown codes, junk text and
// absent values all map to the empty string, never to an error.
func colorName(v any) string {
	idx, ok := colorIndex(v)
	if !ok {
		return ""
	}
	return colorNames[idx]
}

func colorIndex(v any) (int, bool) {
	switch val := v.(type) {
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	case []byte:
		return colorIndexText(string(val))
	case string:
		return colorIndexText(val)
	default:
		return 0, false
	}
}

func colorIndexText(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// typeString renders the Bookmark.Type column as a plain string. Newer
// firmware stores text ("highlight", "note"), older builds store integers.
func typeString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case []byte:
		return strings.TrimSpace(string(val))
	case string:
		return strings.TrimSpace(val)
	default:
		return ""
	}
}

// resolveBook finds the book title and author for a bookmark, preferring
// content-table metadata and falling back to parsing the volume path. Both
// results are guaranteed non-empty.
func resolveBook(row BookmarkRow, chRow *ContentRow, cat *Catalog) (string, string) {
	var title, author string

	if bookRow := cat.bookRow(row.VolumeID, row.ContentID, chRow); bookRow != nil {
		title = cleanTitle(bookRow.BookTitle, true)
		if title == "" {
			title = cleanTitle(bookRow.Title, true)
		}
		author = strings.TrimSpace(bookRow.Attribution)
	}

	if title == "" || author == "" {
		titleGuess, authorGuess := utils.ParseVolumePath(row.VolumeID)
		if title == "" {
			title = cleanTitle(titleGuess, true)
		}
		if author == "" {
			author = authorGuess
		}
	}

	if title == "" {
		title = UnknownTitle
	}
	if author == "" {
		author = UnknownAuthor
	}
	return title, author
}
