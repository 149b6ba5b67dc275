package entities

import "strings"

// HighlightRecord is a fully normalized highlight or note read from a Kobo
// device database. Field names mirror the CSV export columns; the date fields
// keep the device's original timestamp strings.
type HighlightRecord struct {
	BookmarkID   string
	BookTitle    string
	Author       string
	ChapterTitle string
	DateCreated  string
	DateModified string
	Color        string // color name (yellow/pink/blue/green), empty when unknown
	Text         string // highlighted passage, may span multiple lines
	Annotation   string // user note attached to the highlight
	Type         string
}

// HasText reports whether the record carries a non-blank highlighted passage.
func (r *HighlightRecord) HasText() bool {
	return strings.TrimSpace(r.Text) != ""
}

// HasAnnotation reports whether the record carries a non-blank user note.
func (r *HighlightRecord) HasAnnotation() bool {
	return strings.TrimSpace(r.Annotation) != ""
}
