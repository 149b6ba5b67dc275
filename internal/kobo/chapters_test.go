package kobo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsGenericChapterTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		generic bool
	}{
		{name: "empty", input: "", generic: true},
		{name: "xhtml file name", input: "chapter_2.xhtml", generic: true},
		{name: "html file name", input: "page-12.html", generic: true},
		{name: "container path remnant", input: "book.kepub.epub!!OEBPS", generic: true},
		{name: "calibre index split", input: "index_split_000", generic: true},
		{name: "kepub part split", input: "part0007 split 004", generic: true},
		{name: "underscore split", input: "part0007_split_004", generic: true},
		{name: "isbn prefixed label", input: "9781501144321 Chapter 12", generic: true},
		{name: "compact chapter number", input: "chapter006", generic: true},
		{name: "chapter abbreviation", input: "ch12", generic: true},
		{name: "short letter digit marker", input: "c015", generic: true},
		{name: "human heading", input: "The Spirit of Place", generic: false},
		{name: "heading with comma", input: "Where I Lived, and What I Lived For", generic: false},
		{name: "spelled out chapter", input: "Chapter 1", generic: false},
		{name: "common section name", input: "Introduction", generic: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.generic, isGenericChapterTitle(tt.input))
		})
	}
}

func TestCleanTitle(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		assert.Equal(t, "Book II", cleanTitle("  Book II ", true))
	})

	t.Run("suppresses filename like titles", func(t *testing.T) {
		assert.Equal(t, "", cleanTitle("chapter_2.xhtml", true))
	})

	t.Run("keeps filename like titles when suppression is off", func(t *testing.T) {
		assert.Equal(t, "chapter_2.xhtml", cleanTitle("chapter_2.xhtml", false))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", cleanTitle("   ", true))
	})
}

func TestTitleFromContext(t *testing.T) {
	tests := []struct {
		name     string
		context  string
		expected string
	}{
		{
			name:     "chapter heading with subtitle",
			context:  "Chapter 4: The Creation\nIt was on a dreary night of November.",
			expected: "Chapter 4: The Creation",
		},
		{
			name:     "part heading with dash is normalized",
			context:  "Part II - The Return\nThe road goes ever on.",
			expected: "Part II: The Return",
		},
		{
			name:     "bare chapter heading",
			context:  "Chapter 5\nIt was on a dreary night of November.",
			expected: "Chapter 5",
		},
		{
			name:     "numbered heading becomes a section",
			context:  "7. How to Win Friends\nThe first rule is simple.",
			expected: "Section 7: How to Win Friends",
		},
		{
			name:     "roman numbered heading",
			context:  "IX. The Whiteness of the Whale\nWhat the whale was to Ahab.",
			expected: "Section IX: The Whiteness of the Whale",
		},
		{
			name:     "common section name",
			context:  "Introduction\nThis book began as a series of letters.",
			expected: "Introduction",
		},
		{
			name:     "chapter mention inside body text",
			context:  "as we saw in chapter 12, the pattern repeats",
			expected: "Chapter 12",
		},
		{
			name:     "no heading at all",
			context:  "An ordinary sentence with no structure to it.",
			expected: "",
		},
		{
			name:     "empty context",
			context:  "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, titleFromContext(tt.context))
		})
	}
}

func TestFallbackTitleFromContentID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "chapter file",
			input:    "/mnt/onboard/book.kepub.epub!!OEBPS/chapter_6.xhtml",
			expected: "Chapter 6",
		},
		{
			name:     "zero padded part",
			input:    "/mnt/onboard/book.epub!!text/part0003.html",
			expected: "Part 3",
		},
		{
			name:     "epilogue",
			input:    "/mnt/onboard/book.kepub.epub!!OEBPS/epilogue.xhtml",
			expected: "Epilogue",
		},
		{
			name:     "appendix",
			input:    "/mnt/onboard/book.kepub.epub!!OEBPS/appendix.xhtml",
			expected: "Appendix",
		},
		{
			name:     "isbn noise around an epub label",
			input:    "/mnt/onboard/book.epub!!OEBPS/9781501144321_epub_8.xhtml",
			expected: "EPUB 8",
		},
		{
			name:     "plain file name becomes words",
			input:    "/mnt/onboard/book.kepub.epub!!OEBPS/the_spirit_of_place.xhtml",
			expected: "the spirit of place",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fallbackTitleFromContentID(tt.input))
		})
	}
}

func TestDetermineChapterTitle(t *testing.T) {
	const volume = "file:///mnt/onboard/Walden - Henry David Thoreau.kepub.epub"

	walden := NewCatalog([]ContentRow{
		{ContentID: volume, BookTitle: "Walden", Attribution: "Henry David Thoreau"},
		{ContentID: volume + "!!OEBPS/chapter_2.xhtml", BookID: volume, Title: "chapter_2.xhtml"},
		{ContentID: volume + "!!OEBPS/chapter_2.xhtml-1", BookID: volume, Title: "Where I Lived, and What I Lived For", Depth: 1},
	})

	t.Run("uses the content row title when it is readable", func(t *testing.T) {
		cat := NewCatalog([]ContentRow{
			{ContentID: "/a/book.epub!!OEBPS/book02.html", Title: "Book II"},
		})
		row := BookmarkRow{ContentID: "/a/book.epub!!OEBPS/book02.html#p12"}
		chRow := cat.chapterRow(row.ContentID)

		assert.Equal(t, "Book II", determineChapterTitle(row, chRow, cat, true))
	})

	t.Run("falls back to a context heading when the title is a file name", func(t *testing.T) {
		cat := NewCatalog([]ContentRow{
			{ContentID: "/a/book.epub!!OEBPS/ch04.html", Title: "ch04.html"},
		})
		row := BookmarkRow{
			ContentID:     "/a/book.epub!!OEBPS/ch04.html#p2",
			ContextString: "Chapter 4: The Creation\nIt was on a dreary night of November.",
		}
		chRow := cat.chapterRow(row.ContentID)

		assert.Equal(t, "Chapter 4: The Creation", determineChapterTitle(row, chRow, cat, true))
	})

	t.Run("resolves split kepub files through the titled sibling", func(t *testing.T) {
		row := BookmarkRow{ContentID: volume + "!!OEBPS/chapter_2.xhtml#kobo.31.1"}
		chRow := walden.chapterRow(row.ContentID)

		assert.Equal(t, "Where I Lived, and What I Lived For", determineChapterTitle(row, chRow, walden, true))
	})

	t.Run("keeps the raw file name title when suppression is off", func(t *testing.T) {
		row := BookmarkRow{ContentID: volume + "!!OEBPS/chapter_2.xhtml#kobo.31.1"}
		chRow := walden.chapterRow(row.ContentID)

		assert.Equal(t, "chapter_2.xhtml", determineChapterTitle(row, chRow, walden, false))
	})

	t.Run("borrows the title from another edition with the same tail", func(t *testing.T) {
		cat := NewCatalog([]ContentRow{
			{ContentID: "/a/first-edition.epub!!OEBPS/ch06.xhtml", Title: ""},
			{ContentID: "/b/second-edition.kepub.epub!!OEBPS/ch06.xhtml", Title: "The Chase"},
		})
		row := BookmarkRow{ContentID: "/a/first-edition.epub!!OEBPS/ch06.xhtml#p1"}
		chRow := cat.chapterRow(row.ContentID)

		assert.Equal(t, "The Chase", determineChapterTitle(row, chRow, cat, true))
	})

	t.Run("never borrows a table of contents entry", func(t *testing.T) {
		cat := NewCatalog([]ContentRow{
			{ContentID: "/a/first-edition.epub!!OEBPS/ch06.xhtml", Title: ""},
			{ContentID: "/b/second-edition.kepub.epub!!OEBPS/ch06.xhtml", Title: "Table of Contents"},
		})
		row := BookmarkRow{ContentID: "/a/first-edition.epub!!OEBPS/ch06.xhtml#p1"}
		chRow := cat.chapterRow(row.ContentID)

		assert.Equal(t, "Chapter 6", determineChapterTitle(row, chRow, cat, true))
	})

	t.Run("derives a title from the file name when the catalog is empty", func(t *testing.T) {
		cat := NewCatalog(nil)
		row := BookmarkRow{ContentID: "/a/book.kepub.epub!!OEBPS/chapter_6.xhtml#p2"}

		assert.Equal(t, "Chapter 6", determineChapterTitle(row, nil, cat, true))
	})
}
