package kobo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Filtering(t *testing.T) {
	cat := NewCatalog(nil)

	t.Run("drops hidden rows in every storage representation", func(t *testing.T) {
		hiddenValues := []any{int64(1), float64(1), true, "true", "yes", []byte("true")}
		for _, hidden := range hiddenValues {
			rows := []BookmarkRow{{BookmarkID: "b1", Text: "text", Hidden: hidden}}
			assert.Empty(t, Normalize(rows, cat, Options{}), "hidden value %#v", hidden)
		}
	})

	t.Run("keeps visible rows in every storage representation", func(t *testing.T) {
		visibleValues := []any{nil, int64(0), float64(0), false, "false", "0", "no", "", []byte("false")}
		for _, hidden := range visibleValues {
			rows := []BookmarkRow{{BookmarkID: "b1", Text: "text", Hidden: hidden}}
			assert.Len(t, Normalize(rows, cat, Options{}), 1, "hidden value %#v", hidden)
		}
	})

	t.Run("drops rows with neither text nor annotation", func(t *testing.T) {
		rows := []BookmarkRow{{BookmarkID: "b1", Text: " \n\t ", Annotation: "  "}}

		assert.Empty(t, Normalize(rows, cat, Options{}))
	})

	t.Run("keeps annotation only rows", func(t *testing.T) {
		rows := []BookmarkRow{{BookmarkID: "b1", Annotation: "a thought"}}

		records := Normalize(rows, cat, Options{})
		require.Len(t, records, 1)
		assert.Equal(t, "a thought", records[0].Annotation)
		assert.Equal(t, "", records[0].Text)
	})

	t.Run("preserves input order", func(t *testing.T) {
		rows := []BookmarkRow{
			{BookmarkID: "b1", Text: "first"},
			{BookmarkID: "b2", Text: "second"},
			{BookmarkID: "b3", Text: "third"},
		}

		records := Normalize(rows, cat, Options{})
		require.Len(t, records, 3)
		assert.Equal(t, "b1", records[0].BookmarkID)
		assert.Equal(t, "b2", records[1].BookmarkID)
		assert.Equal(t, "b3", records[2].BookmarkID)
	})
}

func TestNormalize_Colors(t *testing.T) {
	cat := NewCatalog(nil)

	tests := []struct {
		name     string
		color    any
		expected string
	}{
		{name: "yellow", color: int64(0), expected: "yellow"},
		{name: "pink", color: int64(1), expected: "pink"},
		{name: "blue", color: int64(2), expected: "blue"},
		{name: "green", color: int64(3), expected: "green"},
		{name: "real valued code", color: float64(1), expected: "pink"},
		{name: "text code", color: "2", expected: "blue"},
		{name: "byte code", color: []byte("3"), expected: "green"},
		{name: "unknown code", color: int64(7), expected: ""},
		{name: "negative code", color: int64(-1), expected: ""},
		{name: "null", color: nil, expected: ""},
		{name: "junk text", color: "turquoise", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []BookmarkRow{{BookmarkID: "b1", Text: "text", Color: tt.color}}

			records := Normalize(rows, cat, Options{})
			require.Len(t, records, 1)
			assert.Equal(t, tt.expected, records[0].Color)
		})
	}
}

func TestNormalize_Types(t *testing.T) {
	cat := NewCatalog(nil)

	tests := []struct {
		name     string
		typ      any
		expected string
	}{
		{name: "text type", typ: "highlight", expected: "highlight"},
		{name: "byte type", typ: []byte("note"), expected: "note"},
		{name: "integer type", typ: int64(2), expected: "2"},
		{name: "null type", typ: nil, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []BookmarkRow{{BookmarkID: "b1", Text: "text", Type: tt.typ}}

			records := Normalize(rows, cat, Options{})
			require.Len(t, records, 1)
			assert.Equal(t, tt.expected, records[0].Type)
		})
	}
}

func TestNormalize_BookResolution(t *testing.T) {
	t.Run("resolves title and author from the catalog", func(t *testing.T) {
		const volume = "file:///mnt/onboard/Meditations - Marcus Aurelius.epub"
		cat := NewCatalog([]ContentRow{
			{ContentID: volume, BookTitle: "Meditations", Attribution: "Marcus Aurelius"},
		})
		rows := []BookmarkRow{{BookmarkID: "b1", VolumeID: volume, Text: "text"}}

		records := Normalize(rows, cat, Options{})
		require.Len(t, records, 1)
		assert.Equal(t, "Meditations", records[0].BookTitle)
		assert.Equal(t, "Marcus Aurelius", records[0].Author)
	})

	t.Run("falls back to parsing the volume path", func(t *testing.T) {
		rows := []BookmarkRow{{
			BookmarkID: "b1",
			VolumeID:   "file:///mnt/onboard/The Waves - Virginia Woolf.kepub.epub",
			Text:       "text",
		}}

		records := Normalize(rows, NewCatalog(nil), Options{})
		require.Len(t, records, 1)
		assert.Equal(t, "The Waves", records[0].BookTitle)
		assert.Equal(t, "Virginia Woolf", records[0].Author)
	})

	t.Run("suppresses filename like book titles", func(t *testing.T) {
		const volume = "file:///mnt/onboard/The Waves - Virginia Woolf.epub"
		cat := NewCatalog([]ContentRow{
			{ContentID: volume, BookTitle: "index_split_000", Title: "index_split_000"},
		})
		rows := []BookmarkRow{{BookmarkID: "b1", VolumeID: volume, Text: "text"}}

		records := Normalize(rows, cat, Options{})
		require.Len(t, records, 1)
		assert.Equal(t, "The Waves", records[0].BookTitle)
	})

	t.Run("uses placeholders when nothing resolves", func(t *testing.T) {
		rows := []BookmarkRow{{BookmarkID: "b1", Text: "text"}}

		records := Normalize(rows, NewCatalog(nil), Options{})
		require.Len(t, records, 1)
		assert.Equal(t, UnknownTitle, records[0].BookTitle)
		assert.Equal(t, UnknownAuthor, records[0].Author)
	})
}

func TestNormalize_ChapterTitles(t *testing.T) {
	const volume = "file:///mnt/onboard/Walden - Henry David Thoreau.kepub.epub"
	cat := NewCatalog([]ContentRow{
		{ContentID: volume, BookTitle: "Walden", Attribution: "Henry David Thoreau"},
		{ContentID: volume + "!!OEBPS/chapter_2.xhtml", BookID: volume, Title: "chapter_2.xhtml"},
		{ContentID: volume + "!!OEBPS/chapter_2.xhtml-1", BookID: volume, Title: "Where I Lived, and What I Lived For", Depth: 1},
	})
	rows := []BookmarkRow{{
		BookmarkID: "b1",
		VolumeID:   volume,
		ContentID:  volume + "!!OEBPS/chapter_2.xhtml#kobo.31.1",
		Text:       "I went to the woods because I wished to live deliberately.",
	}}

	t.Run("suppresses filename chapters by default", func(t *testing.T) {
		records := Normalize(rows, cat, Options{})
		require.Len(t, records, 1)
		assert.Equal(t, "Where I Lived, and What I Lived For", records[0].ChapterTitle)
	})

	t.Run("keep flag passes the raw chapter title through", func(t *testing.T) {
		records := Normalize(rows, cat, Options{KeepFilenameChapters: true})
		require.Len(t, records, 1)
		assert.Equal(t, "chapter_2.xhtml", records[0].ChapterTitle)
	})

	t.Run("only the chapter field differs under the keep flag", func(t *testing.T) {
		suppressed := Normalize(rows, cat, Options{})
		kept := Normalize(rows, cat, Options{KeepFilenameChapters: true})
		require.Len(t, suppressed, 1)
		require.Len(t, kept, 1)

		kept[0].ChapterTitle = suppressed[0].ChapterTitle
		assert.Equal(t, suppressed[0], kept[0])
	})
}
