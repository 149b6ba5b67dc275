package demo

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Bookmark mirrors the Bookmark table of a Kobo device database. String date
// columns keep the device's ISO-ish timestamp format.
type Bookmark struct {
	BookmarkID      string  `gorm:"column:BookmarkID;primaryKey"`
	VolumeID        string  `gorm:"column:VolumeID"`
	ContentID       string  `gorm:"column:ContentID"`
	DateCreated     string  `gorm:"column:DateCreated"`
	DateModified    string  `gorm:"column:DateModified"`
	ChapterProgress float64 `gorm:"column:ChapterProgress"`
	Color           *int    `gorm:"column:Color"`
	Hidden          string  `gorm:"column:Hidden"`
	Text            string  `gorm:"column:Text"`
	Annotation      string  `gorm:"column:Annotation"`
	UUID            string  `gorm:"column:UUID"`
	UserID          string  `gorm:"column:UserID"`
	SyncTime        string  `gorm:"column:SyncTime"`
	ContextString   string  `gorm:"column:ContextString"`
	Type            string  `gorm:"column:Type"`
}

func (Bookmark) TableName() string {
	return "Bookmark"
}

// Content mirrors the content table: one row per book plus one row per
// chapter/table-of-contents entry.
type Content struct {
	ContentID   string `gorm:"column:ContentID;primaryKey"`
	BookID      string `gorm:"column:BookID"`
	BookTitle   string `gorm:"column:BookTitle"`
	Title       string `gorm:"column:Title"`
	Attribution string `gorm:"column:Attribution"`
	ContentURL  string `gorm:"column:ContentURL"`
	Depth       int    `gorm:"column:Depth"`
}

func (Content) TableName() string {
	return "content"
}

// Generate creates a demo Kobo database at the given path, seeded with
// highlights from public domain books. Returns the number of books and
// bookmarks written.
func Generate(dbPath string) (int, int, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create demo database: %w", err)
	}
	defer func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
	}()

	if err := db.AutoMigrate(&Bookmark{}, &Content{}); err != nil {
		return 0, 0, fmt.Errorf("failed to migrate demo database: %w", err)
	}

	content := demoContent()
	if len(content) > 0 {
		if err := db.Create(&content).Error; err != nil {
			return 0, 0, fmt.Errorf("failed to seed content rows: %w", err)
		}
	}

	bookmarks := demoBookmarks()
	if err := db.Create(&bookmarks).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to seed bookmarks: %w", err)
	}

	volumes := make(map[string]struct{})
	for _, b := range bookmarks {
		volumes[b.VolumeID] = struct{}{}
	}
	return len(volumes), len(bookmarks), nil
}

// Demo volume paths, following the sideloaded "<Title> - <Author>.<ext>"
// naming convention. The Art of War deliberately has no content rows so the
// volume-path fallback gets exercised.
const (
	meditationsVolume  = "file:///mnt/onboard/Meditations - Marcus Aurelius.epub"
	waldenVolume       = "file:///mnt/onboard/Walden - Henry David Thoreau.kepub.epub"
	frankensteinVolume = "file:///mnt/onboard/Frankenstein - Mary Shelley.epub"
	artOfWarVolume     = "file:///mnt/onboard/books/The Art of War - Sun Tzu.epub"
)

func demoContent() []Content {
	return []Content{
		// Marcus Aurelius - Meditations (Public Domain)
		{
			ContentID:   meditationsVolume,
			BookTitle:   "Meditations",
			Title:       "Meditations",
			Attribution: "Marcus Aurelius",
		},
		{
			ContentID: meditationsVolume + "!!OEBPS/book02.html",
			BookID:    meditationsVolume,
			BookTitle: "Meditations",
			Title:     "Book II",
			Depth:     1,
		},
		{
			ContentID: meditationsVolume + "!!OEBPS/book04.html",
			BookID:    meditationsVolume,
			BookTitle: "Meditations",
			Title:     "Book IV",
			Depth:     1,
		},

		// Henry David Thoreau - Walden (Public Domain), kepub layout:
		// the chapter file carries its file name as title, the deeper
		// table-of-contents sibling carries the real heading.
		{
			ContentID:   waldenVolume,
			BookTitle:   "Walden",
			Title:       "Walden",
			Attribution: "Henry David Thoreau",
		},
		{
			ContentID: waldenVolume + "!!OEBPS/chapter_2.xhtml",
			BookID:    waldenVolume,
			BookTitle: "Walden",
			Title:     "chapter_2.xhtml",
			Depth:     0,
		},
		{
			ContentID: waldenVolume + "!!OEBPS/chapter_2.xhtml-1",
			BookID:    waldenVolume,
			BookTitle: "Walden",
			Title:     "Where I Lived, and What I Lived For",
			Depth:     1,
		},

		// Mary Shelley - Frankenstein (Public Domain); chapter_5 has no
		// title so the context heading extraction gets exercised.
		{
			ContentID:   frankensteinVolume,
			BookTitle:   "Frankenstein",
			Title:       "Frankenstein",
			Attribution: "Mary Shelley",
		},
		{
			ContentID: frankensteinVolume + "!!OEBPS/letter4.html",
			BookID:    frankensteinVolume,
			BookTitle: "Frankenstein",
			Title:     "Letter 4",
			Depth:     1,
		},
		{
			ContentID: frankensteinVolume + "!!OEBPS/chapter_5.html",
			BookID:    frankensteinVolume,
			BookTitle: "Frankenstein",
			Title:     "",
			Depth:     1,
		},
	}
}

func demoBookmarks() []Bookmark {
	return []Bookmark{
		{
			BookmarkID:      "5c2e7f1a-9b3d-4e6f-8a01-1f2e3d4c5b6a",
			VolumeID:        meditationsVolume,
			ContentID:       meditationsVolume + "!!OEBPS/book02.html#p12",
			DateCreated:     "2024-03-01T08:15:00Z",
			DateModified:    "2024-03-01T08:15:00Z",
			SyncTime:        "2024-03-01T09:00:00Z",
			ChapterProgress: 0.18,
			Color:           colorPtr(0),
			Hidden:          "false",
			Text:            "You have power over your mind - not outside events. Realize this, and you will find strength.",
			Type:            "highlight",
		},
		{
			BookmarkID:      "6d3f802b-0c4e-4f70-9b12-2a3b4c5d6e7f",
			VolumeID:        meditationsVolume,
			ContentID:       meditationsVolume + "!!OEBPS/book04.html#p3",
			DateCreated:     "2024-03-01T08:40:00Z",
			DateModified:    "2024-03-01T08:40:00Z",
			SyncTime:        "2024-03-01T09:00:00Z",
			ChapterProgress: 0.36,
			Color:           colorPtr(2),
			Hidden:          "false",
			Text:            "The soul becomes dyed with the color of its thoughts.",
			Type:            "highlight",
		},
		{
			BookmarkID:      "7e4a913c-1d5f-4081-ac23-3b4c5d6e7f80",
			VolumeID:        meditationsVolume,
			ContentID:       meditationsVolume + "!!OEBPS/book04.html#p17",
			DateCreated:     "2024-03-02T21:05:00Z",
			DateModified:    "2024-03-02T21:06:00Z",
			SyncTime:        "2024-03-03T07:00:00Z",
			ChapterProgress: 0.41,
			Color:           colorPtr(0),
			Hidden:          "false",
			Text:            "Waste no more time arguing about what a good man should be. Be one.",
			Annotation:      "The whole book in one line.",
			Type:            "note",
		},
		{
			BookmarkID:      "8f5ba24d-2e60-4192-bd34-4c5d6e7f8091",
			VolumeID:        waldenVolume,
			ContentID:       waldenVolume + "!!OEBPS/chapter_2.xhtml#kobo.31.1",
			DateCreated:     "2024-03-05T07:30:00Z",
			DateModified:    "2024-03-05T07:30:00Z",
			SyncTime:        "2024-03-05T08:00:00Z",
			ChapterProgress: 0.12,
			Color:           colorPtr(1),
			Hidden:          "false",
			Text:            "I went to the woods because I wished to live deliberately, to front only the essential facts of life.",
			Type:            "highlight",
		},
		{
			BookmarkID:      "906cb35e-3f71-42a3-ce45-5d6e7f8091a2",
			VolumeID:        frankensteinVolume,
			ContentID:       frankensteinVolume + "!!OEBPS/letter4.html#p9",
			DateCreated:     "2024-03-10T19:12:00Z",
			DateModified:    "2024-03-10T19:12:00Z",
			SyncTime:        "2024-03-11T07:00:00Z",
			ChapterProgress: 0.07,
			Color:           colorPtr(3),
			Hidden:          "false",
			Text:            "There is something at work in my soul, which I do not understand.",
			Type:            "highlight",
		},
		{
			BookmarkID:      "a17dc46f-4082-43b4-df56-6e7f8091a2b3",
			VolumeID:        frankensteinVolume,
			ContentID:       frankensteinVolume + "!!OEBPS/chapter_5.html#p2",
			DateCreated:     "2024-03-10T19:45:00Z",
			DateModified:    "2024-03-10T19:45:00Z",
			SyncTime:        "2024-03-11T07:00:00Z",
			ChapterProgress: 0.31,
			Color:           colorPtr(0),
			Hidden:          "false",
			Text:            "It was on a dreary night of November that I beheld the accomplishment of my toils.",
			ContextString:   "Chapter 5\nIt was on a dreary night of November that I beheld the accomplishment of my toils.",
			Type:            "highlight",
		},
		{
			BookmarkID:      "b28ed570-5193-44c5-e067-7f8091a2b3c4",
			VolumeID:        frankensteinVolume,
			ContentID:       frankensteinVolume + "!!OEBPS/letter4.html#p15",
			DateCreated:     "2024-03-11T06:20:00Z",
			DateModified:    "2024-03-11T06:20:00Z",
			SyncTime:        "2024-03-11T07:00:00Z",
			ChapterProgress: 0.09,
			Hidden:          "false",
			Annotation:      "Compare with the framing narrative in Dracula.",
			Type:            "note",
		},
		{
			BookmarkID:      "c39fe681-62a4-45d6-f178-8091a2b3c4d5",
			VolumeID:        frankensteinVolume,
			ContentID:       frankensteinVolume + "!!OEBPS/letter4.html#p21",
			DateCreated:     "2024-03-12T10:00:00Z",
			DateModified:    "2024-03-12T10:00:00Z",
			SyncTime:        "2024-03-12T11:00:00Z",
			ChapterProgress: 0.1,
			Color:           colorPtr(0),
			Hidden:          "true",
			Text:            "Beware; for I am fearless, and therefore powerful.",
			Type:            "highlight",
		},
		{
			BookmarkID:      "d4a0f792-73b5-46e7-0289-91a2b3c4d5e6",
			VolumeID:        artOfWarVolume,
			ContentID:       artOfWarVolume + "!!OEBPS/chapter_3.html#p7",
			DateCreated:     "2024-03-15T22:41:00Z",
			DateModified:    "2024-03-15T22:41:00Z",
			SyncTime:        "2024-03-16T07:00:00Z",
			ChapterProgress: 0.22,
			Hidden:          "false",
			Text:            "The supreme art of war is to subdue the enemy without fighting.",
			Type:            "highlight",
		},
	}
}

func colorPtr(code int) *int {
	return &code
}
