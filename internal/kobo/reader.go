package kobo

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// BookmarkRow is a raw row from the device's Bookmark table. Color, Hidden and
// Type keep whatever SQLite handed back (integer, real, text or nil) because
// devices and firmware versions disagree on how these columns are stored.
type BookmarkRow struct {
	BookmarkID    string
	VolumeID      string
	ContentID     string
	DateCreated   string
	DateModified  string
	Color         any
	Hidden        any
	Text          string
	Annotation    string
	ContextString string
	Type          any
}

// Reader reads highlights from a KoboReader.sqlite database file.
type Reader struct {
	dbPath string
}

// NewReader creates a reader for the given database path. Fails when the file
// does not exist so a wrong -db value surfaces before any SQL runs.
func NewReader(dbPath string) (*Reader, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, dbPath)
	}
	return &Reader{dbPath: dbPath}, nil
}

// DBPath returns the database path the reader was created with.
func (r *Reader) DBPath() string {
	return r.dbPath
}

// openReadOnly opens the database without ever writing to it. The immutable
// flag prevents SQLite from creating WAL/SHM sidecar files on the device;
// not every SQLite build supports it, so fall back to plain read-only.
func openReadOnly(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?mode=ro&immutable=1")
	if err == nil {
		if pingErr := db.Ping(); pingErr == nil {
			return db, nil
		}
		db.Close()
	}

	db, err = sql.Open("sqlite3", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// Read loads every bookmark row ordered by creation date, together with the
// content catalog used to resolve book and chapter metadata. Hidden rows are
// included; filtering is the normalizer's job.
func (r *Reader) Read() ([]BookmarkRow, *Catalog, error) {
	db, err := openReadOnly(r.dbPath)
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	catalog, err := loadCatalog(db)
	if err != nil {
		return nil, nil, err
	}

	query := `
		SELECT BookmarkID, VolumeID, ContentID, DateCreated, DateModified,
		       Color, Hidden, Text, Annotation, ContextString, Type
		FROM Bookmark
		ORDER BY DateCreated
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	defer rows.Close()

	var bookmarks []BookmarkRow
	for rows.Next() {
		var b BookmarkRow
		var volumeID, contentID, dateCreated, dateModified sql.NullString
		var text, annotation, contextString sql.NullString

		err := rows.Scan(
			&b.BookmarkID,
			&volumeID,
			&contentID,
			&dateCreated,
			&dateModified,
			&b.Color,
			&b.Hidden,
			&text,
			&annotation,
			&contextString,
			&b.Type,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan bookmark row: %w", err)
		}

		b.VolumeID = volumeID.String
		b.ContentID = contentID.String
		b.DateCreated = dateCreated.String
		b.DateModified = dateModified.String
		b.Text = text.String
		b.Annotation = annotation.String
		b.ContextString = contextString.String

		bookmarks = append(bookmarks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating bookmark rows: %w", err)
	}

	return bookmarks, catalog, nil
}

func loadCatalog(db *sql.DB) (*Catalog, error) {
	query := `
		SELECT ContentID, BookID, BookTitle, Title, Attribution, ContentURL, Depth
		FROM content
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	defer rows.Close()

	var contentRows []ContentRow
	for rows.Next() {
		var c ContentRow
		var bookID, bookTitle, title, attribution, contentURL sql.NullString
		var depth sql.NullInt64

		err := rows.Scan(
			&c.ContentID,
			&bookID,
			&bookTitle,
			&title,
			&attribution,
			&contentURL,
			&depth,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content row: %w", err)
		}

		c.BookID = bookID.String
		c.BookTitle = bookTitle.String
		c.Title = title.String
		c.Attribution = attribution.String
		c.ContentURL = contentURL.String
		if depth.Valid {
			c.Depth = int(depth.Int64)
		}

		contentRows = append(contentRows, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating content rows: %w", err)
	}

	return NewCatalog(contentRows), nil
}
