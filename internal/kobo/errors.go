package kobo

import "errors"

// ErrSourceNotFound indicates the device database file does not exist
var ErrSourceNotFound = errors.New("kobo database not found")

// ErrSourceUnreadable indicates the database exists but its schema cannot be read
var ErrSourceUnreadable = errors.New("kobo database is missing expected tables")
