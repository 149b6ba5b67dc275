package utils

import (
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Whitespace characters to normalize
	whitespaceChars = regexp.MustCompile(`[\r\n\t]`)
	// Multiple spaces to collapse
	multipleSpaces = regexp.MustCompile(`\s+`)
)

// SanitizeFilename sanitizes a book title or author name for use as a file or
// directory name. It removes characters that are invalid in filenames or
// problematic in note vaults (slashes, colons, quotes, hashtags, brackets).
func SanitizeFilename(filename string) string {
	// Remove invalid filename characters
	filename = invalidFilenameChars.ReplaceAllString(filename, "")

	// Replace newlines/tabs with spaces
	filename = whitespaceChars.ReplaceAllString(filename, " ")

	// Collapse multiple spaces
	filename = multipleSpaces.ReplaceAllString(filename, " ")

	// Trim whitespace
	filename = strings.TrimSpace(filename)

	// Vault-specific sanitization
	filename = strings.ReplaceAll(filename, "#", "")
	filename = strings.ReplaceAll(filename, "[", "(")
	filename = strings.ReplaceAll(filename, "]", ")")

	// Limit length (most filesystems support 255, but leave room for extension)
	if len(filename) > 200 {
		// Back up to a rune boundary so multi-byte titles keep valid UTF-8
		cut := 200
		for cut > 0 && !utf8.RuneStart(filename[cut]) {
			cut--
		}
		filename = strings.TrimSpace(filename[:cut])
	}

	// Ensure it's not empty
	if filename == "" {
		filename = "Untitled"
	}

	return filename
}

// KnownBookExtensions contains file extensions Kobo uses for sideloaded books.
// The kepub variant must come before plain .epub so it is stripped whole.
var KnownBookExtensions = []string{
	".kepub.epub",
	".epub",
	".pdf",
	".mobi",
	".txt",
	".rtf",
	".cbz",
	".cbr",
}

// ParseVolumePath guesses a book title and author from a Kobo VolumeID path.
// Sideloaded books commonly follow the "<Title> - <Author>.epub" naming
// convention; otherwise the parent directory often names the author.
func ParseVolumePath(volumeID string) (string, string) {
	if volumeID == "" {
		return "", ""
	}

	p := volumeID
	if u, err := url.Parse(volumeID); err == nil && u.Path != "" {
		p = u.Path
	}
	if dec, err := url.PathUnescape(p); err == nil {
		p = dec
	}

	filename := path.Base(p)
	authorDir := path.Base(path.Dir(p))
	if authorDir == "." || authorDir == "/" {
		authorDir = ""
	}

	base := filename
	for _, ext := range KnownBookExtensions {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			base = base[:len(base)-len(ext)]
			break
		}
	}

	if strings.Contains(base, " - ") {
		parts := strings.SplitN(base, " - ", 2)
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(base), authorDir
}
