package kobo

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// DeviceDatabaseName is the database file every Kobo device keeps under .kobo/.
const DeviceDatabaseName = "KoboReader.sqlite"

func candidateRoots() []string {
	user := os.Getenv("USER")
	if user == "" {
		user = os.Getenv("USERNAME")
	}

	var roots []string
	switch runtime.GOOS {
	case "linux":
		roots = []string{
			filepath.Join("/run/media", user),
			filepath.Join("/media", user),
			"/media",
			"/mnt",
		}
	case "darwin":
		roots = []string{"/Volumes"}
	case "windows":
		for letter := 'D'; letter <= 'Z'; letter++ {
			roots = append(roots, string(letter)+`:\`)
		}
	default:
		roots = []string{"/mnt", "/media", "/Volumes"}
	}

	var existing []string
	for _, root := range roots {
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			existing = append(existing, root)
		}
	}
	return existing
}

// possibleMounts yields the root itself (drive letters on Windows) plus its
// direct children (mount directories like /run/media/$USER/KOBOeReader).
func possibleMounts(root string) []string {
	mounts := []string{root}
	entries, err := os.ReadDir(root)
	if err != nil {
		return mounts
	}
	for _, entry := range entries {
		if entry.IsDir() {
			mounts = append(mounts, filepath.Join(root, entry.Name()))
		}
	}
	return mounts
}

// FindDatabases searches common mount points for connected Kobo eReader
// databases and returns every candidate path found.
func FindDatabases() []string {
	return findUnder(candidateRoots())
}

func findUnder(roots []string) []string {
	var matches []string
	for _, root := range roots {
		for _, mount := range possibleMounts(root) {
			candidate := filepath.Join(mount, ".kobo", DeviceDatabaseName)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				matches = append(matches, candidate)
			}
		}
	}
	return matches
}

// ChooseBest picks the most likely device database among candidates. Mount
// directories mentioning "kobo" beat plain removable media; ties go to the
// most recently modified database.
func ChooseBest(paths []string) string {
	if len(paths) == 0 {
		return ""
	}

	type candidate struct {
		path     string
		koboHint int
		modTime  int64
	}

	candidates := make([]candidate, 0, len(paths))
	for _, p := range paths {
		mount := filepath.Dir(filepath.Dir(p))
		c := candidate{path: p}
		if strings.Contains(strings.ToLower(mount), "kobo") {
			c.koboHint = 1
		}
		if info, err := os.Stat(p); err == nil {
			c.modTime = info.ModTime().UnixNano()
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].koboHint != candidates[j].koboHint {
			return candidates[i].koboHint > candidates[j].koboHint
		}
		return candidates[i].modTime > candidates[j].modTime
	})
	return candidates[0].path
}
