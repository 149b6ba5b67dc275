package kobo

import "strings"

// ContentRow is a single row from the device's content table. Depending on the
// row it describes either a whole book or one chapter inside it.
type ContentRow struct {
	ContentID   string
	BookID      string
	BookTitle   string
	Title       string
	Attribution string
	ContentURL  string
	Depth       int
}

// Catalog indexes content rows by the various ContentID forms a Bookmark row
// may reference them through. All lookups are exact string matches against
// keys precomputed once at load time.
type Catalog struct {
	byID       map[string]*ContentRow
	byIDNorm   map[string]*ContentRow
	byURL      map[string]*ContentRow
	byURLNorm  map[string]*ContentRow
	byFragBase map[string][]*ContentRow
	byPreBang  map[string][]*ContentRow
	byTail     map[string][]*ContentRow
	byPAnchor  map[string][]*ContentRow
	byBook     map[string][]*ContentRow
}

// NewCatalog builds the lookup indexes for the given content rows.
func NewCatalog(rows []ContentRow) *Catalog {
	c := &Catalog{
		byID:       make(map[string]*ContentRow),
		byIDNorm:   make(map[string]*ContentRow),
		byURL:      make(map[string]*ContentRow),
		byURLNorm:  make(map[string]*ContentRow),
		byFragBase: make(map[string][]*ContentRow),
		byPreBang:  make(map[string][]*ContentRow),
		byTail:     make(map[string][]*ContentRow),
		byPAnchor:  make(map[string][]*ContentRow),
		byBook:     make(map[string][]*ContentRow),
	}
	for i := range rows {
		c.add(&rows[i])
	}
	return c
}

func (c *Catalog) add(row *ContentRow) {
	c.byID[row.ContentID] = row
	if nid := normalizeID(row.ContentID); nid != "" {
		if _, ok := c.byIDNorm[nid]; !ok {
			c.byIDNorm[nid] = row
		}
	}
	if row.ContentURL != "" {
		c.byURL[row.ContentURL] = row
		if nurl := normalizeID(row.ContentURL); nurl != "" {
			if _, ok := c.byURLNorm[nurl]; !ok {
				c.byURLNorm[nurl] = row
			}
		}
	}
	if fb := fragmentBase(row.ContentID); fb != "" {
		c.byFragBase[fb] = append(c.byFragBase[fb], row)
	}
	if pb := preBang(row.ContentID); pb != "" {
		c.byPreBang[pb] = append(c.byPreBang[pb], row)
	}
	if tail := tailAfterBangBang(row.ContentID); tail != "" {
		c.byTail[tail] = append(c.byTail[tail], row)
	}
	if pa := pAnchor(row.ContentID); pa != "" {
		c.byPAnchor[pa] = append(c.byPAnchor[pa], row)
	}
	if row.BookID != "" {
		c.byBook[row.BookID] = append(c.byBook[row.BookID], row)
	}
}

// Size returns the number of distinct content rows indexed by ContentID.
func (c *Catalog) Size() int {
	return len(c.byID)
}

// chapterRow resolves the content row describing the chapter a bookmark sits
// in. Tries the exact ContentID first, then URL-decoded and fragment-stripped
// forms, and finally ContentURL lookups.
func (c *Catalog) chapterRow(contentID string) *ContentRow {
	if contentID == "" {
		return nil
	}
	noFrag := stripFragment(contentID)
	lookups := []func() *ContentRow{
		func() *ContentRow { return c.byID[contentID] },
		func() *ContentRow { return c.byIDNorm[normalizeID(contentID)] },
		func() *ContentRow { return c.byID[noFrag] },
		func() *ContentRow { return c.byIDNorm[normalizeID(noFrag)] },
		func() *ContentRow { return c.byURL[contentID] },
		func() *ContentRow { return c.byURL[noFrag] },
		func() *ContentRow { return c.byURLNorm[normalizeID(contentID)] },
		func() *ContentRow { return c.byURLNorm[normalizeID(noFrag)] },
	}
	for _, lookup := range lookups {
		if row := lookup(); row != nil {
			return row
		}
	}
	return nil
}

// bookRow resolves the content row describing the whole book, trying the
// volume first, then the chapter row's BookID, then the ContentID with the
// kepub container suffix removed.
func (c *Catalog) bookRow(volumeID, contentID string, chRow *ContentRow) *ContentRow {
	var candidates []*ContentRow
	if volumeID != "" {
		candidates = append(candidates, c.byID[volumeID], c.byURL[volumeID])
	}
	if chRow != nil && chRow.BookID != "" {
		candidates = append(candidates, c.byID[chRow.BookID])
	}
	if base := stripAfterBangBang(contentID); base != "" {
		candidates = append(candidates, c.byID[base], c.byURL[base])
	}
	for _, cand := range candidates {
		if cand != nil {
			return cand
		}
	}
	return nil
}

// scoredTitle orders candidate chapter titles: higher score first, longer
// titles next, lexicographically larger last.
type scoredTitle struct {
	score  int
	length int
	title  string
}

func (s scoredTitle) better(than scoredTitle) bool {
	if s.score != than.score {
		return s.score > than.score
	}
	if s.length != than.length {
		return s.length > than.length
	}
	return s.title > than.title
}

func bestScoredTitle(rows []*ContentRow, curTail string, suppress bool) string {
	best := scoredTitle{score: -1, length: -1}
	for _, cr := range rows {
		t := cleanTitle(cr.Title, suppress)
		if t == "" || strings.EqualFold(t, "table of contents") {
			continue
		}
		cand := scoredTitle{
			score:  scoreTailSimilarity(curTail, tailAfterBangBang(cr.ContentID)),
			length: len(t),
			title:  t,
		}
		if cand.better(best) {
			best = cand
		}
	}
	return best.title
}

func longestTitle(rows []*ContentRow, suppress bool) string {
	bestLen := -1
	var bestTitle string
	for _, cr := range rows {
		t := cleanTitle(cr.Title, suppress)
		if t == "" || strings.EqualFold(t, "table of contents") {
			continue
		}
		if len(t) > bestLen {
			bestLen = len(t)
			bestTitle = t
		}
	}
	return bestTitle
}

// deepestTitle prefers rows deeper in the table of contents tree, which maps
// split kepub files back to the chapter entry that names them.
func deepestTitle(rows []*ContentRow, suppress bool) string {
	best := scoredTitle{score: -1, length: -1}
	for _, cr := range rows {
		t := cleanTitle(cr.Title, suppress)
		if t == "" || strings.EqualFold(t, "table of contents") {
			continue
		}
		cand := scoredTitle{score: cr.Depth, length: len(t), title: t}
		if cand.better(best) {
			best = cand
		}
	}
	return best.title
}
