package kobo

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Chapter titles in the content table are frequently just file names
// ("chapter006", "part0007 split 004", "index_split_000"). The patterns below
// recognize those so they can be suppressed or replaced by something readable.
var (
	kepubSplitPattern  = regexp.MustCompile(`\bpart\d{1,5}[\s_]*split[\s_]*\d{1,5}\b`)
	splitPattern       = regexp.MustCompile(`\bsplit[_ ]?\d{1,5}\b`)
	isbnPrefixPattern  = regexp.MustCompile(`^\d{10,13}\s+(?:chapter|epub|page|section|part)\b`)
	chapterNumPattern  = regexp.MustCompile(`^chapter\d{2,}`)
	chapterAbbrPattern = regexp.MustCompile(`^ch\d{1,3}\b`)
	shortMarkerPattern = regexp.MustCompile(`^[a-zA-Z]\s?\d{3,4}$`)
)

// Heading shapes looked for inside ContextString and content file names.
var (
	chapterPartPattern = regexp.MustCompile(`(?i)\b(Chapter|Part)\s+([0-9]{1,3}|[IVXLCDM]{1,8})(?:\s*[:\-–—]\s*([^\n]{1,80}))?`)
	numberedHeading    = regexp.MustCompile(`(?i)^(?:([0-9]{1,3}|[IVXLCDM]{1,8})\s*[\.\-:–—]\s*)([^\n]{1,80})$`)
	commonSection      = regexp.MustCompile(`(?i)^(?:Introduction|Preface|Prologue|Epilogue|Foreword|Afterword|Conclusion|Acknowledg?ments|Appendix(?:\s+[A-Z]|\s+[IVXLCDM]{1,8}|\s+\d{1,3})?)$`)
)

var (
	chapterFull   = regexp.MustCompile(`(?i)^(?:ch|chap|chapter)\s*0*(\d{1,5})$`)
	partFull      = regexp.MustCompile(`(?i)^part\s*0*(\d{1,5})$`)
	prefaceFull   = regexp.MustCompile(`(?i)^preface(?:\s*0*(\d{1,5}))?$`)
	prologueFull  = regexp.MustCompile(`(?i)^prolog(?:ue)?(?:\s*0*(\d{1,5}))?$`)
	epilogueFull  = regexp.MustCompile(`(?i)^epilog(?:ue)?(?:\s*0*(\d{1,5}))?$`)
	appendixFull  = regexp.MustCompile(`(?i)^appendix(?:\s+([A-Za-z]|[IVXLCDMivxlcdm]{1,8}|\d{1,3}))?$`)
	introFull     = regexp.MustCompile(`(?i)^intro(?:duction)?(?:\s*0*(\d{1,5}))?$`)
	forewordFull  = regexp.MustCompile(`(?i)^foreword(?:\s*0*(\d{1,5}))?$`)
	afterwordFull = regexp.MustCompile(`(?i)^afterword(?:\s*0*(\d{1,5}))?$`)
	chapterIn     = regexp.MustCompile(`(?i)\bchapter\s*0*(\d{1,5})\b`)
	partIn        = regexp.MustCompile(`(?i)\bpart\s*0*(\d{1,5})\b`)
	epubIn        = regexp.MustCompile(`(?i)\bepub\s*0*(\d{1,5})\b`)
	separatorRuns = regexp.MustCompile(`[_\-]+`)
	spaceRuns     = regexp.MustCompile(`\s+`)
)

// isGenericChapterTitle reports whether a title is a file name or split
// artifact rather than a human-written chapter heading.
func isGenericChapterTitle(val string) bool {
	if val == "" {
		return true
	}
	stripped := strings.TrimSpace(val)
	lowered := strings.ToLower(stripped)
	if strings.HasSuffix(lowered, ".xhtml") || strings.HasSuffix(lowered, ".html") || strings.HasSuffix(lowered, ".htm") {
		return true
	}
	if strings.Contains(lowered, "!oebps!") || strings.Contains(stripped, "!!") {
		return true
	}
	if strings.Contains(lowered, "index_split") || strings.Contains(lowered, "index split") {
		return true
	}
	if kepubSplitPattern.MatchString(lowered) {
		return true
	}
	if splitPattern.MatchString(lowered) {
		return true
	}
	if isbnPrefixPattern.MatchString(lowered) {
		return true
	}
	if chapterNumPattern.MatchString(lowered) {
		return true
	}
	if chapterAbbrPattern.MatchString(lowered) {
		return true
	}
	if shortMarkerPattern.MatchString(stripped) {
		return true
	}
	return false
}

// cleanTitle trims a candidate title and, when suppression is on, rejects
// filename-like values. Returns an empty string for anything unusable.
func cleanTitle(val string, suppressFilenameLike bool) string {
	v := strings.TrimSpace(val)
	if v == "" {
		return ""
	}
	if suppressFilenameLike && isGenericChapterTitle(v) {
		return ""
	}
	return v
}

// titleFromContext tries to pull a chapter heading out of the bookmark's
// surrounding text. Headings usually sit in the first lines of the context.
func titleFromContext(context string) string {
	ctx := strings.TrimSpace(context)
	if ctx == "" {
		return ""
	}
	head := ctx
	if len(head) > 400 {
		head = head[:400]
	}
	var lines []string
	for _, ln := range strings.Split(head, "\n") {
		if s := strings.TrimSpace(ln); s != "" {
			lines = append(lines, s)
		}
	}
	if len(lines) > 3 {
		lines = lines[:3]
	}

	for _, ln := range lines {
		if m := chapterPartPattern.FindStringSubmatch(ln); m != nil {
			return formatChapterPart(m)
		}
	}

	// Numbered headings like '7. How ...'; labeled as sections to avoid
	// misreading ordinary list items as chapters.
	for _, ln := range lines {
		if m := numberedHeading.FindStringSubmatch(ln); m != nil {
			if rest := strings.TrimSpace(m[2]); rest != "" {
				return fmt.Sprintf("Section %s: %s", m[1], rest)
			}
		}
	}

	for _, ln := range lines {
		if commonSection.MatchString(ln) {
			return ln
		}
	}

	if m := chapterPartPattern.FindStringSubmatch(ctx); m != nil {
		return formatChapterPart(m)
	}
	return ""
}

func formatChapterPart(m []string) string {
	kind := "Part"
	if strings.EqualFold(m[1], "chapter") {
		kind = "Chapter"
	}
	if rest := strings.TrimSpace(m[3]); rest != "" {
		return fmt.Sprintf("%s %s: %s", kind, m[2], rest)
	}
	return kind + " " + m[2]
}

// fallbackTitleFromContentID derives a readable title from the content file
// name when nothing better exists: 'chapter_6.xhtml' -> 'Chapter 6'.
func fallbackTitleFromContentID(contentID string) string {
	if contentID == "" {
		return ""
	}
	p := contentID
	if u, err := url.Parse(contentID); err == nil && u.Path != "" {
		p = u.Path
	}
	p = normalizeID(p)
	tail := tailAfterBangBang(contentID)
	if tail == "" {
		tail = p
	}
	parts := pathSeparators.Split(tail, -1)
	base := parts[len(parts)-1]
	if i := strings.Index(base, "#"); i != -1 {
		base = base[:i]
	}
	base = htmlExtension.ReplaceAllString(base, "")
	name := separatorRuns.ReplaceAllString(base, " ")
	name = strings.TrimSpace(spaceRuns.ReplaceAllString(name, " "))
	if name == "" {
		return ""
	}

	if m := chapterFull.FindStringSubmatch(name); m != nil {
		return numberedLabel("Chapter", m[1])
	}
	if m := partFull.FindStringSubmatch(name); m != nil {
		return numberedLabel("Part", m[1])
	}
	if m := prefaceFull.FindStringSubmatch(name); m != nil {
		return optionalNumberedLabel("Preface", m[1])
	}
	if m := prologueFull.FindStringSubmatch(name); m != nil {
		return optionalNumberedLabel("Prologue", m[1])
	}
	if m := epilogueFull.FindStringSubmatch(name); m != nil {
		return optionalNumberedLabel("Epilogue", m[1])
	}
	if m := appendixFull.FindStringSubmatch(name); m != nil {
		if m[1] != "" {
			return "Appendix " + m[1]
		}
		return "Appendix"
	}
	if m := introFull.FindStringSubmatch(name); m != nil {
		return optionalNumberedLabel("Introduction", m[1])
	}
	if m := forewordFull.FindStringSubmatch(name); m != nil {
		return optionalNumberedLabel("Foreword", m[1])
	}
	if m := afterwordFull.FindStringSubmatch(name); m != nil {
		return optionalNumberedLabel("Afterword", m[1])
	}

	// Labels buried in noise, e.g. '9781234567890 EPUB 8'
	if m := chapterIn.FindStringSubmatch(name); m != nil {
		return numberedLabel("Chapter", m[1])
	}
	if m := partIn.FindStringSubmatch(name); m != nil {
		return numberedLabel("Part", m[1])
	}
	if m := epubIn.FindStringSubmatch(name); m != nil {
		return numberedLabel("EPUB", m[1])
	}

	return name
}

func numberedLabel(label, digits string) string {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return label
	}
	return fmt.Sprintf("%s %d", label, n)
}

func optionalNumberedLabel(label, digits string) string {
	if digits == "" {
		return label
	}
	return numberedLabel(label, digits)
}

// determineChapterTitle picks the best available chapter title for a bookmark,
// walking from direct content-table matches down to file-name fallbacks.
func determineChapterTitle(row BookmarkRow, chRow *ContentRow, cat *Catalog, suppress bool) string {
	var title string
	if chRow != nil {
		title = cleanTitle(chRow.Title, suppress)
	}
	contID := row.ContentID

	if title == "" {
		if ctxTitle := titleFromContext(row.ContextString); ctxTitle != "" {
			title = cleanTitle(ctxTitle, suppress)
		}
	}

	// Rows sharing the fragment base are other editions of the same chapter.
	if title == "" {
		if fb := fragmentBase(contID); fb != "" {
			title = bestScoredTitle(cat.byFragBase[fb], tailAfterBangBang(contID), suppress)
		}
	}

	if title == "" {
		if tail := tailAfterBangBang(contID); tail != "" {
			title = longestTitle(cat.byTail[tail], suppress)
		}
	}

	if title == "" {
		if pa := pAnchor(contID); pa != "" {
			title = bestScoredTitle(cat.byPAnchor[pa], tailAfterBangBang(contID), suppress)
		}
	}

	// Sibling tails with a '-N' suffix map split files back to the ToC entry.
	if title == "" {
		if tail := tailAfterBangBang(contID); tail != "" {
			for n := 1; n <= 5; n++ {
				if t := deepestTitle(cat.byTail[fmt.Sprintf("%s-%d", tail, n)], suppress); t != "" {
					title = t
					break
				}
			}
		}
	}

	if title == "" {
		if pb := preBang(contID); pb != "" {
			title = bestScoredTitle(cat.byPreBang[pb], tailAfterBangBang(contID), suppress)
		}
	}

	if title == "" {
		fallback := stripFragment(contID)
		if fallback == "" {
			fallback = contID
		}
		title = cleanTitle(fallbackTitleFromContentID(fallback), suppress)
	}
	return title
}
