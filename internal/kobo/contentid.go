package kobo

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Kobo ContentIDs come in several shapes depending on the book format:
//
//	/mnt/onboard/book.epub#p96          sideloaded epub with a page anchor
//	/mnt/onboard/book.kepub.epub!!OEBPS!ch06.xhtml#p40-2   kepub container path
//	uuid!OEBPS!xhtml/ch06.xhtml         store-bought book keyed by uuid
//
// The helpers below derive the lookup keys used to match Bookmark rows
// against the content table.

var (
	pathSeparators = regexp.MustCompile(`[!/]+`)
	htmlExtension  = regexp.MustCompile(`(?i)\.(x?html?)$`)
	digitRuns      = regexp.MustCompile(`\d{1,6}`)
)

// normalizeID URL-decodes a ContentID-like string, leaving it untouched when
// it is not valid percent-encoding.
func normalizeID(s string) string {
	if s == "" {
		return ""
	}
	if dec, err := url.PathUnescape(s); err == nil {
		return dec
	}
	return s
}

// stripAfterBangBang cuts a ContentID at the kepub '!!' container marker.
func stripAfterBangBang(contentID string) string {
	if i := strings.Index(contentID, "!!"); i != -1 {
		return contentID[:i]
	}
	return contentID
}

// stripFragment removes any '#p123' style anchor. Bookmark.ContentID usually
// carries one while the matching content row usually does not.
func stripFragment(contentID string) string {
	if i := strings.Index(contentID, "#"); i != -1 {
		return contentID[:i]
	}
	return contentID
}

// fragmentBase keeps the path and the anchor up to its first hyphen:
// '/path/file.xhtml#p80-2' -> '/path/file.xhtml#p80'. Empty when there is no
// fragment at all.
func fragmentBase(contentID string) string {
	i := strings.Index(contentID, "#")
	if i == -1 {
		return ""
	}
	pre, frag := contentID[:i], contentID[i+1:]
	if j := strings.Index(frag, "-"); j != -1 {
		frag = frag[:j]
	}
	return pre + "#" + frag
}

// preBang returns the path before the '!!' segment, or the fragment base when
// no '!!' is present. This identifies the book file a chapter belongs to.
func preBang(contentID string) string {
	if contentID == "" {
		return ""
	}
	if i := strings.Index(contentID, "!!"); i != -1 {
		return contentID[:i]
	}
	if fb := fragmentBase(contentID); fb != "" {
		return fb
	}
	return contentID
}

// tailAfterBangBang returns the container-internal path after '!!' (or after
// the first '!' for store books), without any fragment, URL-decoded:
// '/a/book!!OEBPS!xhtml/ch6.xhtml#p1-2' -> 'OEBPS!xhtml/ch6.xhtml'.
func tailAfterBangBang(contentID string) string {
	if contentID == "" {
		return ""
	}
	var tail string
	if i := strings.Index(contentID, "!!"); i != -1 {
		tail = contentID[i+2:]
	} else if i := strings.Index(contentID, "!"); i != -1 {
		tail = contentID[i+1:]
	} else {
		return ""
	}
	if j := strings.Index(tail, "#"); j != -1 {
		tail = tail[:j]
	}
	return normalizeID(tail)
}

// pAnchor extracts the 'pNNN' anchor from a fragment: '/path#p167-2' -> 'p167'.
func pAnchor(contentID string) string {
	i := strings.Index(contentID, "#")
	if i == -1 {
		return ""
	}
	frag := contentID[i+1:]
	if j := strings.Index(frag, "-"); j != -1 {
		frag = frag[:j]
	}
	if strings.HasPrefix(frag, "p") {
		return frag
	}
	return ""
}

func basenameNoExt(tail string) string {
	if tail == "" {
		return ""
	}
	parts := pathSeparators.Split(tail, -1)
	base := parts[len(parts)-1]
	return htmlExtension.ReplaceAllString(base, "")
}

func extractNumbers(s string) []int {
	var nums []int
	for _, m := range digitRuns.FindAllString(s, -1) {
		if n, err := strconv.Atoi(m); err == nil {
			nums = append(nums, n)
		}
	}
	return nums
}

func splitDirs(tail string) []string {
	if tail == "" {
		return nil
	}
	var dirs []string
	for _, seg := range pathSeparators.Split(tail, -1) {
		if seg != "" {
			dirs = append(dirs, seg)
		}
	}
	return dirs
}

// scoreTailSimilarity rates how likely two container tails refer to the same
// chapter across different editions of a book. Exact tails score highest,
// then matching basenames, then numeric closeness and shared directories.
func scoreTailSimilarity(curTail, candTail string) int {
	if candTail == "" {
		return 0
	}
	score := 0
	if candTail == curTail {
		score += 100
	}
	curBase := basenameNoExt(curTail)
	candBase := basenameNoExt(candTail)
	if curBase != "" && candBase != "" && curBase == candBase {
		score += 80
	}
	curNums := extractNumbers(curBase)
	candNums := extractNumbers(candBase)
	if len(curNums) > 0 && len(candNums) > 0 {
		diff := curNums[0] - candNums[0]
		if diff < 0 {
			diff = -diff
		}
		if diff > 50 {
			diff = 50
		}
		score += 50 - diff
	}
	curDirs := splitDirs(curTail)
	candDirs := splitDirs(candTail)
	if len(curDirs) > 0 && len(candDirs) > 0 {
		common := 0
		for i := 0; i < len(curDirs) && i < len(candDirs); i++ {
			if curDirs[i] != candDirs[i] {
				break
			}
			common++
		}
		if common*5 > 20 {
			score += 20
		} else {
			score += common * 5
		}
	}
	return score
}
