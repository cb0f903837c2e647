package markdown

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// fallbackSlug is used when a heading has no sluggable characters.
const fallbackSlug = "section"

// Slugify turns heading text into an anchor id. ASCII letters, digits and Thai
// script survive; every other run of characters becomes a single hyphen.
func Slugify(text string) string {
	text = strings.ToLower(norm.NFC.String(text))

	var b strings.Builder
	pendingDash := false
	for _, r := range text {
		if keepRune(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	if b.Len() == 0 {
		return fallbackSlug
	}
	return b.String()
}

func keepRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r >= 0x0E00 && r <= 0x0E7F:
		return true
	}
	return false
}

// idSet hands out ids that are unique within one render.
type idSet struct {
	seen  map[string]bool
	count map[string]int
}

func newIDSet() *idSet {
	return &idSet{seen: map[string]bool{}, count: map[string]int{}}
}

// claim returns slug itself the first time, then slug-1, slug-2, ...
func (s *idSet) claim(slug string) string {
	id := slug
	for s.seen[id] {
		s.count[slug]++
		id = fmt.Sprintf("%s-%d", slug, s.count[slug])
	}
	s.seen[id] = true
	return id
}
