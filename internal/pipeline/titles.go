package pipeline

import (
	"regexp"
	"strings"
)

// Show titles carry marketing text around the performer names. The
// resolver strips the boilerplate, cuts tour subtitles, then splits
// what remains on co-headliner conjunctions. There is no guarantee of
// correctness: a band with "and" in its name will be split wrongly,
// and the catalog search downstream tolerates the resulting misses.

// leadBoilerplate are phrases that prefix a title without naming a
// performer. Matched case-insensitively at the start of the title.
var leadBoilerplate = []string{
	"an evening with ",
	"an acoustic evening with ",
	"a night with ",
	"live nation presents ",
}

// guestRE removes the "special guest(s)" qualifier so the guest name
// survives as its own candidate after the conjunction split.
var guestRE = regexp.MustCompile(`(?i)\bspecial\s+guests?\b:?\s*`)

// subtitleRE cuts tour subtitles: everything from a colon or a
// spaced dash to the end of the title.
var subtitleRE = regexp.MustCompile(`\s*(?::|\s[-–—]\s).*$`)

// parenRE drops parenthetical qualifiers like "(Rescheduled)" or "(16+)".
var parenRE = regexp.MustCompile(`\s*\([^)]*\)`)

// conjunctionRE separates co-headliners.
var conjunctionRE = regexp.MustCompile(`(?i)\s*\+\s*|\s*&\s*|\s+and\s+|\s+with\s+|\s*,\s*`)

// SplitTitle extracts candidate artist names from a free-text show
// title. Candidates come back in billing order, deduplicated, and may
// be empty when nothing survives the stripping.
func SplitTitle(title string) []string {
	cleaned := strings.TrimSpace(title)

	for _, prefix := range leadBoilerplate {
		if len(cleaned) >= len(prefix) && strings.EqualFold(cleaned[:len(prefix)], prefix) {
			cleaned = cleaned[len(prefix):]
			break
		}
	}

	cleaned = parenRE.ReplaceAllString(cleaned, "")
	cleaned = subtitleRE.ReplaceAllString(cleaned, "")
	cleaned = guestRE.ReplaceAllString(cleaned, "")

	parts := conjunctionRE.Split(cleaned, -1)

	seen := make(map[string]bool, len(parts))
	candidates := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, name)
	}

	return candidates
}
