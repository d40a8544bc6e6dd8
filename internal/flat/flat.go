// =============================================================================
// Community Order Filter - Flat Address Parser
// =============================================================================
//
// Residential flats are identified as <tower letters><digits>, for example
// "A204" (tower A, floor 2, apartment 04) or "B1007" (tower B, floor 10,
// apartment 07). This package turns such identifiers into a comparable key.
//
// The same Parse function is used for directory matching and for report
// ordering, so "matches the directory" and "sorts together" always agree.
//
// DIGIT SPLITTING:
//   3 digits  -> floor = first digit,    apartment = last two
//   4 digits  -> floor = first two,      apartment = last two
//   otherwise -> floor = whole digit run, apartment = 0
//
// =============================================================================

package flat

import (
	"regexp"
	"strconv"
	"strings"
)

// flatRe matches a whole identifier: tower letters followed by digits.
var flatRe = regexp.MustCompile(`(?i)^([A-Z]+)(\d+)$`)

// digitRunRe finds the first maximal run of digits anywhere in a string.
var digitRunRe = regexp.MustCompile(`\d+`)

// Key is the parsed form of a flat identifier.
type Key struct {
	// Tower is the uppercased letter prefix. For identifiers that do not
	// follow the <letters><digits> shape it holds the raw (trimmed) string.
	Tower string

	Floor     int
	Apartment int

	// IsEmpty is set only for blank input.
	IsEmpty bool
}

// Parse converts a flat identifier into a Key. It never fails: anything that
// is not blank and not <letters><digits> becomes a tower-only key.
func Parse(raw string) Key {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Key{IsEmpty: true}
	}

	m := flatRe.FindStringSubmatch(s)
	if m == nil {
		return Key{Tower: s}
	}

	key := Key{Tower: strings.ToUpper(m[1])}
	digits := m[2]

	switch len(digits) {
	case 3:
		key.Floor = atoi(digits[:1])
		key.Apartment = atoi(digits[1:])
	case 4:
		key.Floor = atoi(digits[:2])
		key.Apartment = atoi(digits[2:])
	default:
		key.Floor = atoi(digits)
	}

	return key
}

// ExtractLeadingDigits returns the first run of digits found anywhere in
// raw, or "" when there is none. "Flat A-204, Tower A" yields "204".
func ExtractLeadingDigits(raw string) string {
	return digitRunRe.FindString(strings.TrimSpace(raw))
}

// Compare orders keys by tower (lexicographic), then floor, then apartment.
// It returns -1, 0 or +1. IsEmpty is not considered here; callers that need
// blank flats last handle that themselves.
func Compare(a, b Key) int {
	switch {
	case a.Tower < b.Tower:
		return -1
	case a.Tower > b.Tower:
		return 1
	case a.Floor != b.Floor:
		if a.Floor < b.Floor {
			return -1
		}
		return 1
	case a.Apartment != b.Apartment:
		if a.Apartment < b.Apartment {
			return -1
		}
		return 1
	}
	return 0
}

// atoi parses a digit run; runs too long for an int collapse to 0.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
