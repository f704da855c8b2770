package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	reQ   = regexp.MustCompile(`^[\p{L}\p{N} _'.,&\-]{1,50}$`)
	reKey = regexp.MustCompile(`^[a-z-]{1,40}$`)
)

// maxLookupRunes bounds identifiers, categories and variants taken from
// requests. Existence is decided by the catalog.
const maxLookupRunes = 64

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	s = truncate(s, 50)
	return s, reQ.MatchString(s)
}

func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	} // clamp to avoid abuse
	return n
}

// Quantity parses a cart line quantity. Bounds are applied by the cart.
func Quantity(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ID checks a product identifier is usable as a lookup key. Whether it
// exists is up to the catalog.
func ID(s string) (string, bool) {
	return lookup(s)
}

// Category checks a category tag such as "Niños" or "Accesorios & Más".
func Category(s string) (string, bool) {
	return lookup(s)
}

// Variant checks a color or design pick. Empty means "use the default".
func Variant(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return lookup(s)
}

// Key validates a shipping or payment method key. Empty means "none selected".
func Key(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, reKey.MatchString(s)
}

func lookup(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !utf8.ValidString(s) || utf8.RuneCountInString(s) > maxLookupRunes {
		return "", false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "", false
		}
	}
	return s, true
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
