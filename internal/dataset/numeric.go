package dataset

import (
	"strconv"
	"strings"
)

// ParseNumber parses a price or percentage cell. It accepts "12%", "Rs. 1,299.00",
// "1.299,00" and plain floats, auto-detecting the decimal separator.
func ParseNumber(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.ReplaceAll(raw, "%", "")
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw[numberStart(raw):])
	if raw == "" {
		return 0, false
	}
	dec := '.'
	cpos := strings.LastIndex(raw, ",")
	dpos := strings.LastIndex(raw, ".")
	switch {
	case cpos >= 0 && dpos >= 0 && cpos > dpos:
		dec = ','
	case cpos >= 0 && dpos < 0 && len(raw)-cpos-1 != 3:
		// "12,5" is a decimal comma; "1,299" is a thousands group
		dec = ','
	}
	for _, sep := range []rune{',', '.', ' '} {
		if sep != dec {
			raw = strings.ReplaceAll(raw, string(sep), "")
		}
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// numberStart skips a currency prefix such as "Rs." or "$". A dot right after
// a letter belongs to the prefix.
func numberStart(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c == '-', c == '+':
			return i
		case c == '.' && i+1 < len(s) && isDigit(s[i+1]) && (i == 0 || !isLetter(s[i-1])):
			return i
		}
	}
	return len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
