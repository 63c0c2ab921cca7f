package matching

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var amountNumberRe = regexp.MustCompile(`\d+(?:\.\d+)?|\.\d+`)

// ParseAmount turns a free-text funding ask such as "$1.5M" or "$250K-$400K
// SAFE" into dollars. The multiplier is picked by the first of k, m, b found
// anywhere in the text, and the number is the first numeric token. Zero and
// unparseable inputs report false.
func ParseAmount(s string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '$' || r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
	if cleaned == "" {
		return 0, false
	}

	multiplier := 1.0
	switch {
	case strings.Contains(cleaned, "k"):
		multiplier = 1_000
	case strings.Contains(cleaned, "m"):
		multiplier = 1_000_000
	case strings.Contains(cleaned, "b"):
		multiplier = 1_000_000_000
	}

	tok := amountNumberRe.FindString(cleaned)
	if tok == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) {
		return 0, false
	}
	return v * multiplier, true
}

var rangeSepRe = regexp.MustCompile(`(?i)\s*(?:-|–|\bto\b)\s*`)

// ParseAmountRange reads a ticket range such as "$25K-$150K" or "1 to 3M".
// A bare lower bound borrows the upper bound's suffix. A single amount sets
// only the minimum.
func ParseAmountRange(s string) (lo, hi *float64) {
	parts := rangeSepRe.Split(strings.TrimSpace(s), 2)
	if len(parts) == 1 {
		if v, ok := ParseAmount(parts[0]); ok {
			return &v, nil
		}
		return nil, nil
	}

	left, right := parts[0], parts[1]
	if suffix := amountSuffix(right); suffix != "" && amountSuffix(left) == "" {
		left += suffix
	}
	if v, ok := ParseAmount(left); ok {
		lo = &v
	}
	if v, ok := ParseAmount(right); ok {
		hi = &v
	}
	return lo, hi
}

func amountSuffix(s string) string {
	lower := strings.ToLower(s)
	for _, suffix := range []string{"k", "m", "b"} {
		if strings.Contains(lower, suffix) {
			return suffix
		}
	}
	return ""
}
