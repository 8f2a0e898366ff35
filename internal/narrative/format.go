package narrative

import (
	"strconv"
	"strings"
)

// Formatter renders numeric values at the configured display precision.
// Every number inserted into narrative text goes through it, so the same
// finding shows the same digits in all three documents.
type Formatter struct {
	ValueDecimals   int
	PercentDecimals int
}

// Num formats a statistic value (correlation, skewness, range, score).
func (f Formatter) Num(v float64) string {
	return strconv.FormatFloat(v, 'f', f.ValueDecimals, 64)
}

// Pct formats a fraction as a percentage.
func (f Formatter) Pct(v float64) string {
	return strconv.FormatFloat(v*100, 'f', f.PercentDecimals, 64) + "%"
}

// Count formats an integer.
func (f Formatter) Count(n int) string {
	return strconv.Itoa(n)
}

// firstSentence returns the text up to and including the first period, used
// for the abbreviated executive-summary lines.
func firstSentence(text string) string {
	if idx := strings.Index(text, ". "); idx >= 0 {
		return text[:idx+1]
	}
	return text
}
