package utils

import (
	"strconv"
	"strings"
)

// CompareTimestamps compares two Slack "seconds.micros" timestamps
// numerically. Lexical comparison would misorder timestamps whose integer
// parts differ in length. Returns -1, 0 or 1.
func CompareTimestamps(a, b string) int {
	aSec, aFrac := splitTimestamp(a)
	bSec, bFrac := splitTimestamp(b)

	if aSec != bSec {
		if aSec < bSec {
			return -1
		}
		return 1
	}
	if aFrac != bFrac {
		if aFrac < bFrac {
			return -1
		}
		return 1
	}
	return 0
}

func splitTimestamp(ts string) (int64, int64) {
	secPart, fracPart, _ := strings.Cut(ts, ".")

	sec, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return 0, 0
	}

	if fracPart == "" {
		return sec, 0
	}
	// Normalize the fractional part to microseconds
	for len(fracPart) < 6 {
		fracPart += "0"
	}
	frac, err := strconv.ParseInt(fracPart[:6], 10, 64)
	if err != nil {
		return sec, 0
	}
	return sec, frac
}
