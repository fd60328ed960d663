package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// amountPat matches an Indian-locale money token: optional ₹/Rs/INR prefix,
// comma-grouped digits, optional lakh/crore/k multiplier. Reused inside the
// field rule tables via two capture groups (digits, unit).
const amountPat = `(?:₹|rs\.?|inr)?\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(lakhs?|lacs?|crores?|cr|k|thousand)?`

var bareAmountRe = regexp.MustCompile(`(?i)` + amountPat)

// parseNumberToken converts a matched digits+unit pair to rupees.
// "5,00,000" -> 500000; "2.5 lakh" -> 250000; "1 crore" -> 10000000; "50k" -> 50000.
func parseNumberToken(digits, unit string) (float64, bool) {
	clean := strings.ReplaceAll(digits, ",", "")
	n, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "lakh", "lakhs", "lac", "lacs":
		n *= 100_000
	case "crore", "crores", "cr":
		n *= 10_000_000
	case "k", "thousand":
		n *= 1_000
	}
	return n, true
}

// FirstAmount returns the first money token anywhere in the text, in rupees.
func FirstAmount(text string) (float64, bool) {
	return firstAmount(text)
}

// firstAmount returns the first money token anywhere in the text.
func firstAmount(text string) (float64, bool) {
	m := bareAmountRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return parseNumberToken(m[1], m[2])
}

// firstInt returns the first small integer in the text, for count-like
// answers. Digits only; spelled-out numbers are not recognized.
func firstInt(text string) (int, bool) {
	m := regexp.MustCompile(`\b([0-9]{1,3})\b`).FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
