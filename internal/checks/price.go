// Package checks holds the pure assertions the scenarios apply to values
// read off the page: prices, colours, labels and geometry.
package checks

import (
	"regexp"
	"strconv"
)

var priceRe = regexp.MustCompile(`£(\d+\.?\d*)`)

// ExtractPrice returns the first pound amount in text
func ExtractPrice(text string) (float64, bool) {
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ValidPriceFormat reports whether text contains a price like £1.25
func ValidPriceFormat(text string) bool {
	return priceRe.MatchString(text)
}

// PriceInRange reports whether p lies within [min, max]
func PriceInRange(p, min, max float64) bool {
	return p >= min && p <= max
}
