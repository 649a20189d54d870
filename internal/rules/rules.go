// Package rules holds the field rules shared by the JSON API, the HTML forms
// and the services behind them.
package rules

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	CategoryNameMax = 60
	RegionMax       = 60
	FarmNameMax     = 80
	TeaNameMax      = 120
	// PriceMax is the largest value numeric(8,2) holds.
	PriceMax = "999999.99"
	// PricePlaces is the scale of every money column.
	PricePlaces = 2
	// CountMax is the largest value an integer column holds.
	CountMax = math.MaxInt32
)

var countryCodeRe = regexp.MustCompile(`^[A-Z]{2}$`)

var priceMax = decimal.RequireFromString(PriceMax)

// CountryCode reports whether code is exactly two uppercase ASCII letters.
func CountryCode(code string) bool {
	return countryCodeRe.MatchString(code)
}

// Capitalized reports whether s is non-blank and its first rune is uppercase.
func Capitalized(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// PositivePrice reports whether d is above zero and fits numeric(8,2).
func PositivePrice(d decimal.Decimal) bool {
	return d.IsPositive() && d.LessThanOrEqual(priceMax) && MoneyScale(d)
}

// MoneyScale reports whether d has no more than two significant decimal places.
func MoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(PricePlaces))
}

// FitsCount reports whether n fits an integer column.
func FitsCount(n int) bool {
	return n <= CountMax
}

// NotBefore reports whether day falls on or after the calendar day of now.
func NotBefore(day, now time.Time) bool {
	y1, m1, d1 := day.Date()
	y2, m2, d2 := now.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return !a.Before(b)
}

// TooLong reports whether s has more than max runes.
func TooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}
