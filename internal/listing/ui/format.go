// Package ui builds the view models rendered by the listing templates: the
// filter panel, doctor cards and pagination controls.
package ui

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/apollo-healthcare/apollo-web/internal/directory"
)

var (
	feePrinter = message.NewPrinter(language.English)
	titleCaser = cases.Title(language.English)
)

// FormatRating renders a rating with exactly one decimal place.
func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}

// FormatFee renders a consultation fee in rupees with thousands grouping.
func FormatFee(fee int) string {
	return feePrinter.Sprintf("₹%d", fee)
}

// TitleCase capitalises a label such as a gender value.
func TitleCase(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}

// Href builds a listing URL for filters followed by extra query pairs.
func Href(basePath string, filters directory.FilterState, extra ...[2]string) string {
	pairs := append(filters.Pairs(), extra...)
	if len(pairs) == 0 {
		return basePath
	}
	return basePath + "?" + directory.EncodeQuery(pairs)
}
