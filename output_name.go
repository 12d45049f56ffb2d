package main

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"

	"github.com/pivolan/churn_chart/plot"
)

var nonAlphanumeric = regexp.MustCompile("[^a-z0-9]+")

// cleanFileName turns a label into a lowercase ASCII name made of [a-z0-9_].
func cleanFileName(label string) string {
	cleaned := strings.ToLower(unidecode.Unidecode(strings.TrimSpace(label)))
	cleaned = nonAlphanumeric.ReplaceAllString(cleaned, "_")
	return strings.Trim(cleaned, "_")
}

// outputFileName derives the default output file for a chart,
// e.g. "Number of Customers Who Left" rendered as png gives number_of_customers_who_left.png.
func outputFileName(label, format string) string {
	name := cleanFileName(label)
	if name == "" {
		name = "chart"
	}
	return name + plot.Extension(format)
}
