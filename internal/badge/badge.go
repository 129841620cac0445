// Package badge turns a Cobertura coverage report into a shields.io badge.
package badge

import (
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// DefaultReportPath is read by cmd/badge from the working directory.
const DefaultReportPath = "coverage.xml"

const (
	shieldsBaseURL = "https://img.shields.io/badge"
	label          = "coverage"
)

// ErrNoLineRate is returned when the report root lacks a line-rate attribute.
var ErrNoLineRate = errors.New("coverage report has no line-rate attribute")

// report captures only the root element's line-rate, whatever the root is called.
type report struct {
	LineRate string `xml:"line-rate,attr"`
}

// ReadCoverage parses the report at path and returns line coverage as a percentage.
func ReadCoverage(path string) (float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read coverage report: %w", err)
	}
	return ParseCoverage(raw)
}

// ParseCoverage is ReadCoverage on an in-memory report.
func ParseCoverage(raw []byte) (float64, error) {
	var r report
	if err := xml.Unmarshal(raw, &r); err != nil {
		return 0, fmt.Errorf("parse coverage report: %w", err)
	}
	if r.LineRate == "" {
		return 0, ErrNoLineRate
	}
	rate, err := strconv.ParseFloat(r.LineRate, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid line-rate %q: %w", r.LineRate, err)
	}
	return rate * 100, nil
}

// Color picks the badge color for a percentage.
func Color(pct float64) string {
	switch {
	case pct < 50:
		return "red"
	case pct < 80:
		return "yellow"
	default:
		return "brightgreen"
	}
}

// URL builds the shields.io static badge URL. The message is rounded,
// the color is not.
func URL(pct float64) string {
	message := fmt.Sprintf("%.0f%%", pct)
	return fmt.Sprintf("%s/%s-%s-%s",
		shieldsBaseURL, url.PathEscape(label), url.PathEscape(message), Color(pct))
}

// Markdown renders the badge as a Markdown image.
func Markdown(pct float64) string {
	return fmt.Sprintf("![Coverage Badge](%s)", URL(pct))
}
