package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup/internal/badge"
)

// Prints a Markdown coverage badge for ./coverage.xml.
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := run(badge.DefaultReportPath, os.Stdout); err != nil {
		logger.Fatal("failed to render coverage badge",
			zap.String("path", badge.DefaultReportPath), zap.Error(err))
	}
}

// run writes the badge line for the report at path to w.
func run(path string, w io.Writer) error {
	pct, err := badge.ReadCoverage(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, badge.Markdown(pct))
	return err
}
