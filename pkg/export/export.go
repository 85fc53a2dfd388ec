// Package export writes built table pages as downloadable files.
package export

import (
	"fmt"
	"io"

	"lockstats/pkg/export/delimited"
	"lockstats/pkg/export/spreadsheet"
	"lockstats/pkg/export/structured"
	"lockstats/pkg/export/text"
	"lockstats/pkg/table"
)

// Exporter interface defines how a page is written in one file format
type Exporter interface {
	ContentType() string
	Extension() string
	Write(w io.Writer, page *table.Page) error
}

// Formats lists every supported format in the order offered to users.
func Formats() []string {
	return []string{
		delimited.CSV,
		delimited.TSV,
		spreadsheet.Name,
		structured.JSON,
		structured.YAML,
		text.Name,
	}
}

// New returns an Exporter interface based on the provided format
func New(format string) (Exporter, error) {
	switch format {
	case delimited.CSV:
		return delimited.NewCSV(), nil
	case delimited.TSV:
		return delimited.NewTSV(), nil
	case spreadsheet.Name:
		return &spreadsheet.Spreadsheet{}, nil
	case structured.JSON:
		return structured.NewJSON(), nil
	case structured.YAML:
		return structured.NewYAML(), nil
	case text.Name:
		return &text.Text{}, nil
	default:
		return nil, fmt.Errorf("unknown export format: %s", format)
	}
}

// Filename returns the download file name for base in the exporter's format.
func Filename(base string, e Exporter) string {
	return base + "." + e.Extension()
}
