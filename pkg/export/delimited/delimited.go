package delimited

import (
	"encoding/csv"
	"fmt"
	"io"

	"lockstats/pkg/table"
)

const (
	CSV = "csv"
	TSV = "tsv"
)

// Delimited writes a header line followed by one line per row.
type Delimited struct {
	name        string
	comma       rune
	contentType string
}

// NewCSV returns a comma separated exporter.
func NewCSV() *Delimited {
	return &Delimited{name: CSV, comma: ',', contentType: "text/csv; charset=utf-8"}
}

// NewTSV returns a tab separated exporter.
func NewTSV() *Delimited {
	return &Delimited{name: TSV, comma: '\t', contentType: "text/tab-separated-values; charset=utf-8"}
}

func (d *Delimited) ContentType() string { return d.contentType }

func (d *Delimited) Extension() string { return d.name }

func (d *Delimited) Write(w io.Writer, page *table.Page) error {
	cw := csv.NewWriter(w)
	cw.Comma = d.comma

	if err := cw.Write(page.Headers); err != nil {
		return fmt.Errorf("failed to write %s header: %w", d.name, err)
	}
	if err := cw.WriteAll(page.Strings()); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", d.name, err)
	}
	return nil
}
