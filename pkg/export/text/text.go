package text

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"lockstats/pkg/table"
)

const Name = "text"

// Text writes a borderless, tab padded table for terminals.
type Text struct{}

func (*Text) ContentType() string { return "text/plain; charset=utf-8" }

func (*Text) Extension() string { return "txt" }

func (*Text) Write(w io.Writer, page *table.Page) error {
	tw := NewWriter(w)
	tw.SetHeader(page.Headers)
	tw.AppendBulk(page.Strings())
	tw.Render()
	return nil
}

// NewWriter returns a tablewriter configured in the console's plain style.
func NewWriter(w io.Writer) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(true)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetCenterSeparator("")
	tw.SetColumnSeparator("")
	tw.SetRowSeparator("")
	tw.SetHeaderLine(false)
	tw.SetBorder(false)
	tw.SetTablePadding("\t")
	tw.SetNoWhiteSpace(true)
	return tw
}
