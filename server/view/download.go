package view

import (
	"context"
	"fmt"
	"io"

	"lockstats/pkg/export"
	"lockstats/pkg/table"
)

// Download is a fully built export waiting to be written.
type Download struct {
	Filename    string
	ContentType string
	page        *table.Page
	exporter    export.Exporter
}

// Write streams the export to w.
func (d *Download) Write(w io.Writer) error {
	return d.exporter.Write(w, d.page)
}

func prepareDownload[R any](ctx context.Context, t *table.Table[R], base string, req table.Request) (*Download, error) {
	if !t.CanDownload(req.Download) {
		return nil, fmt.Errorf("download format %q is not enabled", req.Download)
	}
	exporter, err := export.New(req.Download)
	if err != nil {
		return nil, err
	}
	req.Mode = table.Export
	page, err := t.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Download{
		Filename:    export.Filename(base, exporter),
		ContentType: exporter.ContentType(),
		page:        page,
		exporter:    exporter,
	}, nil
}
