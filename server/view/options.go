// Package view holds the lockstats console tables: the lock overview and
// the per-task lock history.
package view

import (
	"time"

	"golang.org/x/text/language"

	"lockstats/pkg/export"
	"lockstats/pkg/i18n"
	"lockstats/pkg/table"
)

// Option configures a view.
type Option func(*options)

type options struct {
	translator *i18n.Translator
	location   *time.Location
	pageSize   int
	formats    []string
}

func newOptions(opts []Option) *options {
	o := &options{
		translator: i18n.New(language.English),
		location:   time.Local,
		pageSize:   table.DefaultPageSize,
		formats:    export.Formats(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLanguage renders headers and durations in tag.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.translator = i18n.New(tag)
	}
}

// WithLocation renders timestamps in the viewer's time zone.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithPageSize sets the number of rows per page.
func WithPageSize(n int) Option {
	return func(o *options) {
		o.pageSize = n
	}
}

// WithFormats restricts the offered download formats.
func WithFormats(formats ...string) Option {
	return func(o *options) {
		o.formats = formats
	}
}

func (o *options) labels() table.Labels {
	t := o.translator
	return table.Labels{
		Previous:   t.String(i18n.Previous),
		Next:       t.String(i18n.Next),
		DownloadAs: t.String(i18n.DownloadAs),
		Download:   t.String(i18n.Download),
		Empty:      t.String(i18n.NothingToShow),
	}
}
