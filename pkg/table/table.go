// Package table is a small report engine: column definitions, sorting,
// pagination and a Display/Export switch over rows pulled from a Source.
// Callers compose a Table with a Formatter to shape individual cells.
package table

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// DefaultPageSize is used when a table does not configure one.
const DefaultPageSize = 30

// ErrNoSource is returned by Build when no Source was bound.
var ErrNoSource = errors.New("table has no data source")

// Mode selects between human formatted and machine readable cells.
type Mode int

const (
	// Display renders values for people.
	Display Mode = iota
	// Export renders raw values for downloads.
	Export
)

func (m Mode) String() string {
	switch m {
	case Display:
		return "display"
	case Export:
		return "export"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// MarshalText encodes the mode by name so JSON and YAML pages read
// "display" or "export".
func (m Mode) MarshalText() ([]byte, error) {
	switch m {
	case Display, Export:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("unknown table mode %d", int(m))
	}
}

func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "display":
		*m = Display
	case "export":
		*m = Export
	default:
		return fmt.Errorf("unknown table mode %q", text)
	}
	return nil
}

// Column describes one column of a table over rows of type R.
type Column[R any] struct {
	Name     string
	Header   string
	Sortable bool
	// Value returns the raw cell value.
	Value func(R) any
	// Link, when set, turns the displayed cell into a link.
	Link func(R) string
}

// Formatter overrides cell values per column. It reports false for columns
// it leaves to Column.Value.
type Formatter[R any] interface {
	FormatCell(column string, row R, mode Mode) (any, bool)
}

// Query is what a Source needs to fetch one slice of rows.
type Query struct {
	Sort   string
	Desc   bool
	Offset int
	Limit  int
}

// Source supplies the rows of a table.
type Source[R any] interface {
	Count(ctx context.Context) (int64, error)
	Fetch(ctx context.Context, q Query) ([]R, error)
}

// Cell is one rendered value.
type Cell struct {
	Value any    `json:"value" yaml:"value"`
	Href  string `json:"href,omitempty" yaml:"href,omitempty"`
}

// Page is a built table, ready to be rendered or exported.
type Page struct {
	ID       string   `json:"id" yaml:"id"`
	Columns  []string `json:"columns" yaml:"columns"`
	Headers  []string `json:"headers" yaml:"headers"`
	Rows     [][]Cell `json:"rows" yaml:"rows"`
	Total    int64    `json:"total" yaml:"total"`
	Page     int      `json:"page" yaml:"page"`
	PageSize int      `json:"page_size" yaml:"page_size"`
	Sort     string   `json:"sort,omitempty" yaml:"sort,omitempty"`
	Desc     bool     `json:"desc,omitempty" yaml:"desc,omitempty"`
	Mode     Mode     `json:"mode" yaml:"mode"`
}

// Pages returns the number of pages at the page's size.
func (p *Page) Pages() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return 1
	}
	return int((p.Total + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// Table is a configurable report over rows of type R.
type Table[R any] struct {
	id          string
	columns     []Column[R]
	baseURL     *url.URL
	sortable    bool
	defaultSort string
	defaultDesc bool
	pageSize    int
	formats     []string
	source      Source[R]
	formatter   Formatter[R]
	labels      Labels
}

// New returns an empty table. uniqueID must differ between tables rendered
// on the same page; it namespaces the table's request parameters.
func New[R any](uniqueID string) *Table[R] {
	return &Table[R]{
		id:       uniqueID,
		pageSize: DefaultPageSize,
		labels:   DefaultLabels,
	}
}

// ID returns the table's unique id.
func (t *Table[R]) ID() string {
	return t.id
}

// DefineColumns sets the columns in display order.
func (t *Table[R]) DefineColumns(columns ...Column[R]) {
	t.columns = columns
}

// Columns returns the column names in display order.
func (t *Table[R]) Columns() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Headers returns the column headers in display order.
func (t *Table[R]) Headers() []string {
	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.Header
	}
	return headers
}

// DefineBaseURL sets the URL that sort, page and download links point at.
func (t *Table[R]) DefineBaseURL(u *url.URL) {
	t.baseURL = u
}

// Sortable enables or disables sorting and sets the default order.
func (t *Table[R]) Sortable(enabled bool, defaultColumn string, desc bool) {
	t.sortable = enabled
	t.defaultSort = defaultColumn
	t.defaultDesc = desc
}

// Pageable sets the number of rows per page. Zero or less disables paging.
func (t *Table[R]) Pageable(pageSize int) {
	t.pageSize = pageSize
}

// Downloadable enables the given export formats.
func (t *Table[R]) Downloadable(formats ...string) {
	t.formats = formats
}

// Formats returns the enabled export formats.
func (t *Table[R]) Formats() []string {
	return t.formats
}

// CanDownload reports whether format is enabled.
func (t *Table[R]) CanDownload(format string) bool {
	for _, f := range t.formats {
		if f == format {
			return true
		}
	}
	return false
}

// SetSource binds the data source.
func (t *Table[R]) SetSource(src Source[R]) {
	t.source = src
}

// SetFormatter binds the cell formatter.
func (t *Table[R]) SetFormatter(f Formatter[R]) {
	t.formatter = f
}

// SetLabels replaces the texts used by Render.
func (t *Table[R]) SetLabels(l Labels) {
	t.labels = l
}

// CountTotal returns the number of rows of the bound source.
func (t *Table[R]) CountTotal(ctx context.Context) (int64, error) {
	if t.source == nil {
		return 0, ErrNoSource
	}
	return t.source.Count(ctx)
}

// Build fetches and formats the rows for req. Display requests get one
// page; Export requests get every row in a single fetch.
func (t *Table[R]) Build(ctx context.Context, req Request) (*Page, error) {
	if t.source == nil {
		return nil, ErrNoSource
	}
	req = t.normalize(req)

	total, err := t.source.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count rows of table %s: %w", t.id, err)
	}

	page := &Page{
		ID:       t.id,
		Columns:  t.Columns(),
		Headers:  t.Headers(),
		Rows:     [][]Cell{},
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Sort:     req.Sort,
		Desc:     req.Desc,
		Mode:     req.Mode,
	}

	q := Query{Sort: req.Sort, Desc: req.Desc}
	all := req.Mode == Export || req.PageSize <= 0
	if all {
		// A zero Limit fetches every row, including rows added since Count.
		page.Page = 0
		page.PageSize = 0
	} else {
		if total == 0 {
			return page, nil
		}
		if last := page.Pages() - 1; page.Page > last {
			page.Page = last
		}
		q.Offset = page.Page * req.PageSize
		q.Limit = req.PageSize
	}

	rows, err := t.source.Fetch(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rows of table %s: %w", t.id, err)
	}
	for _, row := range rows {
		cells := make([]Cell, len(t.columns))
		for i, col := range t.columns {
			cells[i] = t.cell(col, row, req.Mode)
		}
		page.Rows = append(page.Rows, cells)
	}
	if n := int64(len(page.Rows)); all && n > page.Total {
		page.Total = n
	}
	return page, nil
}

func (t *Table[R]) cell(col Column[R], row R, mode Mode) Cell {
	var (
		value   any
		handled bool
	)
	if t.formatter != nil {
		value, handled = t.formatter.FormatCell(col.Name, row, mode)
	}
	if !handled && col.Value != nil {
		value = col.Value(row)
	}
	c := Cell{Value: value}
	if mode == Display && col.Link != nil {
		c.Href = col.Link(row)
	}
	return c
}

func (t *Table[R]) sortableColumn(name string) bool {
	if !t.sortable || name == "" {
		return false
	}
	for _, c := range t.columns {
		if c.Name == name {
			return c.Sortable
		}
	}
	return false
}
