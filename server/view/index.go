package view

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"lockstats/pkg/i18n"
	"lockstats/pkg/table"
	"lockstats/pkg/timefmt"
	interfaces "lockstats/server/repository/interface"
	model "lockstats/server/repository/model/lockstats"
)

// IndexTablePrefix prefixes the unique id of every lock overview table.
const IndexTablePrefix = "lockstats_index"

// Index is the overview of every known lock, linking each resource to
// its history.
type Index struct {
	table *table.Table[model.Lock]
	loc   *time.Location
	units timefmt.Units
}

// NewIndex configures the lock overview. detailURL returns the history
// page of a lock.
func NewIndex(repo interfaces.LockRepo, baseURL *url.URL, detailURL func(lockID uint) string, ids table.IDSource, opts ...Option) *Index {
	o := newOptions(opts)
	t := o.translator

	v := &Index{
		table: table.New[model.Lock](fmt.Sprintf("%s%d", IndexTablePrefix, ids.NextID())),
		loc:   o.location,
		units: t.Units(),
	}
	resource := table.Column[model.Lock]{Name: "resource", Header: t.String(i18n.HeaderResource), Sortable: true,
		Value: func(l model.Lock) any { return l.Resource }}
	if detailURL != nil {
		resource.Link = func(l model.Lock) string { return detailURL(l.ID) }
	}
	v.table.DefineColumns(
		table.Column[model.Lock]{Name: "id", Header: t.String(i18n.HeaderID), Sortable: true,
			Value: func(l model.Lock) any { return l.ID }},
		resource,
		table.Column[model.Lock]{Name: "duration", Header: t.String(i18n.HeaderDuration), Sortable: true,
			Value: func(l model.Lock) any { return l.Duration }},
		table.Column[model.Lock]{Name: "lockcount", Header: t.String(i18n.HeaderLockCount), Sortable: true,
			Value: func(l model.Lock) any { return l.LockCount }},
		table.Column[model.Lock]{Name: "host", Header: t.String(i18n.HeaderHost), Sortable: true,
			Value: func(l model.Lock) any { return l.Host }},
		table.Column[model.Lock]{Name: "gained", Header: t.String(i18n.HeaderGained), Sortable: true,
			Value: func(l model.Lock) any { return l.Gained }},
		table.Column[model.Lock]{Name: "released", Header: t.String(i18n.HeaderReleased), Sortable: true,
			Value: func(l model.Lock) any { return l.Released }},
		table.Column[model.Lock]{Name: "pid", Header: t.String(i18n.HeaderPID), Sortable: true,
			Value: func(l model.Lock) any { return l.PID }},
	)
	v.table.DefineBaseURL(baseURL)
	v.table.Sortable(true, "gained", true)
	v.table.Pageable(o.pageSize)
	v.table.Downloadable(o.formats...)
	v.table.SetLabels(o.labels())
	v.table.SetSource(lockSource{repo: repo})
	v.table.SetFormatter(v)
	return v
}

// ID returns the unique id of the underlying table.
func (v *Index) ID() string {
	return v.table.ID()
}

// CountTotal returns the number of known locks.
func (v *Index) CountTotal(ctx context.Context) (int64, error) {
	return v.table.CountTotal(ctx)
}

// FormatCell implements table.Formatter.
func (v *Index) FormatCell(column string, l model.Lock, mode table.Mode) (any, bool) {
	switch column {
	case "gained":
		return formatTimestamp(l.Gained, v.loc, mode), true
	case "released":
		return formatTimestamp(l.Released, v.loc, mode), true
	case "duration":
		return formatAverage(l.AverageDuration(), v.units, mode), true
	default:
		return nil, false
	}
}

// Table exposes the underlying table for request parsing and links.
func (v *Index) Table() *table.Table[model.Lock] {
	return v.table
}

func (v *Index) ParseRequest(values url.Values) table.Request {
	return v.table.ParseRequest(values)
}

func (v *Index) Build(ctx context.Context, req table.Request) (*table.Page, error) {
	return v.table.Build(ctx, req)
}

func (v *Index) Render(ctx context.Context, w io.Writer, req table.Request) error {
	return v.table.Render(ctx, w, req)
}

// Download builds every lock in req.Download format.
func (v *Index) Download(ctx context.Context, req table.Request) (*Download, error) {
	return prepareDownload(ctx, v.table, "locks", req)
}

type lockSource struct {
	repo interfaces.LockRepo
}

func (s lockSource) Count(ctx context.Context) (int64, error) {
	return s.repo.CountLocks(ctx)
}

func (s lockSource) Fetch(ctx context.Context, q table.Query) ([]model.Lock, error) {
	return s.repo.ListLocks(ctx, interfaces.ListOptions{
		Sort:   q.Sort,
		Desc:   q.Desc,
		Offset: q.Offset,
		Limit:  q.Limit,
	})
}
