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

// DetailTablePrefix prefixes the unique id of every lock history table.
const DetailTablePrefix = "lockstats_detail"

// Detail is the lock acquisition history of one task: a sortable, paged
// and downloadable table over its lockstats_history rows.
type Detail struct {
	table  *table.Table[model.LockHistory]
	taskID uint
	loc    *time.Location
	units  timefmt.Units
}

// NewDetail configures the history table of taskID. Rows link their
// paging and sorting to baseURL. ids hands out the table's instance id,
// so several history tables can share one page.
func NewDetail(repo interfaces.LockHistoryRepo, baseURL *url.URL, taskID uint, ids table.IDSource, opts ...Option) *Detail {
	o := newOptions(opts)
	t := o.translator

	v := &Detail{
		table:  table.New[model.LockHistory](fmt.Sprintf("%s%d", DetailTablePrefix, ids.NextID())),
		taskID: taskID,
		loc:    o.location,
		units:  t.Units(),
	}
	v.table.DefineColumns(
		table.Column[model.LockHistory]{Name: "resource", Header: t.String(i18n.HeaderResource), Sortable: true,
			Value: func(h model.LockHistory) any { return h.Resource }},
		table.Column[model.LockHistory]{Name: "duration", Header: t.String(i18n.HeaderDuration), Sortable: true,
			Value: func(h model.LockHistory) any { return h.Duration }},
		table.Column[model.LockHistory]{Name: "lockcount", Header: t.String(i18n.HeaderLockCount), Sortable: true,
			Value: func(h model.LockHistory) any { return h.LockCount }},
		table.Column[model.LockHistory]{Name: "host", Header: t.String(i18n.HeaderHost), Sortable: true,
			Value: func(h model.LockHistory) any { return h.Host }},
		table.Column[model.LockHistory]{Name: "gained", Header: t.String(i18n.HeaderGained), Sortable: true,
			Value: func(h model.LockHistory) any { return h.Gained }},
		table.Column[model.LockHistory]{Name: "released", Header: t.String(i18n.HeaderReleased), Sortable: true,
			Value: func(h model.LockHistory) any { return h.Released }},
		table.Column[model.LockHistory]{Name: "pid", Header: t.String(i18n.HeaderPID), Sortable: true,
			Value: func(h model.LockHistory) any { return h.PID }},
	)
	v.table.DefineBaseURL(baseURL)
	v.table.Sortable(true, "released", true)
	v.table.Pageable(o.pageSize)
	v.table.Downloadable(o.formats...)
	v.table.SetLabels(o.labels())
	v.table.SetSource(historySource{repo: repo, taskID: taskID})
	v.table.SetFormatter(v)
	return v
}

// ID returns the unique id of the underlying table.
func (v *Detail) ID() string {
	return v.table.ID()
}

// TaskID returns the task whose history is shown.
func (v *Detail) TaskID() uint {
	return v.taskID
}

// Table exposes the underlying table for request parsing and links.
func (v *Detail) Table() *table.Table[model.LockHistory] {
	return v.table
}

// CountTotal returns the number of history rows of the task.
func (v *Detail) CountTotal(ctx context.Context) (int64, error) {
	return v.table.CountTotal(ctx)
}

// FormatGained renders the acquisition time.
func (v *Detail) FormatGained(h model.LockHistory, mode table.Mode) any {
	return formatTimestamp(h.Gained, v.loc, mode)
}

// FormatReleased renders the release time.
func (v *Detail) FormatReleased(h model.LockHistory, mode table.Mode) any {
	return formatTimestamp(h.Released, v.loc, mode)
}

// FormatDuration renders the average hold time per acquisition.
func (v *Detail) FormatDuration(h model.LockHistory, mode table.Mode) any {
	return formatAverage(h.AverageDuration(), v.units, mode)
}

// FormatCell implements table.Formatter.
func (v *Detail) FormatCell(column string, h model.LockHistory, mode table.Mode) (any, bool) {
	switch column {
	case "gained":
		return v.FormatGained(h, mode), true
	case "released":
		return v.FormatReleased(h, mode), true
	case "duration":
		return v.FormatDuration(h, mode), true
	default:
		return nil, false
	}
}

// ParseRequest reads this table's paging, sorting and download parameters.
func (v *Detail) ParseRequest(values url.Values) table.Request {
	return v.table.ParseRequest(values)
}

// Build returns the rows selected by req.
func (v *Detail) Build(ctx context.Context, req table.Request) (*table.Page, error) {
	return v.table.Build(ctx, req)
}

// Render writes the HTML table for req.
func (v *Detail) Render(ctx context.Context, w io.Writer, req table.Request) error {
	return v.table.Render(ctx, w, req)
}

// Download builds every history row of the task in req.Download format,
// keeping the requested order.
func (v *Detail) Download(ctx context.Context, req table.Request) (*Download, error) {
	return prepareDownload(ctx, v.table, fmt.Sprintf("lock_history_%d", v.taskID), req)
}

type historySource struct {
	repo   interfaces.LockHistoryRepo
	taskID uint
}

func (s historySource) Count(ctx context.Context) (int64, error) {
	return s.repo.CountLockHistory(ctx, s.taskID)
}

func (s historySource) Fetch(ctx context.Context, q table.Query) ([]model.LockHistory, error) {
	return s.repo.ListLockHistory(ctx, s.taskID, interfaces.ListOptions{
		Sort:   q.Sort,
		Desc:   q.Desc,
		Offset: q.Offset,
		Limit:  q.Limit,
	})
}
