package table

import (
	"net/url"
	"strconv"
)

// ParamDownload selects an export format. It is shared by every table on a
// page; the page controller decides which table serves the download.
const ParamDownload = "download"

const (
	paramPage = "page"
	paramSort = "sort"
	paramDir  = "dir"

	dirAsc  = "asc"
	dirDesc = "desc"
)

// Request is the table state asked for by a viewer.
type Request struct {
	Page     int
	PageSize int
	Sort     string
	Desc     bool
	Download string
	Mode     Mode
}

// DefaultRequest is the first page in the default order.
func (t *Table[R]) DefaultRequest() Request {
	req := Request{PageSize: t.pageSize, Mode: Display}
	if t.sortable {
		req.Sort = t.defaultSort
		req.Desc = t.defaultDesc
	}
	return req
}

// ExportRequest asks for every row in export mode, in the default order.
func (t *Table[R]) ExportRequest(format string) Request {
	req := t.DefaultRequest()
	req.Download = format
	req.Mode = Export
	return req
}

// ParseRequest reads the table's parameters from a query string. Values
// that do not apply to this table fall back to the defaults.
func (t *Table[R]) ParseRequest(values url.Values) Request {
	req := t.DefaultRequest()
	if p, err := strconv.Atoi(values.Get(t.Param(paramPage))); err == nil && p > 0 {
		req.Page = p
	}
	if s := values.Get(t.Param(paramSort)); t.sortableColumn(s) {
		req.Sort = s
		req.Desc = values.Get(t.Param(paramDir)) == dirDesc
	}
	if f := values.Get(ParamDownload); f != "" && t.CanDownload(f) {
		req.Download = f
		req.Mode = Export
	}
	return req
}

// Param returns the query parameter name for key, namespaced by table id.
func (t *Table[R]) Param(key string) string {
	return t.id + "_" + key
}

func (t *Table[R]) normalize(req Request) Request {
	if req.Page < 0 {
		req.Page = 0
	}
	if req.Sort != "" && !t.sortableColumn(req.Sort) {
		def := t.DefaultRequest()
		req.Sort, req.Desc = def.Sort, def.Desc
	}
	if !t.sortable {
		req.Sort, req.Desc = "", false
	}
	if req.Download != "" && !t.CanDownload(req.Download) {
		req.Download = ""
		req.Mode = Display
	}
	return req
}

// SortURL links to the first page sorted by column. Sorting by the
// current column flips its direction.
func (t *Table[R]) SortURL(req Request, column string) string {
	desc := false
	if req.Sort == column {
		desc = !req.Desc
	}
	return t.link(func(q url.Values) {
		q.Set(t.Param(paramSort), column)
		q.Set(t.Param(paramDir), direction(desc))
		q.Del(t.Param(paramPage))
	})
}

// PageURL links to page in the current order.
func (t *Table[R]) PageURL(req Request, page int) string {
	return t.link(func(q url.Values) {
		if req.Sort != "" {
			q.Set(t.Param(paramSort), req.Sort)
			q.Set(t.Param(paramDir), direction(req.Desc))
		}
		q.Set(t.Param(paramPage), strconv.Itoa(page))
	})
}

// DownloadURL links to a download of the whole table.
func (t *Table[R]) DownloadURL(format string) string {
	return t.link(func(q url.Values) {
		q.Set(ParamDownload, format)
	})
}

func (t *Table[R]) link(edit func(url.Values)) string {
	var u url.URL
	if t.baseURL != nil {
		u = *t.baseURL
	}
	q := u.Query()
	edit(q)
	u.RawQuery = q.Encode()
	return u.String()
}

func direction(desc bool) string {
	if desc {
		return dirDesc
	}
	return dirAsc
}
