package table

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID   int
	Name string
	Size float64
}

type memorySource struct {
	rows    []sample
	queries []Query
	counts  int
	// late rows exist but are not yet visible to Count.
	late int
	err  error
}

func (m *memorySource) Count(ctx context.Context) (int64, error) {
	m.counts++
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.rows) - m.late), nil
}

func (m *memorySource) Fetch(ctx context.Context, q Query) ([]sample, error) {
	m.queries = append(m.queries, q)
	rows := append([]sample(nil), m.rows...)
	less := func(a, b sample) bool {
		switch q.Sort {
		case "name":
			return a.Name < b.Name
		case "size":
			return a.Size < b.Size
		default:
			return a.ID < b.ID
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if q.Desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
	if q.Offset >= len(rows) {
		return nil, nil
	}
	end := len(rows)
	if q.Limit > 0 && q.Offset+q.Limit < end {
		end = q.Offset + q.Limit
	}
	return rows[q.Offset:end], nil
}

type sizeFormatter struct{}

func (sizeFormatter) FormatCell(column string, row sample, mode Mode) (any, bool) {
	if column != "size" {
		return nil, false
	}
	if mode == Export {
		return row.Size, true
	}
	return CellString(row.Size) + " MB", true
}

func newSampleTable(t *testing.T, src Source[sample]) *Table[sample] {
	t.Helper()
	base, err := url.Parse("/admin/samples?view=all")
	require.NoError(t, err)

	tbl := New[sample]("samples0")
	tbl.DefineColumns(
		Column[sample]{Name: "id", Header: "ID", Value: func(s sample) any { return s.ID }},
		Column[sample]{Name: "name", Header: "Name", Sortable: true, Value: func(s sample) any { return s.Name },
			Link: func(s sample) string { return "/admin/samples/" + s.Name }},
		Column[sample]{Name: "size", Header: "Size", Sortable: true, Value: func(s sample) any { return s.Size }},
	)
	tbl.DefineBaseURL(base)
	tbl.Sortable(true, "size", true)
	tbl.Pageable(2)
	tbl.Downloadable("csv", "json")
	tbl.SetSource(src)
	tbl.SetFormatter(sizeFormatter{})
	return tbl
}

func fiveSamples() *memorySource {
	return &memorySource{rows: []sample{
		{ID: 1, Name: "alpha", Size: 1.5},
		{ID: 2, Name: "bravo", Size: 4},
		{ID: 3, Name: "charlie", Size: 2.25},
		{ID: 4, Name: "delta", Size: 3},
		{ID: 5, Name: "echo", Size: 0.5},
	}}
}

func TestBuildDisplayPaginates(t *testing.T) {
	src := fiveSamples()
	tbl := newSampleTable(t, src)

	req := tbl.DefaultRequest()
	req.Page = 1
	page, err := tbl.Build(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.Pages())
	assert.Equal(t, []Query{{Sort: "size", Desc: true, Offset: 2, Limit: 2}}, src.queries)

	want := [][]string{
		{"3", "charlie", "2.25 MB"},
		{"1", "alpha", "1.5 MB"},
	}
	if diff := cmp.Diff(want, page.Strings()); diff != "" {
		t.Errorf("Build() rows mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "/admin/samples/charlie", page.Rows[0][1].Href)
}

func TestBuildClampsPastLastPage(t *testing.T) {
	src := fiveSamples()
	tbl := newSampleTable(t, src)

	req := tbl.DefaultRequest()
	req.Page = 40
	page, err := tbl.Build(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "echo", page.Rows[0][1].Value)
}

func TestBuildExportReturnsEveryRawRow(t *testing.T) {
	src := fiveSamples()
	tbl := newSampleTable(t, src)

	page, err := tbl.Build(context.Background(), tbl.ExportRequest("csv"))
	require.NoError(t, err)

	assert.Equal(t, Export, page.Mode)
	assert.Len(t, page.Rows, 5)
	assert.Equal(t, []Query{{Sort: "size", Desc: true}}, src.queries)
	assert.Equal(t, 4.0, page.Rows[0][2].Value)
	assert.Empty(t, page.Rows[0][1].Href)
}

func TestBuildExportIncludesRowsAddedAfterCount(t *testing.T) {
	src := fiveSamples()
	src.late = 2
	tbl := newSampleTable(t, src)

	page, err := tbl.Build(context.Background(), tbl.ExportRequest("csv"))
	require.NoError(t, err)
	assert.Len(t, page.Rows, 5)
	assert.Equal(t, int64(5), page.Total)

	empty := &memorySource{rows: []sample{{ID: 1, Name: "alpha", Size: 1}}, late: 1}
	tbl = newSampleTable(t, empty)
	page, err = tbl.Build(context.Background(), tbl.ExportRequest("csv"))
	require.NoError(t, err)
	assert.Len(t, page.Rows, 1)
}

func TestBuildEmptySourceSkipsFetch(t *testing.T) {
	src := &memorySource{}
	tbl := newSampleTable(t, src)

	page, err := tbl.Build(context.Background(), tbl.DefaultRequest())
	require.NoError(t, err)
	assert.Empty(t, page.Rows)
	assert.Empty(t, src.queries)
	assert.Equal(t, 1, src.counts)
}

func TestBuildErrors(t *testing.T) {
	_, err := New[sample]("empty").Build(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNoSource)

	boom := errors.New("connection refused")
	tbl := newSampleTable(t, &memorySource{err: boom})
	_, err = tbl.Build(context.Background(), tbl.DefaultRequest())
	assert.ErrorIs(t, err, boom)
}

func TestParseRequest(t *testing.T) {
	tbl := newSampleTable(t, fiveSamples())

	tests := []struct {
		name  string
		query string
		want  Request
	}{
		{
			name:  "defaults",
			query: "",
			want:  Request{PageSize: 2, Sort: "size", Desc: true},
		},
		{
			name:  "namespaced page and sort",
			query: "samples0_page=2&samples0_sort=name&samples0_dir=asc",
			want:  Request{Page: 2, PageSize: 2, Sort: "name"},
		},
		{
			name:  "other table's parameters are ignored",
			query: "samples1_page=3&samples1_sort=name",
			want:  Request{PageSize: 2, Sort: "size", Desc: true},
		},
		{
			name:  "unsortable column falls back",
			query: "samples0_sort=id&samples0_dir=asc",
			want:  Request{PageSize: 2, Sort: "size", Desc: true},
		},
		{
			name:  "negative page",
			query: "samples0_page=-4",
			want:  Request{PageSize: 2, Sort: "size", Desc: true},
		},
		{
			name:  "enabled download",
			query: "download=json",
			want:  Request{PageSize: 2, Sort: "size", Desc: true, Download: "json", Mode: Export},
		},
		{
			name:  "disabled download",
			query: "download=xlsx",
			want:  Request{PageSize: 2, Sort: "size", Desc: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tbl.ParseRequest(values))
		})
	}
}

func TestLinks(t *testing.T) {
	tbl := newSampleTable(t, fiveSamples())
	req := tbl.DefaultRequest()

	u, err := url.Parse(tbl.SortURL(req, "size"))
	require.NoError(t, err)
	assert.Equal(t, "/admin/samples", u.Path)
	assert.Equal(t, "all", u.Query().Get("view"))
	assert.Equal(t, "asc", u.Query().Get("samples0_dir"), "sorting the active column flips it")

	u, err = url.Parse(tbl.SortURL(req, "name"))
	require.NoError(t, err)
	assert.Equal(t, "name", u.Query().Get("samples0_sort"))
	assert.Equal(t, "asc", u.Query().Get("samples0_dir"))

	u, err = url.Parse(tbl.PageURL(req, 2))
	require.NoError(t, err)
	assert.Equal(t, "2", u.Query().Get("samples0_page"))
	assert.Equal(t, "desc", u.Query().Get("samples0_dir"))

	u, err = url.Parse(tbl.DownloadURL("csv"))
	require.NoError(t, err)
	assert.Equal(t, "csv", u.Query().Get(ParamDownload))
}

func TestRender(t *testing.T) {
	tbl := newSampleTable(t, fiveSamples())

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(context.Background(), &buf, tbl.DefaultRequest()))
	html := buf.String()

	assert.Contains(t, html, `<table id="samples0"`)
	assert.Contains(t, html, `<a href="/admin/samples/bravo">bravo</a>`)
	assert.Contains(t, html, "4 MB")
	assert.Contains(t, html, "1 / 3")
	assert.Contains(t, html, DefaultLabels.Next)
	assert.NotContains(t, html, DefaultLabels.Previous)
	assert.Contains(t, html, `<option value="csv">csv</option>`)
	assert.Contains(t, html, `<input type="hidden" name="view" value="all">`)
	assert.Contains(t, html, `<form class="download" method="get" action="/admin/samples">`)
}

func TestRenderEmpty(t *testing.T) {
	tbl := newSampleTable(t, &memorySource{})
	tbl.SetLabels(Labels{Empty: "Keine Einträge"})

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(context.Background(), &buf, tbl.DefaultRequest()))
	assert.Contains(t, buf.String(), `<td colspan="3">Keine Einträge</td>`)
}

func TestIDSources(t *testing.T) {
	seq := NewSequence()
	first, second := seq.NextID(), seq.NextID()
	assert.NotEqual(t, first, second)
	assert.Equal(t, 0, first)

	assert.Equal(t, 7, FixedID(7).NextID())
	assert.Equal(t, 7, FixedID(7).NextID())
}

func TestModeText(t *testing.T) {
	page := Page{ID: "samples0", Mode: Export}
	data, err := json.Marshal(page)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"mode":"export"`)

	var decoded Page
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Export, decoded.Mode)

	var m Mode
	require.NoError(t, m.UnmarshalText([]byte("display")))
	assert.Equal(t, Display, m)
	assert.Error(t, m.UnmarshalText([]byte("2")))

	_, err = Mode(9).MarshalText()
	assert.Error(t, err)
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", CellString(nil))
	assert.Equal(t, "1700000000", CellString(int64(1700000000)))
	assert.Equal(t, "5", CellString(5.0))
	assert.Equal(t, "0.125", CellString(0.125))
	assert.Equal(t, "42", CellString(uint(42)))
	assert.Equal(t, "export", CellString(Export))
	assert.Equal(t, "true", CellString(true))
}
