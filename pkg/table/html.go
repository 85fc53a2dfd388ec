package table

import (
	"context"
	"html/template"
	"io"
	"sort"
)

// Labels are the fixed texts of a rendered table.
type Labels struct {
	Previous   string
	Next       string
	DownloadAs string
	Download   string
	Empty      string
}

// DefaultLabels are the English texts.
var DefaultLabels = Labels{
	Previous:   "Previous",
	Next:       "Next",
	DownloadAs: "Download table data as",
	Download:   "Download",
	Empty:      "Nothing to display",
}

var pageTemplate = template.Must(template.New("table").Parse(`<div class="table-wrapper" id="{{.ID}}-wrapper">
<table id="{{.ID}}" class="generaltable admintable" cellspacing="0">
<thead><tr>{{range .Head}}<th class="header c{{.Index}}">{{if .SortURL}}<a href="{{.SortURL}}">{{.Header}}</a>{{if .Active}}{{if .Desc}} &#9660;{{else}} &#9650;{{end}}{{end}}{{else}}{{.Header}}{{end}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{if .Href}}<a href="{{.Href}}">{{.Text}}</a>{{else}}{{.Text}}{{end}}</td>{{end}}</tr>
{{- else}}
<tr><td colspan="{{len .Head}}">{{.Labels.Empty}}</td></tr>
{{- end}}
</tbody>
</table>
{{- if gt .Pages 1}}
<nav class="paging">{{if .PrevURL}}<a href="{{.PrevURL}}">{{.Labels.Previous}}</a> {{end}}<span>{{.PageNo}} / {{.Pages}}</span>{{if .NextURL}} <a href="{{.NextURL}}">{{.Labels.Next}}</a>{{end}}</nav>
{{- end}}
{{- if .Formats}}
<form class="download" method="get" action="{{.Action}}">
{{- range .Hidden}}<input type="hidden" name="{{.Name}}" value="{{.Value}}">{{end}}
<label for="{{.ID}}-download">{{.Labels.DownloadAs}}</label>
<select id="{{.ID}}-download" name="download">{{range .Formats}}<option value="{{.}}">{{.}}</option>{{end}}</select>
<button type="submit">{{.Labels.Download}}</button>
</form>
{{- end}}
</div>
`))

type headView struct {
	Index   int
	Header  string
	SortURL string
	Active  bool
	Desc    bool
}

type cellView struct {
	Text string
	Href string
}

type hiddenField struct {
	Name  string
	Value string
}

type pageView struct {
	ID      string
	Head    []headView
	Rows    [][]cellView
	Labels  Labels
	Pages   int
	PageNo  int
	PrevURL string
	NextURL string
	Formats []string
	Action  string
	Hidden  []hiddenField
}

// Render builds req and writes it as an HTML fragment.
func (t *Table[R]) Render(ctx context.Context, w io.Writer, req Request) error {
	req.Mode = Display
	req.Download = ""
	page, err := t.Build(ctx, req)
	if err != nil {
		return err
	}
	return t.RenderPage(w, page)
}

// RenderPage writes an already built page as an HTML fragment.
func (t *Table[R]) RenderPage(w io.Writer, page *Page) error {
	req := Request{Page: page.Page, PageSize: page.PageSize, Sort: page.Sort, Desc: page.Desc}

	view := pageView{
		ID:      page.ID,
		Labels:  t.labels,
		Pages:   page.Pages(),
		PageNo:  page.Page + 1,
		Formats: t.formats,
	}
	for i, col := range t.columns {
		h := headView{Index: i, Header: col.Header}
		if t.sortableColumn(col.Name) {
			h.SortURL = t.SortURL(req, col.Name)
			h.Active = page.Sort == col.Name
			h.Desc = page.Desc
		}
		view.Head = append(view.Head, h)
	}
	for _, row := range page.Rows {
		cells := make([]cellView, len(row))
		for i, c := range row {
			cells[i] = cellView{Text: CellString(c.Value), Href: c.Href}
		}
		view.Rows = append(view.Rows, cells)
	}
	if page.Page > 0 {
		view.PrevURL = t.PageURL(req, page.Page-1)
	}
	if page.Page+1 < view.Pages {
		view.NextURL = t.PageURL(req, page.Page+1)
	}
	if len(t.formats) > 0 {
		view.Action, view.Hidden = t.downloadForm()
		if page.Sort != "" {
			view.Hidden = append(view.Hidden,
				hiddenField{Name: t.Param(paramSort), Value: page.Sort},
				hiddenField{Name: t.Param(paramDir), Value: direction(page.Desc)},
			)
		}
	}
	return pageTemplate.Execute(w, view)
}

// downloadForm splits the base URL into a form action and hidden inputs
// carrying its query, since a GET form replaces the action's query.
func (t *Table[R]) downloadForm() (string, []hiddenField) {
	if t.baseURL == nil {
		return "", nil
	}
	u := *t.baseURL
	query := u.Query()
	names := make([]string, 0, len(query))
	for name := range query {
		names = append(names, name)
	}
	sort.Strings(names)

	var hidden []hiddenField
	for _, name := range names {
		for _, v := range query[name] {
			hidden = append(hidden, hiddenField{Name: name, Value: v})
		}
	}
	u.RawQuery = ""
	return u.String(), hidden
}
