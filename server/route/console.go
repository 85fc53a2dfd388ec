package route

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lockstats/pkg/config"
	"lockstats/pkg/i18n"
	"lockstats/pkg/table"
	interfaces "lockstats/server/repository/interface"
	"lockstats/server/view"
)

const (
	// ConsolePath is where the lock statistics console is mounted.
	ConsolePath = "/admin/lockstats"

	paramLanguage = "lang"
	paramTimezone = "tz"
)

var layout = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h2>{{.Heading}}</h2>
{{if .Back}}<p><a href="{{.Back}}">{{.BackLabel}}</a></p>{{end}}
{{.Table}}
</body>
</html>
`))

type layoutView struct {
	Lang      string
	Title     string
	Heading   string
	Back      string
	BackLabel string
	Table     template.HTML
}

// Console serves the HTML lock statistics pages.
type Console struct {
	repo     interfaces.LockStatsInterface
	settings config.LockStatsConfig
	logger   *slog.Logger
}

// NewConsole creates the console handlers.
func NewConsole(repo interfaces.LockStatsInterface, settings config.LockStatsConfig, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{repo: repo, settings: settings, logger: logger.With("component", "console")}
}

// Routes returns the console router, to be mounted at ConsolePath.
func (c *Console) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", c.index)
	r.Get("/{taskID}", c.detail)
	return r
}

// DetailURL returns the history page of a task.
func DetailURL(taskID uint) string {
	return fmt.Sprintf("%s/%d", ConsolePath, taskID)
}

func (c *Console) index(w http.ResponseWriter, r *http.Request) {
	opts, tr, err := c.viewOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v := view.NewIndex(c.repo.LockRepo(), baseURL(r), DetailURL, table.NewSequence(), opts...)
	req := v.ParseRequest(r.URL.Query())

	if r.URL.Query().Has(table.ParamDownload) {
		if req.Mode != table.Export {
			http.Error(w, "unsupported download format", http.StatusBadRequest)
			return
		}
		d, err := v.Download(r.Context(), req)
		c.serveDownload(w, r, d, err)
		return
	}

	var body bytes.Buffer
	if err := v.Render(r.Context(), &body, req); err != nil {
		c.fail(w, err, "Failed to render lock overview")
		return
	}
	title := tr.String(i18n.LockOverview)
	c.serveLayout(w, layoutView{
		Lang:    tr.Tag().String(),
		Title:   title,
		Heading: title,
		Table:   template.HTML(body.String()),
	})
}

func (c *Console) detail(w http.ResponseWriter, r *http.Request) {
	taskID, err := strconv.ParseUint(chi.URLParam(r, "taskID"), 10, 32)
	if err != nil || taskID == 0 {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return
	}
	opts, tr, err := c.viewOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v := view.NewDetail(c.repo.LockHistoryRepo(), baseURL(r), uint(taskID), table.NewSequence(), opts...)
	req := v.ParseRequest(r.URL.Query())

	if r.URL.Query().Has(table.ParamDownload) {
		if req.Mode != table.Export {
			http.Error(w, "unsupported download format", http.StatusBadRequest)
			return
		}
		d, err := v.Download(r.Context(), req)
		c.serveDownload(w, r, d, err)
		return
	}

	heading := tr.String(i18n.LockHistory)
	lock, err := c.repo.LockRepo().GetLockByID(r.Context(), uint(taskID))
	switch {
	case err == nil:
		heading = fmt.Sprintf("%s: %s", heading, lock.Resource)
	case !errors.Is(err, interfaces.ErrNotFound):
		c.fail(w, err, "Failed to load lock")
		return
	}

	var body bytes.Buffer
	if err := v.Render(r.Context(), &body, req); err != nil {
		c.fail(w, err, "Failed to render lock history")
		return
	}
	c.serveLayout(w, layoutView{
		Lang:      tr.Tag().String(),
		Title:     tr.String(i18n.LockHistory),
		Heading:   heading,
		Back:      ConsolePath,
		BackLabel: tr.String(i18n.LockOverview),
		Table:     template.HTML(body.String()),
	})
}

func (c *Console) viewOptions(r *http.Request) ([]view.Option, *i18n.Translator, error) {
	query := r.URL.Query()
	acceptLanguage := r.Header.Get("Accept-Language")
	if lang := query.Get(paramLanguage); lang != "" {
		acceptLanguage = lang
	}
	tag := i18n.Match(acceptLanguage)

	loc, err := location(query.Get(paramTimezone), c.settings.Timezone)
	if err != nil {
		return nil, nil, err
	}
	return []view.Option{
		view.WithLanguage(tag),
		view.WithLocation(loc),
		view.WithPageSize(c.settings.PageSize),
	}, i18n.New(tag), nil
}

func (c *Console) serveDownload(w http.ResponseWriter, r *http.Request, d *view.Download, err error) {
	if err != nil {
		c.fail(w, err, "Failed to build download")
		return
	}
	w.Header().Set("Content-Type", d.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": d.Filename}))
	if err := d.Write(w); err != nil {
		c.logger.Error("Failed to write download", "path", r.URL.Path, "filename", d.Filename, "error", err)
		return
	}
	c.logger.Info("Download served", "path", r.URL.Path, "filename", d.Filename)
}

func (c *Console) serveLayout(w http.ResponseWriter, lv layoutView) {
	var page bytes.Buffer
	if err := layout.Execute(&page, lv); err != nil {
		c.fail(w, err, "Failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = page.WriteTo(w)
}

func (c *Console) fail(w http.ResponseWriter, err error, message string) {
	c.logger.Error(message, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// baseURL is the request path with the viewer settings that table links
// must carry.
func baseURL(r *http.Request) *url.URL {
	keep := url.Values{}
	for _, key := range []string{paramLanguage, paramTimezone} {
		if v := r.URL.Query().Get(key); v != "" {
			keep.Set(key, v)
		}
	}
	return &url.URL{Path: r.URL.Path, RawQuery: keep.Encode()}
}
