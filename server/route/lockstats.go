package route

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	connect "connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/text/language"

	"lockstats/pkg/config"
	v1 "lockstats/pkg/gen/lockstats/v1"
	"lockstats/pkg/gen/lockstats/v1/lockstatsv1connect"
	"lockstats/pkg/table"
	interfaces "lockstats/server/repository/interface"
	"lockstats/server/view"
)

var (
	requestCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lockstats_requests_total",
		Help: "The total number of lockstats API requests",
	}, []string{"operation"})
	errorCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lockstats_errors_total",
		Help: "The total number of errors across all lockstats API operations",
	}, []string{"operation"})
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lockstats_duration_seconds",
		Help:    "The duration of lockstats API operations in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// LockStatsServer serves the lock tables over connect.
// It implements the lockstatsv1connect.LockStatsServiceHandler interface.
type LockStatsServer struct {
	lockRepo    interfaces.LockRepo
	historyRepo interfaces.LockHistoryRepo
	settings    config.LockStatsConfig
	logger      *slog.Logger
}

var _ lockstatsv1connect.LockStatsServiceHandler = (*LockStatsServer)(nil)

// NewLockStatsServer creates and returns a new instance of LockStatsServer.
func NewLockStatsServer(repo interfaces.LockStatsInterface, settings config.LockStatsConfig, logger *slog.Logger) *LockStatsServer {
	if logger == nil {
		logger = slog.Default()
	}
	server := &LockStatsServer{
		lockRepo:    repo.LockRepo(),
		historyRepo: repo.LockHistoryRepo(),
		settings:    settings,
		logger:      logger.With("component", "lockstats_server"),
	}
	server.logger.Info("LockStatsServer initialized successfully")
	return server
}

// GetLockHistory returns one page, or with All every row, of a task's lock history.
func (s *LockStatsServer) GetLockHistory(ctx context.Context, req *connect.Request[v1.GetLockHistoryRequest]) (*connect.Response[v1.GetLockHistoryResponse], error) {
	const operation = "get_lock_history"
	timer := prometheus.NewTimer(requestDuration.WithLabelValues(operation))
	defer timer.ObserveDuration()
	requestCounter.WithLabelValues(operation).Inc()

	msg := req.Msg
	s.logger.Info("Retrieving lock history", "task_id", msg.TaskId, "page", msg.Page, "sort", msg.Sort, "all", msg.All)
	if msg.TaskId == 0 {
		errorCounter.WithLabelValues(operation).Inc()
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("task_id is required"))
	}

	opts, err := s.viewOptions(msg.Language, msg.Timezone, msg.PageSize)
	if err != nil {
		errorCounter.WithLabelValues(operation).Inc()
		return nil, err
	}
	v := view.NewDetail(s.historyRepo, nil, uint(msg.TaskId), table.FixedID(0), opts...)

	page, err := v.Build(ctx, tableRequest(v.Table().DefaultRequest(), msg.Page, msg.Sort, msg.Desc, msg.All))
	if err != nil {
		errorCounter.WithLabelValues(operation).Inc()
		return nil, s.logError(err, "Failed to build lock history: task_id=%d", msg.TaskId)
	}

	s.logger.Info("Lock history retrieved", "task_id", msg.TaskId, "rows", len(page.Rows), "total", page.Total)
	return connect.NewResponse(&v1.GetLockHistoryResponse{Table: page}), nil
}

// ListLocks returns one page, or with All every row, of the lock overview.
func (s *LockStatsServer) ListLocks(ctx context.Context, req *connect.Request[v1.ListLocksRequest]) (*connect.Response[v1.ListLocksResponse], error) {
	const operation = "list_locks"
	timer := prometheus.NewTimer(requestDuration.WithLabelValues(operation))
	defer timer.ObserveDuration()
	requestCounter.WithLabelValues(operation).Inc()

	msg := req.Msg
	s.logger.Info("Retrieving list of locks", "page", msg.Page, "sort", msg.Sort, "all", msg.All)

	opts, err := s.viewOptions(msg.Language, msg.Timezone, msg.PageSize)
	if err != nil {
		errorCounter.WithLabelValues(operation).Inc()
		return nil, err
	}
	v := view.NewIndex(s.lockRepo, nil, nil, table.FixedID(0), opts...)

	page, err := v.Build(ctx, tableRequest(v.Table().DefaultRequest(), msg.Page, msg.Sort, msg.Desc, msg.All))
	if err != nil {
		errorCounter.WithLabelValues(operation).Inc()
		return nil, s.logError(err, "Failed to build lock list")
	}

	s.logger.Info("Lock list retrieved", "rows", len(page.Rows), "total", page.Total)
	return connect.NewResponse(&v1.ListLocksResponse{Table: page}), nil
}

func (s *LockStatsServer) viewOptions(lang, tz string, pageSize int32) ([]view.Option, error) {
	opts := []view.Option{view.WithPageSize(s.settings.PageSize)}
	if pageSize > 0 {
		opts = append(opts, view.WithPageSize(int(pageSize)))
	}
	if lang != "" {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invalid language %q: %w", lang, err))
		}
		opts = append(opts, view.WithLanguage(tag))
	}
	loc, err := location(tz, s.settings.Timezone)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return append(opts, view.WithLocation(loc)), nil
}

// logError logs the error message and returns a connect.Error.
func (s *LockStatsServer) logError(err error, message string, args ...interface{}) error {
	fullMessage := fmt.Sprintf(message, args...)
	s.logger.Error(fullMessage, "error", err)
	return connect.NewError(connect.CodeInternal, fmt.Errorf("%s: %w", fullMessage, err))
}

// tableRequest maps API paging fields onto a table request.
func tableRequest(req table.Request, page int32, sort string, desc, all bool) table.Request {
	if page > 0 {
		req.Page = int(page)
	}
	if sort != "" {
		req.Sort = sort
		req.Desc = desc
	}
	if all {
		req.Mode = table.Export
	}
	return req
}

// location resolves a time zone name, falling back to the configured zone.
func location(name, fallback string) (*time.Location, error) {
	if name == "" {
		name = fallback
	}
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", name, err)
	}
	return loc, nil
}
