// Package lockstatsv1connect binds the lockstats.v1 service to connect.
package lockstatsv1connect

import (
	context "context"
	errors "errors"
	http "net/http"
	strings "strings"

	connect "connectrpc.com/connect"

	v1 "lockstats/pkg/gen/lockstats/v1"
)

const (
	// LockStatsServiceName is the fully-qualified name of the LockStatsService service.
	LockStatsServiceName = "lockstats.v1.LockStatsService"
)

const (
	// LockStatsServiceGetLockHistoryProcedure is the fully-qualified name of the
	// LockStatsService's GetLockHistory RPC.
	LockStatsServiceGetLockHistoryProcedure = "/lockstats.v1.LockStatsService/GetLockHistory"
	// LockStatsServiceListLocksProcedure is the fully-qualified name of the
	// LockStatsService's ListLocks RPC.
	LockStatsServiceListLocksProcedure = "/lockstats.v1.LockStatsService/ListLocks"
)

// LockStatsServiceClient is a client for the lockstats.v1.LockStatsService service.
type LockStatsServiceClient interface {
	GetLockHistory(context.Context, *connect.Request[v1.GetLockHistoryRequest]) (*connect.Response[v1.GetLockHistoryResponse], error)
	ListLocks(context.Context, *connect.Request[v1.ListLocksRequest]) (*connect.Response[v1.ListLocksResponse], error)
}

// NewLockStatsServiceClient constructs a client for the
// lockstats.v1.LockStatsService service. The client speaks the Connect
// protocol with the JSON codec unless opts override it.
func NewLockStatsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LockStatsServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(v1.Codec{})}, opts...)
	return &lockStatsServiceClient{
		getLockHistory: connect.NewClient[v1.GetLockHistoryRequest, v1.GetLockHistoryResponse](
			httpClient,
			baseURL+LockStatsServiceGetLockHistoryProcedure,
			opts...,
		),
		listLocks: connect.NewClient[v1.ListLocksRequest, v1.ListLocksResponse](
			httpClient,
			baseURL+LockStatsServiceListLocksProcedure,
			opts...,
		),
	}
}

type lockStatsServiceClient struct {
	getLockHistory *connect.Client[v1.GetLockHistoryRequest, v1.GetLockHistoryResponse]
	listLocks      *connect.Client[v1.ListLocksRequest, v1.ListLocksResponse]
}

// GetLockHistory calls lockstats.v1.LockStatsService.GetLockHistory.
func (c *lockStatsServiceClient) GetLockHistory(ctx context.Context, req *connect.Request[v1.GetLockHistoryRequest]) (*connect.Response[v1.GetLockHistoryResponse], error) {
	return c.getLockHistory.CallUnary(ctx, req)
}

// ListLocks calls lockstats.v1.LockStatsService.ListLocks.
func (c *lockStatsServiceClient) ListLocks(ctx context.Context, req *connect.Request[v1.ListLocksRequest]) (*connect.Response[v1.ListLocksResponse], error) {
	return c.listLocks.CallUnary(ctx, req)
}

// LockStatsServiceHandler is an implementation of the lockstats.v1.LockStatsService service.
type LockStatsServiceHandler interface {
	GetLockHistory(context.Context, *connect.Request[v1.GetLockHistoryRequest]) (*connect.Response[v1.GetLockHistoryResponse], error)
	ListLocks(context.Context, *connect.Request[v1.ListLocksRequest]) (*connect.Response[v1.ListLocksResponse], error)
}

// NewLockStatsServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewLockStatsServiceHandler(svc LockStatsServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(v1.Codec{})}, opts...)
	getLockHistoryHandler := connect.NewUnaryHandler(
		LockStatsServiceGetLockHistoryProcedure,
		svc.GetLockHistory,
		opts...,
	)
	listLocksHandler := connect.NewUnaryHandler(
		LockStatsServiceListLocksProcedure,
		svc.ListLocks,
		opts...,
	)
	return "/lockstats.v1.LockStatsService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LockStatsServiceGetLockHistoryProcedure:
			getLockHistoryHandler.ServeHTTP(w, r)
		case LockStatsServiceListLocksProcedure:
			listLocksHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedLockStatsServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLockStatsServiceHandler struct{}

func (UnimplementedLockStatsServiceHandler) GetLockHistory(context.Context, *connect.Request[v1.GetLockHistoryRequest]) (*connect.Response[v1.GetLockHistoryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lockstats.v1.LockStatsService.GetLockHistory is not implemented"))
}

func (UnimplementedLockStatsServiceHandler) ListLocks(context.Context, *connect.Request[v1.ListLocksRequest]) (*connect.Response[v1.ListLocksResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lockstats.v1.LockStatsService.ListLocks is not implemented"))
}
