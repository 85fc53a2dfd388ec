package route

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	connect "connectrpc.com/connect"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lockstats/pkg/config"
	v1 "lockstats/pkg/gen/lockstats/v1"
	"lockstats/pkg/gen/lockstats/v1/lockstatsv1connect"
	interfaces "lockstats/server/repository/interface"
	"lockstats/server/repository/mocks"
	model "lockstats/server/repository/model/lockstats"
)

type fakeRepo struct {
	locks   *mocks.LockRepo
	history *mocks.LockHistoryRepo
}

func (f fakeRepo) LockRepo() interfaces.LockRepo               { return f.locks }
func (f fakeRepo) LockHistoryRepo() interfaces.LockHistoryRepo { return f.history }
func (f fakeRepo) Close(context.Context) error                 { return nil }

func newFakeRepo(t *testing.T) fakeRepo {
	return fakeRepo{locks: mocks.NewLockRepo(t), history: mocks.NewLockHistoryRepo(t)}
}

func testConfig() config.Config {
	return config.Config{
		LockStats: config.LockStatsConfig{PageSize: 30, Timezone: "UTC"},
		Admin:     config.AdminConfig{Username: "admin"},
	}
}

func newTestServer(t *testing.T, repo fakeRepo, cfg config.Config) *httptest.Server {
	t.Helper()
	handler, err := NewRouter(repo, cfg, nil)
	require.NoError(t, err)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

var history = []model.LockHistory{{
	ID: 1, TaskID: 42, Resource: "cron_core", Gained: 1700000000, Released: 1700000010,
	LockCount: 2, Duration: 10, Host: "web1", PID: 4242,
}}

func get(t *testing.T, srv *httptest.Server, path string, header http.Header) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestConsoleDetail(t *testing.T) {
	repo := newFakeRepo(t)
	repo.history.On("CountLockHistory", mock.Anything, uint(42)).Return(int64(1), nil).Once()
	repo.history.On("ListLockHistory", mock.Anything, uint(42), interfaces.ListOptions{Sort: "released", Desc: true, Limit: 30}).
		Return(history, nil).Once()
	repo.locks.On("GetLockByID", mock.Anything, uint(42)).Return(&model.Lock{ID: 42, Resource: "cron_core"}, nil).Once()

	srv := newTestServer(t, repo, testConfig())
	resp, body := get(t, srv, "/admin/lockstats/42", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "Lock history: cron_core")
	assert.Contains(t, body, `id="lockstats_detail0"`)
	assert.Contains(t, body, "5.000 secs")
	assert.Contains(t, body, "2023-11-14 22:13:30")
}

func TestConsoleDetailUnknownLock(t *testing.T) {
	repo := newFakeRepo(t)
	repo.history.On("CountLockHistory", mock.Anything, uint(7)).Return(int64(0), nil).Once()
	repo.locks.On("GetLockByID", mock.Anything, uint(7)).Return(nil, interfaces.ErrNotFound).Once()

	srv := newTestServer(t, repo, testConfig())
	resp, body := get(t, srv, "/admin/lockstats/7", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<h2>Lock history</h2>")
	assert.Contains(t, body, "Nothing to display")
}

func TestConsoleDetailInvalidID(t *testing.T) {
	srv := newTestServer(t, newFakeRepo(t), testConfig())

	for _, path := range []string{"/admin/lockstats/abc", "/admin/lockstats/0", "/admin/lockstats/-1"} {
		resp, _ := get(t, srv, path, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestConsoleDetailInvalidTimezone(t *testing.T) {
	srv := newTestServer(t, newFakeRepo(t), testConfig())
	resp, _ := get(t, srv, "/admin/lockstats/42?tz=Mars/Olympus", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConsoleDetailDownload(t *testing.T) {
	repo := newFakeRepo(t)
	repo.history.On("CountLockHistory", mock.Anything, uint(42)).Return(int64(1), nil).Once()
	repo.history.On("ListLockHistory", mock.Anything, uint(42), interfaces.ListOptions{Sort: "released", Desc: true}).
		Return(history, nil).Once()

	srv := newTestServer(t, repo, testConfig())
	resp, body := get(t, srv, "/admin/lockstats/42?download=csv", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "attachment; filename=lock_history_42.csv", resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "Resource,Duration,Lock count,Host,Gained,Released,PID\ncron_core,5,2,web1,1700000000,1700000010,4242\n", body)
}

func TestConsoleDownloadUnsupportedFormat(t *testing.T) {
	srv := newTestServer(t, newFakeRepo(t), testConfig())
	resp, _ := get(t, srv, "/admin/lockstats/42?download=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConsoleDetailRepositoryError(t *testing.T) {
	repo := newFakeRepo(t)
	repo.locks.On("GetLockByID", mock.Anything, uint(42)).Return(nil, errors.New("connection reset")).Once()

	srv := newTestServer(t, repo, testConfig())
	resp, body := get(t, srv, "/admin/lockstats/42", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, body, "connection reset")
}

func TestConsoleIndexGerman(t *testing.T) {
	repo := newFakeRepo(t)
	repo.locks.On("CountLocks", mock.Anything).Return(int64(1), nil).Once()
	repo.locks.On("ListLocks", mock.Anything, interfaces.ListOptions{Sort: "gained", Desc: true, Limit: 30}).
		Return([]model.Lock{{ID: 42, Resource: "cron_core", Gained: 1700000000}}, nil).Once()

	srv := newTestServer(t, repo, testConfig())
	resp, body := get(t, srv, "/admin/lockstats", http.Header{"Accept-Language": {"de-DE,de;q=0.9"}})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Sperrstatistik")
	assert.Contains(t, body, `href="/admin/lockstats/42"`)
}

func TestConsoleBasicAuth(t *testing.T) {
	cfg := testConfig()
	cfg.Admin.Password = "secret"
	srv := newTestServer(t, newFakeRepo(t), cfg)

	resp, _ := get(t, srv, "/admin/lockstats", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = get(t, srv, "/admin/lockstats/abc", http.Header{"Authorization": {basicAuth("admin", "secret")}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetLockHistory(t *testing.T) {
	repo := newFakeRepo(t)
	repo.history.On("CountLockHistory", mock.Anything, uint(42)).Return(int64(1), nil).Once()
	repo.history.On("ListLockHistory", mock.Anything, uint(42), interfaces.ListOptions{Sort: "duration", Desc: true, Limit: 10}).
		Return(history, nil).Once()

	srv := newTestServer(t, repo, testConfig())
	client := lockstatsv1connect.NewLockStatsServiceClient(srv.Client(), srv.URL)

	resp, err := client.GetLockHistory(context.Background(), connect.NewRequest(&v1.GetLockHistoryRequest{
		TaskId: 42, PageSize: 10, Sort: "duration", Desc: true,
	}))
	require.NoError(t, err)

	page := resp.Msg.Table
	assert.Equal(t, "lockstats_detail0", page.ID)
	assert.Equal(t, int64(1), page.Total)
	want := [][]string{{"cron_core", "5.000 secs", "2", "web1", "2023-11-14 22:13:20", "2023-11-14 22:13:30", "4242"}}
	if diff := cmp.Diff(want, page.Strings()); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestGetLockHistoryAllRows(t *testing.T) {
	repo := newFakeRepo(t)
	repo.history.On("CountLockHistory", mock.Anything, uint(42)).Return(int64(1), nil).Once()
	repo.history.On("ListLockHistory", mock.Anything, uint(42), interfaces.ListOptions{Sort: "released", Desc: true}).
		Return(history, nil).Once()

	srv := newTestServer(t, repo, testConfig())
	client := lockstatsv1connect.NewLockStatsServiceClient(srv.Client(), srv.URL)

	resp, err := client.GetLockHistory(context.Background(), connect.NewRequest(&v1.GetLockHistoryRequest{TaskId: 42, All: true}))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"cron_core", "5", "2", "web1", "1700000000", "1700000010", "4242"}}, resp.Msg.Table.Strings())
}

func TestGetLockHistoryErrors(t *testing.T) {
	t.Run("missing task id", func(t *testing.T) {
		srv := newTestServer(t, newFakeRepo(t), testConfig())
		client := lockstatsv1connect.NewLockStatsServiceClient(srv.Client(), srv.URL)

		_, err := client.GetLockHistory(context.Background(), connect.NewRequest(&v1.GetLockHistoryRequest{}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("invalid time zone", func(t *testing.T) {
		srv := newTestServer(t, newFakeRepo(t), testConfig())
		client := lockstatsv1connect.NewLockStatsServiceClient(srv.Client(), srv.URL)

		_, err := client.GetLockHistory(context.Background(), connect.NewRequest(&v1.GetLockHistoryRequest{TaskId: 42, Timezone: "Mars/Olympus"}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := newFakeRepo(t)
		repo.history.On("CountLockHistory", mock.Anything, uint(42)).Return(int64(0), errors.New("connection reset")).Once()
		srv := newTestServer(t, repo, testConfig())
		client := lockstatsv1connect.NewLockStatsServiceClient(srv.Client(), srv.URL)

		_, err := client.GetLockHistory(context.Background(), connect.NewRequest(&v1.GetLockHistoryRequest{TaskId: 42}))
		assert.Equal(t, connect.CodeInternal, connect.CodeOf(err))
	})
}

func TestListLocks(t *testing.T) {
	repo := newFakeRepo(t)
	repo.locks.On("CountLocks", mock.Anything).Return(int64(1), nil).Once()
	repo.locks.On("ListLocks", mock.Anything, interfaces.ListOptions{Sort: "gained", Desc: true, Limit: 30}).
		Return([]model.Lock{{ID: 42, Resource: "cron_core", Gained: 1700000000, LockCount: 1, Duration: 120}}, nil).Once()

	srv := newTestServer(t, repo, testConfig())
	client := lockstatsv1connect.NewLockStatsServiceClient(srv.Client(), srv.URL)

	resp, err := client.ListLocks(context.Background(), connect.NewRequest(&v1.ListLocksRequest{Language: "fr"}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Table.Rows, 1)
	assert.Equal(t, "Ressource", resp.Msg.Table.Headers[1])
	assert.Equal(t, []string{"42", "cron_core"}, resp.Msg.Table.Strings()[0][:2])
}

func TestAPIAuthentication(t *testing.T) {
	cfg := testConfig()
	cfg.Admin.Password = "secret"

	repo := newFakeRepo(t)
	repo.locks.On("CountLocks", mock.Anything).Return(int64(0), nil).Once()

	srv := newTestServer(t, repo, cfg)
	client := lockstatsv1connect.NewLockStatsServiceClient(srv.Client(), srv.URL)

	_, err := client.ListLocks(context.Background(), connect.NewRequest(&v1.ListLocksRequest{}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	req := connect.NewRequest(&v1.ListLocksRequest{})
	req.Header().Set("Authorization", basicAuth("admin", "wrong"))
	_, err = client.ListLocks(context.Background(), req)
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	req = connect.NewRequest(&v1.ListLocksRequest{})
	req.Header().Set("Authorization", basicAuth("admin", "secret"))
	resp, err := client.ListLocks(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Msg.Table.Rows)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, newFakeRepo(t), testConfig())

	resp, body := get(t, srv, "/metrics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(body, "go_goroutines"))
}

func TestAPICompressesLargeResponses(t *testing.T) {
	locks := make([]model.Lock, 40)
	for i := range locks {
		locks[i] = model.Lock{ID: uint(i + 1), Resource: fmt.Sprintf("cron_task_%02d", i), Gained: 1700000000, LockCount: 1, Duration: 120}
	}
	repo := newFakeRepo(t)
	repo.locks.On("CountLocks", mock.Anything).Return(int64(len(locks)), nil).Once()
	repo.locks.On("ListLocks", mock.Anything, interfaces.ListOptions{Sort: "gained", Desc: true, Limit: 30}).
		Return(locks[:30], nil).Once()
	repo.locks.On("CountLocks", mock.Anything).Return(int64(0), nil).Once()
	srv := newTestServer(t, repo, testConfig())

	call := func() *http.Response {
		req, err := http.NewRequest(http.MethodPost, srv.URL+lockstatsv1connect.LockStatsServiceListLocksProcedure, strings.NewReader("{}"))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept-Encoding", "gzip")
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return resp
	}

	assert.Equal(t, "gzip", call().Header.Get("Content-Encoding"))
	assert.Empty(t, call().Header.Get("Content-Encoding"), "responses under CompressMinByte stay uncompressed")
}

func basicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}
