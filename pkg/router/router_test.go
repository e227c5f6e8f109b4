package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/docthru/backend/pkg/errorx"
	"github.com/docthru/backend/pkg/testutil"
	"github.com/docthru/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name string   `json:"name" form:"name"`
	Tags []string `json:"tags" form:"tag"`
}

type echoResponse struct {
	Name   string   `json:"name"`
	Tags   []string `json:"tags"`
	UserID int64    `json:"user_id"`
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Require name")
	}

	if req.Name == "missing" {
		return nil, errorx.New(errorx.NotFound, "Not found")
	}

	return &echoResponse{Name: req.Name, Tags: req.Tags, UserID: xcontext.RequestUserID(ctx)}, nil
}

func newTestRouter() *Router {
	ctx := testutil.NewMockContext()
	return New(xcontext.DB(ctx), xcontext.Configs(ctx), xcontext.Logger(ctx), xcontext.SnowFlake(ctx))
}

func serve(t *testing.T, r *Router, req *http.Request) (int, response) {
	t.Helper()

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestRouter_GET(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo", echo)

	code, resp := serve(t, r, httptest.NewRequest(http.MethodGet, "/echo?name=abc&tag=x&tag=y", nil))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, int64(0), resp.Code)

	data := resp.Data.(map[string]any)
	require.Equal(t, "abc", data["name"])
	require.Equal(t, []any{"x", "y"}, data["tags"])
}

func TestRouter_POST(t *testing.T) {
	r := newTestRouter()
	POST(r, "/echo", echo)

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	code, resp := serve(t, r, req)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "abc", resp.Data.(map[string]any)["name"])

	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":`))
	code, resp = serve(t, r, req)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, int64(errorx.BadRequest), resp.Code)
}

func TestRouter_Error(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo", echo)

	code, resp := serve(t, r, httptest.NewRequest(http.MethodGet, "/echo?name=missing", nil))
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, int64(errorx.NotFound), resp.Code)
	require.Equal(t, "Not found", resp.Error)
	require.Nil(t, resp.Data)
}

func TestRouter_Middlewares(t *testing.T) {
	r := newTestRouter()

	var closed []error
	r.AddCloser(func(ctx context.Context) {
		closed = append(closed, xcontext.Error(ctx))
	})

	authorized := r.Branch()
	authorized.Before(func(ctx context.Context) (context.Context, error) {
		return xcontext.WithRequestUserID(ctx, 7), nil
	})
	GET(authorized, "/authorized", echo)

	denied := r.Branch()
	denied.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "Require authentication")
	})
	GET(denied, "/denied", echo)

	GET(r, "/public", echo)

	code, resp := serve(t, r, httptest.NewRequest(http.MethodGet, "/authorized?name=a", nil))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, float64(7), resp.Data.(map[string]any)["user_id"])

	code, resp = serve(t, r, httptest.NewRequest(http.MethodGet, "/public?name=a", nil))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, float64(0), resp.Data.(map[string]any)["user_id"])

	code, resp = serve(t, r, httptest.NewRequest(http.MethodGet, "/denied?name=a", nil))
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, int64(errorx.Unauthenticated), resp.Code)

	require.Len(t, closed, 3)
	require.NoError(t, closed[0])
	require.NoError(t, closed[1])
	require.ErrorIs(t, closed[2], errorx.New(errorx.Unauthenticated, ""))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code errorx.Code
		want int
	}{
		{code: errorx.BadRequest, want: http.StatusBadRequest},
		{code: errorx.Unauthenticated, want: http.StatusUnauthorized},
		{code: errorx.PermissionDenied, want: http.StatusForbidden},
		{code: errorx.NotFound, want: http.StatusNotFound},
		{code: errorx.AlreadyExists, want: http.StatusConflict},
		{code: errorx.Unavailable, want: http.StatusConflict},
		{code: errorx.Unknown.Code, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, HTTPStatus(errorx.New(tt.code, "")))
	}
}
