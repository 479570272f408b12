package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/questboard/backend/config"
	"github.com/questboard/backend/pkg/errorx"
	"github.com/questboard/backend/pkg/logger"

	"github.com/stretchr/testify/require"
)

type helloRequest struct {
	Name string `json:"name"`
}

type helloResponse struct {
	Greeting string `json:"greeting"`
}

func newTestRouter() *Router {
	return New(nil, config.Configs{}, logger.NewLogger(logger.SILENCE))
}

func TestRouter_Envelope(t *testing.T) {
	r := newTestRouter()
	POST(r, "/hello", func(_ context.Context, req *helloRequest) (*helloResponse, error) {
		return &helloResponse{Greeting: "hi " + req.Name}, nil
	})

	server := httptest.NewServer(r.Handler())
	defer server.Close()

	res, err := http.Post(server.URL+"/hello", "application/json",
		strings.NewReader(`{"name":"bob"}`))
	require.NoError(t, err)
	defer res.Body.Close()

	var envelope struct {
		Code int64 `json:"code"`
		Data struct {
			Greeting string `json:"greeting"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	require.EqualValues(t, 0, envelope.Code)
	require.Equal(t, "hi bob", envelope.Data.Greeting)
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	r := newTestRouter()
	GET(r, "/missing", func(context.Context, *helloRequest) (*helloResponse, error) {
		return nil, errorx.New(errorx.NotFound, "Not found thing")
	})

	server := httptest.NewServer(r.Handler())
	defer server.Close()

	res, err := http.Get(server.URL + "/missing")
	require.NoError(t, err)
	defer res.Body.Close()

	var envelope struct {
		Code  int64  `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	require.EqualValues(t, errorx.NotFound, envelope.Code)
	require.Equal(t, "Not found thing", envelope.Error)
}

func TestRouter_BranchMiddleware(t *testing.T) {
	r := newTestRouter()

	open := r.Branch()
	GET(open, "/open", func(context.Context, *helloRequest) (*helloResponse, error) {
		return &helloResponse{Greeting: "open"}, nil
	})

	guarded := r.Branch()
	guarded.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	})
	GET(guarded, "/guarded", func(context.Context, *helloRequest) (*helloResponse, error) {
		return &helloResponse{Greeting: "guarded"}, nil
	})

	server := httptest.NewServer(r.Handler())
	defer server.Close()

	res, err := http.Get(server.URL + "/open")
	require.NoError(t, err)
	defer res.Body.Close()

	var openEnvelope struct {
		Code int64 `json:"code"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&openEnvelope))
	require.EqualValues(t, 0, openEnvelope.Code)

	res, err = http.Get(server.URL + "/guarded")
	require.NoError(t, err)
	defer res.Body.Close()

	var guardedEnvelope struct {
		Code int64 `json:"code"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&guardedEnvelope))
	require.EqualValues(t, errorx.Unauthenticated, guardedEnvelope.Code)
}
