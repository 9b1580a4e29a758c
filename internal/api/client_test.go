package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBackend serves /chat with handler behind a chi router, the way the
// portfolio backend is routed.
func newBackend(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/chat", handler)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func TestSendSuccess(t *testing.T) {
	var got ChatRequest
	var contentType string
	server := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"hi"}`))
	})

	client := NewClient(server.URL + "/chat")
	reply, err := client.Send(context.Background(), "hello there")
	require.NoError(t, err)

	assert.Equal(t, "hi", reply.Response)
	assert.Equal(t, "hello there", got.Message)
	assert.Equal(t, "application/json", contentType)
}

func TestSendSingleRequestOnFailure(t *testing.T) {
	calls := 0
	server := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := NewClient(server.URL + "/chat").Send(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, 1, calls, "no retry is attempted")
}

func TestSendHTTPErrorDetail(t *testing.T) {
	server := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"server error"}`))
	})

	_, err := NewClient(server.URL + "/chat").Send(context.Background(), "x")

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode())
	assert.Equal(t, "server error", err.Error())
}

func TestSendHTTPErrorFallback(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unparseable body", `<html>oops</html>`},
		{"empty body", ``},
		{"no detail", `{"error":"nope"}`},
		{"null detail", `{"detail":null}`},
		{"empty detail", `{"detail":""}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			server := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := NewClient(server.URL + "/chat").Send(context.Background(), "x")
			require.Error(t, err)
			assert.Equal(t, "HTTP error! status: 500", err.Error())
		})
	}
}

func TestSendStructuredDetail(t *testing.T) {
	server := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["body","message"],"msg":"field required"}]}`))
	})

	_, err := NewClient(server.URL + "/chat").Send(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field required")
}

func TestSendMalformedSuccessBody(t *testing.T) {
	server := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := NewClient(server.URL + "/chat").Send(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")

	var httpErr *HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestSendNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL + "/chat"
	server.Close()

	_, err := NewClient(url).Send(context.Background(), "x")
	require.Error(t, err)
	assert.NotEmpty(t, err.Error())
}

type recordingDoer struct {
	req *http.Request
}

func (d *recordingDoer) Do(req *http.Request) (*http.Response, error) {
	d.req = req
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(`{"response":"ok"}`)),
		Header:     make(http.Header),
	}, nil
}

func TestNewClientDefaults(t *testing.T) {
	doer := &recordingDoer{}
	client := NewClient("", WithDoer(doer))
	assert.Equal(t, DefaultEndpoint, client.Endpoint())

	_, err := client.Send(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, doer.req.Method)
	assert.Equal(t, DefaultEndpoint, doer.req.URL.String())
}

func TestSharedClientHasNoTimeout(t *testing.T) {
	assert.Zero(t, getSharedHTTPClient().Timeout)
}
