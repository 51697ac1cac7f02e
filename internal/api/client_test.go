package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/justinpbarnett/runlogs/internal/logsource"
	"github.com/justinpbarnett/runlogs/internal/run"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, Options{Timeout: 2 * time.Second, RetryMax: 2})
	require.NoError(t, err)
	return c
}

func TestNewClientRejectsBadScheme(t *testing.T) {
	t.Parallel()
	_, err := NewClient("ftp://example.com", Options{})
	require.Error(t, err)
}

func TestClientRuns(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/runs", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"id": "r1", "name": "train", "future_state": "CREATED"},
				{"id": "r2", "name": "eval", "future_state": "RESOLVED"},
			},
		})
	}))

	runs, err := c.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, run.StateCreated, runs[0].FutureState)
	require.Equal(t, "eval", runs[1].Name)
}

func TestClientLinesSendsQuery(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/runs/r1/logs", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "12", q.Get("reverse_cursor_token"))
		assert.Equal(t, "50", q.Get("max_lines"))
		assert.Equal(t, "ERROR ", q.Get("filter_string"))
		w.Write([]byte(`{"content":{
			"lines":["ERROR a","ERROR b"],
			"line_ids":[3,9],
			"forward_cursor_token":"12",
			"reverse_cursor_token":"2",
			"can_continue_forward":false,
			"can_continue_backward":true,
			"log_info_message":null}}`))
	}))

	p, err := c.Lines(context.Background(), logsource.Query{
		RunID: "r1", ReverseCursor: "12", MaxLines: 50, Filter: "ERROR ",
	})
	require.NoError(t, err)
	require.Equal(t, []logsource.Line{{Number: 3, Text: "ERROR a"}, {Number: 9, Text: "ERROR b"}}, p.Lines)
	require.Equal(t, "12", p.ForwardCursor)
	require.Equal(t, "2", p.ReverseCursor)
	require.True(t, p.CanContinueBackward)
	require.Empty(t, p.InfoMessage)
}

func TestClientLinesNotFound(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such run", http.StatusNotFound)
	}))

	_, err := c.Lines(context.Background(), logsource.Query{RunID: "ghost"})
	require.ErrorIs(t, err, logsource.ErrRunNotFound)
}

func TestClientRetriesServerErrors(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 2 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"content":[]}`))
	}))

	runs, err := c.Runs(context.Background())
	require.NoError(t, err)
	require.Empty(t, runs)
	require.EqualValues(t, 2, calls.Load())
}

func TestClientStatusErrorAfterRetries(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "broken", http.StatusInternalServerError)
	}))

	_, err := c.Runs(context.Background())
	var se *StatusError
	require.True(t, errors.As(err, &se), "expected StatusError, got %v", err)
	require.Equal(t, http.StatusInternalServerError, se.Code)
	require.Equal(t, "broken", se.Body)
}
