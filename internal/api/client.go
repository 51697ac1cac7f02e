package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/justinpbarnett/runlogs/internal/logsource"
	"github.com/justinpbarnett/runlogs/internal/run"
)

const maxErrorBody = 4096

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: HTTP %d", e.Method, e.URL, e.Code)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

type Options struct {
	Timeout  time.Duration
	RetryMax int
}

type Client struct {
	base *url.URL
	http *retryablehttp.Client
}

func NewClient(baseURL string, opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q must be http or https", baseURL)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.RetryMax
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = nil
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if opts.Timeout > 0 {
		rc.HTTPClient.Timeout = opts.Timeout
	}
	return &Client{base: u, http: rc}, nil
}

type runsResponse struct {
	Content []run.Run `json:"content"`
}

// Runs lists runs from GET /api/v1/runs.
func (c *Client) Runs(ctx context.Context) ([]run.Run, error) {
	var resp runsResponse
	if err := c.get(ctx, "/api/v1/runs", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Content, nil
}

type logsResponse struct {
	Content struct {
		Lines               []string `json:"lines"`
		LineIDs             []int    `json:"line_ids"`
		ForwardCursorToken  *string  `json:"forward_cursor_token"`
		ReverseCursorToken  *string  `json:"reverse_cursor_token"`
		CanContinueForward  bool     `json:"can_continue_forward"`
		CanContinueBackward bool     `json:"can_continue_backward"`
		LogInfoMessage      *string  `json:"log_info_message"`
	} `json:"content"`
}

// Lines fetches a page from GET /api/v1/runs/{id}/logs.
func (c *Client) Lines(ctx context.Context, q logsource.Query) (logsource.Page, error) {
	params := url.Values{}
	if q.ForwardCursor != "" {
		params.Set("forward_cursor_token", q.ForwardCursor)
	}
	if q.ReverseCursor != "" {
		params.Set("reverse_cursor_token", q.ReverseCursor)
	}
	if q.MaxLines > 0 {
		params.Set("max_lines", strconv.Itoa(q.MaxLines))
	}
	if q.Filter != "" {
		params.Set("filter_string", q.Filter)
	}

	var resp logsResponse
	path := "/api/v1/runs/" + url.PathEscape(q.RunID) + "/logs"
	if err := c.get(ctx, path, params, &resp); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return logsource.Page{}, fmt.Errorf("%s: %w", q.RunID, logsource.ErrRunNotFound)
		}
		return logsource.Page{}, err
	}

	content := resp.Content
	page := logsource.Page{
		Lines:               make([]logsource.Line, len(content.Lines)),
		ForwardCursor:       deref(content.ForwardCursorToken),
		ReverseCursor:       deref(content.ReverseCursorToken),
		CanContinueForward:  content.CanContinueForward,
		CanContinueBackward: content.CanContinueBackward,
		InfoMessage:         deref(content.LogInfoMessage),
	}
	for i, text := range content.Lines {
		page.Lines[i] = logsource.Line{Text: text}
		if i < len(content.LineIDs) {
			page.Lines[i].Number = content.LineIDs[i]
		}
	}
	return page, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", u.Path, err)
	}
	defer resp.Body.Close()
	log.Debug("api request", "path", u.Path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method: http.MethodGet,
			URL:    u.Path,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", u.Path, err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
