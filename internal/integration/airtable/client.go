package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/colonyops/freigabe/internal/core/review"
)

const maxErrorBody = 4096

// errorBody covers both error shapes Airtable returns:
//
//	{"error": {"type": "INVALID_REQUEST", "message": "..."}}
//	{"error": "NOT_FOUND"}
type errorBody struct {
	Error json.RawMessage `json:"error"`
}

type errorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (g *Gateway) tableURL(query url.Values) string {
	u := strings.TrimRight(g.cfg.BaseURL, "/") + "/v0/" + url.PathEscape(g.cfg.BaseID) + "/" + url.PathEscape(g.cfg.Table)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (g *Gateway) recordURL(id string) string {
	return g.tableURL(nil) + "/" + url.PathEscape(id)
}

// do sends one request and decodes a successful JSON response into out.
// Every failure is returned as a *review.GatewayError.
func (g *Gateway) do(ctx context.Context, op, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &review.GatewayError{Op: op, Message: "could not encode request", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &review.GatewayError{Op: op, Message: "could not build request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := g.http.Do(req)
	if err != nil {
		g.log.Debug().Ctx(ctx).Err(err).Str("method", method).Str("path", req.URL.Path).Msg("airtable request failed")
		return &review.GatewayError{Op: op, Message: transportMessage(err), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	g.log.Debug().Ctx(ctx).
		Str("method", method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("airtable request")

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &review.GatewayError{
			Op:      op,
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, raw),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &review.GatewayError{Op: op, Status: resp.StatusCode, Message: "malformed response from Airtable", Err: err}
	}
	return nil
}

func transportMessage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "request to Airtable timed out"
	case errors.Is(err, context.Canceled):
		return "request to Airtable was cancelled"
	}

	var uErr *url.Error
	if errors.As(err, &uErr) && uErr.Timeout() {
		return "request to Airtable timed out"
	}
	return "could not reach Airtable"
}

// errorMessage extracts a human readable message from an Airtable error body,
// falling back to the HTTP status text.
func errorMessage(status int, raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Error) > 0 {
		var detail errorDetail
		if err := json.Unmarshal(body.Error, &detail); err == nil {
			switch {
			case detail.Message != "":
				return detail.Message
			case detail.Type != "":
				return humanizeCode(detail.Type)
			}
		}

		var code string
		if err := json.Unmarshal(body.Error, &code); err == nil && code != "" {
			return humanizeCode(code)
		}
	}

	if status == http.StatusTooManyRequests {
		return "rate limit exceeded, try again in a moment"
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("unexpected status %d", status)
}

// humanizeCode turns NOT_FOUND into "not found".
func humanizeCode(code string) string {
	return strings.ToLower(strings.ReplaceAll(code, "_", " "))
}
