// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/socialscope/socialscope/internal/logging"
	"github.com/socialscope/socialscope/internal/models"
)

// maxResponseBytes bounds how much of an upstream body is read. Platform
// payloads for the supported operations are far below this.
const maxResponseBytes = 8 << 20

// upstreamRequest is one outbound call. Headers are applied verbatim; a JSON
// body is marshaled when Body is non-nil.
type upstreamRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    any
}

// doJSON performs req and decodes the response body into out when out is
// non-nil and the status is 2xx. It returns the HTTP status code; a non-nil
// error means the call never produced a status (transport failure, timeout,
// malformed body).
func doJSON(ctx context.Context, client *http.Client, req upstreamRequest, out any) (int, error) {
	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return 0, fmt.Errorf("encoding request body: %w", err)
		}
		body = strings.NewReader(string(raw))
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, nil
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return 0, fmt.Errorf("decoding response body: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// baseURL turns a configured provider host into a base URL. Hosts normally
// arrive bare ("provider.p.rapidapi.com"); a value that already carries a
// scheme is used as-is.
func baseURL(host string) string {
	if strings.Contains(host, "://") {
		return strings.TrimSuffix(host, "/")
	}
	return "https://" + host
}

// failureFromTransport maps a transport-level error (no HTTP status was
// obtained) to a normalized upstream failure.
func failureFromTransport(platform string, err error) models.PlatformResult {
	msg := fmt.Sprintf("%s request failed", platform)
	if errors.Is(err, context.DeadlineExceeded) {
		msg = fmt.Sprintf("%s request timed out", platform)
	}
	logging.Err(err).Str("platform", platform).Msg("Upstream request failed")
	return models.Failure(models.ErrorUpstream, msg)
}

// failureFromStatus maps a non-2xx upstream status to a normalized failure.
// 403 and 404 become not_found (upstreams hide private resources behind
// 403), 429 becomes rate_limited, everything else is an upstream error
// carrying the status code.
func failureFromStatus(platform string, status int) models.PlatformResult {
	switch status {
	case http.StatusForbidden, http.StatusNotFound:
		return models.Failure(models.ErrorNotFound, fmt.Sprintf("%s resource not found", platform))
	case http.StatusTooManyRequests:
		return models.Failure(models.ErrorRateLimited, fmt.Sprintf("%s rate limit exceeded", platform))
	default:
		return models.Failure(models.ErrorUpstream, fmt.Sprintf("%s returned status %d", platform, status))
	}
}
