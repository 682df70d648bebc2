package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/spritzen-labs/simply-staking/internal/observability/metrics"
	"github.com/spritzen-labs/simply-staking/internal/observability/tracing"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

type BaseClientInterface interface {
	GetBaseURL() string
	GetDefaultRequestTimeout() time.Duration
	GetHttpClient() *http.Client
}

type HttpClientOptions struct {
	Timeout time.Duration
	// Path is the request path including query parameters.
	Path string
	// TemplatePath labels the request in metrics, e.g. /v1/tokens/{token}.
	TemplatePath string
	Headers      map[string]string
}

// SendRequest sends input as JSON and decodes the data field of the
// response into R. Non-2xx responses come back as *types.Error carrying the
// server's status and error code.
func SendRequest[I any, R any](
	ctx context.Context, client BaseClientInterface, method string, opts *HttpClientOptions, input *I,
) (*R, *types.Error) {
	timeout := client.GetDefaultRequestTimeout()
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if input != nil {
		raw, err := json.Marshal(input)
		if err != nil {
			return nil, types.NewErrorWithMsg(
				http.StatusInternalServerError, types.InternalServiceError, "failed to marshal request body",
			)
		}
		body = bytes.NewReader(raw)
	}

	url := client.GetBaseURL() + opts.Path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, types.NewError(http.StatusInternalServerError, types.InternalServiceError, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if traceID := tracing.TraceID(ctx); traceID != "" {
		req.Header.Set("X-Request-ID", traceID)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	timer := metrics.StartClientRequestDurationTimer(client.GetBaseURL(), method, opts.TemplatePath)

	resp, err := client.GetHttpClient().Do(req)
	if err != nil {
		timer(0)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, types.NewError(http.StatusRequestTimeout, types.InternalServiceError,
				fmt.Errorf("request to %s timed out: %w", url, err))
		}
		return nil, types.NewError(http.StatusInternalServerError, types.InternalServiceError,
			fmt.Errorf("failed to send request to %s: %w", url, err))
	}
	defer resp.Body.Close()
	timer(resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, decodeError(ctx, resp)
	}

	var result types.Response[R]
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, types.NewError(http.StatusInternalServerError, types.InternalServiceError,
			fmt.Errorf("failed to decode response from %s: %w", url, err))
	}

	return &result.Data, nil
}

func decodeError(ctx context.Context, resp *http.Response) *types.Error {
	var errResp types.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.ErrorCode == "" {
		log.Ctx(ctx).Debug().Int("status", resp.StatusCode).Msg("Response without error body")
		return types.NewErrorWithMsg(resp.StatusCode, types.InternalServiceError,
			fmt.Sprintf("request failed with status %d", resp.StatusCode))
	}

	return types.NewErrorWithMsg(resp.StatusCode, types.ErrorCode(errResp.ErrorCode), errResp.Message)
}
