package client

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"solana_analyst/internal/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StatusError is returned when an upstream answers with a non-200 status.
type StatusError struct {
	Service    string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s request to %s failed with status %d: %s", e.Service, e.URL, e.StatusCode, e.Body)
}

// requester issues GET requests over a shared fasthttp client and decodes JSON bodies.
type requester struct {
	client  *fasthttp.Client
	service string
	timeout time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func newRequester(service string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) *requester {
	return &requester{
		client: &fasthttp.Client{
			Name:                "solana-analyst",
			MaxIdleConnDuration: 90 * time.Second,
		},
		service: service,
		timeout: timeout,
		logger:  logger,
		metrics: m,
	}
}

// getJSON fetches requestURL and decodes a 200 body into out.
// The context deadline wins over the default timeout when present.
func (r *requester) getJSON(ctx context.Context, operation, requestURL string, headers map[string]string, out any) error {
	timer := metrics.NewTimer()
	err := r.doGetJSON(ctx, requestURL, headers, out)
	r.metrics.RecordUpstreamCall(r.service, operation, err, timer.Seconds())
	return err
}

func (r *requester) doGetJSON(ctx context.Context, requestURL string, headers map[string]string, out any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("request to %s not sent: %w", requestURL, err)
	}

	r.logger.Debug("Requesting upstream", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := r.client.DoDeadline(req, resp, deadline); err != nil {
			r.logger.Warn("Failed to execute upstream request", zap.String("url", requestURL), zap.Error(err))
			return fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := r.client.DoTimeout(req, resp, r.timeout); err != nil {
			r.logger.Warn("Failed to execute upstream request (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()

	if sc := resp.StatusCode(); sc < fasthttp.StatusOK || sc >= fasthttp.StatusMultipleChoices {
		r.logger.Warn("Upstream request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", truncate(rawBody, 512)),
		)
		return &StatusError{
			Service:    r.service,
			URL:        requestURL,
			StatusCode: resp.StatusCode(),
			Body:       string(truncate(rawBody, 512)),
		}
	}

	if err := json.Unmarshal(rawBody, out); err != nil {
		r.logger.Warn("Failed to unmarshal upstream response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", truncate(rawBody, 512)),
			zap.Error(err),
		)
		return fmt.Errorf("failed to unmarshal response from %s: %w", requestURL, err)
	}
	return nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
