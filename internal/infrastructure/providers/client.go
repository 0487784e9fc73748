package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/crm/backend/internal/domain/connector"
	"go.uber.org/zap"
)

const (
	// maxResponseSize limits the response body size to prevent memory exhaustion
	maxResponseSize = 10 * 1024 * 1024 // 10MB

	defaultTimeout = 10 * time.Second
)

// httpDoer is satisfied by *http.Client; tests substitute fakes.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// baseClient carries the plumbing shared by all provider adapters.
// Live calls degrade to the provider's fixed sample set when the
// transport fails or the response body is unusable; only deliberate
// provider verdicts (auth failures, rate limits, server errors) are
// surfaced as errors.
type baseClient struct {
	provider   connector.Provider
	baseURL    string
	httpClient httpDoer
	logger     *zap.Logger
	samples    []connector.RawRecord
}

func newBaseClient(provider connector.Provider, baseURL string, timeout time.Duration, logger *zap.Logger, samples []connector.RawRecord) baseClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseClient{
		provider:   provider,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		samples:    samples,
	}
}

// Provider returns the provider this client handles
func (c *baseClient) Provider() connector.Provider {
	return c.provider
}

// sampleSet returns a fresh copy of the sample records so callers
// cannot mutate the canonical set.
func (c *baseClient) sampleSet() []connector.RawRecord {
	out := make([]connector.RawRecord, len(c.samples))
	for i, r := range c.samples {
		record := make(connector.RawRecord, len(r))
		for k, v := range r {
			record[k] = v
		}
		out[i] = record
	}
	return out
}

// fetch runs one prepared request and extracts the record array found
// under recordsKey in the JSON response. A nil error with nil records
// means "degrade to samples".
func (c *baseClient) fetch(req *http.Request, recordsKey string) ([]connector.RawRecord, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("provider request failed, serving sample data",
			zap.String("provider", c.provider.String()),
			zap.Error(err),
		)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: HTTP %d", connector.ClassifyStatus(resp.StatusCode), resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		c.logger.Warn("provider response unreadable, serving sample data",
			zap.String("provider", c.provider.String()),
			zap.Error(err),
		)
		return nil, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.logger.Warn("provider response malformed, serving sample data",
			zap.String("provider", c.provider.String()),
			zap.Error(err),
		)
		return nil, nil
	}

	raw, ok := envelope[recordsKey]
	if !ok {
		return []connector.RawRecord{}, nil
	}

	var records []connector.RawRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		c.logger.Warn("provider records malformed, serving sample data",
			zap.String("provider", c.provider.String()),
			zap.Error(err),
		)
		return nil, nil
	}
	return records, nil
}

// search is the common live-call path: no credential means sample mode,
// and a degraded fetch falls back to the sample set.
func (c *baseClient) search(ctx context.Context, cred *connector.Credential, build func(ctx context.Context, secret string) (*http.Request, error), recordsKey string) ([]connector.RawRecord, error) {
	if cred == nil {
		return c.sampleSet(), nil
	}

	req, err := build(ctx, cred.Secret())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", c.provider, err)
	}

	records, err := c.fetch(req, recordsKey)
	if err != nil {
		return nil, err
	}
	if records == nil {
		return c.sampleSet(), nil
	}
	return records, nil
}
