package ratesource

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/SscSPs/loan_application_app/internal/apperrors"
	portsrepo "github.com/SscSPs/loan_application_app/internal/core/ports/repositories"
	"github.com/go-resty/resty/v2"
)

const (
	defaultUserAgent = "loan-application-service/1.0"
	maxErrorBody     = 256
)

// RestyClient is the RateSourceClient backed by go-resty. It never retries.
type RestyClient struct {
	client *resty.Client
}

// ClientOption is a functional option for configuring the rate source client
type ClientOption func(*resty.Client)

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *resty.Client) {
		c.SetHeader("User-Agent", ua)
	}
}

// NewRestyClient creates a client whose requests time out after timeout. A
// zero timeout leaves requests bounded only by their context.
func NewRestyClient(timeout time.Duration, options ...ClientOption) *RestyClient {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", defaultUserAgent)
	for _, option := range options {
		option(client)
	}
	return &RestyClient{client: client}
}

var _ portsrepo.RateSourceClient = (*RestyClient)(nil)

// GetJSON implements RateSourceClient. Every failure wraps
// apperrors.ErrUpstreamUnavailable and never carries the API key.
func (c *RestyClient) GetJSON(ctx context.Context, rawURL string, dst any) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(dst).
		ForceContentType("application/json").
		Get(rawURL)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", apperrors.ErrUpstreamUnavailable, redact(rawURL), transportCause(err))
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%w: GET %s: status %d: %s", apperrors.ErrUpstreamUnavailable, redact(rawURL), resp.StatusCode(), truncate(resp.String(), maxErrorBody))
	}
	return nil
}

// transportCause strips the request URL net/http embeds in transport errors.
func transportCause(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
