package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"time"

	"jira-ticket-viewer/internal/common"
	"jira-ticket-viewer/internal/interfaces"
	"jira-ticket-viewer/internal/middleware"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
)

// jiraClient is safe for concurrent use: every field is set once at
// construction and requests share nothing else.
type jiraClient struct {
	client *resty.Client
	auth   interfaces.AuthHeaderProvider
	policy RetryPolicy
	logger arbor.ILogger
}

// NewJiraClient builds the API client. Each attempt is bounded by the
// connect timeout (dial and TLS) and the read timeout (response headers).
func NewJiraClient(creds common.Credentials, auth interfaces.AuthHeaderProvider, policy RetryPolicy, logger arbor.ILogger) interfaces.JiraClient {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   creds.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   creds.ConnectTimeout,
		ResponseHeaderTimeout: creds.ReadTimeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
	}

	client := resty.New().
		SetBaseURL(creds.BaseURL).
		SetTransport(transport).
		SetTimeout(creds.AttemptTimeout()).
		SetRetryCount(0).
		SetLogger(middleware.NewRestyLogger(logger)).
		SetHeader("Authorization", auth.Header()).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		OnBeforeRequest(middleware.RequestLogging(logger)).
		OnAfterResponse(middleware.ResponseLogging(logger))

	return &jiraClient{
		client: client,
		auth:   auth,
		policy: policy,
		logger: logger,
	}
}

func (jc *jiraClient) Get(ctx context.Context, path string, result interface{}) error {
	return jc.execute(ctx, http.MethodGet, path, nil, result)
}

func (jc *jiraClient) Post(ctx context.Context, path string, body, result interface{}) error {
	return jc.execute(ctx, http.MethodPost, path, body, result)
}

func (jc *jiraClient) Put(ctx context.Context, path string, body, result interface{}) error {
	return jc.execute(ctx, http.MethodPut, path, body, result)
}

func (jc *jiraClient) Delete(ctx context.Context, path string, result interface{}) error {
	return jc.execute(ctx, http.MethodDelete, path, nil, result)
}

func (jc *jiraClient) execute(ctx context.Context, method, path string, body, result interface{}) error {
	requestID := uuid.NewString()
	start := time.Now()

	policy := jc.policy
	onRetry := jc.policy.OnRetry
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		jc.logger.Warn().
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Int("attempt", attempt+1).
			Dur("backoff", delay).
			Err(err).
			Msg("Retryable Jira API failure, backing off")
		if onRetry != nil {
			onRetry(attempt, delay, err)
		}
	}

	attempts := 0
	err := policy.Execute(ctx, func(ctx context.Context, attempt int) error {
		attempts = attempt + 1
		return jc.attempt(ctx, method, path, body, result)
	})

	if err != nil {
		jc.logger.Error().
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Int("attempts", attempts).
			Str("error_type", string(common.ErrorTypeOf(err))).
			Err(err).
			Msg("Jira API request failed")
		return err
	}

	jc.logger.Info().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("attempts", attempts).
		Dur("duration", time.Since(start)).
		Msg("Jira API request completed")
	return nil
}

// attempt performs a single request and classifies its outcome
func (jc *jiraClient) attempt(ctx context.Context, method, path string, body, result interface{}) error {
	req := jc.client.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return classifyTransportError(err)
	}

	if failure := jc.classifyStatus(resp.StatusCode(), string(resp.Body())); failure != nil {
		return failure.WithContext("method", method).WithContext("path", path)
	}

	return decodeBody(resp.Body(), result)
}

func (jc *jiraClient) classifyStatus(status int, body string) *common.JiraError {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return common.NewAuthenticationError(jc.auth.Identity(), body)
	case status >= 500:
		return common.NewServerError(status, body)
	default:
		return common.NewClientRequestError(status, body)
	}
}

func classifyTransportError(err error) *common.JiraError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return common.NewNetworkError("cancelled", err)
	case errors.Is(err, syscall.ECONNREFUSED):
		return common.NewNetworkError("connection_refused", err)
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return common.NewNetworkError("timeout", err)
	default:
		return common.NewNetworkError("transport", err)
	}
}

func decodeBody(body []byte, result interface{}) error {
	if result == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return common.NewResponseError("decode_failed",
			fmt.Sprintf("failed to decode Jira API response: %v", err)).WithCause(err)
	}
	return nil
}
