package middleware

import (
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/ternarybob/arbor"
)

// RequestLogging logs each outgoing Jira API attempt
func RequestLogging(logger arbor.ILogger) resty.RequestMiddleware {
	return func(c *resty.Client, r *resty.Request) error {
		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL).
			Msg("Jira API request")
		return nil
	}
}

// ResponseLogging logs status and latency for every response, including
// error statuses. Transport failures never reach this hook.
func ResponseLogging(logger arbor.ILogger) resty.ResponseMiddleware {
	return func(c *resty.Client, resp *resty.Response) error {
		if resp.IsError() {
			logger.Warn().
				Str("method", resp.Request.Method).
				Str("url", resp.Request.URL).
				Int("status", resp.StatusCode()).
				Dur("duration", resp.Time()).
				Msg("Jira API error response")
			return nil
		}

		logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("duration", resp.Time()).
			Msg("Jira API response")
		return nil
	}
}

// restyLogger routes resty's internal messages to arbor
type restyLogger struct {
	logger arbor.ILogger
}

// NewRestyLogger adapts an arbor logger to resty.Logger
func NewRestyLogger(logger arbor.ILogger) resty.Logger {
	return &restyLogger{logger: logger}
}

func (l *restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
