package common

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Credentials holds the validated connection settings for the Jira API.
// It is built once at startup and passed by value; nothing mutates it afterwards.
type Credentials struct {
	BaseURL           string
	Identity          string
	Secret            string
	ConnectTimeout    time.Duration
	ReadTimeout       time.Duration
	MaxRetries        int
	BackoffMultiplier float64
	RetryBaseDelay    time.Duration
}

// Validate checks every invariant and reports all failures in one ConfigurationError
func (c Credentials) Validate() error {
	var problems []string

	if strings.TrimSpace(c.BaseURL) == "" {
		problems = append(problems, "Jira base URL is required. Please set JIRA_BASE_URL environment variable or jira.base_url property")
	} else if u, err := url.Parse(c.BaseURL); err != nil {
		problems = append(problems, fmt.Sprintf("Jira base URL is invalid: %v", err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		problems = append(problems, "Jira base URL must use http or https scheme")
	} else if u.Host == "" {
		problems = append(problems, "Jira base URL must include a host")
	}

	if strings.TrimSpace(c.Identity) == "" {
		problems = append(problems, "Jira email is required. Please set JIRA_EMAIL environment variable or jira.email property")
	}
	if strings.TrimSpace(c.Secret) == "" {
		problems = append(problems, "Jira API token is required. Please set JIRA_API_TOKEN environment variable or jira.api_token property")
	}
	if c.ConnectTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("Jira connection timeout must be greater than 0. Current value: %s", c.ConnectTimeout))
	}
	if c.ReadTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("Jira read timeout must be greater than 0. Current value: %s", c.ReadTimeout))
	}
	if c.MaxRetries < 0 {
		problems = append(problems, fmt.Sprintf("Jira max retries must be non-negative. Current value: %d", c.MaxRetries))
	}
	if c.BackoffMultiplier <= 0 {
		problems = append(problems, fmt.Sprintf("Jira retry backoff multiplier must be greater than 0. Current value: %g", c.BackoffMultiplier))
	}
	if c.RetryBaseDelay <= 0 {
		problems = append(problems, fmt.Sprintf("Jira retry base delay must be greater than 0. Current value: %s", c.RetryBaseDelay))
	}

	if len(problems) > 0 {
		e := NewConfigurationError("invalid_credentials", "invalid Jira configuration")
		e.Details = strings.Join(problems, "; ")
		return e
	}
	return nil
}

// AttemptTimeout bounds a single request attempt: connect plus read
func (c Credentials) AttemptTimeout() time.Duration {
	return c.ConnectTimeout + c.ReadTimeout
}

// String masks the secret so credentials can be logged safely
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{BaseURL: %s, Identity: %s, Secret: ****, ConnectTimeout: %s, ReadTimeout: %s, MaxRetries: %d, BackoffMultiplier: %g}",
		c.BaseURL, c.Identity, c.ConnectTimeout, c.ReadTimeout, c.MaxRetries, c.BackoffMultiplier)
}
