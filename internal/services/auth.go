package services

import (
	"encoding/base64"
	"strings"

	"jira-ticket-viewer/internal/common"
)

// AuthHeaderProvider holds the Basic auth header derived from the configured
// email and API token. The header is computed once, at construction.
type AuthHeaderProvider struct {
	identity string
	header   string
}

// NewAuthHeaderProvider validates the identity and secret and derives the
// header. It is called during startup so bad credentials fail before any request.
func NewAuthHeaderProvider(creds common.Credentials) (*AuthHeaderProvider, error) {
	if strings.TrimSpace(creds.Identity) == "" {
		return nil, common.NewConfigurationError("missing_identity",
			"Jira email is required for authentication. Please set JIRA_EMAIL environment variable or jira.email property")
	}
	if strings.TrimSpace(creds.Secret) == "" {
		return nil, common.NewConfigurationError("missing_secret",
			"Jira API token is required for authentication. Please set JIRA_API_TOKEN environment variable or jira.api_token property")
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(creds.Identity + ":" + creds.Secret))
	return &AuthHeaderProvider{
		identity: creds.Identity,
		header:   "Basic " + encoded,
	}, nil
}

// Header returns the Authorization header value
func (p *AuthHeaderProvider) Header() string {
	return p.header
}

// Identity returns the email used for authentication
func (p *AuthHeaderProvider) Identity() string {
	return p.identity
}
