package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJiraError_Format(t *testing.T) {
	err := NewConfigurationError("missing_identity", "Jira email is required")
	assert.Equal(t, "[configuration:missing_identity] Jira email is required", err.Error())

	err.Details = "set JIRA_EMAIL"
	assert.Equal(t, "[configuration:missing_identity] Jira email is required: set JIRA_EMAIL", err.Error())
}

func TestJiraError_Retryable(t *testing.T) {
	tests := []struct {
		err  *JiraError
		want bool
	}{
		{NewServerError(503, "down"), true},
		{NewNetworkError("timeout", errors.New("i/o timeout")), true},
		{NewAuthenticationError("user@example.com", "nope"), false},
		{NewClientRequestError(404, "missing"), false},
		{NewConfigurationError("bad", "bad"), false},
		{NewInvalidArgumentError("empty", "empty"), false},
		{NewResponseError("decode_failed", "garbled"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Type), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Retryable())
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}

	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(nil))
}

func TestAuthenticationError_MentionsIdentityAndBody(t *testing.T) {
	err := NewAuthenticationError("user@example.com", `{"errorMessages":["denied"]}`)

	assert.Equal(t, 401, err.StatusCode)
	assert.Contains(t, err.Message, "401 Unauthorized")
	assert.Contains(t, err.Message, "user@example.com")
	assert.Contains(t, err.Message, `{"errorMessages":["denied"]}`)
}

func TestStatusErrors_CarryStatusAndBody(t *testing.T) {
	client := NewClientRequestError(404, "Issue does not exist")
	assert.Equal(t, ErrorTypeClientRequest, client.Type)
	assert.Equal(t, "http_404", client.Code)
	assert.Equal(t, "Jira API request failed with status 404: Issue does not exist", client.Message)

	server := NewServerError(502, "bad gateway")
	assert.Equal(t, ErrorTypeServer, server.Type)
	assert.Equal(t, 502, server.StatusCode)
	assert.Contains(t, server.Message, "502")
}

func TestNetworkError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError("connection_refused", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Message, "connection refused")
}

func TestErrorTypeOf_FindsWrappedError(t *testing.T) {
	inner := NewInvalidArgumentError("empty_ticket_key", "Ticket key cannot be null or empty")
	wrapped := fmt.Errorf("fetch failed: %w", inner)

	assert.Equal(t, ErrorTypeInvalidArgument, ErrorTypeOf(wrapped))
	assert.True(t, IsErrorType(wrapped, ErrorTypeInvalidArgument))
	assert.False(t, IsErrorType(wrapped, ErrorTypeServer))
	assert.Equal(t, ErrorType(""), ErrorTypeOf(errors.New("plain")))
}

func TestWrapError_KeepsCause(t *testing.T) {
	cause := errors.New("strconv: bad number")
	err := WrapError(cause, ErrorTypeConfiguration, "invalid_env", "JIRA_MAX_RETRIES must be an integer")

	require.NotNil(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrorTypeConfiguration, err.Type)
}

func TestWithContext(t *testing.T) {
	err := NewServerError(500, "boom").WithContext("path", "/rest/api/3/issue/AIP-6")

	assert.Equal(t, "/rest/api/3/issue/AIP-6", err.Context["path"])
}
