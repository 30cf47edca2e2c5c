package interfaces

import (
	"context"

	"jira-ticket-viewer/internal/models"
)

// AuthHeaderProvider supplies the precomputed Authorization header
type AuthHeaderProvider interface {
	Header() string
	Identity() string
}

// JiraClient executes requests against the Jira REST API. A non-nil result is
// filled from the JSON response body. Failures are *common.JiraError values.
type JiraClient interface {
	Get(ctx context.Context, path string, result interface{}) error
	Post(ctx context.Context, path string, body, result interface{}) error
	Put(ctx context.Context, path string, body, result interface{}) error
	Delete(ctx context.Context, path string, result interface{}) error
}

type TicketService interface {
	GetTicket(ctx context.Context, key string) (*models.Ticket, error)
}
