package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"jira-ticket-viewer/internal/common"
	"jira-ticket-viewer/internal/interfaces"
	"jira-ticket-viewer/internal/models"

	"github.com/ternarybob/arbor"
)

const issuePath = "/rest/api/3/issue/"

type ticketService struct {
	client         interfaces.JiraClient
	logger         arbor.ILogger
	expandRendered bool
}

// NewTicketService returns a service fetching single tickets by key. With
// expandRendered set, the HTML renderings of fields are requested as well.
func NewTicketService(client interfaces.JiraClient, logger arbor.ILogger, expandRendered bool) interfaces.TicketService {
	return &ticketService{
		client:         client,
		logger:         logger,
		expandRendered: expandRendered,
	}
}

func (s *ticketService) GetTicket(ctx context.Context, key string) (*models.Ticket, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, common.NewInvalidArgumentError("empty_ticket_key", "Ticket key cannot be null or empty")
	}

	path := issuePath + url.PathEscape(key)
	if s.expandRendered {
		path += "?expand=renderedFields"
	}

	s.logger.Info().Str("ticket", key).Msg("Fetching ticket")

	var ticket models.Ticket
	if err := s.client.Get(ctx, path, &ticket); err != nil {
		return nil, err
	}

	if ticket.Key == "" {
		return nil, common.NewResponseError("empty_ticket",
			fmt.Sprintf("Jira API returned no ticket data for %s", key)).WithContext("ticket", key)
	}

	s.logger.Info().
		Str("ticket", ticket.Key).
		Str("status", ticket.Status()).
		Msg("Ticket fetched")

	return &ticket, nil
}
