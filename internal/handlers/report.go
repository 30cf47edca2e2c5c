package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"jira-ticket-viewer/internal/common"
	"jira-ticket-viewer/internal/models"

	"github.com/ternarybob/banner"
)

const ruleWidth = 80

// ReportHandler writes a fetched ticket either as a human readable report or
// as a JSON envelope for scripts.
type ReportHandler struct {
	out   io.Writer
	color bool
}

func NewReportHandler(out io.Writer, color bool) *ReportHandler {
	return &ReportHandler{out: out, color: color}
}

// RenderTicket prints the sectioned ticket report. Missing fields are skipped
// except summary and description, which print N/A.
func (h *ReportHandler) RenderTicket(ticket *models.Ticket) {
	rule := strings.Repeat("=", ruleWidth)

	h.println("")
	h.println(rule)
	h.println(h.paint(banner.ColorPurple, "JIRA TICKET DETAILS"))
	h.println(rule)

	h.section("📋 Basic Information:")
	h.field("Key", ticket.Key)
	h.field("ID", ticket.ID)
	h.field("URL", ticket.Self)

	if ticket.Fields != nil {
		h.section("📝 Summary:")
		h.println("  " + orNA(ticket.Summary()))

		h.section("📄 Description:")
		description := ticket.Description()
		if description == "" {
			description = ticket.RenderedDescription()
		}
		if description == "" {
			h.println("  N/A")
		} else {
			for _, line := range strings.Split(description, "\n") {
				h.println("  " + line)
			}
		}

		h.section("📊 Status & Type:")
		h.optionalField("Status", ticket.Status())
		h.optionalField("Issue Type", ticket.IssueType())
		h.optionalField("Priority", ticket.Priority())

		h.section("👥 People:")
		if assignee := ticket.Fields.Assignee; assignee != nil {
			h.person("Assignee", assignee)
		} else {
			h.field("Assignee", "Unassigned")
		}
		if reporter := ticket.Fields.Reporter; reporter != nil {
			h.person("Reporter", reporter)
		}

		if ticket.Fields.Project != nil {
			h.section("📦 Project:")
			h.field("Key", ticket.ProjectKey())
			h.field("Name", ticket.ProjectName())
		}

		h.section("📅 Dates:")
		h.optionalField("Created", ticket.Created())
		h.optionalField("Updated", ticket.Updated())
	}

	h.println("")
	h.println(rule)
}

func (h *ReportHandler) section(title string) {
	h.println("")
	h.println(h.paint(banner.ColorCyan, title))
}

func (h *ReportHandler) field(label, value string) {
	h.println(fmt.Sprintf("  %-12s%s", label+":", value))
}

func (h *ReportHandler) optionalField(label, value string) {
	if value != "" {
		h.field(label, value)
	}
}

func (h *ReportHandler) person(label string, user *models.User) {
	h.field(label, user.Name())
	if user.EmailAddress != "" && user.EmailAddress != user.Name() {
		h.println(strings.Repeat(" ", 14) + user.EmailAddress)
	}
}

func (h *ReportHandler) paint(color, message string) string {
	return common.Colorize(h.color, color, message)
}

func (h *ReportHandler) println(line string) {
	fmt.Fprintln(h.out, line)
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}

// Envelope is the JSON document printed in quiet mode
type Envelope struct {
	Success   bool               `json:"success"`
	Timestamp string             `json:"timestamp"`
	Ticket    *models.TicketData `json:"ticket,omitempty"`
	Stats     *Stats             `json:"stats,omitempty"`
	Error     string             `json:"error,omitempty"`
	ErrorType string             `json:"error_type,omitempty"`
}

type Stats struct {
	DurationMs int64 `json:"duration_ms"`
}

// RenderJSON writes the success envelope for ticket
func (h *ReportHandler) RenderJSON(ticket *models.Ticket, elapsed time.Duration) error {
	return h.writeEnvelope(Envelope{
		Success:   true,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Ticket:    ticket.ToTicketData(),
		Stats:     &Stats{DurationMs: elapsed.Milliseconds()},
	})
}

// RenderJSONError writes the failure envelope for err
func (h *ReportHandler) RenderJSONError(err error) error {
	return h.writeEnvelope(Envelope{
		Success:   false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Error:     err.Error(),
		ErrorType: string(common.ErrorTypeOf(err)),
	})
}

func (h *ReportHandler) writeEnvelope(envelope Envelope) error {
	encoder := json.NewEncoder(h.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(envelope); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}
