package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"jira-ticket-viewer/internal/common"
)

// Ticket represents a Jira issue as returned by GET /rest/api/3/issue/{key}
type Ticket struct {
	ID             string          `json:"id"`
	Key            string          `json:"key"`
	Self           string          `json:"self"`
	Fields         *TicketFields   `json:"fields"`
	RenderedFields *RenderedFields `json:"renderedFields,omitempty"`
}

// TicketFields is the "fields" object of an issue. Description is kept raw
// because API v3 returns it as an ADF document (older sites return a string).
type TicketFields struct {
	Summary     string          `json:"summary"`
	Description json.RawMessage `json:"description"`
	Status      *Status         `json:"status"`
	Assignee    *User           `json:"assignee"`
	Reporter    *User           `json:"reporter"`
	Project     *Project        `json:"project"`
	Created     string          `json:"created"`
	Updated     string          `json:"updated"`
	IssueType   *IssueType      `json:"issuetype"`
	Priority    *Priority       `json:"priority"`
}

// RenderedFields holds HTML renderings, present only with expand=renderedFields
type RenderedFields struct {
	Description string `json:"description"`
}

type Status struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type User struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
	Active       bool   `json:"active"`
}

type IssueType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Subtask     bool   `json:"subtask"`
}

type Priority struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Summary returns the summary, or "" when fields are absent
func (t *Ticket) Summary() string {
	if t.Fields == nil {
		return ""
	}
	return t.Fields.Summary
}

// Description returns the description flattened to plain text
func (t *Ticket) Description() string {
	if t.Fields == nil || len(t.Fields.Description) == 0 {
		return ""
	}
	return ExtractTextFromJSON(t.Fields.Description)
}

// RenderedDescription returns the HTML-rendered description as plain text
func (t *Ticket) RenderedDescription() string {
	if t.RenderedFields == nil {
		return ""
	}
	return common.HTMLToText(t.RenderedFields.Description)
}

func (t *Ticket) Status() string {
	if t.Fields == nil || t.Fields.Status == nil {
		return ""
	}
	return t.Fields.Status.Name
}

func (t *Ticket) Assignee() string {
	if t.Fields == nil {
		return ""
	}
	return t.Fields.Assignee.Name()
}

func (t *Ticket) Reporter() string {
	if t.Fields == nil {
		return ""
	}
	return t.Fields.Reporter.Name()
}

func (t *Ticket) IssueType() string {
	if t.Fields == nil || t.Fields.IssueType == nil {
		return ""
	}
	return t.Fields.IssueType.Name
}

func (t *Ticket) Priority() string {
	if t.Fields == nil || t.Fields.Priority == nil {
		return ""
	}
	return t.Fields.Priority.Name
}

func (t *Ticket) ProjectKey() string {
	if t.Fields == nil || t.Fields.Project == nil {
		return ""
	}
	return t.Fields.Project.Key
}

func (t *Ticket) ProjectName() string {
	if t.Fields == nil || t.Fields.Project == nil {
		return ""
	}
	return t.Fields.Project.Name
}

func (t *Ticket) Created() string {
	if t.Fields == nil {
		return ""
	}
	return t.Fields.Created
}

func (t *Ticket) Updated() string {
	if t.Fields == nil {
		return ""
	}
	return t.Fields.Updated
}

// Name returns the display name, falling back to the email address. Safe on nil.
func (u *User) Name() string {
	if u == nil {
		return ""
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.EmailAddress
}

// TicketData is the flattened view of a ticket used for JSON output
type TicketData struct {
	Key         string `json:"key"`
	ID          string `json:"id"`
	URL         string `json:"url"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	IssueType   string `json:"issue_type"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Created     string `json:"created"`
	Updated     string `json:"updated"`
	Reporter    string `json:"reporter"`
	Assignee    string `json:"assignee"`
	ProjectKey  string `json:"project_key"`
	ProjectName string `json:"project_name"`

	Hash string `json:"hash"`
}

// ToTicketData flattens the ticket and stamps it with a short content hash
func (t *Ticket) ToTicketData() *TicketData {
	description := t.Description()
	if description == "" {
		description = t.RenderedDescription()
	}

	data := &TicketData{
		Key:         t.Key,
		ID:          t.ID,
		URL:         t.Self,
		Summary:     t.Summary(),
		Description: description,
		IssueType:   t.IssueType(),
		Status:      t.Status(),
		Priority:    t.Priority(),
		Created:     t.Created(),
		Updated:     t.Updated(),
		Reporter:    t.Reporter(),
		Assignee:    t.Assignee(),
		ProjectKey:  t.ProjectKey(),
		ProjectName: t.ProjectName(),
	}
	data.Hash = generateDataHash(data)
	return data
}

func generateDataHash(data *TicketData) string {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return ""
	}

	hash := sha256.Sum256(jsonData)
	return hex.EncodeToString(hash[:8])
}
