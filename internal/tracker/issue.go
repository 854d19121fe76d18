package tracker

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmcampanini/you-cli/internal/apierr"
)

// TimestampLayout is the format of timestamps returned by the tracker.
const TimestampLayout = "2006-01-02T15:04:05.000-0700"

// Issue is a tracker issue. Optional objects are nil when the API omits them.
type Issue struct {
	Self                 string   `json:"self,omitempty"`
	ID                   string   `json:"id,omitempty"`
	Key                  string   `json:"key"`
	Version              *int     `json:"version,omitempty"`
	LastCommentUpdatedAt string   `json:"lastCommentUpdatedAt,omitempty"`
	Summary              string   `json:"summary"`
	Parent               *Ref     `json:"parent,omitempty"`
	Aliases              []string `json:"aliases,omitempty"`
	UpdatedBy            *User    `json:"updatedBy,omitempty"`
	Description          string   `json:"description,omitempty"`
	Sprint               []Ref    `json:"sprint,omitempty"`
	Type                 *Ref     `json:"type,omitempty"`
	Priority             *Ref     `json:"priority,omitempty"`
	CreatedAt            string   `json:"createdAt,omitempty"`
	Followers            []User   `json:"followers,omitempty"`
	CreatedBy            *User    `json:"createdBy,omitempty"`
	Votes                int      `json:"votes"`
	Assignee             *User    `json:"assignee,omitempty"`
	Project              *Project `json:"project,omitempty"`
	Queue                *Ref     `json:"queue,omitempty"`
	UpdatedAt            string   `json:"updatedAt,omitempty"`
	Status               *Ref     `json:"status,omitempty"`
	PreviousStatus       *Ref     `json:"previousStatus,omitempty"`
	Favorite             bool     `json:"favorite"`
	Tags                 []string `json:"tags,omitempty"`
}

// Ref is a reference to another tracker object: a status, priority, issue
// type, queue, sprint, parent issue or project.
type Ref struct {
	Self    string `json:"self,omitempty"`
	ID      string `json:"id,omitempty"`
	Key     string `json:"key,omitempty"`
	Display string `json:"display,omitempty"`
}

// User is a reference to a tracker user.
type User struct {
	Self        string `json:"self,omitempty"`
	ID          string `json:"id,omitempty"`
	Display     string `json:"display,omitempty"`
	PassportUID uint64 `json:"passportUid,omitempty"`
	CloudUID    string `json:"cloudUid,omitempty"`
}

// Project holds the primary and secondary projects of an issue.
type Project struct {
	Primary   *Ref  `json:"primary,omitempty"`
	Secondary []Ref `json:"secondary,omitempty"`
}

// StatusDisplay returns the display name of the status, or "" when unset.
func (i Issue) StatusDisplay() string {
	if i.Status == nil {
		return ""
	}
	return i.Status.Display
}

// AssigneeDisplay returns the display name of the assignee, or "" when unset.
func (i Issue) AssigneeDisplay() string {
	if i.Assignee == nil {
		return ""
	}
	return i.Assignee.Display
}

// PriorityDisplay returns the display name of the priority, or "" when unset.
func (i Issue) PriorityDisplay() string {
	if i.Priority == nil {
		return ""
	}
	return i.Priority.Display
}

// UpdatedTime parses UpdatedAt. The second result is false when it is empty
// or malformed.
func (i Issue) UpdatedTime() (time.Time, bool) {
	return ParseTimestamp(i.UpdatedAt)
}

// ParseTimestamp parses a tracker timestamp, also accepting RFC 3339.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{TimestampLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ExpandField requests optional sections of an issue.
type ExpandField string

const (
	ExpandAttachments ExpandField = "attachments"
	ExpandComments    ExpandField = "comments"
	ExpandTransitions ExpandField = "transitions"
)

// ParseExpandField validates an expand field name.
func ParseExpandField(s string) (ExpandField, error) {
	switch f := ExpandField(strings.ToLower(strings.TrimSpace(s))); f {
	case ExpandAttachments, ExpandComments, ExpandTransitions:
		return f, nil
	default:
		return "", fmt.Errorf("unknown expand field %q (want attachments, comments or transitions)", s)
	}
}

func joinExpand(fields []ExpandField) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}

// GetIssueParams are optional parameters of GetIssue.
type GetIssueParams struct {
	Expand []ExpandField
}

// GetIssue returns a single issue by key or id.
func (c *Client) GetIssue(ctx context.Context, issueID string, params *GetIssueParams) (*Issue, error) {
	issueID = strings.TrimSpace(issueID)
	if issueID == "" {
		return nil, apierr.InvalidRequest("issue id cannot be empty")
	}

	var query url.Values
	if params != nil && len(params.Expand) > 0 {
		query = url.Values{"expand": []string{joinExpand(params.Expand)}}
	}

	raw, _, err := c.Get(ctx, "issues/"+url.PathEscape(issueID), query)
	if err != nil {
		return nil, err
	}

	var issue Issue
	if err := decodeInto(raw, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}
