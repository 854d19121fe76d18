package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// IssueURL returns the web link to an issue.
func IssueURL(webURL, key string) string {
	return strings.TrimRight(webURL, "/") + "/" + key
}

// FormatIssue renders an issue as a plain-text block. Relative times are
// computed against now.
func FormatIssue(issue Issue, webURL string, now time.Time) string {
	var b strings.Builder

	status := issue.StatusDisplay()
	if status == "" {
		status = "Unknown"
	}

	fmt.Fprintf(&b, "Key:         %s\n", issue.Key)
	fmt.Fprintf(&b, "Title:       %s\n", issue.Summary)
	fmt.Fprintf(&b, "Status:      %s\n", status)
	if assignee := issue.AssigneeDisplay(); assignee != "" {
		fmt.Fprintf(&b, "Assignee:    %s\n", assignee)
	}
	if priority := issue.PriorityDisplay(); priority != "" {
		fmt.Fprintf(&b, "Priority:    %s\n", priority)
	}
	if updated, ok := issue.UpdatedTime(); ok {
		fmt.Fprintf(&b, "Updated:     %s\n", humanize.RelTime(updated, now, "ago", "from now"))
	}
	if len(issue.Tags) > 0 {
		fmt.Fprintf(&b, "Tags:        %s\n", strings.Join(issue.Tags, ", "))
	}
	if webURL != "" {
		fmt.Fprintf(&b, "Link:        %s\n", IssueURL(webURL, issue.Key))
	}

	description := strings.TrimSpace(issue.Description)
	if description == "" {
		description = "No description"
	}
	b.WriteString("\n")
	b.WriteString(description)
	b.WriteString("\n")

	return b.String()
}
