// Package tracker is a client for the Yandex Tracker REST API.
package tracker

import "context"

// Tracker is the subset of the tracker API used by commands and the TUI.
type Tracker interface {

	// GetIssue returns a single issue by key or id.
	GetIssue(ctx context.Context, issueID string, params *GetIssueParams) (*Issue, error)

	// SearchIssues returns the issues matching req.
	SearchIssues(ctx context.Context, req SearchRequest, params *SearchParams) ([]Issue, error)
}
