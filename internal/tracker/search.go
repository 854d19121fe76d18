package tracker

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// SearchRequest is the body of an issue search. Only set fields are sent, so
// the zero value serializes to {}. Combining modes is left to the server.
type SearchRequest struct {
	Filter   map[string]any `json:"filter,omitempty"`
	Query    string         `json:"query,omitempty"` // tracker query language
	Keys     []string       `json:"keys,omitempty"`
	Queue    string         `json:"queue,omitempty"`
	FilterID *int64         `json:"filterId,omitempty"`
	Order    string         `json:"order,omitempty"` // e.g. "-updated"
}

// ScrollType selects scroll pagination ordering.
type ScrollType string

const (
	ScrollSorted   ScrollType = "sorted"
	ScrollUnsorted ScrollType = "unsorted"
)

// SearchParams are the query parameters of an issue search. Zero fields are
// omitted.
type SearchParams struct {
	Expand     []ExpandField
	ID         string
	Page       int
	PerPage    int
	PerScroll  int
	ScrollID   string
	ScrollTTL  time.Duration // sent as scrollTTLMillis
	ScrollType ScrollType
}

func (p *SearchParams) values() url.Values {
	v := url.Values{}
	if p == nil {
		return v
	}
	if len(p.Expand) > 0 {
		v.Set("expand", joinExpand(p.Expand))
	}
	if p.PerPage > 0 {
		v.Set("perPage", strconv.Itoa(p.PerPage))
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.ID != "" {
		v.Set("id", p.ID)
	}
	if p.ScrollType != "" {
		v.Set("scrollType", string(p.ScrollType))
	}
	if p.PerScroll > 0 {
		v.Set("perScroll", strconv.Itoa(p.PerScroll))
	}
	if p.ScrollTTL > 0 {
		v.Set("scrollTTLMillis", strconv.FormatInt(p.ScrollTTL.Milliseconds(), 10))
	}
	if p.ScrollID != "" {
		v.Set("scrollId", p.ScrollID)
	}
	return v
}

// ParseScrollType validates a scroll type.
func ParseScrollType(s string) (ScrollType, error) {
	switch t := ScrollType(s); t {
	case "", ScrollSorted, ScrollUnsorted:
		return t, nil
	default:
		return "", fmt.Errorf("unknown scroll type %q (want sorted or unsorted)", s)
	}
}

// SearchIssues returns the issues matching req.
func (c *Client) SearchIssues(ctx context.Context, req SearchRequest, params *SearchParams) ([]Issue, error) {
	raw, _, err := c.Post(ctx, "issues/_search", req, params.values())
	if err != nil {
		return nil, err
	}

	var issues []Issue
	if err := decodeInto(raw, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}
