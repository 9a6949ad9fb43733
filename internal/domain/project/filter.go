package project

import (
	"net/url"
	"strconv"
	"strings"
)

// PageSize is the fixed number of projects requested per page.
const PageSize = 12

// Filter holds the list criteria edited by the user.
type Filter struct {
	Search    string
	Status    Status
	TeamID    string
	ManagerID string
	From      string
	To        string
}

// IsZero reports whether no criterion is set.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Query encodes the filter with paging into GET /projects parameters.
// Empty criteria are omitted.
func (f Filter) Query(page, limit int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	set := func(key, value string) {
		if v := strings.TrimSpace(value); v != "" {
			q.Set(key, v)
		}
	}
	set("search", f.Search)
	set("status", string(f.Status))
	set("team", f.TeamID)
	set("manager", f.ManagerID)
	set("from", f.From)
	set("to", f.To)
	return q
}
