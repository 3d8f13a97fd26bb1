package controllers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/solstice-web/sitekit/modules/crm/domain/aggregates/lead"
)

// listSortFields is what the admin table offers. Export accepts the full
// column set since every column is present in the file anyway.
var listSortFields = map[lead.SortField]struct{}{
	lead.SortFullName:       {},
	lead.SortEmail:          {},
	lead.SortSourceFormName: {},
	lead.SortStatus:         {},
	lead.SortSubmittedAt:    {},
}

var exportSortFields = map[lead.SortField]struct{}{
	lead.SortID:             {},
	lead.SortFullName:       {},
	lead.SortEmail:          {},
	lead.SortPhone:          {},
	lead.SortCompany:        {},
	lead.SortMessage:        {},
	lead.SortSourceFormName: {},
	lead.SortSubmissionURL:  {},
	lead.SortStatus:         {},
	lead.SortIPAddress:      {},
	lead.SortSubmittedAt:    {},
	lead.SortCreatedAt:      {},
	lead.SortUpdatedAt:      {},
}

type queryError struct {
	message string
}

func (e *queryError) Error() string { return e.message }

// leadFindParams translates the query string into a FindParams, rejecting
// anything outside the allow-lists before a single query is built. Both the
// listing and the export go through here so their filter semantics cannot
// drift apart.
func leadFindParams(r *http.Request, allowed map[lead.SortField]struct{}) (*lead.FindParams, error) {
	q := r.URL.Query()
	params := &lead.FindParams{
		SortBy:   lead.SortSubmittedAt,
		FormName: strings.TrimSpace(q.Get("filterFormName")),
		Status:   strings.TrimSpace(q.Get("filterStatus")),
		Search:   strings.TrimSpace(q.Get("searchQuery")),
	}

	if v := strings.TrimSpace(q.Get("sortBy")); v != "" {
		field := lead.SortField(v)
		if _, ok := allowed[field]; !ok {
			return nil, &queryError{message: fmt.Sprintf(
				"invalid sortBy %q; allowed fields: %s", v, strings.Join(allowedFieldNames(allowed), ", "),
			)}
		}
		params.SortBy = field
	}

	switch order := strings.ToLower(strings.TrimSpace(q.Get("sortOrder"))); order {
	case "", "desc":
		params.SortAsc = false
	case "asc":
		params.SortAsc = true
	default:
		return nil, &queryError{message: fmt.Sprintf("invalid sortOrder %q; allowed values: asc, desc", order)}
	}

	if v := strings.TrimSpace(q.Get("filterStartDate")); v != "" {
		from, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return nil, &queryError{message: fmt.Sprintf("invalid filterStartDate %q; expected YYYY-MM-DD", v)}
		}
		params.From = &from
	}
	if v := strings.TrimSpace(q.Get("filterEndDate")); v != "" {
		end, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return nil, &queryError{message: fmt.Sprintf("invalid filterEndDate %q; expected YYYY-MM-DD", v)}
		}
		// The end date is inclusive: match everything before the next midnight.
		exclusive := end.AddDate(0, 0, 1)
		params.ToExclusive = &exclusive
	}

	return params, nil
}

func allowedFieldNames(allowed map[lead.SortField]struct{}) []string {
	names := make([]string, 0, len(allowed))
	for field := range allowed {
		names = append(names, string(field))
	}
	sort.Strings(names)
	return names
}
