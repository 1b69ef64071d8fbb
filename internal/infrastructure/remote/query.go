package remote

import (
	"fmt"
	"net/url"
)

// ListQuery assembles the repeated query expressions understood by the
// backend's document-list endpoint: equality filters, ascending
// ordering, and a result limit.
type ListQuery struct {
	exprs []string
}

func NewListQuery() *ListQuery {
	return &ListQuery{}
}

// Equal keeps only documents whose field equals value exactly.
func (q *ListQuery) Equal(field, value string) *ListQuery {
	q.exprs = append(q.exprs, fmt.Sprintf("equal(%q,%q)", field, value))
	return q
}

// OrderAsc orders the result ascending by field.
func (q *ListQuery) OrderAsc(field string) *ListQuery {
	q.exprs = append(q.exprs, fmt.Sprintf("orderAsc(%q)", field))
	return q
}

// Limit caps the number of returned documents. The reported total
// still counts every match, which is how callers detect uniqueness
// violations behind a limit(1).
func (q *ListQuery) Limit(n int) *ListQuery {
	q.exprs = append(q.exprs, fmt.Sprintf("limit(%d)", n))
	return q
}

// Encode renders the expressions as a URL query string.
func (q *ListQuery) Encode() string {
	values := url.Values{}
	for _, expr := range q.exprs {
		values.Add("query", expr)
	}
	return values.Encode()
}
