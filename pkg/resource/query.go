// Package resource implements the generic contract every console resource
// (users, products, categories, devices) is accessed through: paginated
// listing with optional filters, and create/update/delete mutations. Paging
// and ordering are server-authoritative; the client returns the parsed
// envelope unchanged and holds no resource state between calls.
package resource

import (
	"errors"
	"net/url"
	"strconv"
)

// Query validation errors.
var (
	// ErrInvalidPageIndex is returned for a page index below 1.
	ErrInvalidPageIndex = errors.New("page index must be >= 1")

	// ErrInvalidPageSize is returned for a page size below 1.
	ErrInvalidPageSize = errors.New("page size must be >= 1")
)

// Query holds the listing parameters. PageIndex is 1-based. The filter
// fields are optional: an empty filter is omitted from the request entirely,
// never sent as an empty value.
type Query struct {
	PageIndex int
	PageSize  int
	Keyword   string
	Status    string
	Role      string
}

// Validate checks the paging bounds.
func (q Query) Validate() error {
	if q.PageIndex < 1 {
		return ErrInvalidPageIndex
	}
	if q.PageSize < 1 {
		return ErrInvalidPageSize
	}
	return nil
}

// Values serializes the query, omitting absent filters.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("pageIndex", strconv.Itoa(q.PageIndex))
	v.Set("pageSize", strconv.Itoa(q.PageSize))
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Role != "" {
		v.Set("role", q.Role)
	}
	return v
}

// Page is the listing envelope as the server returns it.
type Page[T any] struct {
	Data        []T  `json:"data"`
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	PageSize    int  `json:"pageSize"`
	LastPage    bool `json:"lastPage"`
}
