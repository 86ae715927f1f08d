// Package paginate provides page/page_size query parsing and the pagination
// metadata returned by every list endpoint.
package paginate

import (
	"net/http"
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Params are the caller-supplied page coordinates.
type Params struct {
	Page     int
	PageSize int
}

// Meta is the pagination block of a list response.
type Meta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// FromRequest reads page and page_size query parameters, clamping them to
// page >= 1 and 1 <= page_size <= MaxPageSize.
func FromRequest(r *http.Request) Params {
	p := Params{Page: 1, PageSize: DefaultPageSize}

	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v >= 1 {
		p.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v >= 1 {
		p.PageSize = v
		if p.PageSize > MaxPageSize {
			p.PageSize = MaxPageSize
		}
	}

	return p
}

// Skip returns the number of documents to skip for this page.
func (p Params) Skip() int64 {
	return int64(p.Page-1) * int64(p.PageSize)
}

// Limit returns the page size as an int64 for driver options.
func (p Params) Limit() int64 {
	return int64(p.PageSize)
}

// MetaFor computes the response metadata for a total document count.
func (p Params) MetaFor(total int64) Meta {
	pages := int(total) / p.PageSize
	if int(total)%p.PageSize != 0 {
		pages++
	}
	return Meta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: total,
		TotalPages: pages,
	}
}
