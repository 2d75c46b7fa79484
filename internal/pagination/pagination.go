// Package pagination holds the page/per-page/sort window logic shared by the
// list and search paths of every repository implementation.
package pagination

import (
	"fmt"
	"strconv"
)

const (
	// DefaultPerPage applies when the caller sends no page size, zero, or
	// garbage. Values above MaxPerPage are clamped rather than rejected.
	DefaultPerPage = 10
	MaxPerPage     = 100

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Params describes one page of an ordered result set. Page is 1-indexed.
type Params struct {
	Page    int
	PerPage int
	Sort    string
}

// FromQuery builds Params from raw query-string values. Unparsable numbers
// behave as zero and get clamped by Normalize.
func FromQuery(page, perPage, sort string) Params {
	p, _ := strconv.Atoi(page)
	pp, _ := strconv.Atoi(perPage)
	return Params{Page: p, PerPage: pp, Sort: sort}.Normalize()
}

// Normalize clamps out-of-range values instead of erroring: page below 1
// becomes 1, per_page below 1 becomes the default, per_page above the cap is
// capped, and any sort token other than "asc" means newest first.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.Sort != SortAsc {
		p.Sort = SortDesc
	}
	return p
}

// Offset returns the number of records preceding the requested page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Window maps the page onto [lo, hi) indexes of a slice of length total.
// Pages past the end collapse to an empty window.
func (p Params) Window(total int) (lo, hi int) {
	lo = p.Offset()
	if lo > total {
		lo = total
	}
	hi = lo + p.PerPage
	if hi > total {
		hi = total
	}
	return lo, hi
}

// OrderClause renders the ORDER BY / LIMIT / OFFSET tail for the given
// timestamp column. Sort has been normalized to a fixed token, so the
// interpolation cannot carry user input.
func (p Params) OrderClause(column string) string {
	dir := "DESC"
	if p.Sort == SortAsc {
		dir = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s LIMIT %d OFFSET %d", column, dir, p.PerPage, p.Offset())
}
