package models

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10

	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// ListFilter selects, orders and pages directory records. Role and Active
// are kept as strings because that is how the API receives them; values
// other than "1"/"2" and "true"/"false" disable the filter.
type ListFilter struct {
	Search    string
	Role      string
	Active    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Normalized returns a copy with defaults applied.
func (f ListFilter) Normalized() ListFilter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.SortBy == "" {
		f.SortBy = "creacion"
	}
	f.SortOrder = strings.ToUpper(f.SortOrder)
	if f.SortOrder != SortAsc {
		f.SortOrder = SortDesc
	}
	return f
}

// RoleFilter returns the role to filter on, if any.
func (f ListFilter) RoleFilter() (Role, bool) {
	switch f.Role {
	case "1":
		return RoleSuperUser, true
	case "2":
		return RoleStandardUser, true
	default:
		return 0, false
	}
}

// ActiveFilter returns the active flag to filter on, if any.
func (f ListFilter) ActiveFilter() (bool, bool) {
	switch f.Active {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// Query encodes the filter as API query parameters, skipping empty values.
func (f ListFilter) Query() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("search", f.Search)
	set("rol", f.Role)
	set("activo", f.Active)
	set("sortBy", f.SortBy)
	set("sortOrder", f.SortOrder)
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// Pagination describes one page of a listing.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

// NewPagination computes page metadata for total items split into pages
// of limit items.
func NewPagination(page, limit, total int) Pagination {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1,
	}
}

// UserPage is one page of a listing.
type UserPage struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}
