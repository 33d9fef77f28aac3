package dto

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"hotelledger/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// MaxLimit caps a single page of any list endpoint.
const MaxLimit = 100

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty,min=1"`
	Limit   int    `json:"limit"    validate:"omitempty,min=1,max=100"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

func positiveParam(values url.Values, key string) int {
	n, err := strconv.Atoi(values.Get(key))
	if err != nil || n < 1 {
		return 0
	}

	return n
}

// FromRequest reads paging and sorting from the query string. Malformed or non-positive
// numbers are ignored; withDefaults fills page and limit when they are still unset.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	values := r.URL.Query()

	if page := positiveParam(values, constant.RequestParamPage); page > 0 {
		q.Page = page
	}

	if limit := positiveParam(values, constant.RequestParamLimit); limit > 0 {
		q.Limit = min(limit, MaxLimit)
	}

	if sortBy := strings.TrimSpace(values.Get(constant.RequestParamSortBy)); sortBy != "" {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

// Offset is the number of rows skipped before the current page, zero without paging.
func (q QueryParams) Offset() int {
	if q.Page < 1 || q.Limit < 1 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

// Sanitize drops a sort column outside allowed and qualifies the kept one with table, so
// joined queries stay unambiguous. An empty SortBy falls back to created_at.
func (q *QueryParams) Sanitize(table string, allowed ...string) {
	if !slices.Contains(allowed, q.SortBy) {
		q.SortBy = constant.DefaultValueSortBy
	}

	if q.SortDir == "" {
		q.SortDir = constant.DefaultValueSortDir
	}

	if table != "" && !strings.Contains(q.SortBy, ".") {
		q.SortBy = table + "." + q.SortBy
	}
}
