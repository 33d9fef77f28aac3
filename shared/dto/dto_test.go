package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"hotelledger/shared/constant"
	"hotelledger/shared/dto"
	"hotelledger/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	var meta dto.Metadata
	meta.FromModel(model.Metadata{CreatedAt: createdAt, CreatedBy: "agent-7", ModifiedBy: "agent-7"})

	assert.Equal(t, createdAt.Format(constant.DateFormat), meta.CreatedAt)
	assert.Empty(t, meta.ModifiedAt, "zero time renders empty")
	assert.Equal(t, "agent-7", meta.CreatedBy)
	assert.Equal(t, "agent-7", meta.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		defaults bool
		expected dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=check_in_date&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "check_in_date", SortDir: dto.SortDirAsc},
		},
		{
			name:     "defaults fill page and limit",
			defaults: true,
			expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults leaves zero values",
			expected: dto.QueryParams{},
		},
		{
			name:     "garbage numbers are ignored",
			query:    "page=abc&limit=-4",
			defaults: true,
			expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "limit is capped",
			query:    "limit=5000",
			expected: dto.QueryParams{Limit: dto.MaxLimit},
		},
		{
			name:     "unknown sort direction is dropped",
			query:    "sort_dir=sideways",
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/bookings?"+tt.query, nil)

			var params dto.QueryParams
			params.FromRequest(req, tt.defaults)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 20, dto.QueryParams{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Limit: 10}.Offset())
}

func TestQueryParams_Sanitize(t *testing.T) {
	tests := []struct {
		name    string
		params  dto.QueryParams
		allowed []string
		table   string
		sortBy  string
		sortDir string
	}{
		{
			name:    "allowed column is qualified",
			params:  dto.QueryParams{SortBy: "check_in_date", SortDir: dto.SortDirAsc},
			allowed: []string{"check_in_date"},
			table:   "bookings",
			sortBy:  "bookings.check_in_date",
			sortDir: dto.SortDirAsc,
		},
		{
			name:    "unknown column falls back",
			params:  dto.QueryParams{SortBy: "1; DROP TABLE bookings"},
			allowed: []string{"check_in_date"},
			table:   "bookings",
			sortBy:  "bookings." + constant.DefaultValueSortBy,
			sortDir: constant.DefaultValueSortDir,
		},
		{
			name:    "no table keeps bare column",
			params:  dto.QueryParams{SortBy: "name", SortDir: dto.SortDirDesc},
			allowed: []string{"name"},
			sortBy:  "name",
			sortDir: dto.SortDirDesc,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.params
			params.Sanitize(tt.table, tt.allowed...)

			assert.Equal(t, tt.sortBy, params.SortBy)
			assert.Equal(t, tt.sortDir, params.SortDir)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "hotel_id", Value: "h-1", Operator: dto.FilterOperatorEq, Table: "bookings"},
			dto.Filter{Field: "check_in_date", Value: "2024-02-01", Operator: dto.FilterOperatorLess, Table: "bookings"},
			dto.Filter{ArgName: "status", Field: "status_id", Value: []int{1, 2}, Operator: dto.FilterOperatorIn},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "q_name", Field: "full_name", Value: "50%_off", Operator: dto.FilterOperatorLike},
					dto.Filter{ArgName: "q_no", Field: "booking_no", Value: "FTB", Operator: dto.FilterOperatorLike},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t,
		"(bookings.hotel_id = :hotel_id AND bookings.check_in_date < :check_in_date AND status_id IN (:status_0, :status_1)"+
			" AND (full_name ILIKE :q_name OR booking_no ILIKE :q_no))",
		where)
	assert.Equal(t, map[string]any{
		"hotel_id":      "h-1",
		"check_in_date": "2024-02-01",
		"status_0":      1,
		"status_1":      2,
		"q_name":        `%50\%\_off%`,
		"q_no":          "%FTB%",
	}, args)
}

func TestFilter_EdgeOperators(t *testing.T) {
	where, args := dto.Filter{Field: "id", Value: []string{}, Operator: dto.FilterOperatorIn}.GetWhereClause()
	assert.Equal(t, "FALSE", where)
	assert.Empty(t, args)

	where, _ = dto.Filter{Field: "id", Value: "x", Operator: "drop"}.GetWhereClause()
	assert.Empty(t, where)

	where, _ = dto.FilterGroup{Filters: []any{dto.Filter{Field: "id", Operator: "drop"}}}.GetWhereClause()
	assert.Empty(t, where)
}
