package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"guesthouse/shared/constant"
	"guesthouse/shared/dto"
	"guesthouse/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  constant.ContextGuest,
		ModifiedBy: constant.AdminSubject,
	})

	assert.NotEmpty(t, metadata.CreatedAt)
	assert.NotEmpty(t, metadata.ModifiedAt)
	assert.Equal(t, constant.ContextGuest, metadata.CreatedBy)
	assert.Equal(t, constant.AdminSubject, metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		rawQuery       string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "with all valid parameters",
			rawQuery: "page=2&limit=20&sort_by=check_in&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "check_in", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults when empty",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults when disabled",
			expected: dto.QueryParams{},
		},
		{
			name:           "invalid and negative values fall back to defaults",
			rawQuery:       "page=-1&limit=abc",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "unknown sort direction ignored",
			rawQuery: "sort_dir=sideways",
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/admin/bookings?"+tt.rawQuery, nil)

			queryParams := dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, queryParams)
		})
	}
}

func TestQueryParams_LimitCapped(t *testing.T) {
	req := httptest.NewRequest("GET", "/v1/admin/bookings?limit=5000", nil)

	queryParams := dto.QueryParams{}
	queryParams.FromRequest(req, true)

	assert.Equal(t, constant.MaxValueLimit, queryParams.Limit)
}

func TestQueryParams_Window(t *testing.T) {
	tests := []struct {
		name       string
		params     dto.QueryParams
		total      int
		start, end int
	}{
		{name: "first page", params: dto.QueryParams{Page: 1, Limit: 10}, total: 25, start: 0, end: 10},
		{name: "last partial page", params: dto.QueryParams{Page: 3, Limit: 10}, total: 25, start: 20, end: 25},
		{name: "past the end", params: dto.QueryParams{Page: 4, Limit: 10}, total: 25, start: 25, end: 25},
		{name: "page zero is the first page", params: dto.QueryParams{Limit: 10}, total: 5, start: 0, end: 5},
		{name: "no limit selects everything", params: dto.QueryParams{Page: 2}, total: 7, start: 0, end: 7},
		{name: "empty listing", params: dto.QueryParams{Page: 1, Limit: 10}, total: 0, start: 0, end: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.params.Window(tt.total)

			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_id", Operator: dto.FilterOperatorEq, Value: "room-1", Table: "bookings"},
			dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"pending", "confirmed"}},
			dto.Filter{Field: "ignored", Operator: "bogus", Value: 1},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.room_id = :room_id AND status IN (:status_0, :status_1))", where)
	assert.Equal(t, map[string]any{"room_id": "room-1", "status_0": "pending", "status_1": "confirmed"}, args)
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
