package dto_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"taskpad/shared/constant"
	"taskpad/shared/dto"
)

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "title",
				"sort_dir": "ASC",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    2,
				Limit:   20,
				SortBy:  "title",
				SortDir: "ASC",
			},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name:           "with default request disabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
		{
			name: "with invalid page parameter",
			queryParams: map[string]string{
				"page": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "with negative page parameter",
			queryParams: map[string]string{
				"page": "-1",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "with invalid sort direction",
			queryParams: map[string]string{
				"sort_dir": "sideways",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "with lowercase sort direction",
			queryParams: map[string]string{
				"sort_dir": "desc",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				SortDir: "DESC",
			},
		},
		{
			name: "with partial parameters and defaults enabled",
			queryParams: map[string]string{
				"page":    "3",
				"sort_by": "created_at",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:   3,
				Limit:  constant.DefaultValueLimit,
				SortBy: "created_at",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse("http://example.com/test")
			if err != nil {
				t.Fatalf("failed to parse URL: %v", err)
			}

			query := u.Query()
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}
			u.RawQuery = query.Encode()

			req, err := http.NewRequest("GET", u.String(), nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}

			queryParams := &dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			if queryParams.Page != tt.expected.Page {
				t.Errorf("expected Page to be %d, got %d", tt.expected.Page, queryParams.Page)
			}
			if queryParams.Limit != tt.expected.Limit {
				t.Errorf("expected Limit to be %d, got %d", tt.expected.Limit, queryParams.Limit)
			}
			if queryParams.SortBy != tt.expected.SortBy {
				t.Errorf("expected SortBy to be %s, got %s", tt.expected.SortBy, queryParams.SortBy)
			}
			if queryParams.SortDir != tt.expected.SortDir {
				t.Errorf("expected SortDir to be %s, got %s", tt.expected.SortDir, queryParams.SortDir)
			}
		})
	}
}

func TestSortDirectionConstants(t *testing.T) {
	if dto.SortDirAsc != "ASC" {
		t.Errorf("expected SortDirAsc to be 'ASC', got %s", dto.SortDirAsc)
	}
	if dto.SortDirDesc != "DESC" {
		t.Errorf("expected SortDirDesc to be 'DESC', got %s", dto.SortDirDesc)
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	t.Run("eq", func(t *testing.T) {
		f := dto.Filter{Field: "email", Operator: dto.FilterOperatorEq, Value: "a@example.com", Table: "users"}

		where, args := f.GetWhereClause()

		if where != "users.email = :email" {
			t.Errorf("unexpected where clause: %s", where)
		}
		if args["email"] != "a@example.com" {
			t.Errorf("unexpected args: %v", args)
		}
	})

	t.Run("like wraps value in wildcards", func(t *testing.T) {
		f := dto.Filter{Field: "title", Operator: dto.FilterOperatorLike, Value: "milk", Table: "todos"}

		where, args := f.GetWhereClause()

		if !strings.Contains(where, "LOWER(todos.title) LIKE LOWER(:title)") {
			t.Errorf("unexpected where clause: %s", where)
		}
		if args["title"] != "%milk%" {
			t.Errorf("unexpected args: %v", args)
		}
	})

	t.Run("in expands slice values", func(t *testing.T) {
		f := dto.Filter{Field: "id", Operator: dto.FilterOperatorIn, Value: []int64{1, 2, 3}}

		where, args := f.GetWhereClause()

		if !strings.Contains(where, "id IN (:id_0, :id_1, :id_2)") {
			t.Errorf("unexpected where clause: %s", where)
		}
		if len(args) != 3 {
			t.Errorf("expected 3 args, got %d", len(args))
		}
	})

	t.Run("custom arg name", func(t *testing.T) {
		f := dto.Filter{ArgName: "owner", Field: "user_id", Operator: dto.FilterOperatorEq, Value: int64(9)}

		where, args := f.GetWhereClause()

		if where != "user_id = :owner" {
			t.Errorf("unexpected where clause: %s", where)
		}
		if args["owner"] != int64(9) {
			t.Errorf("unexpected args: %v", args)
		}
	})
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("empty group", func(t *testing.T) {
		group := dto.FilterGroup{}

		where, args := group.GetWhereClause()

		if where != "" {
			t.Errorf("expected empty clause, got %s", where)
		}
		if len(args) != 0 {
			t.Errorf("expected no args, got %v", args)
		}
	})

	t.Run("defaults to AND", func(t *testing.T) {
		group := dto.FilterGroup{
			Filters: []any{
				dto.Filter{Field: "id", Operator: dto.FilterOperatorEq, Value: int64(5)},
				dto.Filter{Field: "user_id", Operator: dto.FilterOperatorEq, Value: int64(9)},
			},
		}

		where, args := group.GetWhereClause()

		if !strings.Contains(where, " AND ") {
			t.Errorf("expected AND operator, got %s", where)
		}
		if len(args) != 2 {
			t.Errorf("expected 2 args, got %d", len(args))
		}
	})

	t.Run("nested group", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorOr,
			Filters: []any{
				dto.Filter{Field: "title", Operator: dto.FilterOperatorLike, Value: "a"},
				dto.FilterGroup{
					Filters: []any{
						dto.Filter{Field: "id", Operator: dto.FilterOperatorEq, Value: int64(1)},
					},
				},
			},
		}

		where, _ := group.GetWhereClause()

		if !strings.Contains(where, " OR ") {
			t.Errorf("expected OR operator, got %s", where)
		}
		if strings.Count(where, "(") < 2 {
			t.Errorf("expected nested parentheses, got %s", where)
		}
	})
}
