package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	c.Request = req
	return c
}

func TestFilterScopes(t *testing.T) {
	fields := []FilterField{
		{Param: "org", Column: "org", Op: FilterExact},
		{Param: "name", Column: "display_name", Op: FilterIContains},
		{Param: "is_active", Column: "is_active", Op: FilterBool},
		{Param: "year_min", Column: "year_of_birth", Op: FilterIntMin},
		{Param: "date_from", Column: "date_for", Op: FilterDateFrom},
		{Param: "date_for", Column: "date_for", Op: FilterDateExact},
	}

	cases := []struct {
		name       string
		query      string
		wantScopes int
		wantErr    bool
	}{
		{
			name:       "no_params",
			query:      "",
			wantScopes: 0,
		},
		{
			name:       "single_exact",
			query:      "org=edX",
			wantScopes: 1,
		},
		{
			name:       "several_params",
			query:      "org=edX&name=intro&is_active=true",
			wantScopes: 3,
		},
		{
			name:       "unknown_params_ignored",
			query:      "page=2&ordering=name",
			wantScopes: 0,
		},
		{
			name:       "empty_value_skipped",
			query:      "org=",
			wantScopes: 0,
		},
		{
			name:    "bad_bool",
			query:   "is_active=maybe",
			wantErr: true,
		},
		{
			name:    "bad_int",
			query:   "year_min=abc",
			wantErr: true,
		},
		{
			name:    "bad_date",
			query:   "date_from=01-02-2018",
			wantErr: true,
		},
		{
			name:       "valid_date_range_and_exact",
			query:      "date_from=2018-01-01&date_for=2018-01-05",
			wantScopes: 2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := testContext(t, tc.query)
			scopes, err := FilterScopes(c, fields)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("FilterScopes(%q) expected error, got %d scopes", tc.query, len(scopes))
				}
				return
			}
			if err != nil {
				t.Fatalf("FilterScopes(%q) unexpected error: %v", tc.query, err)
			}
			if len(scopes) != tc.wantScopes {
				t.Fatalf("FilterScopes(%q) = %d scopes, want %d", tc.query, len(scopes), tc.wantScopes)
			}
		})
	}
}

func TestFilterScopesUnknownOp(t *testing.T) {
	c := testContext(t, "org=edX")
	_, err := FilterScopes(c, []FilterField{{Param: "org", Column: "org", Op: "regex"}})
	if err == nil {
		t.Fatalf("expected error for unknown filter op")
	}
}
