package validators

import (
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/dmoralesb/mesafina-backend/pkg/errors"
	"github.com/dmoralesb/mesafina-backend/pkg/pagination"
)

func TestParsePaginationDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/history", nil)
	params, err := ParsePagination(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Page != 1 || params.Limit != pagination.DefaultLimit {
		t.Fatalf("unexpected params %+v", params)
	}
}

func TestParsePaginationExplicitValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/history?page=3&limit=50", nil)
	params, err := ParsePagination(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Page != 3 || params.Limit != 50 {
		t.Fatalf("unexpected params %+v", params)
	}
}

func TestParsePaginationRejectsBadValues(t *testing.T) {
	cases := []string{
		"/history?page=0",
		"/history?page=abc",
		"/history?limit=0",
		"/history?limit=101",
	}
	for _, url := range cases {
		r := httptest.NewRequest("GET", url, nil)
		if _, err := ParsePagination(r); err == nil {
			t.Fatalf("%s: expected validation error", url)
		} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: expected validation code, got %v", url, err)
		}
	}
}
