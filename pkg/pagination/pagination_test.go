package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(-3); got != DefaultLimit {
		t.Fatalf("expected default limit for negative input, got %d", got)
	}
	if got := NormalizeLimit(500); got != MaxLimit {
		t.Fatalf("expected max limit cap, got %d", got)
	}
	if got := NormalizeLimit(42); got != 42 {
		t.Fatalf("expected passthrough, got %d", got)
	}
}

func TestParamsValidate(t *testing.T) {
	if err := (Params{Page: 1, Limit: 20}).Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}
	if err := (Params{Page: 0, Limit: 20}).Validate(); err == nil {
		t.Fatal("expected page validation error")
	}
	if err := (Params{Page: 1, Limit: 0}).Validate(); err == nil {
		t.Fatal("expected limit validation error")
	}
}

func TestOffsetAndMeta(t *testing.T) {
	params := Params{Page: 3, Limit: 10}
	if got := params.Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}

	meta := NewMeta(params, 25)
	if meta.Total != 25 {
		t.Fatalf("unexpected total %d", meta.Total)
	}
	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 25 rows at limit 10, got %d", meta.TotalPages)
	}
	if meta.Page != 3 || meta.Limit != 10 {
		t.Fatalf("unexpected meta %+v", meta)
	}
}
