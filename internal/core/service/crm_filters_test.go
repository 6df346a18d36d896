package service

import (
	"encoding/json"
	"testing"

	"github.com/tripdesk/travio-gateway/internal/core/ports"
)

func decodeExpressions(t *testing.T, raw string) []filterExpression {
	t.Helper()
	var out []filterExpression
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("filters param is not valid JSON: %v", err)
	}
	return out
}

func TestBuildSearchParams_EmailAndSurname(t *testing.T) {
	params, phone := buildSearchParams(ports.CRMSearchInput{
		Filters: map[string]string{
			"filter[email]":   "rossi",
			"filter[surname]": "Rossi",
		},
	})
	if phone != "" {
		t.Fatalf("unexpected phone filter: %q", phone)
	}

	exprs := decodeExpressions(t, params["filters"])
	if len(exprs) != 2 {
		t.Fatalf("expected 2 expressions, got %d", len(exprs))
	}
	if exprs[0].Field != "contacts.email" || exprs[0].Operator != "like" || exprs[0].Value != "%rossi%" {
		t.Fatalf("unexpected email expression: %+v", exprs[0])
	}
	if exprs[1].Field != "surname" || exprs[1].Operator != "like" || exprs[1].Value != "%Rossi%" {
		t.Fatalf("unexpected surname expression: %+v", exprs[1])
	}
	if params["unfold"] != "contacts" {
		t.Fatalf("filtered searches must unfold contacts, got %q", params["unfold"])
	}
}

func TestBuildSearchParams_CodeOperator(t *testing.T) {
	params, _ := buildSearchParams(ports.CRMSearchInput{
		Filters: map[string]string{"filter[code]": "102"},
	})
	exprs := decodeExpressions(t, params["filters"])
	if exprs[0].Field != "id" || exprs[0].Operator != "=" || exprs[0].Value != "102" {
		t.Fatalf("numeric code should match exactly: %+v", exprs[0])
	}

	params, _ = buildSearchParams(ports.CRMSearchInput{
		Filters: map[string]string{"filter[code]": "AB12"},
	})
	exprs = decodeExpressions(t, params["filters"])
	if exprs[0].Operator != "like" || exprs[0].Value != "%AB12%" {
		t.Fatalf("alphanumeric code should match as substring: %+v", exprs[0])
	}
}

func TestBuildSearchParams_UnknownFiltersYieldEmptyList(t *testing.T) {
	params, _ := buildSearchParams(ports.CRMSearchInput{
		Filters: map[string]string{"filter[color]": "blue"},
	})
	if params["filters"] != "[]" {
		t.Fatalf("untranslatable filters must send an empty list, got %q", params["filters"])
	}
}

func TestBuildSearchParams_PhoneForcesUnfold(t *testing.T) {
	params, phone := buildSearchParams(ports.CRMSearchInput{
		Filters: map[string]string{"filter[phone]": "3391"},
		Unfold:  "addresses",
	})
	if phone != "3391" {
		t.Fatalf("phone filter not returned: %q", phone)
	}
	if params["unfold"] != "contacts,addresses" {
		t.Fatalf("expected merged unfold, got %q", params["unfold"])
	}
}

func TestBuildSearchParams_Pagination(t *testing.T) {
	params, _ := buildSearchParams(ports.CRMSearchInput{Page: 3, PerPage: 25})
	if params["page"] != "3" || params["per_page"] != "25" {
		t.Fatalf("unexpected pagination params: %v", params)
	}
	if _, ok := params["filters"]; ok {
		t.Fatalf("no filters should be sent without filter input")
	}

	params, _ = buildSearchParams(ports.CRMSearchInput{})
	if len(params) != 0 {
		t.Fatalf("empty input must yield empty params, got %v", params)
	}
}

func TestApplyPhoneFilter(t *testing.T) {
	response := map[string]any{
		"items": []any{
			map[string]any{
				"id": float64(101),
				"contacts": []any{
					map[string]any{"phone": []any{"+39 055 123456"}},
				},
			},
			map[string]any{
				"id": float64(102),
				"contacts": []any{
					map[string]any{"phone": []any{"+44 20 9999"}},
				},
			},
		},
		"total":    float64(2),
		"pages":    float64(5),
		"page":     float64(2),
		"per_page": float64(50),
	}

	out := applyPhoneFilter(response, "055")

	items := out["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one match, got %d", len(items))
	}
	if items[0].(map[string]any)["id"] != float64(101) {
		t.Fatalf("wrong item matched: %v", items[0])
	}
	if out["filtered_by_phone"] != "055" {
		t.Fatalf("missing filtered_by_phone marker: %v", out["filtered_by_phone"])
	}
	if out["total"] != 1 || out["tot"] != 1 {
		t.Fatalf("totals not rewritten: total=%v tot=%v", out["total"], out["tot"])
	}
	if out["pages"] != 1 || out["page"] != 1 {
		t.Fatalf("pagination not collapsed: pages=%v page=%v", out["pages"], out["page"])
	}
	if out["per_page"] != 50 {
		t.Fatalf("per_page should keep the upstream value, got %v", out["per_page"])
	}
}

func TestApplyPhoneFilter_NoMatches(t *testing.T) {
	out := applyPhoneFilter(map[string]any{"items": []any{}}, "555")

	if len(out["items"].([]any)) != 0 {
		t.Fatalf("expected no items")
	}
	if out["per_page"] != 1 {
		t.Fatalf("per_page must never be zero, got %v", out["per_page"])
	}
}
