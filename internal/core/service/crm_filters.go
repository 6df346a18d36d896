package service

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tripdesk/travio-gateway/internal/core/ports"
)

// filterExpression is one upstream filter term.
type filterExpression struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// buildSearchParams translates the dashboard's flat filter map into upstream
// query parameters. Email and surname match with a contains (like) pattern;
// a client code matches exactly when purely numeric, as a substring
// otherwise. The phone filter has no upstream expression (there is no
// indexable phone field at the top level) and is returned separately for
// client-side post-filtering; it forces contact unfolding on the request.
func buildSearchParams(in ports.CRMSearchInput) (params map[string]string, phoneFilter string) {
	params = make(map[string]string)

	var expressions []filterExpression
	if email := in.Filters["filter[email]"]; email != "" {
		expressions = append(expressions, filterExpression{
			Field: "contacts.email", Operator: "like", Value: "%" + email + "%",
		})
	}
	if surname := in.Filters["filter[surname]"]; surname != "" {
		expressions = append(expressions, filterExpression{
			Field: "surname", Operator: "like", Value: "%" + surname + "%",
		})
	}
	if code := in.Filters["filter[code]"]; code != "" {
		operator, value := "like", "%"+code+"%"
		if isDigits(code) {
			operator, value = "=", code
		}
		expressions = append(expressions, filterExpression{
			Field: "id", Operator: operator, Value: value,
		})
	}

	if len(expressions) > 0 {
		encoded, _ := json.Marshal(expressions)
		params["filters"] = string(encoded)
	} else if len(in.Filters) > 0 {
		params["filters"] = "[]"
	}

	phoneFilter = in.Filters["filter[phone]"]
	if phoneFilter != "" {
		params["unfold"] = "contacts"
	}

	if in.Page != 0 {
		params["page"] = strconv.Itoa(in.Page)
	}
	if in.PerPage != 0 {
		params["per_page"] = strconv.Itoa(in.PerPage)
	}

	if in.Unfold != "" {
		if existing := params["unfold"]; existing != "" {
			params["unfold"] = existing + "," + in.Unfold
		} else {
			params["unfold"] = in.Unfold
		}
	} else if len(expressions) > 0 {
		if _, ok := params["unfold"]; !ok {
			params["unfold"] = "contacts"
		}
	}

	return params, phoneFilter
}

// applyPhoneFilter scans every item's contact phone numbers for the
// substring and rewrites the pagination metadata to reflect the reduced
// result set. All matching happens on the single fetched page, so pages is
// forced to 1 (known limitation, preserved from the original behaviour).
func applyPhoneFilter(response map[string]any, phone string) map[string]any {
	items, _ := response["items"].([]any)
	filtered := make([]any, 0, len(items))
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		for _, candidate := range contactPhones(item) {
			if strings.Contains(candidate, phone) {
				filtered = append(filtered, raw)
				break
			}
		}
	}

	perPage := intValue(response["per_page"])
	if perPage == 0 {
		perPage = len(filtered)
	}
	if perPage == 0 {
		perPage = 1
	}

	out := make(map[string]any, len(response)+1)
	for k, v := range response {
		out[k] = v
	}
	out["items"] = filtered
	out["filtered_by_phone"] = phone
	out["total"] = len(filtered)
	out["tot"] = len(filtered)
	out["pages"] = 1
	out["page"] = 1
	out["per_page"] = perPage
	return out
}

func contactPhones(item map[string]any) []string {
	var phones []string
	contacts, _ := item["contacts"].([]any)
	for _, raw := range contacts {
		contact, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		numbers, _ := contact["phone"].([]any)
		for _, n := range numbers {
			if s, ok := n.(string); ok {
				phones = append(phones, s)
			}
		}
	}
	return phones
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// intValue coerces the numeric types JSON decoding can produce.
func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
