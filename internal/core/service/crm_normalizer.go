package service

import "strings"

// normalizeClientPayload reshapes a loosely-typed client payload into the
// upstream master-data format: null-valued keys are dropped, name fields are
// renamed/split, email/phone are folded into a synthesized Primary contact,
// and country becomes a non-destructive vat_country default. Creation-only
// defaults (profiles, profile_type, language) are applied when
// includeDefaults is true.
func normalizeClientPayload(data map[string]any, includeDefaults bool, language string) map[string]any {
	payload := make(map[string]any, len(data))
	for k, v := range data {
		if v != nil {
			payload[k] = v
		}
	}

	first := popString(payload, "firstname", "first_name")
	last := popString(payload, "lastname", "last_name")
	name, _ := payload["name"].(string)

	switch {
	case first != "":
		payload["name"] = first
	case includeDefaults && name == "":
		payload["name"] = ""
	case name != "" && includeDefaults:
		payload["name"] = strings.SplitN(name, " ", 2)[0]
	}

	if last != "" {
		payload["surname"] = last
	} else if _, ok := payload["surname"]; !ok && name != "" && strings.Contains(name, " ") {
		payload["surname"] = strings.SplitN(name, " ", 2)[1]
	}

	email := popString(payload, "email")
	phone := popString(payload, "phone")
	if !hasContacts(payload) && (email != "" || phone != "") {
		contact := map[string]any{
			"name":  "Primary",
			"email": []any{},
			"phone": []any{},
			"fax":   []any{},
		}
		if email != "" {
			contact["email"] = []any{email}
		}
		if phone != "" {
			contact["phone"] = []any{phone}
		}
		payload["contacts"] = []any{contact}
	}

	if country := popString(payload, "country"); country != "" {
		if _, ok := payload["vat_country"]; !ok {
			payload["vat_country"] = country
		}
	}

	delete(payload, "marketing")

	if includeDefaults {
		setDefault(payload, "profiles", []any{"customer"})
		setDefault(payload, "profile_type", "private")
		setDefault(payload, "language", language)
	}

	return payload
}

// popString removes every listed key and returns the string value of the
// first one that was present.
func popString(m map[string]any, keys ...string) string {
	var out string
	found := false
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		if !found {
			if s, ok := v.(string); ok {
				out = s
			}
			found = true
		}
		delete(m, k)
	}
	return out
}

func hasContacts(payload map[string]any) bool {
	contacts, ok := payload["contacts"]
	if !ok {
		return false
	}
	if list, ok := contacts.([]any); ok {
		return len(list) > 0
	}
	if list, ok := contacts.([]map[string]any); ok {
		return len(list) > 0
	}
	return true
}

func setDefault(m map[string]any, key string, value any) {
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}
