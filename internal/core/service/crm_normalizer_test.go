package service

import (
	"reflect"
	"testing"
)

func TestNormalizeClientPayload_SplitsFullName(t *testing.T) {
	out := normalizeClientPayload(map[string]any{"name": "Charlie Tester"}, true, "en")

	if out["name"] != "Charlie" {
		t.Fatalf("expected name Charlie, got %v", out["name"])
	}
	if out["surname"] != "Tester" {
		t.Fatalf("expected surname Tester, got %v", out["surname"])
	}
}

func TestNormalizeClientPayload_FirstLastKeys(t *testing.T) {
	out := normalizeClientPayload(map[string]any{
		"firstname": "Ada",
		"last_name": "Lovelace",
	}, true, "en")

	if out["name"] != "Ada" || out["surname"] != "Lovelace" {
		t.Fatalf("unexpected name fields: %v / %v", out["name"], out["surname"])
	}
	for _, key := range []string{"firstname", "first_name", "lastname", "last_name"} {
		if _, ok := out[key]; ok {
			t.Fatalf("expected %s to be removed", key)
		}
	}
}

func TestNormalizeClientPayload_AliasKeysAlwaysRemoved(t *testing.T) {
	// Both spellings may arrive together; the preferred one wins and both
	// must be stripped from the result.
	out := normalizeClientPayload(map[string]any{
		"firstname":  "Ada",
		"first_name": "Augusta",
	}, false, "en")

	if out["name"] != "Ada" {
		t.Fatalf("expected firstname to win, got %v", out["name"])
	}
	if _, ok := out["first_name"]; ok {
		t.Fatalf("first_name alias survived normalization")
	}
}

func TestNormalizeClientPayload_DropsNullValues(t *testing.T) {
	out := normalizeClientPayload(map[string]any{
		"name":  "Solo",
		"notes": nil,
	}, false, "en")

	if _, ok := out["notes"]; ok {
		t.Fatalf("expected nil-valued key to be dropped")
	}
}

func TestNormalizeClientPayload_SynthesizesContact(t *testing.T) {
	out := normalizeClientPayload(map[string]any{
		"name":  "Ada",
		"email": "ada@example.com",
		"phone": "+39 055 1234",
	}, true, "en")

	contacts, ok := out["contacts"].([]any)
	if !ok || len(contacts) != 1 {
		t.Fatalf("expected one synthesized contact, got %v", out["contacts"])
	}
	contact := contacts[0].(map[string]any)
	if contact["name"] != "Primary" {
		t.Fatalf("expected Primary contact, got %v", contact["name"])
	}
	if !reflect.DeepEqual(contact["email"], []any{"ada@example.com"}) {
		t.Fatalf("unexpected email list: %v", contact["email"])
	}
	if !reflect.DeepEqual(contact["phone"], []any{"+39 055 1234"}) {
		t.Fatalf("unexpected phone list: %v", contact["phone"])
	}
	if !reflect.DeepEqual(contact["fax"], []any{}) {
		t.Fatalf("expected empty fax list, got %v", contact["fax"])
	}
	if _, ok := out["email"]; ok {
		t.Fatalf("flat email key should have been folded into contacts")
	}
}

func TestNormalizeClientPayload_KeepsExistingContacts(t *testing.T) {
	existing := []any{map[string]any{"name": "Office"}}
	out := normalizeClientPayload(map[string]any{
		"name":     "Ada",
		"email":    "ada@example.com",
		"contacts": existing,
	}, false, "en")

	if !reflect.DeepEqual(out["contacts"], existing) {
		t.Fatalf("existing contacts were replaced: %v", out["contacts"])
	}
}

func TestNormalizeClientPayload_CountryDefault(t *testing.T) {
	out := normalizeClientPayload(map[string]any{
		"name":    "Ada",
		"country": "IT",
	}, false, "en")
	if out["vat_country"] != "IT" {
		t.Fatalf("expected vat_country IT, got %v", out["vat_country"])
	}
	if _, ok := out["country"]; ok {
		t.Fatalf("country key should be consumed")
	}

	out = normalizeClientPayload(map[string]any{
		"name":        "Ada",
		"country":     "IT",
		"vat_country": "FR",
	}, false, "en")
	if out["vat_country"] != "FR" {
		t.Fatalf("explicit vat_country must win, got %v", out["vat_country"])
	}
}

func TestNormalizeClientPayload_CreationDefaults(t *testing.T) {
	out := normalizeClientPayload(map[string]any{"name": "Ada"}, true, "it")

	if !reflect.DeepEqual(out["profiles"], []any{"customer"}) {
		t.Fatalf("unexpected profiles: %v", out["profiles"])
	}
	if out["profile_type"] != "private" {
		t.Fatalf("unexpected profile_type: %v", out["profile_type"])
	}
	if out["language"] != "it" {
		t.Fatalf("unexpected language: %v", out["language"])
	}
}

func TestNormalizeClientPayload_UpdateSkipsDefaults(t *testing.T) {
	out := normalizeClientPayload(map[string]any{
		"marketing": true,
		"notes":     "vip",
	}, false, "en")

	if _, ok := out["profiles"]; ok {
		t.Fatalf("update must not inject profile defaults")
	}
	if _, ok := out["marketing"]; ok {
		t.Fatalf("marketing flag must be stripped")
	}
	if out["notes"] != "vip" {
		t.Fatalf("unrelated fields must pass through, got %v", out["notes"])
	}
}
