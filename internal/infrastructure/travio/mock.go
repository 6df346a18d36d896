package travio

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/tripdesk/travio-gateway/internal/core/ports"
)

// MockClient is an in-memory upstream serving deterministic canned data.
// It implements the same forwarding contract as the live client and makes
// no network calls, so the gateway can run without live credentials.
type MockClient struct {
	language string

	mu            sync.Mutex
	token         string
	clients       []map[string]any
	nextClientID  int
	searchResults map[string]map[string]any
	carts         map[string]map[string]any
	reservations  map[int]map[string]any
	categories    []map[string]any
	destinations  []map[string]any
}

var _ ports.Upstream = (*MockClient)(nil)

// NewMockClient seeds the mock with two demo clients and static lookup data.
func NewMockClient(language string) *MockClient {
	return &MockClient{
		language:     language,
		token:        "mock-token",
		nextClientID: 103,
		clients: []map[string]any{
			{
				"id":           101,
				"name":         "Alice",
				"surname":      "Example",
				"profiles":     []any{"customer"},
				"profile_type": "private",
				"language":     "en",
				"vat_country":  "IT",
				"categories":   []any{1},
				"contacts": []any{
					map[string]any{
						"name":  "Primary",
						"email": []any{"alice@example.com"},
						"phone": []any{"+3900000001"},
						"fax":   []any{},
					},
				},
			},
			{
				"id":           102,
				"name":         "Bob",
				"surname":      "Sample",
				"profiles":     []any{"customer"},
				"profile_type": "private",
				"language":     "en",
				"vat_country":  "US",
				"categories":   []any{2},
				"contacts": []any{
					map[string]any{
						"name":  "Primary",
						"email": []any{"bob@example.com"},
						"phone": []any{"+3900000002"},
						"fax":   []any{},
					},
				},
			},
		},
		searchResults: make(map[string]map[string]any),
		carts:         make(map[string]map[string]any),
		reservations:  make(map[int]map[string]any),
		categories: []map[string]any{
			{"id": 1, "code": "CLI", "name": "Clienti privati"},
			{"id": 2, "code": "CORP", "name": "Clienti corporate"},
			{"id": 3, "code": "SUP", "name": "Fornitori"},
		},
		destinations: []map[string]any{
			{"id": 10, "name": "Milan", "type": "city", "country": "IT"},
			{"id": 11, "name": "Paris", "type": "city", "country": "FR"},
			{"id": 12, "name": "Rome", "type": "city", "country": "IT"},
		},
	}
}

func (m *MockClient) Close() error { return nil }

func mockID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

// --- Auth & session ---

func (m *MockClient) Authenticate(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MockClient) GetProfile(context.Context) (map[string]any, error) {
	return map[string]any{
		"user": map[string]any{
			"id":    1,
			"name":  "Mock User",
			"email": "mock.user@example.com",
		},
		"roles":    []any{"demo"},
		"language": m.language,
	}, nil
}

func (m *MockClient) Login(_ context.Context, credentials map[string]any) (map[string]any, error) {
	username, _ := credentials["username"].(string)
	if username == "" {
		username = "demo"
	}
	m.mu.Lock()
	m.token = "mock-token-" + username
	token := m.token
	m.mu.Unlock()
	return map[string]any{
		"token":      token,
		"expires_in": 3600,
		"user":       map[string]any{"username": username, "roles": []any{"demo"}},
	}, nil
}

// --- CRM ---

func (m *MockClient) SearchClients(_ context.Context, params map[string]string) (map[string]any, error) {
	m.mu.Lock()
	results := make([]map[string]any, len(m.clients))
	copy(results, m.clients)
	m.mu.Unlock()

	var filterDefs []map[string]any
	if raw := params["filters"]; raw != "" {
		_ = json.Unmarshal([]byte(raw), &filterDefs)
	}
	for _, flt := range filterDefs {
		kept := results[:0:0]
		for _, item := range results {
			if mockFilterMatches(item, flt) {
				kept = append(kept, item)
			}
		}
		results = kept
	}

	page, perPage := paginationParams(params)
	total := len(results)
	pages := 1
	if perPage > 0 {
		pages = (total + perPage - 1) / perPage
	}
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := total
	if perPage > 0 && start+perPage < total {
		end = start + perPage
	}
	items := toAnySlice(results[start:end])

	return map[string]any{
		"items":    items,
		"list":     items,
		"total":    total,
		"tot":      total,
		"page":     page,
		"per_page": perPage,
		"pages":    pages,
	}, nil
}

func mockFilterMatches(item map[string]any, flt map[string]any) bool {
	field, _ := flt["field"].(string)
	operator, _ := flt["operator"].(string)
	if operator == "" {
		operator = "like"
	}
	value := fmt.Sprintf("%v", flt["value"])
	needle := strings.ToLower(value)
	if operator == "like" {
		needle = strings.ToLower(strings.Trim(value, "%"))
	}

	switch field {
	case "contacts.email":
		for _, email := range contactValues(item, "email") {
			if operator == "like" && strings.Contains(strings.ToLower(email), needle) {
				return true
			}
			if operator != "like" && strings.ToLower(email) == needle {
				return true
			}
		}
		return false
	case "surname":
		surname, _ := item["surname"].(string)
		if operator == "like" {
			return strings.Contains(strings.ToLower(surname), needle)
		}
		return strings.ToLower(surname) == needle
	case "id":
		target := strings.ToLower(fmt.Sprintf("%v", item["id"]))
		if operator == "like" {
			return strings.Contains(target, needle)
		}
		return target == needle
	}
	return true
}

func contactValues(item map[string]any, key string) []string {
	var out []string
	contacts, _ := item["contacts"].([]any)
	for _, c := range contacts {
		contact, _ := c.(map[string]any)
		values, _ := contact[key].([]any)
		for _, v := range values {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func paginationParams(params map[string]string) (page, perPage int) {
	page, perPage = 1, 20
	if v := params["page"]; v != "" {
		fmt.Sscanf(v, "%d", &page)
	}
	if v := params["per_page"]; v != "" {
		fmt.Sscanf(v, "%d", &perPage)
	}
	if page < 1 {
		page = 1
	}
	return page, perPage
}

func toAnySlice(items []map[string]any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func (m *MockClient) GetClient(_ context.Context, clientID int) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, client := range m.clients {
		if client["id"] == clientID {
			return client, nil
		}
	}
	return nil, fmt.Errorf("mock: client %d not found", clientID)
}

func (m *MockClient) CreateClient(_ context.Context, payload map[string]any) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := make(map[string]any, len(payload)+4)
	for k, v := range payload {
		created[k] = v
	}
	created["id"] = m.nextClientID
	m.nextClientID++

	if _, ok := created["contacts"]; !ok {
		created["contacts"] = []any{}
	}
	if _, ok := created["profiles"]; !ok {
		created["profiles"] = []any{"customer"}
	}
	if _, ok := created["profile_type"]; !ok {
		created["profile_type"] = "private"
	}
	if _, ok := created["language"]; !ok {
		created["language"] = m.language
	}

	m.clients = append(m.clients, created)
	return created, nil
}

func (m *MockClient) UpdateClient(_ context.Context, clientID int, payload map[string]any) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, client := range m.clients {
		if client["id"] != clientID {
			continue
		}
		updated := make(map[string]any, len(client)+len(payload))
		for k, v := range client {
			updated[k] = v
		}
		for k, v := range payload {
			updated[k] = v
		}
		m.clients[i] = updated
		return updated, nil
	}
	return nil, fmt.Errorf("mock: client %d not found", clientID)
}

func (m *MockClient) ListCategories(_ context.Context, page, perPage int) (map[string]any, error) {
	return mockPagedList(m.categories, page, perPage), nil
}

func (m *MockClient) ListDestinations(_ context.Context, page, perPage int) (map[string]any, error) {
	return mockPagedList(m.destinations, page, perPage), nil
}

func mockPagedList(all []map[string]any, page, perPage int) map[string]any {
	total := len(all)
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := total
	if perPage > 0 && start+perPage < total {
		end = start + perPage
	}
	items := toAnySlice(all[start:end])
	pages := 1
	if perPage > 0 {
		pages = (total + perPage - 1) / perPage
	}
	return map[string]any{
		"items":    items,
		"list":     items,
		"total":    total,
		"tot":      total,
		"page":     page,
		"per_page": perPage,
		"pages":    pages,
	}
}

// --- Booking ---

func (m *MockClient) BookingSearch(_ context.Context, payload map[string]any) (map[string]any, error) {
	searchID := mockID("search")
	serviceType, _ := payload["type"].(string)
	if serviceType == "" {
		serviceType = "hotels"
	}

	groups := []any{
		map[string]any{
			"group":     0,
			"type":      "pick",
			"pick_type": "one",
			"items": []any{
				map[string]any{
					"idx":      0,
					"title":    fmt.Sprintf("Mock Resort (%s)", serviceType),
					"price":    420.0,
					"currency": "EUR",
					"supplier": "Mock Supplier",
					"board":    "BB",
					"dates": []any{
						map[string]any{"idx": 0, "from": payload["from"], "to": payload["to"]},
					},
				},
			},
		},
	}
	response := map[string]any{
		"search_id": searchID,
		"final":     false,
		"step":      0,
		"groups":    groups,
	}

	m.mu.Lock()
	m.searchResults[searchID] = response
	m.mu.Unlock()
	return response, nil
}

func (m *MockClient) BookingResults(_ context.Context, payload map[string]any) (map[string]any, error) {
	searchID, _ := payload["search_id"].(string)
	m.mu.Lock()
	defer m.mu.Unlock()
	if response, ok := m.searchResults[searchID]; ok {
		return response, nil
	}
	return map[string]any{"search_id": searchID, "groups": []any{}}, nil
}

func (m *MockClient) BookingPicks(_ context.Context, payload map[string]any) (map[string]any, error) {
	searchID, _ := payload["search_id"].(string)
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.searchResults[searchID]
	if !ok {
		return map[string]any{"search_id": searchID, "groups": []any{}, "final": true}, nil
	}

	response := make(map[string]any, len(stored)+1)
	for k, v := range stored {
		response[k] = v
	}
	step := 0
	switch v := payload["step"].(type) {
	case int:
		step = v
	case float64:
		step = int(v)
	}
	response["final"] = true
	response["step"] = step + 1
	return response, nil
}

func (m *MockClient) CartAdd(_ context.Context, payload map[string]any) (map[string]any, error) {
	searchID, _ := payload["search_id"].(string)
	cartID := mockID("cart")

	m.mu.Lock()
	defer m.mu.Unlock()
	search := m.searchResults[searchID]
	cart := map[string]any{
		"id":       cartID,
		"searches": []any{search},
		"pax": []any{
			map[string]any{"id": 1, "name": "John", "surname": "Doe"},
			map[string]any{"id": 2, "name": "Jane", "surname": "Doe"},
		},
	}
	m.carts[cartID] = cart
	return cart, nil
}

func (m *MockClient) CartGet(_ context.Context, cartID string) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cart, ok := m.carts[cartID]; ok {
		return cart, nil
	}
	return map[string]any{"id": cartID, "searches": []any{}, "pax": []any{}}, nil
}

func (m *MockClient) CartRemove(_ context.Context, payload map[string]any) (map[string]any, error) {
	return map[string]any{"status": "removed", "search_id": payload["search_id"]}, nil
}

func (m *MockClient) PlaceReservation(_ context.Context, cartID string, payload map[string]any) (map[string]any, error) {
	reservationID := 1000 + rand.Intn(9000)
	reservation := map[string]any{
		"id":           reservationID,
		"cart_id":      cartID,
		"status":       payload["status"],
		"pax":          payload["pax"],
		"reference":    payload["reference"],
		"description":  payload["description"],
		"payment_link": fmt.Sprintf("https://payments.example.com/%d", reservationID),
	}
	if due, ok := payload["due"]; ok {
		reservation["due"] = due
	}

	m.mu.Lock()
	m.reservations[reservationID] = reservation
	m.mu.Unlock()
	return reservation, nil
}

func (m *MockClient) SendQuote(_ context.Context, reservationID int, payload map[string]any) (map[string]any, error) {
	archived := false
	if v, ok := payload["archive"].(bool); ok {
		archived = v
	}
	sent := false
	if v, ok := payload["send"].(bool); ok {
		sent = v
	}
	return map[string]any{
		"reservation_id": reservationID,
		"template":       payload["template"],
		"archived":       archived,
		"email_sent":     sent,
		"pdf_url":        fmt.Sprintf("https://cdn.example.com/quotes/%d.pdf", reservationID),
	}, nil
}
