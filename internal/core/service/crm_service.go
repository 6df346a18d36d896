package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/tripdesk/travio-gateway/internal/core/ports"
)

// CRMService proxies the upstream master-data repository. It only transforms
// field names and filters on the way in and out; the upstream record shape
// is passed through untouched.
type CRMService struct {
	upstream ports.Upstream
	recorder ports.ActivityRecorder
	language string
	log      zerolog.Logger
}

var _ ports.CRMService = (*CRMService)(nil)

func NewCRMService(upstream ports.Upstream, recorder ports.ActivityRecorder, language string, log zerolog.Logger) *CRMService {
	return &CRMService{upstream: upstream, recorder: recorder, language: language, log: log}
}

// Search translates the flat filter map into upstream filter expressions,
// forwards the query, and applies the phone post-filter when requested.
func (s *CRMService) Search(ctx context.Context, in ports.CRMSearchInput) (map[string]any, error) {
	params, phoneFilter := buildSearchParams(in)
	recorded := paramsPayload(params)

	response, err := s.upstream.SearchClients(ctx, params)
	if err != nil {
		recordFailure(s.recorder, "crm.search", "GET", "/rest/master-data", recorded, err)
		return nil, err
	}

	// Some upstream responses carry the page under "list" instead of "items".
	if _, ok := response["items"]; !ok {
		if list, ok := response["list"].([]any); ok {
			response["items"] = list
		}
	}

	if phoneFilter != "" {
		response = applyPhoneFilter(response, phoneFilter)
	}

	recordSuccess(s.recorder, "crm.search", "GET", "/rest/master-data", recorded, response)
	return response, nil
}

func (s *CRMService) Get(ctx context.Context, clientID int) (map[string]any, error) {
	endpoint := "/rest/master-data/" + strconv.Itoa(clientID)

	response, err := s.upstream.GetClient(ctx, clientID)
	if err != nil {
		recordFailure(s.recorder, "crm.detail", "GET", endpoint, nil, err)
		return nil, err
	}

	recordSuccess(s.recorder, "crm.detail", "GET", endpoint, nil, response)
	return response, nil
}

// Create normalizes the payload with creation defaults applied. The
// activity log keeps the caller's original payload, not the normalized one.
func (s *CRMService) Create(ctx context.Context, data map[string]any) (map[string]any, error) {
	normalized := normalizeClientPayload(data, true, s.language)

	response, err := s.upstream.CreateClient(ctx, normalized)
	if err != nil {
		recordFailure(s.recorder, "crm.create", "POST", "/rest/master-data", data, err)
		return nil, err
	}

	recordSuccess(s.recorder, "crm.create", "POST", "/rest/master-data", data, response)
	return response, nil
}

func (s *CRMService) Update(ctx context.Context, clientID int, data map[string]any) (map[string]any, error) {
	endpoint := "/rest/master-data/" + strconv.Itoa(clientID)
	normalized := normalizeClientPayload(data, false, s.language)

	response, err := s.upstream.UpdateClient(ctx, clientID, normalized)
	if err != nil {
		recordFailure(s.recorder, "crm.update", "PUT", endpoint, data, err)
		return nil, err
	}

	recordSuccess(s.recorder, "crm.update", "PUT", endpoint, data, response)
	return response, nil
}

func (s *CRMService) Categories(ctx context.Context, page, perPage int) (map[string]any, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 200
	}
	payload := map[string]any{"page": page, "per_page": perPage}

	response, err := s.upstream.ListCategories(ctx, page, perPage)
	if err != nil {
		recordFailure(s.recorder, "crm.categories", "GET", "/rest/master-data-categories", payload, err)
		return nil, err
	}

	recordSuccess(s.recorder, "crm.categories", "GET", "/rest/master-data-categories", payload, response)
	return response, nil
}

func paramsPayload(params map[string]string) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}
