package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"loyaltyadmin/internal/listquery"
)

// ListSource binds one entity's REST endpoints to the controller contracts.
// It implements both listquery.Source and listquery.MutationSource.
type ListSource[T any] struct {
	client *Client

	// entity is the path segment, e.g. "investors".
	entity string
	// itemsKey and totalKey name the envelope fields, e.g. "investors"
	// and "totalInvestors".
	itemsKey string
	totalKey string
	// searchField is the query parameter the free-text term binds to.
	searchField string
}

func NewListSource[T any](client *Client, entity, itemsKey, totalKey, searchField string) *ListSource[T] {
	return &ListSource[T]{
		client:      client,
		entity:      entity,
		itemsKey:    itemsKey,
		totalKey:    totalKey,
		searchField: searchField,
	}
}

// FetchPage issues GET /api/{entity}/{page}?limit&sortBy&sortOrder&... and
// unpacks the per-entity envelope: items under itemsKey, the filtered total
// under totalKey, totalPages, and every other numeric "total*" field as a
// named aggregate.
func (s *ListSource[T]) FetchPage(ctx context.Context, q listquery.Query) (listquery.Result[T], error) {
	var out listquery.Result[T]

	params := url.Values{}
	params.Set("limit", fmt.Sprint(q.PageSize))
	if q.SortField != "" {
		params.Set("sortBy", q.SortField)
		params.Set("sortOrder", string(q.SortDirection))
	}
	if q.SearchTerm != "" && s.searchField != "" {
		params.Set(s.searchField, q.SearchTerm)
	}
	for name, value := range q.Filters {
		if value != "" {
			params.Set(name, value)
		}
	}

	path := fmt.Sprintf("/api/%s/%d?%s", s.entity, q.Page, params.Encode())

	var envelope map[string]json.RawMessage
	if err := s.client.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return out, err
	}

	if raw, ok := envelope[s.itemsKey]; ok {
		if err := json.Unmarshal(raw, &out.Items); err != nil {
			return out, fmt.Errorf("decode %s: %w", s.itemsKey, err)
		}
	}
	if raw, ok := envelope[s.totalKey]; ok {
		if err := json.Unmarshal(raw, &out.TotalCount); err != nil {
			return out, fmt.Errorf("decode %s: %w", s.totalKey, err)
		}
	}
	if raw, ok := envelope["totalPages"]; ok {
		_ = json.Unmarshal(raw, &out.TotalPages)
	}

	for key, raw := range envelope {
		if key == s.totalKey || key == "totalPages" || !strings.HasPrefix(key, "total") {
			continue
		}
		var n float64
		if json.Unmarshal(raw, &n) == nil {
			if out.Aggregates == nil {
				out.Aggregates = map[string]float64{}
			}
			out.Aggregates[key] = n
		}
	}
	return out, nil
}

func (s *ListSource[T]) Create(ctx context.Context, rec any) error {
	return s.client.do(ctx, http.MethodPost, "/api/"+s.entity, rec, nil)
}

func (s *ListSource[T]) Update(ctx context.Context, id int64, rec any) error {
	return s.client.do(ctx, http.MethodPatch, fmt.Sprintf("/api/%s/%d", s.entity, id), rec, nil)
}

func (s *ListSource[T]) DeleteOne(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/api/%s/%d", s.entity, id), nil, nil)
}

// DeleteMany issues one batched request carrying the whole id set.
func (s *ListSource[T]) DeleteMany(ctx context.Context, ids []int64) error {
	body := map[string][]int64{"ids": ids}
	return s.client.do(ctx, http.MethodDelete, "/api/"+s.entity, body, nil)
}

// Import uploads a CSV for the entity's bulk-import endpoint and returns
// the number of imported rows.
func (s *ListSource[T]) Import(ctx context.Context, filename string, file io.Reader) (int, error) {
	var resp struct {
		ImportedCount int `json:"importedCount"`
	}
	err := s.client.doMultipart(ctx, "/api/"+s.entity+"/import", filename, file, &resp)
	return resp.ImportedCount, err
}

// DecideReward resolves a pending reward request.
func (c *Client) DecideReward(ctx context.Context, id int64, approve bool) error {
	action := "reject"
	if approve {
		action = "approve"
	}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/rewards/%d/%s", id, action), nil, nil)
}

// InvoiceReportPDF downloads the invoice summary report.
func (c *Client) InvoiceReportPDF(ctx context.Context) ([]byte, error) {
	return c.download(ctx, "/api/invoices/report")
}
