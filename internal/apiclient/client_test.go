package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loyaltyadmin/internal/listquery"
)

type investor struct {
	ID       int64   `json:"id"`
	FullName string  `json:"fullName"`
	Invested float64 `json:"investedAmount"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL})
}

func investorSource(c *Client) *ListSource[investor] {
	return NewListSource[investor](c, "investors", "investors", "totalInvestors", "fullName")
}

func TestFetchPageRequestShape(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"investors":           []investor{{ID: 1, FullName: "Ahmed"}},
			"totalInvestors":      97,
			"totalPages":          1,
			"totalInvestedAmount": 125000.5,
		})
	})

	res, err := investorSource(c).FetchPage(context.Background(), listquery.Query{
		Page: 1, PageSize: 100,
		SortField: "fullName", SortDirection: listquery.Desc,
		SearchTerm: "ahmed",
		Filters:    map[string]string{"currency": "SAR"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/investors/1", gotPath)
	assert.Equal(t, "100", gotQuery["limit"][0])
	assert.Equal(t, "fullName", gotQuery["sortBy"][0])
	assert.Equal(t, "desc", gotQuery["sortOrder"][0])
	assert.Equal(t, "ahmed", gotQuery["fullName"][0])
	assert.Equal(t, "SAR", gotQuery["currency"][0])

	assert.Equal(t, 97, res.TotalCount)
	assert.Equal(t, 1, res.TotalPages)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Ahmed", res.Items[0].FullName)
	assert.Equal(t, 125000.5, res.Aggregates["totalInvestedAmount"])
}

func TestFetchPageOmitsEmptySearchAndFilters(t *testing.T) {
	var gotQuery map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{"investors": []investor{}, "totalInvestors": 0, "totalPages": 0})
	})

	_, err := investorSource(c).FetchPage(context.Background(), listquery.Query{
		Page: 1, PageSize: 25,
		SortField: "id", SortDirection: listquery.Asc,
		Filters: map[string]string{"currency": ""},
	})
	require.NoError(t, err)

	_, hasSearch := gotQuery["fullName"]
	assert.False(t, hasSearch, "empty search term means no filter, not a literal empty match")
	_, hasCurrency := gotQuery["currency"]
	assert.False(t, hasCurrency)
}

func TestDeleteManySendsSingleBatchedRequest(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string][]int64
	requests := 0

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, investorSource(c).DeleteMany(context.Background(), []int64{4, 7, 9}))

	assert.Equal(t, 1, requests)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/investors", gotPath)
	assert.Equal(t, []int64{4, 7, 9}, gotBody["ids"])
}

func TestServerErrorMessageSurfaced(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "fullName is required"})
	})

	err := investorSource(c).Create(context.Background(), investor{})
	require.Error(t, err)
	assert.Equal(t, "fullName is required", err.Error())
	assert.True(t, IsValidation(err))
}

func TestServerSideFailureKeepsStatusAndMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "database query failed"})
	})

	err := investorSource(c).DeleteOne(context.Background(), 4)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "database query failed", apiErr.Message)
	assert.False(t, IsValidation(err))
}

func TestServerErrorWithoutBodyGetsGenericMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := investorSource(c).DeleteOne(context.Background(), 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.False(t, IsValidation(err))
}

func TestCreateAndUpdateVerbs(t *testing.T) {
	type call struct{ method, path string }
	var calls []call

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		w.WriteHeader(http.StatusOK)
	})

	src := investorSource(c)
	require.NoError(t, src.Create(context.Background(), investor{FullName: "Ahmed"}))
	require.NoError(t, src.Update(context.Background(), 12, investor{ID: 12, FullName: "Ahmed"}))

	require.Len(t, calls, 2)
	assert.Equal(t, call{http.MethodPost, "/api/investors"}, calls[0])
	assert.Equal(t, call{http.MethodPatch, "/api/investors/12"}, calls[1])
}

func TestImportUploadsMultipart(t *testing.T) {
	var gotContentType, gotFile string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		raw, _ := io.ReadAll(file)
		gotFile = header.Filename + ":" + string(raw)
		_ = json.NewEncoder(w).Encode(map[string]int{"importedCount": 3})
	})

	n, err := investorSource(c).Import(context.Background(), "investors.csv", strings.NewReader("a,b,c"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Contains(t, gotContentType, "multipart/form-data")
	assert.Equal(t, "investors.csv:a,b,c", gotFile)
}

func TestDecideReward(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.DecideReward(context.Background(), 5, true))
	require.NoError(t, c.DecideReward(context.Background(), 6, false))

	assert.Equal(t, []string{
		"PATCH /api/rewards/5/approve",
		"PATCH /api/rewards/6/reject",
	}, paths)
}
