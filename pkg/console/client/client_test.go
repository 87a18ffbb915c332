package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventra-live/eventra-admin-api/pkg/console/page"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
)

func TestListQuerySendsPayloadAndToken(t *testing.T) {
	var gotBody map[string]interface{}
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/banner-rates/list", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"data":{"docs":[{"id":"r1"}],"totalDocs":1,"page":1,"limit":10,"totalPages":1}}`))
	}))
	defer server.Close()

	c := New(server.URL, WithToken("tok-123"))
	raw, err := c.ListQuery(context.Background(), "banner-rates", page.Query{
		Search:   "monthly",
		Page:     2,
		PageSize: 10,
		Filters:  map[string]string{"isActive": "true"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, float64(2), gotBody["page"])
	assert.Equal(t, float64(10), gotBody["limit"])
	assert.Equal(t, "monthly", gotBody["search"])
	assert.Equal(t, "true", gotBody["isActive"])

	result := page.Normalize[map[string]string](raw, page.Query{Page: 2, PageSize: 10})
	assert.Len(t, result.Items, 1)
}

func TestListQueryFiltersCannotOverridePaging(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"data":{"docs":[],"totalDocs":0,"page":1,"limit":10,"totalPages":1}}`))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.ListQuery(context.Background(), "events", page.Query{
		Search:   "summit",
		Page:     2,
		PageSize: 10,
		Filters: map[string]string{
			"page":      "999",
			"limit":     "999",
			"search":    "hijacked",
			"eventType": "expo",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, float64(2), gotBody["page"])
	assert.Equal(t, float64(10), gotBody["limit"])
	assert.Equal(t, "summit", gotBody["search"])
	assert.Equal(t, "expo", gotBody["eventType"])
}

func TestListQueryToleratesMalformedPagePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":"not a page"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	raw, err := c.ListQuery(context.Background(), "events", page.Query{Page: 3, PageSize: 10})
	require.NoError(t, err)

	result := page.Normalize[map[string]string](raw, page.Query{Page: 3, PageSize: 10})
	assert.Empty(t, result.Items)
	assert.Equal(t, 3, result.Page)
}

func TestCreateSelectsPostWithoutID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/banner-rates", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"new"}}`))
	}))
	defer server.Close()

	c := New(server.URL)
	data, err := c.CreateOrUpdate(context.Background(), "banner-rates", "", map[string]interface{}{"days": 30, "cost": 500})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"new"}`, string(data))
}

func TestUpdateSelectsPutWithID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/banner-rates/rate-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"id":"rate-1"}}`))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.CreateOrUpdate(context.Background(), "banner-rates", "rate-1", map[string]interface{}{"days": 60})
	require.NoError(t, err)
}

func TestMultipartPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Main Hall", r.FormValue("title"))
		file, header, err := r.FormFile("bannerImage")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "banner.png", header.Filename)
		_, _ = w.Write([]byte(`{"data":{"id":"ev-1"}}`))
	}))
	defer server.Close()

	c := New(server.URL)
	payload := NewMultipart().
		Field("title", "Main Hall").
		File("bannerImage", "banner.png", strings.NewReader("png-bytes"))
	_, err := c.CreateOrUpdate(context.Background(), "events", "", payload)
	require.NoError(t, err)
}

func TestRemoveIssuesDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/regions/reg-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(server.URL)
	require.NoError(t, c.Remove(context.Background(), "regions", "reg-1"))
}

func TestEnvelopeErrorSurfacesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPreconditionFailed)
		_, _ = w.Write([]byte(`{"error":{"code":"IN_USE","message":"in use","status":412}}`))
	}))
	defer server.Close()

	c := New(server.URL)
	err := c.Remove(context.Background(), "banner-rates", "rate-1")
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, "IN_USE", appErr.Code)
	assert.Equal(t, "in use", appErr.Message)
	assert.Equal(t, http.StatusPreconditionFailed, appErr.Status)
}

func TestNonEnvelopeFailureGetsGenericError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	c := New(server.URL)
	err := c.Remove(context.Background(), "events", "ev-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, appErrors.FromError(err).Status)
}

func TestUnreachableServer(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.ListQuery(context.Background(), "events", page.Query{Page: 1, PageSize: 10})
	require.Error(t, err)
	assert.Equal(t, "REQUEST_FAILED", appErrors.FromError(err).Code)
}
