package page

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func rawFrom(t *testing.T, body string) Raw {
	t.Helper()
	var raw Raw
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return raw
}

func TestNormalizeDefaultsEverythingWhenEmpty(t *testing.T) {
	fallback := Query{Page: 4, PageSize: 10}

	result := Normalize[doc](Raw{}, fallback)

	assert.Empty(t, result.Items)
	assert.NotNil(t, result.Items)
	assert.Equal(t, 0, result.TotalItems)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 4, result.Page)
}

func TestNormalizeIgnoresMistypedFields(t *testing.T) {
	raw := rawFrom(t, `{"docs":{"not":"an array"},"totalDocs":"abc","totalPages":null,"page":"x"}`)

	result := Normalize[doc](raw, Query{Page: 2, PageSize: 10})

	assert.Empty(t, result.Items)
	assert.Equal(t, 0, result.TotalItems)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 2, result.Page)
}

func TestNormalizeComputesTotalPagesWhenOmitted(t *testing.T) {
	raw := rawFrom(t, `{"docs":[{"id":"1"},{"id":"2"},{"id":"3"}],"totalDocs":25,"page":1,"limit":10}`)

	result := Normalize[doc](raw, Query{Page: 1, PageSize: 10})

	assert.Len(t, result.Items, 3)
	assert.Equal(t, 25, result.TotalItems)
	assert.Equal(t, 3, result.TotalPages)
	assert.False(t, result.HasPrev)
	assert.True(t, result.HasNext)
}

func TestNormalizeAdoptsServerPage(t *testing.T) {
	raw := rawFrom(t, `{"docs":[],"totalDocs":30,"totalPages":3,"page":3,"limit":10}`)

	result := Normalize[doc](raw, Query{Page: 99, PageSize: 10})

	assert.Equal(t, 3, result.Page)
	assert.True(t, result.HasPrev)
	assert.False(t, result.HasNext)
}

func TestNormalizePrevNextInvariant(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		hasPrev bool
		hasNext bool
	}{
		{"first of many", `{"totalDocs":50,"totalPages":5,"page":1}`, false, true},
		{"middle", `{"totalDocs":50,"totalPages":5,"page":3}`, true, true},
		{"last", `{"totalDocs":50,"totalPages":5,"page":5}`, true, false},
		{"single page", `{"totalDocs":3,"totalPages":1,"page":1}`, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Normalize[doc](rawFrom(t, tc.body), Query{Page: 1, PageSize: 10})
			assert.Equal(t, tc.hasPrev, result.HasPrev)
			assert.Equal(t, tc.hasNext, result.HasNext)
			assert.Equal(t, result.HasPrev, result.Page > 1)
			assert.Equal(t, result.HasNext, result.Page < result.TotalPages)
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	raw := rawFrom(t, `{"docs":[{"id":"1","name":"a"}],"totalDocs":1,"totalPages":1,"page":1,"limit":10}`)
	fallback := Query{Page: 1, PageSize: 10}

	first := Normalize[doc](raw, fallback)

	// Render the normalized result back into the wire shape and normalize again.
	body, err := json.Marshal(map[string]interface{}{
		"docs":       first.Items,
		"totalDocs":  first.TotalItems,
		"totalPages": first.TotalPages,
		"page":       first.Page,
		"limit":      fallback.PageSize,
	})
	require.NoError(t, err)

	second := Normalize[doc](rawFrom(t, string(body)), fallback)
	assert.Equal(t, first, second)
}

func TestQueryNormalized(t *testing.T) {
	q := Query{Page: 0, PageSize: -1}.Normalized()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, defaultPageSize, q.PageSize)
}

func TestEmptyResultIsNavigable(t *testing.T) {
	result := Empty[doc]()
	assert.NotNil(t, result.Items)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 1, result.TotalPages)
	assert.False(t, result.HasPrev)
	assert.False(t, result.HasNext)
}
