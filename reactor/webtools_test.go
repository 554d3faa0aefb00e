package reactor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTavily(t *testing.T, handler http.HandlerFunc) *TavilyClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewTavilyClient("test-key", WithTavilyBaseURL(server.URL))
}

func TestTavilySearch(t *testing.T) {
	tavily := newTestTavily(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "test-key", payload["api_key"])
		assert.Equal(t, "go generics", payload["query"])

		json.NewEncoder(w).Encode(map[string]any{
			"answer": "Generics arrived in Go 1.18.",
			"results": []map[string]any{
				{"title": "Go Blog", "url": "https://go.dev/blog", "content": "An introduction."},
			},
		})
	})

	out, err := tavily.Search(t.Context(), "go generics")
	require.NoError(t, err)
	assert.Contains(t, out, "Generics arrived in Go 1.18.")
	assert.Contains(t, out, "1. Go Blog")
	assert.Contains(t, out, "https://go.dev/blog")
}

func TestTavilySearchNoResults(t *testing.T) {
	tavily := newTestTavily(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	})

	out, err := tavily.Search(t.Context(), "nothing")
	require.NoError(t, err)
	assert.Equal(t, "no results", out)
}

func TestTavilyExtract(t *testing.T) {
	tavily := newTestTavily(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/extract", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"url": "https://example.com", "raw_content": "page body"},
			},
		})
	})

	out, err := tavily.Extract(t.Context(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "page body", out)
}

func TestTavilyErrorStatus(t *testing.T) {
	tavily := newTestTavily(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	})

	_, err := tavily.Search(t.Context(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestRegisterWebSearchTools(t *testing.T) {
	tavily := newTestTavily(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"url": "https://example.com", "raw_content": "extracted"},
			},
		})
	})

	reg := NewRegistry(nil)
	require.NoError(t, RegisterWebSearchTools(reg, tavily))
	assert.Equal(t, []string{"search_internet", "get_url_content"}, reg.Names())

	result, err := reg.Execute("get_url_content", map[string]any{"url": "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "extracted", result)

	// query is declared required.
	_, err = reg.Execute("search_internet", map[string]any{})
	var invalid *InvalidArgumentsError
	require.ErrorAs(t, err, &invalid)
}

func TestRegisterFetchWebpage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>T</title><style>body{}</style></head>
<body><script>var x=1;</script><h1>Heading</h1><p>Paragraph text.</p></body></html>`))
	}))
	t.Cleanup(server.Close)

	reg := NewRegistry(nil)
	require.NoError(t, RegisterFetchWebpage(reg, server.Client()))

	result, err := reg.Execute("fetch_webpage", map[string]any{"url": server.URL})
	require.NoError(t, err)

	text := result.(string)
	assert.Contains(t, text, "Heading")
	assert.Contains(t, text, "Paragraph text.")
	assert.NotContains(t, text, "var x=1;")
	assert.NotContains(t, text, "body{}")
}

func TestExtractText(t *testing.T) {
	text, err := extractText(strings.NewReader(
		`<div>  spaced  <span>inline</span></div><script>skip()</script>`))
	require.NoError(t, err)
	assert.Equal(t, "spaced\ninline", text)
}
