package reactor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// tavilyBaseURL is the Tavily REST endpoint. Overridable for tests.
const tavilyBaseURL = "https://api.tavily.com"

// TavilyClient is a minimal client for the Tavily search API, backing the
// search_internet and get_url_content tools.
type TavilyClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// TavilyOption configures a TavilyClient.
type TavilyOption func(*TavilyClient)

// WithTavilyHTTPClient sets the HTTP client (and with it, the timeout).
func WithTavilyHTTPClient(c *http.Client) TavilyOption {
	return func(t *TavilyClient) { t.httpClient = c }
}

// WithTavilyBaseURL overrides the API endpoint.
func WithTavilyBaseURL(url string) TavilyOption {
	return func(t *TavilyClient) { t.baseURL = url }
}

// NewTavilyClient creates a client. An empty apiKey falls back to the
// TAVILY_API_KEY environment variable.
func NewTavilyClient(apiKey string, opts ...TavilyOption) *TavilyClient {
	if apiKey == "" {
		apiKey = os.Getenv("TAVILY_API_KEY")
	}
	t := &TavilyClient{
		apiKey:     apiKey,
		baseURL:    tavilyBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type tavilySearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

type tavilySearchResponse struct {
	Answer  string               `json:"answer"`
	Results []tavilySearchResult `json:"results"`
}

type tavilyExtractResponse struct {
	Results []struct {
		URL        string `json:"url"`
		RawContent string `json:"raw_content"`
	} `json:"results"`
}

// Search queries the internet and returns a formatted result list.
func (t *TavilyClient) Search(ctx context.Context, query string) (string, error) {
	var resp tavilySearchResponse
	err := t.post(ctx, "/search", map[string]any{
		"api_key":     t.apiKey,
		"query":       query,
		"max_results": 5,
	}, &resp)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if resp.Answer != "" {
		sb.WriteString(resp.Answer)
		sb.WriteString("\n\n")
	}
	for i, r := range resp.Results {
		fmt.Fprintf(&sb, "%d. %s\n%s\n%s\n\n", i+1, r.Title, r.URL, r.Content)
	}
	if sb.Len() == 0 {
		return "no results", nil
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// Extract fetches the readable content of a URL through Tavily.
func (t *TavilyClient) Extract(ctx context.Context, url string) (string, error) {
	var resp tavilyExtractResponse
	err := t.post(ctx, "/extract", map[string]any{
		"api_key": t.apiKey,
		"urls":    url,
	}, &resp)
	if err != nil {
		return "", err
	}
	if len(resp.Results) == 0 {
		return "", fmt.Errorf("no content extracted from %s", url)
	}
	return resp.Results[0].RawContent, nil
}

func (t *TavilyClient) post(ctx context.Context, path string, payload map[string]any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("tavily %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// RegisterWebSearchTools registers search_internet and get_url_content
// backed by the given Tavily client.
func RegisterWebSearchTools(reg *Registry, client *TavilyClient) error {
	if err := reg.Register(ToolDefinition{
		Name:        "search_internet",
		Description: "Search the internet for information",
		Params: []ToolParam{
			{Name: "query", Type: "string", Required: true, Description: "The query to search the internet for"},
		},
		Handler: func(args map[string]any) (any, error) {
			query, _ := args["query"].(string)
			return client.Search(context.Background(), query)
		},
	}); err != nil {
		return err
	}

	return reg.Register(ToolDefinition{
		Name:        "get_url_content",
		Description: "Get the content of a URL",
		Params: []ToolParam{
			{Name: "url", Type: "string", Required: true, Description: "The URL to get the content of"},
		},
		Handler: func(args map[string]any) (any, error) {
			url, _ := args["url"].(string)
			return client.Extract(context.Background(), url)
		},
	})
}

// RegisterFetchWebpage registers fetch_webpage, which downloads a page
// directly and strips it to readable text. Pass nil to use a default client
// with a 30 second timeout.
func RegisterFetchWebpage(reg *Registry, httpClient *http.Client) error {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return reg.Register(ToolDefinition{
		Name:        "fetch_webpage",
		Description: "Fetch a web page and return its text content",
		Params: []ToolParam{
			{Name: "url", Type: "string", Required: true, Description: "The URL of the page to fetch"},
		},
		Handler: func(args map[string]any) (any, error) {
			url, _ := args["url"].(string)
			return fetchPageText(httpClient, url)
		},
	})
}

func fetchPageText(client *http.Client, url string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "reactor/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}

	return extractText(resp.Body)
}

// extractText parses HTML and returns visible text, skipping script and
// style elements and collapsing blank lines.
func extractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				sb.WriteString(text)
				sb.WriteString("\n")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimRight(sb.String(), "\n"), nil
}
