package catalog

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultArxivBaseURL = "http://export.arxiv.org/api/query"

// ArxivClient fetches paper metadata from the arXiv Atom API.
type ArxivClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewArxivClient creates an arXiv catalog client.
// baseURL defaults to the public export API if empty.
func NewArxivClient(baseURL string) *ArxivClient {
	if baseURL == "" {
		baseURL = defaultArxivBaseURL
	}
	return &ArxivClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string       `xml:"id"`
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Published string       `xml:"published"`
	Authors   []atomAuthor `xml:"author"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

// Search queries arXiv for up to maxResults papers matching query,
// sorted by arXiv's own relevance ranking.
func (c *ArxivClient) Search(ctx context.Context, query string, maxResults int) ([]Paper, error) {
	params := url.Values{}
	params.Set("search_query", "all:"+query)
	params.Set("start", "0")
	params.Set("max_results", fmt.Sprintf("%d", maxResults))
	params.Set("sortBy", "relevance")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create arxiv request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: arxiv returned status %d: %s", ErrFetch, resp.StatusCode, string(body))
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("%w: decode arxiv feed: %v", ErrFetch, err)
	}

	papers := make([]Paper, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		authors := make([]string, 0, len(e.Authors))
		for _, a := range e.Authors {
			authors = append(authors, a.Name)
		}
		papers = append(papers, Paper{
			ID:        entryID(e.ID),
			Title:     e.Title,
			Abstract:  e.Summary,
			URL:       e.ID,
			Authors:   authors,
			Published: strings.TrimSpace(e.Published),
		})
	}

	return papers, nil
}

// entryID extracts the trailing path segment of an Atom entry id,
// e.g. "http://arxiv.org/abs/2101.00001v1" -> "2101.00001v1".
func entryID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parts := strings.Split(raw, "/")
	return parts[len(parts)-1]
}
