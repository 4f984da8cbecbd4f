package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DuckDuckGoSearch scrapes the DuckDuckGo HTML endpoint. It needs no API
// key, which makes it a usable fallback when no Tavily key is configured.
type DuckDuckGoSearch struct {
	BaseURL string
	Client  *http.Client
}

var _ Searcher = (*DuckDuckGoSearch)(nil)

// DuckDuckGoOption configures a DuckDuckGoSearch.
type DuckDuckGoOption func(*DuckDuckGoSearch)

// WithDuckDuckGoBaseURL overrides the endpoint, mainly for tests.
func WithDuckDuckGoBaseURL(baseURL string) DuckDuckGoOption {
	return func(d *DuckDuckGoSearch) {
		d.BaseURL = baseURL
	}
}

// WithDuckDuckGoHTTPClient overrides the HTTP client.
func WithDuckDuckGoHTTPClient(client *http.Client) DuckDuckGoOption {
	return func(d *DuckDuckGoSearch) {
		d.Client = client
	}
}

// NewDuckDuckGoSearch creates a DuckDuckGo scraper.
func NewDuckDuckGoSearch(opts ...DuckDuckGoOption) *DuckDuckGoSearch {
	d := &DuckDuckGoSearch{
		BaseURL: "https://html.duckduckgo.com/html/",
		Client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Search fetches and parses the HTML result page.
func (d *DuckDuckGoSearch) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	endpoint := fmt.Sprintf("%s?q=%s", d.BaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; durag/1.0)")

	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var results []Result
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find("a.result__a")
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		snippet := strings.TrimSpace(sel.Find(".result__snippet").Text())

		if title == "" || href == "" {
			return true
		}
		results = append(results, Result{
			Title:   title,
			URL:     cleanDuckDuckGoURL(href),
			Content: snippet,
		})
		return len(results) < maxResults
	})

	return results, nil
}

// cleanDuckDuckGoURL unwraps the redirect links the HTML endpoint uses
// (//duckduckgo.com/l/?uddg=<escaped target>).
func cleanDuckDuckGoURL(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "" && strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	return href
}
