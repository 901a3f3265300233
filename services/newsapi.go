package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrAPIKeyMissing is returned when no news API key is configured.
var ErrAPIKeyMissing = errors.New("news API key not configured")

// NewsAPIArticle mirrors one entry of the upstream feed payload.
type NewsAPIArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	Author      string    `json:"author"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

type newsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []NewsAPIArticle `json:"articles"`
}

type CountryInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

var supportedCountries = []CountryInfo{
	{Code: "us", Name: "United States", Flag: "🇺🇸"},
	{Code: "gb", Name: "United Kingdom", Flag: "🇬🇧"},
	{Code: "de", Name: "Germany", Flag: "🇩🇪"},
	{Code: "fr", Name: "France", Flag: "🇫🇷"},
	{Code: "jp", Name: "Japan", Flag: "🇯🇵"},
	{Code: "ca", Name: "Canada", Flag: "🇨🇦"},
	{Code: "au", Name: "Australia", Flag: "🇦🇺"},
	{Code: "in", Name: "India", Flag: "🇮🇳"},
	{Code: "br", Name: "Brazil", Flag: "🇧🇷"},
	{Code: "ru", Name: "Russia", Flag: "🇷🇺"},
	{Code: "cn", Name: "China", Flag: "🇨🇳"},
	{Code: "it", Name: "Italy", Flag: "🇮🇹"},
	{Code: "es", Name: "Spain", Flag: "🇪🇸"},
	{Code: "mx", Name: "Mexico", Flag: "🇲🇽"},
	{Code: "kr", Name: "South Korea", Flag: "🇰🇷"},
}

var supportedCategories = []string{
	"general",
	"business",
	"technology",
	"health",
	"science",
	"sports",
	"entertainment",
}

var languageByCountry = map[string]string{
	"us": "en", "gb": "en", "ca": "en", "au": "en", "in": "en",
	"de": "de", "fr": "fr", "jp": "jp", "br": "pt", "ru": "ru",
	"cn": "zh", "it": "it", "es": "es", "mx": "es", "kr": "ko",
}

// Countries returns the country catalog the feed can be filtered by.
func Countries() []CountryInfo {
	return supportedCountries
}

// Categories returns the category catalog the feed can be filtered by.
func Categories() []string {
	return supportedCategories
}

func CountryName(code string) string {
	for _, c := range supportedCountries {
		if c.Code == code {
			return c.Name
		}
	}
	return code
}

func isSupportedCategory(category string) bool {
	for _, c := range supportedCategories {
		if c == category {
			return true
		}
	}
	return false
}

// NewsAPIClient talks to the external top-headlines/search feed.
type NewsAPIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewNewsAPIClient(apiKey, baseURL string) *NewsAPIClient {
	if baseURL == "" {
		baseURL = "https://newsapi.org/v2"
	}
	return &NewsAPIClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchTopHeadlines pulls headlines for an optional country/category
// pair. Entries missing title, url or publishedAt are dropped, as are
// upstream tombstones titled "[Removed]".
func (n *NewsAPIClient) FetchTopHeadlines(ctx context.Context, country, category string, pageSize int) ([]NewsAPIArticle, error) {
	if n.apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	params := url.Values{}
	params.Set("apiKey", n.apiKey)
	params.Set("pageSize", strconv.Itoa(pageSize))
	if country != "" {
		params.Set("country", country)
	}
	if category != "" && isSupportedCategory(category) {
		params.Set("category", category)
	}

	return n.fetch(ctx, n.baseURL+"/top-headlines?"+params.Encode())
}

// SearchNews runs a full-text query against the feed's search endpoint.
// A country narrows the search to that country's language.
func (n *NewsAPIClient) SearchNews(ctx context.Context, query, country string) ([]NewsAPIArticle, error) {
	if n.apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	params := url.Values{}
	params.Set("apiKey", n.apiKey)
	params.Set("q", query)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", "20")
	if country != "" {
		if lang, ok := languageByCountry[country]; ok {
			params.Set("language", lang)
		} else {
			params.Set("language", "en")
		}
	}

	return n.fetch(ctx, n.baseURL+"/everything?"+params.Encode())
}

func (n *NewsAPIClient) fetch(ctx context.Context, requestURL string) ([]NewsAPIArticle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news feed request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("news feed read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news feed request failed: %s", resp.Status)
	}

	var payload newsAPIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("news feed decode: %w", err)
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("news feed returned status %q", payload.Status)
	}

	articles := make([]NewsAPIArticle, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		if a.Title == "" || a.URL == "" || a.PublishedAt.IsZero() || a.Title == "[Removed]" {
			continue
		}
		articles = append(articles, a)
	}
	return articles, nil
}
