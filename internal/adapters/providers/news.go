package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/ringside/internal/domain/types"
)

const (
	defaultNewsBaseURL = "https://newsapi.org/v2/everything"
	defaultNewsDays    = 7
	defaultNewsLimit   = 10
)

// NewsOption applies a configuration option to the news provider.
type NewsOption func(*NewsProvider)

// WithNewsBaseURL overrides the upstream endpoint. Used by tests.
func WithNewsBaseURL(u string) NewsOption {
	return func(p *NewsProvider) {
		if u != "" {
			p.baseURL = u
		}
	}
}

// WithNewsClient overrides the HTTP client.
func WithNewsClient(c *http.Client) NewsOption {
	return func(p *NewsProvider) {
		if c != nil {
			p.client = c
		}
	}
}

// WithNewsWindow sets how many days back to search and how many articles
// to return.
func WithNewsWindow(days, limit int) NewsOption {
	return func(p *NewsProvider) {
		if days > 0 {
			p.days = days
		}
		if limit > 0 {
			p.limit = limit
		}
	}
}

// NewsProvider serves recent coverage from NewsAPI.
type NewsProvider struct {
	apiKey  string
	baseURL string
	days    int
	limit   int
	client  *http.Client
}

// NewNewsProvider builds the provider. An empty API key is allowed; the
// provider then reports unavailable on every fetch.
func NewNewsProvider(apiKey string, opts ...NewsOption) *NewsProvider {
	p := &NewsProvider{
		apiKey:  apiKey,
		baseURL: defaultNewsBaseURL,
		days:    defaultNewsDays,
		limit:   defaultNewsLimit,
		client:  defaultClient(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *NewsProvider) Name() types.Capability { return types.CapabilityNews }

// Article is one news item.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Source      string    `json:"source"`
	Author      string    `json:"author,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	URL         string    `json:"url"`
}

// NewsDigest is the set of articles matching a query.
type NewsDigest struct {
	Query    string    `json:"query"`
	Days     int       `json:"days"`
	Articles []Article `json:"articles"`
}

type newsResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Author      string `json:"author"`
		PublishedAt string `json:"publishedAt"`
		URL         string `json:"url"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Fetch returns recent boxing coverage, scoped to a fighter when one is
// present in the request.
func (p *NewsProvider) Fetch(ctx context.Context, req Request) (any, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: news API key not configured", ErrSourceUnavailable)
	}

	query := "boxing"
	if len(req.Fighters) > 0 {
		query = req.Fighters[0] + " boxing"
	}
	from := time.Now().UTC().AddDate(0, 0, -p.days).Format("2006-01-02")

	q := url.Values{}
	q.Set("q", query)
	q.Set("from", from)
	q.Set("sortBy", "publishedAt")
	q.Set("language", "en")
	q.Set("pageSize", strconv.Itoa(p.limit))
	q.Set("apiKey", p.apiKey)

	var resp newsResponse
	if err := getJSON(ctx, p.client, p.baseURL+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	digest := NewsDigest{Query: query, Days: p.days}
	for _, a := range resp.Articles {
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		digest.Articles = append(digest.Articles, Article{
			Title:       a.Title,
			Description: a.Description,
			Source:      a.Source.Name,
			Author:      a.Author,
			PublishedAt: published,
			URL:         a.URL,
		})
	}
	if len(digest.Articles) == 0 {
		return nil, fmt.Errorf("%w: no articles for %q", ErrNoData, query)
	}
	return digest, nil
}
