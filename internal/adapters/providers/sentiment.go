package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/okian/ringside/internal/domain/types"
)

const (
	defaultTokenURL    = "https://www.reddit.com/api/v1/access_token"
	defaultSearchURL   = "https://oauth.reddit.com/r/Boxing/search"
	defaultSampleLimit = 100
	sentimentUserAgent = "ringside/1.0"
	maxSampleTitles    = 3
)

// Sentiment lexicon shared with the community mention scoring.
var (
	positiveWords = []string{"great", "amazing", "best", "incredible", "fantastic", "love", "impressive", "dominant", "skilled"}
	negativeWords = []string{"terrible", "worst", "boring", "overrated", "disappointing", "weak", "lost", "bad", "poor"}
)

// SentimentOption applies a configuration option to the sentiment provider.
type SentimentOption func(*SentimentProvider)

// WithSentimentURLs overrides the token and search endpoints. Used by tests.
func WithSentimentURLs(tokenURL, searchURL string) SentimentOption {
	return func(p *SentimentProvider) {
		if tokenURL != "" {
			p.tokenURL = tokenURL
		}
		if searchURL != "" {
			p.searchURL = searchURL
		}
	}
}

// WithSentimentClient overrides the HTTP client.
func WithSentimentClient(c *http.Client) SentimentOption {
	return func(p *SentimentProvider) {
		if c != nil {
			p.client = c
		}
	}
}

// SentimentProvider scores community sentiment from boxing subreddit
// discussion using a fixed keyword lexicon.
type SentimentProvider struct {
	clientID     string
	clientSecret string
	tokenURL     string
	searchURL    string
	client       *http.Client
}

// NewSentimentProvider builds the provider. Missing credentials are
// allowed; the provider then reports unavailable on every fetch.
func NewSentimentProvider(clientID, clientSecret string, opts ...SentimentOption) *SentimentProvider {
	p := &SentimentProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     defaultTokenURL,
		searchURL:    defaultSearchURL,
		client:       defaultClient(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *SentimentProvider) Name() types.Capability { return types.CapabilitySentiment }

// SentimentReport summarizes community discussion on a topic.
type SentimentReport struct {
	Topic          string   `json:"topic"`
	PostsAnalyzed  int      `json:"posts_analyzed"`
	PositivePct    float64  `json:"positive_percentage"`
	NegativePct    float64  `json:"negative_percentage"`
	NeutralPct     float64  `json:"neutral_percentage"`
	Overall        string   `json:"overall_sentiment"`
	Engagement     int      `json:"total_engagement"`
	SamplePositive []string `json:"sample_positive,omitempty"`
	SampleNegative []string `json:"sample_negative,omitempty"`
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title       string `json:"title"`
				Selftext    string `json:"selftext"`
				Score       int    `json:"score"`
				NumComments int    `json:"num_comments"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Fetch searches recent discussion about the first requested fighter and
// classifies every post against the lexicon.
func (p *SentimentProvider) Fetch(ctx context.Context, req Request) (any, error) {
	if p.clientID == "" || p.clientSecret == "" {
		return nil, fmt.Errorf("%w: reddit credentials not configured", ErrSourceUnavailable)
	}
	topic := req.Query
	if len(req.Fighters) > 0 {
		topic = req.Fighters[0]
	}
	if topic == "" {
		return nil, fmt.Errorf("%w: no topic in request", ErrNoData)
	}

	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("q", topic)
	q.Set("t", "month")
	q.Set("limit", fmt.Sprint(defaultSampleLimit))
	q.Set("restrict_sr", "1")

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	header.Set("User-Agent", sentimentUserAgent)

	var listing redditListing
	if err := getJSON(ctx, p.client, p.searchURL+"?"+q.Encode(), header, &listing); err != nil {
		return nil, err
	}
	if len(listing.Data.Children) == 0 {
		return nil, fmt.Errorf("%w: no discussion found for %q", ErrNoData, topic)
	}

	report := SentimentReport{Topic: topic}
	var positive, negative, neutral int
	for _, child := range listing.Data.Children {
		post := child.Data
		report.PostsAnalyzed++
		report.Engagement += post.Score + post.NumComments

		switch scoreText(post.Title + " " + post.Selftext) {
		case 1:
			positive++
			if len(report.SamplePositive) < maxSampleTitles {
				report.SamplePositive = append(report.SamplePositive, post.Title)
			}
		case -1:
			negative++
			if len(report.SampleNegative) < maxSampleTitles {
				report.SampleNegative = append(report.SampleNegative, post.Title)
			}
		default:
			neutral++
		}
	}

	n := float64(report.PostsAnalyzed)
	report.PositivePct = float64(positive) / n * 100
	report.NegativePct = float64(negative) / n * 100
	report.NeutralPct = float64(neutral) / n * 100
	report.Overall = overallSentiment(report.PositivePct, report.NegativePct)
	return report, nil
}

func (p *SentimentProvider) accessToken(ctx context.Context) (string, error) {
	body := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	req.SetBasicAuth(p.clientID, p.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", sentimentUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("%w: decode token: %v", ErrSourceUnavailable, err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrSourceUnavailable)
	}
	return token.AccessToken, nil
}

// scoreText returns 1 for positive, -1 for negative, 0 for neutral or tied.
func scoreText(text string) int {
	text = strings.ToLower(text)
	var pos, neg int
	for _, w := range positiveWords {
		if strings.Contains(text, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(text, w) {
			neg++
		}
	}
	switch {
	case pos > neg:
		return 1
	case neg > pos:
		return -1
	default:
		return 0
	}
}

func overallSentiment(positivePct, negativePct float64) string {
	switch {
	case positivePct > 50:
		return "Positive"
	case negativePct > 50:
		return "Negative"
	case positivePct > negativePct:
		return "Mostly Positive"
	case negativePct > positivePct:
		return "Mostly Negative"
	default:
		return "Neutral/Mixed"
	}
}
