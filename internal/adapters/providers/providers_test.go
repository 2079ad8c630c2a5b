package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUnconfiguredProvidersReportUnavailable(t *testing.T) {
	ctx := context.Background()
	req := Request{Fighters: []string{"Tyson Fury", "Oleksandr Usyk"}}

	if _, err := NewOddsProvider("").Fetch(ctx, req); !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("odds: want ErrSourceUnavailable, got %v", err)
	}
	if _, err := NewNewsProvider("").Fetch(ctx, req); !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("news: want ErrSourceUnavailable, got %v", err)
	}
	if _, err := NewSentimentProvider("", "").Fetch(ctx, req); !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("sentiment: want ErrSourceUnavailable, got %v", err)
	}
}

func TestOddsProviderMatchesEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apiKey") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{
				"home_team": "Some Other Guy",
				"away_team": "Another Guy",
				"commence_time": "2026-09-12T21:00:00Z",
				"bookmakers": []
			},
			{
				"home_team": "Tyson Fury",
				"away_team": "Oleksandr Usyk",
				"commence_time": "2026-09-20T22:00:00Z",
				"bookmakers": [
					{
						"title": "DraftKings",
						"markets": [
							{
								"key": "h2h",
								"outcomes": [
									{"name": "Tyson Fury", "price": 2.5},
									{"name": "Oleksandr Usyk", "price": 1.6}
								]
							}
						]
					}
				]
			}
		]`))
	}))
	defer srv.Close()

	p := NewOddsProvider("test-key", WithOddsBaseURL(srv.URL), WithOddsClient(srv.Client()))
	out, err := p.Fetch(context.Background(), Request{Fighters: []string{"Usyk"}})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	report, ok := out.(OddsReport)
	if !ok {
		t.Fatalf("want OddsReport, got %T", out)
	}
	if report.Event != "Tyson Fury vs Oleksandr Usyk" {
		t.Errorf("event: got %q", report.Event)
	}
	if len(report.Quotes) != 2 {
		t.Fatalf("want 2 quotes, got %d", len(report.Quotes))
	}
	if got := report.Quotes[0].Implied; got != 1/2.5 {
		t.Errorf("implied probability: want %v, got %v", 1/2.5, got)
	}
}

func TestOddsProviderNoListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p := NewOddsProvider("test-key", WithOddsBaseURL(srv.URL), WithOddsClient(srv.Client()))
	_, err := p.Fetch(context.Background(), Request{Fighters: []string{"Nobody"}})
	if !errors.Is(err, ErrNoData) {
		t.Errorf("want ErrNoData, got %v", err)
	}
}

func TestNewsProviderBuildsDigest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Canelo Alvarez boxing" {
			t.Errorf("query: got %q", got)
		}
		_, _ = w.Write([]byte(`{
			"articles": [
				{
					"title": "Canelo defends titles",
					"description": "Recap",
					"author": "A. Writer",
					"publishedAt": "2026-08-20T12:00:00Z",
					"url": "https://example.com/a",
					"source": {"name": "Example Sport"}
				}
			]
		}`))
	}))
	defer srv.Close()

	p := NewNewsProvider("test-key", WithNewsBaseURL(srv.URL), WithNewsClient(srv.Client()))
	out, err := p.Fetch(context.Background(), Request{Fighters: []string{"Canelo Alvarez"}})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	digest, ok := out.(NewsDigest)
	if !ok {
		t.Fatalf("want NewsDigest, got %T", out)
	}
	if len(digest.Articles) != 1 || digest.Articles[0].Source != "Example Sport" {
		t.Errorf("unexpected digest: %+v", digest)
	}
}

func TestNewsProviderUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewNewsProvider("test-key", WithNewsBaseURL(srv.URL), WithNewsClient(srv.Client()))
	_, err := p.Fetch(context.Background(), Request{})
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("want ErrSourceUnavailable, got %v", err)
	}
}

func TestSentimentProviderScoresPosts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := r.BasicAuth(); !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"access_token": "tok"}`))
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{
			"data": {
				"children": [
					{"data": {"title": "Inoue is the best, amazing performance", "selftext": "", "score": 120, "num_comments": 40}},
					{"data": {"title": "That card was boring and disappointing", "selftext": "", "score": 30, "num_comments": 10}},
					{"data": {"title": "Fight announced for December", "selftext": "", "score": 15, "num_comments": 5}}
				]
			}
		}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewSentimentProvider("id", "secret",
		WithSentimentURLs(srv.URL+"/token", srv.URL+"/search"),
		WithSentimentClient(srv.Client()))
	out, err := p.Fetch(context.Background(), Request{Fighters: []string{"Naoya Inoue"}})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	report, ok := out.(SentimentReport)
	if !ok {
		t.Fatalf("want SentimentReport, got %T", out)
	}
	if report.PostsAnalyzed != 3 {
		t.Errorf("posts analyzed: want 3, got %d", report.PostsAnalyzed)
	}
	if report.Overall != "Neutral/Mixed" {
		t.Errorf("overall: got %q", report.Overall)
	}
	if report.Engagement != 220 {
		t.Errorf("engagement: want 220, got %d", report.Engagement)
	}
}

func TestScoreText(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"an amazing dominant win", 1},
		{"overrated and boring", -1},
		{"fight scheduled for spring", 0},
		{"great fighter but a poor showing", 0},
	}
	for _, c := range cases {
		if got := scoreText(c.text); got != c.want {
			t.Errorf("scoreText(%q) = %d, want %d", c.text, got, c.want)
		}
	}
}
