package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/ringside/internal/domain/types"
)

const defaultOddsBaseURL = "https://api.the-odds-api.com/v4/sports/boxing_boxing/odds/"

// OddsOption applies a configuration option to the odds provider.
type OddsOption func(*OddsProvider)

// WithOddsBaseURL overrides the upstream endpoint. Used by tests.
func WithOddsBaseURL(u string) OddsOption {
	return func(p *OddsProvider) {
		if u != "" {
			p.baseURL = u
		}
	}
}

// WithOddsClient overrides the HTTP client.
func WithOddsClient(c *http.Client) OddsOption {
	return func(p *OddsProvider) {
		if c != nil {
			p.client = c
		}
	}
}

// OddsProvider serves head to head betting odds from The Odds API.
type OddsProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOddsProvider builds the provider. An empty API key is allowed; the
// provider then reports unavailable on every fetch.
func NewOddsProvider(apiKey string, opts ...OddsOption) *OddsProvider {
	p := &OddsProvider{
		apiKey:  apiKey,
		baseURL: defaultOddsBaseURL,
		client:  defaultClient(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *OddsProvider) Name() types.Capability { return types.CapabilityOdds }

// oddsEvent mirrors The Odds API v4 event payload.
type oddsEvent struct {
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	CommenceTime time.Time `json:"commence_time"`
	Bookmakers   []struct {
		Title   string `json:"title"`
		Markets []struct {
			Key      string `json:"key"`
			Outcomes []struct {
				Name  string  `json:"name"`
				Price float64 `json:"price"`
			} `json:"outcomes"`
		} `json:"markets"`
	} `json:"bookmakers"`
}

// Quote is one bookmaker's decimal price for a fighter.
type Quote struct {
	Bookmaker string  `json:"bookmaker"`
	Fighter   string  `json:"fighter"`
	Price     float64 `json:"price"`
	Implied   float64 `json:"implied_probability"`
}

// OddsReport is the odds picture for one matched event.
type OddsReport struct {
	Event        string    `json:"event"`
	CommenceTime time.Time `json:"commence_time"`
	Quotes       []Quote   `json:"quotes"`
}

// Fetch returns odds for the event involving the requested fighters.
func (p *OddsProvider) Fetch(ctx context.Context, req Request) (any, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: odds API key not configured", ErrSourceUnavailable)
	}
	if len(req.Fighters) == 0 {
		return nil, fmt.Errorf("%w: no fighters in request", ErrNoData)
	}

	q := url.Values{}
	q.Set("apiKey", p.apiKey)
	q.Set("regions", "us")
	q.Set("markets", "h2h")
	q.Set("oddsFormat", "decimal")

	var events []oddsEvent
	if err := getJSON(ctx, p.client, p.baseURL+"?"+q.Encode(), nil, &events); err != nil {
		return nil, err
	}

	for _, ev := range events {
		if !matchesEvent(ev, req.Fighters) {
			continue
		}
		report := OddsReport{
			Event:        ev.HomeTeam + " vs " + ev.AwayTeam,
			CommenceTime: ev.CommenceTime,
		}
		for _, bm := range ev.Bookmakers {
			for _, m := range bm.Markets {
				if m.Key != "h2h" {
					continue
				}
				for _, o := range m.Outcomes {
					quote := Quote{Bookmaker: bm.Title, Fighter: o.Name, Price: o.Price}
					if o.Price > 0 {
						quote.Implied = 1 / o.Price
					}
					report.Quotes = append(report.Quotes, quote)
				}
			}
		}
		return report, nil
	}

	return nil, fmt.Errorf("%w: no odds listed for %s", ErrNoData, strings.Join(req.Fighters, " vs "))
}

func matchesEvent(ev oddsEvent, fighters []string) bool {
	for _, f := range fighters {
		needle := strings.ToLower(f)
		if strings.Contains(strings.ToLower(ev.HomeTeam), needle) ||
			strings.Contains(strings.ToLower(ev.AwayTeam), needle) {
			return true
		}
	}
	return false
}
