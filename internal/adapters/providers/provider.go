// Package providers contains clients for external data sources. Each
// provider maps to one capability and degrades to ErrSourceUnavailable
// when its upstream credentials are missing, so a partially configured
// deployment still answers everything the fight database can.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/ringside/internal/domain/types"
)

const defaultTimeout = 10 * time.Second

// Request carries the subject of a provider fetch.
type Request struct {
	Fighters []string
	Query    string
}

// Provider fetches live data for a single capability.
type Provider interface {
	Name() types.Capability
	Fetch(ctx context.Context, req Request) (any, error)
}

func defaultClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

func getJSON(ctx context.Context, client *http.Client, url string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: upstream status %d", ErrSourceUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrSourceUnavailable, err)
	}
	return nil
}
