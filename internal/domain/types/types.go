// Package types contains common types used across the application
package types

// Capability identifies one kind of dispatch the router can plan.
type Capability string

// Capability tags. The first group is served in-process from the fight
// record store and the metric engine; the second group names external
// providers that may be absent or down.
const (
	CapabilityLookup           Capability = "lookup"
	CapabilityTrajectory       Capability = "trajectory"
	CapabilityCommonOpponents  Capability = "common_opponents"
	CapabilityTitlePerformance Capability = "title_performance"
	CapabilityCompare          Capability = "compare"
	CapabilityTimeline         Capability = "timeline"
	CapabilityUpcoming         Capability = "upcoming"

	CapabilityOdds      Capability = "odds"
	CapabilityNews      Capability = "news"
	CapabilitySentiment Capability = "sentiment"
)

// Status classifies the outcome of one dispatch. NotFound and
// InsufficientData are normal results, not failures; Unavailable means the
// backing source failed or timed out.
type Status string

// Dispatch statuses.
const (
	StatusOK               Status = "ok"
	StatusNotFound         Status = "not_found"
	StatusInsufficientData Status = "insufficient_data"
	StatusUnavailable      Status = "unavailable"
	StatusInvalid          Status = "invalid"
)

// DispatchResult is the synthesized outcome of a single dispatch. Data keeps
// each sub-result's internal structure; nothing is flattened. A failed
// dispatch still produces an entry so consumers can tell "no such data"
// from "data source down".
type DispatchResult struct {
	Status  Status `json:"status"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Elapsed int64  `json:"elapsed_ms"` // wall time in milliseconds
}

// Response is the merged answer for one query, keyed by capability.
type Response struct {
	QueryID  string                        `json:"query_id"`
	Query    string                        `json:"query"`
	Fighters []string                      `json:"fighters,omitempty"`
	Results  map[Capability]DispatchResult `json:"results"`
}
