// Package intent classifies a natural-language query into the capability
// tags the router can dispatch. Classification is a pure function of the
// normalized query string; the heuristics live behind the Classifier
// interface so they can be upgraded without touching dispatch logic.
package intent

import (
	"strings"

	"github.com/okian/ringside/internal/domain/types"
)

// Classifier maps a raw query to a set of capability tags.
type Classifier interface {
	// Classify returns the capabilities the query calls for, in a stable
	// order. It never returns an empty set: an unclassifiable query falls
	// back to a descriptive lookup.
	Classify(query string) []types.Capability
}

// Option applies a configuration option to the KeywordClassifier.
type Option func(*KeywordClassifier)

// WithKeywords replaces the keyword set for one capability.
func WithKeywords(cap types.Capability, keywords []string) Option {
	return func(c *KeywordClassifier) {
		if len(keywords) > 0 {
			c.keywords[cap] = keywords
		}
	}
}

// KeywordClassifier matches capability keyword sets against the normalized
// query. Matching is case-insensitive substring containment.
type KeywordClassifier struct {
	keywords map[types.Capability][]string
	// order fixes the capability ranking so multi-intent plans are stable.
	order []types.Capability
}

// NewKeywordClassifier creates a classifier with the default keyword sets.
func NewKeywordClassifier(opts ...Option) *KeywordClassifier {
	c := &KeywordClassifier{
		keywords: map[types.Capability][]string{
			types.CapabilityTrajectory: {
				"trajectory", "improving", "declining", "form", "momentum",
				"career arc", "peak", "washed",
			},
			types.CapabilityCommonOpponents: {
				"common opponent", "shared opponent", "both fought",
				"mutual opponent",
			},
			types.CapabilityTitlePerformance: {
				"title fight", "championship", "big fight", "title record",
				"defenses", "belt", "champion",
			},
			types.CapabilityCompare: {
				"compare", "versus", " vs ", "vs.", "who would win",
				"head to head", "matchup", "better fighter",
			},
			types.CapabilityTimeline: {
				"timeline", "career history", "milestones", "year by year",
			},
			types.CapabilityUpcoming: {
				"upcoming", "schedule", "next fight", "when is", "fight card",
			},
			types.CapabilityOdds: {
				"odds", "bet", "betting", "bookmaker", "moneyline", "favorite to win",
			},
			types.CapabilityNews: {
				"news", "press", "announced", "headline", "media",
			},
			types.CapabilitySentiment: {
				"sentiment", "reddit", "fans", "buzz", "social media",
				"people saying",
			},
			types.CapabilityLookup: {
				"stats", "record", "reach", "stance", "who is", "tell me about",
				"profile",
			},
		},
		order: []types.Capability{
			types.CapabilityLookup,
			types.CapabilityTrajectory,
			types.CapabilityCommonOpponents,
			types.CapabilityTitlePerformance,
			types.CapabilityCompare,
			types.CapabilityTimeline,
			types.CapabilityUpcoming,
			types.CapabilityOdds,
			types.CapabilityNews,
			types.CapabilitySentiment,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Classify maps the query to capability tags. Ties and multi-intent queries
// yield multiple tags; the fallback is always a descriptive lookup so no
// dispatch plan is ever empty.
func (c *KeywordClassifier) Classify(query string) []types.Capability {
	q := Normalize(query)

	var caps []types.Capability
	for _, capability := range c.order {
		for _, kw := range c.keywords[capability] {
			if strings.Contains(q, kw) {
				caps = append(caps, capability)
				break
			}
		}
	}

	if len(caps) == 0 {
		caps = append(caps, types.CapabilityLookup)
	}
	return caps
}

// Normalize lowercases the query and collapses whitespace so keyword
// matching is deterministic. Exported because cache keys use the same
// normal form.
func Normalize(query string) string {
	fields := strings.Fields(strings.ToLower(query))
	return " " + strings.Join(fields, " ") + " "
}

// subjectStopwords are query filler tokens that must not survive into an
// extracted fighter name.
var subjectStopwords = map[string]bool{
	"compare": true, "between": true, "matchup": true, "odds": true, "betting": true,
	"for": true, "on": true, "about": true, "of": true, "the": true,
	"is": true, "who": true, "would": true, "win": true, "wins": true,
	"better": true, "news": true, "and": true, "a": true, "in": true,
}

// Subjects extracts fighter names from a matchup-style query when the
// caller did not pass them explicitly. It understands "A vs B" and
// "A versus B"; anything else yields no subjects.
func Subjects(query string) []string {
	lower := strings.ToLower(query)
	for _, sep := range []string{" vs. ", " vs ", " versus "} {
		idx := strings.Index(lower, sep)
		if idx < 0 {
			continue
		}
		a := trimLeadingStopwords(lastClause(strings.TrimSpace(query[:idx])))
		b := trimTrailingStopwords(firstClause(strings.TrimSpace(query[idx+len(sep):])))
		if a != "" && b != "" {
			return []string{a, b}
		}
	}
	return nil
}

func trimLeadingStopwords(s string) string {
	words := strings.Fields(s)
	for len(words) > 0 && subjectStopwords[strings.ToLower(words[0])] {
		words = words[1:]
	}
	return strings.Join(words, " ")
}

func trimTrailingStopwords(s string) string {
	words := strings.Fields(s)
	for len(words) > 0 && subjectStopwords[strings.ToLower(words[len(words)-1])] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// lastClause trims a leading sentence down to the trailing name tokens.
func lastClause(s string) string {
	for _, cut := range []string{":", ",", "?", "."} {
		if idx := strings.LastIndex(s, cut); idx >= 0 {
			s = s[idx+1:]
		}
	}
	return strings.TrimSpace(s)
}

// firstClause trims a trailing sentence down to the leading name tokens.
func firstClause(s string) string {
	if idx := strings.IndexAny(s, ":,?."); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
