// Package reply picks canned assistant replies for a conversation. Routing
// inspects the most recent user turn for category keywords in a fixed
// priority order and falls back to a general pool, so selection always
// yields text and never fails.
package reply

import (
	"fmt"
	"strings"

	"github.com/papercomputeco/parrot/pkg/oai"
	"github.com/papercomputeco/parrot/pkg/rng"
)

// Category tags one pool of replies and the keyword list that routes to it.
type Category string

const (
	CategoryGeneral   Category = "general"
	CategoryCode      Category = "code"
	CategoryHelp      Category = "help"
	CategorySummary   Category = "summary"
	CategoryTechnical Category = "technical"
	CategoryGreeting  Category = "greeting"
	CategoryGoodbye   Category = "goodbye"
)

// routeOrder is the match priority. General is not routed; it is the
// fallback when nothing matches.
var routeOrder = []Category{
	CategoryCode,
	CategoryHelp,
	CategorySummary,
	CategoryTechnical,
	CategoryGreeting,
	CategoryGoodbye,
}

// Library holds the reply pools and routing keywords. It is immutable after
// construction and shared across requests.
type Library struct {
	pools    map[Category][]string
	keywords map[Category][]string
}

// NewLibrary builds a Library from the embedded defaults with the given
// overrides applied. Override keys are category names; an unknown name or an
// empty replacement pool is an error. Nil maps mean no overrides.
func NewLibrary(pools, keywords map[string][]string) (*Library, error) {
	lib := &Library{
		pools:    make(map[Category][]string, len(defaultPools)),
		keywords: make(map[Category][]string, len(defaultKeywords)),
	}
	for cat, pool := range defaultPools {
		lib.pools[cat] = pool
	}
	for cat, words := range defaultKeywords {
		lib.keywords[cat] = words
	}

	for name, pool := range pools {
		cat := Category(name)
		if _, ok := defaultPools[cat]; !ok {
			return nil, fmt.Errorf("unknown reply category %q", name)
		}
		if len(pool) == 0 {
			return nil, fmt.Errorf("reply pool %q must not be empty", name)
		}
		lib.pools[cat] = pool
	}
	for name, words := range keywords {
		cat := Category(name)
		if _, ok := defaultKeywords[cat]; !ok {
			return nil, fmt.Errorf("unknown trigger category %q", name)
		}
		lib.keywords[cat] = words
	}
	return lib, nil
}

// DefaultLibrary returns a Library with the embedded pools and keywords.
func DefaultLibrary() *Library {
	lib, err := NewLibrary(nil, nil)
	if err != nil {
		// Unreachable, the embedded defaults are never empty.
		panic(err)
	}
	return lib
}

// Categorize reports which pool the given user content routes to. Matching
// is case-insensitive substring search, first category in priority order
// wins, no match falls back to general.
func (l *Library) Categorize(content string) Category {
	lowered := strings.ToLower(content)
	for _, cat := range routeOrder {
		for _, kw := range l.keywords[cat] {
			if strings.Contains(lowered, kw) {
				return cat
			}
		}
	}
	return CategoryGeneral
}

// Pool returns the replies for one category.
func (l *Library) Pool(cat Category) []string {
	return l.pools[cat]
}

// Selector chooses a reply for a conversation using an injected random
// source. It holds no per-request state and is shared across requests.
type Selector struct {
	lib  *Library
	rand rng.Source
}

// NewSelector builds a Selector over the given library and random source.
func NewSelector(lib *Library, src rng.Source) *Selector {
	return &Selector{lib: lib, rand: src}
}

// Select returns a reply for the conversation. The most recent user turn
// drives category routing; within a pool the pick is uniform. The result is
// always non-empty.
func (s *Selector) Select(messages []oai.Message) string {
	cat := s.lib.Categorize(oai.LastUserContent(messages))
	pool := s.lib.pools[cat]
	return pool[s.rand.Intn(len(pool))]
}
