package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/serviceops/maintdesk/internal/models"
	"github.com/serviceops/maintdesk/internal/store"
)

// ErrInvalidQuery is returned when a catalog search query is shorter than
// two characters after trimming. The store is not touched in that case.
var ErrInvalidQuery = errors.New("search query must be at least 2 characters")

const (
	maxCatalogResults = 20
	maxChatResults    = 3
)

// Result is the outcome of a catalog search.
type Result struct {
	Results []models.ScoredEntry `json:"results"`
	Total   int                  `json:"total"`
	Query   string               `json:"query"`
}

// Engine ranks knowledge base entries on top of the store's substring
// pre-filters.
type Engine struct {
	store store.Store
}

// NewEngine creates a search engine backed by the given store.
func NewEngine(st store.Store) *Engine {
	return &Engine{store: st}
}

// Search runs the catalog search: the store pre-filters entries containing
// the raw query as a substring (plus any exact-match filters) pre-sorted
// alphabetically by title, then each survivor is scored against the
// whitespace-split query terms and the list is stable-sorted by descending
// score. Ties keep the alphabetical pre-sort order. Entries that passed the
// pre-filter are kept even at score zero.
func (e *Engine) Search(ctx context.Context, query string, filter store.KnowledgeFilter) (*Result, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return nil, ErrInvalidQuery
	}

	entries, err := e.store.SearchKnowledge(ctx, query, filter, maxCatalogResults)
	if err != nil {
		return nil, fmt.Errorf("searching knowledge base: %w", err)
	}

	// Whitespace split, not ExtractKeywords' tokenization; the two feed
	// different ranking formulas and must stay separate.
	terms := strings.Split(strings.ToLower(query), " ")

	scored := make([]models.ScoredEntry, len(entries))
	for i, entry := range entries {
		scored[i] = models.ScoredEntry{
			KnowledgeEntry: entry,
			RelevanceScore: Score(entry, terms),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	return &Result{Results: scored, Total: len(entries), Query: query}, nil
}

// SearchForChat runs the chat-path search: candidates match the full
// message or any extracted keyword as a substring, and are ranked by a
// single priority tier computed from the full message only. At most three
// entries are returned.
func (e *Engine) SearchForChat(ctx context.Context, message string, keywords []string) ([]models.ScoredEntry, error) {
	entries, err := e.store.SearchKnowledgeForChat(ctx, message, keywords, maxChatResults)
	if err != nil {
		return nil, fmt.Errorf("searching knowledge base for chat: %w", err)
	}
	return entries, nil
}
