package chat

import (
	"fmt"
	"strings"

	"github.com/serviceops/maintdesk/internal/models"
)

// Canned reply texts.
const (
	greetingText = "Hello! I'm the maintenance service assistant. I can help you " +
		"with maintenance procedures, equipment information, and troubleshooting. " +
		"What would you like to know about?"

	clarifyText = "I understand you're looking for a procedure. Could you be more " +
		"specific about what equipment or task you need help with?"

	fallbackText = "I'm not sure I understand exactly what you're looking for. " +
		"Could you try asking about specific equipment (generator, HVAC, elevator, " +
		"etc.) or maintenance procedures? I have information about various " +
		"maintenance tasks and safety procedures."
)

// equipmentTerms is the equipment subset that triggers the
// equipment-specific rule.
var equipmentTerms = []string{"generator", "hvac", "elevator", "fire", "ups", "battery"}

// Response is a chatbot reply with up to two suggested entries.
type Response struct {
	Text        string                   `json:"response"`
	Suggestions []models.EntrySuggestion `json:"suggestions"`
	Keywords    []string                 `json:"keywords"`
}

// input bundles everything the rules look at for one message.
type input struct {
	lowered  string
	results  []models.ScoredEntry
	keywords []string
}

// rule pairs a predicate with a reply builder. Rules are evaluated top-down
// and the first match wins; the order is part of the contract.
type rule struct {
	matches func(in input) bool
	reply   func(in input) string
}

var rules = []rule{
	{ // Greeting. Matched as a substring, so it wins over any later rule.
		matches: func(in input) bool {
			return strings.Contains(in.lowered, "hello") ||
				strings.Contains(in.lowered, "hi") ||
				strings.Contains(in.lowered, "help")
		},
		reply: func(in input) string { return greetingText },
	},
	{ // "How to" questions.
		matches: func(in input) bool {
			return strings.Contains(in.lowered, "how to") ||
				strings.Contains(in.lowered, "how do")
		},
		reply: func(in input) string {
			if len(in.results) == 0 {
				return clarifyText
			}
			best := in.results[0]
			return fmt.Sprintf(
				"Here's how to handle %s:\n\n%s...\n\nWould you like more detailed information about this procedure?",
				strings.ToLower(best.Title), excerpt(best.Content, 300))
		},
	},
	{ // Equipment-specific queries.
		matches: func(in input) bool {
			term, match := equipmentMatch(in)
			return term != "" && match != nil
		},
		reply: func(in input) string {
			term, best := equipmentMatch(in)
			return fmt.Sprintf(
				"I found information about %s maintenance:\n\n%s\n\n%s...\n\nWould you like me to find more specific information?",
				term, best.Title, excerpt(best.Content, 250))
		},
	},
	{ // Anything with results.
		matches: func(in input) bool { return len(in.results) > 0 },
		reply: func(in input) string {
			best := in.results[0]
			return fmt.Sprintf(
				"I found this relevant information:\n\n%s\n\n%s...\n\nIs this what you were looking for, or would you like me to search for something else?",
				best.Title, excerpt(best.Content, 200))
		},
	},
	{ // Fallback.
		matches: func(in input) bool { return true },
		reply:   func(in input) string { return fallbackText },
	},
}

// Respond builds the chatbot reply for a message given the ranked chat-path
// results and the extracted keywords. Suggestions are always the top two of
// the original ranked results, even when the equipment rule answered from a
// filtered subset; callers depend on that.
func Respond(message string, results []models.ScoredEntry, keywords []string) Response {
	in := input{
		lowered:  strings.ToLower(message),
		results:  results,
		keywords: keywords,
	}

	var text string
	for _, r := range rules {
		if r.matches(in) {
			text = r.reply(in)
			break
		}
	}

	suggestions := make([]models.EntrySuggestion, 0, 2)
	for _, entry := range results {
		if len(suggestions) == 2 {
			break
		}
		suggestions = append(suggestions, models.EntrySuggestion{
			ID:       entry.ID,
			Title:    entry.Title,
			Category: entry.Category,
		})
	}

	if keywords == nil {
		keywords = []string{}
	}
	return Response{Text: text, Suggestions: suggestions, Keywords: keywords}
}

// equipmentMatch finds the first extracted keyword naming a known piece of
// equipment and the best-ranked result whose title or content mentions it.
func equipmentMatch(in input) (string, *models.ScoredEntry) {
	var term string
	for _, kw := range in.keywords {
		for _, eq := range equipmentTerms {
			if kw == eq {
				term = kw
				break
			}
		}
		if term != "" {
			break
		}
	}
	if term == "" || len(in.results) == 0 {
		return "", nil
	}

	for i := range in.results {
		title := strings.ToLower(in.results[i].Title)
		content := strings.ToLower(in.results[i].Content)
		if strings.Contains(title, term) || strings.Contains(content, term) {
			return term, &in.results[i]
		}
	}
	return term, nil
}

// excerpt returns the first n characters of s. The trailing ellipsis is
// appended by the callers unconditionally, matching the reply format even
// for short content.
func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}
