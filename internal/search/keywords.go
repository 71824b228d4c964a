package search

import (
	"regexp"
	"strings"
)

// maintenanceVocabulary is the fixed set of equipment and maintenance terms
// recognized as keywords regardless of length.
var maintenanceVocabulary = map[string]bool{
	"generator": true, "hvac": true, "elevator": true, "fire": true,
	"safety": true, "battery": true, "ups": true, "oil": true, "filter": true,
	"inspection": true, "maintenance": true, "repair": true, "replace": true,
	"check": true, "test": true, "clean": true, "service": true,
	"emergency": true, "scheduled": true, "preventive": true, "routine": true,
	"annual": true, "monthly": true, "weekly": true,
	"electrical": true, "mechanical": true, "plumbing": true,
	"cooling": true, "heating": true, "ventilation": true,
}

var nonWord = regexp.MustCompile(`\W+`)

// ExtractKeywords derives domain keywords from a free-text message. The
// message is lowercased and split on runs of non-word characters; tokens of
// three characters or more are kept when they appear in the maintenance
// vocabulary or are longer than four characters. Order is preserved and
// duplicates are retained; there is no stemming.
func ExtractKeywords(message string) []string {
	words := nonWord.Split(strings.ToLower(message), -1)

	keywords := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) <= 2 {
			continue
		}
		if maintenanceVocabulary[word] || len(word) > 4 {
			keywords = append(keywords, word)
		}
	}
	return keywords
}
