package search

import (
	"strings"

	"github.com/serviceops/maintdesk/internal/models"
)

// Field-match weights for the relevance score.
const (
	titleWeight   = 10
	contentWeight = 5
	tagsWeight    = 3
)

// Score computes the relevance of a knowledge entry against a set of
// lowercase query terms. Each term contributes its field weights
// independently and additively: a term found in the title, content, and
// tags of the same entry contributes 10+5+3. There is no normalization by
// entry length or term frequency; an entry matching nothing scores 0.
func Score(entry models.KnowledgeEntry, terms []string) int {
	title := strings.ToLower(entry.Title)
	content := strings.ToLower(entry.Content)
	tags := strings.ToLower(entry.Tags)

	score := 0
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += titleWeight
		}
		if strings.Contains(content, term) {
			score += contentWeight
		}
		if strings.Contains(tags, term) {
			score += tagsWeight
		}
	}
	return score
}
