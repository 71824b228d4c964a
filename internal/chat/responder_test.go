package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serviceops/maintdesk/internal/models"
)

func entry(id int64, title, content, tags string) models.ScoredEntry {
	return models.ScoredEntry{
		KnowledgeEntry: models.KnowledgeEntry{
			ID:       id,
			Category: "Test Category",
			Title:    title,
			Content:  content,
			Tags:     tags,
		},
	}
}

func TestRespondGreeting(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{"hello", "Hello there"},
		{"help", "I need some help"},
		{"hi standalone", "hi"},
		{"hi as substring", "this machine is really loud"},
		{"greeting beats how-to", "hello, how do I fix the generator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Respond(tt.message, nil, nil)
			assert.Equal(t, greetingText, resp.Text)
		})
	}
}

func TestRespondHowTo(t *testing.T) {
	longContent := strings.Repeat("x", 400)
	results := []models.ScoredEntry{
		entry(1, "Generator Oil Change", longContent, "generator"),
		entry(2, "Second Entry", "other content", ""),
	}

	resp := Respond("how to change generator oil", results, []string{"change", "generator", "oil"})

	assert.Contains(t, resp.Text, "Here's how to handle generator oil change:")
	assert.Contains(t, resp.Text, strings.Repeat("x", 300)+"...")
	assert.NotContains(t, resp.Text, strings.Repeat("x", 301))
}

func TestRespondHowToWithoutResults(t *testing.T) {
	resp := Respond("how do I fix this thing", nil, []string{"thing"})
	assert.Equal(t, clarifyText, resp.Text)
}

func TestRespondEquipment(t *testing.T) {
	results := []models.ScoredEntry{
		entry(1, "Elevator Safety Checklist", strings.Repeat("c", 300), "elevator,safety"),
	}

	resp := Respond("elevator inspection", results, []string{"elevator", "inspection"})

	assert.Contains(t, resp.Text, "I found information about elevator maintenance:")
	assert.Contains(t, resp.Text, "Elevator Safety Checklist")
	assert.Contains(t, resp.Text, strings.Repeat("c", 250)+"...")
}

func TestRespondEquipmentFallsThroughWithoutMatchingResult(t *testing.T) {
	// A known equipment keyword but no result mentioning it: the equipment
	// rule does not fire and the general rule answers instead.
	results := []models.ScoredEntry{
		entry(1, "Plumbing Basics", "pipes and valves", "plumbing"),
	}

	resp := Respond("generator question", results, []string{"generator", "question"})

	assert.Contains(t, resp.Text, "I found this relevant information:")
	assert.Contains(t, resp.Text, "Plumbing Basics")
}

func TestRespondGeneral(t *testing.T) {
	results := []models.ScoredEntry{
		entry(1, "Some Procedure", strings.Repeat("y", 250), ""),
	}

	resp := Respond("procedure question", results, []string{"procedure", "question"})

	assert.Contains(t, resp.Text, "I found this relevant information:")
	assert.Contains(t, resp.Text, "Some Procedure")
	assert.Contains(t, resp.Text, strings.Repeat("y", 200)+"...")
	assert.NotContains(t, resp.Text, strings.Repeat("y", 201))
}

func TestRespondFallback(t *testing.T) {
	resp := Respond("xyz", nil, nil)
	assert.Equal(t, fallbackText, resp.Text)
}

func TestRespondSuggestionsComeFromOriginalResults(t *testing.T) {
	// Even when the equipment rule answers from a filtered subset, the
	// suggestions stay the top two of the original ranked results.
	results := []models.ScoredEntry{
		entry(1, "Unrelated Top Result", "nothing about the equipment", ""),
		entry(2, "Generator Oil Change", "generator content", "generator"),
		entry(3, "Third Entry", "more content", ""),
	}

	resp := Respond("generator noise", results, []string{"generator", "noise"})

	assert.Contains(t, resp.Text, "Generator Oil Change")
	require.Len(t, resp.Suggestions, 2)
	assert.Equal(t, int64(1), resp.Suggestions[0].ID)
	assert.Equal(t, "Unrelated Top Result", resp.Suggestions[0].Title)
	assert.Equal(t, int64(2), resp.Suggestions[1].ID)
}

func TestRespondShortContentStillGetsEllipsis(t *testing.T) {
	results := []models.ScoredEntry{
		entry(1, "Short Entry", "brief", ""),
	}

	resp := Respond("short question", results, []string{"short", "question"})
	assert.Contains(t, resp.Text, "brief...")
}

func TestRespondKeywordsNeverNil(t *testing.T) {
	resp := Respond("hello", nil, nil)
	require.NotNil(t, resp.Keywords)
	assert.Empty(t, resp.Keywords)

	resp = Respond("generator check", nil, []string{"generator", "check"})
	assert.Equal(t, []string{"generator", "check"}, resp.Keywords)
}
