package models

import "time"

// Difficulty levels for knowledge base entries
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// KnowledgeEntry is a single article in the maintenance knowledge base.
// Tags is a comma-separated keyword list, matched by substring like the
// other text fields.
type KnowledgeEntry struct {
	ID              int64     `db:"id" json:"id"`
	Category        string    `db:"category" json:"category"`
	Title           string    `db:"title" json:"title"`
	Content         string    `db:"content" json:"content"`
	Tags            string    `db:"tags" json:"tags,omitempty"`
	EquipmentType   string    `db:"equipment_type" json:"equipment_type,omitempty"`
	DifficultyLevel string    `db:"difficulty_level" json:"difficulty_level"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// ScoredEntry pairs a knowledge entry with its relevance score for a query.
type ScoredEntry struct {
	KnowledgeEntry
	RelevanceScore int `db:"relevance_score" json:"relevance_score"`
}

// EntrySuggestion is the compact form of an entry offered by the chatbot.
type EntrySuggestion struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// ValidDifficulty reports whether d is a known difficulty level.
func ValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}
