package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/serviceops/maintdesk/internal/models"
)

// CreateKnowledgeEntry inserts a new knowledge base entry.
func (s *SQLiteStore) CreateKnowledgeEntry(ctx context.Context, input KnowledgeInput) (*models.KnowledgeEntry, error) {
	if input.DifficultyLevel == "" {
		input.DifficultyLevel = models.DifficultyMedium
	}
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO knowledge_base (
			category, title, content, tags, equipment_type, difficulty_level,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		input.Category, input.Title, input.Content, input.Tags,
		input.EquipmentType, input.DifficultyLevel, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("creating knowledge entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading knowledge entry id: %w", err)
	}
	return s.GetKnowledgeEntry(ctx, id)
}

// GetKnowledgeEntry retrieves an entry by ID.
func (s *SQLiteStore) GetKnowledgeEntry(ctx context.Context, id int64) (*models.KnowledgeEntry, error) {
	var e models.KnowledgeEntry
	err := s.db.GetContext(ctx, &e, "SELECT * FROM knowledge_base WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting knowledge entry %d: %w", id, err)
	}
	return &e, nil
}

// ListKnowledgeEntries retrieves entries matching the exact-match filters,
// ordered by category then title.
func (s *SQLiteStore) ListKnowledgeEntries(ctx context.Context, filter KnowledgeFilter) ([]models.KnowledgeEntry, error) {
	query := "SELECT * FROM knowledge_base WHERE 1=1"
	var args []interface{}

	query, args = appendKnowledgeFilters(query, args, filter)
	query += " ORDER BY category, title"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	var entries []models.KnowledgeEntry
	if err := s.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("listing knowledge entries: %w", err)
	}
	return entries, nil
}

// UpdateKnowledgeEntry applies the non-nil fields of input.
func (s *SQLiteStore) UpdateKnowledgeEntry(ctx context.Context, id int64, input KnowledgeUpdateInput) (*models.KnowledgeEntry, error) {
	var sets []string
	var args []interface{}
	set := func(col string, v interface{}) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if input.Category != nil {
		set("category", *input.Category)
	}
	if input.Title != nil {
		set("title", *input.Title)
	}
	if input.Content != nil {
		set("content", *input.Content)
	}
	if input.Tags != nil {
		set("tags", *input.Tags)
	}
	if input.EquipmentType != nil {
		set("equipment_type", *input.EquipmentType)
	}
	if input.DifficultyLevel != nil {
		set("difficulty_level", *input.DifficultyLevel)
	}

	if len(sets) == 0 {
		return nil, ErrNoFields
	}

	set("updated_at", time.Now().UTC())
	args = append(args, id)

	result, err := s.db.ExecContext(ctx,
		"UPDATE knowledge_base SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("updating knowledge entry %d: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrNotFound
	}
	return s.GetKnowledgeEntry(ctx, id)
}

// DeleteKnowledgeEntry removes an entry by ID.
func (s *SQLiteStore) DeleteKnowledgeEntry(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM knowledge_base WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting knowledge entry %d: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// KnowledgeCategories returns the distinct categories in use.
func (s *SQLiteStore) KnowledgeCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.SelectContext(ctx, &categories,
		"SELECT DISTINCT category FROM knowledge_base ORDER BY category")
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}

// KnowledgeEquipmentTypes returns the distinct non-empty equipment types.
func (s *SQLiteStore) KnowledgeEquipmentTypes(ctx context.Context) ([]string, error) {
	var types []string
	err := s.db.SelectContext(ctx, &types,
		"SELECT DISTINCT equipment_type FROM knowledge_base WHERE equipment_type != '' ORDER BY equipment_type")
	if err != nil {
		return nil, fmt.Errorf("listing equipment types: %w", err)
	}
	return types, nil
}

// SearchKnowledge is the catalog-search pre-filter: entries whose title,
// content, or tags contain the raw query as a substring, narrowed by the
// exact-match filters, pre-sorted alphabetically by title. Relevance scoring
// and the final ranking happen in the search engine on top of this order.
func (s *SQLiteStore) SearchKnowledge(ctx context.Context, query string, filter KnowledgeFilter, limit int) ([]models.KnowledgeEntry, error) {
	pattern := "%" + query + "%"
	sqlQuery := "SELECT * FROM knowledge_base WHERE (title LIKE ? OR content LIKE ? OR tags LIKE ?)"
	args := []interface{}{pattern, pattern, pattern}

	sqlQuery, args = appendKnowledgeFilters(sqlQuery, args, filter)
	sqlQuery += fmt.Sprintf(" ORDER BY title ASC LIMIT %d", limit)

	var entries []models.KnowledgeEntry
	if err := s.db.SelectContext(ctx, &entries, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("searching knowledge base: %w", err)
	}
	return entries, nil
}

// SearchKnowledgeForChat is the chat-path query. Inclusion is a substring
// match on the full message OR on any extracted keyword, across all three
// text fields. The rank tier is computed from the full message only, so
// keyword hits widen the candidate set without changing the rank value.
func (s *SQLiteStore) SearchKnowledgeForChat(ctx context.Context, message string, keywords []string, limit int) ([]models.ScoredEntry, error) {
	pattern := "%" + message + "%"

	sqlQuery := `
		SELECT *,
		       (CASE
		        WHEN title LIKE ? THEN 10
		        WHEN content LIKE ? THEN 5
		        WHEN tags LIKE ? THEN 3
		        ELSE 1
		       END) AS relevance_score
		FROM knowledge_base
		WHERE title LIKE ? OR content LIKE ? OR tags LIKE ?`
	args := []interface{}{pattern, pattern, pattern, pattern, pattern, pattern}

	for _, kw := range keywords {
		sqlQuery += " OR title LIKE ? OR content LIKE ? OR tags LIKE ?"
		kwPattern := "%" + kw + "%"
		args = append(args, kwPattern, kwPattern, kwPattern)
	}

	sqlQuery += fmt.Sprintf(" ORDER BY relevance_score DESC LIMIT %d", limit)

	var entries []models.ScoredEntry
	if err := s.db.SelectContext(ctx, &entries, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("searching knowledge base for chat: %w", err)
	}
	return entries, nil
}

func appendKnowledgeFilters(query string, args []interface{}, filter KnowledgeFilter) (string, []interface{}) {
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.EquipmentType != "" {
		query += " AND equipment_type = ?"
		args = append(args, filter.EquipmentType)
	}
	if filter.DifficultyLevel != "" {
		query += " AND difficulty_level = ?"
		args = append(args, filter.DifficultyLevel)
	}
	return query, args
}
