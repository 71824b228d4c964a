// internal/service/knowledge_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/serviceops/maintdesk/internal/chat"
	"github.com/serviceops/maintdesk/internal/models"
	"github.com/serviceops/maintdesk/internal/search"
	"github.com/serviceops/maintdesk/internal/store"
)

// KnowledgeService owns knowledge base CRUD plus the two search paths and
// the chatbot on top of them.
type KnowledgeService struct {
	store  store.Store
	engine *search.Engine
}

// NewKnowledgeService creates a new knowledge base service.
func NewKnowledgeService(st store.Store) *KnowledgeService {
	return &KnowledgeService{
		store:  st,
		engine: search.NewEngine(st),
	}
}

func validateKnowledgeFields(category, title, content, difficulty string) error {
	if len(category) < 2 {
		return fmt.Errorf("%w: category must be at least 2 characters", ErrValidation)
	}
	if len(title) < 5 {
		return fmt.Errorf("%w: title must be at least 5 characters", ErrValidation)
	}
	if len(content) < 20 {
		return fmt.Errorf("%w: content must be at least 20 characters", ErrValidation)
	}
	if difficulty != "" && !models.ValidDifficulty(difficulty) {
		return fmt.Errorf("%w: difficulty_level must be one of easy, medium, hard", ErrValidation)
	}
	return nil
}

// CreateEntry validates and creates a knowledge base entry.
func (s *KnowledgeService) CreateEntry(ctx context.Context, input store.KnowledgeInput) (*models.KnowledgeEntry, error) {
	if err := validateKnowledgeFields(input.Category, input.Title, input.Content, input.DifficultyLevel); err != nil {
		return nil, err
	}
	if input.DifficultyLevel == "" {
		input.DifficultyLevel = models.DifficultyMedium
	}

	entry, err := s.store.CreateKnowledgeEntry(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("creating knowledge entry: %w", err)
	}
	return entry, nil
}

// GetEntry returns one knowledge base entry.
func (s *KnowledgeService) GetEntry(ctx context.Context, id int64) (*models.KnowledgeEntry, error) {
	entry, err := s.store.GetKnowledgeEntry(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading knowledge entry %d: %w", id, err)
	}
	return entry, nil
}

// ListEntries returns knowledge base entries matching the filter.
func (s *KnowledgeService) ListEntries(ctx context.Context, filter store.KnowledgeFilter) ([]models.KnowledgeEntry, error) {
	entries, err := s.store.ListKnowledgeEntries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing knowledge entries: %w", err)
	}
	return entries, nil
}

// UpdateEntry validates and applies a partial update.
func (s *KnowledgeService) UpdateEntry(ctx context.Context, id int64, input store.KnowledgeUpdateInput) (*models.KnowledgeEntry, error) {
	if input.Category != nil && len(*input.Category) < 2 {
		return nil, fmt.Errorf("%w: category must be at least 2 characters", ErrValidation)
	}
	if input.Title != nil && len(*input.Title) < 5 {
		return nil, fmt.Errorf("%w: title must be at least 5 characters", ErrValidation)
	}
	if input.Content != nil && len(*input.Content) < 20 {
		return nil, fmt.Errorf("%w: content must be at least 20 characters", ErrValidation)
	}
	if input.DifficultyLevel != nil && !models.ValidDifficulty(*input.DifficultyLevel) {
		return nil, fmt.Errorf("%w: difficulty_level must be one of easy, medium, hard", ErrValidation)
	}

	entry, err := s.store.UpdateKnowledgeEntry(ctx, id, input)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if errors.Is(err, store.ErrNoFields) {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("updating knowledge entry %d: %w", id, err)
	}
	return entry, nil
}

// DeleteEntry removes a knowledge base entry.
func (s *KnowledgeService) DeleteEntry(ctx context.Context, id int64) error {
	err := s.store.DeleteKnowledgeEntry(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting knowledge entry %d: %w", id, err)
	}
	return nil
}

// Categories returns the distinct categories present in the knowledge base.
func (s *KnowledgeService) Categories(ctx context.Context) ([]string, error) {
	return s.store.KnowledgeCategories(ctx)
}

// EquipmentTypes returns the distinct equipment types present in the
// knowledge base.
func (s *KnowledgeService) EquipmentTypes(ctx context.Context) ([]string, error) {
	return s.store.KnowledgeEquipmentTypes(ctx)
}

// Search runs the catalog search over the knowledge base.
func (s *KnowledgeService) Search(ctx context.Context, query string, filter store.KnowledgeFilter) (*search.Result, error) {
	result, err := s.engine.Search(ctx, query, filter)
	if errors.Is(err, search.ErrInvalidQuery) {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	return result, err
}

// Chat answers a free-text message: extract keywords, run the chat-path
// search, and build the scripted reply.
func (s *KnowledgeService) Chat(ctx context.Context, message string) (*chat.Response, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}

	keywords := search.ExtractKeywords(message)
	results, err := s.engine.SearchForChat(ctx, message, keywords)
	if err != nil {
		return nil, err
	}

	resp := chat.Respond(message, results, keywords)
	return &resp, nil
}
