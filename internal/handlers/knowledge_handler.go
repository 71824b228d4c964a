// internal/handlers/knowledge_handler.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serviceops/maintdesk/internal/service"
	"github.com/serviceops/maintdesk/internal/store"
)

// KnowledgeHandler serves the knowledge base, search, and chatbot routes.
type KnowledgeHandler struct {
	knowledge *service.KnowledgeService
}

// NewKnowledgeHandler creates a new knowledge handler.
func NewKnowledgeHandler(knowledge *service.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{knowledge: knowledge}
}

func knowledgeFilter(c *fiber.Ctx) store.KnowledgeFilter {
	return store.KnowledgeFilter{
		Category:        c.Query("category"),
		EquipmentType:   c.Query("equipment_type"),
		DifficultyLevel: c.Query("difficulty_level"),
		Limit:           c.QueryInt("limit", 0),
	}
}

// Create handles POST /api/knowledge.
func (h *KnowledgeHandler) Create(c *fiber.Ctx) error {
	var input store.KnowledgeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	entry, err := h.knowledge.CreateEntry(c.Context(), input)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"entry": entry})
}

// Get handles GET /api/knowledge/:id.
func (h *KnowledgeHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	entry, err := h.knowledge.GetEntry(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"entry": entry})
}

// List handles GET /api/knowledge.
func (h *KnowledgeHandler) List(c *fiber.Ctx) error {
	entries, err := h.knowledge.ListEntries(c.Context(), knowledgeFilter(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"entries": entries, "total": len(entries)})
}

// Update handles PUT /api/knowledge/:id.
func (h *KnowledgeHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input store.KnowledgeUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	entry, err := h.knowledge.UpdateEntry(c.Context(), id, input)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"entry": entry})
}

// Delete handles DELETE /api/knowledge/:id.
func (h *KnowledgeHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.knowledge.DeleteEntry(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "entry deleted"})
}

// Search handles GET /api/knowledge/search?q=...
func (h *KnowledgeHandler) Search(c *fiber.Ctx) error {
	result, err := h.knowledge.Search(c.Context(), c.Query("q"), knowledgeFilter(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// Chat handles POST /api/knowledge/chat.
func (h *KnowledgeHandler) Chat(c *fiber.Ctx) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	resp, err := h.knowledge.Chat(c.Context(), req.Message)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// Categories handles GET /api/knowledge/meta/categories.
func (h *KnowledgeHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.knowledge.Categories(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// EquipmentTypes handles GET /api/knowledge/meta/equipment-types.
func (h *KnowledgeHandler) EquipmentTypes(c *fiber.Ctx) error {
	types, err := h.knowledge.EquipmentTypes(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"equipment_types": types})
}
