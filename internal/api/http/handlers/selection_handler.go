package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-roster/internal/api/dto"
	"github.com/spec-kit/staff-roster/internal/auth"
	"github.com/spec-kit/staff-roster/internal/roster"
)

// SelectionHandler exposes the per-session pending-action selections so
// thin clients can restore which modal or panel is open.
type SelectionHandler struct {
	registry *roster.SelectionRegistry
}

// NewSelectionHandler constructs handler.
func NewSelectionHandler(registry *roster.SelectionRegistry) *SelectionHandler {
	return &SelectionHandler{registry: registry}
}

// List handles GET /ui/selections.
func (h *SelectionHandler) List(c *fiber.Ctx) error {
	tracker, err := h.tracker(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tracker.Snapshot()})
}

// Open handles PUT /ui/selections/:kind.
func (h *SelectionHandler) Open(c *fiber.Ctx) error {
	tracker, err := h.tracker(c)
	if err != nil {
		return err
	}
	kind := roster.SelectionKind(c.Params("kind"))
	if !kind.Valid() {
		return fiber.NewError(http.StatusBadRequest, "unknown selection kind")
	}
	var req dto.SelectionOpenRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.MemberID == "" {
		return fiber.NewError(http.StatusBadRequest, "member_id required")
	}
	tracker.Open(kind, req.MemberID, req.DiscountID)
	sel, _ := tracker.Get(kind)
	return c.JSON(fiber.Map{"data": sel})
}

// Get handles GET /ui/selections/:kind.
func (h *SelectionHandler) Get(c *fiber.Ctx) error {
	tracker, err := h.tracker(c)
	if err != nil {
		return err
	}
	kind := roster.SelectionKind(c.Params("kind"))
	if !kind.Valid() {
		return fiber.NewError(http.StatusBadRequest, "unknown selection kind")
	}
	sel, ok := tracker.Get(kind)
	if !ok {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": sel})
}

// Close handles DELETE /ui/selections/:kind; closing clears the
// selection together with any transient error shown in its modal.
func (h *SelectionHandler) Close(c *fiber.Ctx) error {
	tracker, err := h.tracker(c)
	if err != nil {
		return err
	}
	kind := roster.SelectionKind(c.Params("kind"))
	if !kind.Valid() {
		return fiber.NewError(http.StatusBadRequest, "unknown selection kind")
	}
	tracker.Close(kind)
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "closed"}})
}

func (h *SelectionHandler) tracker(c *fiber.Ctx) (*roster.SelectionTracker, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	return h.registry.ForSession(principal.SessionID), nil
}
