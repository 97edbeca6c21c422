package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-roster/internal/api/dto"
	"github.com/spec-kit/staff-roster/internal/domain"
	"github.com/spec-kit/staff-roster/internal/roster"
)

// RosterHandler exposes the staff roster endpoints backing the
// management screen: list/form, history view, discount and commission
// actions, and the password-confirmed destructive operations.
type RosterHandler struct {
	manager *roster.Manager
}

// NewRosterHandler constructs handler.
func NewRosterHandler(manager *roster.Manager) *RosterHandler {
	return &RosterHandler{manager: manager}
}

// ListMembers handles GET /roster/members.
func (h *RosterHandler) ListMembers(c *fiber.Ctx) error {
	members := h.manager.Members()
	resp := make([]dto.MemberResponse, 0, len(members))
	for _, member := range members {
		resp = append(resp, memberResponse(member))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// GetMember handles GET /roster/members/:id.
func (h *RosterHandler) GetMember(c *fiber.Ctx) error {
	member, err := h.manager.MemberByID(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": memberResponse(member)})
}

// CreateMember handles POST /roster/members.
func (h *RosterHandler) CreateMember(c *fiber.Ctx) error {
	var req dto.MemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	member, err := h.manager.AddMember(c.UserContext(), memberInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": memberResponse(member)})
}

// UpdateMember handles PUT /roster/members/:id.
func (h *RosterHandler) UpdateMember(c *fiber.Ctx) error {
	var req dto.MemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	member, err := h.manager.UpdateMember(c.UserContext(), c.Params("id"), memberInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": memberResponse(member)})
}

// DeleteMember handles DELETE /roster/members/:id. The body is the
// delete-confirmation payload carrying the admin password.
func (h *RosterHandler) DeleteMember(c *fiber.Ctx) error {
	var req dto.PasswordConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.manager.DeleteMember(c.UserContext(), c.Params("id"), req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// GetHistory handles GET /roster/members/:id/history.
func (h *RosterHandler) GetHistory(c *fiber.Ctx) error {
	member, err := h.manager.MemberByID(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": historyResponse(member)})
}

// ClearHistory handles POST /roster/members/:id/history/clear. The body
// is the clear-confirmation payload carrying the admin password.
func (h *RosterHandler) ClearHistory(c *fiber.Ctx) error {
	var req dto.PasswordConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	member, err := h.manager.ClearHistory(c.UserContext(), c.Params("id"), req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": historyResponse(member)})
}

// AddDiscount handles POST /roster/members/:id/discounts.
func (h *RosterHandler) AddDiscount(c *fiber.Ctx) error {
	var req dto.DiscountCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	discount, err := h.manager.AddDiscount(c.UserContext(), c.Params("id"), req.Amount, req.Reason)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": discountResponse(*discount)})
}

// CancelDiscount handles POST /roster/members/:id/discounts/:discountId/cancel.
func (h *RosterHandler) CancelDiscount(c *fiber.Ctx) error {
	var req dto.DiscountCancelRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	discount, err := h.manager.CancelDiscount(c.UserContext(), c.Params("id"), c.Params("discountId"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": discountResponse(*discount)})
}

// RecordSale handles POST /roster/members/:id/sales.
func (h *RosterHandler) RecordSale(c *fiber.Ctx) error {
	var req dto.SaleCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	var soldAt = timeOrZero(req.SoldAt)
	sale, err := h.manager.RecordSale(c.UserContext(), c.Params("id"), req.Amount, soldAt)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": saleResponse(*sale)})
}

// SetCommission handles POST /roster/members/:id/sales/:saleId/commission.
func (h *RosterHandler) SetCommission(c *fiber.Ctx) error {
	var req dto.CommissionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	sale, err := h.manager.SetCommissionPaid(c.UserContext(), c.Params("id"), c.Params("saleId"), req.Paid)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": saleResponse(*sale)})
}

// UsedCodes handles GET /roster/codes. The form consumes this set for
// client-side code-uniqueness validation; exclude drops one member's own
// code in edit mode.
func (h *RosterHandler) UsedCodes(c *fiber.Ctx) error {
	codes := h.manager.UsedCodes(c.Query("exclude"))
	return c.JSON(fiber.Map{"data": codes})
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func memberInput(req dto.MemberRequest) roster.MemberInput {
	return roster.MemberInput{
		Name:  req.Name,
		Code:  req.Code,
		Email: req.Email,
		Phone: req.Phone,
		Role:  req.Role,
	}
}

func memberResponse(member *domain.StaffMember) dto.MemberResponse {
	return dto.MemberResponse{
		ID:             member.ID,
		Name:           member.Name,
		Code:           member.Code,
		Email:          member.Email,
		Phone:          member.Phone,
		Role:           member.Role,
		SalesCount:     len(member.Sales),
		DiscountsCount: len(member.Discounts),
		CreatedAt:      member.CreatedAt,
		UpdatedAt:      member.UpdatedAt,
	}
}

func historyResponse(member *domain.StaffMember) dto.HistoryResponse {
	sales := make([]dto.SaleResponse, 0, len(member.Sales))
	for _, sale := range member.Sales {
		sales = append(sales, saleResponse(sale))
	}
	discounts := make([]dto.DiscountResponse, 0, len(member.Discounts))
	for _, discount := range member.Discounts {
		discounts = append(discounts, discountResponse(discount))
	}
	return dto.HistoryResponse{MemberID: member.ID, Sales: sales, Discounts: discounts}
}

func saleResponse(sale domain.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:               sale.ID,
		Amount:           sale.Amount,
		SoldAt:           sale.SoldAt,
		CommissionPaid:   sale.CommissionPaid,
		CommissionPaidAt: sale.CommissionPaidAt,
	}
}

func discountResponse(discount domain.Discount) dto.DiscountResponse {
	return dto.DiscountResponse{
		ID:                 discount.ID,
		Date:               discount.Date,
		Amount:             discount.Amount,
		Reason:             discount.Reason,
		Status:             discount.Status,
		CancellationReason: discount.CancellationReason,
	}
}
