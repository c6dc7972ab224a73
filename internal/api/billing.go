package api

import (
	"carebook/internal/model"
	"carebook/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handler) ListPolicies(c *fiber.Ctx) error {
	policies, err := h.billing.ListPolicies(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"policies": policies})
}

func (h *Handler) CreatePolicy(c *fiber.Ctx) error {
	var policy model.InsurancePolicy
	if err := c.BodyParser(&policy); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := h.billing.CreatePolicy(c.Context(), policy)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Status(201).JSON(created)
}

func (h *Handler) UpdatePolicy(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid policy ID"})
	}

	var policy model.InsurancePolicy
	if err := c.BodyParser(&policy); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	policy.ID = id

	updated, err := h.billing.UpdatePolicy(c.Context(), policy)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeletePolicy(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid policy ID"})
	}

	if err := h.billing.DeletePolicy(c.Context(), id); err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) ListBills(c *fiber.Ctx) error {
	bills, err := h.billing.ListBills(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"bills": bills})
}

func (h *Handler) GetBill(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid bill ID"})
	}

	bill, err := h.billing.GetBill(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(bill)
}

func (h *Handler) CreateBill(c *fiber.Ctx) error {
	var bill model.Bill
	if err := c.BodyParser(&bill); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := h.billing.CreateBill(c.Context(), bill)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Status(201).JSON(created)
}

func (h *Handler) UpdateBill(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid bill ID"})
	}

	var bill model.Bill
	if err := c.BodyParser(&bill); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	bill.ID = id

	updated, err := h.billing.UpdateBill(c.Context(), bill)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteBill(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid bill ID"})
	}

	if err := h.billing.DeleteBill(c.Context(), id); err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// PayBill charges the bill amount through the payment processor.
func (h *Handler) PayBill(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid bill ID"})
	}

	bill, err := h.billing.PayBill(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(bill)
}

// MarkBillPaid records an out-of-band payment without charging.
func (h *Handler) MarkBillPaid(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid bill ID"})
	}

	bill, err := h.billing.MarkBillPaid(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(bill)
}

func (h *Handler) ListClaims(c *fiber.Ctx) error {
	claims, err := h.billing.ListClaims(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"claims": claims})
}

func (h *Handler) SubmitClaim(c *fiber.Ctx) error {
	var req struct {
		BillID   uuid.UUID `json:"bill_id"`
		PolicyID uuid.UUID `json:"policy_id"`
		Notes    string    `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.BillID == uuid.Nil || req.PolicyID == uuid.Nil {
		return c.Status(400).JSON(fiber.Map{"error": "Bill ID and policy ID are required"})
	}

	claim, err := h.billing.SubmitClaim(c.Context(), req.BillID, req.PolicyID, req.Notes)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Status(201).JSON(claim)
}

func (h *Handler) UpdateClaimStatus(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid claim ID"})
	}

	var req struct {
		Status        model.ClaimStatus      `json:"status"`
		AmountCovered util.Optional[float64] `json:"amount_covered"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	claim, err := h.billing.UpdateClaimStatus(c.Context(), id, req.Status, req.AmountCovered)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(claim)
}
