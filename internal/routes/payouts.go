package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meridian-pay/meridian_pay/internal/transfer"
)

// RegisterPayoutRoutes wires outbound transfer endpoints.
func RegisterPayoutRoutes(r fiber.Router, h *transfer.Handler) {
	r.Post("/beneficiaries", h.RegisterBeneficiary)
	r.Post("/payouts", h.Send)
	r.Get("/payouts/:payoutId", h.Get)
	r.Delete("/payouts/:payoutId", h.Cancel)
	r.Post("/fees", h.DebitFees)
}
