package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meridian-pay/meridian_pay/internal/account"
)

// RegisterAccountRoutes wires account lifecycle endpoints.
func RegisterAccountRoutes(r fiber.Router, h *account.Handler) {
	r.Post("/accounts", h.Open)
	r.Post("/accounts/:accountId/stakeholders", h.AddStakeholder)
	r.Post("/accounts/:accountId/kyc", h.SubmitKYC)
	r.Get("/accounts/:accountId", h.Get)
	r.Get("/accounts/:accountId/balance", h.Balance)
	r.Delete("/accounts/:accountId", h.Close)
}
