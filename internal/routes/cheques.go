package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meridian-pay/meridian_pay/internal/cheque"
)

// RegisterChequeRoutes wires cheque remittance endpoints.
func RegisterChequeRoutes(r fiber.Router, h *cheque.Handler) {
	r.Post("/cheques", h.Submit)
	r.Get("/cheques/:depositId", h.Get)
}
