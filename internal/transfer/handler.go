package transfer

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/meridian-pay/meridian_pay/internal/partner"
)

func partnerError(err error) error {
	return fiber.NewError(partner.HTTPStatus(err), err.Error())
}

// Handler exposes payout HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a transfer HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type beneficiaryRequest struct {
	PartnerUserID int64  `json:"partner_user_id"`
	Name          string `json:"name"`
	IBAN          string `json:"iban"`
	BIC           string `json:"bic"`
}

// RegisterBeneficiary creates a credit-transfer creditor.
func (h *Handler) RegisterBeneficiary(c *fiber.Ctx) error {
	var req beneficiaryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	beneficiary, err := h.service.RegisterBeneficiary(c.UserContext(), req.PartnerUserID, req.Name, req.IBAN, req.BIC)
	if err != nil {
		return partnerError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"partner_beneficiary_id": beneficiary.ID,
		"name":                   beneficiary.Name,
		"iban":                   beneficiary.IBAN,
		"bic":                    beneficiary.BIC,
	})
}

type sendRequest struct {
	AccountID            string `json:"account_id"`
	PartnerWalletID      int64  `json:"partner_wallet_id"`
	PartnerBeneficiaryID int64  `json:"partner_beneficiary_id"`
	Amount               string `json:"amount"`
	Currency             string `json:"currency"`
	Label                string `json:"label"`
	ClientRef            string `json:"client_ref"`
}

type payoutResponse struct {
	ID              string `json:"id"`
	AccountID       string `json:"account_id"`
	PartnerPayoutID int64  `json:"partner_payout_id"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	Label           string `json:"label"`
	ClientRef       string `json:"client_ref"`
	Status          string `json:"status"`
}

func toResponse(p Payout) payoutResponse {
	return payoutResponse{
		ID:              p.ID,
		AccountID:       p.AccountID,
		PartnerPayoutID: p.PartnerPayoutID,
		Amount:          p.Amount.StringFixed(2),
		Currency:        p.Currency,
		Label:           p.Label,
		ClientRef:       p.ClientRef,
		Status:          string(p.Status),
	}
}

// Send orders an outbound credit transfer.
func (h *Handler) Send(c *fiber.Ctx) error {
	var req sendRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid amount")
	}

	payout, err := h.service.Send(c.UserContext(), SendInput{
		AccountID:            req.AccountID,
		PartnerWalletID:      req.PartnerWalletID,
		PartnerBeneficiaryID: req.PartnerBeneficiaryID,
		Amount:               amount,
		Currency:             req.Currency,
		Label:                req.Label,
		ClientRef:            req.ClientRef,
	})
	if err != nil {
		return partnerError(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(payout))
}

// Get returns a tracked payout.
func (h *Handler) Get(c *fiber.Ctx) error {
	payout, err := h.service.Get(c.UserContext(), c.Params("payoutId"))
	if err != nil {
		return fiber.NewError(http.StatusNotFound, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponse(payout))
}

// Cancel aborts a pending payout.
func (h *Handler) Cancel(c *fiber.Ctx) error {
	payout, err := h.service.Cancel(c.UserContext(), c.Params("payoutId"))
	if err != nil {
		return partnerError(err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(payout))
}

type feesRequest struct {
	PartnerWalletID int64  `json:"partner_wallet_id"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	InvoiceRef      string `json:"invoice_ref"`
}

// DebitFees collects invoice fees from a client wallet.
func (h *Handler) DebitFees(c *fiber.Ctx) error {
	var req feesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid amount")
	}

	result, err := h.service.DebitFees(c.UserContext(), req.PartnerWalletID, amount, req.Currency, req.InvoiceRef)
	if err != nil {
		return partnerError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"partner_transfer_id": result.ID,
		"amount":              result.Amount.StringFixed(2),
		"status":              string(result.Status),
		"invoice_ref":         result.Tag,
	})
}
