package cheque

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/meridian-pay/meridian_pay/internal/partner"
)

func partnerError(err error) error {
	return fiber.NewError(partner.HTTPStatus(err), err.Error())
}

// Handler exposes cheque deposit HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a cheque HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type submitRequest struct {
	AccountID       string `json:"account_id"`
	PartnerWalletID int64  `json:"partner_wallet_id"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	CMC7            string `json:"cmc7"`
	RLMCKey         string `json:"rlmc_key"`
	DrawerType      string `json:"drawer_type"`
	DrawerFirstName string `json:"drawer_first_name"`
	DrawerLastName  string `json:"drawer_last_name"`
	DrawerCompany   string `json:"drawer_company"`
}

type depositResponse struct {
	ID             string `json:"id"`
	AccountID      string `json:"account_id"`
	PartnerPayinID int64  `json:"partner_payin_id"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	Status         string `json:"status"`
	DrawerName     string `json:"drawer_name"`
}

func toResponse(d Deposit) depositResponse {
	return depositResponse{
		ID:             d.ID,
		AccountID:      d.AccountID,
		PartnerPayinID: d.PartnerPayinID,
		Amount:         d.Amount.StringFixed(2),
		Currency:       d.Currency,
		Status:         string(d.Status),
		DrawerName:     d.DrawerName,
	}
}

// Submit sends a cheque remittance for collection.
func (h *Handler) Submit(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid amount")
	}

	deposit, err := h.service.Submit(c.UserContext(), SubmitInput{
		AccountID:       req.AccountID,
		PartnerWalletID: req.PartnerWalletID,
		Amount:          amount,
		Currency:        req.Currency,
		CMC7:            req.CMC7,
		RLMCKey:         req.RLMCKey,
		DrawerType:      partner.DrawerType(req.DrawerType),
		DrawerFirstName: req.DrawerFirstName,
		DrawerLastName:  req.DrawerLastName,
		DrawerCompany:   req.DrawerCompany,
	})
	if err != nil {
		return partnerError(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(deposit))
}

// Get returns a tracked deposit.
func (h *Handler) Get(c *fiber.Ctx) error {
	deposit, err := h.service.Get(c.UserContext(), c.Params("depositId"))
	if err != nil {
		return fiber.NewError(http.StatusNotFound, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponse(deposit))
}
