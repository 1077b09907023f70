package routes

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/meridian-pay/meridian_pay/internal/partner"
)

// RegisterCardRoutes wires card lifecycle endpoints straight onto the partner
// adapter; cards carry no local state worth a repository.
func RegisterCardRoutes(r fiber.Router, adapter *partner.Adapter) {
	h := cardHandler{adapter: adapter}
	r.Post("/cards/virtual", h.createVirtual)
	r.Post("/cards/physical", h.createPhysical)
	r.Get("/cards/:cardId", h.get)
	r.Put("/cards/:cardId/activate", h.activate)
	r.Put("/cards/:cardId/status", h.setStatus)
	r.Put("/cards/:cardId/pin", h.setPIN)
	r.Put("/cards/:cardId/pin/unblock", h.unblockPIN)
	r.Put("/cards/:cardId/limits", h.setLimits)
	r.Put("/cards/:cardId/options", h.setOptions)
	r.Post("/cards/:cardId/3ds", h.register3DS)
}

type cardHandler struct {
	adapter *partner.Adapter
}

type cardRequest struct {
	PartnerUserID    int64  `json:"partner_user_id"`
	PartnerWalletID  int64  `json:"partner_wallet_id"`
	HolderEmail      string `json:"holder_email"`
	PIN              string `json:"pin"`
	LimitATMWeek     int64  `json:"limit_atm_week"`
	LimitPaymentWeek int64  `json:"limit_payment_week"`

	DeliveryCivility  string `json:"delivery_civility"`
	DeliveryFirstName string `json:"delivery_first_name"`
	DeliveryLastName  string `json:"delivery_last_name"`
	DeliveryStreet    string `json:"delivery_street"`
	DeliveryCity      string `json:"delivery_city"`
	DeliveryPostcode  string `json:"delivery_postcode"`
	DeliveryCountry   string `json:"delivery_country"`
}

func (req cardRequest) toPartner() partner.CardRequest {
	return partner.CardRequest{
		PartnerUserID:    req.PartnerUserID,
		PartnerWalletID:  req.PartnerWalletID,
		HolderEmail:      req.HolderEmail,
		PIN:              req.PIN,
		LimitATMWeek:     req.LimitATMWeek,
		LimitPaymentWeek: req.LimitPaymentWeek,
		Delivery: partner.DeliveryAddress{
			Civility:  partner.Civility(req.DeliveryCivility),
			FirstName: req.DeliveryFirstName,
			LastName:  req.DeliveryLastName,
			Street:    req.DeliveryStreet,
			City:      req.DeliveryCity,
			Postcode:  req.DeliveryPostcode,
			Country:   req.DeliveryCountry,
		},
	}
}

type cardResponse struct {
	PartnerCardID int64  `json:"partner_card_id"`
	PublicToken   string `json:"public_token"`
	Status        string `json:"status"`
	Activation    string `json:"activation"`
	MaskedPAN     string `json:"masked_pan"`
}

func toCardResponse(card partner.Card) cardResponse {
	return cardResponse{
		PartnerCardID: card.ID,
		PublicToken:   card.PublicToken,
		Status:        string(card.Status),
		Activation:    string(card.Activation),
		MaskedPAN:     card.MaskedPAN,
	}
}

func cardID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("cardId"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid card id")
	}
	return id, nil
}

func partnerStatus(err error) error {
	return fiber.NewError(partner.HTTPStatus(err), err.Error())
}

func (h cardHandler) createVirtual(c *fiber.Ctx) error {
	var req cardRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	card, err := h.adapter.CreateVirtualCard(c.UserContext(), req.toPartner())
	if err != nil {
		return partnerStatus(err)
	}
	return c.Status(http.StatusCreated).JSON(toCardResponse(card))
}

func (h cardHandler) createPhysical(c *fiber.Ctx) error {
	var req cardRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	card, err := h.adapter.CreatePhysicalCard(c.UserContext(), req.toPartner())
	if err != nil {
		return partnerStatus(err)
	}
	return c.Status(http.StatusCreated).JSON(toCardResponse(card))
}

func (h cardHandler) get(c *fiber.Ctx) error {
	id, err := cardID(c)
	if err != nil {
		return err
	}
	card, err := h.adapter.GetCard(c.UserContext(), id)
	if err != nil {
		return partnerStatus(err)
	}
	return c.JSON(toCardResponse(card))
}

func (h cardHandler) activate(c *fiber.Ctx) error {
	id, err := cardID(c)
	if err != nil {
		return err
	}
	card, err := h.adapter.ActivateCard(c.UserContext(), id)
	if err != nil {
		return partnerStatus(err)
	}
	return c.JSON(toCardResponse(card))
}

func (h cardHandler) setStatus(c *fiber.Ctx) error {
	id, err := cardID(c)
	if err != nil {
		return err
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	card, err := h.adapter.SetCardStatus(c.UserContext(), id, partner.CardStatus(req.Status))
	if err != nil {
		return partnerStatus(err)
	}
	return c.JSON(toCardResponse(card))
}

func (h cardHandler) setPIN(c *fiber.Ctx) error {
	id, err := cardID(c)
	if err != nil {
		return err
	}
	var req struct {
		NewPIN     string `json:"new_pin"`
		ConfirmPIN string `json:"confirm_pin"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	card, err := h.adapter.SetCardPIN(c.UserContext(), id, req.NewPIN, req.ConfirmPIN)
	if err != nil {
		return partnerStatus(err)
	}
	return c.JSON(toCardResponse(card))
}

func (h cardHandler) unblockPIN(c *fiber.Ctx) error {
	id, err := cardID(c)
	if err != nil {
		return err
	}
	card, err := h.adapter.UnblockCardPIN(c.UserContext(), id)
	if err != nil {
		return partnerStatus(err)
	}
	return c.JSON(toCardResponse(card))
}

func (h cardHandler) setLimits(c *fiber.Ctx) error {
	id, err := cardID(c)
	if err != nil {
		return err
	}
	var req struct {
		ATMWeek     int64 `json:"atm_week"`
		PaymentWeek int64 `json:"payment_week"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	card, err := h.adapter.UpdateCardLimits(c.UserContext(), id, partner.CardLimits{ATMWeek: req.ATMWeek, PaymentWeek: req.PaymentWeek})
	if err != nil {
		return partnerStatus(err)
	}
	return c.JSON(toCardResponse(card))
}

func (h cardHandler) setOptions(c *fiber.Ctx) error {
	id, err := cardID(c)
	if err != nil {
		return err
	}
	var req struct {
		Foreign bool `json:"foreign"`
		Online  bool `json:"online"`
		ATM     bool `json:"atm"`
		NFC     bool `json:"nfc"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	card, err := h.adapter.UpdateCardOptions(c.UserContext(), id, partner.CardOptions{Foreign: req.Foreign, Online: req.Online, ATM: req.ATM, NFC: req.NFC})
	if err != nil {
		return partnerStatus(err)
	}
	return c.JSON(toCardResponse(card))
}

func (h cardHandler) register3DS(c *fiber.Ctx) error {
	id, err := cardID(c)
	if err != nil {
		return err
	}
	var req struct {
		PartnerUserID int64 `json:"partner_user_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.adapter.Register3DSecure(c.UserContext(), req.PartnerUserID, id); err != nil {
		return partnerStatus(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
