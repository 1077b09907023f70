package routes

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/meridian-pay/meridian_pay/internal/partner"
)

// RegisterDirectDebitRoutes exposes SEPA direct-debit debtor management.
func RegisterDirectDebitRoutes(r fiber.Router, adapter *partner.Adapter) {
	h := directDebitHandler{adapter: adapter}
	r.Post("/direct-debits/debtors", h.createDebtor)
	r.Get("/direct-debits/debtors/:debtorId", h.getDebtor)
	r.Put("/direct-debits/debtors/:debtorId", h.updateDebtor)
	r.Put("/direct-debits/debtors/:debtorId/blacklist", h.blacklist)
}

type directDebitHandler struct {
	adapter *partner.Adapter
}

type mandateRequest struct {
	PartnerUserID          int64  `json:"partner_user_id"`
	Name                   string `json:"name"`
	Address                string `json:"address"`
	SepaCreditorIdentifier string `json:"sepa_creditor_identifier"`
	UniqueMandateReference string `json:"unique_mandate_reference"`
	Recurrent              bool   `json:"recurrent"`
}

func (req mandateRequest) toPartner() partner.DebtorMandate {
	return partner.DebtorMandate{
		PartnerUserID:          req.PartnerUserID,
		Name:                   req.Name,
		Address:                req.Address,
		SepaCreditorIdentifier: req.SepaCreditorIdentifier,
		UniqueMandateReference: req.UniqueMandateReference,
		Recurrent:              req.Recurrent,
	}
}

type debtorResponse struct {
	PartnerBeneficiaryID   int64    `json:"partner_beneficiary_id"`
	Name                   string   `json:"name"`
	SepaCreditorIdentifier string   `json:"sepa_creditor_identifier"`
	KnownMandateReferences []string `json:"known_mandate_references"`
}

func toDebtorResponse(b partner.Beneficiary) debtorResponse {
	return debtorResponse{
		PartnerBeneficiaryID:   b.ID,
		Name:                   b.Name,
		SepaCreditorIdentifier: b.SepaCreditorIdentifier,
		KnownMandateReferences: b.KnownMandateReferences,
	}
}

func debtorID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("debtorId"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid debtor id")
	}
	return id, nil
}

func (h directDebitHandler) createDebtor(c *fiber.Ctx) error {
	var req mandateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	debtor, err := h.adapter.CreateDirectDebitDebtor(c.UserContext(), req.toPartner())
	if err != nil {
		return partnerStatus(err)
	}
	return c.Status(http.StatusCreated).JSON(toDebtorResponse(debtor))
}

func (h directDebitHandler) getDebtor(c *fiber.Ctx) error {
	id, err := debtorID(c)
	if err != nil {
		return err
	}
	debtor, err := h.adapter.GetDirectDebitDebtor(c.UserContext(), id)
	if err != nil {
		return partnerStatus(err)
	}
	return c.JSON(toDebtorResponse(debtor))
}

func (h directDebitHandler) updateDebtor(c *fiber.Ctx) error {
	id, err := debtorID(c)
	if err != nil {
		return err
	}
	var req mandateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.adapter.UpdateDirectDebitDebtor(c.UserContext(), id, req.toPartner()); err != nil {
		return partnerStatus(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h directDebitHandler) blacklist(c *fiber.Ctx) error {
	id, err := debtorID(c)
	if err != nil {
		return err
	}
	if err := h.adapter.BlacklistDirectDebit(c.UserContext(), id); err != nil {
		return partnerStatus(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
