package account

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/meridian-pay/meridian_pay/internal/partner"
)

func partnerError(err error) error {
	return fiber.NewError(partner.HTTPStatus(err), err.Error())
}

// Handler exposes account HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type openRequest struct {
	Email              string `json:"email"`
	LegalName          string `json:"legal_name"`
	LegalForm          string `json:"legal_form"`
	LegalSector        string `json:"legal_sector"`
	RegistrationNumber string `json:"registration_number"`
	Street             string `json:"street"`
	Postcode           string `json:"postcode"`
	City               string `json:"city"`
	Country            string `json:"country"`
	Phone              string `json:"phone"`
	Currency           string `json:"currency"`
}

type accountResponse struct {
	ID              string `json:"id"`
	LegalName       string `json:"legal_name"`
	Email           string `json:"email"`
	PartnerUserID   int64  `json:"partner_user_id"`
	PartnerWalletID int64  `json:"partner_wallet_id"`
	IBAN            string `json:"iban"`
	BIC             string `json:"bic"`
	Currency        string `json:"currency"`
	Status          string `json:"status"`
}

func toResponse(a Account) accountResponse {
	return accountResponse{
		ID:              a.ID,
		LegalName:       a.LegalName,
		Email:           a.Email,
		PartnerUserID:   a.PartnerUserID,
		PartnerWalletID: a.PartnerWalletID,
		IBAN:            a.IBAN,
		BIC:             a.BIC,
		Currency:        a.Currency,
		Status:          a.Status,
	}
}

// Open provisions an account for a company.
func (h *Handler) Open(c *fiber.Ctx) error {
	var req openRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	account, err := h.service.Open(c.UserContext(), OpenInput{
		Company: partner.CompanyProfile{
			Email:              req.Email,
			LegalName:          req.LegalName,
			LegalForm:          partner.LegalForm(req.LegalForm),
			LegalSector:        req.LegalSector,
			RegistrationNumber: req.RegistrationNumber,
			Street:             req.Street,
			Postcode:           req.Postcode,
			City:               req.City,
			Country:            req.Country,
			Phone:              req.Phone,
		},
		Currency: req.Currency,
	})
	if err != nil {
		return partnerError(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(account))
}

type stakeholderRequest struct {
	Email                 string  `json:"email"`
	Civility              string  `json:"civility"`
	FirstName             string  `json:"first_name"`
	LastName              string  `json:"last_name"`
	BirthDate             string  `json:"birth_date"`
	BirthPlace            string  `json:"birth_place"`
	BirthCountry          string  `json:"birth_country"`
	Nationality           string  `json:"nationality"`
	Street                string  `json:"street"`
	Postcode              string  `json:"postcode"`
	City                  string  `json:"city"`
	Country               string  `json:"country"`
	Phone                 string  `json:"phone"`
	Director              bool    `json:"director"`
	EffectiveBeneficiary  bool    `json:"effective_beneficiary"`
	BeneficiaryPercentage float64 `json:"beneficiary_percentage"`
}

// AddStakeholder registers a person attached to the account's company record.
func (h *Handler) AddStakeholder(c *fiber.Ctx) error {
	var req stakeholderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
	}
	user, err := h.service.AddStakeholder(c.UserContext(), c.Params("accountId"), partner.UserProfile{
		Email:                 req.Email,
		Civility:              partner.Civility(req.Civility),
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		BirthDate:             birthDate,
		BirthPlace:            req.BirthPlace,
		BirthCountry:          req.BirthCountry,
		Nationality:           req.Nationality,
		Street:                req.Street,
		Postcode:              req.Postcode,
		City:                  req.City,
		Country:               req.Country,
		Phone:                 req.Phone,
		Director:              req.Director,
		EffectiveBeneficiary:  req.EffectiveBeneficiary,
		BeneficiaryPercentage: req.BeneficiaryPercentage,
	})
	if err != nil {
		return partnerError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"partner_user_id": user.ID,
		"email":           user.Email,
	})
}

type submitKYCRequest struct {
	Documents []struct {
		TypeID        int64  `json:"type_id"`
		Name          string `json:"name"`
		ContentBase64 string `json:"content_base64"`
	} `json:"documents"`
}

// SubmitKYC uploads supporting documents and requests a partner KYC review.
func (h *Handler) SubmitKYC(c *fiber.Ctx) error {
	var req submitKYCRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	documents := make([]DocumentInput, 0, len(req.Documents))
	for _, doc := range req.Documents {
		documents = append(documents, DocumentInput{
			TypeID:        doc.TypeID,
			Name:          doc.Name,
			ContentBase64: doc.ContentBase64,
		})
	}
	if err := h.service.SubmitKYC(c.UserContext(), c.Params("accountId"), documents); err != nil {
		return partnerError(err)
	}
	return c.SendStatus(http.StatusAccepted)
}

// Get returns account metadata.
func (h *Handler) Get(c *fiber.Ctx) error {
	account, err := h.service.Get(c.UserContext(), c.Params("accountId"))
	if err != nil {
		return fiber.NewError(http.StatusNotFound, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponse(account))
}

// Balance returns the partner-reported balance.
func (h *Handler) Balance(c *fiber.Ctx) error {
	balance, err := h.service.Balance(c.UserContext(), c.Params("accountId"))
	if err != nil {
		return partnerError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"account_id": balance.AccountID,
		"currency":   balance.Currency,
		"current":    balance.Current,
		"authorized": balance.Authorized,
		"timestamp":  balance.AsOf,
	})
}

// Close closes the account's wallet.
func (h *Handler) Close(c *fiber.Ctx) error {
	account, err := h.service.Close(c.UserContext(), c.Params("accountId"))
	if err != nil {
		return partnerError(err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(account))
}
