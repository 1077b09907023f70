package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-pay/meridian_pay/internal/partner"
)

const (
	statusActive = "active"
	statusClosed = "closed"
)

// Gateway is the slice of the partner adapter the account service needs.
type Gateway interface {
	CreateCompany(ctx context.Context, company partner.CompanyProfile) (partner.User, error)
	CreateUser(ctx context.Context, profile partner.UserProfile, company partner.CompanyProfile) (partner.User, error)
	CreateWallet(ctx context.Context, partnerUserID int64, currency string) (partner.Wallet, error)
	CloseWallet(ctx context.Context, partnerWalletID int64) (partner.Wallet, error)
	GetBalance(ctx context.Context, partnerWalletID int64) (partner.Balance, error)
	CreateDocument(ctx context.Context, partnerUserID, documentTypeID int64, name, contentBase64 string) (partner.Document, error)
	CreateKYCReview(ctx context.Context, partnerUserID int64) (partner.User, error)
}

// Service coordinates account provisioning against the partner.
type Service struct {
	repo    Repository
	gateway Gateway
}

// NewService builds an account service instance.
func NewService(repo Repository, gateway Gateway) *Service {
	return &Service{repo: repo, gateway: gateway}
}

// OpenInput captures data required to open an account.
type OpenInput struct {
	Company  partner.CompanyProfile
	Currency string
}

// Open registers the company at the partner, provisions its payment wallet
// and persists the linkage. The partner calls are sequential; a wallet is
// only requested once the company record exists.
func (s *Service) Open(ctx context.Context, input OpenInput) (Account, error) {
	if input.Company.Email == "" {
		return Account{}, fmt.Errorf("company email is required")
	}

	currency := input.Currency
	if currency == "" {
		currency = "EUR"
	}

	user, err := s.gateway.CreateCompany(ctx, input.Company)
	if err != nil {
		return Account{}, err
	}

	wallet, err := s.gateway.CreateWallet(ctx, user.ID, currency)
	if err != nil {
		return Account{}, err
	}

	account := Account{
		ID:              uuid.New().String(),
		LegalName:       input.Company.LegalName,
		Email:           input.Company.Email,
		PartnerUserID:   user.ID,
		PartnerWalletID: wallet.ID,
		IBAN:            wallet.IBAN,
		BIC:             wallet.BIC,
		Currency:        currency,
		Status:          statusActive,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return Account{}, err
	}

	return account, nil
}

// AddStakeholder registers a person attached to the account's company record.
func (s *Service) AddStakeholder(ctx context.Context, accountID string, profile partner.UserProfile) (partner.User, error) {
	account, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return partner.User{}, err
	}
	profile.ParentPartnerID = account.PartnerUserID
	return s.gateway.CreateUser(ctx, profile, partner.CompanyProfile{})
}

// DocumentInput is one KYC supporting document to upload.
type DocumentInput struct {
	TypeID        int64
	Name          string
	ContentBase64 string
}

// SubmitKYC uploads the supporting documents and then asks the partner to
// review the account's KYC file.
func (s *Service) SubmitKYC(ctx context.Context, accountID string, documents []DocumentInput) error {
	account, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return err
	}
	for _, doc := range documents {
		if _, err := s.gateway.CreateDocument(ctx, account.PartnerUserID, doc.TypeID, doc.Name, doc.ContentBase64); err != nil {
			return err
		}
	}
	_, err = s.gateway.CreateKYCReview(ctx, account.PartnerUserID)
	return err
}

// Get retrieves account metadata.
func (s *Service) Get(ctx context.Context, id string) (Account, error) {
	return s.repo.Get(ctx, id)
}

// GetByPartnerWalletID resolves the account owning a partner wallet.
func (s *Service) GetByPartnerWalletID(ctx context.Context, partnerWalletID int64) (Account, error) {
	return s.repo.GetByPartnerWalletID(ctx, partnerWalletID)
}

// Balance returns the partner-reported balance for the account.
func (s *Service) Balance(ctx context.Context, id string) (Balance, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return Balance{}, err
	}
	balance, err := s.gateway.GetBalance(ctx, account.PartnerWalletID)
	if err != nil {
		return Balance{}, err
	}
	return Balance{
		AccountID:  account.ID,
		Currency:   balance.Currency,
		Current:    balance.Current,
		Authorized: balance.Authorized,
		AsOf:       time.Now().UTC(),
	}, nil
}

// Close closes the partner wallet and marks the account closed.
func (s *Service) Close(ctx context.Context, id string) (Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return Account{}, err
	}
	if account.Status == statusClosed {
		return account, nil
	}
	if _, err := s.gateway.CloseWallet(ctx, account.PartnerWalletID); err != nil {
		return Account{}, err
	}
	if err := s.repo.UpdateStatus(ctx, account.ID, statusClosed); err != nil {
		return Account{}, err
	}
	account.Status = statusClosed
	return account, nil
}
