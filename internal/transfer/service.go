package transfer

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meridian-pay/meridian_pay/internal/notification"
	"github.com/meridian-pay/meridian_pay/internal/partner"
)

// Gateway is the slice of the partner adapter the transfer service needs.
type Gateway interface {
	CreateBeneficiary(ctx context.Context, partnerUserID int64, name, iban, bic string) (partner.Beneficiary, error)
	CreatePayout(ctx context.Context, req partner.PayoutRequest) (partner.Payout, error)
	CancelPayout(ctx context.Context, payoutID int64) (partner.Payout, error)
	DebitInvoiceFees(ctx context.Context, clientWalletID int64, amount decimal.Decimal, currency, invoiceRef string) (partner.Transfer, error)
	FindTransfers(ctx context.Context, query url.Values) ([]partner.Transfer, error)
}

// Service coordinates outbound transfers against the partner.
type Service struct {
	repo     Repository
	gateway  Gateway
	notifier notification.Notifier
}

// NewService builds a transfer service instance.
func NewService(repo Repository, gateway Gateway, notifier notification.Notifier) *Service {
	return &Service{repo: repo, gateway: gateway, notifier: notifier}
}

// RegisterBeneficiary creates a credit-transfer creditor for the account's
// partner user. The gateway rejects IBANs outside the SEPA zone before any
// network traffic.
func (s *Service) RegisterBeneficiary(ctx context.Context, partnerUserID int64, name, iban, bic string) (partner.Beneficiary, error) {
	return s.gateway.CreateBeneficiary(ctx, partnerUserID, name, iban, bic)
}

// SendInput captures an outbound credit transfer order.
type SendInput struct {
	AccountID            string
	PartnerWalletID      int64
	PartnerBeneficiaryID int64
	Amount               decimal.Decimal
	Currency             string
	Label                string
	ClientRef            string
}

// Send orders the payout at the partner and records it. The client reference
// doubles as the deduplication key; callers retrying a failed order reuse it.
func (s *Service) Send(ctx context.Context, input SendInput) (Payout, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return Payout{}, fmt.Errorf("amount must be positive")
	}
	if input.ClientRef == "" {
		input.ClientRef = uuid.NewString()
	}

	currency := input.Currency
	if currency == "" {
		currency = "EUR"
	}

	req := partner.PayoutRequest{
		PartnerWalletID:      input.PartnerWalletID,
		PartnerBeneficiaryID: input.PartnerBeneficiaryID,
		Amount:               input.Amount,
		Currency:             currency,
		ClientRef:            input.ClientRef,
	}
	if input.Label != "" {
		req.Label = &input.Label
	}

	created, err := s.gateway.CreatePayout(ctx, req)
	if err != nil {
		return Payout{}, err
	}

	now := time.Now().UTC()
	payout := Payout{
		ID:                   uuid.New().String(),
		AccountID:            input.AccountID,
		PartnerPayoutID:      created.ID,
		PartnerWalletID:      input.PartnerWalletID,
		PartnerBeneficiaryID: input.PartnerBeneficiaryID,
		Amount:               input.Amount,
		Currency:             currency,
		Label:                input.Label,
		ClientRef:            input.ClientRef,
		Status:               created.Status,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repo.Create(ctx, payout); err != nil {
		return Payout{}, err
	}

	return payout, nil
}

// Cancel aborts a pending payout at the partner and records the transition.
func (s *Service) Cancel(ctx context.Context, id string) (Payout, error) {
	payout, err := s.repo.Get(ctx, id)
	if err != nil {
		return Payout{}, err
	}

	canceled, err := s.gateway.CancelPayout(ctx, payout.PartnerPayoutID)
	if err != nil {
		return Payout{}, err
	}

	if err := s.repo.UpdateStatus(ctx, payout.ID, canceled.Status); err != nil {
		return Payout{}, err
	}
	payout.Status = canceled.Status
	return payout, nil
}

// Get retrieves a payout record.
func (s *Service) Get(ctx context.Context, id string) (Payout, error) {
	return s.repo.Get(ctx, id)
}

// DebitFees collects an invoice's fees from the client wallet.
func (s *Service) DebitFees(ctx context.Context, partnerWalletID int64, amount decimal.Decimal, currency, invoiceRef string) (partner.Transfer, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return partner.Transfer{}, fmt.Errorf("amount must be positive")
	}
	if invoiceRef == "" {
		return partner.Transfer{}, fmt.Errorf("invoice reference is required")
	}
	return s.gateway.DebitInvoiceFees(ctx, partnerWalletID, amount, currency, invoiceRef)
}

// FindFeeTransfers lists fee transfers reconciled by invoice tag.
func (s *Service) FindFeeTransfers(ctx context.Context, partnerWalletID int64) ([]partner.Transfer, error) {
	query := url.Values{}
	query.Set("walletId", fmt.Sprint(partnerWalletID))
	return s.gateway.FindTransfers(ctx, query)
}

// ApplyPayoutUpdate folds a partner payout webhook into the tracked record.
func (s *Service) ApplyPayoutUpdate(ctx context.Context, update partner.Payout) error {
	payout, err := s.repo.GetByPartnerPayoutID(ctx, update.ID)
	if err != nil {
		return nil
	}
	if payout.Status == update.Status {
		return nil
	}
	return s.repo.UpdateStatus(ctx, payout.ID, update.Status)
}

// ApplyRefund handles a payout refund webhook: the transfer came back, so the
// payout is marked canceled and the account notified.
func (s *Service) ApplyRefund(ctx context.Context, refund partner.PayoutRefund) error {
	payout, err := s.repo.GetByPartnerPayoutID(ctx, refund.PayoutID)
	if err != nil {
		return nil
	}

	if err := s.repo.UpdateStatus(ctx, payout.ID, partner.TransferCanceled); err != nil {
		return err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindPayoutRefunded,
			Destination: payout.AccountID,
			Body:        fmt.Sprintf("payout %s for %s %s was refunded", payout.ID, payout.Amount.StringFixed(2), payout.Currency),
		})
	}

	return nil
}
