package cheque

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meridian-pay/meridian_pay/internal/notification"
	"github.com/meridian-pay/meridian_pay/internal/partner"
)

// Gateway is the slice of the partner adapter the cheque service needs.
type Gateway interface {
	CreateChequePayin(ctx context.Context, d partner.ChequeDeposit) (partner.Payin, error)
}

// Service coordinates cheque remittances against the partner.
type Service struct {
	repo     Repository
	gateway  Gateway
	notifier notification.Notifier
}

// NewService builds a cheque service instance.
func NewService(repo Repository, gateway Gateway, notifier notification.Notifier) *Service {
	return &Service{repo: repo, gateway: gateway, notifier: notifier}
}

// SubmitInput captures a cheque remittance request.
type SubmitInput struct {
	AccountID       string
	PartnerWalletID int64
	Amount          decimal.Decimal
	Currency        string
	CMC7            string
	RLMCKey         string
	DrawerType      partner.DrawerType
	DrawerFirstName string
	DrawerLastName  string
	DrawerCompany   string
}

// Submit sends the cheque for collection and records the resulting deposit.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (Deposit, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return Deposit{}, fmt.Errorf("amount must be positive")
	}

	currency := input.Currency
	if currency == "" {
		currency = "EUR"
	}

	payin, err := s.gateway.CreateChequePayin(ctx, partner.ChequeDeposit{
		PartnerWalletID: input.PartnerWalletID,
		Amount:          input.Amount,
		Currency:        currency,
		CMC7:            input.CMC7,
		RLMCKey:         input.RLMCKey,
		DrawerType:      input.DrawerType,
		DrawerFirstName: input.DrawerFirstName,
		DrawerLastName:  input.DrawerLastName,
		DrawerCompany:   input.DrawerCompany,
	})
	if err != nil {
		return Deposit{}, err
	}

	status := partner.DepositReceived
	if payin.Cheque != nil {
		status = payin.Cheque.Status
	}

	now := time.Now().UTC()
	deposit := Deposit{
		ID:              uuid.New().String(),
		AccountID:       input.AccountID,
		PartnerPayinID:  payin.ID,
		PartnerWalletID: input.PartnerWalletID,
		CMC7:            input.CMC7,
		RLMCKey:         input.RLMCKey,
		Amount:          input.Amount,
		Currency:        currency,
		Status:          status,
		DrawerName:      drawerName(input),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, deposit); err != nil {
		return Deposit{}, err
	}

	return deposit, nil
}

func drawerName(input SubmitInput) string {
	if input.DrawerType == partner.DrawerPerson {
		return input.DrawerFirstName + " " + input.DrawerLastName
	}
	return input.DrawerCompany
}

// Get retrieves a deposit.
func (s *Service) Get(ctx context.Context, id string) (Deposit, error) {
	return s.repo.Get(ctx, id)
}

// ApplyPayinUpdate folds a partner cheque payin webhook into the tracked
// deposit. Rejections emit a notification; unknown payins are ignored since
// the partner also pushes payins this service never initiated.
func (s *Service) ApplyPayinUpdate(ctx context.Context, payin partner.Payin) error {
	if payin.Cheque == nil {
		return nil
	}

	deposit, err := s.repo.GetByPartnerPayinID(ctx, payin.ID)
	if err != nil {
		return nil
	}
	if deposit.Status == payin.Cheque.Status {
		return nil
	}

	if err := s.repo.UpdateStatus(ctx, deposit.ID, payin.Cheque.Status); err != nil {
		return err
	}

	if payin.Cheque.Status == partner.DepositRejected && s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindChequeRejected,
			Destination: deposit.AccountID,
			Body:        fmt.Sprintf("cheque deposit %s for %s %s was rejected", deposit.ID, deposit.Amount.StringFixed(2), deposit.Currency),
		})
	}

	return nil
}
