package cheque

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meridian-pay/meridian_pay/internal/notification"
	"github.com/meridian-pay/meridian_pay/internal/partner"
)

type stubGateway struct {
	submitted []partner.ChequeDeposit
}

func (g *stubGateway) CreateChequePayin(_ context.Context, d partner.ChequeDeposit) (partner.Payin, error) {
	g.submitted = append(g.submitted, d)
	return partner.Payin{
		ID:       501,
		WalletID: d.PartnerWalletID,
		Method:   partner.PayinCheque,
		Amount:   d.Amount,
		Status:   partner.TransferPending,
		Cheque: &partner.ChequeDetails{
			CMC7:    d.CMC7,
			RLMCKey: d.RLMCKey,
			Status:  partner.DepositReceived,
		},
	}, nil
}

type recordingNotifier struct {
	messages []notification.Message
}

func (n *recordingNotifier) Send(_ context.Context, message notification.Message) error {
	n.messages = append(n.messages, message)
	return nil
}

func TestSubmitDeposit(t *testing.T) {
	gateway := &stubGateway{}
	svc := NewService(NewMemoryRepository(), gateway, nil)
	ctx := context.Background()

	deposit, err := svc.Submit(ctx, SubmitInput{
		AccountID:       uuid.New().String(),
		PartnerWalletID: 77,
		Amount:          decimal.NewFromInt(250),
		CMC7:            "1234567890123456789012345678901",
		RLMCKey:         "45",
		DrawerType:      partner.DrawerCompany,
		DrawerCompany:   "ACME SARL",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if deposit.PartnerPayinID != 501 || deposit.Status != partner.DepositReceived {
		t.Fatalf("unexpected deposit %+v", deposit)
	}
	if deposit.Currency != "EUR" {
		t.Fatalf("currency should default to EUR, got %s", deposit.Currency)
	}
	if deposit.DrawerName != "ACME SARL" {
		t.Fatalf("unexpected drawer %q", deposit.DrawerName)
	}
	if len(gateway.submitted) != 1 || gateway.submitted[0].CMC7 != deposit.CMC7 {
		t.Fatalf("the cheque line should travel unchanged to the partner")
	}
}

func TestSubmitRejectsNonPositiveAmount(t *testing.T) {
	svc := NewService(NewMemoryRepository(), &stubGateway{}, nil)
	_, err := svc.Submit(context.Background(), SubmitInput{Amount: decimal.Zero})
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestApplyPayinUpdate(t *testing.T) {
	gateway := &stubGateway{}
	notifier := &recordingNotifier{}
	svc := NewService(NewMemoryRepository(), gateway, notifier)
	ctx := context.Background()

	deposit, err := svc.Submit(ctx, SubmitInput{
		AccountID:       uuid.New().String(),
		PartnerWalletID: 77,
		Amount:          decimal.NewFromInt(250),
		CMC7:            "1234567890123456789012345678901",
		DrawerType:      partner.DrawerCompany,
		DrawerCompany:   "ACME SARL",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	update := partner.Payin{
		ID:     deposit.PartnerPayinID,
		Method: partner.PayinCheque,
		Cheque: &partner.ChequeDetails{Status: partner.DepositRejected},
	}
	if err := svc.ApplyPayinUpdate(ctx, update); err != nil {
		t.Fatalf("apply update: %v", err)
	}

	stored, err := svc.Get(ctx, deposit.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != partner.DepositRejected {
		t.Fatalf("status should transition, got %s", stored.Status)
	}
	if len(notifier.messages) != 1 || notifier.messages[0].Kind != notification.KindChequeRejected {
		t.Fatalf("a rejection should notify, got %v", notifier.messages)
	}

	// The same webhook replayed must not notify twice.
	if err := svc.ApplyPayinUpdate(ctx, update); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("replayed webhook should be a no-op, got %d messages", len(notifier.messages))
	}
}

func TestApplyPayinUpdateIgnoresUnknownPayin(t *testing.T) {
	svc := NewService(NewMemoryRepository(), &stubGateway{}, &recordingNotifier{})
	err := svc.ApplyPayinUpdate(context.Background(), partner.Payin{
		ID:     9999,
		Method: partner.PayinCheque,
		Cheque: &partner.ChequeDetails{Status: partner.DepositCredited},
	})
	if err != nil {
		t.Fatalf("unknown payins should be ignored: %v", err)
	}
}
