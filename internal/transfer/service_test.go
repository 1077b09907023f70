package transfer

import (
	"context"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meridian-pay/meridian_pay/internal/notification"
	"github.com/meridian-pay/meridian_pay/internal/partner"
)

type stubGateway struct {
	payouts   []partner.PayoutRequest
	canceled  []int64
	feeDebits []string
}

func (g *stubGateway) CreateBeneficiary(_ context.Context, partnerUserID int64, name, iban, bic string) (partner.Beneficiary, error) {
	if !isSepaIBAN(iban) {
		return partner.Beneficiary{}, &partner.OpError{Op: "createBeneficiary", Kind: partner.ErrIneligibleBeneficiary}
	}
	return partner.Beneficiary{ID: 42, UserID: partnerUserID, Type: partner.BeneficiaryCreditor, Name: name, IBAN: iban, BIC: bic}, nil
}

func isSepaIBAN(iban string) bool {
	return len(iban) >= 2 && iban[:2] == "FR"
}

func (g *stubGateway) CreatePayout(_ context.Context, req partner.PayoutRequest) (partner.Payout, error) {
	g.payouts = append(g.payouts, req)
	return partner.Payout{ID: 3001, WalletID: req.PartnerWalletID, BeneficiaryID: req.PartnerBeneficiaryID, Status: partner.TransferPending, Amount: req.Amount}, nil
}

func (g *stubGateway) CancelPayout(_ context.Context, payoutID int64) (partner.Payout, error) {
	g.canceled = append(g.canceled, payoutID)
	return partner.Payout{ID: payoutID, Status: partner.TransferCanceled}, nil
}

func (g *stubGateway) DebitInvoiceFees(_ context.Context, _ int64, amount decimal.Decimal, currency, invoiceRef string) (partner.Transfer, error) {
	g.feeDebits = append(g.feeDebits, invoiceRef)
	return partner.Transfer{ID: 88, Amount: amount, Currency: currency, Tag: invoiceRef, Status: partner.TransferValidated}, nil
}

func (g *stubGateway) FindTransfers(_ context.Context, _ url.Values) ([]partner.Transfer, error) {
	return nil, nil
}

type recordingNotifier struct {
	messages []notification.Message
}

func (n *recordingNotifier) Send(_ context.Context, message notification.Message) error {
	n.messages = append(n.messages, message)
	return nil
}

func TestSendPayout(t *testing.T) {
	gateway := &stubGateway{}
	svc := NewService(NewMemoryRepository(), gateway, nil)
	ctx := context.Background()

	payout, err := svc.Send(ctx, SendInput{
		AccountID:            uuid.New().String(),
		PartnerWalletID:      7,
		PartnerBeneficiaryID: 42,
		Amount:               decimal.NewFromInt(100),
		Label:                "rent",
		ClientRef:            "order-55",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if payout.PartnerPayoutID != 3001 || payout.Status != partner.TransferPending {
		t.Fatalf("unexpected payout %+v", payout)
	}
	if len(gateway.payouts) != 1 {
		t.Fatalf("expected one partner order")
	}
	sent := gateway.payouts[0]
	if sent.ClientRef != "order-55" {
		t.Fatalf("the client reference must reach the partner order, got %q", sent.ClientRef)
	}
	if sent.Label == nil || *sent.Label != "rent" {
		t.Fatalf("label should be set, got %v", sent.Label)
	}
}

func TestSendGeneratesClientRef(t *testing.T) {
	gateway := &stubGateway{}
	svc := NewService(NewMemoryRepository(), gateway, nil)

	payout, err := svc.Send(context.Background(), SendInput{
		AccountID:            uuid.New().String(),
		PartnerWalletID:      7,
		PartnerBeneficiaryID: 42,
		Amount:               decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if payout.ClientRef == "" {
		t.Fatalf("a missing client reference should be generated")
	}
	if gateway.payouts[0].ClientRef != payout.ClientRef {
		t.Fatalf("the generated reference must reach the partner order")
	}
}

func TestCancelPayout(t *testing.T) {
	gateway := &stubGateway{}
	svc := NewService(NewMemoryRepository(), gateway, nil)
	ctx := context.Background()

	payout, err := svc.Send(ctx, SendInput{
		AccountID:            uuid.New().String(),
		PartnerWalletID:      7,
		PartnerBeneficiaryID: 42,
		Amount:               decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	canceled, err := svc.Cancel(ctx, payout.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if canceled.Status != partner.TransferCanceled {
		t.Fatalf("expected canceled status, got %s", canceled.Status)
	}
	if len(gateway.canceled) != 1 || gateway.canceled[0] != 3001 {
		t.Fatalf("cancel should target the partner payout id, got %v", gateway.canceled)
	}
}

func TestApplyRefundNotifies(t *testing.T) {
	gateway := &stubGateway{}
	notifier := &recordingNotifier{}
	svc := NewService(NewMemoryRepository(), gateway, notifier)
	ctx := context.Background()

	payout, err := svc.Send(ctx, SendInput{
		AccountID:            uuid.New().String(),
		PartnerWalletID:      7,
		PartnerBeneficiaryID: 42,
		Amount:               decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if err := svc.ApplyRefund(ctx, partner.PayoutRefund{ID: 1, PayoutID: payout.PartnerPayoutID, Amount: payout.Amount}); err != nil {
		t.Fatalf("apply refund: %v", err)
	}

	stored, err := svc.Get(ctx, payout.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != partner.TransferCanceled {
		t.Fatalf("refund should cancel the payout, got %s", stored.Status)
	}
	if len(notifier.messages) != 1 || notifier.messages[0].Kind != notification.KindPayoutRefunded {
		t.Fatalf("a refund should notify, got %v", notifier.messages)
	}
}

func TestDebitFeesValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository(), &stubGateway{}, nil)
	ctx := context.Background()

	if _, err := svc.DebitFees(ctx, 7, decimal.Zero, "EUR", "invoice_42"); err == nil {
		t.Fatalf("expected amount validation error")
	}
	if _, err := svc.DebitFees(ctx, 7, decimal.NewFromInt(12), "EUR", ""); err == nil {
		t.Fatalf("expected invoice reference validation error")
	}

	result, err := svc.DebitFees(ctx, 7, decimal.NewFromInt(12), "EUR", "invoice_42")
	if err != nil {
		t.Fatalf("debit fees: %v", err)
	}
	if result.Tag != "invoice_42" {
		t.Fatalf("unexpected transfer %+v", result)
	}
}
