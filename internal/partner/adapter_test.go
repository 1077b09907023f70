package partner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type recordedCall struct {
	method  string
	path    string
	payload map[string]any
}

// stubTransport replays canned envelopes and records every request it sees.
type stubTransport struct {
	calls     []recordedCall
	responses []map[string]any
	err       error
}

func (s *stubTransport) Do(_ context.Context, method, path string, _ url.Values, payload map[string]any) (map[string]any, error) {
	s.calls = append(s.calls, recordedCall{method: method, path: path, payload: payload})
	if s.err != nil {
		return nil, s.err
	}
	if len(s.responses) == 0 {
		return nil, errors.New("stub transport has no response left")
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func newTestAdapter(transport *stubTransport) *Adapter {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := New(transport, Config{TariffID: "tariff-1", FeeWalletID: 999, WalletEventName: "main-wallet"}, nil, logger)
	a.now = func() time.Time { return time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC) }
	return a
}

func userEnvelope(fields map[string]any) map[string]any {
	rec := map[string]any{
		"userId":     float64(18),
		"userTypeId": float64(1),
	}
	for k, v := range fields {
		rec[k] = v
	}
	return map[string]any{"users": []any{rec}}
}

func TestCreateUser(t *testing.T) {
	transport := &stubTransport{responses: []map[string]any{
		userEnvelope(map[string]any{"email": "jean@example.com"}),
	}}
	adapter := newTestAdapter(transport)

	user, err := adapter.CreateUser(context.Background(), UserProfile{Email: "jean@example.com", FirstName: "Jean"}, CompanyProfile{})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID != 18 || user.Email != "jean@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}

	if len(transport.calls) != 1 {
		t.Fatalf("expected one request, got %d", len(transport.calls))
	}
	call := transport.calls[0]
	if call.method != "POST" || call.path != "users" {
		t.Fatalf("unexpected request %s %s", call.method, call.path)
	}
	if call.payload["accessTag"] != accessTag("createUser", "jean@example.com") {
		t.Fatalf("access tag should be a pure function of the email")
	}
	if call.payload["firstname"] != "Jean" {
		t.Fatalf("payload should carry the partner field names, got %v", call.payload)
	}
}

func TestUpdateUserAlreadyInSync(t *testing.T) {
	transport := &stubTransport{responses: []map[string]any{
		userEnvelope(map[string]any{"email": "jean@example.com", "phone": "+336"}),
	}}
	adapter := newTestAdapter(transport)

	profile := UserProfile{PartnerID: 18, Email: "jean@example.com", Phone: "+336"}
	user, err := adapter.UpdateUser(context.Background(), profile, CompanyProfile{}, "email", "phone")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.ID != 18 || user.Email != "jean@example.com" {
		t.Fatalf("in-sync update should return the profile as-is, got %+v", user)
	}

	if len(transport.calls) != 1 {
		t.Fatalf("an in-sync update must stop after the read, saw %d calls", len(transport.calls))
	}
	if transport.calls[0].method != "GET" {
		t.Fatalf("expected only the GET, saw %s", transport.calls[0].method)
	}
}

func TestUpdateUserSendsOnlyTheDiff(t *testing.T) {
	transport := &stubTransport{responses: []map[string]any{
		userEnvelope(map[string]any{"email": "jean@example.com", "phone": "+336"}),
		userEnvelope(map[string]any{"email": "jean@example.com", "phone": "+337"}),
	}}
	adapter := newTestAdapter(transport)

	profile := UserProfile{PartnerID: 18, Email: "jean@example.com", Phone: "+337"}
	if _, err := adapter.UpdateUser(context.Background(), profile, CompanyProfile{}, "email", "phone"); err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(transport.calls) != 2 {
		t.Fatalf("expected read then write, got %d calls", len(transport.calls))
	}
	put := transport.calls[1]
	if put.method != "PUT" || put.path != "users/18" {
		t.Fatalf("unexpected write %s %s", put.method, put.path)
	}
	if len(put.payload) != 1 || put.payload["phone"] != "+337" {
		t.Fatalf("only the changed field should travel, got %v", put.payload)
	}
}

func TestCreateBeneficiaryRejectsNonSepaIBAN(t *testing.T) {
	transport := &stubTransport{}
	adapter := newTestAdapter(transport)

	_, err := adapter.CreateBeneficiary(context.Background(), 18, "ACME", "BR1500000000000010932840814P2", "BRASBRRJ")
	if !errors.Is(err, ErrIneligibleBeneficiary) {
		t.Fatalf("expected ineligible beneficiary, got %v", err)
	}
	if len(transport.calls) != 0 {
		t.Fatalf("the precondition must fail before any network call")
	}
}

func TestCreatePayoutClientRefStabilizesTag(t *testing.T) {
	payoutEnvelope := func() map[string]any {
		return map[string]any{"payouts": []any{map[string]any{
			"payoutId":     float64(3001),
			"walletId":     float64(7),
			"payoutStatus": "PENDING",
			"amount":       "100.00",
			"createdDate":  "2026-03-14 10:30:00",
			"payoutDate":   "2026-03-16",
		}}}
	}
	transport := &stubTransport{responses: []map[string]any{payoutEnvelope(), payoutEnvelope()}}
	adapter := newTestAdapter(transport)

	label := "rent"
	req := PayoutRequest{
		PartnerWalletID:      7,
		PartnerBeneficiaryID: 42,
		Amount:               decimal.NewFromInt(100),
		Currency:             "EUR",
		Label:                &label,
		ClientRef:            "order-55",
	}

	if _, err := adapter.CreatePayout(context.Background(), req); err != nil {
		t.Fatalf("first payout: %v", err)
	}
	adapter.now = func() time.Time { return time.Date(2026, 3, 14, 11, 45, 0, 0, time.UTC) }
	if _, err := adapter.CreatePayout(context.Background(), req); err != nil {
		t.Fatalf("second payout: %v", err)
	}

	first := transport.calls[0].payload["accessTag"]
	second := transport.calls[1].payload["accessTag"]
	if first != second {
		t.Fatalf("a client reference must keep the tag stable across minutes: %v vs %v", first, second)
	}
	if first != accessTag("createPayout", int64(7), int64(42), nil, req.Amount, "rent", "order-55") {
		t.Fatalf("unexpected tag derivation: %v", first)
	}
}

func TestCreatePayoutEmptyResponse(t *testing.T) {
	transport := &stubTransport{responses: []map[string]any{
		{"payouts": []any{}},
	}}
	adapter := newTestAdapter(transport)

	_, err := adapter.CreatePayout(context.Background(), PayoutRequest{
		PartnerWalletID:      7,
		PartnerBeneficiaryID: 42,
		Amount:               decimal.NewFromInt(100),
	})
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected empty result, got %v", err)
	}

	var oe *OpError
	if !errors.As(err, &oe) {
		t.Fatalf("expected an operation error, got %T", err)
	}
	if oe.Op != "createPayout" || oe.Fields["partner_wallet_id"] != "7" {
		t.Fatalf("error should identify the operation, got %+v", oe)
	}
}

func TestGetBalance(t *testing.T) {
	transport := &stubTransport{responses: []map[string]any{
		{"balances": []any{map[string]any{
			"walletId":       float64(77),
			"currentBalance": "1250.40",
			"currency":       "EUR",
		}}},
	}}
	adapter := newTestAdapter(transport)

	balance, err := adapter.GetBalance(context.Background(), 77)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if balance.WalletID != 77 || balance.Current.StringFixed(2) != "1250.40" {
		t.Fatalf("unexpected balance %+v", balance)
	}
}

func TestDebitInvoiceFees(t *testing.T) {
	transport := &stubTransport{responses: []map[string]any{
		{"transfers": []any{map[string]any{
			"transferId":     float64(88),
			"walletId":       float64(77),
			"amount":         "12.00",
			"transferStatus": "VALIDATED",
			"transferTag":    "invoice_42",
		}}},
	}}
	adapter := newTestAdapter(transport)

	transfer, err := adapter.DebitInvoiceFees(context.Background(), 77, decimal.NewFromInt(12), "EUR", "invoice_42")
	if err != nil {
		t.Fatalf("debit fees: %v", err)
	}
	if transfer.Tag != "invoice_42" || transfer.Status != TransferValidated {
		t.Fatalf("unexpected transfer %+v", transfer)
	}

	payload := transport.calls[0].payload
	if payload["beneficiaryWalletId"] != "999" {
		t.Fatalf("fees flow into the configured fee wallet, got %v", payload["beneficiaryWalletId"])
	}
	if payload["transferTypeId"] != transferTypeClientFees || payload["transferTag"] != "invoice_42" {
		t.Fatalf("unexpected fee payload %v", payload)
	}
}

func TestPushNormalizers(t *testing.T) {
	payin, err := PayinFromPush(map[string]any{"payins": []any{map[string]any{
		"payinId":         float64(502),
		"walletId":        float64(77),
		"paymentMethodId": "20",
		"payinStatus":     "VALIDATED",
		"amount":          "19.99",
		"createdDate":     "2025-07-01 08:00:00",
	}}})
	if err != nil {
		t.Fatalf("payin push: %v", err)
	}
	if payin.Status != TransferValidated {
		t.Fatalf("unexpected payin %+v", payin)
	}

	_, err = PayinFromPush(map[string]any{"payins": []any{}})
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("empty push payload should surface the empty result, got %v", err)
	}
}
