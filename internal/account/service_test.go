package account

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/meridian-pay/meridian_pay/internal/partner"
)

type stubGateway struct {
	companies  int
	wallets    int
	closed     []int64
	documents  []string
	kycReviews []int64
}

func (g *stubGateway) CreateCompany(_ context.Context, company partner.CompanyProfile) (partner.User, error) {
	g.companies++
	return partner.User{ID: 900, Type: partner.UserCorporate, Email: company.Email}, nil
}

func (g *stubGateway) CreateUser(_ context.Context, profile partner.UserProfile, _ partner.CompanyProfile) (partner.User, error) {
	return partner.User{ID: 901, Type: partner.UserPhysical, Email: profile.Email, ParentUserID: profile.ParentPartnerID}, nil
}

func (g *stubGateway) CreateWallet(_ context.Context, partnerUserID int64, currency string) (partner.Wallet, error) {
	g.wallets++
	return partner.Wallet{ID: 77, UserID: partnerUserID, Currency: currency, IBAN: "FR7630006000011234567890189", BIC: "AGRIFRPP"}, nil
}

func (g *stubGateway) CloseWallet(_ context.Context, partnerWalletID int64) (partner.Wallet, error) {
	g.closed = append(g.closed, partnerWalletID)
	return partner.Wallet{ID: partnerWalletID}, nil
}

func (g *stubGateway) GetBalance(_ context.Context, partnerWalletID int64) (partner.Balance, error) {
	return partner.Balance{WalletID: partnerWalletID, Currency: "EUR", Current: decimal.NewFromInt(1250)}, nil
}

func (g *stubGateway) CreateDocument(_ context.Context, _, _ int64, name, _ string) (partner.Document, error) {
	g.documents = append(g.documents, name)
	return partner.Document{ID: 1, FileName: name, Status: partner.DocumentPending}, nil
}

func (g *stubGateway) CreateKYCReview(_ context.Context, partnerUserID int64) (partner.User, error) {
	g.kycReviews = append(g.kycReviews, partnerUserID)
	return partner.User{ID: partnerUserID, Type: partner.UserCorporate}, nil
}

func TestOpenAccount(t *testing.T) {
	gateway := &stubGateway{}
	svc := NewService(NewMemoryRepository(), gateway)
	ctx := context.Background()

	account, err := svc.Open(ctx, OpenInput{Company: partner.CompanyProfile{
		Email:     "contact@acme.example",
		LegalName: "ACME SARL",
		LegalForm: partner.LegalFormSARL,
	}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if account.PartnerUserID != 900 || account.PartnerWalletID != 77 {
		t.Fatalf("account should link partner ids, got %+v", account)
	}
	if account.Currency != "EUR" {
		t.Fatalf("currency should default to EUR, got %s", account.Currency)
	}
	if account.IBAN == "" || account.Status != statusActive {
		t.Fatalf("unexpected account %+v", account)
	}
	if gateway.companies != 1 || gateway.wallets != 1 {
		t.Fatalf("expected one company and one wallet creation")
	}

	stored, err := svc.Get(ctx, account.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.PartnerWalletID != 77 {
		t.Fatalf("account should be persisted, got %+v", stored)
	}
}

func TestOpenRequiresEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository(), &stubGateway{})
	if _, err := svc.Open(context.Background(), OpenInput{}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestSubmitKYC(t *testing.T) {
	gateway := &stubGateway{}
	svc := NewService(NewMemoryRepository(), gateway)
	ctx := context.Background()

	account, err := svc.Open(ctx, OpenInput{Company: partner.CompanyProfile{Email: "contact@acme.example", LegalForm: partner.LegalFormSAS}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	docs := []DocumentInput{
		{TypeID: 4, Name: "registration.pdf", ContentBase64: "Zm9v"},
		{TypeID: 9, Name: "id-card.pdf", ContentBase64: "YmFy"},
	}
	if err := svc.SubmitKYC(ctx, account.ID, docs); err != nil {
		t.Fatalf("submit kyc: %v", err)
	}

	if len(gateway.documents) != 2 {
		t.Fatalf("expected both documents uploaded, got %v", gateway.documents)
	}
	if len(gateway.kycReviews) != 1 || gateway.kycReviews[0] != account.PartnerUserID {
		t.Fatalf("review should follow the uploads, got %v", gateway.kycReviews)
	}
}

func TestCloseAccountIsIdempotent(t *testing.T) {
	gateway := &stubGateway{}
	svc := NewService(NewMemoryRepository(), gateway)
	ctx := context.Background()

	account, err := svc.Open(ctx, OpenInput{Company: partner.CompanyProfile{Email: "contact@acme.example", LegalForm: partner.LegalFormSAS}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	closed, err := svc.Close(ctx, account.ID)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Status != statusClosed {
		t.Fatalf("expected closed status, got %s", closed.Status)
	}

	if _, err := svc.Close(ctx, account.ID); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if len(gateway.closed) != 1 {
		t.Fatalf("an already closed account must not hit the partner again, saw %d calls", len(gateway.closed))
	}
}
