package partner

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestSubsetBody(t *testing.T) {
	b := map[string]any{"email": "a@b.c", "phone": "+336", "city": "Paris"}

	got := subsetBody(b, []string{"email", "phone", "missing"})
	if len(got) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(got))
	}
	if got["email"] != "a@b.c" || got["phone"] != "+336" {
		t.Fatalf("unexpected subset %v", got)
	}

	if got := subsetBody(b, nil); len(got) != 3 {
		t.Fatalf("empty field list should keep the whole payload")
	}
}

func TestDiffBodyComparesRenderings(t *testing.T) {
	desired := map[string]any{"kycLevel": 2, "email": "a@b.c", "phone": "+336"}
	current := map[string]any{"kycLevel": "2", "email": "a@b.c", "phone": "+337"}

	diff := diffBody(desired, current)
	if len(diff) != 1 {
		t.Fatalf("expected only the phone to differ, got %v", diff)
	}
	if diff["phone"] != "+336" {
		t.Fatalf("diff should carry the desired value, got %v", diff["phone"])
	}
}

func TestIndividualCompanyBodyPersonWins(t *testing.T) {
	c := CompanyProfile{
		PartnerID:  900,
		Email:      "company@example.com",
		LegalName:  "JEAN DUPONT EI",
		LegalForm:  LegalFormSoleProprietor,
		Individual: true,
		SoleProprietor: &UserProfile{
			Email:     "jean@example.com",
			FirstName: "Jean",
			LastName:  "Dupont",
			Civility:  CivilityMr,
			BirthDate: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
			Director:  true,
		},
	}

	b, err := individualCompanyBody(c)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if b["email"] != "jean@example.com" {
		t.Fatalf("person email should win over company email, got %v", b["email"])
	}
	if b["userTypeId"] != partnerUserTypePhysical {
		t.Fatalf("sole proprietorships register as physical persons")
	}
	if b["legalName"] != "JEAN DUPONT EI" {
		t.Fatalf("company fields should survive the overlay")
	}
	if b["parentUserId"] != int64(900) {
		t.Fatalf("the person links to the company record, got %v", b["parentUserId"])
	}
	if b["legalAnnualTurnOver"] != "0-39" || b["legalNetIncomeRange"] != "0-4" {
		t.Fatalf("declared ranges are fixed for this legal form")
	}
	if b["parentType"] != partnerParentLeader || b["employeeType"] != partnerEmployeeLeader {
		t.Fatalf("a director maps to the leader linkage")
	}
}

func TestCompanyBodyUnknownLegalForm(t *testing.T) {
	if _, err := companyBody(CompanyProfile{LegalForm: "scop"}); err == nil {
		t.Fatalf("expected error for an unmapped legal form")
	}
}

func TestChequePayinBody(t *testing.T) {
	d := ChequeDeposit{
		PartnerWalletID: 77,
		Amount:          decimal.NewFromInt(250),
		Currency:        "EUR",
		CMC7:            "1234567890123456789012345678901",
		RLMCKey:         "45",
		DrawerType:      DrawerCompany,
		DrawerCompany:   "ACME SARL",
	}

	b, err := chequePayinBody(d)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if b["paymentMethodId"] != partnerMethodCheque {
		t.Fatalf("unexpected method %v", b["paymentMethodId"])
	}
	if b["amount"] != "250.00" {
		t.Fatalf("amounts travel with two decimals, got %v", b["amount"])
	}

	cheque := b["additionalData"].(map[string]any)["cheque"].(map[string]any)
	cmc7 := cheque["cmc7"].(map[string]any)
	if cmc7["a"] != "1234567" || cmc7["b"] != "890123456789" || cmc7["c"] != "012345678901" {
		t.Fatalf("unexpected cmc7 segments %v", cmc7)
	}
	drawer := cheque["drawerData"].(map[string]any)
	if drawer["firstName"] != "" || drawer["lastName"] != "ACME SARL" || drawer["isNaturalPerson"] != false {
		t.Fatalf("company drawers carry the company name in the lastName slot, got %v", drawer)
	}
}

func TestPayoutBodyOptionalFields(t *testing.T) {
	req := PayoutRequest{
		PartnerWalletID:      7,
		PartnerBeneficiaryID: 42,
		Amount:               decimal.NewFromInt(100),
		Currency:             "EUR",
	}

	b := payoutBody(req, "tag")
	if b["walletId"] != "7" || b["beneficiaryId"] != "42" {
		t.Fatalf("ids travel as strings on this endpoint, got %v/%v", b["walletId"], b["beneficiaryId"])
	}
	if _, ok := b["label"]; ok {
		t.Fatalf("unset label must be omitted, not sent as null")
	}

	label := "rent"
	req.Label = &label
	if b := payoutBody(req, "tag"); b["label"] != "rent" {
		t.Fatalf("label should be included when set")
	}
}
