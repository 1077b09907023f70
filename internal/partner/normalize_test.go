package partner

import (
	"strings"
	"testing"
)

func TestSplitCMC7Lossless(t *testing.T) {
	line := "1234567" + "890123456789" + "012345678901"
	a, b, c, err := splitCMC7(line)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if a != "1234567" || b != "890123456789" || c != "012345678901" {
		t.Fatalf("unexpected segments %q %q %q", a, b, c)
	}
	if a+b+c != line {
		t.Fatalf("reassembled line differs from input")
	}

	if _, _, _, err := splitCMC7(line[:30]); err == nil {
		t.Fatalf("expected error for a short line")
	}
}

func TestTrimCreditorNameMarker(t *testing.T) {
	in := "Invoice 42 - Creditor Name SEPA ACME CORP"
	if got := trimCreditorNameMarker(in); got != "Invoice 42" {
		t.Fatalf("expected marker and tail stripped, got %q", got)
	}
	if got := trimCreditorNameMarker("Invoice 42"); got != "Invoice 42" {
		t.Fatalf("text without marker should pass through, got %q", got)
	}
}

func TestNormalizeUser(t *testing.T) {
	rec := map[string]any{
		"userId":       "eighteen",
		"userTypeId":   float64(1),
		"email":        "jean@example.com",
		"firstname":    "Jean",
		"lastname":     "Dupont",
		"phone":        "+33600000000",
		"country":      "FR",
		"kycLevel":     "2",
		"parentUserId": float64(900),
		"createdDate":  "2025-06-01 09:30:00",
		"modifiedDate": "0000-00-00 00:00:00",
	}

	if _, err := normalizeUser(rec); err == nil {
		t.Fatalf("expected error for non-numeric userId")
	}

	rec["userId"] = "18"
	user, err := normalizeUser(rec)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if user.ID != 18 || user.Type != UserPhysical {
		t.Fatalf("unexpected identity %d/%s", user.ID, user.Type)
	}
	if user.KYCLevel != 2 || user.ParentUserID != 900 {
		t.Fatalf("unexpected coercion: kyc=%d parent=%d", user.KYCLevel, user.ParentUserID)
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("createdDate should parse")
	}
	if !user.ModifiedAt.IsZero() {
		t.Fatalf("the all-zero date sentinel should normalize to the zero time")
	}
}

func TestNormalizeUserMissingRequiredField(t *testing.T) {
	_, err := normalizeUser(map[string]any{"userId": float64(18)})
	if err == nil || !strings.Contains(err.Error(), "userTypeId") {
		t.Fatalf("expected missing userTypeId error, got %v", err)
	}
}

func TestNormalizeChequePayin(t *testing.T) {
	rec := map[string]any{
		"payinId":         "501",
		"walletId":        float64(77),
		"paymentMethodId": "26",
		"amount":          "250.00",
		"createdDate":     "2025-07-01 08:00:00",
		"codeStatus":      float64(140003),
		"messageToUser":   "remise de cheque",
		"additionalData":  `{"cheque":{"cmc7":{"a":"1234567","b":"890123456789","c":"012345678901"},"RLMCKey":"45","drawerData":{"firstName":"","lastName":"ACME SARL","isNaturalPerson":false}}}`,
	}

	payin, err := normalizePayin(rec)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if payin.Method != PayinCheque || payin.Cheque == nil {
		t.Fatalf("expected a cheque payin with details")
	}
	if payin.Cheque.CMC7 != "1234567890123456789012345678901" {
		t.Fatalf("reassembled cmc7 is %q", payin.Cheque.CMC7)
	}
	if payin.Cheque.DrawerType != DrawerCompany || payin.Cheque.DrawerLastName != "ACME SARL" {
		t.Fatalf("unexpected drawer %s/%s", payin.Cheque.DrawerType, payin.Cheque.DrawerLastName)
	}
	if payin.Cheque.Status != DepositCredited || payin.Status != TransferValidated {
		t.Fatalf("credited cheque should validate the payin, got %s/%s", payin.Cheque.Status, payin.Status)
	}
}

func TestNormalizeTransferPayin(t *testing.T) {
	rec := map[string]any{
		"payinId":         float64(502),
		"walletId":        float64(77),
		"paymentMethodId": "20",
		"payinStatus":     "PENDING",
		"amount":          "19.99",
		"createdDate":     "2025-07-01 08:00:00",
		"messageToUser":   "salary - Creditor Name SEPA EMPLOYER SAS",
		"ibanFullname":    "EMPLOYER SAS",
	}

	payin, err := normalizePayin(rec)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if payin.Method != PayinCreditTransfer || payin.Cheque != nil {
		t.Fatalf("expected a plain credit transfer payin")
	}
	if payin.MessageToUser != "salary" {
		t.Fatalf("marker should be stripped, got %q", payin.MessageToUser)
	}
	if payin.Status != TransferPending {
		t.Fatalf("unexpected status %s", payin.Status)
	}
}

func TestNormalizeDirectDebitRejectReasonFallback(t *testing.T) {
	rec := map[string]any{
		"wallet_id":                 float64(77),
		"transaction_id":            "tx-1",
		"reason_code":               "AM04",
		"requested_collection_date": "2025-07-15",
		"debitor_name":              "Jean Dupont",
	}

	reject, err := normalizeDirectDebitReject(rec)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if reject.RejectReason != RejectInsufficientFunds {
		t.Fatalf("legacy reason_code field should still map, got %s", reject.RejectReason)
	}

	rec["reject_reason_code"] = "ZZ99"
	reject, err = normalizeDirectDebitReject(rec)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if reject.RejectReason != RejectUnknown {
		t.Fatalf("unmapped codes should not abort ingestion, got %s", reject.RejectReason)
	}
}
