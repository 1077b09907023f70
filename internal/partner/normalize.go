package partner

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Normalizers turn raw partner records into typed internal records. They do
// no I/O, assert only required fields, and coerce the partner's loosely-typed
// scalars (numeric strings, inconsistent dates, enum codes).

// creditorNameMarker is injected by the partner into SEPA payin free text.
// Everything from the marker on is stripped; see trimCreditorNameMarker.
const creditorNameMarker = " - Creditor Name SEPA"

// CMC7 segment widths of the packed cheque serial line: 7, then 12, then 12.
const (
	cmc7SegmentA = 7
	cmc7SegmentB = 12
	cmc7SegmentC = 12
	cmc7Length   = cmc7SegmentA + cmc7SegmentB + cmc7SegmentC
)

// trimCreditorNameMarker strips the partner-injected marker and anything
// after it from payin message text. Text without the marker passes through
// untouched.
func trimCreditorNameMarker(s string) string {
	if i := strings.Index(s, creditorNameMarker); i >= 0 {
		return s[:i]
	}
	return s
}

// splitCMC7 cuts the packed cheque line into its three fixed-width segments.
func splitCMC7(cmc7 string) (a, b, c string, err error) {
	if len(cmc7) != cmc7Length {
		return "", "", "", fmt.Errorf("cmc7 line must be %d characters, got %d", cmc7Length, len(cmc7))
	}
	return cmc7[:cmc7SegmentA],
		cmc7[cmc7SegmentA : cmc7SegmentA+cmc7SegmentB],
		cmc7[cmc7SegmentA+cmc7SegmentB:],
		nil
}

// Scalar coercion helpers. Partner payloads mix numbers, numeric strings and
// booleans-as-digits freely; these settle the ambiguity in one place.

func reqString(rec map[string]any, key string) (string, error) {
	v, ok := rec[key]
	if !ok || v == nil {
		return "", fmt.Errorf("partner record is missing required field %q", key)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	default:
		return fmt.Sprint(s), nil
	}
}

func optString(rec map[string]any, key string) string {
	s, err := reqString(rec, key)
	if err != nil {
		return ""
	}
	return s
}

func reqInt64(rec map[string]any, key string) (int64, error) {
	v, ok := rec[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("partner record is missing required field %q", key)
	}
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q is not numeric: %w", key, err)
		}
		return parsed, nil
	case json.Number:
		return n.Int64()
	default:
		return 0, fmt.Errorf("field %q has unexpected type %T", key, v)
	}
}

func optInt64(rec map[string]any, key string) int64 {
	n, err := reqInt64(rec, key)
	if err != nil {
		return 0
	}
	return n
}

func reqDecimal(rec map[string]any, key string) (decimal.Decimal, error) {
	v, ok := rec[key]
	if !ok || v == nil {
		return decimal.Zero, fmt.Errorf("partner record is missing required field %q", key)
	}
	switch n := v.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero, fmt.Errorf("field %q is not a decimal: %w", key, err)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(n), nil
	default:
		return decimal.Zero, fmt.Errorf("field %q has unexpected type %T", key, v)
	}
}

func optDecimal(rec map[string]any, key string) decimal.Decimal {
	d, err := reqDecimal(rec, key)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// optBool accepts the partner's assorted boolean spellings: true, 1, "1".
func optBool(rec map[string]any, key string) bool {
	switch v := rec[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v == "1" || strings.EqualFold(v, "true")
	default:
		return false
	}
}

func reqDateTime(rec map[string]any, key string) (time.Time, error) {
	s, err := reqString(rec, key)
	if err != nil {
		return time.Time{}, err
	}
	return parseDateTime(s)
}

func optDateTime(rec map[string]any, key string) time.Time {
	t, err := parseDateTime(optString(rec, key))
	if err != nil {
		return time.Time{}
	}
	return t
}

func reqDate(rec map[string]any, key string) (time.Time, error) {
	s, err := reqString(rec, key)
	if err != nil {
		return time.Time{}, err
	}
	return parseDate(s)
}

// normalizeUser converts a raw partner user record, covering both natural
// persons and corporate entities.
func normalizeUser(rec map[string]any) (User, error) {
	id, err := reqInt64(rec, "userId")
	if err != nil {
		return User{}, err
	}
	typeCode, err := reqInt64(rec, "userTypeId")
	if err != nil {
		return User{}, err
	}
	userType, err := userTypeFromPartner(typeCode)
	if err != nil {
		return User{}, err
	}

	return User{
		ID:           id,
		Type:         userType,
		Email:        optString(rec, "email"),
		FirstName:    optString(rec, "firstname"),
		LastName:     optString(rec, "lastname"),
		LegalName:    optString(rec, "legalName"),
		Phone:        optString(rec, "phone"),
		Country:      optString(rec, "country"),
		KYCLevel:     optInt64(rec, "kycLevel"),
		KYCReview:    optInt64(rec, "kycReview"),
		ParentUserID: optInt64(rec, "parentUserId"),
		CreatedAt:    optDateTime(rec, "createdDate"),
		ModifiedAt:   optDateTime(rec, "modifiedDate"),
	}, nil
}

func normalizeWallet(rec map[string]any) (Wallet, error) {
	id, err := reqInt64(rec, "walletId")
	if err != nil {
		return Wallet{}, err
	}
	userID, err := reqInt64(rec, "userId")
	if err != nil {
		return Wallet{}, err
	}
	return Wallet{
		ID:        id,
		UserID:    userID,
		Currency:  optString(rec, "currency"),
		Status:    optString(rec, "walletStatus"),
		IBAN:      optString(rec, "iban"),
		BIC:       optString(rec, "bic"),
		Balance:   optDecimal(rec, "solde"),
		CreatedAt: optDateTime(rec, "createdDate"),
	}, nil
}

func normalizeBalance(rec map[string]any) (Balance, error) {
	walletID, err := reqInt64(rec, "walletId")
	if err != nil {
		return Balance{}, err
	}
	current, err := reqDecimal(rec, "currentBalance")
	if err != nil {
		return Balance{}, err
	}
	return Balance{
		WalletID:     walletID,
		Currency:     optString(rec, "currency"),
		Current:      current,
		Authorized:   optDecimal(rec, "authorizedBalance"),
		CalculatedAt: optDateTime(rec, "calculationDate"),
	}, nil
}

func normalizeCard(rec map[string]any) (Card, error) {
	id, err := reqInt64(rec, "cardId")
	if err != nil {
		return Card{}, err
	}
	userID, err := reqInt64(rec, "userId")
	if err != nil {
		return Card{}, err
	}
	walletID, err := reqInt64(rec, "walletId")
	if err != nil {
		return Card{}, err
	}
	statusCode, err := reqString(rec, "statusCode")
	if err != nil {
		return Card{}, err
	}
	status, err := cardStatusFromPartner(strings.ToUpper(statusCode))
	if err != nil {
		return Card{}, err
	}
	expiry, err := reqDate(rec, "expiryDate")
	if err != nil {
		return Card{}, err
	}

	return Card{
		ID:               id,
		UserID:           userID,
		WalletID:         walletID,
		PublicToken:      optString(rec, "publicToken"),
		Status:           status,
		Activation:       cardActivationFromPartner(optInt64(rec, "isLive")),
		EmbossedName:     optString(rec, "embossedName"),
		MaskedPAN:        optString(rec, "maskedPan"),
		ExpiryDate:       expiry,
		OptionATM:        optBool(rec, "optionAtm"),
		OptionForeign:    optBool(rec, "optionForeign"),
		OptionNFC:        optBool(rec, "optionNfc"),
		OptionOnline:     optBool(rec, "optionOnline"),
		PINTryExceeded:   optBool(rec, "pinTryExceeds"),
		LimitATMWeek:     optInt64(rec, "limitAtmWeek"),
		LimitPaymentWeek: optInt64(rec, "limitPaymentWeek"),
		Design:           cardDesignFromPartner(optString(rec, "cardDesign")),
	}, nil
}

func normalizeBeneficiary(rec map[string]any) (Beneficiary, error) {
	id, err := reqInt64(rec, "id")
	if err != nil {
		return Beneficiary{}, err
	}
	userID, err := reqInt64(rec, "userId")
	if err != nil {
		return Beneficiary{}, err
	}

	bType := BeneficiaryDebtor
	if optBool(rec, "usableForSct") {
		bType = BeneficiaryCreditor
	}

	return Beneficiary{
		ID:                     id,
		UserID:                 userID,
		Type:                   bType,
		Name:                   optString(rec, "name"),
		Address:                optString(rec, "address"),
		IBAN:                   optString(rec, "iban"),
		BIC:                    optString(rec, "bic"),
		SepaCreditorIdentifier: optString(rec, "sepaCreditorIdentifier"),
		SddB2bWhitelist:        mandateEntries(rec["sddB2bWhitelist"]),
		SddCoreBlacklist:       stringSlice(rec["sddCoreBlacklist"]),
		KnownMandateReferences: stringSlice(rec["sddCoreKnownUniqueMandateReference"]),
	}, nil
}

func mandateEntries(v any) []MandateEntry {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	entries := make([]MandateEntry, 0, len(items))
	for _, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entries = append(entries, MandateEntry{
			UniqueMandateReference: optString(rec, "uniqueMandateReference"),
			Recurrent:              optBool(rec, "isRecurrent"),
		})
	}
	return entries
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func normalizePayout(rec map[string]any) (Payout, error) {
	id, err := reqInt64(rec, "payoutId")
	if err != nil {
		return Payout{}, err
	}
	walletID, err := reqInt64(rec, "walletId")
	if err != nil {
		return Payout{}, err
	}
	statusCode, err := reqString(rec, "payoutStatus")
	if err != nil {
		return Payout{}, err
	}
	status, err := transferStatusFromPartner(statusCode)
	if err != nil {
		return Payout{}, err
	}
	amount, err := reqDecimal(rec, "amount")
	if err != nil {
		return Payout{}, err
	}
	created, err := reqDateTime(rec, "createdDate")
	if err != nil {
		return Payout{}, err
	}
	payoutDate, err := reqDate(rec, "payoutDate")
	if err != nil {
		return Payout{}, err
	}

	return Payout{
		ID:            id,
		UserID:        optInt64(rec, "userId"),
		WalletID:      walletID,
		BeneficiaryID: optInt64(rec, "beneficiaryId"),
		TypeID:        optInt64(rec, "payoutTypeId"),
		Status:        status,
		Amount:        amount,
		Label:         optString(rec, "label"),
		PayoutDate:    payoutDate,
		CreatedAt:     created,
		ModifiedAt:    optDateTime(rec, "modifiedDate"),
	}, nil
}

// normalizePayin branches on the paymentMethodId discriminant: cheque payins
// carry a JSON-encoded additionalData blob with the cheque sub-record; every
// other method falls through to the generic shape with the marker truncation
// applied to the free text.
func normalizePayin(rec map[string]any) (Payin, error) {
	walletID, err := reqInt64(rec, "walletId")
	if err != nil {
		return Payin{}, err
	}
	id, err := reqInt64(rec, "payinId")
	if err != nil {
		return Payin{}, err
	}
	amount, err := reqDecimal(rec, "amount")
	if err != nil {
		return Payin{}, err
	}
	created, err := reqDateTime(rec, "createdDate")
	if err != nil {
		return Payin{}, err
	}
	methodCode, err := reqString(rec, "paymentMethodId")
	if err != nil {
		return Payin{}, err
	}
	method, err := payinMethodFromPartner(methodCode)
	if err != nil {
		return Payin{}, err
	}

	payin := Payin{
		ID:         id,
		WalletID:   walletID,
		Method:     method,
		Amount:     amount,
		SenderName: optString(rec, "ibanFullname"),
		SenderIBAN: optString(rec, "DbtrIBAN"),
		CreatedAt:  created,
	}

	if method == PayinCheque {
		cheque, err := normalizeChequeDetails(rec)
		if err != nil {
			return Payin{}, err
		}
		payin.Cheque = cheque
		payin.Status = TransferPending
		if cheque.Status == DepositCredited {
			payin.Status = TransferValidated
		} else if cheque.Status == DepositRejected {
			payin.Status = TransferCanceled
		}
		payin.MessageToUser = optString(rec, "messageToUser")
		return payin, nil
	}

	statusCode, err := reqString(rec, "payinStatus")
	if err != nil {
		return Payin{}, err
	}
	status, err := transferStatusFromPartner(statusCode)
	if err != nil {
		return Payin{}, err
	}
	payin.Status = status
	payin.MessageToUser = trimCreditorNameMarker(optString(rec, "messageToUser"))
	return payin, nil
}

// normalizeChequeDetails decodes the JSON-in-JSON additionalData blob and
// reassembles the packed cheque serial line from its three segments.
func normalizeChequeDetails(rec map[string]any) (*ChequeDetails, error) {
	blob, err := reqString(rec, "additionalData")
	if err != nil {
		return nil, err
	}
	var additional struct {
		Cheque struct {
			CMC7 struct {
				A string `json:"a"`
				B string `json:"b"`
				C string `json:"c"`
			} `json:"cmc7"`
			RLMCKey    string `json:"RLMCKey"`
			DrawerData struct {
				FirstName       string `json:"firstName"`
				LastName        string `json:"lastName"`
				IsNaturalPerson bool   `json:"isNaturalPerson"`
			} `json:"drawerData"`
		} `json:"cheque"`
	}
	if err := json.Unmarshal([]byte(blob), &additional); err != nil {
		return nil, fmt.Errorf("decode cheque additional data: %w", err)
	}

	code, err := reqInt64(rec, "codeStatus")
	if err != nil {
		return nil, err
	}
	status, err := depositStatusFromCode(code)
	if err != nil {
		return nil, err
	}

	cheque := additional.Cheque
	return &ChequeDetails{
		CMC7:            cheque.CMC7.A + cheque.CMC7.B + cheque.CMC7.C,
		RLMCKey:         cheque.RLMCKey,
		DrawerType:      drawerTypeFromPartner(cheque.DrawerData.IsNaturalPerson),
		DrawerFirstName: cheque.DrawerData.FirstName,
		DrawerLastName:  cheque.DrawerData.LastName,
		Status:          status,
		StatusCode:      code,
		Wording:         "Cheque deposit",
	}, nil
}

func normalizeDocument(rec map[string]any) (Document, error) {
	id, err := reqInt64(rec, "documentId")
	if err != nil {
		return Document{}, err
	}
	statusCode, err := reqString(rec, "documentStatus")
	if err != nil {
		return Document{}, err
	}
	status, err := documentStatusFromPartner(statusCode)
	if err != nil {
		return Document{}, err
	}
	return Document{
		ID:       id,
		FileName: optString(rec, "fileName"),
		Status:   status,
	}, nil
}

func normalizeTransfer(rec map[string]any) (Transfer, error) {
	id, err := reqInt64(rec, "transferId")
	if err != nil {
		return Transfer{}, err
	}
	walletID, err := reqInt64(rec, "walletId")
	if err != nil {
		return Transfer{}, err
	}
	amount, err := reqDecimal(rec, "amount")
	if err != nil {
		return Transfer{}, err
	}
	statusCode, err := reqString(rec, "transferStatus")
	if err != nil {
		return Transfer{}, err
	}
	status, err := transferStatusFromPartner(statusCode)
	if err != nil {
		return Transfer{}, err
	}
	return Transfer{
		ID:                  id,
		WalletID:            walletID,
		BeneficiaryWalletID: optInt64(rec, "beneficiaryWalletId"),
		TypeID:              optInt64(rec, "transferTypeId"),
		Tag:                 optString(rec, "transferTag"),
		Status:              status,
		Amount:              amount,
		Label:               optString(rec, "label"),
		Currency:            optString(rec, "currency"),
		CreatedAt:           optDateTime(rec, "createdDate"),
	}, nil
}

func normalizeCardTransaction(rec map[string]any) (CardTransaction, error) {
	id, err := reqInt64(rec, "cardtransactionId")
	if err != nil {
		return CardTransaction{}, err
	}
	walletID, err := reqInt64(rec, "walletId")
	if err != nil {
		return CardTransaction{}, err
	}
	statusCode, err := reqString(rec, "paymentStatus")
	if err != nil {
		return CardTransaction{}, err
	}
	status, err := cardTransactionStatusFromPartner(statusCode)
	if err != nil {
		return CardTransaction{}, err
	}
	amount, err := reqDecimal(rec, "paymentAmount")
	if err != nil {
		return CardTransaction{}, err
	}
	issuedAt, err := reqDateTime(rec, "authorizationIssuerTime")
	if err != nil {
		return CardTransaction{}, err
	}

	return CardTransaction{
		ID:                id,
		CardID:            optString(rec, "cardId"),
		WalletID:          walletID,
		MCC:               optString(rec, "mccCode"),
		MerchantName:      optString(rec, "merchantName"),
		MerchantCountry:   optString(rec, "merchantCountry"),
		PaymentCountry:    optString(rec, "paymentCountry"),
		PaymentID:         optString(rec, "paymentId"),
		Status:            status,
		Amount:            amount,
		Is3DS:             optBool(rec, "is3DS"),
		TotalPaymentWeek:  optDecimal(rec, "totalLimitPaymentWeek"),
		TotalATMWeek:      optDecimal(rec, "totalLimitAtmWeek"),
		AuthorizationCode: optString(rec, "authorizationResponseCode"),
		AuthorizationNote: optString(rec, "authorizationNote"),
		IssuedAt:          issuedAt,
	}, nil
}

func normalizePayinRefund(rec map[string]any) (PayinRefund, error) {
	id, err := reqInt64(rec, "payinrefundId")
	if err != nil {
		return PayinRefund{}, err
	}
	statusCode, err := reqString(rec, "payinrefundStatus")
	if err != nil {
		return PayinRefund{}, err
	}
	status, err := payinRefundStatusFromPartner(statusCode)
	if err != nil {
		return PayinRefund{}, err
	}
	amount, err := reqDecimal(rec, "amount")
	if err != nil {
		return PayinRefund{}, err
	}
	return PayinRefund{
		ID:         id,
		WalletID:   optInt64(rec, "walletId"),
		PayinID:    optInt64(rec, "payinId"),
		Status:     status,
		Amount:     amount,
		Reason:     optString(rec, "reasonTms"),
		CreatedAt:  optDateTime(rec, "createdDate"),
		ModifiedAt: optDateTime(rec, "modifiedDate"),
	}, nil
}

func normalizePayoutRefund(rec map[string]any) (PayoutRefund, error) {
	id, err := reqInt64(rec, "id")
	if err != nil {
		return PayoutRefund{}, err
	}
	statusCode, err := reqString(rec, "informationStatus")
	if err != nil {
		return PayoutRefund{}, err
	}
	status, err := transferStatusFromPartner(statusCode)
	if err != nil {
		return PayoutRefund{}, err
	}
	amount, err := reqDecimal(rec, "requestAmount")
	if err != nil {
		return PayoutRefund{}, err
	}
	return PayoutRefund{
		ID:         id,
		PayoutID:   optInt64(rec, "payoutId"),
		Status:     status,
		Amount:     amount,
		CreatedAt:  optDateTime(rec, "createdDate"),
		ModifiedAt: optDateTime(rec, "modifiedDate"),
	}, nil
}

// normalizeDirectDebitReject handles rejection notices, which arrive in
// snake_case unlike the other resources, and whose reason code has drifted
// between two field names over time.
func normalizeDirectDebitReject(rec map[string]any) (DirectDebitReject, error) {
	walletID, err := reqInt64(rec, "wallet_id")
	if err != nil {
		return DirectDebitReject{}, err
	}
	txID, err := reqString(rec, "transaction_id")
	if err != nil {
		return DirectDebitReject{}, err
	}

	reasonCode := optString(rec, "reject_reason_code")
	if reasonCode == "" {
		reasonCode = optString(rec, "reason_code")
	}

	collectionDate, err := parseDate(optString(rec, "requested_collection_date"))
	if err != nil {
		return DirectDebitReject{}, err
	}

	return DirectDebitReject{
		WalletID:                walletID,
		TransactionID:           txID,
		BeneficiaryID:           optInt64(rec, "beneficiary_id"),
		SettlementAmount:        optDecimal(rec, "interbank_settlement_amount"),
		RequestedCollectionDate: collectionDate,
		CreditorName:            optString(rec, "creditor_name"),
		CreditorAddress:         optString(rec, "creditor_address"),
		DebtorName:              optString(rec, "debitor_name"),
		DebtorAddress:           optString(rec, "debitor_address"),
		RejectReason:            rejectReasonFromPartner(reasonCode),
		SepaCreditorIdentifier:  optString(rec, "sepa_creditor_identifier"),
		UnstructuredField:       optString(rec, "unstructured_field"),
		MandateReference:        optString(rec, "mandate_id"),
	}, nil
}
