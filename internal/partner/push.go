package partner

// Push payload normalizers. Partner webhooks deliver the same enveloped
// collections as the REST responses ({"payins": [ ... ]}), always carrying
// exactly one record; the single-result invariant applies unchanged.

// UserFromPush extracts the user record of a user webhook payload.
func UserFromPush(payload map[string]any) (User, error) {
	rec, err := singleRecord(payload, "users")
	if err != nil {
		return User{}, classify("userPush", nil, err)
	}
	user, err := normalizeUser(rec)
	if err != nil {
		return User{}, classify("userPush", nil, err)
	}
	return user, nil
}

// PayinFromPush extracts the payin record of a payin webhook payload.
func PayinFromPush(payload map[string]any) (Payin, error) {
	rec, err := singleRecord(payload, "payins")
	if err != nil {
		return Payin{}, classify("payinPush", nil, err)
	}
	payin, err := normalizePayin(rec)
	if err != nil {
		return Payin{}, classify("payinPush", nil, err)
	}
	return payin, nil
}

// PayoutFromPush extracts the payout record of a payout webhook payload.
func PayoutFromPush(payload map[string]any) (Payout, error) {
	rec, err := singleRecord(payload, "payouts")
	if err != nil {
		return Payout{}, classify("payoutPush", nil, err)
	}
	payout, err := normalizePayout(rec)
	if err != nil {
		return Payout{}, classify("payoutPush", nil, err)
	}
	return payout, nil
}

// CardTransactionFromPush extracts the card transaction record of a card
// transaction webhook payload.
func CardTransactionFromPush(payload map[string]any) (CardTransaction, error) {
	rec, err := singleRecord(payload, "cardtransactions")
	if err != nil {
		return CardTransaction{}, classify("cardTransactionPush", nil, err)
	}
	tx, err := normalizeCardTransaction(rec)
	if err != nil {
		return CardTransaction{}, classify("cardTransactionPush", nil, err)
	}
	return tx, nil
}

// PayinRefundFromPush extracts the refund record of a payin refund webhook
// payload.
func PayinRefundFromPush(payload map[string]any) (PayinRefund, error) {
	rec, err := singleRecord(payload, "payinrefunds")
	if err != nil {
		return PayinRefund{}, classify("payinRefundPush", nil, err)
	}
	refund, err := normalizePayinRefund(rec)
	if err != nil {
		return PayinRefund{}, classify("payinRefundPush", nil, err)
	}
	return refund, nil
}

// PayoutRefundFromPush extracts the refund record of a payout refund webhook
// payload.
func PayoutRefundFromPush(payload map[string]any) (PayoutRefund, error) {
	rec, err := singleRecord(payload, "payoutRefunds")
	if err != nil {
		return PayoutRefund{}, classify("payoutRefundPush", nil, err)
	}
	refund, err := normalizePayoutRefund(rec)
	if err != nil {
		return PayoutRefund{}, classify("payoutRefundPush", nil, err)
	}
	return refund, nil
}

// DirectDebitRejectFromPush extracts the reject record of a direct-debit
// reject webhook payload. Unlike the other collections this one arrives in
// snake_case.
func DirectDebitRejectFromPush(payload map[string]any) (DirectDebitReject, error) {
	rec, err := singleRecord(payload, "sdd_rejects")
	if err != nil {
		return DirectDebitReject{}, classify("directDebitRejectPush", nil, err)
	}
	reject, err := normalizeDirectDebitReject(rec)
	if err != nil {
		return DirectDebitReject{}, classify("directDebitRejectPush", nil, err)
	}
	return reject, nil
}
