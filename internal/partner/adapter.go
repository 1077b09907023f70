package partner

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian-pay/meridian_pay/internal/notification"
)

// Config carries the immutable partner-side product configuration. It is
// injected at construction; the adapter never reads ambient environment
// state mid-operation.
type Config struct {
	TariffID        string
	PermsGroup      string
	CardPrint       string
	FeeWalletID     int64
	WalletEventName string
}

// Adapter is the partner integration facade: one method per domain
// operation, each sequencing local validation, request building, transport,
// single-result extraction and normalization. It is stateless and safe for
// concurrent use; each call either fully succeeds with one normalized record
// or fully fails with one classified error.
type Adapter struct {
	transport Transport
	cfg       Config
	notifier  notification.Notifier
	logger    *slog.Logger
	now       func() time.Time
}

// New constructs the partner adapter.
func New(transport Transport, cfg Config, notifier notification.Notifier, logger *slog.Logger) *Adapter {
	return &Adapter{
		transport: transport,
		cfg:       cfg,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// one issues a request and extracts the sole record of the named collection,
// classifying every failure against the operation's identifying fields.
func (a *Adapter) one(ctx context.Context, op string, fields map[string]string, method, path string, query url.Values, payload map[string]any, key string) (map[string]any, error) {
	envelope, err := a.transport.Do(ctx, method, path, query, payload)
	if err != nil {
		return nil, classify(op, fields, err)
	}
	rec, err := singleRecord(envelope, key)
	if err != nil {
		return nil, classify(op, fields, err)
	}
	return rec, nil
}

// desiredUserBody builds the partner-side representation of a person record.
// Individual companies carry their sole proprietor on the company record, so
// the composed individual body is used instead of the plain person body.
func desiredUserBody(profile UserProfile, company CompanyProfile) (map[string]any, error) {
	if company.Individual {
		return individualCompanyBody(company)
	}
	return userBody(profile), nil
}

// CreateUser registers a natural person at the partner. For individual
// companies the person already exists as the company record, so the call
// routes to an update of that record under the company's partner id.
func (a *Adapter) CreateUser(ctx context.Context, profile UserProfile, company CompanyProfile) (User, error) {
	if company.Individual {
		profile.PartnerID = company.PartnerID
		return a.UpdateUser(ctx, profile, company)
	}

	op := "createUser"
	fields := map[string]string{"email": profile.Email}

	payload := userBody(profile)
	payload["accessTag"] = accessTag(op, profile.Email)

	rec, err := a.one(ctx, op, fields, http.MethodPost, "users", nil, payload, "users")
	if err != nil {
		return User{}, err
	}
	user, err := normalizeUser(rec)
	if err != nil {
		return User{}, classify(op, fields, err)
	}
	return user, nil
}

// GetUser fetches a partner user record by id.
func (a *Adapter) GetUser(ctx context.Context, partnerUserID int64) (User, error) {
	rec, err := a.getUserRaw(ctx, partnerUserID)
	if err != nil {
		return User{}, err
	}
	user, err := normalizeUser(rec)
	if err != nil {
		return User{}, classify("getUser", map[string]string{"partner_user_id": fmt.Sprint(partnerUserID)}, err)
	}
	return user, nil
}

func (a *Adapter) getUserRaw(ctx context.Context, partnerUserID int64) (map[string]any, error) {
	op := "getUser"
	fields := map[string]string{"partner_user_id": fmt.Sprint(partnerUserID)}
	return a.one(ctx, op, fields, http.MethodGet, fmt.Sprintf("users/%d", partnerUserID), nil, nil, "users")
}

// UserDiff computes the fields of the desired person record that differ from
// the partner's current record, optionally restricted to a field subset.
func (a *Adapter) UserDiff(ctx context.Context, profile UserProfile, company CompanyProfile, fields ...string) (map[string]any, error) {
	desired, err := desiredUserBody(profile, company)
	if err != nil {
		return nil, classify("userDiff", map[string]string{"partner_user_id": fmt.Sprint(profile.PartnerID)}, err)
	}
	current, err := a.getUserRaw(ctx, profile.PartnerID)
	if err != nil {
		return nil, err
	}
	return diffBody(subsetBody(desired, fields), current), nil
}

// UpdateUser pushes changed person fields to the partner. When the partner
// record already matches, the call is an explicit no-op, not a failure. A
// phone change additionally emits a domain notification once the partner has
// accepted the update.
func (a *Adapter) UpdateUser(ctx context.Context, profile UserProfile, company CompanyProfile, fields ...string) (User, error) {
	op := "updateUser"
	opFields := map[string]string{"partner_user_id": fmt.Sprint(profile.PartnerID)}

	diff, err := a.UserDiff(ctx, profile, company, fields...)
	if err != nil {
		return User{}, err
	}

	if len(diff) == 0 {
		a.logger.Info("partner user already in sync",
			slog.Int64("partner_user_id", profile.PartnerID),
			slog.Any("fields", fields),
		)
		return userFromProfile(profile, company), nil
	}

	rec, err := a.one(ctx, op, opFields, http.MethodPut, fmt.Sprintf("users/%d", profile.PartnerID), nil, diff, "users")
	if err != nil {
		return User{}, err
	}

	if _, changed := diff["phone"]; changed && a.notifier != nil {
		_ = a.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindPhoneUpdated,
			Destination: profile.Email,
			Body:        fmt.Sprintf("phone number changed for partner user %d", profile.PartnerID),
		})
	}

	user, err := normalizeUser(rec)
	if err != nil {
		return User{}, classify(op, opFields, err)
	}
	return user, nil
}

// userFromProfile materializes the in-sync short-circuit result without a
// partner round trip.
func userFromProfile(profile UserProfile, company CompanyProfile) User {
	userType := UserPhysical
	legalName := ""
	if company.Individual {
		legalName = company.LegalName
	}
	return User{
		ID:           profile.PartnerID,
		Type:         userType,
		Email:        profile.Email,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		LegalName:    legalName,
		Phone:        profile.Phone,
		Country:      profile.Country,
		ParentUserID: profile.ParentPartnerID,
	}
}

// CreateCompany registers the corporate record at the partner.
func (a *Adapter) CreateCompany(ctx context.Context, company CompanyProfile) (User, error) {
	op := "createCompany"
	fields := map[string]string{"email": company.Email}

	payload, err := companyBody(company)
	if err != nil {
		return User{}, classify(op, fields, err)
	}
	payload["accessTag"] = accessTag(op, company.Email)

	rec, err := a.one(ctx, op, fields, http.MethodPost, "users", nil, payload, "users")
	if err != nil {
		return User{}, err
	}
	user, err := normalizeUser(rec)
	if err != nil {
		return User{}, classify(op, fields, err)
	}
	return user, nil
}

// UpdateCompany pushes the full corporate record to the partner.
func (a *Adapter) UpdateCompany(ctx context.Context, company CompanyProfile) (User, error) {
	op := "updateCompany"
	fields := map[string]string{"partner_user_id": fmt.Sprint(company.PartnerID)}

	payload, err := companyBody(company)
	if err != nil {
		return User{}, classify(op, fields, err)
	}

	rec, err := a.one(ctx, op, fields, http.MethodPut, fmt.Sprintf("users/%d", company.PartnerID), nil, payload, "users")
	if err != nil {
		return User{}, err
	}
	user, err := normalizeUser(rec)
	if err != nil {
		return User{}, classify(op, fields, err)
	}
	return user, nil
}

// CreateKYCReview submits the user's KYC file for partner review.
func (a *Adapter) CreateKYCReview(ctx context.Context, partnerUserID int64) (User, error) {
	op := "createKycReview"
	fields := map[string]string{"partner_user_id": fmt.Sprint(partnerUserID)}

	rec, err := a.one(ctx, op, fields, http.MethodPut, fmt.Sprintf("users/%d/Kycreview/", partnerUserID), nil, nil, "users")
	if err != nil {
		return User{}, err
	}
	user, err := normalizeUser(rec)
	if err != nil {
		return User{}, classify(op, fields, err)
	}
	return user, nil
}

// CreateWallet opens a payment account for the company's partner record.
func (a *Adapter) CreateWallet(ctx context.Context, partnerUserID int64, currency string) (Wallet, error) {
	op := "createWallet"
	fields := map[string]string{"partner_user_id": fmt.Sprint(partnerUserID)}

	tag := accessTag(op, partnerUserID)
	payload := walletBody(partnerUserID, currency, a.cfg.TariffID, a.cfg.WalletEventName, tag)

	rec, err := a.one(ctx, op, fields, http.MethodPost, "wallets", nil, payload, "wallets")
	if err != nil {
		return Wallet{}, err
	}
	wallet, err := normalizeWallet(rec)
	if err != nil {
		return Wallet{}, classify(op, fields, err)
	}
	return wallet, nil
}

// GetWallet fetches a payment account by partner id.
func (a *Adapter) GetWallet(ctx context.Context, partnerWalletID int64) (Wallet, error) {
	op := "getWallet"
	fields := map[string]string{"partner_wallet_id": fmt.Sprint(partnerWalletID)}

	rec, err := a.one(ctx, op, fields, http.MethodGet, fmt.Sprintf("wallets/%d", partnerWalletID), nil, map[string]any{"origin": "OPERATOR"}, "wallets")
	if err != nil {
		return Wallet{}, err
	}
	wallet, err := normalizeWallet(rec)
	if err != nil {
		return Wallet{}, classify(op, fields, err)
	}
	return wallet, nil
}

// CloseWallet closes a payment account.
func (a *Adapter) CloseWallet(ctx context.Context, partnerWalletID int64) (Wallet, error) {
	op := "closeWallet"
	fields := map[string]string{"partner_wallet_id": fmt.Sprint(partnerWalletID)}

	rec, err := a.one(ctx, op, fields, http.MethodDelete, fmt.Sprintf("wallets/%d", partnerWalletID), nil, map[string]any{"origin": "OPERATOR"}, "wallets")
	if err != nil {
		return Wallet{}, err
	}
	wallet, err := normalizeWallet(rec)
	if err != nil {
		return Wallet{}, classify(op, fields, err)
	}
	return wallet, nil
}

// GetBalance fetches the wallet's balance. The balances endpoint is queried
// by wallet id, which is unique, so the single-result invariant applies.
func (a *Adapter) GetBalance(ctx context.Context, partnerWalletID int64) (Balance, error) {
	op := "getBalance"
	fields := map[string]string{"partner_wallet_id": fmt.Sprint(partnerWalletID)}

	query := url.Values{}
	query.Set("walletId", fmt.Sprint(partnerWalletID))

	rec, err := a.one(ctx, op, fields, http.MethodGet, "balances", query, nil, "balances")
	if err != nil {
		return Balance{}, err
	}
	balance, err := normalizeBalance(rec)
	if err != nil {
		return Balance{}, classify(op, fields, err)
	}
	return balance, nil
}

// CreateVirtualCard issues a virtual card. The idempotency tag folds in the
// minute clock because the same holder may legitimately order several cards.
func (a *Adapter) CreateVirtualCard(ctx context.Context, req CardRequest) (Card, error) {
	op := "createVirtualCard"
	fields := map[string]string{
		"partner_user_id":   fmt.Sprint(req.PartnerUserID),
		"partner_wallet_id": fmt.Sprint(req.PartnerWalletID),
	}

	tag := accessTag(op, a.now(), req.PartnerUserID, req.PartnerWalletID, req.HolderEmail)
	payload := virtualCardBody(req, a.cfg.PermsGroup, a.cfg.CardPrint, tag)

	rec, err := a.one(ctx, op, fields, http.MethodPost, "cards/CreateVirtual", nil, payload, "cards")
	if err != nil {
		return Card{}, err
	}
	card, err := normalizeCard(rec)
	if err != nil {
		return Card{}, classify(op, fields, err)
	}
	return card, nil
}

// CreatePhysicalCard issues a card for physical delivery: the partner models
// this as a virtual issuance followed by a conversion.
func (a *Adapter) CreatePhysicalCard(ctx context.Context, req CardRequest) (Card, error) {
	virtual, err := a.CreateVirtualCard(ctx, req)
	if err != nil {
		return Card{}, err
	}
	return a.ConvertToPhysicalCard(ctx, virtual.ID, req.Delivery)
}

// ConvertToPhysicalCard converts an issued virtual card into a physical one
// shipped to the delivery address.
func (a *Adapter) ConvertToPhysicalCard(ctx context.Context, cardID int64, addr DeliveryAddress) (Card, error) {
	op := "convertToPhysicalCard"
	fields := map[string]string{"card_id": fmt.Sprint(cardID)}

	payload := convertCardBody(addr, accessTag(op, cardID))

	rec, err := a.one(ctx, op, fields, http.MethodPut, fmt.Sprintf("cards/%d/ConvertVirtual/", cardID), nil, payload, "cards")
	if err != nil {
		return Card{}, err
	}
	card, err := normalizeCard(rec)
	if err != nil {
		return Card{}, classify(op, fields, err)
	}
	return card, nil
}

// ActivateCard activates a delivered card.
func (a *Adapter) ActivateCard(ctx context.Context, cardID int64) (Card, error) {
	return a.cardAction(ctx, "activateCard", cardID, fmt.Sprintf("cards/%d/Activate/", cardID), nil)
}

// GetCard fetches a card record by partner id.
func (a *Adapter) GetCard(ctx context.Context, cardID int64) (Card, error) {
	op := "getCard"
	fields := map[string]string{"card_id": fmt.Sprint(cardID)}

	rec, err := a.one(ctx, op, fields, http.MethodGet, fmt.Sprintf("cards/%d", cardID), nil, nil, "cards")
	if err != nil {
		return Card{}, err
	}
	card, err := normalizeCard(rec)
	if err != nil {
		return Card{}, classify(op, fields, err)
	}
	return card, nil
}

// SetCardStatus locks, unlocks or flags a card lost/stolen.
func (a *Adapter) SetCardStatus(ctx context.Context, cardID int64, status CardStatus) (Card, error) {
	op := "setCardStatus"
	fields := map[string]string{"card_id": fmt.Sprint(cardID), "status": string(status)}

	lockStatus, err := partnerCardLockStatus(status)
	if err != nil {
		return Card{}, classify(op, fields, err)
	}

	rec, err := a.one(ctx, op, fields, http.MethodPut, fmt.Sprintf("cards/%d/LockUnlock/", cardID), nil, map[string]any{"lockStatus": lockStatus}, "cards")
	if err != nil {
		return Card{}, err
	}
	card, err := normalizeCard(rec)
	if err != nil {
		return Card{}, classify(op, fields, err)
	}
	return card, nil
}

// SetCardPIN sets a new PIN on the card. The PIN never appears in errors or
// logs.
func (a *Adapter) SetCardPIN(ctx context.Context, cardID int64, newPIN, confirmPIN string) (Card, error) {
	return a.cardAction(ctx, "setCardPin", cardID, fmt.Sprintf("cards/%d/setPIN/", cardID), map[string]any{
		"newPIN":     newPIN,
		"confirmPIN": confirmPIN,
	})
}

// UnblockCardPIN resets the card's PIN try counter.
func (a *Adapter) UnblockCardPIN(ctx context.Context, cardID int64) (Card, error) {
	return a.cardAction(ctx, "unblockCardPin", cardID, fmt.Sprintf("cards/%d/UnblockPIN/", cardID), nil)
}

// UpdateCardLimits sets the weekly spending ceilings.
func (a *Adapter) UpdateCardLimits(ctx context.Context, cardID int64, limits CardLimits) (Card, error) {
	return a.cardAction(ctx, "updateCardLimits", cardID, fmt.Sprintf("cards/%d/Limits/", cardID), map[string]any{
		"limitAtmWeek":     limits.ATMWeek,
		"limitPaymentWeek": limits.PaymentWeek,
	})
}

// UpdateCardOptions toggles the card's payment channels.
func (a *Adapter) UpdateCardOptions(ctx context.Context, cardID int64, opts CardOptions) (Card, error) {
	return a.cardAction(ctx, "updateCardOptions", cardID, fmt.Sprintf("cards/%d/Options/", cardID), map[string]any{
		"foreign": opts.Foreign,
		"online":  opts.Online,
		"atm":     opts.ATM,
		"nfc":     opts.NFC,
	})
}

// cardAction shares the PUT-then-normalize shape of the card lifecycle calls.
func (a *Adapter) cardAction(ctx context.Context, op string, cardID int64, path string, payload map[string]any) (Card, error) {
	fields := map[string]string{"card_id": fmt.Sprint(cardID)}

	rec, err := a.one(ctx, op, fields, http.MethodPut, path, nil, payload, "cards")
	if err != nil {
		return Card{}, err
	}
	card, err := normalizeCard(rec)
	if err != nil {
		return Card{}, classify(op, fields, err)
	}
	return card, nil
}

// Register3DSecure enrolls the card for 3-D Secure authentication.
func (a *Adapter) Register3DSecure(ctx context.Context, partnerUserID, cardID int64) error {
	op := "register3DSecure"
	fields := map[string]string{
		"partner_user_id": fmt.Sprint(partnerUserID),
		"card_id":         fmt.Sprint(cardID),
	}

	payload := map[string]any{
		"accessTag": accessTag(op, partnerUserID, cardID),
		"cardId":    cardID,
	}
	if _, err := a.transport.Do(ctx, http.MethodPost, "cards/Register3DS", nil, payload); err != nil {
		return classify(op, fields, err)
	}
	return nil
}

// CreatePayout orders an outbound credit transfer. The idempotency tag is a
// pure function of the distinguishing arguments plus the minute clock; a
// caller-supplied ClientRef replaces the clock element so retries across
// minute boundaries stay deduplicated.
func (a *Adapter) CreatePayout(ctx context.Context, req PayoutRequest) (Payout, error) {
	op := "createPayout"
	fields := map[string]string{
		"partner_wallet_id":      fmt.Sprint(req.PartnerWalletID),
		"partner_beneficiary_id": fmt.Sprint(req.PartnerBeneficiaryID),
		"amount":                 amountString(req.Amount),
	}

	var clock any = a.now()
	if req.ClientRef != "" {
		clock = req.ClientRef
	}
	var schedule any
	if req.ScheduleID != nil {
		schedule = *req.ScheduleID
	}
	tag := accessTag(op, req.PartnerWalletID, req.PartnerBeneficiaryID, schedule, req.Amount, req.Label, clock)

	rec, err := a.one(ctx, op, fields, http.MethodPost, "payouts", nil, payoutBody(req, tag), "payouts")
	if err != nil {
		return Payout{}, err
	}
	payout, err := normalizePayout(rec)
	if err != nil {
		return Payout{}, classify(op, fields, err)
	}
	return payout, nil
}

// CancelPayout cancels a pending outbound transfer.
func (a *Adapter) CancelPayout(ctx context.Context, payoutID int64) (Payout, error) {
	op := "cancelPayout"
	fields := map[string]string{"payout_id": fmt.Sprint(payoutID)}

	rec, err := a.one(ctx, op, fields, http.MethodDelete, fmt.Sprintf("payouts/%d", payoutID), nil, nil, "payouts")
	if err != nil {
		return Payout{}, err
	}
	payout, err := normalizePayout(rec)
	if err != nil {
		return Payout{}, classify(op, fields, err)
	}
	return payout, nil
}

// CreateBeneficiary registers a credit-transfer creditor. The IBAN must be
// SEPA-reachable; ineligible beneficiaries are rejected locally before any
// network call.
func (a *Adapter) CreateBeneficiary(ctx context.Context, partnerUserID int64, name, iban, bic string) (Beneficiary, error) {
	op := "createBeneficiary"
	fields := map[string]string{
		"partner_user_id": fmt.Sprint(partnerUserID),
		"name":            name,
	}

	if !inSepaZone(iban) {
		return Beneficiary{}, &OpError{Op: op, Kind: ErrIneligibleBeneficiary, Fields: fields}
	}

	tag := accessTag(op, partnerUserID, iban)
	rec, err := a.one(ctx, op, fields, http.MethodPost, "beneficiaries", nil, beneficiaryBody(partnerUserID, name, iban, bic, tag), "beneficiaries")
	if err != nil {
		return Beneficiary{}, err
	}
	beneficiary, err := normalizeBeneficiary(rec)
	if err != nil {
		return Beneficiary{}, classify(op, fields, err)
	}
	return beneficiary, nil
}

// GetBeneficiary fetches a beneficiary record by partner id.
func (a *Adapter) GetBeneficiary(ctx context.Context, beneficiaryID int64) (Beneficiary, error) {
	op := "getBeneficiary"
	fields := map[string]string{"beneficiary_id": fmt.Sprint(beneficiaryID)}

	rec, err := a.one(ctx, op, fields, http.MethodGet, fmt.Sprintf("beneficiaries/%d", beneficiaryID), nil, nil, "beneficiaries")
	if err != nil {
		return Beneficiary{}, err
	}
	beneficiary, err := normalizeBeneficiary(rec)
	if err != nil {
		return Beneficiary{}, classify(op, fields, err)
	}
	return beneficiary, nil
}

// CreateDirectDebitDebtor registers a SEPA B2B direct-debit debtor with its
// whitelisted mandate.
func (a *Adapter) CreateDirectDebitDebtor(ctx context.Context, m DebtorMandate) (Beneficiary, error) {
	op := "createDirectDebitDebtor"
	fields := map[string]string{
		"partner_user_id":   fmt.Sprint(m.PartnerUserID),
		"mandate_reference": m.UniqueMandateReference,
	}

	rec, err := a.one(ctx, op, fields, http.MethodPost, "beneficiaries", nil, debtorBody(m), "beneficiaries")
	if err != nil {
		return Beneficiary{}, err
	}
	beneficiary, err := normalizeBeneficiary(rec)
	if err != nil {
		return Beneficiary{}, classify(op, fields, err)
	}
	return beneficiary, nil
}

// GetDirectDebitDebtor fetches a debtor record by partner id.
func (a *Adapter) GetDirectDebitDebtor(ctx context.Context, beneficiaryID int64) (Beneficiary, error) {
	op := "getDirectDebitDebtor"
	fields := map[string]string{"beneficiary_id": fmt.Sprint(beneficiaryID)}

	rec, err := a.one(ctx, op, fields, http.MethodGet, fmt.Sprintf("beneficiaries/%d", beneficiaryID), nil, nil, "beneficiaries")
	if err != nil {
		return Beneficiary{}, err
	}
	beneficiary, err := normalizeBeneficiary(rec)
	if err != nil {
		return Beneficiary{}, classify(op, fields, err)
	}
	return beneficiary, nil
}

// UpdateDirectDebitDebtor replaces the debtor's mandate data.
func (a *Adapter) UpdateDirectDebitDebtor(ctx context.Context, beneficiaryID int64, m DebtorMandate) error {
	op := "updateDirectDebitDebtor"
	fields := map[string]string{"beneficiary_id": fmt.Sprint(beneficiaryID)}

	if _, err := a.transport.Do(ctx, http.MethodPut, fmt.Sprintf("beneficiaries/%d", beneficiaryID), nil, debtorBody(m)); err != nil {
		return classify(op, fields, err)
	}
	return nil
}

// BlacklistDirectDebit blocks every future direct-debit collection for the
// beneficiary and clears its B2B whitelist.
func (a *Adapter) BlacklistDirectDebit(ctx context.Context, beneficiaryID int64) error {
	op := "blacklistDirectDebit"
	fields := map[string]string{"beneficiary_id": fmt.Sprint(beneficiaryID)}

	payload := map[string]any{
		"sddCoreBlacklist": []string{"*"},
		"sddB2bWhitelist":  []any{},
	}
	if _, err := a.transport.Do(ctx, http.MethodPut, fmt.Sprintf("beneficiaries/%d", beneficiaryID), nil, payload); err != nil {
		return classify(op, fields, err)
	}
	return nil
}

// CreateChequePayin submits a cheque remittance for collection.
func (a *Adapter) CreateChequePayin(ctx context.Context, d ChequeDeposit) (Payin, error) {
	op := "createChequePayin"
	fields := map[string]string{
		"partner_wallet_id": fmt.Sprint(d.PartnerWalletID),
		"amount":            amountString(d.Amount),
	}

	payload, err := chequePayinBody(d)
	if err != nil {
		return Payin{}, classify(op, fields, err)
	}

	rec, err := a.one(ctx, op, fields, http.MethodPost, "payins", nil, payload, "payins")
	if err != nil {
		return Payin{}, err
	}
	payin, err := normalizePayin(rec)
	if err != nil {
		return Payin{}, classify(op, fields, err)
	}
	return payin, nil
}

// CreateDocument uploads a KYC supporting document for the user.
func (a *Adapter) CreateDocument(ctx context.Context, partnerUserID, documentTypeID int64, name, contentBase64 string) (Document, error) {
	op := "createDocument"
	fields := map[string]string{
		"partner_user_id":  fmt.Sprint(partnerUserID),
		"document_type_id": fmt.Sprint(documentTypeID),
		"name":             name,
	}

	payload := map[string]any{
		"userId":            partnerUserID,
		"documentTypeId":    documentTypeID,
		"name":              name,
		"fileContentBase64": contentBase64,
	}

	rec, err := a.one(ctx, op, fields, http.MethodPost, "documents", nil, payload, "documents")
	if err != nil {
		return Document{}, err
	}
	document, err := normalizeDocument(rec)
	if err != nil {
		return Document{}, classify(op, fields, err)
	}
	return document, nil
}

// DebitInvoiceFees debits an internal invoice's fees from the client wallet
// into the configured fee wallet. The invoice reference keys both the
// idempotency tag and the transfer tag used for reconciliation.
func (a *Adapter) DebitInvoiceFees(ctx context.Context, clientWalletID int64, amount decimal.Decimal, currency, invoiceRef string) (Transfer, error) {
	op := "debitInvoiceFees"
	fields := map[string]string{
		"partner_wallet_id": fmt.Sprint(clientWalletID),
		"invoice_ref":       invoiceRef,
		"amount":            amountString(amount),
	}

	tag := accessTag(invoiceRef, a.now())
	payload := feeTransferBody(clientWalletID, a.cfg.FeeWalletID, amount, currency, invoiceRef, tag)

	rec, err := a.one(ctx, op, fields, http.MethodPost, "transfers", nil, payload, "transfers")
	if err != nil {
		return Transfer{}, err
	}
	transfer, err := normalizeTransfer(rec)
	if err != nil {
		return Transfer{}, classify(op, fields, err)
	}
	return transfer, nil
}

// FindTransfers queries wallet-to-wallet transfers. This is a genuine list
// operation; the single-result invariant does not apply.
func (a *Adapter) FindTransfers(ctx context.Context, query url.Values) ([]Transfer, error) {
	op := "findTransfers"
	fields := map[string]string{"query": query.Encode()}

	envelope, err := a.transport.Do(ctx, http.MethodGet, "transfers", query, nil)
	if err != nil {
		return nil, classify(op, fields, err)
	}
	records, err := listRecords(envelope, "transfers")
	if err != nil {
		return nil, classify(op, fields, err)
	}

	transfers := make([]Transfer, 0, len(records))
	for _, rec := range records {
		transfer, err := normalizeTransfer(rec)
		if err != nil {
			return nil, classify(op, fields, err)
		}
		transfers = append(transfers, transfer)
	}
	return transfers, nil
}
