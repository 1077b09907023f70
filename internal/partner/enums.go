package partner

import "fmt"

// Partner-side fixed codes. These are wire constants, not configuration.
const (
	partnerUserTypePhysical  = 1
	partnerUserTypeCorporate = 2

	partnerWalletTypePayment = 10

	partnerEntityTypeActiveNonFinancial = 4

	partnerSpecifiedUSPersonNo = 0

	// transferTypeClientFees tags internal fee transfers on the transfers endpoint.
	transferTypeClientFees = 3
)

// UserType distinguishes natural persons from corporate records.
type UserType string

const (
	UserPhysical  UserType = "physical"
	UserCorporate UserType = "corporate"
)

func userTypeFromPartner(code int64) (UserType, error) {
	switch code {
	case partnerUserTypePhysical:
		return UserPhysical, nil
	case partnerUserTypeCorporate:
		return UserCorporate, nil
	default:
		return "", fmt.Errorf("unknown partner user type %d", code)
	}
}

// Civility is the domain salutation; the partner expects its own short codes.
type Civility string

const (
	CivilityMr  Civility = "mr"
	CivilityMrs Civility = "mrs"
	CivilityMs  Civility = "ms"
)

var civilityToPartner = map[Civility]string{
	CivilityMr:  "M",
	CivilityMrs: "MME",
	CivilityMs:  "MLLE",
}

// partnerCivility returns the partner code, or "" when the domain value is
// unset or unknown so the field can be omitted from the payload.
func partnerCivility(c Civility) string {
	return civilityToPartner[c]
}

// Parent linkage codes for stakeholders attached to a corporate record.
const (
	partnerParentLeader      = "leader"
	partnerParentShareholder = "shareholder"

	partnerEmployeeLeader = "leader"
	partnerEmployeeNone   = "none"

	partnerControllingShareholder = 1
	partnerControllingDirector    = 2
)

// LegalForm is the domain company legal form; the partner uses the numeric
// registry classification.
type LegalForm string

const (
	LegalFormSoleProprietor LegalForm = "sole_proprietor"
	LegalFormSARL           LegalForm = "sarl"
	LegalFormSAS            LegalForm = "sas"
	LegalFormSASU           LegalForm = "sasu"
	LegalFormEURL           LegalForm = "eurl"
	LegalFormSA             LegalForm = "sa"
	LegalFormSCI            LegalForm = "sci"
)

var legalFormToPartner = map[LegalForm]int{
	LegalFormSoleProprietor: 1000,
	LegalFormEURL:           5498,
	LegalFormSARL:           5499,
	LegalFormSA:             5599,
	LegalFormSAS:            5710,
	LegalFormSASU:           5720,
	LegalFormSCI:            6540,
}

func partnerLegalForm(f LegalForm) (int, error) {
	code, ok := legalFormToPartner[f]
	if !ok {
		return 0, fmt.Errorf("no partner code for legal form %q", f)
	}
	return code, nil
}

// TransferStatus is the domain status of an outbound transfer or payout.
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferCanceled  TransferStatus = "canceled"
	TransferValidated TransferStatus = "validated"
)

var transferStatusFromPartnerTable = map[string]TransferStatus{
	"PENDING":   TransferPending,
	"CANCELED":  TransferCanceled,
	"VALIDATED": TransferValidated,
}

func transferStatusFromPartner(code string) (TransferStatus, error) {
	s, ok := transferStatusFromPartnerTable[code]
	if !ok {
		return "", fmt.Errorf("unknown partner transfer status %q", code)
	}
	return s, nil
}

// PayinMethod identifies how funds entered a wallet.
type PayinMethod string

const (
	PayinCreditTransfer PayinMethod = "credit_transfer"
	PayinDirectDebit    PayinMethod = "direct_debit"
	PayinCardTopup      PayinMethod = "card_topup"
	PayinCheque         PayinMethod = "cheque"
)

// Partner payment method identifiers, transported as strings.
const (
	partnerMethodCreditTransfer = "20"
	partnerMethodDirectDebit    = "21"
	partnerMethodCardTopup      = "25"
	partnerMethodCheque         = "26"
)

var payinMethodFromPartnerTable = map[string]PayinMethod{
	partnerMethodCreditTransfer: PayinCreditTransfer,
	partnerMethodDirectDebit:    PayinDirectDebit,
	partnerMethodCardTopup:      PayinCardTopup,
	partnerMethodCheque:         PayinCheque,
}

func payinMethodFromPartner(code string) (PayinMethod, error) {
	m, ok := payinMethodFromPartnerTable[code]
	if !ok {
		return "", fmt.Errorf("unknown partner payment method %q", code)
	}
	return m, nil
}

// DrawerType distinguishes cheque drawers: a natural person or a company.
type DrawerType string

const (
	DrawerPerson  DrawerType = "person"
	DrawerCompany DrawerType = "company"
)

func drawerIsNaturalPerson(d DrawerType) bool { return d == DrawerPerson }

func drawerTypeFromPartner(isNaturalPerson bool) DrawerType {
	if isNaturalPerson {
		return DrawerPerson
	}
	return DrawerCompany
}

// CardStatus is the domain lock state of a card.
type CardStatus string

const (
	CardUnlocked CardStatus = "unlocked"
	CardLocked   CardStatus = "locked"
	CardLost     CardStatus = "lost"
	CardStolen   CardStatus = "stolen"
)

// The lock/unlock endpoint takes numeric codes; card records report the
// status as an upper-case word. Both directions are covered here.
var cardStatusToPartnerLock = map[CardStatus]int{
	CardUnlocked: 0,
	CardLocked:   1,
	CardLost:     2,
	CardStolen:   3,
}

var cardStatusFromPartnerTable = map[string]CardStatus{
	"UNLOCK": CardUnlocked,
	"LOCK":   CardLocked,
	"LOST":   CardLost,
	"STOLEN": CardStolen,
}

func partnerCardLockStatus(s CardStatus) (int, error) {
	code, ok := cardStatusToPartnerLock[s]
	if !ok {
		return 0, fmt.Errorf("no partner lock code for card status %q", s)
	}
	return code, nil
}

func cardStatusFromPartner(code string) (CardStatus, error) {
	s, ok := cardStatusFromPartnerTable[code]
	if !ok {
		return "", fmt.Errorf("unknown partner card status %q", code)
	}
	return s, nil
}

// CardActivation reflects whether a card has been activated by its holder.
type CardActivation string

const (
	CardInactive  CardActivation = "inactive"
	CardActivated CardActivation = "activated"
)

func cardActivationFromPartner(isLive int64) CardActivation {
	if isLive == 1 {
		return CardActivated
	}
	return CardInactive
}

// CardDesign is the visual product of a card.
type CardDesign string

const (
	CardDesignStandard CardDesign = "standard"
	CardDesignBlack    CardDesign = "black"
)

var cardDesignFromPartnerTable = map[string]CardDesign{
	"classic": CardDesignStandard,
	"black":   CardDesignBlack,
}

func cardDesignFromPartner(code string) CardDesign {
	if d, ok := cardDesignFromPartnerTable[code]; ok {
		return d
	}
	return CardDesignStandard
}

// DocumentStatus is the review state of a KYC supporting document.
type DocumentStatus string

const (
	DocumentPending   DocumentStatus = "pending"
	DocumentValidated DocumentStatus = "validated"
	DocumentCanceled  DocumentStatus = "canceled"
)

var documentStatusFromPartnerTable = map[string]DocumentStatus{
	"PENDING":   DocumentPending,
	"VALIDATED": DocumentValidated,
	"CANCELED":  DocumentCanceled,
}

func documentStatusFromPartner(code string) (DocumentStatus, error) {
	s, ok := documentStatusFromPartnerTable[code]
	if !ok {
		return "", fmt.Errorf("unknown partner document status %q", code)
	}
	return s, nil
}

// DepositStatus is the domain state of a cheque deposit, derived from the
// partner's numeric codeStatus on cheque payins.
type DepositStatus string

const (
	DepositReceived    DepositStatus = "received"
	DepositCredited    DepositStatus = "credited"
	DepositRejected    DepositStatus = "rejected"
	DepositUnderReview DepositStatus = "under_review"
)

var depositStatusFromCodeTable = map[int64]DepositStatus{
	140001: DepositReceived,
	140002: DepositUnderReview,
	140003: DepositCredited,
	140004: DepositRejected,
	140005: DepositRejected,
}

func depositStatusFromCode(code int64) (DepositStatus, error) {
	s, ok := depositStatusFromCodeTable[code]
	if !ok {
		return "", fmt.Errorf("unknown partner cheque status code %d", code)
	}
	return s, nil
}

// CardTransactionStatus is the authorization outcome of a card payment.
type CardTransactionStatus string

const (
	CardTransactionAccepted CardTransactionStatus = "accepted"
	CardTransactionDeclined CardTransactionStatus = "declined"
	CardTransactionCleared  CardTransactionStatus = "cleared"
)

var cardTransactionStatusFromPartnerTable = map[string]CardTransactionStatus{
	"A": CardTransactionAccepted,
	"R": CardTransactionDeclined,
	"S": CardTransactionCleared,
}

func cardTransactionStatusFromPartner(code string) (CardTransactionStatus, error) {
	s, ok := cardTransactionStatusFromPartnerTable[code]
	if !ok {
		return "", fmt.Errorf("unknown partner card transaction status %q", code)
	}
	return s, nil
}

// PayinRefundStatus is the state of a returned payin.
type PayinRefundStatus string

const (
	PayinRefundPending   PayinRefundStatus = "pending"
	PayinRefundValidated PayinRefundStatus = "validated"
	PayinRefundCanceled  PayinRefundStatus = "canceled"
)

var payinRefundStatusFromPartnerTable = map[string]PayinRefundStatus{
	"PENDING":   PayinRefundPending,
	"VALIDATED": PayinRefundValidated,
	"CANCELED":  PayinRefundCanceled,
}

func payinRefundStatusFromPartner(code string) (PayinRefundStatus, error) {
	s, ok := payinRefundStatusFromPartnerTable[code]
	if !ok {
		return "", fmt.Errorf("unknown partner payin refund status %q", code)
	}
	return s, nil
}

// RejectReason is the normalized reason of a direct-debit rejection notice.
type RejectReason string

const (
	RejectIncorrectAccount    RejectReason = "incorrect_account_number"
	RejectClosedAccount       RejectReason = "closed_account"
	RejectBlockedAccount      RejectReason = "blocked_account"
	RejectInsufficientFunds   RejectReason = "insufficient_funds"
	RejectDuplicateCollection RejectReason = "duplicate_collection"
	RejectNoMandate           RejectReason = "no_mandate"
	RejectMandateDataMissing  RejectReason = "mandate_data_missing"
	RejectRefusedByDebtor     RejectReason = "refused_by_debtor"
	RejectRegulatoryReason    RejectReason = "regulatory_reason"
	RejectUnknown             RejectReason = "unknown"
)

var rejectReasonFromPartnerTable = map[string]RejectReason{
	"AC01": RejectIncorrectAccount,
	"AC04": RejectClosedAccount,
	"AC06": RejectBlockedAccount,
	"AM04": RejectInsufficientFunds,
	"AM05": RejectDuplicateCollection,
	"MD01": RejectNoMandate,
	"MD02": RejectMandateDataMissing,
	"MD07": RejectRefusedByDebtor,
	"MS02": RejectRefusedByDebtor,
	"RR01": RejectRegulatoryReason,
	"RR02": RejectRegulatoryReason,
	"RR03": RejectRegulatoryReason,
	"RR04": RejectRegulatoryReason,
}

// rejectReasonFromPartner tolerates unseen codes: reject notices arrive on
// webhooks and an unmapped reason must not abort ingestion.
func rejectReasonFromPartner(code string) RejectReason {
	if r, ok := rejectReasonFromPartnerTable[code]; ok {
		return r
	}
	return RejectUnknown
}

// BeneficiaryType separates credit-transfer creditors from direct-debit debtors.
type BeneficiaryType string

const (
	BeneficiaryCreditor BeneficiaryType = "creditor"
	BeneficiaryDebtor   BeneficiaryType = "debtor"
)
