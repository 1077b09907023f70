package partner

import (
	"time"

	"github.com/shopspring/decimal"
)

// Domain inputs. These carry internal vocabulary; request builders translate
// them into partner vocabulary.

// UserProfile describes a natural person attached to a company record.
type UserProfile struct {
	PartnerID    int64 // zero until the partner has assigned one
	Email        string
	Civility     Civility
	FirstName    string
	LastName     string
	BirthDate    time.Time
	BirthPlace   string
	BirthCountry string // ISO code
	Nationality  string // ISO code
	Street       string
	Postcode     string
	City         string
	Country      string // ISO code
	Phone        string

	// Stakeholder linkage within the parent company.
	ParentPartnerID       int64
	Director              bool
	EffectiveBeneficiary  bool
	BeneficiaryPercentage float64

	// KYC ranges, only relevant for sole proprietors.
	IncomeRange    string
	PersonalAssets string
}

// CompanyProfile describes the corporate record. Individual companies (sole
// proprietorships) are registered at the partner as a physical person built
// from the union of company fields and the single associated user's personal
// fields.
type CompanyProfile struct {
	PartnerID          int64
	Email              string
	LegalName          string
	LegalForm          LegalForm
	LegalSector        string // activity classification code
	RegistrationNumber string
	RegistrationDate   time.Time
	AnnualTurnover     string // declared range
	EmployeesRange     string
	NetIncomeRange     string
	Street             string
	Postcode           string
	City               string
	Country            string // ISO code
	Phone              string

	ActivityOutsideEU          bool
	EconomicSanctions          bool
	ResidentCountriesSanctions bool
	InvolvedSanctions          bool

	Individual     bool
	SoleProprietor *UserProfile // set when Individual
}

// DeliveryAddress is the card delivery destination.
type DeliveryAddress struct {
	Civility    Civility
	FirstName   string
	LastName    string
	Street      string
	Additional1 string
	Additional2 string
	City        string
	Postcode    string
	Country     string // ISO code
}

// CardRequest captures everything needed to issue a card.
type CardRequest struct {
	PartnerUserID    int64
	PartnerWalletID  int64
	HolderEmail      string
	PIN              string // never logged
	Delivery         DeliveryAddress
	LimitATMWeek     int64
	LimitPaymentWeek int64
}

// CardOptions toggles payment channels on an issued card.
type CardOptions struct {
	Foreign bool
	Online  bool
	ATM     bool
	NFC     bool
}

// CardLimits carries the weekly spending ceilings.
type CardLimits struct {
	ATMWeek     int64
	PaymentWeek int64
}

// ChequeDeposit is a cheque remittance to collect into a wallet.
type ChequeDeposit struct {
	PartnerWalletID int64
	Amount          decimal.Decimal
	Currency        string
	CMC7            string // packed 31-character serial line
	RLMCKey         string
	DrawerType      DrawerType
	DrawerFirstName string
	DrawerLastName  string
	DrawerCompany   string
}

// PayoutRequest is an outbound credit transfer order.
type PayoutRequest struct {
	PartnerWalletID      int64
	PartnerBeneficiaryID int64
	Amount               decimal.Decimal
	Currency             string
	Label                *string
	ScheduleID           *int64
	SupportingFileLink   *string
	// ClientRef, when set, replaces the minute clock in the idempotency tag
	// so retries across minute boundaries stay deduplicated.
	ClientRef string
}

// DebtorMandate describes a SEPA B2B direct-debit mandate to whitelist.
type DebtorMandate struct {
	PartnerUserID          int64
	Name                   string
	Address                string
	SepaCreditorIdentifier string
	UniqueMandateReference string
	Recurrent              bool
}

// Normalized records. Each partner resource has a strongly-typed internal
// counterpart; no raw partner JSON crosses the facade boundary.

// User is the partner user record for a person or a corporate entity.
type User struct {
	ID           int64
	Type         UserType
	Email        string
	FirstName    string
	LastName     string
	LegalName    string
	Phone        string
	Country      string
	KYCLevel     int64
	KYCReview    int64
	ParentUserID int64
	CreatedAt    time.Time
	ModifiedAt   time.Time
}

// Wallet is the partner payment-account record.
type Wallet struct {
	ID        int64
	UserID    int64
	Currency  string
	Status    string
	IBAN      string
	BIC       string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// Balance is a point-in-time wallet balance.
type Balance struct {
	WalletID     int64
	Currency     string
	Current      decimal.Decimal
	Authorized   decimal.Decimal
	CalculatedAt time.Time
}

// Card is the issued card record. The PAN is only ever present masked.
type Card struct {
	ID               int64
	UserID           int64
	WalletID         int64
	PublicToken      string
	Status           CardStatus
	Activation       CardActivation
	EmbossedName     string
	MaskedPAN        string
	ExpiryDate       time.Time
	OptionATM        bool
	OptionForeign    bool
	OptionNFC        bool
	OptionOnline     bool
	PINTryExceeded   bool
	LimitATMWeek     int64
	LimitPaymentWeek int64
	Design           CardDesign
}

// Beneficiary covers both variants: credit-transfer creditors and SEPA B2B
// direct-debit debtors.
type Beneficiary struct {
	ID                     int64
	UserID                 int64
	Type                   BeneficiaryType
	Name                   string
	Address                string
	IBAN                   string
	BIC                    string
	SepaCreditorIdentifier string
	SddB2bWhitelist        []MandateEntry
	SddCoreBlacklist       []string
	KnownMandateReferences []string
}

// MandateEntry is one whitelisted B2B mandate.
type MandateEntry struct {
	UniqueMandateReference string
	Recurrent              bool
}

// Payout is an outbound transfer record.
type Payout struct {
	ID            int64
	UserID        int64
	WalletID      int64
	BeneficiaryID int64
	TypeID        int64
	Status        TransferStatus
	Amount        decimal.Decimal
	Label         string
	PayoutDate    time.Time
	CreatedAt     time.Time
	ModifiedAt    time.Time
}

// Payin is an inbound funds record. Cheque payins carry the parsed cheque
// sub-record; other methods leave it nil.
type Payin struct {
	ID            int64
	WalletID      int64
	Method        PayinMethod
	Amount        decimal.Decimal
	Status        TransferStatus
	MessageToUser string
	SenderName    string
	SenderIBAN    string
	CreatedAt     time.Time

	Cheque *ChequeDetails
}

// ChequeDetails is the cheque sub-record of a cheque payin.
type ChequeDetails struct {
	CMC7            string // reassembled 31-character line
	RLMCKey         string
	DrawerType      DrawerType
	DrawerFirstName string
	DrawerLastName  string
	Status          DepositStatus
	StatusCode      int64
	Wording         string
}

// Document is a KYC supporting document record.
type Document struct {
	ID       int64
	FileName string
	Status   DocumentStatus
}

// Transfer is a wallet-to-wallet transfer record (fee debits).
type Transfer struct {
	ID                  int64
	WalletID            int64
	BeneficiaryWalletID int64
	TypeID              int64
	Tag                 string
	Status              TransferStatus
	Amount              decimal.Decimal
	Label               string
	Currency            string
	CreatedAt           time.Time
}

// CardTransaction is a card authorization record delivered on webhooks.
type CardTransaction struct {
	ID                int64
	CardID            string
	WalletID          int64
	MCC               string
	MerchantName      string
	MerchantCountry   string
	PaymentCountry    string
	PaymentID         string
	Status            CardTransactionStatus
	Amount            decimal.Decimal
	Is3DS             bool
	TotalPaymentWeek  decimal.Decimal
	TotalATMWeek      decimal.Decimal
	AuthorizationCode string
	AuthorizationNote string
	IssuedAt          time.Time
}

// PayinRefund is a returned payin record.
type PayinRefund struct {
	ID         int64
	WalletID   int64
	PayinID    int64
	Status     PayinRefundStatus
	Amount     decimal.Decimal
	Reason     string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// PayoutRefund is a returned payout record.
type PayoutRefund struct {
	ID         int64
	PayoutID   int64
	Status     TransferStatus
	Amount     decimal.Decimal
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// DirectDebitReject is a rejection notice for a direct-debit collection.
type DirectDebitReject struct {
	WalletID                int64
	TransactionID           string
	BeneficiaryID           int64
	SettlementAmount        decimal.Decimal
	RequestedCollectionDate time.Time
	CreditorName            string
	CreditorAddress         string
	DebtorName              string
	DebtorAddress           string
	RejectReason            RejectReason
	SepaCreditorIdentifier  string
	UnstructuredField       string
	MandateReference        string
}
