package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account links an internal client to its partner-side user and wallet.
type Account struct {
	ID              string
	LegalName       string
	Email           string
	PartnerUserID   int64
	PartnerWalletID int64
	IBAN            string
	BIC             string
	Currency        string
	Status          string
	CreatedAt       time.Time
}

// Balance is the partner-reported position of the account's wallet.
type Balance struct {
	AccountID  string
	Currency   string
	Current    decimal.Decimal
	Authorized decimal.Decimal
	AsOf       time.Time
}
