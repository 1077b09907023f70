package cheque

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian-pay/meridian_pay/internal/partner"
)

// Deposit tracks a cheque remittance from submission to settlement.
type Deposit struct {
	ID              string
	AccountID       string
	PartnerPayinID  int64
	PartnerWalletID int64
	CMC7            string
	RLMCKey         string
	Amount          decimal.Decimal
	Currency        string
	Status          partner.DepositStatus
	DrawerName      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
