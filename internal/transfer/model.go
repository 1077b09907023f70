package transfer

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian-pay/meridian_pay/internal/partner"
)

// Payout tracks an outbound credit transfer from order to settlement.
type Payout struct {
	ID                   string
	AccountID            string
	PartnerPayoutID      int64
	PartnerWalletID      int64
	PartnerBeneficiaryID int64
	Amount               decimal.Decimal
	Currency             string
	Label                string
	ClientRef            string
	Status               partner.TransferStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
