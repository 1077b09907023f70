package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-pay/meridian_pay/internal/partner"
)

// Repository persists payout records.
type Repository interface {
	Create(ctx context.Context, payout Payout) error
	Get(ctx context.Context, id string) (Payout, error)
	GetByPartnerPayoutID(ctx context.Context, partnerPayoutID int64) (Payout, error)
	UpdateStatus(ctx context.Context, id string, status partner.TransferStatus) error
}

// PostgresRepository stores payouts in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a payout record.
func (r *PostgresRepository) Create(ctx context.Context, payout Payout) error {
	payoutID, err := uuid.Parse(payout.ID)
	if err != nil {
		return err
	}
	accountID, err := uuid.Parse(payout.AccountID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO payouts
        (id, account_id, partner_payout_id, partner_wallet_id, partner_beneficiary_id, amount, currency, label, client_ref, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		payoutID, accountID, payout.PartnerPayoutID, payout.PartnerWalletID, payout.PartnerBeneficiaryID,
		payout.Amount, payout.Currency, payout.Label, payout.ClientRef, string(payout.Status),
		payout.CreatedAt.UTC(), payout.UpdatedAt.UTC())
	return err
}

// Get fetches a payout by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Payout, error) {
	payoutID, err := uuid.Parse(id)
	if err != nil {
		return Payout{}, err
	}
	row := r.db.QueryRow(ctx, `SELECT id, account_id, partner_payout_id, partner_wallet_id, partner_beneficiary_id, amount, currency, label, client_ref, status, created_at, updated_at
        FROM payouts WHERE id = $1`, payoutID)
	return scanPayout(row)
}

// GetByPartnerPayoutID resolves a payout from the partner identifier carried
// by webhook payloads.
func (r *PostgresRepository) GetByPartnerPayoutID(ctx context.Context, partnerPayoutID int64) (Payout, error) {
	row := r.db.QueryRow(ctx, `SELECT id, account_id, partner_payout_id, partner_wallet_id, partner_beneficiary_id, amount, currency, label, client_ref, status, created_at, updated_at
        FROM payouts WHERE partner_payout_id = $1`, partnerPayoutID)
	return scanPayout(row)
}

// UpdateStatus records a settlement transition.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status partner.TransferStatus) error {
	payoutID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `UPDATE payouts SET status = $2, updated_at = $3 WHERE id = $1`,
		payoutID, string(status), time.Now().UTC())
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayout(row rowScanner) (Payout, error) {
	var p Payout
	var id, accountID uuid.UUID
	var status string
	var createdAt, updatedAt time.Time
	if err := row.Scan(&id, &accountID, &p.PartnerPayoutID, &p.PartnerWalletID, &p.PartnerBeneficiaryID,
		&p.Amount, &p.Currency, &p.Label, &p.ClientRef, &status, &createdAt, &updatedAt); err != nil {
		return Payout{}, err
	}
	p.ID = id.String()
	p.AccountID = accountID.String()
	p.Status = partner.TransferStatus(status)
	p.CreatedAt = createdAt.UTC()
	p.UpdatedAt = updatedAt.UTC()
	return p, nil
}
