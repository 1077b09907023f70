package cheque

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-pay/meridian_pay/internal/partner"
)

// Repository persists cheque deposits.
type Repository interface {
	Create(ctx context.Context, deposit Deposit) error
	Get(ctx context.Context, id string) (Deposit, error)
	GetByPartnerPayinID(ctx context.Context, partnerPayinID int64) (Deposit, error)
	UpdateStatus(ctx context.Context, id string, status partner.DepositStatus) error
}

// PostgresRepository stores deposits in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a deposit record.
func (r *PostgresRepository) Create(ctx context.Context, deposit Deposit) error {
	depositID, err := uuid.Parse(deposit.ID)
	if err != nil {
		return err
	}
	accountID, err := uuid.Parse(deposit.AccountID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO cheque_deposits
        (id, account_id, partner_payin_id, partner_wallet_id, cmc7, rlmc_key, amount, currency, status, drawer_name, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		depositID, accountID, deposit.PartnerPayinID, deposit.PartnerWalletID, deposit.CMC7, deposit.RLMCKey,
		deposit.Amount, deposit.Currency, string(deposit.Status), deposit.DrawerName,
		deposit.CreatedAt.UTC(), deposit.UpdatedAt.UTC())
	return err
}

// Get fetches a deposit by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Deposit, error) {
	depositID, err := uuid.Parse(id)
	if err != nil {
		return Deposit{}, err
	}
	row := r.db.QueryRow(ctx, `SELECT id, account_id, partner_payin_id, partner_wallet_id, cmc7, rlmc_key, amount, currency, status, drawer_name, created_at, updated_at
        FROM cheque_deposits WHERE id = $1`, depositID)
	return scanDeposit(row)
}

// GetByPartnerPayinID resolves a deposit from the partner payin identifier
// carried by webhook payloads.
func (r *PostgresRepository) GetByPartnerPayinID(ctx context.Context, partnerPayinID int64) (Deposit, error) {
	row := r.db.QueryRow(ctx, `SELECT id, account_id, partner_payin_id, partner_wallet_id, cmc7, rlmc_key, amount, currency, status, drawer_name, created_at, updated_at
        FROM cheque_deposits WHERE partner_payin_id = $1`, partnerPayinID)
	return scanDeposit(row)
}

// UpdateStatus records a settlement transition.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status partner.DepositStatus) error {
	depositID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `UPDATE cheque_deposits SET status = $2, updated_at = $3 WHERE id = $1`,
		depositID, string(status), time.Now().UTC())
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeposit(row rowScanner) (Deposit, error) {
	var d Deposit
	var id, accountID uuid.UUID
	var status string
	var createdAt, updatedAt time.Time
	if err := row.Scan(&id, &accountID, &d.PartnerPayinID, &d.PartnerWalletID, &d.CMC7, &d.RLMCKey,
		&d.Amount, &d.Currency, &status, &d.DrawerName, &createdAt, &updatedAt); err != nil {
		return Deposit{}, err
	}
	d.ID = id.String()
	d.AccountID = accountID.String()
	d.Status = partner.DepositStatus(status)
	d.CreatedAt = createdAt.UTC()
	d.UpdatedAt = updatedAt.UTC()
	return d, nil
}
