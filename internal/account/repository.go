package account

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists account metadata.
type Repository interface {
	Create(ctx context.Context, account Account) error
	Get(ctx context.Context, id string) (Account, error)
	GetByPartnerWalletID(ctx context.Context, partnerWalletID int64) (Account, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// PostgresRepository stores accounts in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an account record.
func (r *PostgresRepository) Create(ctx context.Context, account Account) error {
	accountID, err := uuid.Parse(account.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO accounts (id, legal_name, email, partner_user_id, partner_wallet_id, iban, bic, currency, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		accountID, account.LegalName, account.Email, account.PartnerUserID, account.PartnerWalletID,
		account.IBAN, account.BIC, account.Currency, account.Status, account.CreatedAt.UTC())
	return err
}

// Get fetches an account by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Account, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return Account{}, err
	}
	row := r.db.QueryRow(ctx, `SELECT id, legal_name, email, partner_user_id, partner_wallet_id, iban, bic, currency, status, created_at
        FROM accounts WHERE id = $1`, accountID)
	return scanAccount(row)
}

// GetByPartnerWalletID fetches the account owning the given partner wallet.
// Webhook payloads only carry partner identifiers, so this is the lookup the
// ingestion path uses.
func (r *PostgresRepository) GetByPartnerWalletID(ctx context.Context, partnerWalletID int64) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT id, legal_name, email, partner_user_id, partner_wallet_id, iban, bic, currency, status, created_at
        FROM accounts WHERE partner_wallet_id = $1`, partnerWalletID)
	return scanAccount(row)
}

// UpdateStatus transitions the account lifecycle state.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `UPDATE accounts SET status = $2 WHERE id = $1`, accountID, status)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (Account, error) {
	var a Account
	var id uuid.UUID
	var createdAt time.Time
	if err := row.Scan(&id, &a.LegalName, &a.Email, &a.PartnerUserID, &a.PartnerWalletID,
		&a.IBAN, &a.BIC, &a.Currency, &a.Status, &createdAt); err != nil {
		return Account{}, err
	}
	a.ID = id.String()
	a.CreatedAt = createdAt.UTC()
	return a, nil
}
