package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/loooooooooogp/Account/internal/apperrors"
	"github.com/loooooooooogp/Account/internal/core/domain"
	portsrepo "github.com/loooooooooogp/Account/internal/core/ports/repositories"
	"github.com/loooooooooogp/Account/internal/models"
	"github.com/loooooooooogp/Account/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

func newPgxTransactionRepository(db *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: db},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

// Helper to convert domain.Transaction to models.Transaction
func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		UserID:        d.UserID,
		AccountID:     d.AccountID,
		Type:          string(d.Type),
		Amount:        d.Amount,
		CategoryID:    d.CategoryID,
		Date:          d.Date,
		Description:   d.Description,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Transaction to domain.Transaction
func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		AccountID:     m.AccountID,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		CategoryID:    m.CategoryID,
		Date:          m.Date,
		Description:   m.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// lockAccounts locks every account touched by balanceChanges inside tx.
// Locking before the row mutation serializes concurrent ledger writes per
// account and keeps balance = signed sum of rows.
func (r *PgxTransactionRepository) lockAccounts(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal) error {
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return err
	}
	return nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockAccounts(ctx, tx, balanceChanges); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.NewAppError(500, "failed to lock accounts for insert", err)
	}

	modelTxn := toModelTransaction(txn)
	query := `
		INSERT INTO transactions (transaction_id, user_id, account_id, type, amount, category_id, date, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.UserID,
		modelTxn.AccountID,
		modelTxn.Type,
		modelTxn.Amount,
		modelTxn.CategoryID,
		modelTxn.Date,
		modelTxn.Description,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, err)
	}

	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, balanceChanges, txn.CreatedBy, txn.CreatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to apply balance deltas", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockAccounts(ctx, tx, balanceChanges); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	modelTxn := toModelTransaction(txn)
	query := `
		UPDATE transactions
		SET account_id = $2, type = $3, amount = $4, category_id = $5, date = $6, description = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $1;
	`
	ct, err := tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.AccountID,
		modelTxn.Type,
		modelTxn.Amount,
		modelTxn.CategoryID,
		modelTxn.Date,
		modelTxn.Description,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+modelTxn.TransactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, balanceChanges, txn.LastUpdatedBy, txn.LastUpdatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to apply balance deltas", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockAccounts(ctx, tx, balanceChanges); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.NewAppError(500, "failed to lock accounts for delete", err)
	}

	ct, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return apperrors.NewAppError(500, "failed to apply balance deltas", err)
	}

	return r.Commit(ctx, tx)
}

const transactionColumns = `transaction_id, user_id, account_id, type, amount, category_id, date, description, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	var m models.Transaction
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(
		&m.TransactionID,
		&m.UserID,
		&m.AccountID,
		&m.Type,
		&m.Amount,
		&m.CategoryID,
		&m.Date,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	domainTxn := toDomainTransaction(m)
	return &domainTxn, nil
}

func (r *PgxTransactionRepository) CountTransactionsByAccount(ctx context.Context, accountID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE account_id = $1;`, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions for account %s: %w", accountID, err)
	}
	return count, nil
}

// ListAccessibleTransactions pages through the transactions the user
// recorded plus those on accounts the user owns or is linked to, date
// descending then ID descending. The recording-user clause keeps a user's own
// entries visible after the account owner revokes their link. The token pins
// the (date, id) pair of the last row of the previous page.
func (r *PgxTransactionRepository) ListAccessibleTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.TransactionView, *string, error) {
	query := `
		SELECT t.transaction_id, t.user_id, t.account_id, t.type, t.amount, t.category_id, t.date, t.description,
		       t.created_at, t.created_by, t.last_updated_at, t.last_updated_by,
		       c.name, a.name, u.username
		FROM transactions t
		JOIN accounts a ON a.account_id = t.account_id
		JOIN categories c ON c.category_id = t.category_id
		JOIN users u ON u.user_id = t.user_id
		WHERE (t.user_id = $1 OR a.owner_user_id = $1 OR EXISTS (
			SELECT 1 FROM share_links sl
			WHERE sl.account_id = t.account_id AND sl.linked_user_id = $1
		))
	`
	args := []any{userID}
	argPos := 2

	if filter.Type != nil {
		query += fmt.Sprintf(" AND t.type = $%d", argPos)
		args = append(args, string(*filter.Type))
		argPos++
	}
	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND t.category_id = $%d", argPos)
		args = append(args, *filter.CategoryID)
		argPos++
	}
	if filter.AccountID != nil {
		query += fmt.Sprintf(" AND t.account_id = $%d", argPos)
		args = append(args, *filter.AccountID)
		argPos++
	}
	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.date >= $%d", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.date <= $%d", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}

	if nextToken != nil && *nextToken != "" {
		tokenDate, tokenID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		// Row-wise comparison matches the DESC, DESC ordering below.
		query += fmt.Sprintf(" AND (t.date, t.transaction_id) < ($%d, $%d)", argPos, argPos+1)
		args = append(args, tokenDate, tokenID)
		argPos += 2
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(" ORDER BY t.date DESC, t.transaction_id DESC LIMIT $%d;", argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list accessible transactions: %w", err)
	}
	defer rows.Close()

	views := []domain.TransactionView{}
	for rows.Next() {
		var m models.Transaction
		var view domain.TransactionView
		err := rows.Scan(
			&m.TransactionID,
			&m.UserID,
			&m.AccountID,
			&m.Type,
			&m.Amount,
			&m.CategoryID,
			&m.Date,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&view.CategoryName,
			&view.AccountName,
			&view.OwnUsername,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction view row: %w", err)
		}
		view.Transaction = toDomainTransaction(m)
		if view.Transaction.UserID == userID {
			view.Ownership = "own"
		} else {
			view.Ownership = "linked"
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction view rows: %w", err)
	}

	var newNextToken *string
	if len(views) > limit {
		views = views[:limit]
		last := views[len(views)-1]
		token := pagination.EncodeToken(last.Date, last.TransactionID)
		newNextToken = &token
	}

	return views, newNextToken, nil
}
