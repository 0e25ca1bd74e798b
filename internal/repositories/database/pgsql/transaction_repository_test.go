package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/loooooooooogp/Account/internal/core/domain"
	portsrepo "github.com/loooooooooogp/Account/internal/core/ports/repositories"
)

// --- Fake pgx.Tx ---

// fakeTx records every statement and can be told to fail on a SQL fragment,
// so the commit/rollback behavior of the mutation paths can be observed
// without a live database.
type fakeTx struct {
	failOn     string // substring of a statement that should fail
	execs      []string
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.committed {
		return sql.ErrTxDone
	}
	t.rolledBack = true
	return nil
}

func (t *fakeTx) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	t.execs = append(t.execs, query)
	if t.failOn != "" && strings.Contains(query, t.failOn) {
		return pgconn.CommandTag{}, errors.New("exec failed")
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *fakeTx) Prepare(ctx context.Context, name, query string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *fakeTx) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return &emptyRows{}, nil
}
func (t *fakeTx) QueryRow(ctx context.Context, query string, args ...any) pgx.Row { return nil }
func (t *fakeTx) Conn() *pgx.Conn                                                 { return nil }

var _ pgx.Tx = (*fakeTx)(nil)

// --- Fake PgxDB ---

type fakeDB struct {
	tx        *fakeTx
	queries   []string
	queryArgs [][]any
}

func (db *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) { return db.tx, nil }

func (db *fakeDB) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (db *fakeDB) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	db.queries = append(db.queries, query)
	db.queryArgs = append(db.queryArgs, args)
	return &emptyRows{}, nil
}

func (db *fakeDB) QueryRow(ctx context.Context, query string, args ...any) pgx.Row { return nil }

var _ PgxDB = (*fakeDB)(nil)

// emptyRows is a pgx.Rows with no rows.
type emptyRows struct{}

func (r *emptyRows) Close()                                       {}
func (r *emptyRows) Err() error                                   { return nil }
func (r *emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *emptyRows) Next() bool                                   { return false }
func (r *emptyRows) Scan(dest ...any) error                       { return pgx.ErrNoRows }
func (r *emptyRows) Values() ([]any, error)                       { return nil, nil }
func (r *emptyRows) RawValues() [][]byte                          { return nil }
func (r *emptyRows) Conn() *pgx.Conn                              { return nil }

var _ pgx.Rows = (*emptyRows)(nil)

// --- Mock AccountTransactionSupport ---

type MockAccountTxSupport struct {
	mock.Mock
}

func (m *MockAccountTxSupport) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountTxSupport) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

var _ portsrepo.AccountTransactionSupport = (*MockAccountTxSupport)(nil)

// --- Test Suite ---

type TransactionRepositoryTestSuite struct {
	suite.Suite
	tx          *fakeTx
	db          *fakeDB
	accountRepo *MockAccountTxSupport
	repo        *PgxTransactionRepository
	ctx         context.Context
}

func (suite *TransactionRepositoryTestSuite) SetupTest() {
	suite.tx = &fakeTx{}
	suite.db = &fakeDB{tx: suite.tx}
	suite.accountRepo = new(MockAccountTxSupport)
	suite.repo = &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: suite.db},
		accountRepo:    suite.accountRepo,
	}
	suite.ctx = context.Background()
}

func (suite *TransactionRepositoryTestSuite) sampleTransaction() (domain.Transaction, map[string]decimal.Decimal) {
	txn := domain.Transaction{
		TransactionID: "txn-1",
		UserID:        "user-1",
		AccountID:     "acct-1",
		Type:          domain.Expense,
		Amount:        decimal.NewFromInt(25),
		CategoryID:    "cat-1",
		Date:          time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		AuditFields: domain.AuditFields{
			CreatedAt:     time.Now(),
			CreatedBy:     "user-1",
			LastUpdatedAt: time.Now(),
			LastUpdatedBy: "user-1",
		},
	}
	changes := map[string]decimal.Decimal{"acct-1": decimal.NewFromInt(-25)}
	return txn, changes
}

func (suite *TransactionRepositoryTestSuite) lockSucceeds() {
	suite.accountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, suite.tx, mock.Anything).
		Return(map[string]domain.Account{"acct-1": {AccountID: "acct-1"}}, nil)
}

// --- Atomicity under failure ---

func (suite *TransactionRepositoryTestSuite) TestSaveTransaction_InsertFailureRollsBack() {
	suite.tx.failOn = "INSERT INTO transactions"
	suite.lockSucceeds()

	txn, changes := suite.sampleTransaction()
	err := suite.repo.SaveTransaction(suite.ctx, txn, changes)

	suite.Error(err)
	suite.True(suite.tx.rolledBack, "failed insert must roll the transaction back")
	suite.False(suite.tx.committed, "failed insert must not commit")
	suite.accountRepo.AssertNotCalled(suite.T(), "ApplyBalanceDeltasInTx")
}

func (suite *TransactionRepositoryTestSuite) TestSaveTransaction_DeltaFailureRollsBack() {
	suite.lockSucceeds()
	suite.accountRepo.On("ApplyBalanceDeltasInTx", mock.Anything, suite.tx, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("batch failed")).Once()

	txn, changes := suite.sampleTransaction()
	err := suite.repo.SaveTransaction(suite.ctx, txn, changes)

	suite.Error(err)
	suite.True(suite.tx.rolledBack, "failed delta must roll back the row insert too")
	suite.False(suite.tx.committed)
}

func (suite *TransactionRepositoryTestSuite) TestSaveTransaction_CommitsOnSuccess() {
	suite.lockSucceeds()
	suite.accountRepo.On("ApplyBalanceDeltasInTx", mock.Anything, suite.tx, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()

	txn, changes := suite.sampleTransaction()
	err := suite.repo.SaveTransaction(suite.ctx, txn, changes)

	suite.NoError(err)
	suite.True(suite.tx.committed)
	suite.False(suite.tx.rolledBack, "deferred rollback after commit is a no-op")
	suite.accountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionRepositoryTestSuite) TestUpdateTransaction_RowUpdateFailureRollsBack() {
	suite.tx.failOn = "UPDATE transactions"
	suite.lockSucceeds()

	txn, changes := suite.sampleTransaction()
	err := suite.repo.UpdateTransaction(suite.ctx, txn, changes)

	suite.Error(err)
	suite.True(suite.tx.rolledBack)
	suite.False(suite.tx.committed)
	suite.accountRepo.AssertNotCalled(suite.T(), "ApplyBalanceDeltasInTx")
}

func (suite *TransactionRepositoryTestSuite) TestDeleteTransaction_DeltaFailureRollsBack() {
	suite.lockSucceeds()
	suite.accountRepo.On("ApplyBalanceDeltasInTx", mock.Anything, suite.tx, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("batch failed")).Once()

	_, changes := suite.sampleTransaction()
	err := suite.repo.DeleteTransaction(suite.ctx, "txn-1", changes, "user-1", time.Now())

	suite.Error(err)
	suite.True(suite.tx.rolledBack, "failed delta must roll back the row delete too")
	suite.False(suite.tx.committed)
}

// --- List visibility and filters ---

func (suite *TransactionRepositoryTestSuite) TestListAccessibleTransactions_VisibilityIncludesRecordingUser() {
	_, _, err := suite.repo.ListAccessibleTransactions(suite.ctx, "user-1", portsrepo.TransactionFilter{}, 50, nil)

	suite.NoError(err)
	suite.Require().Len(suite.db.queries, 1)
	query := suite.db.queries[0]
	// A user keeps seeing entries they recorded even after the account owner
	// revokes their link, alongside owned and currently-linked accounts.
	suite.Contains(query, "t.user_id = $1")
	suite.Contains(query, "a.owner_user_id = $1")
	suite.Contains(query, "sl.linked_user_id = $1")
	suite.Equal("user-1", suite.db.queryArgs[0][0])
}

func (suite *TransactionRepositoryTestSuite) TestListAccessibleTransactions_TypeFilterPartitionsBaseQuery() {
	income := domain.Income
	expense := domain.Expense

	_, _, err := suite.repo.ListAccessibleTransactions(suite.ctx, "user-1", portsrepo.TransactionFilter{}, 50, nil)
	suite.NoError(err)
	_, _, err = suite.repo.ListAccessibleTransactions(suite.ctx, "user-1", portsrepo.TransactionFilter{Type: &income}, 50, nil)
	suite.NoError(err)
	_, _, err = suite.repo.ListAccessibleTransactions(suite.ctx, "user-1", portsrepo.TransactionFilter{Type: &expense}, 50, nil)
	suite.NoError(err)

	suite.Require().Len(suite.db.queries, 3)
	base, incomeQuery, expenseQuery := suite.db.queries[0], suite.db.queries[1], suite.db.queries[2]

	// Both filtered queries are the base query narrowed by the same type
	// predicate, with complementary bound values. Since every row has exactly
	// one of the two types, the two filtered result sets partition the
	// unfiltered one.
	suite.NotContains(base, "t.type")
	suite.Contains(incomeQuery, "AND t.type = $2")
	suite.Equal(incomeQuery, expenseQuery)
	suite.Equal("income", suite.db.queryArgs[1][1])
	suite.Equal("expense", suite.db.queryArgs[2][1])
}

// --- Run Test Suite ---

func TestTransactionRepository(t *testing.T) {
	suite.Run(t, new(TransactionRepositoryTestSuite))
}
