package account

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
)

func newStoreWithMock(t *testing.T) (*Store, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewStore(db), mock, db
}

const (
	selectByEmailQ  = `(?s)^SELECT\s+user_id,\s*email,\s*tokens,\s*subscribed,\s*version\s+FROM\s+accounts\s+WHERE\s+email\s*=\s*\$1\s+ORDER\s+BY\s+id\s+DESC\s+LIMIT\s+1\s*$`
	selectByUserIDQ = `(?s)^SELECT\s+user_id,\s*email,\s*tokens,\s*subscribed,\s*version\s+FROM\s+accounts\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+id\s+DESC\s+LIMIT\s+1\s*$`
	insertAccountQ  = `(?s)^INSERT\s+INTO\s+accounts\s*\(user_id,\s*email,\s*tokens,\s*subscribed\)\s*VALUES\s*\(\$1,\s*\$2,\s*'0',\s*'no'\)\s*ON\s+CONFLICT\s*\(email\)\s*DO\s+NOTHING\s+RETURNING`
	updatePlanQ     = `(?s)^UPDATE\s+accounts\s+SET\s+subscribed\s*=\s*\$2,\s*version\s*=\s*version\s*\+\s*1\s+WHERE\s+user_id\s*=\s*\$1\s*$`
	updateTokensQ   = `(?s)^UPDATE\s+accounts\s+SET\s+tokens\s*=\s*\(\(tokens\)::bigint\s*\+\s*\$2\)::text,\s*version\s*=\s*version\s*\+\s*1\s+WHERE\s+user_id\s*=\s*\$1\s*$`
)

func accountRow(userID, email, tokens, subscribed string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_id", "email", "tokens", "subscribed", "version"}).
		AddRow(userID, email, tokens, subscribed, 1)
}

func TestFindOrCreateByEmail_NewEmailCreatesAccount(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByEmailQ).
		WithArgs("a@x.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(insertAccountQ).
		WithArgs(sqlmock.AnyArg(), "a@x.com").
		WillReturnRows(accountRow("123456789", "a@x.com", "0", "no"))

	got, err := store.FindOrCreateByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("FindOrCreateByEmail error: %v", err)
	}
	if got.Tokens != "0" || got.Subscribed != "no" {
		t.Fatalf("new account not zeroed: %+v", got)
	}
	if len(got.UserID) != 9 {
		t.Fatalf("user_id %q is not 9 digits", got.UserID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFindOrCreateByEmail_ExistingEmailReturnsSameAccount(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByEmailQ).
		WithArgs("a@x.com").
		WillReturnRows(accountRow("987654321", "a@x.com", "15", "yearly"))

	got, err := store.FindOrCreateByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("FindOrCreateByEmail error: %v", err)
	}
	if got.UserID != "987654321" || got.Tokens != "15" || got.Subscribed != "yearly" {
		t.Fatalf("unexpected account: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no insert expected for seen email: %v", err)
	}
}

func TestFindOrCreateByEmail_LostInsertRaceRereads(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByEmailQ).
		WithArgs("a@x.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(insertAccountQ).
		WithArgs(sqlmock.AnyArg(), "a@x.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(selectByEmailQ).
		WithArgs("a@x.com").
		WillReturnRows(accountRow("111222333", "a@x.com", "0", "no"))

	got, err := store.FindOrCreateByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("FindOrCreateByEmail error: %v", err)
	}
	if got.UserID != "111222333" {
		t.Fatalf("expected winner's row, got %+v", got)
	}
}

func TestFindOrCreateByEmail_EmptyEmailRejectedBeforeStore(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	_, err := store.FindOrCreateByEmail(context.Background(), "  ")
	if !companion.IsType(err, companion.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no store call expected: %v", err)
	}
}

func TestFindOrCreateByEmail_StoreDown(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByEmailQ).
		WithArgs("a@x.com").
		WillReturnError(errors.New("connection refused"))

	_, err := store.FindOrCreateByEmail(context.Background(), "a@x.com")
	if !companion.IsType(err, companion.ErrStoreUnavailable) {
		t.Fatalf("expected store unavailable, got %v", err)
	}
}

func TestFindByUserID_NotFound(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByUserIDQ).
		WithArgs("42").
		WillReturnError(sql.ErrNoRows)

	_, err := store.FindByUserID(context.Background(), "42")
	if !companion.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSetSubscription_UpdatesPlan(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(updatePlanQ).
		WithArgs("987654321", "yearly").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.SetSubscription(context.Background(), "987654321", "yearly"); err != nil {
		t.Fatalf("SetSubscription error: %v", err)
	}
}

func TestSetSubscription_PlanStoredVerbatim(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	// Unrecognized selectors are intentional passthrough.
	mock.ExpectExec(updatePlanQ).
		WithArgs("987654321", "decade").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.SetSubscription(context.Background(), "987654321", "decade"); err != nil {
		t.Fatalf("SetSubscription error: %v", err)
	}
}

func TestSetSubscription_UnknownUserNoWrite(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(updatePlanQ).
		WithArgs("42", "yearly").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.SetSubscription(context.Background(), "42", "yearly")
	if !companion.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestIncrementTokens_PositiveAndNegativeDeltas(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateTokensQ).
		WithArgs("987654321", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(updateTokensQ).
		WithArgs("987654321", int64(-2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.IncrementTokens(context.Background(), "987654321", 5); err != nil {
		t.Fatalf("IncrementTokens(+5) error: %v", err)
	}
	if err := store.IncrementTokens(context.Background(), "987654321", -2); err != nil {
		t.Fatalf("IncrementTokens(-2) error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestIncrementTokens_UnknownUser(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateTokensQ).
		WithArgs("42", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.IncrementTokens(context.Background(), "42", 5)
	if !companion.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestIncrementTokens_StoreDown(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateTokensQ).
		WithArgs("987654321", int64(5)).
		WillReturnError(errors.New("connection reset"))

	err := store.IncrementTokens(context.Background(), "987654321", 5)
	if !companion.IsType(err, companion.ErrStoreUnavailable) {
		t.Fatalf("expected store unavailable, got %v", err)
	}
}

func TestNewUserID_Range(t *testing.T) {
	for range 1000 {
		id := NewUserID()
		if len(id) != 9 || id[0] == '0' {
			t.Fatalf("user id %q outside 9-digit range", id)
		}
	}
}
