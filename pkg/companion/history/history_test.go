package history

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
)

const (
	appendQ = `(?s)^INSERT\s+INTO\s+chat_messages\s*\(user_id,\s*companion_name,\s*role,\s*content\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*$`
	recentQ = `(?s)^SELECT\s+role,\s*content,\s*created_at\s+FROM\s+\(\s*SELECT\s+id,\s*role,\s*content,\s*created_at\s+FROM\s+chat_messages\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+companion_name\s*=\s*\$2\s+ORDER\s+BY\s+id\s+DESC\s+LIMIT\s+\$3\s*\)\s+latest\s+ORDER\s+BY\s+id\s*$`
)

func newStoreWithMock(t *testing.T) (*Store, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewStore(db), mock, db
}

func TestAppend_InsertsTurn(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(appendQ).
		WithArgs("123456789", "Luna", RoleUser, "hi").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Append(context.Background(), "123456789", "Luna", RoleUser, "hi"); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAppend_StoreUnavailable(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(appendQ).WillReturnError(errors.New("connection refused"))

	err := store.Append(context.Background(), "123456789", "Luna", RoleUser, "hi")
	if !companion.IsType(err, companion.ErrStoreUnavailable) {
		t.Fatalf("error = %v, want store_unavailable", err)
	}
}

// Recent selects the newest rows but must hand them back oldest first, so
// the query re-orders the id DESC window ascending.
func TestRecent_ReturnsOldestFirstWindow(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(recentQ).
		WithArgs("123456789", "Luna", 2).
		WillReturnRows(sqlmock.NewRows([]string{"role", "content", "created_at"}).
			AddRow(RoleUser, "miss you", now.Add(-time.Minute)).
			AddRow(RoleCompanion, "Missed you too!", now))

	got, err := store.Recent(context.Background(), "123456789", "Luna", 2)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d messages, want 2", len(got))
	}
	if got[0].Role != RoleUser || got[1].Content != "Missed you too!" {
		t.Fatalf("messages out of order: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRecent_DefaultsLimit(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(recentQ).
		WithArgs("123456789", "Luna", 50).
		WillReturnRows(sqlmock.NewRows([]string{"role", "content", "created_at"}))

	if _, err := store.Recent(context.Background(), "123456789", "Luna", 0); err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
