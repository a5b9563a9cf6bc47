// Package history logs chat turns per user/companion pair.
package history

import (
	"context"
	"time"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/account"
)

const (
	RoleUser      = "user"
	RoleCompanion = "companion"
)

// Message is one logged chat turn.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Store struct {
	db account.DBTX
}

func NewStore(db account.DBTX) *Store {
	return &Store{db: db}
}

// Append logs one turn. History is best-effort bookkeeping around the chat
// flow; callers decide whether a failure aborts the request.
func (s *Store) Append(ctx context.Context, userID, companionName, role, content string) error {
	query :=
		`INSERT INTO chat_messages (user_id, companion_name, role, content)
		 VALUES ($1, $2, $3, $4)
		 `

	if _, err := s.db.ExecContext(ctx, query, userID, companionName, role, content); err != nil {
		return companion.NewStoreUnavailableError(err)
	}
	return nil
}

// Recent returns up to limit most recent turns, oldest first.
func (s *Store) Recent(ctx context.Context, userID, companionName string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 50
	}

	query :=
		`SELECT role, content, created_at FROM (
		     SELECT id, role, content, created_at FROM chat_messages
		     WHERE user_id = $1 AND companion_name = $2
		     ORDER BY id DESC
		     LIMIT $3
		 ) latest
		 ORDER BY id
		 `

	rows, err := s.db.QueryContext(ctx, query, userID, companionName, limit)
	if err != nil {
		return nil, companion.NewStoreUnavailableError(err)
	}
	defer rows.Close()

	out := make([]Message, 0, limit)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, companion.NewStoreUnavailableError(err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, companion.NewStoreUnavailableError(err)
	}
	return out, nil
}
