// Package catalog reads the selectable companion roster.
package catalog

import (
	"context"
	"strings"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/account"
)

// Companion is one selectable persona.
type Companion struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Age         int      `json:"age"`
	Bio         string   `json:"bio"`
	Personality string   `json:"personality"`
	Interests   []string `json:"interests"`
	ImageURL    string   `json:"image_url"`
	VoiceID     string   `json:"voice_id"`
}

type Store struct {
	db account.DBTX
}

func NewStore(db account.DBTX) *Store {
	return &Store{db: db}
}

// ListActive returns the active companions in creation order.
func (s *Store) ListActive(ctx context.Context) ([]Companion, error) {
	query :=
		`SELECT id, name, age, bio, personality, array_to_string(interests, ','), image_url, voice_id
		 FROM companions
		 WHERE is_active
		 ORDER BY id
		 `

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, companion.NewStoreUnavailableError(err)
	}
	defer rows.Close()

	out := make([]Companion, 0, 8)
	for rows.Next() {
		var c Companion
		var interests string
		if err := rows.Scan(&c.ID, &c.Name, &c.Age, &c.Bio, &c.Personality, &interests, &c.ImageURL, &c.VoiceID); err != nil {
			return nil, companion.NewStoreUnavailableError(err)
		}
		if interests != "" {
			c.Interests = strings.Split(interests, ",")
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, companion.NewStoreUnavailableError(err)
	}
	return out, nil
}
