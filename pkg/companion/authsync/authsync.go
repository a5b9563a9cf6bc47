// Package authsync reconciles hosted-identity users with local accounts.
package authsync

import (
	"context"
	"strings"

	"github.com/workos/workos-go/v6/pkg/usermanagement"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/account"
)

// UserFetcher resolves a hosted-identity user ID to a verified profile.
type UserFetcher interface {
	GetUser(ctx context.Context, opts usermanagement.GetUserOpts) (usermanagement.User, error)
}

// AccountResolver is the account lookup-or-create dependency.
type AccountResolver interface {
	FindOrCreateByEmail(ctx context.Context, email string) (*account.Account, error)
}

// Syncer maps WorkOS users onto accounts keyed by their verified email.
type Syncer struct {
	users    UserFetcher
	accounts AccountResolver
}

// NewSyncer builds a Syncer over the WorkOS User Management API.
func NewSyncer(apiKey string, accounts AccountResolver) *Syncer {
	return &Syncer{users: usermanagement.NewClient(apiKey), accounts: accounts}
}

// NewSyncerWithFetcher injects a custom fetcher, used by tests.
func NewSyncerWithFetcher(users UserFetcher, accounts AccountResolver) *Syncer {
	return &Syncer{users: users, accounts: accounts}
}

// Sync fetches the identity user and returns the matching account, creating
// one on first sight of the email.
func (s *Syncer) Sync(ctx context.Context, workosUserID string) (*account.Account, error) {
	if strings.TrimSpace(workosUserID) == "" {
		return nil, companion.NewInvalidRequestErrorWithParam("workos_user_id must not be empty", "workos_user_id")
	}

	user, err := s.users.GetUser(ctx, usermanagement.GetUserOpts{User: workosUserID})
	if err != nil {
		return nil, companion.NewProviderUnavailableError("workos", err)
	}
	if user.Email == "" {
		return nil, companion.NewAPIError("identity user has no email")
	}

	return s.accounts.FindOrCreateByEmail(ctx, user.Email)
}
