// Package account persists Account records and their entitlement mutations.
package account

import (
	"math/rand/v2"
	"strconv"
)

// Plan selectors stored verbatim in the subscribed field. Any other string a
// caller sends is stored as-is; the selector set is not an allow-list.
const (
	PlanNone     = "no"
	PlanMonthly  = "monthly"
	PlanYearly   = "yearly"
	PlanLifetime = "lifetime"
)

// Account binds an email and a numeric user identifier to a token balance
// and subscription plan. Tokens keep their string storage encoding.
type Account struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Tokens     string `json:"tokens"`
	Subscribed string `json:"subscribed"`
	Version    int64  `json:"-"`
}

// NewUserID issues a uniformly random 9-digit identifier in
// [100000000, 999999999]. Collisions are left to the unique index.
func NewUserID() string {
	return strconv.Itoa(100_000_000 + rand.IntN(900_000_000))
}
