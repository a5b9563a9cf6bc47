// Package billing creates Stripe checkout sessions for plan purchases.
package billing

import (
	"context"
	"net/url"
	"strings"

	stripe "github.com/stripe/stripe-go/v84"
	stripeclient "github.com/stripe/stripe-go/v84/client"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/account"
)

// PriceTable maps plan selectors to Stripe price identifiers. Unknown
// selectors fall back to Default.
type PriceTable struct {
	Monthly  string
	Yearly   string
	Lifetime string
	Default  string
}

// PriceFor resolves a plan selector to a price identifier.
func (t PriceTable) PriceFor(plan string) string {
	switch plan {
	case account.PlanMonthly:
		return t.Monthly
	case account.PlanYearly:
		return t.Yearly
	case account.PlanLifetime:
		return t.Lifetime
	default:
		return t.Default
	}
}

// Checkout initiates subscription-mode checkout sessions. The Stripe client
// is built once and reused; per-call credential mutation from the source is
// gone.
type Checkout struct {
	api        *stripeclient.API
	prices     PriceTable
	successURL string
}

// Option configures the Checkout.
type Option func(*options)

type options struct {
	backends *stripe.Backends
}

// WithBackends overrides the Stripe transport, used by tests.
func WithBackends(b *stripe.Backends) Option {
	return func(o *options) { o.backends = b }
}

// NewCheckout builds a checkout initiator. successURL is the page the
// provider redirects to after payment; identifying query parameters are
// appended per session.
func NewCheckout(secretKey string, prices PriceTable, successURL string, opts ...Option) *Checkout {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	api := &stripeclient.API{}
	api.Init(secretKey, o.backends)
	return &Checkout{api: api, prices: prices, successURL: successURL}
}

// Create requests a checkout session and returns the provider-issued URL to
// redirect the caller to. A provider failure is surfaced as a checkout
// error, never swallowed.
func (c *Checkout) Create(ctx context.Context, userID, plan, email string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", companion.NewInvalidRequestErrorWithParam("user_id must not be empty", "user_id")
	}
	if strings.TrimSpace(plan) == "" {
		return "", companion.NewInvalidRequestErrorWithParam("selected_plan must not be empty", "selected_plan")
	}

	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(c.prices.PriceFor(plan)),
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(c.SuccessURL(userID, plan, email)),
	}

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", companion.NewCheckoutFailedError(err)
	}
	if sess.URL == "" {
		return "", companion.NewCheckoutFailedError(nil)
	}
	return sess.URL, nil
}

// SuccessURL builds the post-checkout redirect target carrying the
// identifying query parameters in user_id, selected_plan, email order.
func (c *Checkout) SuccessURL(userID, plan, email string) string {
	return c.successURL +
		"?user_id=" + url.QueryEscape(userID) +
		"&selected_plan=" + url.QueryEscape(plan) +
		"&email=" + url.QueryEscape(email)
}
