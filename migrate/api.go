// Package migrate copies billing configuration (coupons, plans, products,
// webhook endpoints and subscriptions) from one Stripe account to another.
// Every run is stateless: "already migrated" is re-derived by probing the
// destination account, never persisted.
package migrate

import (
	stripeapi "github.com/stripe/stripe-go/v81"
	"go.uber.org/zap"
)

// API is the surface of a Stripe account client consumed by the migrators.
// List calls return a single page of up to 100 entities starting after the
// given cursor, plus whether more pages remain. Subscriptions must be listed
// with the customer and default payment method references expanded.
// Implemented by *stripe.Account and mocked in tests.
type API interface {
	Coupons(startingAfter string) ([]*stripeapi.Coupon, bool, error)
	CreateCoupon(params *stripeapi.CouponParams) (*stripeapi.Coupon, error)

	Plans(startingAfter string) ([]*stripeapi.Plan, bool, error)
	CreatePlan(params *stripeapi.PlanParams) (*stripeapi.Plan, error)

	Products(startingAfter string) ([]*stripeapi.Product, bool, error)
	CreateProduct(params *stripeapi.ProductParams) (*stripeapi.Product, error)

	WebhookEndpoints(startingAfter string) ([]*stripeapi.WebhookEndpoint, bool, error)
	CreateWebhookEndpoint(params *stripeapi.WebhookEndpointParams) (*stripeapi.WebhookEndpoint, error)

	Customers(startingAfter string) ([]*stripeapi.Customer, bool, error)
	Customer(id string) (*stripeapi.Customer, error)
	CreateCustomer(params *stripeapi.CustomerParams) (*stripeapi.Customer, error)

	Subscriptions(startingAfter string) ([]*stripeapi.Subscription, bool, error)
	CreateSubscription(params *stripeapi.SubscriptionParams) (*stripeapi.Subscription, error)
	CancelSubscription(id string) (*stripeapi.Subscription, error)

	PaymentMethods(customerID string) ([]*stripeapi.PaymentMethod, error)
}

// Migrator copies entities from the From account to the To account.
type Migrator struct {
	From API
	To   API
	Log  *zap.SugaredLogger
}

// New creates a Migrator between the two accounts.
func New(from, to API, log *zap.SugaredLogger) *Migrator {
	return &Migrator{From: from, To: to, Log: log}
}
