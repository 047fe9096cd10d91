// Package stripe wraps the Stripe API client for a single account, exposing
// the page-at-a-time listing, creation and retrieval calls the migrators
// consume. Two Account instances are used per migration: one built from the
// source secret key and one from the destination key.
package stripe

import (
	stripeapi "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// pageLimit is the maximum page size accepted by the Stripe list endpoints.
const pageLimit = 100

// Account is a Stripe API client bound to one account secret key.
type Account struct {
	api *client.API
}

// New creates an Account client for the given secret key.
func New(key string) *Account {
	api := &client.API{}
	api.Init(key, nil)
	return &Account{api: api}
}

// listParams builds the parameters for a single-page list request starting
// after the given cursor. An empty cursor requests the first page.
func listParams(startingAfter string) stripeapi.ListParams {
	params := stripeapi.ListParams{
		Limit:  stripeapi.Int64(pageLimit),
		Single: true,
	}
	if startingAfter != "" {
		params.StartingAfter = stripeapi.String(startingAfter)
	}
	return params
}

// Coupons returns one page of the account's coupons.
func (a *Account) Coupons(startingAfter string) ([]*stripeapi.Coupon, bool, error) {
	params := &stripeapi.CouponListParams{ListParams: listParams(startingAfter)}
	it := a.api.Coupons.List(params)
	var coupons []*stripeapi.Coupon
	for it.Next() {
		coupons = append(coupons, it.Coupon())
	}
	if err := it.Err(); err != nil {
		return nil, false, err
	}
	return coupons, it.CouponList().HasMore, nil
}

// CreateCoupon creates a coupon on the account.
func (a *Account) CreateCoupon(params *stripeapi.CouponParams) (*stripeapi.Coupon, error) {
	return a.api.Coupons.New(params)
}

// Plans returns one page of the account's plans.
func (a *Account) Plans(startingAfter string) ([]*stripeapi.Plan, bool, error) {
	params := &stripeapi.PlanListParams{ListParams: listParams(startingAfter)}
	it := a.api.Plans.List(params)
	var plans []*stripeapi.Plan
	for it.Next() {
		plans = append(plans, it.Plan())
	}
	if err := it.Err(); err != nil {
		return nil, false, err
	}
	return plans, it.PlanList().HasMore, nil
}

// CreatePlan creates a plan on the account.
func (a *Account) CreatePlan(params *stripeapi.PlanParams) (*stripeapi.Plan, error) {
	return a.api.Plans.New(params)
}

// Products returns one page of the account's products.
func (a *Account) Products(startingAfter string) ([]*stripeapi.Product, bool, error) {
	params := &stripeapi.ProductListParams{ListParams: listParams(startingAfter)}
	it := a.api.Products.List(params)
	var products []*stripeapi.Product
	for it.Next() {
		products = append(products, it.Product())
	}
	if err := it.Err(); err != nil {
		return nil, false, err
	}
	return products, it.ProductList().HasMore, nil
}

// CreateProduct creates a product on the account.
func (a *Account) CreateProduct(params *stripeapi.ProductParams) (*stripeapi.Product, error) {
	return a.api.Products.New(params)
}

// WebhookEndpoints returns one page of the account's webhook endpoints.
func (a *Account) WebhookEndpoints(startingAfter string) ([]*stripeapi.WebhookEndpoint, bool, error) {
	params := &stripeapi.WebhookEndpointListParams{ListParams: listParams(startingAfter)}
	it := a.api.WebhookEndpoints.List(params)
	var endpoints []*stripeapi.WebhookEndpoint
	for it.Next() {
		endpoints = append(endpoints, it.WebhookEndpoint())
	}
	if err := it.Err(); err != nil {
		return nil, false, err
	}
	return endpoints, it.WebhookEndpointList().HasMore, nil
}

// CreateWebhookEndpoint creates a webhook endpoint on the account.
func (a *Account) CreateWebhookEndpoint(params *stripeapi.WebhookEndpointParams) (*stripeapi.WebhookEndpoint, error) {
	return a.api.WebhookEndpoints.New(params)
}

// Customers returns one page of the account's customers.
func (a *Account) Customers(startingAfter string) ([]*stripeapi.Customer, bool, error) {
	params := &stripeapi.CustomerListParams{ListParams: listParams(startingAfter)}
	it := a.api.Customers.List(params)
	var customers []*stripeapi.Customer
	for it.Next() {
		customers = append(customers, it.Customer())
	}
	if err := it.Err(); err != nil {
		return nil, false, err
	}
	return customers, it.CustomerList().HasMore, nil
}

// Customer retrieves a customer by ID. Deleted customers are returned with
// the Deleted flag set rather than as an error.
func (a *Account) Customer(id string) (*stripeapi.Customer, error) {
	return a.api.Customers.Get(id, nil)
}

// CreateCustomer creates a customer on the account.
func (a *Account) CreateCustomer(params *stripeapi.CustomerParams) (*stripeapi.Customer, error) {
	return a.api.Customers.New(params)
}

// Subscriptions returns one page of the account's subscriptions with the
// customer and default payment method references expanded.
func (a *Account) Subscriptions(startingAfter string) ([]*stripeapi.Subscription, bool, error) {
	params := &stripeapi.SubscriptionListParams{ListParams: listParams(startingAfter)}
	params.AddExpand("data.customer")
	params.AddExpand("data.default_payment_method")
	it := a.api.Subscriptions.List(params)
	var subscriptions []*stripeapi.Subscription
	for it.Next() {
		subscriptions = append(subscriptions, it.Subscription())
	}
	if err := it.Err(); err != nil {
		return nil, false, err
	}
	return subscriptions, it.SubscriptionList().HasMore, nil
}

// CreateSubscription creates a subscription on the account.
func (a *Account) CreateSubscription(params *stripeapi.SubscriptionParams) (*stripeapi.Subscription, error) {
	return a.api.Subscriptions.New(params)
}

// CancelSubscription cancels a subscription immediately.
func (a *Account) CancelSubscription(id string) (*stripeapi.Subscription, error) {
	return a.api.Subscriptions.Cancel(id, nil)
}

// PaymentMethods returns the first page of a customer's payment methods.
func (a *Account) PaymentMethods(customerID string) ([]*stripeapi.PaymentMethod, error) {
	params := &stripeapi.PaymentMethodListParams{
		Customer: stripeapi.String(customerID),
	}
	params.Limit = stripeapi.Int64(pageLimit)
	params.Single = true
	it := a.api.PaymentMethods.List(params)
	var methods []*stripeapi.PaymentMethod
	for it.Next() {
		methods = append(methods, it.PaymentMethod())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return methods, nil
}
