package migrate

import (
	"fmt"
	"sync"
	"testing"

	stripeapi "github.com/stripe/stripe-go/v81"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func testLogger(t *testing.T) *zap.SugaredLogger {
	return zaptest.NewLogger(t).Sugar()
}

// mockAPI implements API with overridable function fields. Unset listers
// return an empty final page; unset creators echo the request back as a
// minimal entity. Call counts are tracked per method, guarded by a mutex
// because the migrators create concurrently.
type mockAPI struct {
	mu    sync.Mutex
	calls map[string]int

	coupons      func(startingAfter string) ([]*stripeapi.Coupon, bool, error)
	createCoupon func(params *stripeapi.CouponParams) (*stripeapi.Coupon, error)

	plans      func(startingAfter string) ([]*stripeapi.Plan, bool, error)
	createPlan func(params *stripeapi.PlanParams) (*stripeapi.Plan, error)

	products      func(startingAfter string) ([]*stripeapi.Product, bool, error)
	createProduct func(params *stripeapi.ProductParams) (*stripeapi.Product, error)

	webhookEndpoints      func(startingAfter string) ([]*stripeapi.WebhookEndpoint, bool, error)
	createWebhookEndpoint func(params *stripeapi.WebhookEndpointParams) (*stripeapi.WebhookEndpoint, error)

	customers      func(startingAfter string) ([]*stripeapi.Customer, bool, error)
	customer       func(id string) (*stripeapi.Customer, error)
	createCustomer func(params *stripeapi.CustomerParams) (*stripeapi.Customer, error)

	subscriptions      func(startingAfter string) ([]*stripeapi.Subscription, bool, error)
	createSubscription func(params *stripeapi.SubscriptionParams) (*stripeapi.Subscription, error)
	cancelSubscription func(id string) (*stripeapi.Subscription, error)

	paymentMethods func(customerID string) ([]*stripeapi.PaymentMethod, error)
}

func (m *mockAPI) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

func (m *mockAPI) callCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *mockAPI) Coupons(startingAfter string) ([]*stripeapi.Coupon, bool, error) {
	m.record("Coupons")
	if m.coupons != nil {
		return m.coupons(startingAfter)
	}
	return nil, false, nil
}

func (m *mockAPI) CreateCoupon(params *stripeapi.CouponParams) (*stripeapi.Coupon, error) {
	m.record("CreateCoupon")
	if m.createCoupon != nil {
		return m.createCoupon(params)
	}
	created := &stripeapi.Coupon{}
	if params.ID != nil {
		created.ID = *params.ID
	}
	if params.Name != nil {
		created.Name = *params.Name
	}
	return created, nil
}

func (m *mockAPI) Plans(startingAfter string) ([]*stripeapi.Plan, bool, error) {
	m.record("Plans")
	if m.plans != nil {
		return m.plans(startingAfter)
	}
	return nil, false, nil
}

func (m *mockAPI) CreatePlan(params *stripeapi.PlanParams) (*stripeapi.Plan, error) {
	m.record("CreatePlan")
	if m.createPlan != nil {
		return m.createPlan(params)
	}
	created := &stripeapi.Plan{}
	if params.ID != nil {
		created.ID = *params.ID
	}
	return created, nil
}

func (m *mockAPI) Products(startingAfter string) ([]*stripeapi.Product, bool, error) {
	m.record("Products")
	if m.products != nil {
		return m.products(startingAfter)
	}
	return nil, false, nil
}

func (m *mockAPI) CreateProduct(params *stripeapi.ProductParams) (*stripeapi.Product, error) {
	m.record("CreateProduct")
	if m.createProduct != nil {
		return m.createProduct(params)
	}
	created := &stripeapi.Product{}
	if params.ID != nil {
		created.ID = *params.ID
	}
	if params.Name != nil {
		created.Name = *params.Name
	}
	return created, nil
}

func (m *mockAPI) WebhookEndpoints(startingAfter string) ([]*stripeapi.WebhookEndpoint, bool, error) {
	m.record("WebhookEndpoints")
	if m.webhookEndpoints != nil {
		return m.webhookEndpoints(startingAfter)
	}
	return nil, false, nil
}

func (m *mockAPI) CreateWebhookEndpoint(params *stripeapi.WebhookEndpointParams) (*stripeapi.WebhookEndpoint, error) {
	m.record("CreateWebhookEndpoint")
	if m.createWebhookEndpoint != nil {
		return m.createWebhookEndpoint(params)
	}
	created := &stripeapi.WebhookEndpoint{ID: fmt.Sprintf("we_%d", m.callCount("CreateWebhookEndpoint"))}
	if params.URL != nil {
		created.URL = *params.URL
	}
	return created, nil
}

func (m *mockAPI) Customers(startingAfter string) ([]*stripeapi.Customer, bool, error) {
	m.record("Customers")
	if m.customers != nil {
		return m.customers(startingAfter)
	}
	return nil, false, nil
}

func (m *mockAPI) Customer(id string) (*stripeapi.Customer, error) {
	m.record("Customer")
	if m.customer != nil {
		return m.customer(id)
	}
	return &stripeapi.Customer{ID: id, Created: 1}, nil
}

func (m *mockAPI) CreateCustomer(params *stripeapi.CustomerParams) (*stripeapi.Customer, error) {
	m.record("CreateCustomer")
	if m.createCustomer != nil {
		return m.createCustomer(params)
	}
	created := &stripeapi.Customer{ID: fmt.Sprintf("cus_mock_%d", m.callCount("CreateCustomer")), Created: 1}
	if params.Email != nil {
		created.Email = *params.Email
	}
	if params.Name != nil {
		created.Name = *params.Name
	}
	return created, nil
}

func (m *mockAPI) Subscriptions(startingAfter string) ([]*stripeapi.Subscription, bool, error) {
	m.record("Subscriptions")
	if m.subscriptions != nil {
		return m.subscriptions(startingAfter)
	}
	return nil, false, nil
}

func (m *mockAPI) CreateSubscription(params *stripeapi.SubscriptionParams) (*stripeapi.Subscription, error) {
	m.record("CreateSubscription")
	if m.createSubscription != nil {
		return m.createSubscription(params)
	}
	return &stripeapi.Subscription{ID: fmt.Sprintf("sub_new_%d", m.callCount("CreateSubscription"))}, nil
}

func (m *mockAPI) CancelSubscription(id string) (*stripeapi.Subscription, error) {
	m.record("CancelSubscription")
	if m.cancelSubscription != nil {
		return m.cancelSubscription(id)
	}
	return &stripeapi.Subscription{ID: id, Status: stripeapi.SubscriptionStatusCanceled}, nil
}

func (m *mockAPI) PaymentMethods(customerID string) ([]*stripeapi.PaymentMethod, error) {
	m.record("PaymentMethods")
	if m.paymentMethods != nil {
		return m.paymentMethods(customerID)
	}
	return []*stripeapi.PaymentMethod{{ID: "pm_" + customerID}}, nil
}

// singlePage adapts a fixed slice into a lister that serves it as one final
// page.
func singlePage[T any](items []T) func(string) ([]T, bool, error) {
	return func(string) ([]T, bool, error) {
		return items, false, nil
	}
}

func conflictErr(kind string) error {
	return &stripeapi.Error{Msg: fmt.Sprintf("%s already exists", kind)}
}
