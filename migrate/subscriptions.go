package migrate

import (
	"fmt"
	"sync"

	stripeapi "github.com/stripe/stripe-go/v81"
)

// SubscriptionOptions selects which customers a subscription migration
// covers. A non-empty CustomerIDs list wins over OmitCustomerIDs. DryRun
// exercises the migration against anonymized mock customers instead of real
// ones.
type SubscriptionOptions struct {
	CustomerIDs     []string
	OmitCustomerIDs []string
	DryRun          bool
}

// FetchSubscriptions returns every subscription in the account, in listing
// order, with customer and default payment method expanded.
func (m *Migrator) FetchSubscriptions(api API) ([]*stripeapi.Subscription, error) {
	return fetchAll(m.Log, "subscriptions",
		func(s *stripeapi.Subscription) string { return s.ID }, api.Subscriptions)
}

// Subscriptions recreates every active subscription of the scoped customers
// on the destination account, preserving each customer's billing cycle, and
// returns the source-to-destination subscription ID mapping.
func (m *Migrator) Subscriptions(opts SubscriptionOptions) (map[string]string, error) {
	subscriptions, err := m.FetchSubscriptions(m.From)
	if err != nil {
		return nil, err
	}
	customers, err := m.FetchCustomers(m.From)
	if err != nil {
		return nil, err
	}
	scoped, err := m.scopeCustomers(customers, opts)
	if err != nil {
		return nil, err
	}

	var mocks []*stripeapi.Customer
	if opts.DryRun {
		mocks, err = m.createMockCustomers(scoped, len(opts.CustomerIDs) == 0)
		if err != nil {
			return nil, err
		}
	}

	inScope := make(map[string]bool, len(scoped))
	for _, customer := range scoped {
		inScope[customer.ID] = true
	}
	var eligible []*stripeapi.Subscription
	for _, subscription := range subscriptions {
		if subscription.Status != stripeapi.SubscriptionStatusActive {
			continue
		}
		if subscription.Customer == nil || !inScope[subscription.Customer.ID] {
			continue
		}
		eligible = append(eligible, subscription)
	}

	mapping := make(map[string]string)
	var mu sync.Mutex
	errs := make([]error, len(eligible))
	var wg sync.WaitGroup
	for i, subscription := range eligible {
		wg.Add(1)
		go func(i int, subscription *stripeapi.Subscription) {
			defer wg.Done()
			created, err := m.migrateSubscription(subscription, mocks, opts.DryRun)
			if err != nil {
				errs[i] = err
				return
			}
			if created == nil {
				return
			}
			mu.Lock()
			mapping[subscription.ID] = created.ID
			mu.Unlock()
		}(i, subscription)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	if len(mapping) > 0 {
		m.Log.Infof("subscription ID mapping: %v", mapping)
	}
	return mapping, nil
}

// migrateSubscription recreates one subscription on the destination account.
// A nil subscription with a nil error means the subscription was skipped
// (dry-run customers that disappeared or have no matching mock).
func (m *Migrator) migrateSubscription(
	subscription *stripeapi.Subscription,
	mocks []*stripeapi.Customer,
	dryRun bool,
) (*stripeapi.Subscription, error) {
	customerID, paymentMethodID, err := m.resolveDestination(subscription, mocks, dryRun)
	if err != nil || customerID == "" {
		return nil, err
	}
	created, err := m.To.CreateSubscription(subscriptionParams(subscription, customerID, paymentMethodID, dryRun))
	if err != nil {
		return nil, err
	}
	m.Log.Infof("created subscription %s for customer %s", created.ID, customerID)
	return created, nil
}

// resolveDestination yields the destination customer and payment method a
// subscription must be created against. In live mode customers correspond
// one-to-one by ID; in dry-run mode the source customer is matched to its
// mock by anonymized email. An empty customer ID with a nil error means the
// subscription should be silently skipped.
func (m *Migrator) resolveDestination(
	subscription *stripeapi.Subscription,
	mocks []*stripeapi.Customer,
	dryRun bool,
) (customerID, paymentMethodID string, err error) {
	if !dryRun {
		customerID = subscription.Customer.ID
		methods, err := m.To.PaymentMethods(customerID)
		if err != nil {
			return "", "", err
		}
		if len(methods) == 0 {
			return "", "", fmt.Errorf("failed to find payment method on customer %s", customerID)
		}
		return customerID, methods[0].ID, nil
	}

	customer := subscription.Customer
	// An expandable reference decoded from a bare ID carries nothing but
	// the ID, so a missing creation timestamp means we only hold the
	// reference and must retrieve the full customer.
	if !customer.Deleted && customer.Created == 0 {
		customer, err = m.From.Customer(customer.ID)
		if err != nil || customer == nil {
			return "", "", nil
		}
	}
	if customer.Deleted {
		return "", "", nil
	}
	var mock *stripeapi.Customer
	anonymized := AnonymizedEmail(customer.Email)
	for _, candidate := range mocks {
		if candidate.Email == anonymized {
			mock = candidate
			break
		}
	}
	if mock == nil {
		return "", "", nil
	}
	methods, err := m.To.PaymentMethods(mock.ID)
	if err != nil {
		return "", "", err
	}
	if len(methods) == 0 {
		return "", "", fmt.Errorf("failed to find payment method on mock customer %s", mock.ID)
	}
	return mock.ID, methods[0].ID, nil
}
