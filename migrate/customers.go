package migrate

import (
	"crypto/md5"
	"fmt"

	stripeapi "github.com/stripe/stripe-go/v81"
)

// testPaymentMethod is the Stripe test-mode payment method attached to every
// mock customer so that subscription creation can be exercised in dry runs.
const testPaymentMethod = "pm_card_visa"

// dryRunCustomerCap bounds how many mock customers a dry run creates when no
// explicit customer list is given, to stay clear of rate limits.
const dryRunCustomerCap = 20

// AnonymizedEmail derives a deterministic stand-in address for a customer
// email: the lowercase hex MD5 of the address at example.com. It labels mock
// customers in dry runs and is not a security measure.
func AnonymizedEmail(email string) string {
	return fmt.Sprintf("%x@example.com", md5.Sum([]byte(email)))
}

// FetchCustomers returns every customer in the account, in listing order.
func (m *Migrator) FetchCustomers(api API) ([]*stripeapi.Customer, error) {
	return fetchAll(m.Log, "customers", func(c *stripeapi.Customer) string { return c.ID }, api.Customers)
}

// scopeCustomers restricts the customer set according to the run options.
// Deleted customers are always dropped. A non-empty include list wins over
// the omit list and must match existing customers: a missing ID fails the
// run, whether or not this is a dry run.
func (m *Migrator) scopeCustomers(customers []*stripeapi.Customer, opts SubscriptionOptions) ([]*stripeapi.Customer, error) {
	var live []*stripeapi.Customer
	for _, customer := range customers {
		if !customer.Deleted {
			live = append(live, customer)
		}
	}
	if len(opts.CustomerIDs) > 0 {
		m.Log.Infof("only include %d customer ids", len(opts.CustomerIDs))
		include := make(map[string]bool, len(opts.CustomerIDs))
		for _, id := range opts.CustomerIDs {
			include[id] = true
		}
		var scoped []*stripeapi.Customer
		found := make(map[string]bool, len(opts.CustomerIDs))
		for _, customer := range live {
			if include[customer.ID] {
				scoped = append(scoped, customer)
				found[customer.ID] = true
			}
		}
		for _, id := range opts.CustomerIDs {
			if !found[id] {
				return nil, fmt.Errorf("failed to find customer %s", id)
			}
		}
		return scoped, nil
	}
	if len(opts.OmitCustomerIDs) > 0 {
		m.Log.Infof("omit %d customer ids", len(opts.OmitCustomerIDs))
		omit := make(map[string]bool, len(opts.OmitCustomerIDs))
		for _, id := range opts.OmitCustomerIDs {
			omit[id] = true
		}
		var scoped []*stripeapi.Customer
		for _, customer := range live {
			if !omit[customer.ID] {
				scoped = append(scoped, customer)
			}
		}
		return scoped, nil
	}
	return live, nil
}

// createMockCustomers creates one anonymized destination customer per scoped
// source customer, each carrying the test payment method. When the scope was
// not pinned to explicit customer IDs it is capped to the first
// dryRunCustomerCap customers. The mocks are left on the destination account
// after the run.
func (m *Migrator) createMockCustomers(customers []*stripeapi.Customer, capped bool) ([]*stripeapi.Customer, error) {
	if capped && len(customers) > dryRunCustomerCap {
		customers = customers[:dryRunCustomerCap]
	}
	mocks := make([]*stripeapi.Customer, 0, len(customers))
	for _, customer := range customers {
		params := &stripeapi.CustomerParams{
			PaymentMethod: stripeapi.String(testPaymentMethod),
		}
		if customer.Email != "" {
			params.Email = stripeapi.String(AnonymizedEmail(customer.Email))
		}
		if customer.Name != "" {
			params.Name = stripeapi.String(customer.Name)
		}
		mock, err := m.To.CreateCustomer(params)
		if err != nil {
			return nil, err
		}
		m.Log.Infof("created mock customer %s (%s)", mock.Email, mock.ID)
		mocks = append(mocks, mock)
	}
	return mocks, nil
}
