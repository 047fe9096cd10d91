package migrate

import (
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"
	stripeapi "github.com/stripe/stripe-go/v81"
)

func TestAnonymizedEmail(t *testing.T) {
	c := qt.New(t)
	c.Assert(AnonymizedEmail("test@example.com"),
		qt.Equals, "55502f40dc8b7c769880b10874abc9d0@example.com")
	// deterministic: same input, same address
	c.Assert(AnonymizedEmail("alice@corp.io"), qt.Equals, AnonymizedEmail("alice@corp.io"))
	c.Assert(AnonymizedEmail("alice@corp.io"), qt.Not(qt.Equals), AnonymizedEmail("bob@corp.io"))
	// even the empty string maps to a well-formed address
	c.Assert(AnonymizedEmail(""),
		qt.Equals, "d41d8cd98f00b204e9800998ecf8427e@example.com")
	c.Assert(AnonymizedEmail("anything"), qt.Matches, `[0-9a-f]{32}@example\.com`)
}

func testCustomers() []*stripeapi.Customer {
	return []*stripeapi.Customer{
		{ID: "cus_1", Email: "one@example.com", Created: 1},
		{ID: "cus_2", Email: "two@example.com", Created: 1},
		{ID: "cus_3", Email: "three@example.com", Created: 1},
		{ID: "cus_gone", Deleted: true},
	}
}

func TestScopeCustomersDropsDeleted(t *testing.T) {
	c := qt.New(t)
	m := New(&mockAPI{}, &mockAPI{}, testLogger(t))
	scoped, err := m.scopeCustomers(testCustomers(), SubscriptionOptions{})
	c.Assert(err, qt.IsNil)
	c.Assert(len(scoped), qt.Equals, 3)
	for _, customer := range scoped {
		c.Assert(customer.Deleted, qt.Equals, false)
	}
}

func TestScopeCustomersIncludeList(t *testing.T) {
	c := qt.New(t)
	m := New(&mockAPI{}, &mockAPI{}, testLogger(t))
	scoped, err := m.scopeCustomers(testCustomers(), SubscriptionOptions{
		CustomerIDs: []string{"cus_1", "cus_3"},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(len(scoped), qt.Equals, 2)
	c.Assert(scoped[0].ID, qt.Equals, "cus_1")
	c.Assert(scoped[1].ID, qt.Equals, "cus_3")
}

func TestScopeCustomersIncludeWinsOverOmit(t *testing.T) {
	c := qt.New(t)
	m := New(&mockAPI{}, &mockAPI{}, testLogger(t))
	scoped, err := m.scopeCustomers(testCustomers(), SubscriptionOptions{
		CustomerIDs:     []string{"cus_2"},
		OmitCustomerIDs: []string{"cus_2"},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(len(scoped), qt.Equals, 1)
	c.Assert(scoped[0].ID, qt.Equals, "cus_2")
}

func TestScopeCustomersUnknownIncludeIDFails(t *testing.T) {
	c := qt.New(t)
	m := New(&mockAPI{}, &mockAPI{}, testLogger(t))
	_, err := m.scopeCustomers(testCustomers(), SubscriptionOptions{
		CustomerIDs: []string{"cus_1", "cus_missing"},
	})
	c.Assert(err, qt.ErrorMatches, "failed to find customer cus_missing")
}

func TestScopeCustomersOmitList(t *testing.T) {
	c := qt.New(t)
	m := New(&mockAPI{}, &mockAPI{}, testLogger(t))
	scoped, err := m.scopeCustomers(testCustomers(), SubscriptionOptions{
		OmitCustomerIDs: []string{"cus_2"},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(len(scoped), qt.Equals, 2)
	c.Assert(scoped[0].ID, qt.Equals, "cus_1")
	c.Assert(scoped[1].ID, qt.Equals, "cus_3")
}

func TestCreateMockCustomers(t *testing.T) {
	c := qt.New(t)
	var params []*stripeapi.CustomerParams
	to := &mockAPI{
		createCustomer: func(p *stripeapi.CustomerParams) (*stripeapi.Customer, error) {
			params = append(params, p)
			return &stripeapi.Customer{ID: fmt.Sprintf("cus_mock_%d", len(params)), Email: *p.Email}, nil
		},
	}
	m := New(&mockAPI{}, to, testLogger(t))
	mocks, err := m.createMockCustomers([]*stripeapi.Customer{
		{ID: "cus_1", Email: "test@example.com", Name: "Test User", Created: 1},
	}, true)
	c.Assert(err, qt.IsNil)
	c.Assert(len(mocks), qt.Equals, 1)
	c.Assert(*params[0].Email, qt.Equals, "55502f40dc8b7c769880b10874abc9d0@example.com")
	c.Assert(*params[0].Name, qt.Equals, "Test User")
	c.Assert(*params[0].PaymentMethod, qt.Equals, "pm_card_visa")
}

func TestCreateMockCustomersCap(t *testing.T) {
	c := qt.New(t)
	customers := make([]*stripeapi.Customer, 25)
	for i := range customers {
		customers[i] = &stripeapi.Customer{
			ID:      fmt.Sprintf("cus_%d", i),
			Email:   fmt.Sprintf("user%d@example.com", i),
			Created: 1,
		}
	}
	capped := &mockAPI{}
	m := New(&mockAPI{}, capped, testLogger(t))
	mocks, err := m.createMockCustomers(customers, true)
	c.Assert(err, qt.IsNil)
	c.Assert(len(mocks), qt.Equals, dryRunCustomerCap)

	// explicit customer selections are never capped
	uncapped := &mockAPI{}
	m = New(&mockAPI{}, uncapped, testLogger(t))
	mocks, err = m.createMockCustomers(customers, false)
	c.Assert(err, qt.IsNil)
	c.Assert(len(mocks), qt.Equals, 25)
}

func TestCreateMockCustomersOmitsEmptyEmail(t *testing.T) {
	c := qt.New(t)
	var captured *stripeapi.CustomerParams
	to := &mockAPI{
		createCustomer: func(p *stripeapi.CustomerParams) (*stripeapi.Customer, error) {
			captured = p
			return &stripeapi.Customer{ID: "cus_mock_1"}, nil
		},
	}
	m := New(&mockAPI{}, to, testLogger(t))
	_, err := m.createMockCustomers([]*stripeapi.Customer{{ID: "cus_1", Created: 1}}, true)
	c.Assert(err, qt.IsNil)
	c.Assert(captured.Email, qt.IsNil)
	c.Assert(captured.Name, qt.IsNil)
	c.Assert(*captured.PaymentMethod, qt.Equals, "pm_card_visa")
}
