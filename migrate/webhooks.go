package migrate

import (
	stripeapi "github.com/stripe/stripe-go/v81"
)

// FetchWebhookEndpoints returns every webhook endpoint in the account, in
// listing order.
func (m *Migrator) FetchWebhookEndpoints(api API) ([]*stripeapi.WebhookEndpoint, error) {
	return fetchAll(m.Log, "webhook endpoints",
		func(w *stripeapi.WebhookEndpoint) string { return w.ID }, api.WebhookEndpoints)
}

// webhookParams maps a webhook endpoint into its creation request. Enabled
// events are passed through verbatim; the API version is omitted when the
// source endpoint pinned none.
func webhookParams(endpoint *stripeapi.WebhookEndpoint) *stripeapi.WebhookEndpointParams {
	params := &stripeapi.WebhookEndpointParams{
		URL:           stripeapi.String(endpoint.URL),
		EnabledEvents: stripeapi.StringSlice(endpoint.EnabledEvents),
	}
	params.Metadata = endpoint.Metadata
	if endpoint.APIVersion != "" {
		params.APIVersion = stripeapi.String(endpoint.APIVersion)
	}
	if endpoint.Description != "" {
		params.Description = stripeapi.String(endpoint.Description)
	}
	return params
}

// coversEvents reports whether the existing endpoint's enabled-event set is
// a superset of the wanted events.
func coversEvents(existing *stripeapi.WebhookEndpoint, wanted []string) bool {
	enabled := make(map[string]bool, len(existing.EnabledEvents))
	for _, event := range existing.EnabledEvents {
		enabled[event] = true
	}
	for _, event := range wanted {
		if !enabled[event] {
			return false
		}
	}
	return true
}

// WebhookEndpoints copies webhook endpoints from the source account to the
// destination. An endpoint is skipped when the destination already listens
// on the same URL for a superset of its events; otherwise a new endpoint is
// created, even if that leaves two endpoints on one URL with different event
// sets. The returned slice holds the created endpoints in source order, with
// a nil entry per skip.
func (m *Migrator) WebhookEndpoints() ([]*stripeapi.WebhookEndpoint, error) {
	endpoints, err := m.FetchWebhookEndpoints(m.From)
	if err != nil {
		return nil, err
	}
	existing, err := m.FetchWebhookEndpoints(m.To)
	if err != nil {
		return nil, err
	}
	return createAll(m.Log, "webhook endpoint", false, endpoints,
		func(w *stripeapi.WebhookEndpoint) string { return w.ID },
		func(w *stripeapi.WebhookEndpoint) (*stripeapi.WebhookEndpoint, error) {
			for _, destination := range existing {
				if destination.URL == w.URL && coversEvents(destination, w.EnabledEvents) {
					m.Log.Infof("webhook endpoint for %s already exists, skipping", w.URL)
					return nil, nil
				}
			}
			created, err := m.To.CreateWebhookEndpoint(webhookParams(w))
			if err != nil {
				return nil, err
			}
			m.Log.Infof("created webhook endpoint %s (%s)", created.ID, created.URL)
			return created, nil
		})
}
