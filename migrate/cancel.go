package migrate

import (
	"sync"
	"sync/atomic"

	stripeapi "github.com/stripe/stripe-go/v81"
	"go.uber.org/zap"
)

// CancelSubscriptions cancels every subscription in the account,
// immediately. Individual cancellation failures are logged and counted but
// do not abort the rest of the batch.
func CancelSubscriptions(log *zap.SugaredLogger, api API) error {
	subscriptions, err := fetchAll(log, "subscriptions",
		func(s *stripeapi.Subscription) string { return s.ID }, api.Subscriptions)
	if err != nil {
		return err
	}
	if len(subscriptions) == 0 {
		log.Info("no subscriptions to cancel")
		return nil
	}
	var cancelled, failed atomic.Int64
	var wg sync.WaitGroup
	for _, subscription := range subscriptions {
		wg.Add(1)
		go func(subscription *stripeapi.Subscription) {
			defer wg.Done()
			if _, err := api.CancelSubscription(subscription.ID); err != nil {
				log.Warnf("failed to cancel subscription %s: %v", subscription.ID, err)
				failed.Add(1)
				return
			}
			log.Infof("cancelled subscription %s", subscription.ID)
			cancelled.Add(1)
		}(subscription)
	}
	wg.Wait()
	log.Infof("cancelled %d subscriptions", cancelled.Load())
	if failed.Load() > 0 {
		log.Warnf("failed to cancel %d subscriptions", failed.Load())
	}
	return nil
}
