package migrate

import (
	"sync"

	"go.uber.org/zap"

	"github.com/vocdoni/stripe-migrate/stripe"
)

// listPageFunc requests one page of entities starting after the given
// cursor, returning the page and whether more pages remain.
type listPageFunc[T any] func(startingAfter string) ([]T, bool, error)

// fetchAll walks a cursor-paginated listing until the account reports no
// more entities or returns an empty page, using the last entity of each page
// as the cursor for the next. Pages are requested strictly in sequence. Any
// fetch failure propagates unchanged.
func fetchAll[T any](log *zap.SugaredLogger, kind string, id func(T) string, list listPageFunc[T]) ([]T, error) {
	var all []T
	startingAfter := ""
	for {
		page, hasMore, err := list(startingAfter)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if !hasMore || len(page) == 0 {
			break
		}
		startingAfter = id(page[len(page)-1])
	}
	log.Infof("fetched %d %s", len(all), kind)
	return all, nil
}

// createAll issues one creation per entity, all concurrently, and waits for
// the whole batch to settle. When skipExisting is set, creations rejected
// because the entity already exists on the destination are logged and leave
// a nil slot in the results; any other failure fails the batch. Entities
// already created by the time a failure surfaces are not rolled back.
func createAll[S, D any](
	log *zap.SugaredLogger,
	kind string,
	skipExisting bool,
	entities []S,
	id func(S) string,
	create func(S) (D, error),
) ([]D, error) {
	results := make([]D, len(entities))
	errs := make([]error, len(entities))
	var wg sync.WaitGroup
	for i, entity := range entities {
		wg.Add(1)
		go func(i int, entity S) {
			defer wg.Done()
			created, err := create(entity)
			if err != nil {
				if skipExisting && stripe.IsConflict(err) {
					log.Infof("%s %s already exists, skipping", kind, id(entity))
					return
				}
				errs[i] = err
				return
			}
			results[i] = created
		}(i, entity)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
