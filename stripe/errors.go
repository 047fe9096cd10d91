package stripe

import (
	"errors"
	"strings"

	stripeapi "github.com/stripe/stripe-go/v81"
)

// IsConflict reports whether a creation call failed because the entity
// already exists on the account. Stripe signals this condition through the
// error message only ("... already exists in live mode: ..."), so the match
// is on the message text; call sites must never inspect the message
// themselves.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	var stripeErr *stripeapi.Error
	if errors.As(err, &stripeErr) {
		return strings.Contains(stripeErr.Msg, "already exists")
	}
	return strings.Contains(err.Error(), "already exists")
}
