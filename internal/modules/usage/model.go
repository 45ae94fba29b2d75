package usage

import "errors"

// ErrQuotaExhausted is returned when a user has no model calls remaining for
// the current month.
var ErrQuotaExhausted = errors.New("monthly model-call quota exhausted")

// DefaultMonthlyCalls is the call allowance used when the configuration
// does not set one. A turn billed here may still run two model passes
// internally (primary plus augmentation); it counts as one call.
const DefaultMonthlyCalls = 200
