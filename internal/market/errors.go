package market

import "errors"

// ErrUnavailable marks a provider response that could not be used: a
// non-success status, a malformed payload, or an empty result. Callers
// recover it as an absent result for that one symbol, never a batch
// failure.
var ErrUnavailable = errors.New("upstream unavailable")
