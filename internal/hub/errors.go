package hub

import "errors"

// Sentinel errors for hub operations.
//
// Only the health check surfaces errors to callers; the data-path
// operations (FetchStates, CallService) soft-fail instead. Check with
// errors.Is():
//
//	if errors.Is(err, hub.ErrUnavailable) {
//	    // Hub unreachable or rejecting requests
//	}
var (
	// ErrUnavailable indicates the hub API did not respond with 200.
	ErrUnavailable = errors.New("hub: unavailable")
)
