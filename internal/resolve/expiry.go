package resolve

import "math"

// RegistrarGracePeriod is the registrar's post-expiry window, in seconds,
// before a lease is released for re-registration.
const RegistrarGracePeriod uint64 = 90 * 24 * 60 * 60

// expiredAt judges an expiry against the reference timestamp captured for the
// resolution. A zero expiry means the record carries no expiry concept and is
// never reported expired; callers omit the flag instead. Sentinel max-uint64
// expiries (the wrapper's "never expires") must not wrap when the grace window
// is added.
func expiredAt(ref, expiry, grace uint64) bool {
	if expiry == 0 || expiry > math.MaxUint64-grace {
		return false
	}
	return ref > expiry+grace
}
