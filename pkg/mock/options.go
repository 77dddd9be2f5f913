package mock

import "time"

// routeOptions holds the per-route knobs collected from RouteOption values.
type routeOptions struct {
	maxResults int
	delay      time.Duration
	delaySet   bool
}

// RouteOption configures a single route binding.
type RouteOption func(*routeOptions)

// WithMaxResults makes a GET route respond with a JSON array of n values,
// each produced by its own schema invocation. Ignored on other methods.
func WithMaxResults(n int) RouteOption {
	return func(o *routeOptions) {
		o.maxResults = n
	}
}

// WithDelay overrides the server-level default delay for one route.
// WithDelay(0) explicitly disables the delay for that route.
func WithDelay(d time.Duration) RouteOption {
	return func(o *routeOptions) {
		o.delay = d
		o.delaySet = true
	}
}

func newRouteOptions(opts []RouteOption) routeOptions {
	var o routeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
