package collector

import "errors"

var (
	// ErrUpstreamUnavailable covers transport failures and non-2xx responses.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrMalformedResponse covers bodies that do not match the OHLC payload shape.
	ErrMalformedResponse = errors.New("malformed upstream response")
)
