package httpx

// HeaderTraceID carries the trace ID between the API, its clients and the
// upstream calls it makes.
const HeaderTraceID = "X-Trace-Id"

type Option func(*LoggingRoundTripper)

// WithLogFieldMaxLen truncates logged request and response dumps. Zero or
// less logs them whole.
func WithLogFieldMaxLen(maxLen int) Option {
	return func(rt *LoggingRoundTripper) {
		rt.logFieldMaxLen = max(maxLen, 0)
	}
}

// WithSensitiveDataMasker replaces the default borrower-data masker.
func WithSensitiveDataMasker(masker sensitiveDataMasker) Option {
	return func(rt *LoggingRoundTripper) {
		rt.sensitiveDataMasker = masker
	}
}

// WithTracePropagation copies the trace ID of the request context into the
// HeaderTraceID header of outbound requests.
func WithTracePropagation() Option {
	return func(rt *LoggingRoundTripper) {
		rt.propagateTraceID = true
	}
}
