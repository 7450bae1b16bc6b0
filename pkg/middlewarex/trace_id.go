package middlewarex

import (
	"net/http"

	"github.com/rs/xid"

	"rate_audit/pkg/contextx"
	"rate_audit/pkg/httpx"
)

// TraceID reuses the caller's X-Trace-Id when it is a valid token and
// mints an xid otherwise. The ID is echoed in the response.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := contextx.TraceID(r.Header.Get(httpx.HeaderTraceID))
		if !traceID.Valid() {
			traceID = contextx.TraceID(xid.New().String())
		}

		w.Header().Set(httpx.HeaderTraceID, traceID.String())

		next.ServeHTTP(w, r.WithContext(contextx.WithTraceID(r.Context(), traceID)))
	})
}
