package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"eventadmission/internal/correlation"
)

// maxCorrelationIDLen bounds client-supplied ids before they reach logs and broker headers.
const maxCorrelationIDLen = 128

// Correlation takes X-Correlation-ID from the request, or generates one, stores it in the
// request context and echoes it on the response.
func Correlation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(correlation.Header)
		if id == "" || len(id) > maxCorrelationIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(correlation.Header, id)
		next.ServeHTTP(w, r.WithContext(correlation.WithID(r.Context(), id)))
	})
}
