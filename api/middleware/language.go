package middleware

import (
	"net/http"

	"github.com/angelmondragon/teastore-backend/pkg/i18n"
)

// Language negotiates Accept-Language and puts the matching printer on the
// request context.
func Language(tr *i18n.Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if tr == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag := tr.Match(r.Header.Get("Accept-Language"))
			w.Header().Set("Content-Language", tag.String())
			ctx := i18n.WithPrinter(r.Context(), tr.Printer(tag))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
