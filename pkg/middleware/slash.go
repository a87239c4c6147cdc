package middleware

import (
	"net/http"
	"strings"
)

// TrimSlash canonicalizes paths with a trailing slash. Safe methods are
// redirected; other methods are rewritten in place so request bodies such as
// uploads are not lost to a redirect. The root path "/" is preserved.
func TrimSlash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) <= 1 || !strings.HasSuffix(r.URL.Path, "/") {
				next.ServeHTTP(w, r)
				return
			}

			trimmed := strings.TrimRight(r.URL.Path, "/")
			if trimmed == "" {
				trimmed = "/"
			}

			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				target := trimmed
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				http.Redirect(w, r, target, http.StatusMovedPermanently)
				return
			}

			r2 := r.Clone(r.Context())
			r2.URL.Path = trimmed
			r2.URL.RawPath = ""
			next.ServeHTTP(w, r2)
		})
	}
}
