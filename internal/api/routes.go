package api

import (
	"net/http"

	"github.com/JaimeStill/pdf-editor/internal/lifecycle"
	"github.com/JaimeStill/pdf-editor/pkg/handlers"
	"github.com/JaimeStill/pdf-editor/pkg/routes"
)

// Groups returns every API route group.
func Groups(runtime *Runtime, domain *Domain) []routes.Group {
	return []routes.Group{
		domain.Documents.Handler(runtime.MaxUploadSize).Routes(),
		domain.Regions.Handler().Routes(),
	}
}

// probes returns liveness and readiness endpoints, mounted outside the API base path.
func probes(ready lifecycle.ReadinessChecker) routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/healthz", Handler: func(w http.ResponseWriter, r *http.Request) {
				handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
			}},
			{Method: "GET", Pattern: "/readyz", Handler: func(w http.ResponseWriter, r *http.Request) {
				if !ready.Ready() {
					handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
					return
				}
				handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
			}},
		},
	}
}
