// Package api assembles the mutation service's domain systems behind a single
// HTTP handler.
package api

import (
	"net/http"

	"github.com/JaimeStill/pdf-editor/internal/config"
	"github.com/JaimeStill/pdf-editor/internal/infrastructure"
	"github.com/JaimeStill/pdf-editor/pkg/middleware"
	"github.com/JaimeStill/pdf-editor/pkg/openapi"
	"github.com/JaimeStill/pdf-editor/pkg/routes"
)

// NewHandler builds the service handler: domain routes under the configured
// base path plus health probes at the root, wrapped in the middleware stack.
func NewHandler(cfg *config.Config, infra *infrastructure.Infrastructure) http.Handler {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	return Mount(cfg, runtime, Groups(runtime, domain)...)
}

// Mount registers groups beneath the base path, serves their generated API
// document at {base}/openapi.json and applies the middleware stack.
func Mount(cfg *config.Config, runtime *Runtime, groups ...routes.Group) http.Handler {
	mux := http.NewServeMux()
	routes.Register(mux, cfg.Server.BasePath, groups...)
	routes.Register(mux, "", probes(runtime.Lifecycle))

	spec := openapi.NewSpec(cfg.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.OpenAPI.Description)
	spec.AddServer(cfg.Server.BasePath)
	routes.Describe(spec, groups...)

	if specBytes, err := openapi.MarshalJSON(spec); err != nil {
		runtime.Logger.Error("api document unavailable", "error", err)
	} else {
		mux.HandleFunc("GET "+cfg.Server.BasePath+"/openapi.json", openapi.ServeSpec(specBytes))
	}

	mw := middleware.New()
	mw.Use(middleware.TrimSlash())
	mw.Use(middleware.CORS(&cfg.CORS))
	mw.Use(middleware.Logger(runtime.Logger))

	for _, p := range routes.Patterns(cfg.Server.BasePath, groups...) {
		runtime.Logger.Debug("route registered", "pattern", p)
	}

	return mw.Apply(mux)
}
