// Package routes describes HTTP endpoints as groups of method/pattern pairs
// and registers them on a standard library ServeMux.
package routes

import (
	"net/http"

	"github.com/JaimeStill/pdf-editor/pkg/openapi"
)

// Route is a single endpoint. Pattern is relative to its group prefix and
// may use ServeMux wildcards such as {id}.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix   string
	Tags     []string
	Routes   []Route
	Children []Group
	Schemas  map[string]*openapi.Schema
}

// Register mounts every route of groups on mux beneath basePath.
func Register(mux *http.ServeMux, basePath string, groups ...Group) {
	for _, g := range groups {
		register(mux, basePath, g)
	}
}

// Patterns lists the full "METHOD /path" pattern of every route in groups.
func Patterns(basePath string, groups ...Group) []string {
	var out []string
	var walk func(prefix string, g Group)
	walk = func(prefix string, g Group) {
		full := prefix + g.Prefix
		for _, r := range g.Routes {
			out = append(out, r.Method+" "+full+r.Pattern)
		}
		for _, c := range g.Children {
			walk(full, c)
		}
	}
	for _, g := range groups {
		walk(basePath, g)
	}
	return out
}

func register(mux *http.ServeMux, prefix string, g Group) {
	full := prefix + g.Prefix
	for _, r := range g.Routes {
		mux.HandleFunc(r.Method+" "+full+r.Pattern, r.Handler)
	}
	for _, c := range g.Children {
		register(mux, full, c)
	}
}

// Describe adds the operations and schemas of groups to spec. Paths are
// relative to the spec's server URL. Routes without an operation are
// left out of the document.
func Describe(spec *openapi.Spec, groups ...Group) {
	var walk func(prefix string, g Group)
	walk = func(prefix string, g Group) {
		full := prefix + g.Prefix
		spec.AddSchemas(g.Schemas)
		for _, r := range g.Routes {
			if r.OpenAPI == nil {
				continue
			}
			op := r.OpenAPI
			if len(op.Tags) == 0 {
				op.Tags = g.Tags
			}
			path := full + r.Pattern
			if path == "" {
				path = "/"
			}
			spec.AddOperation(path, r.Method, op)
		}
		for _, c := range g.Children {
			walk(full, c)
		}
	}
	for _, g := range groups {
		walk("", g)
	}
}
