package routes_test

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/JaimeStill/pdf-editor/pkg/openapi"
	"github.com/JaimeStill/pdf-editor/pkg/routes"
)

func TestRegister(t *testing.T) {
	var hit string
	handler := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			hit = name + ":" + r.PathValue("id")
		}
	}

	group := routes.Group{
		Prefix: "/documents",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: handler("upload")},
			{Method: "GET", Pattern: "/{id}", Handler: handler("find")},
		},
		Children: []routes.Group{{
			Prefix: "/{id}/regions",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: handler("regions")},
			},
		}},
	}

	mux := http.NewServeMux()
	routes.Register(mux, "/api", group)

	tests := []struct {
		method, path, want string
	}{
		{"POST", "/api/documents", "upload:"},
		{"GET", "/api/documents/abc", "find:abc"},
		{"GET", "/api/documents/abc/regions", "regions:abc"},
	}
	for _, tt := range tests {
		hit = ""
		mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.path, nil))
		if hit != tt.want {
			t.Errorf("%s %s hit %q, want %q", tt.method, tt.path, hit, tt.want)
		}
	}

	want := []string{
		"POST /api/documents",
		"GET /api/documents/{id}",
		"GET /api/documents/{id}/regions",
	}
	if got := routes.Patterns("/api", group); !slices.Equal(got, want) {
		t.Errorf("Patterns() = %v, want %v", got, want)
	}
}

func TestDescribe(t *testing.T) {
	list := &openapi.Operation{Summary: "List"}
	find := &openapi.Operation{Summary: "Find", Tags: []string{"Lookup"}}
	regions := &openapi.Operation{Summary: "Regions"}

	group := routes.Group{
		Prefix:  "/documents",
		Tags:    []string{"Documents"},
		Schemas: map[string]*openapi.Schema{"Document": {Type: "object"}},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", OpenAPI: list},
			{Method: "GET", Pattern: "/{id}", OpenAPI: find},
			{Method: "DELETE", Pattern: "/{id}"},
		},
		Children: []routes.Group{{
			Prefix: "/{id}/regions",
			Routes: []routes.Route{{Method: "POST", Pattern: "", OpenAPI: regions}},
		}},
	}

	spec := openapi.NewSpec("Test", "1.0.0")
	routes.Describe(spec, group)

	if spec.Paths["/documents"].Get != list {
		t.Error("list operation not registered")
	}
	if !slices.Equal(list.Tags, []string{"Documents"}) {
		t.Errorf("list tags = %v, want group tags", list.Tags)
	}
	if !slices.Equal(find.Tags, []string{"Lookup"}) {
		t.Errorf("explicit tags replaced: %v", find.Tags)
	}
	if spec.Paths["/documents/{id}"].Delete != nil {
		t.Error("route without an operation was documented")
	}
	if spec.Paths["/documents/{id}/regions"].Post != regions {
		t.Error("child group operation not registered")
	}
	if spec.Components.Schemas["Document"] == nil || spec.Components.Schemas["Error"] == nil {
		t.Errorf("schemas = %v", spec.Components.Schemas)
	}
}
