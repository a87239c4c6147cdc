package openapi

import (
	"encoding/json"
	"net/http"
)

// Version is the OpenAPI version the generated documents declare.
const Version = "3.1.0"

// NewSpec creates an empty document with the shared error responses
// registered as components.
func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI:    Version,
		Info:       &Info{Title: title, Version: version},
		Paths:      make(map[string]*PathItem),
		Components: NewComponents(),
	}
}

// NewComponents returns components holding the standard error responses.
// Operations reference them with ResponseRef.
func NewComponents() *Components {
	errorBody := map[string]*MediaType{
		"application/json": {Schema: SchemaRef("Error")},
	}

	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string"},
				},
				Required: []string{"error"},
			},
		},
		Responses: map[string]*Response{
			"BadRequest": {Description: "Invalid request", Content: errorBody},
			"NotFound":   {Description: "Resource not found", Content: errorBody},
			"Conflict":   {Description: "Conflicting state", Content: errorBody},
		},
	}
}

func (s *Spec) SetDescription(description string) {
	s.Info.Description = description
}

func (s *Spec) AddServer(url string) {
	if url == "" {
		return
	}
	s.Servers = append(s.Servers, &Server{URL: url})
}

// AddSchemas registers component schemas. Existing names are replaced.
func (s *Spec) AddSchemas(schemas map[string]*Schema) {
	if len(schemas) == 0 {
		return
	}
	if s.Components == nil {
		s.Components = &Components{}
	}
	if s.Components.Schemas == nil {
		s.Components.Schemas = make(map[string]*Schema, len(schemas))
	}
	for name, schema := range schemas {
		s.Components.Schemas[name] = schema
	}
}

// AddOperation sets the operation for method on path. Methods without a
// PathItem slot are ignored.
func (s *Spec) AddOperation(path, method string, op *Operation) {
	if s.Paths[path] == nil {
		s.Paths[path] = &PathItem{}
	}

	switch method {
	case http.MethodGet:
		s.Paths[path].Get = op
	case http.MethodPost:
		s.Paths[path].Post = op
	case http.MethodPut:
		s.Paths[path].Put = op
	case http.MethodDelete:
		s.Paths[path].Delete = op
	}
}

// MarshalJSON encodes the document with indentation.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// ServeSpec returns a handler that writes the pre-encoded document.
func ServeSpec(spec []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(spec)
	}
}
