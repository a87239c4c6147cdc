package api

import (
	"github.com/JaimeStill/pdf-editor/internal/documents"
	"github.com/JaimeStill/pdf-editor/internal/extract"
	"github.com/JaimeStill/pdf-editor/internal/regions"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Documents documents.System
	Regions   regions.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Documents: documents.New(
			runtime.Database.Connection(),
			runtime.Storage,
			extract.New(runtime.Logger),
			runtime.Logger,
			runtime.Pagination,
		),
		Regions: regions.New(
			runtime.Database.Connection(),
			runtime.Logger,
		),
	}
}
