package documents

import (
	"github.com/JaimeStill/pdf-editor/pkg/query"
	"github.com/JaimeStill/pdf-editor/pkg/repository"
)

var projection = query.NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("filename", "Filename").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.Filename,
		&d.SizeBytes,
		&d.PageCount,
		&d.StorageKey,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

func scanPage(s repository.Scanner) (Page, error) {
	var p Page
	err := s.Scan(&p.Width, &p.Height, &p.Rotation)
	return p, err
}
