package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/JaimeStill/pdf-editor/internal/documents"
	"github.com/JaimeStill/pdf-editor/pkg/pagination"
)

func init() {
	registerSeeder(&DocumentSeeder{})
}

// DocumentSeeder uploads every PDF in a directory. Files whose name is
// already stored are skipped, so repeated runs are idempotent.
type DocumentSeeder struct{}

func (s *DocumentSeeder) Name() string {
	return "documents"
}

func (s *DocumentSeeder) Description() string {
	return "Uploads the PDF files of -dir as documents"
}

func (s *DocumentSeeder) Seed(ctx context.Context, env *Env) error {
	if env.Dir == "" {
		return errors.New("documents seeder requires -dir")
	}

	files, err := pdfFiles(env.Dir)
	if err != nil {
		return err
	}

	for _, path := range files {
		name := filepath.Base(path)

		exists, err := stored(ctx, env.Documents, name)
		if err != nil {
			return err
		}
		if exists {
			fmt.Printf("  skip %s (already stored)\n", name)
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		doc, err := env.Documents.Create(ctx, documents.CreateCommand{Filename: name, Data: data})
		if err != nil {
			return fmt.Errorf("upload %s: %w", name, err)
		}
		fmt.Printf("  %s -> %s (%d pages)\n", name, doc.ID, doc.PageCount)
	}
	return nil
}

// pdfFiles lists the .pdf files directly inside dir in name order.
func pdfFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	slices.Sort(out)
	return out, nil
}

func stored(ctx context.Context, sys documents.System, filename string) (bool, error) {
	result, err := sys.List(ctx, pagination.PageRequest{
		Page:     1,
		PageSize: 100,
		Search:   &filename,
	})
	if err != nil {
		return false, fmt.Errorf("lookup %s: %w", filename, err)
	}
	return slices.ContainsFunc(result.Data, func(d documents.Document) bool {
		return d.Filename == filename
	}), nil
}
