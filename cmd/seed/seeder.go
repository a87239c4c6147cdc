// Package main provides the seed command for populating the service with
// documents for development and demos. Seeders go through the domain
// systems, so seeded documents are stored and extracted exactly like
// uploads.
package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/JaimeStill/pdf-editor/internal/documents"
)

// Env carries what seeders need.
type Env struct {
	Documents documents.System
	Dir       string
}

// Seeder defines the interface for data seeders.
type Seeder interface {
	// Name returns the unique identifier for this seeder.
	Name() string

	// Description returns a human-readable description of what this seeder does.
	Description() string

	Seed(ctx context.Context, env *Env) error
}

var seeders = map[string]Seeder{}

// registerSeeder adds a seeder to the registry.
// Seeders self-register via init() functions.
func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns all registered seeders ordered by name.
func listSeeders() []Seeder {
	result := make([]Seeder, 0, len(seeders))
	for _, s := range seeders {
		result = append(result, s)
	}
	slices.SortFunc(result, func(a, b Seeder) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return result
}

func runSeeder(ctx context.Context, env *Env, name string) error {
	seeder, ok := getSeeder(name)
	if !ok {
		return fmt.Errorf("seeder not found: %s", name)
	}
	if err := seeder.Seed(ctx, env); err != nil {
		return fmt.Errorf("seed %s: %w", name, err)
	}
	return nil
}

// runAllSeeders stops at the first failing seeder. Documents seeded
// before the failure are kept.
func runAllSeeders(ctx context.Context, env *Env) error {
	for _, s := range listSeeders() {
		if err := s.Seed(ctx, env); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}
