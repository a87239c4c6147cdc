package overlay

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/JaimeStill/pdf-editor/pkg/geometry"
)

// Model is the set of regions known for the loaded document, keyed by id.
// It is owned by a single event loop and is not safe for concurrent use.
type Model struct {
	regions map[ID]Region
	loaded  map[int]bool
}

// NewModel creates an empty region model.
func NewModel() *Model {
	return &Model{
		regions: make(map[ID]Region),
		loaded:  make(map[int]bool),
	}
}

// Len returns the number of regions across all pages.
func (m *Model) Len() int {
	return len(m.regions)
}

// Get returns the region with the given id.
func (m *Model) Get(id ID) (Region, bool) {
	r, ok := m.regions[id]
	return r, ok
}

// OnPage reports whether id names a region on the given page.
func (m *Model) OnPage(id ID, page int) bool {
	r, ok := m.regions[id]
	return ok && r.Page == page
}

// Loaded reports whether the regions of a page have been fetched.
func (m *Model) Loaded(page int) bool {
	return m.loaded[page]
}

// Page returns the regions of a page ordered top to bottom, then left to right.
func (m *Model) Page(page int) []Region {
	var out []Region
	for _, r := range m.regions {
		if r.Page == page {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, compareReading)
	return out
}

// All returns every region ordered by page and reading order.
func (m *Model) All() []Region {
	out := slices.Collect(maps.Values(m.regions))
	slices.SortFunc(out, func(a, b Region) int {
		if c := cmp.Compare(a.Page, b.Page); c != 0 {
			return c
		}
		return compareReading(a, b)
	})
	return out
}

// At returns the region on page under the document point p. When regions
// overlap the smallest one wins.
func (m *Model) At(page int, p geometry.Point) (Region, bool) {
	var (
		hit   Region
		found bool
	)
	for _, r := range m.Page(page) {
		if !r.Rect.Contains(p) {
			continue
		}
		if !found || r.Rect.Area() < hit.Rect.Area() {
			hit, found = r, true
		}
	}
	return hit, found
}

// Put inserts or replaces a region. A region may not move between pages.
func (m *Model) Put(r Region) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if existing, ok := m.regions[r.ID]; ok && existing.Page != r.Page {
		return fmt.Errorf("%w: %s is on page %d", ErrPageReassignment, r.ID, existing.Page)
	}
	m.regions[r.ID] = r
	return nil
}

// Remove deletes a region and returns what was removed.
func (m *Model) Remove(id ID) (Region, bool) {
	r, ok := m.regions[id]
	if ok {
		delete(m.regions, id)
	}
	return r, ok
}

// SetText replaces the content of a region and marks it modified.
func (m *Model) SetText(id ID, text string) error {
	r, ok := m.regions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r.Text = text
	r.Modified = true
	m.regions[id] = r
	return nil
}

// Apply applies a property change to a region.
func (m *Model) Apply(id ID, c Change) error {
	r, ok := m.regions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r.Attributes = r.Attributes.With(c)
	if err := r.Validate(); err != nil {
		return err
	}
	m.regions[id] = r
	return nil
}

// ReplacePage discards every region on page and installs regions in their
// place. Regions that belong to another page are rejected before anything
// is discarded.
func (m *Model) ReplacePage(page int, regions []Region) error {
	for _, r := range regions {
		if r.Page != page {
			return fmt.Errorf("%w: %s belongs to page %d, not %d", ErrInvalidRegion, r.ID, r.Page, page)
		}
		if err := r.Validate(); err != nil {
			return err
		}
	}

	m.InvalidatePage(page)
	for _, r := range regions {
		m.regions[r.ID] = r
	}
	m.loaded[page] = true
	return nil
}

// InvalidatePage drops the regions of a page and marks it as not loaded.
func (m *Model) InvalidatePage(page int) {
	maps.DeleteFunc(m.regions, func(_ ID, r Region) bool {
		return r.Page == page
	})
	delete(m.loaded, page)
}

// Reset replaces the whole model with regions, marking pages 0..pageCount-1
// as loaded.
func (m *Model) Reset(regions []Region, pageCount int) error {
	next := make(map[ID]Region, len(regions))
	for _, r := range regions {
		if err := r.Validate(); err != nil {
			return err
		}
		next[r.ID] = r
	}

	m.regions = next
	m.loaded = make(map[int]bool, pageCount)
	for p := range pageCount {
		m.loaded[p] = true
	}
	return nil
}

// Clear removes every region.
func (m *Model) Clear() {
	clear(m.regions)
	clear(m.loaded)
}

func compareReading(a, b Region) int {
	if c := cmp.Compare(a.Rect.Top, b.Rect.Top); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Rect.Left, b.Rect.Left); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
