//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/submodsync/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// EntryBuilder helps create test dependency entries with a fluent interface.
type EntryBuilder struct {
	*testkit.BaseBuilder
	path     string
	url      string
	branch   string
	category string
	index    int
}

// NewEntryBuilder creates a new entry builder with sensible defaults.
func NewEntryBuilder() *EntryBuilder {
	return &EntryBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		path:        "bits_base/BITS",
		url:         "https://github.com/example/bits.git",
		branch:      "main",
		category:    "bits_base",
		index:       0,
	}
}

// WithPath sets the manifest path.
func (b *EntryBuilder) WithPath(path string) *EntryBuilder {
	b.path = path
	return b
}

// WithURL sets the remote URL.
func (b *EntryBuilder) WithURL(url string) *EntryBuilder {
	b.url = url
	return b
}

// WithBranch sets the tracked branch.
func (b *EntryBuilder) WithBranch(branch string) *EntryBuilder {
	b.branch = branch
	return b
}

// WithCategory sets the category tag.
func (b *EntryBuilder) WithCategory(category string) *EntryBuilder {
	b.category = category
	return b
}

// WithIndex sets the manifest position.
func (b *EntryBuilder) WithIndex(index int) *EntryBuilder {
	b.index = index
	return b
}

// Build creates the entry (satisfies testkit.Builder interface).
func (b *EntryBuilder) Build() interface{} {
	return b.BuildEntry()
}

// BuildEntry creates the entry with a concrete return type.
func (b *EntryBuilder) BuildEntry() entities.DependencyEntry {
	return entities.DependencyEntry{
		Path:     b.path,
		URL:      b.url,
		Branch:   b.branch,
		Category: b.category,
		Index:    b.index,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *EntryBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.path = "bits_base/BITS"
	b.url = "https://github.com/example/bits.git"
	b.branch = "main"
	b.category = "bits_base"
	b.index = 0
	return b
}

// Clone creates a deep copy of the EntryBuilder.
func (b *EntryBuilder) Clone() testkit.Builder {
	return &EntryBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		path:        b.path,
		url:         b.url,
		branch:      b.branch,
		category:    b.category,
		index:       b.index,
	}
}
