package entities

// LocalStatus classifies an on-disk checkout against its manifest entry.
type LocalStatus string

const (
	// StatusAbsent means the target path does not exist.
	StatusAbsent LocalStatus = "absent"
	// StatusEmpty means the path exists but holds no tracked content.
	StatusEmpty LocalStatus = "empty"
	// StatusCurrent means the checkout matches the declared ref.
	StatusCurrent LocalStatus = "initialized-current"
	// StatusStale means the checkout is on a different commit than declared.
	StatusStale LocalStatus = "initialized-stale"
	// StatusDirty means uncommitted local modifications exist. Dirty wins
	// over stale: uncommitted changes are the condition an operator must
	// address first.
	StatusDirty LocalStatus = "initialized-dirty"
	// StatusUnreadable means a filesystem error prevented inspection. Kept
	// distinct from absent so the initializer never re-creates over content
	// it could not actually verify is missing.
	StatusUnreadable LocalStatus = "unreadable"
)

// LocalState is the inspection verdict for one entry. CurrentRef and
// ExpectedRef are concrete commit hashes where local metadata allowed
// resolution.
type LocalState struct {
	Entry       DependencyEntry `json:"entry"`
	Status      LocalStatus     `json:"status"`
	CurrentRef  string          `json:"current_ref,omitempty"`
	ExpectedRef string          `json:"expected_ref,omitempty"`
	Detail      string          `json:"detail,omitempty"` // cause for unreadable
}
