package entities

import "strings"

// CategoryOther collects entries whose path matches no category rule.
const CategoryOther = "other"

// DependencyEntry is one externally-hosted repository declared in the
// manifest. Entries are immutable for the duration of a run; Index is the
// zero-based position in the manifest and drives deterministic report order.
type DependencyEntry struct {
	Path     string `json:"path"`
	URL      string `json:"url"`
	Branch   string `json:"branch,omitempty"` // empty means the remote default branch
	Category string `json:"category"`
	Index    int    `json:"-"`
}

// RemoteHost extracts the hostname from the entry URL. Supports
// scheme-qualified URLs (https://, http://, ssh://, git://) and
// scp-style "git@host:path" addresses. Returns "" when no host can
// be determined.
func (e DependencyEntry) RemoteHost() string {
	url := e.URL

	if idx := strings.Index(url, "://"); idx >= 0 {
		url = url[idx+3:]
		if at := strings.Index(url, "@"); at >= 0 {
			url = url[at+1:]
		}
		for _, sep := range []string{"/", ":"} {
			if i := strings.Index(url, sep); i >= 0 {
				url = url[:i]
			}
		}
		return url
	}

	// scp-style: git@host:path
	if at := strings.Index(url, "@"); at >= 0 {
		rest := url[at+1:]
		if colon := strings.Index(rest, ":"); colon >= 0 {
			return rest[:colon]
		}
		return rest
	}

	return ""
}

// IsSSH reports whether the entry URL uses an SSH transport.
func (e DependencyEntry) IsSSH() bool {
	return strings.HasPrefix(e.URL, "ssh://") || strings.Contains(e.URL, "@") && !strings.Contains(e.URL, "://")
}

// CategoryRule maps a path prefix to a category name. Rules are evaluated
// in order; the first matching prefix wins.
type CategoryRule struct {
	Prefix string `yaml:"prefix"`
	Name   string `yaml:"name"`
}

// ResolveCategory returns the category for a manifest path according to the
// given rules, or CategoryOther when nothing matches.
func ResolveCategory(path string, rules []CategoryRule) string {
	for _, rule := range rules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule.Name
		}
	}
	return CategoryOther
}

// DefaultCategoryRules mirrors the directory convention of the reference
// deployment: top-level directory name is the category.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{Prefix: "bits_base/", Name: "bits_base"},
		{Prefix: "bits_deployments/", Name: "bits_deployments"},
		{Prefix: "nsls_deployments/", Name: "nsls_deployments"},
		{Prefix: "resources/", Name: "resources"},
		{Prefix: "containers/", Name: "containers"},
	}
}
