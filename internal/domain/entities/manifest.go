package entities

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitconfig "github.com/go-git/go-git/v5/config"
	"gopkg.in/yaml.v3"
)

// ManifestParseError aborts the run before any probing: nothing downstream
// is meaningful without a valid manifest.
type ManifestParseError struct {
	Source string
	Reason string
}

func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("invalid manifest %q: %s", e.Source, e.Reason)
}

// yamlManifest is the shape of the YAML manifest format.
type yamlManifest struct {
	Submodules []yamlManifestEntry `yaml:"submodules"`
}

type yamlManifestEntry struct {
	Path     string `yaml:"path"`
	URL      string `yaml:"url"`
	Branch   string `yaml:"branch"`
	Category string `yaml:"category"`
}

// LoadManifestFile reads and parses the manifest at the given path. The
// format is chosen by file name: ".gitmodules" (or any *.gitmodules) uses
// git-config syntax, anything else is parsed as YAML.
func LoadManifestFile(path string, rules []CategoryRule) ([]DependencyEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}

	if strings.HasSuffix(filepath.Base(path), ".gitmodules") {
		return ParseGitmodules(path, data, rules)
	}
	return ParseYAMLManifest(path, data, rules)
}

// ParseGitmodules parses a .gitmodules file. Entry order follows the order
// of the [submodule "..."] sections in the file. Category is resolved from
// the path-prefix rules.
func ParseGitmodules(source string, data []byte, rules []CategoryRule) ([]DependencyEntry, error) {
	modules := gitconfig.NewModules()
	if err := modules.Unmarshal(data); err != nil {
		return nil, &ManifestParseError{Source: source, Reason: err.Error()}
	}

	// config.Modules holds submodules in a map; recover file order from the
	// section headers so reports stay deterministic.
	names := submoduleSectionOrder(data)

	entries := make([]DependencyEntry, 0, len(names))
	for _, name := range names {
		sub, ok := modules.Submodules[name]
		if !ok {
			continue
		}
		entries = append(entries, DependencyEntry{
			Path:   sub.Path,
			URL:    sub.URL,
			Branch: sub.Branch,
		})
	}

	return finishManifest(source, entries, rules)
}

// ParseYAMLManifest parses the YAML manifest format. An explicit per-entry
// category wins over the path-prefix rules.
func ParseYAMLManifest(source string, data []byte, rules []CategoryRule) ([]DependencyEntry, error) {
	var manifest yamlManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, &ManifestParseError{Source: source, Reason: err.Error()}
	}

	entries := make([]DependencyEntry, 0, len(manifest.Submodules))
	for _, sub := range manifest.Submodules {
		entries = append(entries, DependencyEntry{
			Path:     sub.Path,
			URL:      sub.URL,
			Branch:   sub.Branch,
			Category: sub.Category,
		})
	}

	return finishManifest(source, entries, rules)
}

// finishManifest validates the parsed entries and assigns indices and
// categories. Parsing is pure beyond reading the manifest itself.
func finishManifest(source string, entries []DependencyEntry, rules []CategoryRule) ([]DependencyEntry, error) {
	if len(entries) == 0 {
		return nil, &ManifestParseError{Source: source, Reason: "no submodules declared"}
	}

	seen := make(map[string]bool, len(entries))
	for i := range entries {
		entry := &entries[i]

		if entry.Path == "" {
			return nil, &ManifestParseError{Source: source, Reason: fmt.Sprintf("entry %d has no path", i)}
		}
		if entry.URL == "" {
			return nil, &ManifestParseError{
				Source: source,
				Reason: fmt.Sprintf("entry %q has no url", entry.Path),
			}
		}
		if seen[entry.Path] {
			return nil, &ManifestParseError{
				Source: source,
				Reason: fmt.Sprintf("duplicate path %q", entry.Path),
			}
		}
		seen[entry.Path] = true

		if !supportedURLScheme(entry.URL) {
			return nil, &ManifestParseError{
				Source: source,
				Reason: fmt.Sprintf("entry %q has unsupported url scheme: %s", entry.Path, entry.URL),
			}
		}

		entry.Index = i
		if entry.Category == "" {
			entry.Category = ResolveCategory(entry.Path, rules)
		}
	}

	return entries, nil
}

// supportedURLScheme accepts scheme-qualified https/http/ssh/git URLs and
// scp-style "git@host:path" addresses.
func supportedURLScheme(url string) bool {
	for _, prefix := range []string{"https://", "http://", "ssh://", "git://"} {
		if strings.HasPrefix(url, prefix) {
			return true
		}
	}
	// scp-style: user@host:path
	if !strings.Contains(url, "://") && strings.Contains(url, "@") && strings.Contains(url, ":") {
		return true
	}
	return false
}

// submoduleSectionOrder scans the raw file for [submodule "name"] headers
// and returns the names in file order.
func submoduleSectionOrder(data []byte) []string {
	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "[submodule") {
			continue
		}
		start := strings.Index(trimmed, `"`)
		if start < 0 {
			continue
		}
		end := strings.Index(trimmed[start+1:], `"`)
		if end < 0 {
			continue
		}
		names = append(names, trimmed[start+1:start+1+end])
	}
	return names
}
