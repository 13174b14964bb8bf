//go:build unit

package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/submodsync/internal/domain/commands"
	"github.com/rios0rios0/submodsync/internal/domain/entities"
	doubles "github.com/rios0rios0/submodsync/test/infrastructure/repositorydoubles"
)

const manifestFixture = `[submodule "BITS"]
	path = bits_base/BITS
	url = https://github.com/BCDA-APS/BITS.git
	branch = main
[submodule "apsbits"]
	path = bits_base/apsbits
	url = https://github.com/BCDA-APS/apsbits.git
[submodule "docs"]
	path = resources/docs
	url = https://github.com/example/docs.git
`

// runtimeWithManifest writes a manifest into a fresh workspace and returns
// a runtime context pointing at it.
func runtimeWithManifest(t *testing.T, manifest string) entities.RuntimeContext {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, ".gitmodules")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o600))

	return entities.RuntimeContext{
		ManifestPath:  path,
		WorkspaceRoot: dir,
		Concurrency:   4,
		ProbeTimeout:  time.Second,
		Retry:         entities.RetryConfig{Strategy: entities.RetryNone, MaxAttempts: 1},
		CategoryRules: entities.DefaultCategoryRules(),
	}
}

func TestCheckAccessCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should probe every manifest entry and aggregate by category", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyRemoteProber{
			Results: map[string]entities.ProbeResult{
				"bits_base/apsbits": {Reason: entities.FailureAuthDenied},
			},
		}
		cmd := commands.NewCheckAccessCommand(spy)
		rc := runtimeWithManifest(t, manifestFixture)

		// when
		report, err := cmd.Execute(context.Background(), rc, commands.CheckAccessOptions{})

		// then
		require.NoError(t, err)
		assert.Len(t, spy.ProbedPaths, 3)
		assert.Equal(t, 3, report.Totals.Checked)
		assert.Equal(t, 2, report.Totals.Accessible)
		assert.Equal(t, 1, report.Totals.Inaccessible)
		require.Len(t, report.Groups, 2)
		assert.Equal(t, "bits_base", report.Groups[0].Category)
		assert.Equal(t, "resources", report.Groups[1].Category)
	})

	t.Run("should report results in manifest order regardless of completion order", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyRemoteProber{}
		cmd := commands.NewCheckAccessCommand(spy)
		rc := runtimeWithManifest(t, manifestFixture)

		// when
		report, err := cmd.Execute(context.Background(), rc, commands.CheckAccessOptions{})

		// then
		require.NoError(t, err)
		group := report.Groups[0]
		require.Len(t, group.Accessible, 2)
		assert.Equal(t, "bits_base/BITS", group.Accessible[0].Entry.Path)
		assert.Equal(t, "bits_base/apsbits", group.Accessible[1].Entry.Path)
	})

	t.Run("should probe only the requested category", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyRemoteProber{}
		cmd := commands.NewCheckAccessCommand(spy)
		rc := runtimeWithManifest(t, manifestFixture)

		// when
		report, err := cmd.Execute(context.Background(), rc,
			commands.CheckAccessOptions{Category: "resources"})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"resources/docs"}, spy.ProbedPaths)
		assert.Equal(t, 1, report.Totals.Checked)
	})

	t.Run("should reject an unknown category naming the known ones", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyRemoteProber{}
		cmd := commands.NewCheckAccessCommand(spy)
		rc := runtimeWithManifest(t, manifestFixture)

		// when
		_, err := cmd.Execute(context.Background(), rc,
			commands.CheckAccessOptions{Category: "nonexistent"})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown category")
		assert.Contains(t, err.Error(), "bits_base")
		assert.Empty(t, spy.ProbedPaths)
	})

	t.Run("should fail before probing when the manifest is missing", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyRemoteProber{}
		cmd := commands.NewCheckAccessCommand(spy)
		rc := runtimeWithManifest(t, manifestFixture)
		rc.ManifestPath = filepath.Join(t.TempDir(), "absent")

		// when
		_, err := cmd.Execute(context.Background(), rc, commands.CheckAccessOptions{})

		// then
		require.Error(t, err)
		assert.Empty(t, spy.ProbedPaths)
	})

	t.Run("should retry transient failures until the remote answers", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyRemoteProber{
			Results: map[string]entities.ProbeResult{
				"resources/docs": {Reason: entities.FailureTimeout},
			},
			FailuresBeforeSuccess: map[string]int{"resources/docs": 2},
		}
		cmd := commands.NewCheckAccessCommand(spy)
		rc := runtimeWithManifest(t, manifestFixture)
		rc.Retry = entities.RetryConfig{
			Strategy:    entities.RetryFixed,
			BaseDelay:   time.Millisecond,
			MaxAttempts: 3,
		}

		// when
		report, err := cmd.Execute(context.Background(), rc,
			commands.CheckAccessOptions{Category: "resources"})

		// then
		require.NoError(t, err)
		assert.Equal(t, 3, spy.Attempts("resources/docs"))
		assert.True(t, report.AllAccessible())
	})

	t.Run("should not retry auth failures", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyRemoteProber{
			Results: map[string]entities.ProbeResult{
				"resources/docs": {Reason: entities.FailureAuthDenied},
			},
		}
		cmd := commands.NewCheckAccessCommand(spy)
		rc := runtimeWithManifest(t, manifestFixture)
		rc.Retry = entities.RetryConfig{
			Strategy:    entities.RetryFixed,
			BaseDelay:   time.Millisecond,
			MaxAttempts: 3,
		}

		// when
		_, err := cmd.Execute(context.Background(), rc,
			commands.CheckAccessOptions{Category: "resources"})

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, spy.Attempts("resources/docs"))
	})

	t.Run("should pass the configured auth to every probe", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyRemoteProber{}
		cmd := commands.NewCheckAccessCommand(spy)
		rc := runtimeWithManifest(t, manifestFixture)
		rc.Auth = entities.RemoteAuth{Token: "secret"}

		// when
		_, err := cmd.Execute(context.Background(), rc, commands.CheckAccessOptions{})

		// then
		require.NoError(t, err)
		require.Len(t, spy.SeenAuth, 3)
		for _, auth := range spy.SeenAuth {
			assert.Equal(t, "secret", auth.Token)
		}
	})
}
