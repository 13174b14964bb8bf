package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/submodsync/internal/domain/entities"
)

func TestBuildPlan(t *testing.T) {
	t.Parallel()

	entry := entities.DependencyEntry{
		Path:     "bits_base/BITS",
		URL:      "https://github.com/example/bits.git",
		Branch:   "main",
		Category: "bits_base",
	}

	t.Run("should do nothing for a current checkout", func(t *testing.T) {
		t.Parallel()

		// given
		results := []entities.ProbeResult{{Entry: entry, Accessible: true}}
		states := []entities.LocalState{{Entry: entry, Status: entities.StatusCurrent}}

		// when
		plan := entities.BuildPlan(results, states, entities.DefaultPolicy{})

		// then
		require.Len(t, plan.Steps, 1)
		assert.Equal(t, entities.ActionNone, plan.Steps[0].Action)
	})

	t.Run("should materialize an absent entry with an accessible remote", func(t *testing.T) {
		t.Parallel()

		// given
		results := []entities.ProbeResult{{Entry: entry, Accessible: true}}
		states := []entities.LocalState{{Entry: entry, Status: entities.StatusAbsent}}

		// when
		plan := entities.BuildPlan(results, states, entities.DefaultPolicy{})

		// then
		require.Len(t, plan.Steps, 1)
		assert.Equal(t, entities.ActionMaterialize, plan.Steps[0].Action)
	})

	t.Run("should materialize an empty directory the same as an absent one", func(t *testing.T) {
		t.Parallel()

		// given
		results := []entities.ProbeResult{{Entry: entry, Accessible: true}}
		states := []entities.LocalState{{Entry: entry, Status: entities.StatusEmpty}}

		// when
		plan := entities.BuildPlan(results, states, entities.DefaultPolicy{})

		// then
		require.Len(t, plan.Steps, 1)
		assert.Equal(t, entities.ActionMaterialize, plan.Steps[0].Action)
	})

	t.Run("should skip an absent entry whose remote is unreachable", func(t *testing.T) {
		t.Parallel()

		// given
		results := []entities.ProbeResult{{
			Entry:  entry,
			Reason: entities.FailureNetworkUnreachable,
			Detail: "no route to host",
		}}
		states := []entities.LocalState{{Entry: entry, Status: entities.StatusAbsent}}

		// when
		plan := entities.BuildPlan(results, states, entities.DefaultPolicy{})

		// then
		require.Len(t, plan.Steps, 1)
		assert.Equal(t, entities.ActionSkipNoAccess, plan.Steps[0].Action)
		assert.Contains(t, plan.Steps[0].Reason, "network-unreachable")
		assert.Contains(t, plan.Steps[0].Reason, "no route to host")
	})

	t.Run("should update a stale checkout when the policy allows it", func(t *testing.T) {
		t.Parallel()

		// given
		results := []entities.ProbeResult{{Entry: entry, Accessible: true}}
		states := []entities.LocalState{{
			Entry:       entry,
			Status:      entities.StatusStale,
			CurrentRef:  "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			ExpectedRef: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		}}

		// when
		plan := entities.BuildPlan(results, states, entities.DefaultPolicy{AllowUpdate: true})

		// then
		require.Len(t, plan.Steps, 1)
		assert.Equal(t, entities.ActionUpdate, plan.Steps[0].Action)
		assert.Contains(t, plan.Steps[0].Reason, "aaaaaaaa")
		assert.Contains(t, plan.Steps[0].Reason, "bbbbbbbb")
	})

	t.Run("should leave a stale checkout alone when updates are disabled", func(t *testing.T) {
		t.Parallel()

		// given
		results := []entities.ProbeResult{{Entry: entry, Accessible: true}}
		states := []entities.LocalState{{Entry: entry, Status: entities.StatusStale}}

		// when
		plan := entities.BuildPlan(results, states, entities.DefaultPolicy{AllowUpdate: false})

		// then
		require.Len(t, plan.Steps, 1)
		assert.Equal(t, entities.ActionNone, plan.Steps[0].Action)
	})

	t.Run("should skip a stale checkout whose remote is unreachable", func(t *testing.T) {
		t.Parallel()

		// given
		results := []entities.ProbeResult{{Entry: entry, Reason: entities.FailureTimeout}}
		states := []entities.LocalState{{Entry: entry, Status: entities.StatusStale}}

		// when
		plan := entities.BuildPlan(results, states, entities.DefaultPolicy{AllowUpdate: true})

		// then
		require.Len(t, plan.Steps, 1)
		assert.Equal(t, entities.ActionSkipNoAccess, plan.Steps[0].Action)
	})

	t.Run("should never touch a dirty checkout under the default policy", func(t *testing.T) {
		t.Parallel()

		// given
		results := []entities.ProbeResult{{Entry: entry, Accessible: true}}
		states := []entities.LocalState{{Entry: entry, Status: entities.StatusDirty}}

		for _, policy := range []entities.InitPolicy{
			entities.DefaultPolicy{},
			entities.DefaultPolicy{AllowUpdate: true},
		} {
			// when
			plan := entities.BuildPlan(results, states, policy)

			// then
			require.Len(t, plan.Steps, 1)
			assert.Equal(t, entities.ActionSkipDirty, plan.Steps[0].Action)
		}
	})

	t.Run("should force an update over a dirty checkout only with the force policy", func(t *testing.T) {
		t.Parallel()

		// given
		results := []entities.ProbeResult{{Entry: entry, Accessible: true}}
		states := []entities.LocalState{{Entry: entry, Status: entities.StatusDirty}}

		// when
		plan := entities.BuildPlan(results, states, entities.ForcePolicy{})

		// then
		require.Len(t, plan.Steps, 1)
		assert.Equal(t, entities.ActionUpdate, plan.Steps[0].Action)
	})

	t.Run("should still skip a dirty checkout under force when the remote is down", func(t *testing.T) {
		t.Parallel()

		// given
		results := []entities.ProbeResult{{Entry: entry, Reason: entities.FailureTimeout}}
		states := []entities.LocalState{{Entry: entry, Status: entities.StatusDirty}}

		// when
		plan := entities.BuildPlan(results, states, entities.ForcePolicy{})

		// then
		require.Len(t, plan.Steps, 1)
		assert.Equal(t, entities.ActionSkipDirty, plan.Steps[0].Action)
	})

	t.Run("should skip an unreadable path and carry the cause", func(t *testing.T) {
		t.Parallel()

		// given
		results := []entities.ProbeResult{{Entry: entry, Accessible: true}}
		states := []entities.LocalState{{
			Entry:  entry,
			Status: entities.StatusUnreadable,
			Detail: "permission denied",
		}}

		// when
		plan := entities.BuildPlan(results, states, entities.ForcePolicy{})

		// then
		require.Len(t, plan.Steps, 1)
		assert.Equal(t, entities.ActionSkipError, plan.Steps[0].Action)
		assert.Equal(t, "permission denied", plan.Steps[0].Reason)
	})

	t.Run("should keep manifest order across mixed states", func(t *testing.T) {
		t.Parallel()

		// given
		first := entities.DependencyEntry{Path: "bits_base/BITS", Category: "bits_base", Index: 0}
		second := entities.DependencyEntry{Path: "resources/docs", Category: "resources", Index: 1}
		third := entities.DependencyEntry{Path: "containers/base", Category: "containers", Index: 2}

		results := []entities.ProbeResult{
			{Entry: first, Accessible: true},
			{Entry: second, Reason: entities.FailureAuthDenied},
			{Entry: third, Accessible: true},
		}
		states := []entities.LocalState{
			{Entry: first, Status: entities.StatusAbsent},
			{Entry: second, Status: entities.StatusAbsent},
			{Entry: third, Status: entities.StatusCurrent},
		}

		// when
		plan := entities.BuildPlan(results, states, entities.DefaultPolicy{})

		// then
		require.Len(t, plan.Steps, 3)
		assert.Equal(t, entities.ActionMaterialize, plan.Steps[0].Action)
		assert.Equal(t, entities.ActionSkipNoAccess, plan.Steps[1].Action)
		assert.Equal(t, entities.ActionNone, plan.Steps[2].Action)
	})
}

func TestInitReportClean(t *testing.T) {
	t.Parallel()

	t.Run("should be clean when every outcome succeeded or needed nothing", func(t *testing.T) {
		t.Parallel()

		// given
		report := entities.InitReport{Outcomes: []entities.InitializationOutcome{
			{Action: entities.ActionNone},
			{Action: entities.ActionMaterialize, Attempted: true, Succeeded: true},
		}}

		// when / then
		assert.True(t, report.Clean())
	})

	t.Run("should not be clean when an entry was skipped", func(t *testing.T) {
		t.Parallel()

		// given
		report := entities.InitReport{Outcomes: []entities.InitializationOutcome{
			{Action: entities.ActionSkipNoAccess},
		}}

		// when / then
		assert.False(t, report.Clean())
	})

	t.Run("should not be clean when an attempted operation failed", func(t *testing.T) {
		t.Parallel()

		// given
		report := entities.InitReport{Outcomes: []entities.InitializationOutcome{
			{Action: entities.ActionMaterialize, Attempted: true, Succeeded: false},
		}}

		// when / then
		assert.False(t, report.Clean())
	})

	t.Run("should treat a dry run with planned work as clean", func(t *testing.T) {
		t.Parallel()

		// given
		report := entities.InitReport{
			DryRun: true,
			Outcomes: []entities.InitializationOutcome{
				{Action: entities.ActionMaterialize},
			},
		}

		// when / then
		assert.True(t, report.Clean())
	})
}
