package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/submodsync/internal/domain/entities"
	"github.com/rios0rios0/submodsync/internal/domain/repositories"
)

// CheckAccess is the interface for the check-access command.
type CheckAccess interface {
	Execute(ctx context.Context, rc entities.RuntimeContext, opts CheckAccessOptions) (*entities.AccessReport, error)
}

// CheckAccessOptions holds runtime options for one access check pass.
type CheckAccessOptions struct {
	Category string // if set, only probe entries of this category
}

// CheckAccessCommand probes every manifest entry and aggregates the results
// into a categorized report.
type CheckAccessCommand struct {
	prober repositories.RemoteProber
}

// NewCheckAccessCommand creates a new CheckAccessCommand.
func NewCheckAccessCommand(prober repositories.RemoteProber) *CheckAccessCommand {
	return &CheckAccessCommand{prober: prober}
}

// Execute parses the manifest, probes all (or category-filtered) entries in
// parallel, and aggregates. A manifest parse failure is fatal; per-entry
// probe failures are captured in the report and never abort siblings.
func (it *CheckAccessCommand) Execute(
	ctx context.Context,
	rc entities.RuntimeContext,
	opts CheckAccessOptions,
) (*entities.AccessReport, error) {
	entries, err := rc.LoadManifest()
	if err != nil {
		return nil, err
	}

	targets, err := filterEntries(entries, opts.Category)
	if err != nil {
		return nil, err
	}

	logger.Debugf("Probing %d of %d submodules", len(targets), len(entries))

	results := probeAll(ctx, it.prober, targets, rc)
	report := entities.AggregateAccess(results)
	return &report, nil
}

// filterEntries applies the category filter, rejecting unknown categories
// as a usage error that names the known ones.
func filterEntries(entries []entities.DependencyEntry, category string) ([]entities.DependencyEntry, error) {
	if category == "" {
		return entries, nil
	}

	filtered := entities.FilterByCategory(entries, category)
	if len(filtered) == 0 {
		return nil, fmt.Errorf(
			"unknown category %q (known: %v)",
			category, entities.KnownCategories(entries),
		)
	}
	return filtered, nil
}
