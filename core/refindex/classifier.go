package refindex

import (
	"context"
	"path"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// Classifier decides, per entry, whether a reference is fine, report-only or
// a repair candidate.
type Classifier struct {
	prober   Prober
	excludes []string
	logger   *zap.Logger

	// excluded counts entries skipped by exclude patterns since creation.
	excluded int
}

// NewClassifier creates a Classifier. Exclude patterns use doublestar syntax
// and are matched against the entry's target path.
func NewClassifier(prober Prober, excludes []string, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{prober: prober, excludes: excludes, logger: logger}
}

// Excluded returns how many entries were skipped by exclude patterns.
func (c *Classifier) Excluded() int {
	return c.excluded
}

// ClassifyManaged groups managed references by target path and returns the
// groups whose file is missing. Each distinct path is probed once and entries
// sharing a hash are collapsed.
func (c *Classifier) ClassifyManaged(ctx context.Context, entries []ReferenceEntry) []ManagedGroup {
	var order []string
	groups := make(map[string]*ManagedGroup)
	seen := make(map[string]map[string]struct{})

	for _, e := range entries {
		if c.isExcluded(e.TargetPath) {
			continue
		}
		g, ok := groups[e.TargetPath]
		if !ok {
			g = &ManagedGroup{Path: e.TargetPath}
			groups[e.TargetPath] = g
			seen[e.TargetPath] = make(map[string]struct{})
			order = append(order, e.TargetPath)
		}
		if _, dup := seen[e.TargetPath][e.Hash]; dup {
			continue
		}
		seen[e.TargetPath][e.Hash] = struct{}{}
		g.Entries = append(g.Entries, e)
	}

	var missing []ManagedGroup
	for _, p := range order {
		if c.prober.Exists(ctx, p) {
			continue
		}
		c.logger.Debug("Managed reference target missing", zap.String("path", p), zap.Int("references", len(groups[p].Entries)))
		missing = append(missing, *groups[p])
	}
	return missing
}

// ClassifySoft probes every soft reference and returns descriptors for those
// pointing at missing files. Soft references are never repaired.
func (c *Classifier) ClassifySoft(ctx context.Context, entries []ReferenceEntry) []string {
	var report []string
	for _, e := range entries {
		if c.isExcluded(e.TargetPath) {
			continue
		}
		if c.prober.Exists(ctx, e.TargetPath) {
			continue
		}
		report = append(report, e.SoftDescriptor())
	}
	return report
}

func (c *Classifier) isExcluded(target string) bool {
	if len(c.excludes) == 0 {
		return false
	}
	clean := path.Clean(target)
	for _, pattern := range c.excludes {
		ok, err := doublestar.Match(pattern, clean)
		if err != nil {
			c.logger.Warn("Invalid exclude pattern", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		if ok {
			c.excluded++
			return true
		}
	}
	return false
}
