package registry

import (
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// sortDesc orders versions newest-first by semantic-version comparison.
// Entries that do not parse as semver sort after all parseable ones, in
// reverse lexical order so the result is still deterministic.
func sortDesc(versions []string) {
	slices.SortFunc(versions, func(a, b string) int {
		va, ea := semver.NewVersion(a)
		vb, eb := semver.NewVersion(b)
		switch {
		case ea == nil && eb == nil:
			return vb.Compare(va)
		case ea == nil:
			return -1
		case eb == nil:
			return 1
		default:
			return strings.Compare(b, a)
		}
	})
}

// reverse flips a version list in place. Sources that return oldest-first
// lists are normalized with this before caching.
func reverse(versions []string) []string {
	slices.Reverse(versions)
	return versions
}

// Latest returns the newest eligible version from a newest-first list.
// Unless prerelease is true, versions carrying a prerelease tag are skipped;
// entries that do not parse as semver (raw git tags, dates) are always
// eligible.
func Latest(versions []string, prerelease bool) (string, bool) {
	for _, v := range versions {
		if !prerelease {
			if sv, err := semver.NewVersion(v); err == nil && sv.Prerelease() != "" {
				continue
			}
		}
		return v, true
	}
	return "", false
}
