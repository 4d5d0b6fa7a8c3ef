// Package registry classifies dependency specifiers against the supported
// package-registry URL dialects and resolves the list of published versions
// for each.
//
// Every dialect is a [Kind] in a closed variant set. A Kind owns a
// classification pattern, field extraction (scope, name, version, sub-path),
// and a serialization rule, while the version-source algorithm is shared per
// registry family (npm, jsr, deno.land CDN, GitHub releases feed, GitLab
// tags feed, Skypack listing page, nest.land upload log).
//
// Classification is priority-ordered: [Lookup] tests the variants in a fixed
// order and returns the first match. The order is part of the contract —
// scoped CDN dialects must be tested before their unscoped counterparts,
// whose looser patterns would otherwise swallow scoped specifiers.
//
// Version lists are always returned newest-first, regardless of the native
// ordering of the upstream source. Fetched lists are memoized per package
// key in a [VersionCache] for the lifetime of the process.
package registry
