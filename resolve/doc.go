// Package resolve maps free-text ingredient and tag mentions onto the
// canonical vocabularies.
//
// Resolution is exact-first: a normalized variant or name lookup is
// deterministic and free, and only unmatched terms fall back to embedding
// similarity with a tunable threshold. All lookups run against an
// immutable reference snapshot (Cache) that is rebuilt and swapped in
// atomically when reference data changes.
package resolve
