// Package normalize validates and repairs deck documents before layout.
//
// Normalization never fails on a repairable problem. Every defaulted,
// clamped, or coerced value is recorded as a [Warning] and the document
// proceeds; the only fatal condition is missing top-level structure. The
// input document is never mutated, repairs are applied to a deep copy.
//
// Repairs run in a fixed order per slide: design-token defaults first, then
// per component (in input order) placement repair against a running flow
// cursor, then per-kind content fixes. Placement repair pushes an
// overlapping component down by the gutter plus a small epsilon until it
// clears previously placed components, bounded by a fixed iteration budget.
package normalize
