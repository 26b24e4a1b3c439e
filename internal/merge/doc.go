// Package merge joins the per-segment linguistic and acoustic label tables on
// their shared identity columns.
//
// Join is the pure relational core: an inner join on the key tuple with
// numeric-aware equality, pandas-style suffixes for colliding columns, and
// left-major row order. Merger wraps it with Source loading and the shape
// diagnostics operators rely on when a merge yields fewer rows than expected.
package merge
