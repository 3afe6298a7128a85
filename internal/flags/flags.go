// Package flags holds package-level behavior toggles, the same shape
// as the teacher's internal/feature_flags.go: a small set of plain
// vars a maintainer flips during a migration, not a user-facing
// configuration surface.
package flags

// OldConditionalMissingFalseEchoesPredicate changes what a conditional
// with no "&false" branch renders when its predicate is false. Despite
// the name, it is not limited to the old style: %?x?YES? and %<x?YES>
// are both affected.
//
// When false (the default, and the behavior spec.md §4.D describes),
// the node simply renders empty.
//
// When true, it falls back to echoing the predicate's symbol name
// verbatim instead of rendering empty -- a wart present in some older
// expando implementations that some format strings in the wild were
// written to depend on. Parser and renderer behavior are unaffected
// unless this is flipped.
var OldConditionalMissingFalseEchoesPredicate = false
