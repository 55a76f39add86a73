// Package selector picks the unique economically admissible solution branch.
//
// A branch is admissible when its expression for the price of Y is provably
// positive for every positive endowment, under the engine's symbolic-truth
// predicate. The price of Y is the primary discriminator; when several
// branches pass it, the remaining unknowns are checked the same way.
//
// Positivity is not always decidable symbolically; a branch can carry the
// wrong root of a squared relation without the canonical form exposing its
// sign. When no branch is provably positive the selector falls back to the
// first branch returned, surfacing an AmbiguousPositivity warning, and then
// numerically evaluates the fallback branch at sample endowments: if any
// price or quantity comes out non-positive the fallback escalates to a hard
// error instead of silently selecting an economically invalid branch.
package selector
