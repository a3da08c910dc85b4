// Package simplex projects real vectors onto the probability simplex
// Δₛ = {x : x ≥ 0, Σx = s}.
//
// Algorithm (sorted cumulative-sum projection):
//  1. u = v sorted descending; cssv = cumulative sums of u.
//  2. ρ = largest 0-based index with u[ρ]·(ρ+1) > cssv[ρ] − s.
//  3. θ = (cssv[ρ] − s)/(ρ+1).
//  4. x = max(v − θ, 0), rescaled so Σx = s exactly.
//
// Step 4's rescale only corrects floating-point drift; the exact projection
// already sums to s. Equal values in v need no special handling: the
// condition is monotone over the sorted prefix and the largest satisfying
// index is taken.
//
// Errors:
//   - ErrInvalidMass, ErrEmptyVector: caller input errors.
//   - ErrNoThreshold: no ρ exists or the result has no finite positive mass.
//     Finite non-empty input never triggers it; NaN/+Inf input does.
//
// Complexity: O(n log n) time (sort), O(n) extra space. v is never mutated.
package simplex
