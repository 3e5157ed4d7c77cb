// Package costmatrix wraps the duration/cost matrices the caller supplies
// per routing profile and exposes O(1) Duration(i,j) / Cost(i,j) lookups —
// the cost oracle of §2 of the design.
//
// A Problem may mix several vehicle profiles (e.g. "car", "bike"), each
// with its own pair of matrices; Set resolves a profile name to its
// Matrix and is the only stateful type here. Matrix itself and its Dense
// implementation are deliberately minimal next to a general-purpose
// linear-algebra matrix type: the hot path is a single flat-slice read,
// nothing more.
package costmatrix
