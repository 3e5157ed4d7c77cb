// Package model defines the domain entities shared by every other package
// in this module: Jobs, Vehicles, multi-dimensional Amounts, the (cost,
// duration) Eval pair, TimeWindows, Breaks and SkillSets.
//
// Nothing in this package mutates shared state and nothing here performs
// routing, search, or I/O — it is the vocabulary the rest of the module is
// written in.
//
// Conventions:
//   - All amounts, costs and durations are integers (no floating point):
//     callers are expected to have already fixed a scale (e.g. seconds,
//     cents) before constructing a Problem.
//   - Zero values are meaningful: a zero Amount is "no load", a zero
//     Eval is "no cost", an empty SkillSet requires nothing.
//   - Every error returned by this package is a sentinel declared in
//     errors.go; wrap with fmt.Errorf("%w", ...) at call sites that need
//     extra context, and match with errors.Is.
package model
