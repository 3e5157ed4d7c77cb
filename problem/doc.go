// Package problem defines Problem, the validated, read-only input the
// local-search core consumes (§6.1): jobs, vehicles, the per-profile cost
// matrices, and the shared amount dimension. Problem is never mutated
// after construction, so a single instance may be shared across parallel
// search threads (§5).
package problem
