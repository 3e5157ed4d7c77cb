package operator

import (
	"github.com/routesmith/vrpls/model"
)

// OperatorName identifies a Move's operator class (§6.3): used in
// tie-breaking, logging, and statistics. Append-only — never renumber or
// remove an existing entry, only add new ones at the end.
type OperatorName int

const (
	OpExchange OperatorName = iota
	OpCrossExchange
	OpMixedExchange
	OpRelocate
	OpOrOpt
	OpTwoOpt
	OpReverseTwoOpt
	OpRouteExchange
	OpRouteShift
	OpSwapStar
	OpPDShift
	OpUnassignedExchange
	OpPriorityReplace
	OpRouteSplit
	OpIntraExchange
	OpIntraCrossExchange
	OpIntraMixedExchange
	OpIntraRelocate
	OpIntraOrOpt
	OpIntraTwoOpt
	OpTSPFix
)

func (n OperatorName) String() string {
	switch n {
	case OpExchange:
		return "Exchange"
	case OpCrossExchange:
		return "CrossExchange"
	case OpMixedExchange:
		return "MixedExchange"
	case OpRelocate:
		return "Relocate"
	case OpOrOpt:
		return "OrOpt"
	case OpTwoOpt:
		return "TwoOpt"
	case OpReverseTwoOpt:
		return "ReverseTwoOpt"
	case OpRouteExchange:
		return "RouteExchange"
	case OpRouteShift:
		return "RouteShift"
	case OpSwapStar:
		return "SwapStar"
	case OpPDShift:
		return "PDShift"
	case OpUnassignedExchange:
		return "UnassignedExchange"
	case OpPriorityReplace:
		return "PriorityReplace"
	case OpRouteSplit:
		return "RouteSplit"
	case OpIntraExchange:
		return "IntraExchange"
	case OpIntraCrossExchange:
		return "IntraCrossExchange"
	case OpIntraMixedExchange:
		return "IntraMixedExchange"
	case OpIntraRelocate:
		return "IntraRelocate"
	case OpIntraOrOpt:
		return "IntraOrOpt"
	case OpIntraTwoOpt:
		return "IntraTwoOpt"
	case OpTSPFix:
		return "TSPFix"
	default:
		return "unknown"
	}
}

// Move is a candidate in-place modification of one or two routes (§4.3).
// Gain is memoised: implementations compute it once and cache the result.
// Apply must only be called once IsValid has returned (true, nil) and
// Gain().Positive() holds; callers that skip this sequence get undefined
// results (§7, "invariant violation").
type Move interface {
	Name() OperatorName

	// Gain returns the memoised cost improvement, or model.NoGain if the
	// move is inapplicable or non-positive. PriorityReplace is the
	// exception: it returns its chosen side's cost delta even when that
	// is not positive, and is applicable when either that delta or its
	// PriorityGain is positive.
	Gain() model.Eval

	// IsValid runs the full feasibility check: capacity, time windows,
	// skills, vehicle compatibility, shipment precedence, range bounds.
	IsValid() (bool, error)

	// Apply mutates the involved route(s) and any shared state the move
	// declares (the unassigned set, for UnassignedExchange/PriorityReplace).
	Apply() error

	// AdditionCandidates names vehicles whose insertion caches need
	// recomputing after Apply.
	AdditionCandidates() []int

	// UpdateCandidates names vehicles whose route-local caches need
	// recomputing after Apply.
	UpdateCandidates() []int

	// RequiredUnassigned names jobs that must remain in the unassigned
	// set for this move to still be applicable.
	RequiredUnassigned() []int

	// InvalidatedBy reports whether a prior move touching vehicle in the
	// same round makes this move's cached gain stale.
	InvalidatedBy(vehicle int) bool
}

// base holds the fields and default method set every Move embeds:
// source/target vehicle+rank, the operator's name, and the lazily
// computed gain. Concrete operators compose base with their own
// compute-gain/apply logic and override RequiredUnassigned where a move
// declares it (UnassignedExchange, PriorityReplace).
type base struct {
	name OperatorName

	sVehicle, sRank int
	tVehicle, tRank int

	gainComputed bool
	storedGain   model.Eval
}

func (b *base) Name() OperatorName { return b.name }

// AdditionCandidates and UpdateCandidates both reduce to "the vehicles
// this move touches" for every move in this catalog: a move never
// changes a vehicle's route without also changing what can cheaply be
// re-inserted there or what its route-local caches say.
func (b *base) candidates() []int {
	if b.sVehicle == b.tVehicle {
		return []int{b.sVehicle}
	}

	return []int{b.sVehicle, b.tVehicle}
}

func (b *base) AdditionCandidates() []int { return b.candidates() }
func (b *base) UpdateCandidates() []int   { return b.candidates() }

// RequiredUnassigned is nil by default; only UnassignedExchange and
// PriorityReplace override it.
func (b *base) RequiredUnassigned() []int { return nil }

// InvalidatedBy holds for every move in this catalog: a move's gain was
// computed from the source/target routes' current contents, so any
// change to either route stales it.
func (b *base) InvalidatedBy(vehicle int) bool {
	return vehicle == b.sVehicle || vehicle == b.tVehicle
}
